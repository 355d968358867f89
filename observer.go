package phantom

// Refresher is implemented by representations derived from a fiber or region,
// such as tube meshes or skeleton lines. Refresh is called after every change
// to the source, once the source's own derived state is up to date.
type Refresher interface {
	Refresh()
}

// RefreshFunc adapts an ordinary function to the [Refresher] interface.
type RefreshFunc func()

// Refresh calls f.
func (f RefreshFunc) Refresh() { f() }

type observerEntry struct {
	id uint64
	r  Refresher
}

// subject keeps the observers of a fiber or region. It does not own them; the
// aggregate that registered an observer decides when to remove it.
type subject struct {
	observers []observerEntry
	nextID    uint64
	// redraw runs once after all observers have been refreshed.
	redraw func()
}

// AddObserver registers r to be refreshed on every change. Observers are
// refreshed in registration order. The returned function unregisters r; it
// may be called more than once.
func (s *subject) AddObserver(r Refresher) (remove func()) {
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, observerEntry{id: id, r: r})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// NumObservers returns the number of registered observers.
func (s *subject) NumObservers() int {
	return len(s.observers)
}

// Notify refreshes every observer in registration order, then runs the
// redraw hook, if any.
func (s *subject) Notify() {
	// Observers may unregister themselves while being refreshed.
	obs := append([]observerEntry(nil), s.observers...)
	for _, o := range obs {
		o.r.Refresh()
	}
	if s.redraw != nil {
		s.redraw()
	}
}

func (s *subject) setRedraw(fn func()) {
	s.redraw = fn
}
