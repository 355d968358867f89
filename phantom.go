package phantom

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/sgostarter/i/l"
)

// Phantom is a collection of fiber bundles and isotropic regions. It owns
// its fibers and regions, wires their observers and runs a single redraw
// hook after every notification.
//
// A Phantom is not safe for concurrent use.
type Phantom struct {
	logger l.Wrapper
	cfg    Config

	fibers  []*Fiber
	regions []*Region

	redraw func()
}

// New returns an empty phantom. A nil logger discards log output.
func New(cfg Config, logger l.Wrapper) (*Phantom, error) {
	if logger == nil {
		logger = l.NewNopLoggerWrapper()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Phantom{
		logger: logger.WithFields(l.StringField(l.ClsKey, "Phantom")),
		cfg:    cfg,
	}, nil
}

// Config returns the phantom's configuration.
func (p *Phantom) Config() Config {
	return p.cfg
}

// SetRedraw installs fn to run once after the observers of any fiber or
// region have been refreshed. A nil fn removes the hook.
func (p *Phantom) SetRedraw(fn func()) {
	p.redraw = fn
	for _, f := range p.fibers {
		f.setRedraw(p.runRedraw)
	}
	for _, r := range p.regions {
		r.setRedraw(p.runRedraw)
	}
}

func (p *Phantom) runRedraw() {
	if p.redraw != nil {
		p.redraw()
	}
}

// AddFiber adds f and registers observers on it. It returns the fiber's
// index.
func (p *Phantom) AddFiber(f *Fiber, observers ...Refresher) int {
	for _, o := range observers {
		f.AddObserver(o)
	}
	f.setRedraw(p.runRedraw)
	p.fibers = append(p.fibers, f)
	return len(p.fibers) - 1
}

// AddRegion adds r and registers observers on it. It returns the region's
// index.
func (p *Phantom) AddRegion(r *Region, observers ...Refresher) int {
	for _, o := range observers {
		r.AddObserver(o)
	}
	r.setRedraw(p.runRedraw)
	p.regions = append(p.regions, r)
	return len(p.regions) - 1
}

// NumFibers returns the number of fibers.
func (p *Phantom) NumFibers() int { return len(p.fibers) }

// NumRegions returns the number of isotropic regions.
func (p *Phantom) NumRegions() int { return len(p.regions) }

// Fiber returns the i-th fiber.
func (p *Phantom) Fiber(i int) (*Fiber, error) {
	if i < 0 || i >= len(p.fibers) {
		return nil, fmt.Errorf("fiber %d of %d: %w", i, len(p.fibers), ErrIndexOutOfRange)
	}
	return p.fibers[i], nil
}

// Region returns the i-th isotropic region.
func (p *Phantom) Region(i int) (*Region, error) {
	if i < 0 || i >= len(p.regions) {
		return nil, fmt.Errorf("region %d of %d: %w", i, len(p.regions), ErrIndexOutOfRange)
	}
	return p.regions[i], nil
}

// Fibers returns the phantom's fibers in order.
func (p *Phantom) Fibers() []*Fiber {
	return slices.Clone(p.fibers)
}

// Regions returns the phantom's isotropic regions in order.
func (p *Phantom) Regions() []*Region {
	return slices.Clone(p.regions)
}

// Radius returns the distance from the origin to the farthest element of
// the phantom: the farthest control point or region surface. A phantom made
// only of regions reports five times their extent, leaving room for new
// fibers, and an empty phantom reports 1.
func (p *Phantom) Radius() float64 {
	var maxDist float64
	for _, f := range p.fibers {
		for _, pt := range f.pts {
			maxDist = max(maxDist, pt.Vec().Norm())
		}
	}
	noFibers := maxDist == 0
	for _, r := range p.regions {
		maxDist = max(maxDist, r.Sphere().Extent())
	}
	if noFibers {
		if maxDist > 0 {
			return maxDist * 5
		}
		return 1
	}
	return maxDist
}

// NewFiber adds a blank fiber: two control points on the x axis at ±R, where
// R is the phantom's radius, with radius R/10 and the next palette color.
func (p *Phantom) NewFiber(observers ...Refresher) (int, error) {
	r := p.Radius()
	end := p.cfg.Round(r)
	f, err := NewFiber([]Point{Pt(-end, 0, 0), Pt(end, 0, 0)}, p.cfg.TangentMode(), p.cfg.Round(r/10))
	if err != nil {
		p.logger.WithFields(l.ErrorField(err)).Error("new fiber")
		return -1, err
	}
	f.color = p.nextColor()
	return p.AddFiber(f, observers...), nil
}

// NewRegion adds a blank isotropic region at the origin with a fifth of the
// phantom's radius and the next palette color.
func (p *Phantom) NewRegion(observers ...Refresher) (int, error) {
	r, err := NewRegion(Point{}, p.cfg.Round(p.Radius()/5))
	if err != nil {
		p.logger.WithFields(l.ErrorField(err)).Error("new region")
		return -1, err
	}
	r.color = p.nextColor()
	return p.AddRegion(r, observers...), nil
}

func (p *Phantom) nextColor() Color {
	return p.cfg.Palette.At(len(p.fibers) + len(p.regions))
}

// InsertControlPoint inserts a control point into fiber fi after control
// point k, like [Fiber.InsertAfter], with the new coordinates rounded to the
// configured precision.
func (p *Phantom) InsertControlPoint(fi, k int) error {
	f, err := p.Fiber(fi)
	if err != nil {
		return err
	}
	if err := f.insertAfter(k, p.cfg.Round); err != nil {
		p.logger.WithFields(l.IntField("fiber", fi), l.IntField("after", k), l.ErrorField(err)).
			Warn("insert control point rejected")
		return err
	}
	return nil
}

// RemoveControlPoint removes control point k of fiber fi.
func (p *Phantom) RemoveControlPoint(fi, k int) error {
	f, err := p.Fiber(fi)
	if err != nil {
		return err
	}
	if err := f.Remove(k); err != nil {
		p.logger.WithFields(l.IntField("fiber", fi), l.IntField("index", k), l.ErrorField(err)).
			Warn("remove control point rejected")
		return err
	}
	return nil
}

// Export returns the phantom as a document, keyed by decimal index.
func (p *Phantom) Export() Document {
	doc := Document{
		Fibers:  make(map[string]FiberRecord, len(p.fibers)),
		Regions: make(map[string]RegionRecord, len(p.regions)),
	}
	for i, f := range p.fibers {
		doc.Fibers[strconv.Itoa(i)] = f.Record()
	}
	for i, r := range p.regions {
		doc.Regions[strconv.Itoa(i)] = r.Record()
	}
	return doc
}

// Load builds a phantom from doc. Records are added in key order, decimal
// keys numerically. Coordinates and radii are rounded to the configured
// precision. Records that do not describe a valid fiber or region are
// skipped and logged.
func Load(doc Document, cfg Config, logger l.Wrapper) (*Phantom, error) {
	p, err := New(cfg, logger)
	if err != nil {
		return nil, err
	}

	for _, name := range sortedKeys(doc.Fibers) {
		rec := doc.Fibers[name]
		rec.ControlPoints = slices.Clone(rec.ControlPoints)
		for i, v := range rec.ControlPoints {
			rec.ControlPoints[i] = cfg.Round(v)
		}
		rec.Radius = cfg.Round(rec.Radius)
		if rec.Tangents == "" {
			rec.Tangents = cfg.DefaultTangents
		}
		f, err := rec.Fiber()
		if err != nil {
			p.logger.WithFields(l.StringField("fiber", name), l.ErrorField(err)).Warn("skipping fiber")
			continue
		}
		p.AddFiber(f)
	}
	for _, name := range sortedKeys(doc.Regions) {
		rec := doc.Regions[name]
		rec.Radius = cfg.Round(rec.Radius)
		r, err := rec.Region()
		if err != nil {
			p.logger.WithFields(l.StringField("region", name), l.ErrorField(err)).Warn("skipping region")
			continue
		}
		p.AddRegion(r)
	}

	if len(p.fibers) == 0 {
		p.logger.Warn("no fiber found")
	}
	if len(p.regions) == 0 {
		p.logger.Warn("no isotropic region found")
	}
	return p, nil
}

// sortedKeys orders decimal keys numerically, ahead of any other keys, which
// are ordered lexically.
func sortedKeys[V any](m map[string]V) []string {
	return slices.SortedFunc(maps.Keys(m), func(a, b string) int {
		ai, aerr := strconv.Atoi(a)
		bi, berr := strconv.Atoi(b)
		switch {
		case aerr == nil && berr == nil:
			return cmp.Compare(ai, bi)
		case aerr == nil:
			return -1
		case berr == nil:
			return 1
		default:
			return cmp.Compare(a, b)
		}
	})
}
