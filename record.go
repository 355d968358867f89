package phantom

import (
	"fmt"

	"github.com/spf13/cast"
)

// FiberRecord is the flat persistence form of a fiber, matching a
// "fiber_geometries" entry of a Phantomas file.
type FiberRecord struct {
	// ControlPoints holds the coordinates of all control points as
	// consecutive x, y, z triples.
	ControlPoints []float64 `json:"control_points" yaml:"control_points"`
	Tangents      string    `json:"tangents" yaml:"tangents"`
	Radius        float64   `json:"radius" yaml:"radius"`
	Color         Color     `json:"color" yaml:"color"`
}

// RegionRecord is the persistence form of an isotropic region, matching an
// "isotropic_regions" entry of a Phantomas file.
type RegionRecord struct {
	Center [3]float64 `json:"center" yaml:"center"`
	Radius float64    `json:"radius" yaml:"radius"`
	Color  Color      `json:"color" yaml:"color"`
}

// Document is the content of a phantom file. Entries are keyed by name; the
// editor uses decimal indices.
type Document struct {
	Fibers  map[string]FiberRecord  `json:"fiber_geometries" yaml:"fiber_geometries"`
	Regions map[string]RegionRecord `json:"isotropic_regions" yaml:"isotropic_regions"`
}

// Record returns the persistence form of f.
func (f *Fiber) Record() FiberRecord {
	cps := make([]float64, 0, 3*len(f.pts))
	for _, pt := range f.pts {
		cps = append(cps, pt.X, pt.Y, pt.Z)
	}
	return FiberRecord{
		ControlPoints: cps,
		Tangents:      f.mode.String(),
		Radius:        f.radius,
		Color:         f.color,
	}
}

// Points returns the control points of the record.
func (rec FiberRecord) Points() ([]Point, error) {
	if len(rec.ControlPoints)%3 != 0 {
		return nil, fmt.Errorf("%d coordinates do not form triples: %w", len(rec.ControlPoints), ErrBadRecord)
	}
	pts := make([]Point, 0, len(rec.ControlPoints)/3)
	for i := 0; i < len(rec.ControlPoints); i += 3 {
		pts = append(pts, PtFromSlice(rec.ControlPoints[i:i+3]))
	}
	return pts, nil
}

// Fiber builds the fiber described by rec. An empty tangent mode means
// symmetric.
func (rec FiberRecord) Fiber() (*Fiber, error) {
	pts, err := rec.Points()
	if err != nil {
		return nil, err
	}
	mode := Symmetric
	if rec.Tangents != "" {
		if mode, err = ParseTangentMode(rec.Tangents); err != nil {
			return nil, err
		}
	}
	f, err := NewFiber(pts, mode, rec.Radius)
	if err != nil {
		return nil, err
	}
	f.color = rec.Color
	return f, nil
}

// Record returns the persistence form of r.
func (r *Region) Record() RegionRecord {
	return RegionRecord{
		Center: [3]float64{r.center.X, r.center.Y, r.center.Z},
		Radius: r.radius,
		Color:  r.color,
	}
}

// Region builds the region described by rec.
func (rec RegionRecord) Region() (*Region, error) {
	r, err := NewRegion(PtFromSlice(rec.Center[:]), rec.Radius)
	if err != nil {
		return nil, err
	}
	r.color = rec.Color
	return r, nil
}

// DecodeDocument converts a generically decoded phantom file (for example
// the result of unmarshaling JSON into a map) into a [Document]. Numbers may
// be given as strings. Either section may be missing.
func DecodeDocument(m map[string]any) (Document, error) {
	doc := Document{
		Fibers:  map[string]FiberRecord{},
		Regions: map[string]RegionRecord{},
	}
	if v, ok := m["fiber_geometries"]; ok && v != nil {
		fibers, err := cast.ToStringMapE(v)
		if err != nil {
			return Document{}, fmt.Errorf("fiber_geometries: %w: %w", err, ErrBadRecord)
		}
		for name, v := range fibers {
			rec, err := DecodeFiberRecord(v)
			if err != nil {
				return Document{}, fmt.Errorf("fiber %q: %w", name, err)
			}
			doc.Fibers[name] = rec
		}
	}
	if v, ok := m["isotropic_regions"]; ok && v != nil {
		regions, err := cast.ToStringMapE(v)
		if err != nil {
			return Document{}, fmt.Errorf("isotropic_regions: %w: %w", err, ErrBadRecord)
		}
		for name, v := range regions {
			rec, err := DecodeRegionRecord(v)
			if err != nil {
				return Document{}, fmt.Errorf("region %q: %w", name, err)
			}
			doc.Regions[name] = rec
		}
	}
	return doc, nil
}

// DecodeFiberRecord converts a generically decoded fiber entry into a
// [FiberRecord].
func DecodeFiberRecord(v any) (FiberRecord, error) {
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return FiberRecord{}, fmt.Errorf("%w: %w", err, ErrBadRecord)
	}
	var rec FiberRecord
	if rec.ControlPoints, err = toFloats(m["control_points"]); err != nil {
		return FiberRecord{}, fmt.Errorf("control_points: %w", err)
	}
	if t, ok := m["tangents"]; ok && t != nil {
		if rec.Tangents, err = cast.ToStringE(t); err != nil {
			return FiberRecord{}, fmt.Errorf("tangents: %w: %w", err, ErrBadRecord)
		}
	}
	if rec.Radius, err = cast.ToFloat64E(m["radius"]); err != nil {
		return FiberRecord{}, fmt.Errorf("radius: %w: %w", err, ErrBadRecord)
	}
	if rec.Color, err = toColor(m["color"]); err != nil {
		return FiberRecord{}, err
	}
	return rec, nil
}

// DecodeRegionRecord converts a generically decoded region entry into a
// [RegionRecord].
func DecodeRegionRecord(v any) (RegionRecord, error) {
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return RegionRecord{}, fmt.Errorf("%w: %w", err, ErrBadRecord)
	}
	var rec RegionRecord
	center, err := toFloats(m["center"])
	if err != nil {
		return RegionRecord{}, fmt.Errorf("center: %w", err)
	}
	if len(center) != 3 {
		return RegionRecord{}, fmt.Errorf("center has %d coordinates: %w", len(center), ErrBadRecord)
	}
	copy(rec.Center[:], center)
	if rec.Radius, err = cast.ToFloat64E(m["radius"]); err != nil {
		return RegionRecord{}, fmt.Errorf("radius: %w: %w", err, ErrBadRecord)
	}
	if rec.Color, err = toColor(m["color"]); err != nil {
		return RegionRecord{}, err
	}
	return rec, nil
}

func toFloats(v any) ([]float64, error) {
	switch v := v.(type) {
	case nil:
		return nil, ErrBadRecord
	case []float64:
		return append([]float64(nil), v...), nil
	}
	items, err := cast.ToSliceE(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", err, ErrBadRecord)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		if out[i], err = cast.ToFloat64E(item); err != nil {
			return nil, fmt.Errorf("element %d: %w: %w", i, err, ErrBadRecord)
		}
	}
	return out, nil
}

func toColor(v any) (Color, error) {
	if v == nil {
		return 0, nil
	}
	c, err := cast.ToUint32E(v)
	if err != nil {
		return 0, fmt.Errorf("color: %w: %w", err, ErrBadRecord)
	}
	return Color(c), nil
}
