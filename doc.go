// Package phantom models synthetic fiber-bundle phantoms for diffusion MRI
// simulation: fiber bundles, each a smooth tube along a 3D curve, and
// spherical isotropic regions. It is the geometry core of a phantom editor;
// rendering, user interfaces and file I/O live elsewhere and talk to this
// package through plain values and the [Refresher] interface.
//
// # Fibers
//
// A [Fiber] is defined by an ordered list of control points, a
// [TangentMode] and a radius. From these it derives a continuous curve that
// passes through every control point:
//
//   - Each control point gets a parameter proportional to the cumulative
//     distance along the control polygon, normalized to [0, 1]
//     ([Fiber.Params]).
//   - Each control point gets a derivative. Interior points use a finite
//     difference selected by the tangent mode. The first and last points use
//     their position vectors (−p₀ and pₙ₋₁), so that fibers meet an implicit
//     sphere centred at the origin along its normal. All derivatives are
//     scaled to the length of the control polygon.
//   - Consecutive control points are joined by cubic Hermite segments
//     ([HermiteSegment]) matching position and scaled derivative at both
//     ends, one cubic per axis.
//
// The curve can be evaluated for position ([Fiber.Interpolate]), unit
// tangent ([Fiber.Tangent]) and curvature ([Fiber.Curvature]) at any
// parameter in [0, 1]. Batch evaluation skips parameters that cannot be
// evaluated and reports them in an [*EvalError], returning results for the
// rest.
//
// # Editing and observers
//
// Fibers and regions notify registered observers after every change, once
// their derived state is up to date. Edits are atomic: an edit that would
// leave a fiber invalid (for example, two coinciding consecutive control
// points) fails and leaves the fiber untouched.
//
// Interactive changes that touch several coordinates at once, such as
// dragging a control point, use a batch edit: [Fiber.Begin] returns a
// [FiberEdit] that collects changes and applies them with a single
// recomputation and notification on [FiberEdit.Commit]. [Fiber.Edit] wraps
// this in a function scope. [Region] offers the same for its center.
//
// # Phantoms and records
//
// A [Phantom] owns fibers and regions, hands out palette colors, rounds
// editor-created coordinates to the configured precision and converts to and
// from a [Document], the record form of a Phantomas phantom file. Settings
// are passed in as a [Config], which can be read from YAML.
package phantom
