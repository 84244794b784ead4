// Package quantity provides dimension-tagged physical values.
//
// A Quantity stores its magnitude in SI base units together with a
// gonum unit.Dimensions map, so every value can be handed to gonum/unit
// (it implements unit.Uniter) and compared dimensionally with
// unit.DimensionsMatch. Units are named scale factors over the same
// dimensions; they convert values in and out of SI and are what the
// validation layer uses to describe what an argument accepts.
//
// Quantities are immutable. Arithmetic returns new values; operations that
// need matching dimensions (Add, Sub, comparisons) fail with
// ErrUnitMismatch instead of silently mixing units.
//
// Values without units are "bare". They are produced by Bare and by
// Parse when no unit follows the number, and the validation layer decides
// whether a bare value may be read as SI.
package quantity
