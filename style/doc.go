// Package style defines the runtime styling surface that generated bindings
// are compiled against.
//
// A Context hands out TypedArray attribute views for one attribute group at a
// time and a Resources table for static defaults. Every accessor reports an
// incompatible stored kind with an error wrapping ErrKindMismatch so callers
// can probe several accessors in order with Probe.
//
// Key types:
//   - Context: obtains attribute views and resources
//   - TypedArray: scoped attribute view, released with Recycle
//   - Resources: id-addressed static values
//   - Attempt/Probe: ordered accessor fallback
package style
