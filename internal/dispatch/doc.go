// Package dispatch decides, per field, which accessor calls populate it.
//
// Decide is pure: given a field descriptor and a path it returns a Plan,
// an ordered list of accessor calls each paired with the failures that
// let the next call be tried. The group path reads from a typed array and
// takes defaults from resources; the default path reads the declared
// default resource only.
//
// Ambiguous int fields probe color, then pixel offset, then integer.
// Unmarked float fields probe dimension, then float. Text arrays with a
// default fall back to the default resource on any failure. Reference
// kinds fall back to the default resource when the attribute yields nil.
package dispatch
