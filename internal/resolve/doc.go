// Package resolve turns annotation arguments into resource symbol
// references.
//
// An argument such as res.Styleable.Widget_titleColor is resolved by
// finding the assignment to the argument in the annotation, checking that
// the value is a member-select chain of identifiers, and binding the
// chain's root against the enclosing scopes (file imports first, then the
// package scope). The first scope that binds the root decides the
// registry. References are never dereferenced; only their names are used.
package resolve
