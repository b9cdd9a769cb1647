// Package diagnostic provides structured notes, warnings, and errors for the
// binding generator.
//
// Key capabilities:
//   - Resolution trace notes (which registry member an annotation resolved to)
//   - Field-level errors that skip a single field
//   - Class-level errors that abort one target type
//   - Source positions for every report that has one
package diagnostic
