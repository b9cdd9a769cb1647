// Package match ranks registry member names by similarity to a name that
// failed to resolve, for "did you mean" hints.
//
// Key functions:
//   - NormalizeIdent: folds case and separators so Widget_titleColor and
//     widgetTitleColor compare equal
//   - Levenshtein: computes edit distance between strings
//   - Suggest: returns the closest candidates above a similarity floor
package match
