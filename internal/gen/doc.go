// Package gen synthesizes the binding source file for one target type.
//
// Generation approach uses text/template + go/format for readable Go code.
// A BindingSpec (imports, constructors, per-group statements,
// default branch) is built first from the target's field descriptors and
// the dispatcher's plans, then rendered and formatted.
//
// Codegen patterns:
//   - One scoped function literal per attribute group that obtains a typed
//     array and defers its release
//   - Single accessor calls, with resource-backed defaults
//   - Ordered accessor probes through style.Probe
//   - Density conversion of DP and SP dimensions
//   - Nil fallback to the default resource for reference kinds
package gen
