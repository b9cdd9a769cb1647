// Package analyze loads Go packages and discovers styleable targets.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// struct types carrying at least one styleable field annotation and to
// describe, for each target:
//   - TypeID: package import path + type name
//   - FieldElement: field name, Go type, embedding, parsed annotations
//   - FileScope / PackageScope: the names a registry reference can start with
//
// A loaded Program also answers registry member lookups against the
// type-checked packages, so unresolved references get "did you mean" hints.
package analyze
