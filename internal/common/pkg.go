package common

import "path"

// GeneratedHeader opens every file glimpse-generator writes.
const GeneratedHeader = "// Code generated by glimpse-generator. DO NOT EDIT."

// UnknownStr is the String form of out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// QualifiedName joins a package path and a declared name the way the
// runtime dispatcher keys bindings (e.g. "example.com/app/widget.Widget").
func QualifiedName(pkgPath, name string) string {
	if pkgPath == "" {
		return name
	}

	return pkgPath + "." + name
}
