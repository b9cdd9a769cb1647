// Package model builds the immutable per-field descriptors the generator
// works from and groups them by attribute group.
package model
