// Package processor runs one generation pass per target type: resolve
// annotation arguments, build field descriptors, synthesize the binding and
// write it. Passes are independent and run concurrently; each owns its own
// diagnostics, which are merged in target order afterwards.
package processor
