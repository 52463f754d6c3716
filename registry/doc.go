// SPDX-License-Identifier: EPL-2.0

// Package registry builds blocks by name from loosely typed parameters, as
// read from a graph file or a command line.
//
//	r := registry.Default()
//	b, err := r.Make("mpsk_snr_est_cc", map[string]any{"type": "m2m4"})
//
// Parameters not supplied take the block defaults. Unknown parameters are
// rejected.
package registry
