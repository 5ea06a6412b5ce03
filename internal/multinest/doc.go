// Package multinest is the boundary to the external nested sampler.
//
// It defines the Sampler interface the driver calls into, and reads the
// files the sampler leaves behind under its output basename:
//
//   - <basename>stats.dat: global evidence and per-mode statistics
//   - <basename>.txt: all weighted samples ("weight, -2 lnL, params...")
//   - <basename>post_equal_weights.dat: equally weighted posterior rows
//   - <basename>params.json: parameter names, written by this package
//
// The basename is a path prefix, not a directory: "chains/" places the
// files inside chains/, while "chains/src1_" prefixes each file name.
package multinest
