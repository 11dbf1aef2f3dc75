// Package components defines the superstructure component records used to
// assemble a track: rail, rail pads (discrete and continuous convention),
// sleepers, slabs and ballast, plus the wheel and roughness data carriers.
//
// All records are plain immutable parameter bundles; behaviour lives in the
// track, discretization and solver packages. The package also ships a small
// rail profile database as an embedded delimited table, with a loader that
// accepts arbitrary table files of the same schema.
//
// # Unit conventions
//
// Discrete pads and ballast carry total values ([N/m], [N·s/m]) acting at a
// mounting position; continuous pads and ballast carry per-unit-length
// values ([N/m²], [N·s/m²]). The track constructors take DiscrPad or
// ContPad according to the track type, which ties the pad convention to
// it; Ballast is one record type for both conventions and its values are
// not checked against the track type.
package components
