// Package configs manages eenv's two per-repository documents: the JSON
// key config (eenv.config.json, owner-only permissions, never committed)
// and the optional TOML scanner settings (.eenv.toml, committable).
//
// All functions take the repository root as an explicit parameter; there
// is no package-level path state.
package configs
