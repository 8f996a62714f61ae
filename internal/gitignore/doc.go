// Package gitignore reconciles the repository's ignore file with the set
// of paths that must never be committed (raw secret files and the key
// config). Reconciliation is a pure text transform plus a thin disk
// wrapper, idempotent by construction: a second run over its own output
// changes nothing.
package gitignore
