// Package precommit implements the commit-time gate as an explicit
// finite-state machine: enumerated states, a pure transition function
// over the staged path set, and no rendering or git concerns. The
// surrounding workflow decides what to do with a Blocked decision.
package precommit
