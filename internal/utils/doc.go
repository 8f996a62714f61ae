// Package utils provides filesystem helpers shared across eenv packages:
// atomic file writes, backup naming, and repository root discovery.
package utils
