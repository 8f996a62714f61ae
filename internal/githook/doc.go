// Package githook is the git integration boundary: it lists staged
// paths, re-stages produced artifacts, and installs or removes the
// marker-managed pre-commit hook scripts, honoring core.hooksPath. All
// git interaction goes through the git binary, as git hooks themselves
// guarantee one is present.
package githook
