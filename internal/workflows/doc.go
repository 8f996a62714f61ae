// Package workflows provides high-level orchestration for eenv commands.
//
// Workflows coordinate the per-concern packages (envscan, envfile,
// secrets, gitignore, githook) to implement complete user-facing
// features, independent of CLI concerns like flag parsing, spinners, and
// output formatting. The cmd/ package stays a thin layer that parses
// flags, calls a workflow, and formats the result.
//
// # Available Workflows
//
//   - Update: encrypts all real secret files into a fresh artifact,
//     rewrites example skeletons, and reconciles the ignore file
//   - Apply: decrypts the artifact and materializes files non-destructively
//   - Init: brings a repository into the managed state end to end
//   - PreCommit: evaluates the commit gate, optionally refreshing and
//     re-staging committable artifacts
//   - Status: probes classification state without changing anything
//
// Workflows return sentinel errors from internal/errors; callers use
// errors.Is to choose user-facing messages. Every workflow takes a
// context.Context and checks it between file operations.
package workflows
