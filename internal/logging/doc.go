// Package logger provides leveled logging for eenv CLI commands.
//
// Logging behavior is controlled by two flags:
//
//   - --verbose: shows info and warning messages
//   - --debug: shows all messages including debug details
//
// Without flags, only critical warnings and errors are shown.
//
// Commands create a logger in the root command's PersistentPreRun and
// share it through the cmd package. Derived keys and secret values must
// never be passed to any log method.
package logger
