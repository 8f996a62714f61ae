package cmd

import (
	"errors"

	logger "github.com/eenv-dev/eenv/internal/logging"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/spf13/cobra"
)

// Exit codes. Blocked commits get their own code so the git hook result
// is distinguishable from genuine failures.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitBlocked = 2
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	RootCmd = &cobra.Command{
		Use:   "eenv",
		Short: "eenv - keep repository secrets encrypted and committable",
		Long: `eenv manages the lifecycle of repository-local secret files.

It discovers .env files, derives sanitized .example skeletons for new
contributors, encrypts the full set into a single committable artifact
(eenv.enc.json), and installs a pre-commit gate that stops raw secrets
from ever reaching the repository history.

The shared key lives in eenv.config.json (never committed). Anyone with
the key can restore the secret files from the artifact with 'eenv apply'.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing eenv with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	RootCmd.AddCommand(initCmd)
	RootCmd.AddCommand(updateCmd)
	RootCmd.AddCommand(applyCmd)
	RootCmd.AddCommand(preCommitCmd)
	RootCmd.AddCommand(hookCmd)
	RootCmd.AddCommand(statusCmd)
}

// Execute runs the root command and maps errors to exit codes.
func Execute() int {
	err := RootCmd.Execute()
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, kerrors.ErrCommitBlocked) {
		return ExitBlocked
	}
	Logger.Errorf("%v", err)
	return ExitFailure
}
