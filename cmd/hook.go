package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/githook"
	"github.com/eenv-dev/eenv/internal/ui"

	"github.com/spf13/cobra"
)

var (
	hookInstallForce   bool
	hookUninstallForce bool
)

var hookCmd = &cobra.Command{
	Use:   "hook",
	Short: "Manage the git pre-commit hook",
}

var hookInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the managed pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve repository root: %v", err)
		}

		err = githook.InstallHook(root, hookInstallForce)
		switch {
		case errors.Is(err, kerrors.ErrNotARepo):
			fmt.Println(ui.Error.Sprint("✗") + " Not inside a git repository")
			return err
		case errors.Is(err, kerrors.ErrHookExists):
			fmt.Println(ui.Error.Sprint("✗") + " A pre-commit hook not managed by eenv already exists\n" +
				ui.Info.Sprint("→") + " Re-run with " + ui.Code.Sprint("--force") + " to back it up and replace it")
			return err
		case err != nil:
			return Logger.ErrorfAndReturn("failed to install hook: %v", err)
		}

		fmt.Println(ui.Success.Sprint("✓") + " Installed the pre-commit hook")
		return nil
	},
}

var hookUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove the managed pre-commit hook",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve repository root: %v", err)
		}

		if err := githook.UninstallHook(root, hookUninstallForce); err != nil {
			return Logger.ErrorfAndReturn("failed to uninstall hook: %v", err)
		}
		fmt.Println(ui.Success.Sprint("✓") + " Removed the pre-commit hook")
		return nil
	},
}

func init() {
	hookInstallCmd.Flags().BoolVar(&hookInstallForce, "force", false, "replace an unmanaged hook (a backup is kept)")
	hookUninstallCmd.Flags().BoolVar(&hookUninstallForce, "force", false, "remove the hook even if not managed by eenv")

	hookCmd.AddCommand(hookInstallCmd)
	hookCmd.AddCommand(hookUninstallCmd)
}
