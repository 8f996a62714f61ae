package cmd

import (
	"errors"
	"fmt"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/ui"
	"github.com/eenv-dev/eenv/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	applyForce        bool
	applyFilePatterns []string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Decrypt the artifact and restore secret files",
	Long: `Decrypts eenv.enc.json with the key from eenv.config.json and writes
the recovered files back to their original locations. Existing files are
never overwritten unless --force is given.

If the config is missing, you will be prompted for the shared key; it is
saved only after it successfully decrypts the artifact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting apply command")

		root, err := repoRoot()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve repository root: %v", err)
		}
		Logger.Debugf("Repository root: %s", root)

		// No spinner here: the key prompt needs a clean line.
		result, err := workflows.Apply(cmd.Context(), workflows.ApplyOptions{
			RepoRoot:     root,
			Force:        applyForce,
			FilePatterns: applyFilePatterns,
			KeyPrompt:    promptForKey,
		})
		switch {
		case errors.Is(err, kerrors.ErrNoFilesMatched):
			fmt.Println(ui.Error.Sprint("✗") + " No stored files matched the given patterns")
			return nil
		case errors.Is(err, kerrors.ErrArtifactMissing):
			fmt.Println(ui.Error.Sprint("✗") + " No " + ui.Path.Sprint("eenv.enc.json") + " artifact found\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("eenv update") + " to create one")
			return nil
		case errors.Is(err, kerrors.ErrDecryptionAuthFailed):
			fmt.Println(ui.Error.Sprint("✗") + " The key did not decrypt the artifact\n" +
				ui.Info.Sprint("→") + " Check " + ui.Path.Sprint("eenv.config.json") + " and re-enter the shared key")
			return err
		case err != nil:
			return Logger.ErrorfAndReturn("failed to apply: %v", err)
		}

		if result.KeyBootstrapped {
			fmt.Println(ui.Success.Sprint("✓") + " Key accepted and saved to " + ui.Path.Sprint("eenv.config.json"))
		}

		msg := ui.Success.Sprint("✓") + fmt.Sprintf(" Restored %d file(s)", len(result.Written))
		if len(result.Written) > 0 {
			msg += ui.FormatPaths(result.Written)
		} else {
			msg += "\n"
		}
		if len(result.Skipped) > 0 {
			msg += ui.Warning.Sprint("!") + fmt.Sprintf(" Skipped %d existing file(s)", len(result.Skipped)) +
				ui.FormatPaths(result.Skipped) +
				ui.Info.Sprint("→") + " Re-run with " + ui.Code.Sprint("--force") + " to overwrite them\n"
		}
		fmt.Print(msg)
		return nil
	},
}

func init() {
	applyCmd.Flags().BoolVar(&applyForce, "force", false, "overwrite existing files")
	applyCmd.Flags().StringSliceVarP(&applyFilePatterns, "file", "f", nil,
		"restrict to stored files matching these glob patterns (supports **)")
}
