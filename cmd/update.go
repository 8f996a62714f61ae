package cmd

import (
	"errors"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/ui"
	"github.com/eenv-dev/eenv/internal/workflows"

	"github.com/spf13/cobra"
)

var updateFilePatterns []string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Re-encrypt secret files into the artifact and refresh examples",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting update command")
		spinner, cleanup := startSpinner("Encrypting environment files...")
		defer cleanup()

		root, err := repoRoot()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve repository root: %v", err)
		}
		Logger.Debugf("Repository root: %s", root)

		result, err := workflows.Update(cmd.Context(), workflows.UpdateOptions{
			RepoRoot:     root,
			FilePatterns: updateFilePatterns,
		})
		switch {
		case errors.Is(err, kerrors.ErrConfigMissing):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " No " + ui.Path.Sprint("eenv.config.json") + " found\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("eenv init") + " first"
			return nil
		case errors.Is(err, kerrors.ErrNoEnvFilesFound):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " No environment files found in " + ui.Path.Sprint(root)
			return nil
		case errors.Is(err, kerrors.ErrNoFilesMatched):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " No environment files matched the given patterns"
			return nil
		case errors.Is(err, kerrors.ErrDecryptionAuthFailed):
			spinner.FinalMSG = ui.Error.Sprint("✗") + " The stored key does not open the existing " + ui.Path.Sprint("eenv.enc.json") + "\n" +
				ui.Info.Sprint("→") + " Check " + ui.Path.Sprint("eenv.config.json") + ", or run " + ui.Code.Sprint("eenv update") +
				" without " + ui.Code.Sprint("--file") + " to rewrite the artifact from disk"
			return err
		case err != nil:
			return Logger.ErrorfAndReturn("failed to update: %v", err)
		}

		if result.IgnoreErr != nil {
			Logger.WarnfAlways("Could not reconcile .gitignore: %v", result.IgnoreErr)
		}
		Logger.Infof("Encrypted %d files into %s", len(result.SourceFiles), result.ArtifactFile)

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Environment files encrypted successfully!\n" +
			"The following files were sealed into " + ui.Path.Sprint(result.ArtifactFile) + ": " +
			ui.FormatPaths(result.SourceFiles) +
			ui.Info.Sprint("→") + " You can now safely commit " + ui.Path.Sprint(result.ArtifactFile) +
			" and all " + ui.Path.Sprint(".example") + " files to version control"
		return nil
	},
}

func init() {
	updateCmd.Flags().StringSliceVarP(&updateFilePatterns, "file", "f", nil,
		"restrict to files matching these glob patterns (supports **)")
}
