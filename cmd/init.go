package cmd

import (
	"fmt"

	"github.com/eenv-dev/eenv/internal/configs"
	"github.com/eenv-dev/eenv/internal/ui"
	"github.com/eenv-dev/eenv/internal/workflows"

	"github.com/spf13/cobra"
)

var initSkipHook bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bring the repository into the managed state",
	Long: `Probes the repository, creates eenv.config.json with a generated key
when none exists, restores secrets from an existing artifact, derives
.example skeletons, reconciles .gitignore, encrypts the secret files
into eenv.enc.json, and installs the pre-commit gate.

On a fresh clone with an artifact but no config, init prompts for the
shared key and verifies it against the artifact before saving it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")

		root, err := repoRoot()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve repository root: %v", err)
		}
		Logger.Debugf("Repository root: %s", root)

		result, err := workflows.Init(cmd.Context(), workflows.InitOptions{
			RepoRoot:  root,
			KeyPrompt: promptForKey,
			SkipHook:  initSkipHook,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("failed to initialize: %v", err)
		}

		switch result.ConfigStatus {
		case configs.StatusCreated:
			fmt.Println(ui.Success.Sprint("✓") + " Created " + ui.Path.Sprint("eenv.config.json") + " with a new key")
		case configs.StatusRepaired:
			Logger.WarnfAlways("Repaired an invalid eenv.config.json (previous content backed up)")
		}

		if result.Applied != nil && len(result.Applied.Written) > 0 {
			fmt.Println(ui.Success.Sprint("✓") + fmt.Sprintf(" Restored %d file(s) from the artifact", len(result.Applied.Written)))
		}

		if result.Updated != nil {
			fmt.Println(ui.Success.Sprint("✓") + fmt.Sprintf(" Encrypted %d file(s) into ", len(result.Updated.SourceFiles)) +
				ui.Path.Sprint(result.Updated.ArtifactFile))
			if len(result.Updated.ExampleFiles) > 0 {
				fmt.Println(ui.Success.Sprint("✓") + " Wrote example skeletons:" + ui.FormatPaths(result.Updated.ExampleFiles))
			}
			if result.Updated.Ignore.Changed {
				fmt.Println(ui.Success.Sprint("✓") + " Updated " + ui.Path.Sprint(".gitignore"))
			}
			if result.Updated.IgnoreErr != nil {
				Logger.WarnfAlways("Could not reconcile .gitignore: %v", result.Updated.IgnoreErr)
			}
		} else {
			fmt.Println(ui.Info.Sprint("→") + " No environment files found; nothing to encrypt yet")
		}

		if result.HookErr != nil {
			Logger.WarnfAlways("Could not install the pre-commit hook: %v", result.HookErr)
		} else if !initSkipHook {
			fmt.Println(ui.Success.Sprint("✓") + " Installed the pre-commit gate")
		}
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initSkipHook, "no-hook", false, "skip pre-commit hook installation")
}
