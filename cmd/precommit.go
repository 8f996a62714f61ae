package cmd

import (
	"fmt"
	"os"

	kerrors "github.com/eenv-dev/eenv/internal/errors"
	"github.com/eenv-dev/eenv/internal/ui"
	"github.com/eenv-dev/eenv/internal/workflows"

	"github.com/spf13/cobra"
)

var preCommitWrite bool

var preCommitCmd = &cobra.Command{
	Use:   "pre-commit",
	Short: "Check staged files for raw secrets (used by the git hook)",
	Long: `Inspects the staged path set and refuses the commit when raw secret
files are staged. With --write, the examples, .gitignore, and the
encrypted artifact are regenerated and re-staged first; raw secret files
themselves are never staged automatically.

Exits 2 when the commit is blocked, so git aborts it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting pre-commit gate (write=%t)", preCommitWrite)

		root, err := repoRoot()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve repository root: %v", err)
		}

		result, err := workflows.PreCommit(cmd.Context(), workflows.PreCommitOptions{
			RepoRoot: root,
			Write:    preCommitWrite,
		})
		if err != nil {
			return Logger.ErrorfAndReturn("pre-commit check failed: %v", err)
		}

		if result.Updated != nil {
			Logger.Infof("Refreshed %d example(s) and the artifact", len(result.Updated.ExampleFiles))
		}
		if len(result.Restaged) > 0 {
			fmt.Println(ui.Info.Sprint("→") + " Re-staged generated files:" + ui.FormatPaths(result.Restaged))
		}

		if len(result.Decision.Offenders) > 0 {
			fmt.Fprintln(os.Stderr, ui.Error.Sprint("✗")+" Refusing to commit raw secret files:"+
				ui.FormatPaths(result.Decision.Offenders)+
				ui.Info.Sprint("→")+" Unstage them with "+ui.Code.Sprint("git restore --staged <file>")+
				" and commit the "+ui.Path.Sprint(".example")+" and "+ui.Path.Sprint("eenv.enc.json")+" files instead")
			return kerrors.ErrCommitBlocked
		}

		Logger.Infof("Staged set is clean")
		return nil
	},
}

func init() {
	preCommitCmd.Flags().BoolVar(&preCommitWrite, "write", false,
		"regenerate and re-stage examples, .gitignore, and the artifact")
}
