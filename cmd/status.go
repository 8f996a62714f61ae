package cmd

import (
	"fmt"

	"github.com/eenv-dev/eenv/internal/ui"
	"github.com/eenv-dev/eenv/internal/workflows"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the repository's secret-management state",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := repoRoot()
		if err != nil {
			return Logger.ErrorfAndReturn("failed to resolve repository root: %v", err)
		}
		Logger.Debugf("Repository root: %s", root)

		census, err := workflows.Status(cmd.Context(), root)
		if err != nil {
			return Logger.ErrorfAndReturn("failed to probe repository: %v", err)
		}

		fmt.Printf("Repository: %s\n\n", ui.Path.Sprint(root))

		if len(census.RealFiles) > 0 {
			fmt.Printf("Secret files (%d):%s", len(census.RealFiles), ui.FormatPaths(census.RealFiles))
		} else {
			fmt.Println("Secret files: none found")
		}
		if len(census.ExampleFiles) > 0 {
			fmt.Printf("Example skeletons (%d):%s", len(census.ExampleFiles), ui.FormatPaths(census.ExampleFiles))
		} else {
			fmt.Println("Example skeletons: none")
		}

		if census.ArtifactPresent {
			fmt.Println("Artifact: " + ui.Success.Sprint("present") + " (" + ui.Path.Sprint("eenv.enc.json") + ")")
		} else {
			fmt.Println("Artifact: " + ui.Warning.Sprint("missing"))
		}

		switch {
		case census.ConfigPresent && census.ConfigValid:
			fmt.Println("Key config: " + ui.Success.Sprint("present"))
		case census.ConfigPresent:
			fmt.Println("Key config: " + ui.Error.Sprint("invalid") + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("eenv init") + " to repair it")
		default:
			fmt.Println("Key config: " + ui.Warning.Sprint("missing") + "\n" +
				ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("eenv init") + " to create one")
		}
		return nil
	},
}
