package workflows

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/eenv-dev/eenv/internal/githook"
	"github.com/eenv-dev/eenv/internal/precommit"
)

// initGitRepo creates a throwaway git repository, skipping the test when
// git is not installed.
func initGitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	root := t.TempDir()
	gitRun(t, root, "init", "-q")
	return root
}

func gitRun(t *testing.T, root string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = root
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
}

func TestPreCommitCleanStagedSet(t *testing.T) {
	root := initGitRepo(t)
	writeTestFile(t, filepath.Join(root, "README.md"), "# hi\n")
	gitRun(t, root, "add", "README.md")

	result, err := PreCommit(context.Background(), PreCommitOptions{RepoRoot: root})
	if err != nil {
		t.Fatalf("PreCommit failed: %v", err)
	}
	if result.Decision.State != precommit.StateClean {
		t.Errorf("Expected clean, got %v with %v", result.Decision.State, result.Decision.Offenders)
	}
	if result.Updated != nil {
		t.Error("Expected no pipeline run in non-write mode")
	}
}

func TestPreCommitBlocksStagedSecret(t *testing.T) {
	root := initGitRepo(t)
	writeTestFile(t, filepath.Join(root, ".env"), "A=1\n")
	gitRun(t, root, "add", "-f", ".env")

	result, err := PreCommit(context.Background(), PreCommitOptions{RepoRoot: root})
	if err != nil {
		t.Fatalf("PreCommit failed: %v", err)
	}
	if result.Decision.State != precommit.StateBlocked {
		t.Fatal("Expected a staged secret to block")
	}
	if len(result.Decision.Offenders) != 1 || result.Decision.Offenders[0] != ".env" {
		t.Errorf("Unexpected offenders: %v", result.Decision.Offenders)
	}
}

func TestPreCommitWriteModeRestagesArtifacts(t *testing.T) {
	root := initGitRepo(t)
	seedConfig(t, root)
	writeTestFile(t, filepath.Join(root, ".env"), "A=1\n")
	gitRun(t, root, "add", "-f", ".env")

	result, err := PreCommit(context.Background(), PreCommitOptions{RepoRoot: root, Write: true})
	if err != nil {
		t.Fatalf("PreCommit failed: %v", err)
	}

	// The decision is unchanged by write mode: the raw file still blocks.
	if result.Decision.State != precommit.StateBlocked {
		t.Error("Expected the staged secret to keep blocking in write mode")
	}
	if result.Updated == nil {
		t.Fatal("Expected the update pipeline to run in write mode")
	}

	staged, err := githook.StagedPaths(root)
	if err != nil {
		t.Fatalf("StagedPaths failed: %v", err)
	}
	stagedSet := make(map[string]bool, len(staged))
	for _, p := range staged {
		stagedSet[p] = true
	}
	for _, want := range []string{".env.example", "eenv.enc.json"} {
		if !stagedSet[want] {
			t.Errorf("Expected %s re-staged, staged set: %v", want, staged)
		}
	}
	// The config holding the key must never be handed to git.
	if stagedSet["eenv.config.json"] {
		t.Error("The key config was staged")
	}
}

func TestPreCommitWriteModeWithoutEnvFiles(t *testing.T) {
	root := initGitRepo(t)
	writeTestFile(t, filepath.Join(root, "README.md"), "# hi\n")
	gitRun(t, root, "add", "README.md")

	result, err := PreCommit(context.Background(), PreCommitOptions{RepoRoot: root, Write: true})
	if err != nil {
		t.Fatalf("PreCommit failed: %v", err)
	}
	if result.Decision.State != precommit.StateClean {
		t.Error("Expected clean")
	}
	if result.Updated != nil {
		t.Error("Expected no pipeline run without env files")
	}
}
