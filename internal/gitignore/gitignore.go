package gitignore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/eenv-dev/eenv/internal/utils"
)

// Marker is the comment line that heads every block eenv appends.
const Marker = "# added by eenv"

// FileName is the ignore file eenv reconciles, at the repository root.
const FileName = ".gitignore"

// bannedPatterns would hide the very files eenv wants committed
// (examples and the encrypted artifact). They are removed so shareable
// files stay visible to git.
var bannedPatterns = []string{
	".env.example",
	".env*.example",
	".env.*.example",
	"*.env.example",
	"eenv.enc.json",
	"*.enc.json",
}

// Result reports a reconciliation outcome.
type Result struct {
	// Text is the resulting ignore-file content.
	Text string
	// Added lists the paths appended, in the order written.
	Added []string
	// Removed lists banned patterns that were dropped.
	Removed []string
	// Changed is true when Text differs from the input.
	Changed bool
}

// Reconcile computes the ignore-file text that lists every required path.
//
// Required paths are normalized to forward-slash form and compared
// against existing lines by exact match after trimming (blank lines are
// not candidates). Missing paths are appended as one marked block: the
// marker comment, the paths one per line in sorted order, then a blank
// separator line. Re-running on its own output is a no-op.
func Reconcile(existing string, required []string) Result {
	present := make(map[string]bool)
	for _, line := range strings.Split(existing, "\n") {
		t := strings.TrimSpace(line)
		if t != "" {
			present[t] = true
		}
	}

	var missing []string
	seen := make(map[string]bool)
	for _, p := range required {
		p = filepath.ToSlash(p)
		if p == "" || present[p] || seen[p] {
			continue
		}
		seen[p] = true
		missing = append(missing, p)
	}
	if len(missing) == 0 {
		return Result{Text: existing}
	}
	sort.Strings(missing)

	var b strings.Builder
	b.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		b.WriteByte('\n')
	}
	b.WriteString(Marker)
	b.WriteByte('\n')
	for _, p := range missing {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	return Result{Text: b.String(), Added: missing, Changed: true}
}

// StripBanned removes lines whose pattern core exactly matches a banned
// pattern. The pattern core is the line with any trailing comment and
// surrounding whitespace removed.
func StripBanned(existing string) Result {
	banned := make(map[string]bool, len(bannedPatterns))
	for _, p := range bannedPatterns {
		banned[p] = true
	}

	var removed []string
	var kept []string
	for _, line := range strings.Split(existing, "\n") {
		core := patternCore(line)
		if core != "" && banned[core] {
			removed = append(removed, line)
			continue
		}
		kept = append(kept, line)
	}
	if len(removed) == 0 {
		return Result{Text: existing}
	}
	return Result{Text: strings.Join(kept, "\n"), Removed: removed, Changed: true}
}

// patternCore strips a trailing comment and whitespace from a line.
func patternCore(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// Ensure reconciles the ignore file on disk under root: banned patterns
// are stripped, missing required paths appended, and the file rewritten
// atomically only when something changed.
func Ensure(root string, required []string) (Result, error) {
	path := filepath.Join(root, FileName)

	existing := ""
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return Result{}, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	stripped := StripBanned(existing)
	res := Reconcile(stripped.Text, required)
	res.Removed = stripped.Removed
	res.Changed = res.Changed || stripped.Changed

	if res.Changed {
		if err := utils.WriteFileAtomic(path, []byte(res.Text), 0644); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", FileName, err)
		}
	}
	return res, nil
}
