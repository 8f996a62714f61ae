package precommit

import (
	"path"

	"github.com/eenv-dev/eenv/internal/envscan"
)

// State is the gate's verdict on a staged set.
type State int

const (
	// StateClean allows the commit: no raw secret file is staged.
	StateClean State = iota
	// StateBlocked refuses the commit: at least one raw secret file is
	// staged. Blocked is a control signal, not a failure.
	StateBlocked
)

func (s State) String() string {
	if s == StateBlocked {
		return "blocked"
	}
	return "clean"
}

// Decision is the gate's full output for a staged set.
type Decision struct {
	State State
	// Offenders lists the staged raw secret paths, in staging order.
	Offenders []string
}

// Evaluate is the pure transition function of the gate: it classifies
// each staged path by base name and blocks when any is a raw secret
// file. Examples, the artifact, and unrelated files never block. The
// gate only decides; it mutates nothing.
func Evaluate(stagedPaths []string) Decision {
	var offenders []string
	for _, p := range stagedPaths {
		class, ok := envscan.Classify(path.Base(p))
		if ok && class == envscan.ClassReal {
			offenders = append(offenders, p)
		}
	}
	if len(offenders) == 0 {
		return Decision{State: StateClean}
	}
	return Decision{State: StateBlocked, Offenders: offenders}
}
