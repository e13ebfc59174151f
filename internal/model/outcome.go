package model

import "fmt"

// Outcome records how a single download task ended.
//
// Err is nil for a success. A run produces exactly one Outcome per
// task, in task order, so successes and failures always add up to the
// number of tasks.
type Outcome struct {
	// FileName is the target filename of the task this outcome belongs to.
	FileName string

	// Err is nil on success, otherwise the reason the task failed.
	Err error
}

// Failed reports whether the task ended in failure.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Reason returns the failure reason, or "" for a success.
func (o Outcome) Reason() string {
	if o.Err == nil {
		return ""
	}
	return o.Err.Error()
}

// Tally sums the outcomes of one run.
type Tally struct {
	// Succeeded is the number of track logs fetched, transformed and saved.
	Succeeded int

	// Failed is the number of tasks that ended in failure, aborted
	// tasks included.
	Failed int
}

// Total returns the number of tasks the tally covers.
func (t Tally) Total() int {
	return t.Succeeded + t.Failed
}

// String formats the tally the way it is reported at the end of a run.
func (t Tally) String() string {
	return fmt.Sprintf("%d succeeded, %d failed", t.Succeeded, t.Failed)
}

// TallyOutcomes folds a run's outcomes into a Tally.
func TallyOutcomes(outcomes []Outcome) Tally {
	var t Tally
	for _, o := range outcomes {
		if o.Failed() {
			t.Failed++
		} else {
			t.Succeeded++
		}
	}
	return t
}
