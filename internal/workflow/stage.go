// Package workflow holds the indent lifecycle logic: classifying sheet rows
// into per-stage pending/history buckets, building the sparse column updates
// each stage writes, and aggregating dashboard statistics.
package workflow

// Stage is a phase in the indent lifecycle.
type Stage int

const (
	StageApproval Stage = iota
	StageAssignment
	StageWork
	StageInspection
	StagePayment
)

func (s Stage) String() string {
	switch s {
	case StageApproval:
		return "approval"
	case StageAssignment:
		return "assignment"
	case StageWork:
		return "work"
	case StageInspection:
		return "inspection"
	case StagePayment:
		return "payment"
	default:
		return "unknown"
	}
}

// Bucket is the classifier verdict for a row within a stage. A row's
// position in the workflow is never stored; it is derived from which
// columns are populated.
type Bucket int

const (
	// NotApplicable means the row has not reached this stage, or an
	// earlier stage took it out of the flow.
	NotApplicable Bucket = iota
	Pending
	History
)

func (b Bucket) String() string {
	switch b {
	case Pending:
		return "pending"
	case History:
		return "history"
	default:
		return "not-applicable"
	}
}
