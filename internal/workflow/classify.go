package workflow

import (
	"github.com/sbhworks/indentflow/internal/schema"
)

// Classify places a row in a stage's pending or history bucket.
//
// Applicability chains through the stages: a row must carry an indent number,
// be approved to reach assignment, have a technician to reach work tracking,
// be completed to reach inspection, and pass inspection to reach payment.
// Rejected rows never appear downstream of approval, even if later columns
// were filled in by hand in the sheet.
func Classify(stage Stage, row schema.Row) Bucket {
	if row.Get(schema.ColIndentNo) == "" {
		return NotApplicable
	}

	approved := row.Get(schema.ColApprovalStatus) == schema.StatusApproved
	technician := row.Get(schema.ColTechnicianName)
	completion := row.Get(schema.ColCompletionStatus)

	switch stage {
	case StageApproval:
		if row.Get(schema.ColApprovalTimestamp) == "" {
			return Pending
		}
		return History

	case StageAssignment:
		if !approved {
			return NotApplicable
		}
		if technician == "" {
			return Pending
		}
		return History

	case StageWork:
		if !approved || technician == "" {
			return NotApplicable
		}
		if completion != schema.CompletionDone && completion != schema.CompletionTerminated {
			return Pending
		}
		// Completed and Terminate both close the work stage.
		return History

	case StageInspection:
		if !approved || technician == "" || completion != schema.CompletionDone {
			return NotApplicable
		}
		if row.Get(schema.ColInspectionActual) == "" {
			return Pending
		}
		return History

	case StagePayment:
		if !approved || row.Get(schema.ColInspectionResult) != schema.InspectionPassed {
			return NotApplicable
		}
		if row.Get(schema.ColBillNo) == "" {
			return Pending
		}
		return History
	}

	return NotApplicable
}
