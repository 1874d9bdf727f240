package models

import (
	"time"

	"gorm.io/datatypes"
)

// Journal entry states.
const (
	JournalPending      = "pending"
	JournalAcknowledged = "acknowledged"
	JournalFailed       = "failed"
)

// MutationJournal records every write submitted to the sheet's script
// endpoint. The idempotency key makes resubmission safe: replaying an
// acknowledged key returns the stored ack instead of mutating the sheet
// (and re-uploading files) a second time.
type MutationJournal struct {
	ID             string         `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	IdempotencyKey string         `gorm:"uniqueIndex;not null" json:"idempotencyKey"`
	Action         string         `gorm:"not null" json:"action"`
	SheetName      string         `json:"sheetName"`
	RowIndex       int            `json:"rowIndex,omitempty"`
	RowData        datatypes.JSON `json:"rowData"`
	Status         string         `gorm:"default:'pending'" json:"status"`
	Message        string         `json:"message,omitempty"`
	SubmittedBy    string         `json:"submittedBy,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for MutationJournal model
func (MutationJournal) TableName() string {
	return "mutation_journal"
}
