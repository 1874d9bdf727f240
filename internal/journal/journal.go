// Package journal persists a record of every sheet mutation and enforces
// idempotency across resubmissions.
package journal

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sbhworks/indentflow/internal/database"
	"github.com/sbhworks/indentflow/internal/models"
	"github.com/sbhworks/indentflow/internal/sheet"
	"gorm.io/gorm"
)

// Store wraps the journal table.
type Store struct {
	db *database.DB
}

func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Begin registers a mutation under an idempotency key before submission.
// replay reports that the key was already acknowledged; the caller should
// return the stored outcome instead of submitting again. A key that was
// journaled but never acknowledged (crash, rejection) is retried in place.
func (s *Store) Begin(key, submittedBy string, m sheet.Mutation) (entry *models.MutationJournal, replay bool, err error) {
	var existing models.MutationJournal
	lookup := s.db.Where("idempotency_key = ?", key).First(&existing)
	if lookup.Error == nil {
		if existing.Status == models.JournalAcknowledged {
			return &existing, true, nil
		}
		return &existing, false, nil
	}
	if !errors.Is(lookup.Error, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("journal lookup: %w", lookup.Error)
	}

	rowData, err := json.Marshal(m.RowData)
	if err != nil {
		return nil, false, fmt.Errorf("encode journal payload: %w", err)
	}

	entry = &models.MutationJournal{
		IdempotencyKey: key,
		Action:         m.Action,
		SheetName:      m.SheetName,
		RowIndex:       m.RowIndex,
		RowData:        rowData,
		Status:         models.JournalPending,
		SubmittedBy:    submittedBy,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, false, fmt.Errorf("journal create: %w", err)
	}
	return entry, false, nil
}

// Acknowledge marks an entry as confirmed by the script endpoint.
func (s *Store) Acknowledge(entry *models.MutationJournal, message string) error {
	entry.Status = models.JournalAcknowledged
	entry.Message = message
	return s.db.Save(entry).Error
}

// Fail records a rejected or undeliverable mutation. The entry stays in the
// journal so the same key can be retried.
func (s *Store) Fail(entry *models.MutationJournal, cause error) error {
	entry.Status = models.JournalFailed
	if cause != nil {
		entry.Message = cause.Error()
	}
	return s.db.Save(entry).Error
}
