package journal

import (
	"errors"
	"os"
	"testing"

	"github.com/sbhworks/indentflow/internal/config"
	"github.com/sbhworks/indentflow/internal/database"
	"github.com/sbhworks/indentflow/internal/models"
	"github.com/sbhworks/indentflow/internal/schema"
	"github.com/sbhworks/indentflow/internal/sheet"
)

// testDB boots the embedded PostgreSQL instance (localhost with no password
// selects it automatically) and migrates the journal table.
func testDB(t *testing.T) *database.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping embedded database test in short mode")
	}

	db, err := database.Connect(config.DatabaseConfig{
		Host:     "localhost",
		Username: "postgres",
		Database: "indentflow_test",
	})
	if err != nil {
		t.Fatalf("Failed to start embedded database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Database close error: %v", err)
		}
		os.RemoveAll("./db_data")
	})

	if err := db.AutoMigrate(&models.MutationJournal{}); err != nil {
		t.Fatalf("Failed to migrate journal table: %v", err)
	}
	return db
}

func journalCount(t *testing.T, db *database.DB, key string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.MutationJournal{}).
		Where("idempotency_key = ?", key).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count journal entries: %v", err)
	}
	return n
}

func TestJournalIdempotency(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)

	m := sheet.Mutation{
		Action:    sheet.ActionUpdate,
		SheetName: "SBH Maintenance",
		RowIndex:  5,
		RowData:   schema.NewUpdate(schema.WidthApproval),
	}

	entry, replay, err := store.Begin("key-ack", "approver1", m)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if replay {
		t.Fatal("First Begin must not report a replay")
	}
	if entry.Status != models.JournalPending {
		t.Errorf("New entry status = %q, want pending", entry.Status)
	}

	if err := store.Acknowledge(entry, "Row 5 updated"); err != nil {
		t.Fatalf("Acknowledge failed: %v", err)
	}

	// Resubmitting an acknowledged key returns the stored outcome.
	again, replay, err := store.Begin("key-ack", "approver1", m)
	if err != nil {
		t.Fatalf("Second Begin failed: %v", err)
	}
	if !replay {
		t.Fatal("Acknowledged key must report a replay")
	}
	if again.Message != "Row 5 updated" {
		t.Errorf("Replay message = %q, want the stored ack", again.Message)
	}
	if n := journalCount(t, db, "key-ack"); n != 1 {
		t.Errorf("Expected a single entry for the key, found %d", n)
	}
}

func TestJournalFailedKeyRetriesInPlace(t *testing.T) {
	db := testDB(t)
	store := NewStore(db)

	m := sheet.Mutation{
		Action:    sheet.ActionUpdate,
		SheetName: "SBH Maintenance",
		RowIndex:  7,
		RowData:   schema.NewUpdate(schema.WidthWork),
	}

	entry, replay, err := store.Begin("key-fail", "supervisor1", m)
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if replay {
		t.Fatal("First Begin must not report a replay")
	}

	if err := store.Fail(entry, errors.New("script endpoint rejected mutation")); err != nil {
		t.Fatalf("Fail failed: %v", err)
	}

	// A failed key is retried, not replayed and not duplicated.
	retry, replay, err := store.Begin("key-fail", "supervisor1", m)
	if err != nil {
		t.Fatalf("Retry Begin failed: %v", err)
	}
	if replay {
		t.Fatal("Failed key must not report a replay")
	}
	if retry.Status != models.JournalFailed {
		t.Errorf("Retry should hand back the existing entry, status = %q", retry.Status)
	}
	if n := journalCount(t, db, "key-fail"); n != 1 {
		t.Errorf("Expected a single entry for the key, found %d", n)
	}
}
