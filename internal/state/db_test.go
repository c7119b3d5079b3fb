package state

import (
	"database/sql"
	"fmt"
	"testing"
	"time"
)

// setupTestDB opens a fresh in-memory database for testing.
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open()
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestOpen_AppliesSchema(t *testing.T) {
	db := setupTestDB(t)

	for _, table := range []string{"schema_version", "tasks"} {
		var count int
		row := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table)
		if err := row.Scan(&count); err != nil {
			t.Errorf("failed to check table %s: %v", table, err)
		}
		if count != 1 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestOpen_IsolatedDatabases(t *testing.T) {
	a := setupTestDB(t)
	b := setupTestDB(t)

	if _, err := a.Exec(`INSERT INTO tasks (id, position, title, description, created_at) VALUES ('x', 1, 't', 'd', '2024-01-01T00:00:00Z')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	var count int
	if err := b.QueryRow("SELECT COUNT(*) FROM tasks").Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("second database sees %d rows, want 0", count)
	}
}

func TestClose(t *testing.T) {
	db, err := Open()
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if err := db.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}

	// Subsequent operations should fail
	_, err = db.Query("SELECT 1")
	if err == nil {
		t.Error("expected error after close, got nil")
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		if err := db.Migrate(); err != nil {
			t.Fatalf("Migrate (iteration %d) failed: %v", i, err)
		}
	}

	version, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion failed: %v", err)
	}
	if version != 1 {
		t.Errorf("schema version = %d, want 1", version)
	}
}

func TestTransaction_Success(t *testing.T) {
	db := setupTestDB(t)

	err := db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO tasks (id, position, title, description, created_at) VALUES (?, ?, ?, ?, ?)`,
			"tx-1", 1, "t", "d", "2024-01-01T00:00:00Z")
		return err
	})
	if err != nil {
		t.Fatalf("Transaction failed: %v", err)
	}

	var count int
	row := db.QueryRow("SELECT COUNT(*) FROM tasks WHERE id = ?", "tx-1")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("failed to verify: %v", err)
	}
	if count != 1 {
		t.Error("transaction was not committed")
	}
}

func TestTransaction_Rollback(t *testing.T) {
	db := setupTestDB(t)

	err := db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO tasks (id, position, title, description, created_at) VALUES (?, ?, ?, ?, ?)`,
			"tx-fail", 1, "t", "d", "2024-01-01T00:00:00Z")
		if err != nil {
			return err
		}
		return fmt.Errorf("simulated error")
	})
	if err == nil {
		t.Error("expected error from Transaction")
	}

	var count int
	row := db.QueryRow("SELECT COUNT(*) FROM tasks WHERE id = ?", "tx-fail")
	if err := row.Scan(&count); err != nil {
		t.Fatalf("failed to verify: %v", err)
	}
	if count != 0 {
		t.Error("transaction was not rolled back")
	}
}

func TestFormatAndParseTime(t *testing.T) {
	now := time.Now()
	parsed, err := parseTime(formatTime(now))
	if err != nil {
		t.Fatalf("parseTime failed: %v", err)
	}
	if !now.Equal(parsed) {
		t.Errorf("time round-trip failed: got %v, want %v", parsed, now.UTC())
	}
}

func TestParseNullableTime(t *testing.T) {
	validTime := sql.NullString{String: "2024-01-01T12:00:00Z", Valid: true}
	if got, err := parseNullableTime(validTime); err != nil || got == nil {
		t.Errorf("parseNullableTime(valid) = %v, %v; want non-nil time", got, err)
	}

	if got, err := parseNullableTime(sql.NullString{Valid: false}); err != nil || got != nil {
		t.Errorf("parseNullableTime(null) = %v, %v; want nil, nil", got, err)
	}

	badFormat := sql.NullString{String: "not a time", Valid: true}
	if _, err := parseNullableTime(badFormat); err == nil {
		t.Error("expected error for invalid format")
	}
}

func TestNullableTime(t *testing.T) {
	if nullableTime(nil).Valid {
		t.Error("nullableTime(nil) should be invalid")
	}
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	got := nullableTime(&now)
	if !got.Valid || got.String != "2024-01-01T12:00:00Z" {
		t.Errorf("nullableTime = %+v, want valid 2024-01-01T12:00:00Z", got)
	}
}
