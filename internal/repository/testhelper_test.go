package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/shebashio/backstage-chainloop-plugin/internal/database/migrations"
)

// setupTestDB creates an in-memory SQLite database for testing.
// It runs migrations and returns a database connection that will be
// cleaned up when the test completes.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("libsql", ":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := migrations.Run(db, nil); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// setupTestRepos creates all repositories using a test database.
func setupTestRepos(t *testing.T) *Repositories {
	t.Helper()
	db := setupTestDB(t)
	return NewRepositories(db)
}

// savePayloads saves n payloads for an entity with distinct workflow names
// ("wf-0" .. "wf-n-1") and returns the assigned ids in insertion order.
func savePayloads(t *testing.T, repo PayloadRepository, entityUID string, n int) []int64 {
	t.Helper()

	ids := make([]int64, 0, n)
	for i := 0; i < n; i++ {
		body := fmt.Sprintf(`{"Kind":"Attestation","Metadata":{"Workflow":{"Name":"wf-%d"},"WorkflowRun":{"Id":"run-%d"}}}`, i, i)
		id, err := repo.Save(context.Background(), entityUID, json.RawMessage(body))
		if err != nil {
			t.Fatalf("failed to save payload %d: %v", i, err)
		}
		ids = append(ids, id)
	}
	return ids
}
