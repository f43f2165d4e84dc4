package handlers

import (
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	_ "github.com/tursodatabase/go-libsql"

	"github.com/shebashio/backstage-chainloop-plugin/internal/database/migrations"
	"github.com/shebashio/backstage-chainloop-plugin/internal/http/mw"
	"github.com/shebashio/backstage-chainloop-plugin/internal/repository"
)

const testToken = "test-secret"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// setupTestDB creates an in-memory SQLite database with migrations applied.
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

// setupTestRouter wires the plugin routes the same way main does and
// returns the router plus the backing repositories.
func setupTestRouter(t *testing.T) (http.Handler, *repository.Repositories) {
	t.Helper()

	db := setupTestDB(t)
	repos := repository.NewRepositories(db)
	logger := testLogger()

	ingress := NewIngressHandler(repos.Payload, 1<<20, logger)
	records := NewRecordsHandler(repos.Payload, logger)

	router := chi.NewRouter()
	router.Post("/echo", ingress.HandleEcho)
	router.With(mw.WebhookToken(testToken, logger)).
		Post("/entity/{uid}/webhook", ingress.HandleWebhook)
	router.Get("/records", records.HandleRecords)
	router.Get("/details/{id}", records.HandleDetails)

	return router, repos
}
