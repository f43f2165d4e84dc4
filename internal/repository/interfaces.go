// Package repository defines repository interfaces for data access.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/shebashio/backstage-chainloop-plugin/internal/models"
)

// PayloadRepository defines methods for webhook payload data access.
// The table is append-only: there is no update or delete operation.
type PayloadRepository interface {
	// Save inserts a new payload row and returns the assigned id.
	Save(ctx context.Context, entityUID string, payload json.RawMessage) (int64, error)
	// GetByID returns the payload with the given id, or (nil, nil) when
	// no row matches.
	GetByID(ctx context.Context, id int64) (*models.WebhookPayload, error)
	// ListByEntity returns one page of record summaries for an entity,
	// ordered most recent first. A non-empty search narrows the page to
	// rows whose workflow name contains the search substring; Total
	// always counts every row for the entity regardless of search.
	ListByEntity(ctx context.Context, entityUID, search string, page, limit int) (*models.RecordPage, error)
	// ListAll is ListByEntity without the entity filter.
	ListAll(ctx context.Context, search string, page, limit int) (*models.RecordPage, error)
}

// Repositories aggregates all repositories.
type Repositories struct {
	Payload PayloadRepository
}

// NewRepositories creates all repositories with the given database.
func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Payload: NewSQLitePayloadRepository(db),
	}
}
