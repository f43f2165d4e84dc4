package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/shebashio/backstage-chainloop-plugin/internal/models"
)

// workflowNamePath is the JSON path searched by the list operations.
const workflowNamePath = "$.Metadata.Workflow.Name"

// SQLitePayloadRepository implements PayloadRepository for SQLite/libsql.
type SQLitePayloadRepository struct {
	db *sql.DB
}

// NewSQLitePayloadRepository creates a new SQLite payload repository.
func NewSQLitePayloadRepository(db *sql.DB) *SQLitePayloadRepository {
	return &SQLitePayloadRepository{db: db}
}

// Save inserts a new payload row. The payload is stored verbatim; no
// schema validation is performed.
func (r *SQLitePayloadRepository) Save(ctx context.Context, entityUID string, payload json.RawMessage) (int64, error) {
	now := time.Now().UTC().Format(time.RFC3339)

	res, err := r.db.ExecContext(ctx, `
		INSERT INTO webhook_payloads (entity_uid, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, entityUID, string(payload), now, now)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}

// GetByID retrieves a payload by id. Returns (nil, nil) when no row matches.
func (r *SQLitePayloadRepository) GetByID(ctx context.Context, id int64) (*models.WebhookPayload, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, entity_uid, payload, created_at, updated_at
		FROM webhook_payloads
		WHERE id = ?
	`, id)

	var p models.WebhookPayload
	var payload string
	var createdAt, updatedAt string

	err := row.Scan(&p.ID, &p.EntityUID, &payload, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Payload = json.RawMessage(payload)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &p, nil
}

// ListByEntity returns one page of record summaries for an entity.
// Total counts every row for the entity, deliberately ignoring the
// search filter: the UI pager sizes itself on the entity's full history.
func (r *SQLitePayloadRepository) ListByEntity(ctx context.Context, entityUID, search string, page, limit int) (*models.RecordPage, error) {
	page, limit = clampPaging(page, limit)

	query := `
		SELECT id, entity_uid, payload, created_at, updated_at
		FROM webhook_payloads
		WHERE entity_uid = ?
	`
	args := []any{entityUID}

	if search != "" {
		query += ` AND json_extract(payload, '` + workflowNamePath + `') LIKE ?`
		args = append(args, "%"+search+"%")
	}

	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	records, err := r.querySummaries(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var total int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(id) FROM webhook_payloads WHERE entity_uid = ?`, entityUID,
	).Scan(&total)
	if err != nil {
		return nil, err
	}

	return &models.RecordPage{Records: records, Total: total}, nil
}

// ListAll is ListByEntity without the entity filter.
func (r *SQLitePayloadRepository) ListAll(ctx context.Context, search string, page, limit int) (*models.RecordPage, error) {
	page, limit = clampPaging(page, limit)

	query := `
		SELECT id, entity_uid, payload, created_at, updated_at
		FROM webhook_payloads
	`
	var args []any

	if search != "" {
		query += ` WHERE json_extract(payload, '` + workflowNamePath + `') LIKE ?`
		args = append(args, "%"+search+"%")
	}

	query += ` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	records, err := r.querySummaries(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(id) FROM webhook_payloads`).Scan(&total); err != nil {
		return nil, err
	}

	return &models.RecordPage{Records: records, Total: total}, nil
}

func (r *SQLitePayloadRepository) querySummaries(ctx context.Context, query string, args ...any) ([]models.RecordSummary, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	records := []models.RecordSummary{}
	for rows.Next() {
		var p models.WebhookPayload
		var payload string
		var createdAt, updatedAt string

		if err := rows.Scan(&p.ID, &p.EntityUID, &payload, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		p.Payload = json.RawMessage(payload)
		p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

		records = append(records, p.Summary())
	}

	return records, rows.Err()
}

func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return page, limit
}
