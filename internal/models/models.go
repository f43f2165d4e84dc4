// Package models contains domain models shared across the service.
package models

import (
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"
)

// WebhookPayload is a persisted webhook delivery. Rows are append-only:
// entity_uid and payload are set once at creation and never updated.
type WebhookPayload struct {
	ID        int64           `json:"id"`
	EntityUID string          `json:"entity_uid"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RecordSummary is the read-time view of a stored payload. The workflow,
// workflowRun and kind fields are extracted from conventional paths inside
// the payload document; the raw payload itself is never exposed here.
type RecordSummary struct {
	ID          int64           `json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Workflow    json.RawMessage `json:"workflow,omitempty"`
	WorkflowRun json.RawMessage `json:"workflowRun,omitempty"`
	Kind        string          `json:"kind,omitempty"`
}

// RecordPage is one page of record summaries plus the total row count
// for the queried scope.
type RecordPage struct {
	Records []RecordSummary `json:"records"`
	Total   int             `json:"total"`
}

// Summary derives the read-time view from the stored payload.
// Missing paths resolve to empty values rather than errors: the payload
// is an open-ended document and carries no schema guarantees.
func (p *WebhookPayload) Summary() RecordSummary {
	s := RecordSummary{
		ID:        p.ID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}

	if workflow := gjson.GetBytes(p.Payload, "Metadata.Workflow"); workflow.Exists() {
		s.Workflow = json.RawMessage(workflow.Raw)
	}
	if run := gjson.GetBytes(p.Payload, "Metadata.WorkflowRun"); run.Exists() {
		s.WorkflowRun = json.RawMessage(run.Raw)
	}
	s.Kind = gjson.GetBytes(p.Payload, "Kind").String()

	return s
}

// WorkflowName returns the workflow name from the payload, or "" when the
// path is absent.
func (p *WebhookPayload) WorkflowName() string {
	return gjson.GetBytes(p.Payload, "Metadata.Workflow.Name").String()
}
