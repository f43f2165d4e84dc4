package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWebhookPayload_Summary(t *testing.T) {
	payload := []byte(`{
		"Kind": "Attestation",
		"Metadata": {
			"Workflow": {"Name": "build", "Team": "platform"},
			"WorkflowRun": {"Id": "r1", "State": "success"}
		}
	}`)

	now := time.Now()
	p := &WebhookPayload{ID: 42, EntityUID: "e1", Payload: payload, CreatedAt: now, UpdatedAt: now}

	s := p.Summary()

	if s.ID != 42 {
		t.Errorf("ID = %d, want 42", s.ID)
	}
	if s.Kind != "Attestation" {
		t.Errorf("Kind = %q, want %q", s.Kind, "Attestation")
	}

	var workflow map[string]any
	if err := json.Unmarshal(s.Workflow, &workflow); err != nil {
		t.Fatalf("failed to unmarshal workflow: %v", err)
	}
	if workflow["Name"] != "build" {
		t.Errorf("workflow Name = %v, want %q", workflow["Name"], "build")
	}

	var run map[string]any
	if err := json.Unmarshal(s.WorkflowRun, &run); err != nil {
		t.Fatalf("failed to unmarshal workflowRun: %v", err)
	}
	if run["Id"] != "r1" {
		t.Errorf("workflowRun Id = %v, want %q", run["Id"], "r1")
	}
}

func TestWebhookPayload_Summary_MissingPaths(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"empty object", `{}`},
		{"missing metadata", `{"Kind":"Attestation"}`},
		{"metadata without workflow", `{"Metadata":{"Other":1}}`},
		{"scalar payload", `"just a string"`},
		{"array payload", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &WebhookPayload{ID: 1, Payload: []byte(tt.payload)}
			s := p.Summary()

			if s.ID != 1 {
				t.Errorf("ID = %d, want 1", s.ID)
			}
			if s.Workflow != nil {
				t.Errorf("Workflow = %s, want nil", s.Workflow)
			}
			if s.WorkflowRun != nil {
				t.Errorf("WorkflowRun = %s, want nil", s.WorkflowRun)
			}
		})
	}
}

func TestWebhookPayload_WorkflowName(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{"present", `{"Metadata":{"Workflow":{"Name":"deploy"}}}`, "deploy"},
		{"absent", `{"Metadata":{}}`, ""},
		{"empty payload", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &WebhookPayload{Payload: []byte(tt.payload)}
			if got := p.WorkflowName(); got != tt.expected {
				t.Errorf("WorkflowName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRecordSummary_JSONShape(t *testing.T) {
	p := &WebhookPayload{
		ID:      7,
		Payload: []byte(`{"Kind":"Attestation","Metadata":{"Workflow":{"Name":"build"}}}`),
	}

	data, err := json.Marshal(p.Summary())
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	if _, ok := out["payload"]; ok {
		t.Error("summary must not expose the raw payload")
	}
	if _, ok := out["workflowRun"]; ok {
		t.Error("absent workflowRun should be omitted")
	}
	if out["kind"] != "Attestation" {
		t.Errorf("kind = %v, want Attestation", out["kind"])
	}
}
