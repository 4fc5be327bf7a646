package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func reasonsSchema() *Schema {
	return &Schema{
		Name: "test-reasons",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"reasons": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"skill_id": map[string]any{"type": "string"},
							"reason":   map[string]any{"type": "string", "minLength": 1},
						},
						"required": []any{"skill_id", "reason"},
					},
				},
			},
			"required": []any{"reasons"},
		},
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid", `{"reasons":[{"skill_id":"lulu-fira","reason":"Builds on Fire."}]}`, false},
		{"empty list", `{"reasons":[]}`, false},
		{"missing required", `{}`, true},
		{"wrong type", `{"reasons":"lots"}`, true},
		{"empty reason", `{"reasons":[{"skill_id":"x","reason":""}]}`, true},
		{"not json", `reasons: yes`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(reasonsSchema(), json.RawMessage(tt.raw))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var inv *InvalidResponseError
				if !errors.As(err, &inv) {
					t.Fatalf("error type = %T, want *InvalidResponseError", err)
				}
				if string(inv.Content) != tt.raw {
					t.Errorf("Content = %s, want raw input", inv.Content)
				}
			}
		})
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema should accept anything, got %v", err)
	}
}

func TestCompileSchema_Cached(t *testing.T) {
	s := reasonsSchema()
	s.Name = "test-cached"
	a, err := compileSchema(s)
	if err != nil {
		t.Fatal(err)
	}
	b, err := compileSchema(s)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("second compile should return the cached schema")
	}
}
