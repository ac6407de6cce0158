package httputil

import (
	"encoding/json"
	"testing"
)

func TestOptionalStringUnmarshal(t *testing.T) {
	type payload struct {
		Description OptionalString `json:"description"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantNil     bool
		wantValue   string
	}{
		{
			name:        "field absent",
			body:        `{}`,
			wantPresent: false,
		},
		{
			name:        "field null",
			body:        `{"description": null}`,
			wantPresent: true,
			wantNil:     true,
		},
		{
			name:        "field empty string",
			body:        `{"description": ""}`,
			wantPresent: true,
			wantValue:   "",
		},
		{
			name:        "field with value",
			body:        `{"description": "engine manuals"}`,
			wantPresent: true,
			wantValue:   "engine manuals",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}

			if p.Description.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", p.Description.Present, tt.wantPresent)
			}
			if !tt.wantPresent {
				return
			}
			if tt.wantNil {
				if p.Description.Value != nil {
					t.Errorf("Value = %q, want nil", *p.Description.Value)
				}
				return
			}
			if p.Description.Value == nil {
				t.Fatal("Value = nil, want non-nil")
			}
			if *p.Description.Value != tt.wantValue {
				t.Errorf("Value = %q, want %q", *p.Description.Value, tt.wantValue)
			}
		})
	}
}

func TestOptionalStringRejectsNonString(t *testing.T) {
	var o OptionalString
	if err := json.Unmarshal([]byte(`42`), &o); err == nil {
		t.Error("unmarshal of a number succeeded, want error")
	}
}
