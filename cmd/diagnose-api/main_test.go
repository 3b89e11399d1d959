package main

import (
	"encoding/json"
	"testing"
)

// TestStringList tests the lenient symptoms field parsing
func TestStringList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
		ok   bool
	}{
		{"absent", "", nil, true},
		{"null", "null", nil, true},
		{"empty array", "[]", []string{}, true},
		{"strings", `["fever", "cough"]`, []string{"fever", "cough"}, true},
		{"mixed scalars", `["fever", 3, true]`, []string{"fever", "3", "true"}, true},
		{"bare string", `"fever"`, nil, false},
		{"object", `{"fever": true}`, nil, false},
		{"number", "42", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := stringList(json.RawMessage(tt.raw))
			if ok != tt.ok {
				t.Fatalf("stringList(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if !ok {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("stringList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("stringList(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}
