// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package source

import "testing"

func TestPropertyColumns(t *testing.T) {
	rows := []map[string]any{
		{"name": "Acme", "score": int64(7)},
		{"name": "Umbrella", "founded": int64(1984)},
		{},
	}

	keys, tags := propertyColumns(rows)

	wantKeys := []string{"founded", "name", "score"}
	wantTags := []string{"LONG", "STRING", "LONG"}
	if len(keys) != len(wantKeys) {
		t.Fatalf("keys = %v, want %v", keys, wantKeys)
	}
	for i := range wantKeys {
		if keys[i] != wantKeys[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], wantKeys[i])
		}
		if tags[i] != wantTags[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], wantTags[i])
		}
	}
}

func TestInferTypeTag(t *testing.T) {
	tests := []struct {
		name string
		rows []map[string]any
		key  string
		want string
	}{
		{"all integers", []map[string]any{{"n": int64(1)}, {"n": int64(2)}}, "n", "LONG"},
		{"mixed", []map[string]any{{"n": int64(1)}, {"n": "two"}}, "n", "STRING"},
		{"strings", []map[string]any{{"n": "a"}}, "n", "STRING"},
		{"missing everywhere", []map[string]any{{"other": int64(1)}}, "n", "STRING"},
		{"nil values skipped", []map[string]any{{"n": nil}, {"n": int64(3)}}, "n", "LONG"},
		{"floats are not LONG", []map[string]any{{"n": float64(1.5)}}, "n", "STRING"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferTypeTag(tt.rows, tt.key); got != tt.want {
				t.Errorf("inferTypeTag() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "Acme", "Acme"},
		{"int64", int64(42), "42"},
		{"float", float64(2.5), "2.5"},
		{"bool", true, "true"},
		{"pipe replaced", "a|b", "a b"},
		{"newline replaced", "a\nb", "a b"},
		{"tab replaced", "a\tb", "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.value); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
