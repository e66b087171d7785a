// Copyright (C) 2025-2026 Kraklabs. All rights reserved.
// Use of this source code is governed by the AGPL-3.0
// license that can be found in the LICENSE file.

package graph

import "testing"

func TestMapType(t *testing.T) {
	tests := []struct {
		tag  string
		want Type
	}{
		{"STRING", TypeSymbol},
		{"LONG", TypeUnsigned},
		{"INT", TypeUnsigned},
		{"FLOAT", TypeSymbol},
		{"DATETIME", TypeSymbol},
		{"", TypeSymbol},
		{"string", TypeSymbol}, // tags are case-sensitive
		{"long", TypeSymbol},
	}
	for _, tt := range tests {
		if got := MapType(tt.tag); got != tt.want {
			t.Errorf("MapType(%q) = %s, want %s", tt.tag, got, tt.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"name", "Name"},
		{"cityScore", "CityScore"}, // rest of the string is untouched
		{"URL", "URL"},
		{"", ""},
		{"x", "X"},
	}
	for _, tt := range tests {
		if got := Capitalize(tt.in); got != tt.want {
			t.Errorf("Capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
