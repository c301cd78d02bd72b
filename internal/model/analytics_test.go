package model

import "testing"

func TestParseGenderMatchMode(t *testing.T) {
	tests := map[string]GenderMatchMode{
		"":         GenderMatchContains,
		"contains": GenderMatchContains,
		"EXACT":    GenderMatchExact,
		" exact ":  GenderMatchExact,
		"regex":    GenderMatchContains,
	}
	for in, want := range tests {
		if got := ParseGenderMatchMode(in); got != want {
			t.Errorf("ParseGenderMatchMode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenderMatchModeMatches(t *testing.T) {
	tests := []struct {
		mode   GenderMatchMode
		stored string
		filter string
		want   bool
	}{
		{GenderMatchContains, "Male", "", true},
		{GenderMatchContains, "Male", "male", true},
		{GenderMatchContains, "Female", "male", true},
		{GenderMatchContains, "F", "m", false},
		{GenderMatchContains, "M", ".*", false},
		{GenderMatchExact, "Female", "male", false},
		{GenderMatchExact, "MALE", "male", true},
		{GenderMatchExact, "", "", true},
		{GenderMatchExact, "", "m", false},
	}
	for _, tt := range tests {
		if got := tt.mode.Matches(tt.stored, tt.filter); got != tt.want {
			t.Errorf("%s.Matches(%q, %q) = %v, want %v", tt.mode, tt.stored, tt.filter, got, tt.want)
		}
	}
}
