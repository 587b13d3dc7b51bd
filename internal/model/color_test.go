package model

import "testing"

func TestNormalizeHex(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "canonical form unchanged", input: "#1A73E8", want: "#1A73E8"},
		{name: "lowercase uppercased", input: "#1a73e8", want: "#1A73E8"},
		{name: "missing hash prefixed", input: "1A73E8", want: "#1A73E8"},
		{name: "shorthand expanded", input: "#abc", want: "#AABBCC"},
		{name: "shorthand without hash", input: "f0f", want: "#FF00FF"},
		{name: "surrounding whitespace trimmed", input: "  #D93025 ", want: "#D93025"},
		{name: "empty string rejected", input: "", wantErr: true},
		{name: "non-hex digits rejected", input: "#GGHHII", wantErr: true},
		{name: "wrong length rejected", input: "#1234", wantErr: true},
		{name: "seven digits rejected", input: "#1234567", wantErr: true},
		{name: "double hash rejected", input: "##123456", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeHex(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q, got %q", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for %q: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("NormalizeHex(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestIsValidColor(t *testing.T) {
	valid := []string{"#1A73E8", "1a73e8", "#abc", "ABC"}
	for _, s := range valid {
		if !IsValidColor(s) {
			t.Errorf("Expected %q to be valid", s)
		}
	}

	invalid := []string{"", "#12", "red", "#12345G", "# 123456"}
	for _, s := range invalid {
		if IsValidColor(s) {
			t.Errorf("Expected %q to be invalid", s)
		}
	}
}

func TestDefaultColors(t *testing.T) {
	colors := DefaultColors()

	if len(colors) != len(Groups)*4 {
		t.Fatalf("Expected %d default colors, got %d", len(Groups)*4, len(colors))
	}

	for _, group := range Groups {
		for _, key := range []string{
			group.Colors.Picker,
			group.Colors.Card,
			group.Colors.Text,
			group.Colors.Placeholder,
		} {
			value, ok := colors[key]
			if !ok {
				t.Errorf("Missing default for %q", key)
				continue
			}
			normalized, err := NormalizeHex(value)
			if err != nil || normalized != value {
				t.Errorf("Default %q = %q is not canonical", key, value)
			}
		}
	}

	// DefaultColors must hand out independent copies.
	colors["tab_group_color_picker_blue"] = "#000000"
	if DefaultColors()["tab_group_color_picker_blue"] == "#000000" {
		t.Error("Mutating a returned default map changed the shared defaults")
	}
}

func TestColorMapClone(t *testing.T) {
	original := ColorMap{"tab_group_color_picker_blue": "#1A73E8"}
	clone := original.Clone()

	clone["tab_group_color_picker_blue"] = "#FFFFFF"
	if original["tab_group_color_picker_blue"] != "#1A73E8" {
		t.Error("Mutating a clone changed the original map")
	}

	var nilMap ColorMap
	if nilMap.Clone() != nil {
		t.Error("Expected nil map to clone to nil")
	}
}

func TestDraftHelpers(t *testing.T) {
	empty := EmptyDraft(3)
	if empty.ID != 3 || empty.Name != "Draft 3" || !empty.IsEmpty() {
		t.Errorf("Unexpected empty draft: %+v", empty)
	}

	full := Draft{ID: 1, Name: "Palette A", Colors: DefaultColors(), Timestamp: 42}
	if full.IsEmpty() {
		t.Error("Draft with colors reported empty")
	}

	clone := full.Clone()
	clone.Colors["tab_group_color_picker_blue"] = "#000000"
	if full.Colors["tab_group_color_picker_blue"] == "#000000" {
		t.Error("Mutating a cloned draft changed the original")
	}
}
