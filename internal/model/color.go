// Package model defines the palette data model: color maps, color groups and
// draft records shared by the slot store, the local persistence adapters and
// the remote draft service.
package model

import (
	"fmt"
	"regexp"
	"strings"
)

// ColorMap maps a color key to a canonical "#RRGGBB" uppercase hex string.
type ColorMap map[string]string

// ColorRoles holds the four color keys of one group.
type ColorRoles struct {
	Picker      string
	Card        string
	Text        string
	Placeholder string
}

// ColorGroup is one labeled group of the palette.
type ColorGroup struct {
	ID     string
	Label  string
	Colors ColorRoles
}

func group(id, label string) ColorGroup {
	return ColorGroup{
		ID:    id,
		Label: label,
		Colors: ColorRoles{
			Picker:      "tab_group_color_picker_" + id,
			Card:        "tab_group_card_color_" + id,
			Text:        "tab_group_card_text_color_" + id,
			Placeholder: "tab_group_card_placeholder_color_" + id,
		},
	}
}

// Groups lists the palette groups in display order.
var Groups = []ColorGroup{
	group("blue", "Blue"),
	group("cyan", "Cyan"),
	group("green", "Green"),
	group("grey", "Grey"),
	group("orange", "Orange"),
	group("pink", "Pink"),
	group("purple", "Purple"),
	group("red", "Red"),
	group("yellow", "Yellow"),
}

// defaultHex holds the day-mode defaults per group: picker, card, text,
// placeholder.
var defaultHex = map[string][4]string{
	"blue":   {"#1A73E8", "#D0E4FF", "#001944", "#E7F2FF"},
	"cyan":   {"#007B83", "#ACEDFF", "#001F26", "#D8F6FF"},
	"green":  {"#188038", "#BEEFBB", "#002110", "#DDF8D8"},
	"grey":   {"#5F6368", "#E3E3E3", "#1B1B1C", "#F2F2F2"},
	"orange": {"#E8710A", "#FFDCC3", "#321200", "#FFEDE1"},
	"pink":   {"#D01884", "#FFD8EF", "#3D0023", "#FFECF6"},
	"purple": {"#A142F4", "#EEDCFE", "#280255", "#F7ECFE"},
	"red":    {"#D93025", "#FFDADC", "#3A0907", "#FFECEE"},
	"yellow": {"#F9AB00", "#FFE07C", "#2F1400", "#FFF2B4"},
}

var defaultColors = buildDefaults()

func buildDefaults() ColorMap {
	colors := make(ColorMap, len(Groups)*4)
	for _, g := range Groups {
		hex := defaultHex[g.ID]
		colors[g.Colors.Picker] = hex[0]
		colors[g.Colors.Card] = hex[1]
		colors[g.Colors.Text] = hex[2]
		colors[g.Colors.Placeholder] = hex[3]
	}
	return colors
}

// DefaultColors returns a fresh copy of the default palette.
func DefaultColors() ColorMap {
	return defaultColors.Clone()
}

// IsColorKey reports whether key belongs to the fixed palette key set.
func IsColorKey(key string) bool {
	_, ok := defaultColors[key]
	return ok
}

// Clone returns a deep copy of the map. A nil map clones to nil.
func (m ColorMap) Clone() ColorMap {
	if m == nil {
		return nil
	}
	clone := make(ColorMap, len(m))
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

var hexInput = regexp.MustCompile(`^#?([0-9A-Fa-f]{6}|[0-9A-Fa-f]{3})$`)

// NormalizeHex canonicalizes a hex color string: a missing '#' is prefixed,
// 3-digit shorthand is expanded and lowercase digits are uppercased. The
// canonical form matches ^#[0-9A-F]{6}$.
func NormalizeHex(s string) (string, error) {
	m := hexInput.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", fmt.Errorf("invalid color %q", s)
	}

	digits := strings.ToUpper(m[1])
	if len(digits) == 3 {
		digits = strings.Repeat(string(digits[0]), 2) +
			strings.Repeat(string(digits[1]), 2) +
			strings.Repeat(string(digits[2]), 2)
	}
	return "#" + digits, nil
}

// IsValidColor reports whether s is an accepted 3- or 6-digit hex color.
func IsValidColor(s string) bool {
	return hexInput.MatchString(strings.TrimSpace(s))
}
