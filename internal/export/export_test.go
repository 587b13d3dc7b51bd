package export

import (
	"strings"
	"testing"

	"github.com/debemdeboas/palette-drafts/internal/model"
)

func TestGenerateXML(t *testing.T) {
	xml := GenerateXML(model.DefaultColors())

	if !strings.HasPrefix(xml, `<?xml version="1.0" encoding="utf-8"?>`) {
		t.Error("Missing XML declaration")
	}
	if !strings.HasSuffix(xml, "</resources>") {
		t.Error("Missing closing resources tag")
	}

	if n := strings.Count(xml, "<color name="); n != len(model.Groups)*4 {
		t.Errorf("Expected %d color entries, got %d", len(model.Groups)*4, n)
	}
	if n := strings.Count(xml, "<!--"); n != 5 {
		t.Errorf("Expected license header plus four section comments, got %d comment blocks", n)
	}

	if !strings.Contains(xml, `<color name="tab_group_color_picker_blue">#1A73E8</color>`) {
		t.Error("Missing picker entry for blue")
	}
	if !strings.Contains(xml, `<color name="tab_group_card_placeholder_color_yellow">#FFF2B4</color>`) {
		t.Error("Missing placeholder entry for yellow")
	}

	// Sections appear in role order: all pickers before all cards, cards
	// before text, text before placeholders.
	pickerIdx := strings.Index(xml, "tab_group_color_picker_yellow")
	cardIdx := strings.Index(xml, "tab_group_card_color_blue")
	textIdx := strings.Index(xml, "tab_group_card_text_color_blue")
	placeholderIdx := strings.Index(xml, "tab_group_card_placeholder_color_blue")
	if !(pickerIdx < cardIdx && cardIdx < textIdx && textIdx < placeholderIdx) {
		t.Errorf("Sections out of order: picker=%d card=%d text=%d placeholder=%d",
			pickerIdx, cardIdx, textIdx, placeholderIdx)
	}

	// Within a section, groups appear in display order.
	blueIdx := strings.Index(xml, "tab_group_color_picker_blue")
	if blueIdx > pickerIdx {
		t.Error("Groups out of display order within the picker section")
	}
}

func TestGenerateXMLUsesProvidedColors(t *testing.T) {
	colors := model.DefaultColors()
	colors["tab_group_color_picker_blue"] = "#ABCDEF"

	xml := GenerateXML(colors)
	if !strings.Contains(xml, `<color name="tab_group_color_picker_blue">#ABCDEF</color>`) {
		t.Error("Edited color not reflected in the output")
	}
	if strings.Contains(xml, "#1A73E8") {
		t.Error("Default blue still present after override")
	}
}
