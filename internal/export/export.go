// Package export generates the palette resource file and highlighted
// previews of it.
package export

import (
	"strings"

	"github.com/debemdeboas/palette-drafts/internal/model"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>
<!--
Copyright 2025 The Chromium Authors
Use of this source code is governed by a BSD-style license that can be
found in the LICENSE file.
-->

<resources>
`

// GenerateXML renders the color map as an Android resources file. Sections
// follow the fixed group order: picker dots first, then card backgrounds,
// foreground text and thumbnail placeholders.
func GenerateXML(colors model.ColorMap) string {
	var b strings.Builder
	b.WriteString(xmlHeader)

	b.WriteString("    <!-- Colors used by the tab group color picker UI and for the small color dot indicator on the card. -->\n")
	for _, group := range model.Groups {
		writeColor(&b, group.Colors.Picker, colors)
	}

	b.WriteString("\n    <!-- Colors that define the main background tint for the entire tab group card. -->\n")
	for _, group := range model.Groups {
		writeColor(&b, group.Colors.Card, colors)
	}

	b.WriteString("\n    <!-- Colors for foreground elements, used for the title, tab counter, and action button on a tab group card. -->\n")
	for _, group := range model.Groups {
		writeColor(&b, group.Colors.Text, colors)
	}

	b.WriteString("\n    <!-- Colors for the background of empty mini-thumbnail slots within a tab group card. -->\n")
	for _, group := range model.Groups {
		writeColor(&b, group.Colors.Placeholder, colors)
	}

	b.WriteString("</resources>")
	return b.String()
}

func writeColor(b *strings.Builder, key string, colors model.ColorMap) {
	b.WriteString("    <color name=\"")
	b.WriteString(key)
	b.WriteString("\">")
	b.WriteString(colors[key])
	b.WriteString("</color>\n")
}
