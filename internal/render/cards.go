// Package render draws terminal mockups of the tab group cards so palette
// changes can be previewed without a browser.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/debemdeboas/palette-drafts/internal/model"
)

const cardWidth = 26

// Cards renders one card mockup per color group, three per row.
func Cards(colors model.ColorMap) string {
	var cards []string
	for _, group := range model.Groups {
		cards = append(cards, Card(group, colors))
	}

	var rows []string
	for i := 0; i < len(cards); i += 3 {
		end := min(i+3, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Card renders a single tab group card: colored dot, title and counter on
// the card background, and two thumbnail placeholder blocks beneath.
func Card(group model.ColorGroup, colors model.ColorMap) string {
	card := lipgloss.Color(colors[group.Colors.Card])
	text := lipgloss.Color(colors[group.Colors.Text])
	picker := lipgloss.Color(colors[group.Colors.Picker])
	placeholder := lipgloss.Color(colors[group.Colors.Placeholder])

	dot := lipgloss.NewStyle().Foreground(picker).Background(card).Render("●")
	title := lipgloss.NewStyle().
		Foreground(text).
		Background(card).
		Bold(true).
		Render(" " + group.Label + " tab group")
	counter := lipgloss.NewStyle().Foreground(text).Background(card).Render(" 3")

	header := lipgloss.NewStyle().
		Background(card).
		Width(cardWidth - 2).
		Render(dot + title + counter)

	thumb := lipgloss.NewStyle().
		Background(placeholder).
		Width((cardWidth - 5) / 2).
		Render(" ")
	thumbs := lipgloss.NewStyle().
		Background(card).
		Width(cardWidth - 2).
		Render(" " + thumb + " " + thumb)

	body := lipgloss.JoinVertical(lipgloss.Left, header, thumbs)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderFor(colors[group.Colors.Card])).
		Padding(0, 1).
		Background(card).
		Margin(0, 1, 1, 0).
		Render(body)
}

// borderFor picks a border shade that stays visible against the card
// background, light cards get a dark border and vice versa.
func borderFor(cardHex string) lipgloss.Color {
	c, err := colorful.Hex(cardHex)
	if err != nil {
		return lipgloss.Color("240")
	}
	if _, _, l := c.Hsl(); l > 0.5 {
		return lipgloss.Color("238")
	}
	return lipgloss.Color("252")
}

// Swatches renders a compact key/value listing of one group's colors.
func Swatches(group model.ColorGroup, colors model.ColorMap) string {
	var b strings.Builder
	for _, key := range []string{
		group.Colors.Picker,
		group.Colors.Card,
		group.Colors.Text,
		group.Colors.Placeholder,
	} {
		swatch := lipgloss.NewStyle().
			Background(lipgloss.Color(colors[key])).
			Render("  ")
		b.WriteString(swatch + " " + colors[key] + "  " + key + "\n")
	}
	return b.String()
}
