package export

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// HighlightTerminal writes the XML with ANSI colors for terminal preview.
func HighlightTerminal(w io.Writer, xml, style string) error {
	lexer := lexers.Get("xml")
	formatter := formatters.Get("terminal256")

	iterator, err := lexer.Tokenise(nil, xml)
	if err != nil {
		return err
	}
	return formatter.Format(w, styles.Get(style), iterator)
}

// HighlightHTML returns the XML as class-based highlighted HTML plus the CSS
// for the chosen style, for embedding in a web preview.
func HighlightHTML(xml, style string) (string, string, error) {
	lexer := lexers.Get("xml")
	formatter := html.New(
		html.WithClasses(true),
		html.TabWidth(4),
		html.WrapLongLines(true),
	)

	chromaStyle := styles.Get(style)

	iterator, err := lexer.Tokenise(nil, xml)
	if err != nil {
		return "", "", err
	}

	var body strings.Builder
	if err := formatter.Format(&body, chromaStyle, iterator); err != nil {
		return "", "", err
	}

	var css strings.Builder
	if err := formatter.WriteCSS(&css, chromaStyle); err != nil {
		return "", "", err
	}

	return body.String(), css.String(), nil
}
