package voice

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// maxSpokenRunes caps an utterance so a long analysis cannot tie up
// the speaker for minutes.
const maxSpokenRunes = 400

// Sanitize turns a chat message into speakable plain text: markdown
// markers and code blocks removed, emoji removed, newlines collapsed
// to sentence breaks, length capped.
func Sanitize(text string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions &^ parser.Autolink)
	doc := p.Parse([]byte(text))

	var raw strings.Builder
	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			switch node.(type) {
			case *ast.Paragraph, *ast.Heading, *ast.ListItem, *ast.BlockQuote, *ast.TableRow:
				raw.WriteString("\n")
			}
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.CodeBlock, *ast.HTMLBlock, *ast.HTMLSpan, *ast.Image:
			return ast.SkipChildren
		case *ast.Code:
			raw.Write(n.Literal)
			return ast.GoToNext
		}
		if leaf := node.AsLeaf(); leaf != nil {
			raw.Write(leaf.Literal)
		}
		return ast.GoToNext
	})

	joined := joinSentences(raw.String())
	stripped := stripEmoji(joined)
	normalized := strings.Join(strings.Fields(stripped), " ")

	runes := []rune(normalized)
	if len(runes) > maxSpokenRunes {
		normalized = strings.TrimSpace(string(runes[:maxSpokenRunes]))
	}
	return normalized
}

// joinSentences collapses line breaks into sentence breaks, adding a
// period only where the preceding line does not already end one.
func joinSentences(text string) string {
	var parts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			parts = append(parts, line)
		}
	}

	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(part)
		if i < len(parts)-1 && !endsSentence(part) {
			b.WriteString(".")
		}
	}
	return b.String()
}

func endsSentence(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return true
	}
	switch runes[len(runes)-1] {
	case '.', '!', '?', ':', ';', ',':
		return true
	}
	return false
}

func stripEmoji(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isEmoji covers the pictograph blocks used in chat replies plus the
// joiners and selectors that compose them.
func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F000 && r <= 0x1FAFF: // pictographs, symbols, flags
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
		return true
	case r >= 0x2B00 && r <= 0x2BFF: // stars and arrows
		return true
	case r >= 0xFE00 && r <= 0xFE0F: // variation selectors
		return true
	case r == 0x200D || r == 0x20E3: // joiner, keycap
		return true
	}
	return false
}
