// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/scrollback/highlight.go
// Summary: Loads files into styled lines using go-enry detection and Chroma lexing.

package scrollback

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-enry/go-enry/v2"
)

const (
	defaultStyleName = "catppuccin-mocha"
	tabWidth         = 4
)

// LoadFile reads path and returns its highlighted lines and detected language.
func LoadFile(path, styleName string) ([]Line, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", path, err)
	}
	lines, lang := Highlight(filepath.Base(path), content, styleName)
	return lines, lang, nil
}

// Highlight splits content into lines with token colors. Binary content is
// returned as a single placeholder line.
func Highlight(filename string, content []byte, styleName string) ([]Line, string) {
	if enry.IsBinary(content) {
		return []Line{{Text: fmt.Sprintf("(binary file, %d bytes)", len(content))}}, ""
	}
	lang := enry.GetLanguage(filename, content)
	text := string(content)

	lexer := selectLexer(lang, filename, text)
	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), nil, text)
	if err != nil {
		return plainLines(text), lang
	}

	style := chromaStyle(styleName)
	base := style.Get(chroma.Text).Colour

	var out []Line
	for _, toks := range chroma.SplitTokensIntoLines(tokens) {
		out = append(out, styleLine(toks, style, base))
	}
	return out, lang
}

func selectLexer(lang, filename, text string) chroma.Lexer {
	if lang != "" {
		if l := lexers.Get(lang); l != nil {
			return l
		}
	}
	if l := lexers.Match(filename); l != nil {
		return l
	}
	if l := lexers.Analyse(text); l != nil {
		return l
	}
	return lexers.Fallback
}

func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = defaultStyleName
	}
	return styles.Get(name)
}

// styleLine flattens one line of tokens, expanding tabs and recording a span
// per token whose look differs from plain text.
func styleLine(toks []chroma.Token, style *chroma.Style, base chroma.Colour) Line {
	var (
		sb    strings.Builder
		spans []Span
		col   int
	)
	for _, tok := range toks {
		value := strings.TrimRight(tok.Value, "\r\n")
		if value == "" {
			continue
		}
		start := col
		for _, r := range value {
			if r == '\t' {
				n := tabWidth - col%tabWidth
				sb.WriteString(strings.Repeat(" ", n))
				col += n
				continue
			}
			sb.WriteRune(r)
			col++
		}
		entry := style.Get(tok.Type)
		span := Span{
			Start:     start,
			End:       col,
			Bold:      entry.Bold == chroma.Yes,
			Italic:    entry.Italic == chroma.Yes,
			Underline: entry.Underline == chroma.Yes,
		}
		if entry.Colour.IsSet() && entry.Colour != base {
			span.HasColor = true
			span.Color = uint32(entry.Colour.Red())<<16 | uint32(entry.Colour.Green())<<8 | uint32(entry.Colour.Blue())
		}
		if span.HasColor || span.Bold || span.Italic || span.Underline {
			spans = append(spans, span)
		}
	}
	return Line{Text: sb.String(), Spans: spans}
}

func plainLines(text string) []Line {
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	out := make([]Line, len(parts))
	for i, p := range parts {
		out[i] = Line{Text: strings.TrimRight(p, "\r")}
	}
	return out
}
