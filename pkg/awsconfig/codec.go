package awsconfig

import (
	"fmt"
	"strings"

	errUtils "github.com/kolja-aws/kolja/errors"
)

// Parse reads an AWS config document. It is permissive: unknown headers,
// duplicate keys, comments, and unparseable lines inside a section are all
// preserved in encountered order. The single fatal condition is a non-blank,
// non-comment line before any section header, which the AWS CLI also
// rejects.
func Parse(text string) (*Document, error) {
	doc := &Document{}

	if text == "" {
		return doc, nil
	}

	lines := strings.Split(text, "\n")
	// A trailing newline yields one empty trailing element. Drop it; Render
	// terminates the file with a single newline itself.
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	var current *Section
	for i, raw := range lines {
		if header, ok := parseHeader(raw); ok {
			doc.Sections = append(doc.Sections, Section{
				Header:    header,
				headerRaw: raw,
			})
			current = &doc.Sections[len(doc.Sections)-1]
			continue
		}

		line := classifyLine(raw)
		if current == nil {
			if line.Kind == LineKeyValue || line.Kind == LineOther {
				return nil, fmt.Errorf("%w: line %d before any section header: %q",
					errUtils.ErrMalformedDocument, i+1, raw)
			}
			doc.Preamble = append(doc.Preamble, line)
			continue
		}
		current.Lines = append(current.Lines, line)
	}

	return doc, nil
}

// parseHeader reports whether raw is a section header line and returns the
// header text inside the brackets.
func parseHeader(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if len(trimmed) < 3 || trimmed[0] != '[' || trimmed[len(trimmed)-1] != ']' {
		return "", false
	}
	header := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if header == "" {
		return "", false
	}
	return header, true
}

// classifyLine classifies a non-header line, keeping its original bytes.
func classifyLine(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return Line{Kind: LineBlank, Raw: raw}
	case strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";"):
		return Line{Kind: LineComment, Raw: raw}
	}

	if idx := strings.Index(raw, "="); idx > 0 {
		key := strings.TrimSpace(raw[:idx])
		if key != "" {
			return Line{
				Kind:  LineKeyValue,
				Key:   key,
				Value: strings.TrimSpace(raw[idx+1:]),
				Raw:   raw,
			}
		}
	}

	return Line{Kind: LineOther, Raw: raw}
}

// Render serializes the document. Sections are separated by exactly one
// blank line and the file ends with a single newline. Sections parsed from
// disk render their original bytes; sections produced by reconciliation
// render canonical `key = value` lines. Render(Parse(x)) == x for canonical
// input, and is idempotent for any input.
func (d *Document) Render() string {
	var blocks []string

	if preamble := renderLines(d.Preamble); preamble != "" {
		blocks = append(blocks, preamble)
	}

	for i := range d.Sections {
		blocks = append(blocks, renderSection(&d.Sections[i]))
	}

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// renderSection serializes one section without trailing blank lines.
func renderSection(s *Section) string {
	header := s.headerRaw
	if s.canonical || header == "" {
		header = "[" + s.Header + "]"
	}

	body := renderLines(s.Lines)
	if body == "" {
		return header
	}
	return header + "\n" + body
}

// renderLines joins lines verbatim, dropping trailing blank lines. Interior
// blank lines and comments keep their bytes.
func renderLines(lines []Line) string {
	end := len(lines)
	for end > 0 && lines[end-1].Kind == LineBlank {
		end--
	}
	if end == 0 {
		return ""
	}

	raws := make([]string, end)
	for i := 0; i < end; i++ {
		raws[i] = lines[i].Raw
	}
	return strings.Join(raws, "\n")
}
