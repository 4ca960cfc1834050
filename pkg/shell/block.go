package shell

import "strings"

// BlockStart and BlockEnd delimit the managed region in a startup file. The
// marker text is an on-disk contract: changing it would orphan blocks written
// by earlier releases.
const (
	BlockStart = "# kolja-aws profile switcher - START"
	BlockEnd   = "# kolja-aws profile switcher - END"
)

// findBlock locates the managed region in lines. Both markers must be
// present, in order; a lone marker does not count as a block.
func findBlock(lines []string) (start, end int, ok bool) {
	start = -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if start < 0 {
			if trimmed == BlockStart {
				start = i
			}
			continue
		}
		if trimmed == BlockEnd {
			return start, i, true
		}
	}
	return 0, 0, false
}

// HasBlock reports whether content contains a complete managed block.
func HasBlock(content string) bool {
	_, _, ok := findBlock(strings.Split(content, "\n"))
	return ok
}

// ExtractBlock returns the body between the markers, without the marker
// lines. The second result is false when no complete block exists.
func ExtractBlock(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	start, end, ok := findBlock(lines)
	if !ok {
		return "", false
	}
	return strings.Join(lines[start+1:end], "\n"), true
}

// UpsertBlock installs body between the markers. An existing block is
// replaced in place, leaving everything outside it untouched; otherwise the
// block is appended, separated from non-empty content by one blank line.
// Reports whether content changed.
func UpsertBlock(content, body string) (string, bool) {
	body = strings.TrimRight(body, "\n")

	lines := strings.Split(content, "\n")
	if start, end, ok := findBlock(lines); ok {
		if strings.Join(lines[start+1:end], "\n") == body {
			return content, false
		}
		out := make([]string, 0, len(lines))
		out = append(out, lines[:start+1]...)
		out = append(out, strings.Split(body, "\n")...)
		out = append(out, lines[end:]...)
		return strings.Join(out, "\n"), true
	}

	block := BlockStart + "\n" + body + "\n" + BlockEnd + "\n"
	switch {
	case content == "":
		return block, true
	case strings.HasSuffix(content, "\n\n"):
		return content + block, true
	case strings.HasSuffix(content, "\n"):
		return content + "\n" + block, true
	default:
		return content + "\n\n" + block, true
	}
}

// RemoveBlock deletes the managed block including its marker lines. The
// separator blank line added at install time is dropped along with it.
// Removing from content with no block is a no-op.
func RemoveBlock(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	start, end, ok := findBlock(lines)
	if !ok {
		return content, false
	}

	before := lines[:start]
	after := lines[end+1:]

	if len(before) > 0 && before[len(before)-1] == "" {
		if len(after) == 0 || after[0] == "" {
			before = before[:len(before)-1]
		}
	}

	out := make([]string, 0, len(before)+len(after))
	out = append(out, before...)
	out = append(out, after...)
	return strings.Join(out, "\n"), true
}
