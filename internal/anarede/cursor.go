package anarede

import "strings"

// lineCursor is a pull-style iterator over the decoded input lines. The
// shunt-bank block parser needs one-line lookahead to tell "next bank
// header" apart from "end of section" without consuming the sentinel.
type lineCursor struct {
	lines []string
	pos   int
}

func newLineCursor(text string) *lineCursor {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	// A trailing newline yields one empty trailing element; drop it so EOF
	// is not preceded by a phantom blank line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return &lineCursor{lines: lines}
}

// Next returns the next line, consuming it.
func (c *lineCursor) Next() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	line := c.lines[c.pos]
	c.pos++
	return line, true
}

// Peek returns the next line without consuming it.
func (c *lineCursor) Peek() (string, bool) {
	if c.pos >= len(c.lines) {
		return "", false
	}
	return c.lines[c.pos], true
}

// LineNum returns the 1-based number of the most recently consumed line.
func (c *lineCursor) LineNum() int {
	return c.pos
}
