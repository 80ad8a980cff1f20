// Package text implements the line pipeline: read every input line, replace
// each whitespace-delimited token with its lemma and write the result.
package text

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// ReadLines reads all of r before splitting it into lines. Nothing is
// returned when the read fails.
func ReadLines(r io.Reader) ([]string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return SplitLines(string(b)), nil
}

// SplitLines splits s at line boundaries. Terminators are dropped, "\r\n"
// counts as one, and a final terminator does not start an extra empty line.
// Besides "\n" and "\r" the Unicode line and paragraph separators, NEL,
// vertical tab, form feed and the file/group/record separators end a line.
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !isLineBreak(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}
