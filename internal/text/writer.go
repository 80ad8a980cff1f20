package text

import (
	"bufio"
	"fmt"
	"io"
)

// LineWriter buffers whole output lines. Callers must Flush before exit,
// including on error paths.
type LineWriter struct {
	bw    *bufio.Writer
	lines int
}

func NewLineWriter(w io.Writer) *LineWriter {
	return &LineWriter{bw: bufio.NewWriter(w)}
}

// WriteLine writes s followed by "\n".
func (w *LineWriter) WriteLine(s string) error {
	if _, err := w.bw.WriteString(s); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	w.lines++
	return nil
}

// Lines returns the number of lines written so far.
func (w *LineWriter) Lines() int { return w.lines }

func (w *LineWriter) Flush() error {
	if err := w.bw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
