// Package output decorates inspector reports for terminals.
package output

import (
	"bytes"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	classColor  = color.New(color.FgCyan, color.Bold)
	headerColor = color.New(color.FgYellow)
)

// ColorWriter highlights class lines and section headers of a report. It
// buffers until a full line is available.
type ColorWriter struct {
	w   io.Writer
	buf bytes.Buffer
}

// NewColorWriter wraps w. With color disabled (or when color.NoColor is set)
// lines pass through unchanged.
func NewColorWriter(w io.Writer, enabled bool) io.Writer {
	if !enabled || color.NoColor {
		return w
	}
	return &ColorWriter{w: w}
}

func (c *ColorWriter) Write(p []byte) (int, error) {
	c.buf.Write(p)
	for {
		line, err := c.buf.ReadString('\n')
		if err != nil {
			// Incomplete line, keep it for the next write.
			c.buf.Reset()
			c.buf.WriteString(line)
			return len(p), nil
		}
		if _, err := io.WriteString(c.w, colorize(line)); err != nil {
			return len(p), err
		}
	}
}

func colorize(line string) string {
	body := strings.TrimLeft(line, "\t")
	indent := line[:len(line)-len(body)]
	text := strings.TrimSuffix(body, "\n")
	switch {
	case strings.HasPrefix(text, "Class name: "):
		return indent + classColor.Sprint(text) + "\n"
	case strings.HasPrefix(text, "["):
		return indent + headerColor.Sprint(text) + "\n"
	}
	return line
}
