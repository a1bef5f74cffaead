package diag

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Formatter renders diagnostics with the offending source line and a caret
// marker underneath the span.
type Formatter struct {
	out         io.Writer
	sourceCache map[string]string
}

// NewFormatter creates a formatter writing to out; a nil out means stderr.
func NewFormatter(out io.Writer) *Formatter {
	if out == nil {
		out = os.Stderr
	}
	return &Formatter{
		out:         out,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers source text for a filename so spans into it can be
// excerpted without touching the filesystem.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

func (f *Formatter) loadSource(filename string) (string, bool) {
	if filename == "" {
		return "", false
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, true
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", false
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, true
}

// Format prints a diagnostic, excerpting the source line when available.
func (f *Formatter) Format(d *Diagnostic) {
	fmt.Fprintf(f.out, "%s: %s: %s\n", d.Severity, d.Span, d.Message)

	src, ok := f.loadSource(d.Span.Filename)
	if !ok || !d.Span.IsValid() {
		return
	}
	line, ok := sourceLine(src, d.Span.Line)
	if !ok {
		return
	}

	gutter := fmt.Sprintf("%4d | ", d.Span.Line)
	fmt.Fprintf(f.out, "%s%s\n", gutter, line)

	width := d.Span.End - d.Span.Start
	if width < 1 {
		width = 1
	}
	if max := len(line) - (d.Span.Column - 1); width > max && max > 0 {
		width = max
	}
	fmt.Fprintf(f.out, "%s%s%s\n",
		strings.Repeat(" ", len(gutter)),
		strings.Repeat(" ", d.Span.Column-1),
		strings.Repeat("^", width))
}

func sourceLine(src string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}
