// Package debug has helpers producing human readable dumps for debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"
)

const indent = "  "

// TreeWriter builds indented text outline.
type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w: &strings.Builder{},
	}
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(indent)
	}
}

// Line writes formatted line at requested depth.
func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Field writes "key: value" line, values which would not survive on a single
// line are quoted.
func (tw *TreeWriter) Field(depth int, key, value string) {
	tw.pad(depth)
	tw.w.WriteString(key)
	tw.w.WriteString(": ")
	tw.w.WriteString(encodeText(value))
	tw.w.WriteByte('\n')
}

// TextBlock writes label followed by every line of text one level deeper.
func (tw *TreeWriter) TextBlock(depth int, label, text string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	if text == "" {
		tw.w.WriteString(": <empty>\n")
		return
	}
	tw.w.WriteString(":\n")
	for line := range strings.SplitSeq(strings.TrimRight(text, "\n"), "\n") {
		tw.pad(depth + 1)
		tw.w.WriteString(line)
		tw.w.WriteByte('\n')
	}
}

// List writes label with number of items and then items one level deeper.
func (tw *TreeWriter) List(depth int, label string, items []string) {
	tw.Line(depth, "%s (%d)", label, len(items))
	for _, item := range items {
		tw.pad(depth + 1)
		tw.w.WriteString("- ")
		tw.w.WriteString(encodeText(item))
		tw.w.WriteByte('\n')
	}
}

func encodeText(raw string) string {
	if raw == "" || (strings.TrimSpace(raw) == raw && strconv.CanBackquote(raw) && !strings.Contains(raw, "\t")) {
		return raw
	}
	return strconv.Quote(raw)
}
