// Package assemble builds sprite document out of many SVG sources.
package assemble

import (
	"bytes"
	"io"
)

const (
	spriteOpen  = `<svg xmlns="http://www.w3.org/2000/svg" style="display: none;">`
	spriteClose = `</svg>`
)

// Sprite is the result of Build: compiled stylesheet and symbol fragments in
// source order.
type Sprite struct {
	Stylesheet string
	Fragments  []string
	// Skipped lists per-file errors tolerated under "skip" error policy.
	Skipped []error
}

// Bytes renders aggregate document.
func (s *Sprite) Bytes() []byte {
	size := len(spriteOpen) + len(spriteClose) + len(s.Stylesheet) + 32
	for _, f := range s.Fragments {
		size += len(f)
	}

	buf := bytes.NewBuffer(make([]byte, 0, size))
	buf.WriteString(spriteOpen)
	buf.WriteString("\n<style>\n")
	buf.WriteString(s.Stylesheet)
	buf.WriteString("\n</style>\n")
	for _, f := range s.Fragments {
		buf.WriteString(f)
	}
	buf.WriteString("\n")
	buf.WriteString(spriteClose)
	return buf.Bytes()
}

// WriteTo writes aggregate document with a single write call.
func (s *Sprite) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(s.Bytes())
	return int64(n), err
}
