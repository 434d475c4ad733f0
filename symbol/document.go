// Package symbol turns standalone SVG images into <symbol> fragments.
package symbol

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// ErrMalformedMarkup is returned when source cannot be parsed as SVG.
var ErrMalformedMarkup = errors.New("malformed markup")

// Document is a parsed source image waiting to be compiled. It is released
// once its fragment is rendered.
type Document struct {
	ID string

	doc  *etree.Document
	root *etree.Element
}

// Parse reads SVG markup. Non UTF-8 encodings declared in XML prolog are
// converted.
func Parse(id string, data []byte) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		ValidateInput: false,
		Permissive:    true,
	}
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedMarkup, err)
	}

	root := findSVG(&doc.Element)
	if root == nil {
		return nil, fmt.Errorf("%w: no svg element found", ErrMalformedMarkup)
	}
	return &Document{ID: id, doc: doc, root: root}, nil
}

// Root returns the outermost svg element, nil after release.
func (d *Document) Root() *etree.Element {
	return d.root
}

// Release drops parsed tree.
func (d *Document) Release() {
	d.doc, d.root = nil, nil
}

func (d *Document) released() bool {
	return d.root == nil
}

// findSVG returns first svg element in document order, namespace prefix is
// ignored.
func findSVG(el *etree.Element) *etree.Element {
	for _, child := range el.ChildElements() {
		if child.Tag == "svg" {
			return child
		}
		if found := findSVG(child); found != nil {
			return found
		}
	}
	return nil
}
