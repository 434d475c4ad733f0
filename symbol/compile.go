package symbol

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// DefaultViewBox is used when source has no usable viewBox.
const DefaultViewBox = "0 0 1 1"

// StyleSink receives style text hoisted from a document. Returned map, if
// not empty, lists class names which have to be renamed in document markup.
type StyleSink interface {
	Save(source, cssText string) (map[string]string, error)
}

// Options controls fragment rendering.
type Options struct {
	DefaultViewBox string
}

// Compiler produces <symbol> fragments sending embedded styles to the sink.
type Compiler struct {
	sink StyleSink
	opts Options
	log  *zap.Logger
}

func NewCompiler(sink StyleSink, opts Options, log *zap.Logger) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.DefaultViewBox == "" || !validViewBox(opts.DefaultViewBox) {
		opts.DefaultViewBox = DefaultViewBox
	}
	return &Compiler{sink: sink, opts: opts, log: log.Named("symbol")}
}

// Compile extracts document styles into the sink and renders the document as
// symbol fragment. Document is released afterwards, even on error.
func (c *Compiler) Compile(doc *Document) (string, error) {
	if doc == nil || doc.released() {
		return "", errors.New("document is not available")
	}
	defer doc.Release()

	root := doc.root

	styleElements := collectStyles(root)
	texts := make([]string, 0, len(styleElements))
	for _, el := range styleElements {
		texts = append(texts, elementText(el))
	}
	renames, err := c.sink.Save(doc.ID, strings.Join(texts, "\n"))
	if err != nil {
		return "", err
	}
	for _, el := range styleElements {
		if parent := el.Parent(); parent != nil {
			parent.RemoveChild(el)
		}
	}
	if len(renames) > 0 {
		n := renameClasses(root, renames)
		c.log.Debug("Classes renamed", zap.String("id", doc.ID), zap.Int("elements", n))
	}

	viewBox := readViewBox(root)
	if viewBox == "" {
		c.log.Debug("Using default viewBox", zap.String("id", doc.ID), zap.String("viewBox", c.opts.DefaultViewBox))
		viewBox = c.opts.DefaultViewBox
	}

	sym := etree.NewElement("symbol")
	sym.CreateAttr("id", doc.ID)
	sym.CreateAttr("viewBox", viewBox)
	for _, a := range root.Attr {
		// prefixed namespace declarations keep prefixed attributes resolvable
		if a.Space == "xmlns" {
			sym.CreateAttr("xmlns:"+a.Key, a.Value)
		}
	}
	for _, tok := range slices.Clone(root.Child) {
		sym.AddChild(tok)
	}
	if len(sym.Child) == 0 {
		// force explicit end tag
		sym.CreateText("")
	}

	out := etree.NewDocument()
	out.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	out.SetRoot(sym)
	fragment, err := out.WriteToString()
	if err != nil {
		return "", fmt.Errorf("unable to render symbol %q: %w", doc.ID, err)
	}
	return fragment, nil
}

// collectStyles returns all style elements below el in document order.
func collectStyles(el *etree.Element) []*etree.Element {
	var found []*etree.Element
	for _, child := range el.ChildElements() {
		if child.Tag == "style" {
			found = append(found, child)
			continue
		}
		found = append(found, collectStyles(child)...)
	}
	return found
}

// elementText concatenates character data (CDATA included) of el.
func elementText(el *etree.Element) string {
	var sb strings.Builder
	for _, tok := range el.Child {
		if cd, ok := tok.(*etree.CharData); ok {
			sb.WriteString(cd.Data)
		}
	}
	return sb.String()
}

// renameClasses rewrites class attribute tokens, returns number of changed
// elements.
func renameClasses(el *etree.Element, renames map[string]string) int {
	var changed int
	if attr := el.SelectAttr("class"); attr != nil {
		tokens := strings.Fields(attr.Value)
		modified := false
		for i, tok := range tokens {
			if to, ok := renames[tok]; ok {
				tokens[i] = to
				modified = true
			}
		}
		if modified {
			attr.Value = strings.Join(tokens, " ")
			changed++
		}
	}
	for _, child := range el.ChildElements() {
		changed += renameClasses(child, renames)
	}
	return changed
}

// readViewBox returns trimmed viewBox value if it is usable, empty string
// otherwise.
func readViewBox(root *etree.Element) string {
	value := root.SelectAttrValue("viewBox", "")
	if value == "" {
		value = root.SelectAttrValue("viewbox", "")
	}
	value = strings.TrimSpace(value)
	if !validViewBox(value) {
		return ""
	}
	return value
}

func validViewBox(value string) bool {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if _, err := strconv.ParseFloat(p, 64); err != nil {
			return false
		}
	}
	return true
}
