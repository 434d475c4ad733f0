package css

import (
	"errors"
	"io"
	"strings"
)

// ErrMalformedStyle is returned when style text cannot be tokenized.
var ErrMalformedStyle = errors.New("malformed style text")

// Declaration is a single property/value pair. Value is kept as written,
// including any !important marker.
type Declaration struct {
	Property string
	Value    string
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value
}

// Rule represents a single CSS rule (selector list + declarations) in source
// order.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// AtRule is an @-rule kept for pass-through. Block at-rules may carry
// declarations (@font-face, @page) and nested items (@media, @supports).
type AtRule struct {
	Name         string // including "@"
	Prelude      string
	Block        bool
	Declarations []Declaration
	Items        []Item
}

// String returns the serialized at-rule at top level indentation.
func (a *AtRule) String() string {
	var sb strings.Builder
	sw := &sheetWriter{w: &sb}
	sw.atRule(a, 0)
	return sb.String()
}

// Item is a single stylesheet item. Exactly one of Rule or AtRule is non-nil.
type Item struct {
	Rule   *Rule
	AtRule *AtRule
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []Item   // All top-level items in source order
	Warnings []string // Things we had to drop while parsing
}

// Rules returns top-level rules in source order. Rules nested inside
// at-rules are not included.
func (s *Stylesheet) Rules() []Rule {
	var rules []Rule
	for _, item := range s.Items {
		if item.Rule != nil {
			rules = append(rules, *item.Rule)
		}
	}
	return rules
}

// WalkSelectors calls fn for every selector list in the stylesheet, including
// rules nested in at-rules, allowing fn to replace selectors in place.
func (s *Stylesheet) WalkSelectors(fn func(selector string) string) {
	walkItems(s.Items, fn)
}

func walkItems(items []Item, fn func(string) string) {
	for _, item := range items {
		switch {
		case item.Rule != nil:
			for i, sel := range item.Rule.Selectors {
				item.Rule.Selectors[i] = fn(sel)
			}
		case item.AtRule != nil:
			walkItems(item.AtRule.Items, fn)
		}
	}
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Items are separated by a blank line, there is no trailing new line.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	sw := &sheetWriter{w: w}
	sw.items(s.Items, 0)
	return sw.n, sw.err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// sheetWriter remembers the first write error so the serialization code does
// not have to check after every fragment.
type sheetWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (sw *sheetWriter) write(parts ...string) {
	for _, p := range parts {
		if sw.err != nil {
			return
		}
		n, err := io.WriteString(sw.w, p)
		sw.n += int64(n)
		sw.err = err
	}
}

func (sw *sheetWriter) items(items []Item, depth int) {
	for i, item := range items {
		if i > 0 {
			sw.write("\n\n")
		}
		switch {
		case item.Rule != nil:
			sw.rule(item.Rule, depth)
		case item.AtRule != nil:
			sw.atRule(item.AtRule, depth)
		}
	}
}

func (sw *sheetWriter) rule(r *Rule, depth int) {
	indent := strings.Repeat("  ", depth)
	sw.write(indent, strings.Join(r.Selectors, ", "), " {\n")
	sw.declarations(r.Declarations, depth+1)
	sw.write(indent, "}")
}

func (sw *sheetWriter) declarations(decls []Declaration, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, d := range decls {
		sw.write(indent, d.Property, ": ", d.Value, ";\n")
	}
}

func (sw *sheetWriter) atRule(a *AtRule, depth int) {
	indent := strings.Repeat("  ", depth)
	head := a.Name
	if a.Prelude != "" {
		head += " " + a.Prelude
	}
	if !a.Block {
		sw.write(indent, head, ";")
		return
	}
	sw.write(indent, head, " {\n")
	sw.declarations(a.Declarations, depth+1)
	if len(a.Items) > 0 {
		if len(a.Declarations) > 0 {
			sw.write("\n")
		}
		sw.items(a.Items, depth+1)
		sw.write("\n")
	}
	sw.write(indent, "}")
}
