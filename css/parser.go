package css

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) (*Stylesheet, error) {
	sheet := &Stylesheet{
		Items:    make([]Item, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	items, err := p.parseItems(parser, sheet)
	sheet.Items = append(sheet.Items, items...)
	return sheet, err
}

// parseItems collects top-level rules and at-rules until end of input.
func (p *Parser) parseItems(parser *css.Parser, sheet *Stylesheet) ([]Item, error) {
	var (
		items    []Item
		selector []string
	)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			return items, grammarError(parser)

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			at := &AtRule{Name: string(data), Prelude: tokensToString(parser.Values())}
			items = append(items, Item{AtRule: at})
			p.log.Debug("Passing @-rule through", zap.String("rule", at.Name))

		case css.BeginAtRuleGrammar:
			at := &AtRule{Name: string(data), Prelude: tokensToString(parser.Values()), Block: true}
			if err := p.parseAtRuleBlock(parser, sheet, at); err != nil {
				return items, err
			}
			items = append(items, Item{AtRule: at})
			p.log.Debug("Passing @-rule block through", zap.String("rule", at.Name), zap.Int("items", len(at.Items)))

		case css.QualifiedRuleGrammar:
			// part of a selector group, final part arrives with BeginRulesetGrammar
			selector = append(selector, splitSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selector = append(selector, splitSelectors(data, parser.Values())...)
			decls, err := p.parseDeclarations(parser)
			if err != nil {
				return items, err
			}
			if len(selector) == 0 {
				sheet.Warnings = append(sheet.Warnings, "ruleset without selector")
				p.log.Debug("Skipping ruleset without selector")
			} else {
				items = append(items, Item{Rule: &Rule{Selectors: selector, Declarations: decls}})
			}
			selector = nil
		}
	}
}

// parseAtRuleBlock fills block at-rule with declarations and nested items.
func (p *Parser) parseAtRuleBlock(parser *css.Parser, sheet *Stylesheet, at *AtRule) error {
	var selector []string
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			return grammarError(parser)

		case css.EndAtRuleGrammar:
			return nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if d, ok := makeDeclaration(data, parser.Values()); ok {
				at.Declarations = append(at.Declarations, d)
			}

		case css.AtRuleGrammar:
			at.Items = append(at.Items, Item{AtRule: &AtRule{Name: string(data), Prelude: tokensToString(parser.Values())}})

		case css.BeginAtRuleGrammar:
			inner := &AtRule{Name: string(data), Prelude: tokensToString(parser.Values()), Block: true}
			if err := p.parseAtRuleBlock(parser, sheet, inner); err != nil {
				return err
			}
			at.Items = append(at.Items, Item{AtRule: inner})

		case css.QualifiedRuleGrammar:
			selector = append(selector, splitSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selector = append(selector, splitSelectors(data, parser.Values())...)
			decls, err := p.parseDeclarations(parser)
			if err != nil {
				return err
			}
			if len(selector) > 0 {
				at.Items = append(at.Items, Item{Rule: &Rule{Selectors: selector, Declarations: decls}})
			} else {
				sheet.Warnings = append(sheet.Warnings, "ruleset without selector in "+at.Name)
			}
			selector = nil
		}
	}
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
// Source order is preserved, repeated properties are kept.
func (p *Parser) parseDeclarations(parser *css.Parser) ([]Declaration, error) {
	decls := make([]Declaration, 0)
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			return decls, grammarError(parser)

		case css.EndRulesetGrammar:
			return decls, nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			if d, ok := makeDeclaration(data, parser.Values()); ok {
				decls = append(decls, d)
			}
		}
	}
}

func makeDeclaration(name []byte, values []css.Token) (Declaration, bool) {
	prop := strings.TrimSpace(string(name))
	value := tokensToString(values)
	if prop == "" || value == "" {
		return Declaration{}, false
	}
	return Declaration{Property: prop, Value: value}, true
}

// grammarError distinguishes normal end of input from tokenizer failure.
func grammarError(parser *css.Parser) error {
	err := parser.Err()
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrMalformedStyle, err)
}

// tokensToString builds value text from tokens collapsing whitespace runs to a
// single space and dropping comments.
func tokensToString(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		switch t.TokenType {
		case css.WhitespaceToken:
			space = sb.Len() > 0
		case css.CommentToken:
		default:
			if space {
				sb.WriteByte(' ')
				space = false
			}
			sb.Write(t.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

// splitSelectors extracts selector strings from token data. Commas inside
// parentheses or brackets (":is(.a, .b)", "[title='a,b']") do not split.
func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		if v.TokenType == css.CommentToken {
			continue
		}
		sb.Write(v.Data)
	}

	var (
		selectors []string
		depth     int
		quote     rune
		start     int
	)
	text := sb.String()
	for i, r := range text {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			depth = max(depth-1, 0)
		case r == ',' && depth == 0:
			if s := NormalizeSelector(text[start:i]); s != "" {
				selectors = append(selectors, s)
			}
			start = i + 1
		}
	}
	if s := NormalizeSelector(text[start:]); s != "" {
		selectors = append(selectors, s)
	}
	return selectors
}

// NormalizeSelector trims selector and collapses whitespace outside of
// quoted strings, so ".a  .b" and ".a .b" produce the same key. Top level
// combinators ">", "+" and "~" are surrounded by single spaces whatever the
// source had ("g>.a" and "g > .a" are the same key).
func NormalizeSelector(sel string) string {
	var (
		sb     strings.Builder
		quote  rune
		depth  int
		space  bool
		escape bool
	)
	for _, r := range strings.TrimSpace(sel) {
		switch {
		case escape:
			escape = false
		case quote != 0:
			if r == '\\' {
				escape = true
			} else if r == quote {
				quote = 0
			}
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f':
			space = true
			continue
		case depth == 0 && (r == '>' || r == '+' || r == '~'):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(r)
			sb.WriteByte(' ')
			space = false
			continue
		case r == '\\':
			escape = true
		case r == '"' || r == '\'':
			quote = r
		case r == '(' || r == '[':
			depth++
		case r == ')' || r == ']':
			depth = max(depth-1, 0)
		}
		if space {
			if !strings.HasSuffix(sb.String(), " ") {
				sb.WriteByte(' ')
			}
			space = false
		}
		sb.WriteRune(r)
	}
	return strings.TrimSpace(sb.String())
}
