// Package styles keeps style rules hoisted from many images in one place,
// deduplicating identical rules and keeping conflicting ones apart.
package styles

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"svgsprite/config"
	"svgsprite/css"
	"svgsprite/utils/debug"
)

// ErrConflict is returned by Save when conflict policy is "error" and a
// selector is already registered with different declarations.
var ErrConflict = errors.New("conflicting style rule")

// Options controls how the store resolves selectors seen more than once.
type Options struct {
	Conflict config.ConflictPolicy
	Equality config.EqualityMode
}

// Rule is a registered style rule. It is never modified after registration.
type Rule struct {
	Selectors    []string
	Declarations []css.Declaration
	Source       string
}

type entry struct {
	key  string
	rule *Rule       // nil for pass-through at-rules
	at   *css.AtRule // nil for rules
}

// Store is an ordered registry of style rules keyed by selector. Entries are
// kept in insertion order and a key never has its entry replaced.
//
// Store is not safe for concurrent use, it expects a single owner.
type Store struct {
	opts    Options
	log     *zap.Logger
	parser  *css.Parser
	entries []entry
	index   map[string]int
}

// NewStore creates an empty store.
func NewStore(opts Options, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{
		opts:   opts,
		log:    log.Named("styles"),
		parser: css.NewParser(log),
		index:  make(map[string]int),
	}
}

// txn collects entries planned by a single Save call. Nothing reaches the
// store until the whole call succeeded.
type txn struct {
	entries []entry
	index   map[string]int
}

func (s *Store) lookup(tx *txn, key string) (entry, bool) {
	if i, ok := s.index[key]; ok {
		return s.entries[i], true
	}
	if i, ok := tx.index[key]; ok {
		return tx.entries[i], true
	}
	return entry{}, false
}

func (tx *txn) add(e entry) {
	tx.index[e.key] = len(tx.entries)
	tx.entries = append(tx.entries, e)
}

// Save registers all rules found in cssText under the given source name. It
// returns class renames (old name to new name) which have to be applied to
// the source markup, the map is only non-empty when conflict policy is
// "rewrite". On error nothing from this call is registered.
func (s *Store) Save(source, cssText string) (map[string]string, error) {
	if strings.TrimSpace(cssText) == "" {
		return nil, nil
	}

	sheet, err := s.parser.Parse([]byte(cssText), source)
	if err != nil {
		return nil, fmt.Errorf("unable to parse style of %q: %w", source, err)
	}
	for _, w := range sheet.Warnings {
		s.log.Warn("Style problem", zap.String("source", source), zap.String("warning", w))
	}

	var renames map[string]string
	if s.opts.Conflict == config.ConflictPolicyRewrite {
		if renames = s.planRenames(source, sheet); len(renames) > 0 {
			sheet.WalkSelectors(func(sel string) string {
				return renameClasses(sel, renames)
			})
		}
	}

	tx := &txn{index: make(map[string]int)}
	for _, item := range sheet.Items {
		switch {
		case item.Rule != nil:
			for _, sel := range item.Rule.Selectors {
				if err := s.place(tx, source, sel, item.Rule.Declarations); err != nil {
					return nil, err
				}
			}
		case item.AtRule != nil:
			key := item.AtRule.String()
			if _, ok := s.lookup(tx, key); ok {
				continue
			}
			tx.add(entry{key: key, at: item.AtRule})
		}
	}

	for _, e := range tx.entries {
		s.index[e.key] = len(s.entries)
		s.entries = append(s.entries, e)
	}
	s.log.Debug("Styles saved",
		zap.String("source", source),
		zap.Int("added", len(tx.entries)),
		zap.Int("renamed", len(renames)),
		zap.Int("total", len(s.entries)))
	return renames, nil
}

// place decides where a single selector with its declarations goes.
func (s *Store) place(tx *txn, source, sel string, decls []css.Declaration) error {
	newEntry := func(key string) entry {
		return entry{key: key, rule: &Rule{Selectors: []string{sel}, Declarations: decls, Source: source}}
	}

	existing, ok := s.lookup(tx, sel)
	if !ok {
		tx.add(newEntry(sel))
		return nil
	}
	if existing.rule != nil && declarationsEqual(existing.rule.Declarations, decls, s.opts.Equality) {
		return nil
	}

	switch s.opts.Conflict {
	case config.ConflictPolicyError:
		return fmt.Errorf("%w: selector %q of %q differs from one registered by %q",
			ErrConflict, sel, source, existing.source())

	case config.ConflictPolicyFirstWins:
		s.log.Debug("Dropping conflicting rule",
			zap.String("source", source), zap.String("selector", sel), zap.String("owner", existing.source()))
		return nil

	default:
		// scope, and rewrite for selectors without classes
		scoped := ScopeSelector(source, sel)
		if other, ok := s.lookup(tx, scoped); ok {
			if other.rule == nil || !declarationsEqual(other.rule.Declarations, decls, s.opts.Equality) {
				s.log.Warn("Scoped selector already registered with different declarations, keeping first",
					zap.String("source", source), zap.String("selector", scoped))
			}
			return nil
		}
		e := newEntry(scoped)
		e.rule.Selectors = []string{scoped}
		tx.add(e)
		return nil
	}
}

func (e entry) source() string {
	if e.rule != nil {
		return e.rule.Source
	}
	return ""
}

// ScopeSelector qualifies selector with the id of the symbol produced from
// source so it only applies inside that symbol.
func ScopeSelector(source, selector string) string {
	return "#" + source + " " + selector
}

var classRe = regexp.MustCompile(`\.(-?[_a-zA-Z][_a-zA-Z0-9-]*)`)

// planRenames finds classes referenced by top-level selectors which conflict
// with already registered ones and builds replacement names for them.
func (s *Store) planRenames(source string, sheet *css.Stylesheet) map[string]string {
	var renames map[string]string
	prefix := classPrefix(source)
	for _, rule := range sheet.Rules() {
		for _, sel := range rule.Selectors {
			i, ok := s.index[sel]
			if !ok {
				continue
			}
			if e := s.entries[i]; e.rule != nil && declarationsEqual(e.rule.Declarations, rule.Declarations, s.opts.Equality) {
				continue
			}
			for _, m := range classRe.FindAllStringSubmatch(sel, -1) {
				if renames == nil {
					renames = make(map[string]string)
				}
				renames[m[1]] = prefix + "__" + m[1]
			}
		}
	}
	return renames
}

func renameClasses(sel string, renames map[string]string) string {
	return classRe.ReplaceAllStringFunc(sel, func(m string) string {
		if to, ok := renames[m[1:]]; ok {
			return "." + to
		}
		return m
	})
}

// classPrefix turns source name into something usable as a class name
// prefix.
func classPrefix(source string) string {
	var sb strings.Builder
	for i, r := range source {
		switch {
		case r == '_' || r == '-' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			sb.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				sb.WriteByte('_')
			}
			sb.WriteRune(r)
		default:
			sb.WriteByte('_')
		}
	}
	return sb.String()
}

// Len returns number of registered entries.
func (s *Store) Len() int {
	return len(s.entries)
}

// Keys returns registered keys in insertion order.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Lookup returns rule registered under key, pass-through at-rules are not
// reported.
func (s *Store) Lookup(key string) (*Rule, bool) {
	i, ok := s.index[key]
	if !ok || s.entries[i].rule == nil {
		return nil, false
	}
	return s.entries[i].rule, true
}

// Compile renders all entries in insertion order as stylesheet text. Entries
// are separated by a blank line, there is no trailing new line. Compile does
// not change the store and may be called repeatedly.
func (s *Store) Compile() string {
	sheet := &css.Stylesheet{Items: make([]css.Item, 0, len(s.entries))}
	for _, e := range s.entries {
		if e.at != nil {
			sheet.Items = append(sheet.Items, css.Item{AtRule: e.at})
			continue
		}
		sheet.Items = append(sheet.Items, css.Item{Rule: &css.Rule{
			Selectors:    []string{e.key},
			Declarations: e.rule.Declarations,
		}})
	}
	return sheet.String()
}

// Dump returns human readable representation of the store content for
// debugging.
func (s *Store) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "Style store: %d entries (conflict=%s, equality=%s)", len(s.entries), s.opts.Conflict, s.opts.Equality)
	for i, e := range s.entries {
		if e.at != nil {
			tw.Line(1, "[%d] at-rule", i)
			tw.TextBlock(2, "text", e.key)
			continue
		}
		tw.Line(1, "[%d] %s", i, e.key)
		tw.Field(2, "source", e.rule.Source)
		for _, d := range e.rule.Declarations {
			tw.Line(2, "%s", d)
		}
	}
	return tw.String()
}
