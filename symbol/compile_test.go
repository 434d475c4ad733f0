package symbol

import (
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap/zaptest"
	"golang.org/x/text/encoding/charmap"
)

type recordingSink struct {
	calls   []string
	sources []string
	renames map[string]string
	err     error
}

func (s *recordingSink) Save(source, text string) (map[string]string, error) {
	s.sources = append(s.sources, source)
	s.calls = append(s.calls, text)
	if s.err != nil {
		return nil, s.err
	}
	return s.renames, nil
}

func compile(t *testing.T, sink StyleSink, id, markup string) string {
	t.Helper()
	doc, err := Parse(id, []byte(markup))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	c := NewCompiler(sink, Options{}, zaptest.NewLogger(t))
	fragment, err := c.Compile(doc)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	return fragment
}

func TestCompile_Fragments(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		markup string
		want   string
	}{
		{
			name:   "simple",
			id:     "a",
			markup: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24"><path d="M0 0h24v24H0z"/></svg>`,
			want:   `<symbol id="a" viewBox="0 0 24 24"><path d="M0 0h24v24H0z"/></symbol>`,
		},
		{
			name:   "default viewBox",
			id:     "b",
			markup: `<svg xmlns="http://www.w3.org/2000/svg"><circle r="1"/></svg>`,
			want:   `<symbol id="b" viewBox="0 0 1 1"><circle r="1"/></symbol>`,
		},
		{
			name:   "lowercase viewbox attribute",
			id:     "c",
			markup: `<svg viewbox="0 0 10 20"><rect/></svg>`,
			want:   `<symbol id="c" viewBox="0 0 10 20"><rect/></symbol>`,
		},
		{
			name:   "comma separated viewBox kept",
			id:     "d",
			markup: `<svg viewBox=" 0,0,16,16 "><rect/></svg>`,
			want:   `<symbol id="d" viewBox="0,0,16,16"><rect/></symbol>`,
		},
		{
			name:   "unusable viewBox replaced",
			id:     "e",
			markup: `<svg viewBox="0 0 24"><rect/></svg>`,
			want:   `<symbol id="e" viewBox="0 0 1 1"><rect/></symbol>`,
		},
		{
			name:   "empty image keeps end tag",
			id:     "f",
			markup: `<svg xmlns="http://www.w3.org/2000/svg"/>`,
			want:   `<symbol id="f" viewBox="0 0 1 1"></symbol>`,
		},
		{
			name:   "namespace prefixes carried",
			id:     "g",
			markup: `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 2 2"><use xlink:href="#p"/></svg>`,
			want:   `<symbol id="g" viewBox="0 0 2 2" xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#p"/></symbol>`,
		},
		{
			name:   "prolog and whitespace",
			id:     "h",
			markup: "<?xml version=\"1.0\"?>\n<!-- exported -->\n<svg viewBox=\"0 0 8 8\">\n  <g>\n    <path d=\"M1 1\"/>\n  </g>\n</svg>\n",
			want:   "<symbol id=\"h\" viewBox=\"0 0 8 8\">\n  <g>\n    <path d=\"M1 1\"/>\n  </g>\n</symbol>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compile(t, &recordingSink{}, tt.id, tt.markup)
			if got != tt.want {
				t.Errorf("Compile() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestCompile_ExtractsStyles(t *testing.T) {
	sink := &recordingSink{}
	markup := `<svg viewBox="0 0 4 4"><style>.a{fill:red}</style><g><style><![CDATA[.b{fill:blue}]]></style></g><path class="a"/></svg>`

	got := compile(t, sink, "x", markup)

	if len(sink.calls) != 1 {
		t.Fatalf("sink called %d times, want 1", len(sink.calls))
	}
	if sink.sources[0] != "x" {
		t.Errorf("source = %q, want x", sink.sources[0])
	}
	if want := ".a{fill:red}\n.b{fill:blue}"; sink.calls[0] != want {
		t.Errorf("style text = %q, want %q", sink.calls[0], want)
	}
	want := `<symbol id="x" viewBox="0 0 4 4"><g/><path class="a"/></symbol>`
	if got != want {
		t.Errorf("Compile() = %s, want %s", got, want)
	}
}

func TestCompile_NoStylesStillSaves(t *testing.T) {
	sink := &recordingSink{}
	compile(t, sink, "x", `<svg><path/></svg>`)
	if len(sink.calls) != 1 || sink.calls[0] != "" {
		t.Errorf("sink calls = %q, want single empty call", sink.calls)
	}
}

func TestCompile_RenamesClasses(t *testing.T) {
	sink := &recordingSink{renames: map[string]string{"a": "x__a"}}
	markup := `<svg><style>.a{fill:blue}</style><path class="a b"/><g class="c"><rect class=" a "/></g></svg>`

	got := compile(t, sink, "x", markup)

	want := `<symbol id="x" viewBox="0 0 1 1"><path class="x__a b"/><g class="c"><rect class="x__a"/></g></symbol>`
	if got != want {
		t.Errorf("Compile() = %s, want %s", got, want)
	}
}

func TestCompile_SinkError(t *testing.T) {
	boom := errors.New("boom")
	doc, err := Parse("x", []byte(`<svg><style>.a{}</style></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	c := NewCompiler(&recordingSink{err: boom}, Options{}, nil)
	if _, err := c.Compile(doc); !errors.Is(err, boom) {
		t.Fatalf("Compile() error = %v, want %v", err, boom)
	}
	if doc.Root() != nil {
		t.Error("document not released after failure")
	}
}

func TestCompile_ReleasedDocument(t *testing.T) {
	doc, err := Parse("x", []byte(`<svg/>`))
	if err != nil {
		t.Fatal(err)
	}
	c := NewCompiler(&recordingSink{}, Options{}, nil)
	if _, err := c.Compile(doc); err != nil {
		t.Fatal(err)
	}
	if _, err := c.Compile(doc); err == nil {
		t.Error("second Compile() of released document succeeded")
	}
}

func TestCompile_CustomDefaultViewBox(t *testing.T) {
	doc, _ := Parse("x", []byte(`<svg/>`))
	c := NewCompiler(&recordingSink{}, Options{DefaultViewBox: "0 0 24 24"}, nil)
	got, err := c.Compile(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, `viewBox="0 0 24 24"`) {
		t.Errorf("Compile() = %s", got)
	}

	doc, _ = Parse("y", []byte(`<svg/>`))
	c = NewCompiler(&recordingSink{}, Options{DefaultViewBox: "bogus"}, nil)
	got, _ = c.Compile(doc)
	if !strings.Contains(got, `viewBox="0 0 1 1"`) {
		t.Errorf("invalid default not replaced: %s", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		markup string
	}{
		{"empty", ""},
		{"no svg element", `<html><body><p>icon</p></body></html>`},
		{"plain text", "just some text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("x", []byte(tt.markup))
			if !errors.Is(err, ErrMalformedMarkup) {
				t.Errorf("Parse() error = %v, want ErrMalformedMarkup", err)
			}
		})
	}
}

func TestParse_NestedAndPrefixedRoot(t *testing.T) {
	doc, err := Parse("x", []byte(`<svg:svg xmlns:svg="http://www.w3.org/2000/svg" viewBox="0 0 3 3"><svg:rect/></svg:svg>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.Root() == nil || doc.Root().Tag != "svg" {
		t.Fatalf("root = %v", doc.Root())
	}

	doc, err = Parse("y", []byte(`<div><span><svg viewBox="0 0 5 5"/></span></div>`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if v := doc.Root().SelectAttrValue("viewBox", ""); v != "0 0 5 5" {
		t.Errorf("nested root viewBox = %q", v)
	}
}

func TestParse_Charset(t *testing.T) {
	body, err := charmap.Windows1251.NewEncoder().String(`<svg viewBox="0 0 1 1"><title>Привет</title></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	markup := `<?xml version="1.0" encoding="windows-1251"?>` + body

	got := compile(t, &recordingSink{}, "x", markup)
	if !strings.Contains(got, "<title>Привет</title>") {
		t.Errorf("Compile() = %s", got)
	}
}
