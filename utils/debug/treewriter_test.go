package debug

import (
	"testing"
)

func TestNewTreeWriter(t *testing.T) {
	tw := NewTreeWriter()
	if tw == nil {
		t.Fatal("NewTreeWriter() returned nil")
	}
	if tw.String() != "" {
		t.Error("Expected empty string from new TreeWriter")
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tests := []struct {
		name   string
		depth  int
		format string
		args   []any
		want   string
	}{
		{
			name:   "no depth",
			depth:  0,
			format: "test",
			want:   "test\n",
		},
		{
			name:   "depth 2",
			depth:  2,
			format: "double indent",
			want:   "    double indent\n",
		},
		{
			name:   "with formatting",
			depth:  1,
			format: "[%d] %s",
			args:   []any{3, ".a"},
			want:   "  [3] .a\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Line(tt.depth, tt.format, tt.args...)
			if got := tw.String(); got != tt.want {
				t.Errorf("Line() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_Field(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		key   string
		value string
		want  string
	}{
		{"plain", 0, "source", "icon", "source: icon\n"},
		{"indented", 2, "source", "icon", "    source: icon\n"},
		{"empty", 0, "source", "", "source: \n"},
		{"newline quoted", 0, "text", "a\nb", "text: \"a\\nb\"\n"},
		{"padding quoted", 1, "name", " x ", "  name: \" x \"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.Field(tt.depth, tt.key, tt.value)
			if got := tw.String(); got != tt.want {
				t.Errorf("Field() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_TextBlock(t *testing.T) {
	tests := []struct {
		name  string
		depth int
		label string
		text  string
		want  string
	}{
		{
			name:  "empty",
			depth: 1,
			label: "text",
			want:  "  text: <empty>\n",
		},
		{
			name:  "multiline",
			depth: 1,
			label: "text",
			text:  "@media print {\n  .a {}\n}\n",
			want:  "  text:\n    @media print {\n      .a {}\n    }\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tw := NewTreeWriter()
			tw.TextBlock(tt.depth, tt.label, tt.text)
			if got := tw.String(); got != tt.want {
				t.Errorf("TextBlock() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTreeWriter_List(t *testing.T) {
	tw := NewTreeWriter()
	tw.List(0, "sources", []string{"a.svg", "b c.svg"})
	tw.List(1, "skipped", nil)

	want := "sources (2)\n  - a.svg\n  - b c.svg\n  skipped (0)\n"
	if got := tw.String(); got != want {
		t.Errorf("List() = %q, want %q", got, want)
	}
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty string", "", ""},
		{"simple text", "hello", "hello"},
		{"inner spaces", "hello world", "hello world"},
		{"with newline", "line1\nline2", `"line1\nline2"`},
		{"with tab", "col1\tcol2", `"col1\tcol2"`},
		{"with backquote", "a`b", "\"a`b\""},
		{"leading space", " a", `" a"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encodeText(tt.input); got != tt.want {
				t.Errorf("encodeText() = %q, want %q", got, tt.want)
			}
		})
	}
}
