package symbol

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
)

// IDOptions controls how symbol ids are derived from source names.
type IDOptions struct {
	Prefix   string
	Template string
	Slugify  bool
}

// IDValues is a struct that holds variables we make available for id
// template expansion.
type IDValues struct {
	Stem  string // source base name without extension
	Name  string // source name as discovered
	Index int    // position in discovery order
}

// MakeID derives symbol id. Template (when set) is expanded first, result is
// optionally slugified and prefixed.
func MakeID(values IDValues, opts IDOptions) (string, error) {
	id := values.Stem
	if opts.Template != "" {
		expanded, err := expandTemplate(opts.Template, values)
		if err != nil {
			return "", err
		}
		id = strings.TrimSpace(expanded)
	}
	if opts.Slugify {
		id = slug.Make(id)
	}
	id = opts.Prefix + id
	if id == "" {
		return "", fmt.Errorf("empty symbol id for %q", values.Name)
	}
	return id, nil
}

func expandTemplate(field string, values IDValues) (string, error) {
	tmpl, err := template.New("id_template").Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse id template: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to expand id template for %q: %w", values.Name, err)
	}
	return buf.String(), nil
}
