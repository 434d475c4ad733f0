package symbol

import "testing"

func TestMakeID(t *testing.T) {
	tests := []struct {
		name    string
		values  IDValues
		opts    IDOptions
		want    string
		wantErr bool
	}{
		{
			name:   "stem",
			values: IDValues{Stem: "arrow-left", Name: "icons/arrow-left.svg"},
			want:   "arrow-left",
		},
		{
			name:   "prefix",
			values: IDValues{Stem: "arrow"},
			opts:   IDOptions{Prefix: "icon-"},
			want:   "icon-arrow",
		},
		{
			name:   "slugify",
			values: IDValues{Stem: "My Icon (Large)"},
			opts:   IDOptions{Slugify: true},
			want:   "my-icon-large",
		},
		{
			name:   "template",
			values: IDValues{Stem: "Arrow", Index: 3},
			opts:   IDOptions{Template: `{{ .Stem | lower }}-{{ .Index }}`},
			want:   "arrow-3",
		},
		{
			name:   "template with prefix and slug",
			values: IDValues{Stem: "Arrow Left", Name: "set/Arrow Left.svg"},
			opts:   IDOptions{Template: `{{ dir .Name }} {{ .Stem }}`, Slugify: true, Prefix: "i-"},
			want:   "i-set-arrow-left",
		},
		{
			name:    "empty",
			values:  IDValues{Name: ".svg"},
			wantErr: true,
		},
		{
			name:    "bad template",
			values:  IDValues{Stem: "a"},
			opts:    IDOptions{Template: `{{ .Stem `},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MakeID(tt.values, tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Errorf("MakeID() = %q, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("MakeID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("MakeID() = %q, want %q", got, tt.want)
			}
		})
	}
}
