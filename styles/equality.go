package styles

import (
	"svgsprite/config"
	"svgsprite/css"
)

// declarationsEqual reports whether two declaration lists describe the same
// style under the requested comparison mode.
func declarationsEqual(a, b []css.Declaration, mode config.EqualityMode) bool {
	if len(a) != len(b) {
		return false
	}
	switch mode {
	case config.EqualityModeAsymmetric:
		// properties of a missing from b are not considered, repeated
		// properties of b are matched by their first occurrence
		other := make(map[string]string, len(b))
		for _, d := range b {
			if _, ok := other[d.Property]; !ok {
				other[d.Property] = d.Value
			}
		}
		for _, d := range a {
			if v, ok := other[d.Property]; ok && v != d.Value {
				return false
			}
		}
		return true
	default:
		ma, mb := declarationMap(a), declarationMap(b)
		if len(ma) != len(mb) {
			return false
		}
		for p, v := range ma {
			if w, ok := mb[p]; !ok || w != v {
				return false
			}
		}
		return true
	}
}

// declarationMap maps properties to their effective (last declared) values.
func declarationMap(decls []css.Declaration) map[string]string {
	m := make(map[string]string, len(decls))
	for _, d := range decls {
		m[d.Property] = d.Value
	}
	return m
}
