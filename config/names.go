package config

import "strings"

// PreviewFileName maps symbol id to the name of its PNG preview. Reserved and
// control characters become "_" so distinct ids rarely collide, leading dots
// are dropped so previews are never hidden.
func PreviewFileName(id string) string {
	name := strings.TrimLeft(strings.Map(func(r rune) rune {
		if r < ' ' || strings.ContainsRune(reservedNameChars, r) {
			return '_'
		}
		return r
	}, id), ".")
	if len(name) == 0 {
		name = "_symbol_"
	}
	return name + ".png"
}
