package menu

import (
	"strings"
	"unicode"
)

// Slugify converts a display label into a URL/key-safe identifier: lowercase,
// with every run of whitespace or punctuation collapsed to a single hyphen
// and no leading or trailing hyphens. Deterministic and pure; two labels may
// collide ("Test  Section" and "test section"), in which case the last
// resolved section wins the map key.
func Slugify(label string) string {
	var b strings.Builder
	b.Grow(len(label))

	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(label)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
