package slug

import (
	"regexp"
	"strings"
	"unicode"
)

var reSlug = regexp.MustCompile(`^[\p{Ll}\p{N}_]{1,64}$`)

// IsSlug returns true if s matches ^[\p{Ll}\p{N}_]{1,64}$
func IsSlug(s string) bool {
	return reSlug.MatchString(s)
}

// Slugify converts s to a slug: lowercase, runs of non letter/digit runes -> single '_',
// trim to 64 runes and trim leading/trailing '_'. Letters outside ASCII are kept so
// Cyrillic item names stay distinguishable.
func Slugify(s string) string {
	if s == "" {
		return s
	}
	out := make([]rune, 0, len(s))
	prevUnderscore := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, r)
			prevUnderscore = false
		} else {
			if prevUnderscore {
				continue
			}
			out = append(out, '_')
			prevUnderscore = true
		}
		if len(out) >= 64 {
			break
		}
	}
	return strings.Trim(string(out), "_")
}
