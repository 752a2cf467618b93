// Package narration cleans model output into a script a speech engine can read.
package narration

import (
	"regexp"
	"strings"
)

// Options tune the cleanup
type Options struct {
	// StripHyphens removes every "-" instead of only bullet markers and rules
	StripHyphens bool
}

// literal tokens removed wherever they appear; longer tokens first
var tokens = []string{"###", "##", "**", "__", "*", "`"}

var (
	reHeading = regexp.MustCompile(`(?m)^[ \t]*#{1,6}[ \t]*`)
	reBullet  = regexp.MustCompile(`(?m)^[ \t]*[-+][ \t]+`)
	reRule    = regexp.MustCompile(`(?m)^[ \t]*-{3,}[ \t]*$`)
)

// Clean strips heading, bullet and emphasis markup and trims surrounding
// whitespace. It repeats until nothing changes, so Clean(Clean(s)) == Clean(s).
func Clean(text string, opts Options) string {
	for {
		next := cleanOnce(text, opts)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanOnce(s string, opts Options) string {
	for _, tok := range tokens {
		s = strings.ReplaceAll(s, tok, "")
	}
	s = reHeading.ReplaceAllString(s, "")
	s = reRule.ReplaceAllString(s, "")
	s = reBullet.ReplaceAllString(s, "")
	if opts.StripHyphens {
		s = strings.ReplaceAll(s, "-", "")
	}
	return strings.TrimSpace(s)
}
