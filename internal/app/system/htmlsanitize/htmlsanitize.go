// Package htmlsanitize strips markup from user-supplied text before it is
// stored. Complaint titles and descriptions are plain text in the API, so
// anything that looks like HTML is attacker input, not formatting.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Strip removes all HTML elements and attributes from s, keeping the inner
// text, and trims surrounding whitespace.
func Strip(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
