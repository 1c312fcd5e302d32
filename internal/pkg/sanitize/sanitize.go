package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Content cleans user-generated HTML to prevent stored XSS and trims
// surrounding whitespace.
func Content(input string) string {
	return strings.TrimSpace(policy.Sanitize(input))
}
