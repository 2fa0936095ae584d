// Package sanitize cleans user-submitted form text before it is stored in a
// workspace, echoed back into a page or written to the log. Uses bluemonday
// with a strict policy: all markup is removed, only the text survives.
package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// policy is the shared strict policy. bluemonday policies are safe for
// concurrent use once built.
var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text strips every HTML element from input and trims surrounding space.
// Entities produced by the policy are decoded again so that "R&D" stays
// "R&D"; templ escapes the result on output.
func Text(input string) string {
	if input == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(getPolicy().Sanitize(input)))
}

// Email normalizes an address for comparison and display.
func Email(input string) string {
	return strings.ToLower(Text(input))
}
