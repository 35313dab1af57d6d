package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	ugcPolicy    = bluemonday.UGCPolicy()
)

// StripTags removes all markup. Used for single-line fields such as titles.
func StripTags(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// SanitizeRichText keeps the safe subset of HTML that user content may carry,
// such as comments and descriptions.
func SanitizeRichText(s string) string {
	return strings.TrimSpace(ugcPolicy.Sanitize(s))
}
