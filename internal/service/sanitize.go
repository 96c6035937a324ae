package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var plainText = bluemonday.StrictPolicy()

const maxCleanPasses = 4

// cleanText strips markup from free text typed by players and admins. Entities
// are decoded for storage, so decoded text is sanitized again until it settles.
func cleanText(s string) string {
	for range maxCleanPasses {
		next := html.UnescapeString(plainText.Sanitize(s))
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}
