// Package avatar derives a doctor's profile picture URL from their name and gender.
package avatar

import (
	"net/url"
	"strings"
	"unicode"
)

const baseURL = "https://avatar.iran.liara.run/public"

// Generate returns the avatar URL for name and gender. The result depends only
// on its inputs: the same name and gender always give the same URL.
func Generate(name string, gender string) string {
	variant := "boy"
	if strings.EqualFold(gender, "FEMALE") {
		variant = "girl"
	}

	return baseURL + "/" + variant + "?username=" + url.QueryEscape(username(name))
}

// username lowercases name and drops all whitespace.
func username(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
