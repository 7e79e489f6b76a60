package media

import (
	"regexp"
	"strings"
)

// DefaultFileName is used when sanitizing leaves nothing behind.
const DefaultFileName = "archivo.mp4"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName reduces name to the portable set [A-Za-z0-9._-]. Each run of other
// characters collapses into a single underscore, then leading and trailing
// '.', '_' and '-' are trimmed. An empty result becomes DefaultFileName.
// Applying SafeName to its own output changes nothing.
func SafeName(name string) string {
	safe := unsafeChars.ReplaceAllString(name, "_")
	safe = strings.Trim(safe, "._-")
	if safe == "" {
		return DefaultFileName
	}
	return safe
}
