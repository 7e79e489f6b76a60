package media

import "strings"

// Source tells which acquisition strategy handles a URL
type Source int

const (
	// SourceDirectFile is fetched with a plain streamed GET
	SourceDirectFile Source = iota
	// SourcePlatformMedia goes through the yt-dlp extractor
	SourcePlatformMedia
)

func (s Source) String() string {
	if s == SourcePlatformMedia {
		return "platform"
	}
	return "direct"
}

// platformDomains are matched as plain substrings against the raw URL, which
// also covers short links and regional hosts.
var platformDomains = []string{
	"instagram.com",
	"youtu.be",
	"youtube.com",
	"tiktok.com",
}

// Classify decides the acquisition strategy for rawURL. Any URL that does not
// mention a hosted platform is treated as a direct file link.
func Classify(rawURL string) Source {
	for _, domain := range platformDomains {
		if strings.Contains(rawURL, domain) {
			return SourcePlatformMedia
		}
	}
	return SourceDirectFile
}
