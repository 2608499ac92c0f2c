// Package videoid extracts video identifiers from the URL forms users
// paste: full watch URLs, embed URLs, short links and bare 11-character ids.
package videoid

import "regexp"

var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`),
	regexp.MustCompile(`(?:embed/)([0-9A-Za-z_-]{11})`),
	regexp.MustCompile(`^([0-9A-Za-z_-]{11})$`),
}

// Extract returns the video id embedded in s, or false if none matches.
func Extract(s string) (string, bool) {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(s); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// ExtractAll maps a list of URLs to the ids that could be parsed,
// dropping everything unparseable.
func ExtractAll(urls []string) []string {
	var ids []string
	for _, u := range urls {
		if id, ok := Extract(u); ok {
			ids = append(ids, id)
		}
	}
	return ids
}
