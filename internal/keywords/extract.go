package keywords

import (
	"sort"
	"strings"
	"unicode"
)

// stopWords are common English function words excluded from niche keywords.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "how": {}, "what": {}, "why": {}, "when": {}, "where": {},
	"who": {}, "this": {}, "that": {}, "these": {}, "those": {}, "i": {},
	"you": {}, "we": {}, "they": {}, "my": {}, "your": {}, "our": {},
	"their": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {},
}

const minTokenLen = 4

// Extract returns the topN most frequent keywords across the given titles.
// Titles are lowercased, punctuation stripped, and split on whitespace;
// stop words and tokens shorter than 4 characters are discarded. Frequency
// ties keep first-encountered order, so the output is deterministic.
func Extract(titles []string, topN int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, title := range titles {
		for _, token := range strings.Fields(clean(title)) {
			if _, stop := stopWords[token]; stop {
				continue
			}
			if len([]rune(token)) < minTokenLen {
				continue
			}
			if _, seen := counts[token]; !seen {
				firstSeen[token] = order
				order++
			}
			counts[token]++
		}
	}

	tokens := make([]string, 0, len(counts))
	for token := range counts {
		tokens = append(tokens, token)
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return firstSeen[tokens[i]] < firstSeen[tokens[j]]
	})

	if topN < len(tokens) {
		tokens = tokens[:topN]
	}
	return tokens
}

// Labels derives a video's main keyword and niche label from its title.
// The niche is the top two keywords joined by a space; with one survivor
// it is that keyword alone, with none it falls back to "general" (and the
// main keyword to "unknown").
func Labels(title string) (mainKeyword, niche string) {
	kws := Extract([]string{title}, 2)
	switch len(kws) {
	case 0:
		return "unknown", "general"
	case 1:
		return kws[0], kws[0]
	default:
		return kws[0], kws[0] + " " + kws[1]
	}
}

// clean lowercases and strips everything except letters, digits,
// underscores and whitespace.
func clean(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsSpace(r), r == '_':
			return unicode.ToLower(r)
		default:
			return -1
		}
	}, s)
}
