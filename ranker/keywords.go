package ranker

import (
	"regexp"
	"strings"
)

// Coarse topic buckets used by the diversity selector.
var topicFrameworks = []string{
	"react", "nextjs", "vue", "angular", "svelte", "nodejs",
	"typescript", "javascript", "python", "rust", "go",
}

var topicReleaseWords = []string{"release", "update", "breaking", "security"}

var semverRe = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)

// Stopwords filtered out of similarity tokens.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"this": true, "that": true, "are": true, "was": true, "were": true,
	"have": true, "has": true, "had": true, "will": true, "would": true,
	"could": true, "should": true, "may": true, "might": true, "can": true,
	"must": true, "shall": true,
}

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9\s]`)

// TopicKeywords extracts the coarse topic fingerprint of an item: known
// framework names found in the text, the first semantic version string, and
// release-type words. Two items sharing any of these are considered the same
// topic by the diversity selector.
func TopicKeywords(item *RankedItem) []string {
	keywords := []string{}
	text := itemText(&item.RawItem)

	for _, framework := range topicFrameworks {
		if strings.Contains(text, framework) {
			keywords = append(keywords, framework)
		}
	}

	if m := semverRe.FindStringSubmatch(text); m != nil {
		keywords = append(keywords, m[1])
	}

	for _, word := range topicReleaseWords {
		if strings.Contains(text, word) {
			keywords = append(keywords, word)
		}
	}

	return keywords
}

// SignificantWords tokenizes a title or slug into the set of words used for
// near-duplicate detection: lowercased, punctuation stripped, stopwords and
// words of 3 characters or fewer removed.
func SignificantWords(text string) map[string]bool {
	normalized := nonAlnumRe.ReplaceAllString(strings.ToLower(strings.ReplaceAll(text, "-", " ")), "")
	words := map[string]bool{}
	for _, word := range strings.Fields(normalized) {
		if len(word) <= 3 || stopwords[word] {
			continue
		}
		words[word] = true
	}
	return words
}

// OverlapCount returns the cardinality of the intersection of two word sets.
func OverlapCount(a, b map[string]bool) int {
	count := 0
	for word := range a {
		if b[word] {
			count++
		}
	}
	return count
}

// AreSimilarTitles reports whether two titles share at least two significant
// words, the near-duplicate rule of the cross-run guard.
func AreSimilarTitles(a, b string) bool {
	return OverlapCount(SignificantWords(a), SignificantWords(b)) >= 2
}
