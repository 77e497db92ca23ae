package generator

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationResult is the total outcome of editorial validation: IsValid is
// true exactly when Issues is empty.
type ValidationResult struct {
	IsValid bool
	Issues  []string
}

// Official publisher domains accepted as citation sources even when the
// facts pack doesn't list them.
var trustedDomains = []string{
	"github.com",
	"npmjs.com",
	"nodejs.org",
	"react.dev",
	"nextjs.org",
	"vuejs.org",
	"angular.dev",
	"developer.mozilla.org",
	"openai.com",
	"go.dev",
	"rust-lang.org",
	"python.org",
}

// Filler phrases that disqualify a generated body.
var forbiddenPhrases = []string{
	"as we all know",
	"in today's world",
	"it's no secret",
	"everyone knows",
	"obviously",
	"clearly",
	"undoubtedly",
}

// ValidateArticle runs the structural and editorial checks on sanitized
// generation output. It never fails: every problem becomes an issue string.
// An off-source, off-allow-list citation is a blocking issue.
func ValidateArticle(article *ArticleContent, facts *FactsPack) ValidationResult {
	issues := []string{}

	if len(article.Headline) < 10 {
		issues = append(issues, "Headline too short or missing")
	}
	if len(article.Dek) < 20 {
		issues = append(issues, "Dek (subtitle) too short or missing")
	}
	if len(article.BodySections.Summary150w) < 50 {
		issues = append(issues, "Summary too short or missing")
	}
	if len(article.BodySections.WhatChanged) == 0 {
		issues = append(issues, "No \"what changed\" items")
	}
	if len(article.BodySections.WhyItMatters) == 0 {
		issues = append(issues, "No \"why it matters\" items")
	}
	if len(article.Citations) == 0 {
		issues = append(issues, "No citations provided")
	}

	for _, citation := range article.Citations {
		if !isOfficialCitation(citation.Url, facts) {
			issues = append(issues, fmt.Sprintf("Citation not from official sources: %s", citation.Url))
		}
	}

	fullText := strings.ToLower(article.Headline + " " + article.Dek + " " + flattenSections(&article.BodySections))
	for _, phrase := range forbiddenPhrases {
		if strings.Contains(fullText, phrase) {
			issues = append(issues, fmt.Sprintf("Forbidden pattern detected: %q", phrase))
		}
	}

	return ValidationResult{IsValid: len(issues) == 0, Issues: issues}
}

// isOfficialCitation accepts a url that matches a facts-pack source (exact or
// substring) or whose host belongs to the trusted-domain allow-list.
func isOfficialCitation(citationUrl string, facts *FactsPack) bool {
	for _, source := range facts.Sources {
		if source.Url == "" {
			continue
		}
		if citationUrl == source.Url || strings.Contains(citationUrl, source.Url) {
			return true
		}
	}

	parsed, err := url.Parse(citationUrl)
	if err != nil || parsed.Host == "" {
		return false
	}
	host := strings.TrimPrefix(parsed.Host, "www.")
	for _, domain := range trustedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

func flattenSections(sections *BodySections) string {
	parts := []string{sections.Summary150w}
	parts = append(parts, sections.WhatChanged...)
	parts = append(parts, sections.WhyItMatters...)
	parts = append(parts, sections.Actions...)
	parts = append(parts, sections.BreakingChanges...)
	return strings.Join(parts, " ")
}
