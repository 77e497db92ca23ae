package generator

import (
	"strings"
)

// ArticleContent is the structured-output contract of the generation
// capability. It is transient: once validated it is mapped into the persisted
// Article, Citation and Tag entities.
type ArticleContent struct {
	Headline     string       `json:"headline"`
	Dek          string       `json:"dek"`
	BodySections BodySections `json:"body_sections"`
	CodeSnippet  *CodeSnippet `json:"code_snippet,omitempty"`
	Citations    []Citation   `json:"citations"`
	Tags         []string     `json:"tags"`
}

type BodySections struct {
	Summary150w     string   `json:"summary_150w"`
	WhatChanged     []string `json:"what_changed"`
	WhyItMatters    []string `json:"why_it_matters"`
	Actions         []string `json:"actions"`
	BreakingChanges []string `json:"breaking_changes"`
}

type CodeSnippet struct {
	Lang  string `json:"lang"`
	Title string `json:"title"`
	Code  string `json:"code"`
}

type Citation struct {
	Url   string `json:"url"`
	Title string `json:"title"`
}

// Placeholder strings models emit instead of leaving a field out.
var placeholderValues = map[string]bool{
	"null": true, "none": true, "n/a": true, "undefined": true,
}

// Sanitize normalizes generation output in place before validation: trims
// strings, coerces placeholder values to empty, drops blank list entries and
// replaces nil slices with empty ones. After Sanitize the content maps onto
// the article's non-null column contract. Returns true iff anything was
// repaired.
func (c *ArticleContent) Sanitize() bool {
	repaired := false

	clean := func(s string) string {
		trimmed := strings.TrimSpace(s)
		if placeholderValues[strings.ToLower(trimmed)] {
			repaired = true
			return ""
		}
		if trimmed != s {
			repaired = true
		}
		return trimmed
	}
	cleanList := func(list []string) []string {
		if list == nil {
			repaired = true
			return []string{}
		}
		out := make([]string, 0, len(list))
		for _, entry := range list {
			cleaned := clean(entry)
			if cleaned == "" {
				repaired = true
				continue
			}
			out = append(out, cleaned)
		}
		return out
	}

	c.Headline = clean(c.Headline)
	c.Dek = clean(c.Dek)
	c.BodySections.Summary150w = clean(c.BodySections.Summary150w)
	c.BodySections.WhatChanged = cleanList(c.BodySections.WhatChanged)
	c.BodySections.WhyItMatters = cleanList(c.BodySections.WhyItMatters)
	c.BodySections.Actions = cleanList(c.BodySections.Actions)
	c.BodySections.BreakingChanges = cleanList(c.BodySections.BreakingChanges)
	c.Tags = cleanList(c.Tags)

	if c.Citations == nil {
		c.Citations = []Citation{}
		repaired = true
	}
	citations := make([]Citation, 0, len(c.Citations))
	for _, citation := range c.Citations {
		citation.Url = clean(citation.Url)
		citation.Title = clean(citation.Title)
		if citation.Url == "" {
			repaired = true
			continue
		}
		citations = append(citations, citation)
	}
	c.Citations = citations

	if c.CodeSnippet != nil && strings.TrimSpace(c.CodeSnippet.Code) == "" {
		c.CodeSnippet = nil
		repaired = true
	}

	return repaired
}
