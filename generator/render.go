package generator

import (
	"html"
	"strings"
)

// RenderBodyHtml turns validated article content into the stored body_html.
// The markup is deliberately plain: section headings, lists, one optional
// code block. Returns the html and its word count.
func RenderBodyHtml(content *ArticleContent) (string, int) {
	var b strings.Builder
	words := 0

	writeText := func(text string) string {
		words += len(strings.Fields(text))
		return html.EscapeString(text)
	}
	writeList := func(heading string, entries []string) {
		if len(entries) == 0 {
			return
		}
		b.WriteString("<h2>" + heading + "</h2>\n<ul>\n")
		for _, entry := range entries {
			b.WriteString("<li>" + writeText(entry) + "</li>\n")
		}
		b.WriteString("</ul>\n")
	}

	b.WriteString("<p>" + writeText(content.BodySections.Summary150w) + "</p>\n")
	writeList("What changed", content.BodySections.WhatChanged)
	writeList("Why it matters", content.BodySections.WhyItMatters)
	writeList("Actions", content.BodySections.Actions)
	writeList("Breaking changes", content.BodySections.BreakingChanges)

	if content.CodeSnippet != nil {
		b.WriteString("<h2>" + html.EscapeString(content.CodeSnippet.Title) + "</h2>\n")
		b.WriteString("<pre><code class=\"language-" + html.EscapeString(content.CodeSnippet.Lang) + "\">")
		b.WriteString(html.EscapeString(content.CodeSnippet.Code))
		b.WriteString("</code></pre>\n")
	}

	if len(content.Citations) > 0 {
		b.WriteString("<h2>Sources</h2>\n<ul>\n")
		for _, citation := range content.Citations {
			label := citation.Title
			if label == "" {
				label = citation.Url
			}
			b.WriteString("<li><a href=\"" + html.EscapeString(citation.Url) + "\">" + html.EscapeString(label) + "</a></li>\n")
		}
		b.WriteString("</ul>\n")
	}

	return b.String(), words
}
