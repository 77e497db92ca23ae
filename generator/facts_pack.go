// Package generator drives a selected candidate through facts-pack building,
// LLM generation, validation and persistence.
package generator

import (
	"encoding/json"
	"strings"

	"github.com/SerhiiAndruschenko/aidevpulse/collector"
	"github.com/SerhiiAndruschenko/aidevpulse/model"
	"github.com/SerhiiAndruschenko/aidevpulse/ranker"
)

// FactsSource is one official link the generation capability may cite.
type FactsSource struct {
	Url   string `json:"url"`
	Title string `json:"title"`
}

// KeyFacts is the structured core of a facts pack.
type KeyFacts struct {
	Version    string   `json:"version"`
	Date       string   `json:"date"`
	Highlights []string `json:"highlights"`
	Risk       []string `json:"risk"`
	Ecosystem  []string `json:"ecosystem"`
}

// FactsPack is the normalized brief handed to the generation capability. It
// is built from exactly one ranked item and never persisted.
type FactsPack struct {
	Topic    string        `json:"topic"`
	Sources  []FactsSource `json:"sources"`
	KeyFacts KeyFacts      `json:"key_facts"`
	Audience string        `json:"audience"`
	Language string        `json:"language"`
}

const (
	defaultAudience  = "experienced web developers"
	defaultLanguage  = "en"
	defaultHighlight = "Release announcement"
)

// BuildFactsPack converts one ranked item into a facts pack. It is pure and
// total: absent fields fall back to generic defaults, it never fails.
func BuildFactsPack(item *ranker.RankedItem) *FactsPack {
	pack := &FactsPack{
		Topic:    item.Title,
		Audience: defaultAudience,
		Language: defaultLanguage,
		Sources:  []FactsSource{{Url: item.Url, Title: item.Title}},
	}
	if pack.Topic == "" {
		pack.Topic = "Unknown Topic"
	}
	if item.PublishedAt != nil {
		pack.KeyFacts.Date = item.PublishedAt.UTC().Format("2006-01-02")
	}

	body := extractFacts(item, pack)
	scanSignals(body, &pack.KeyFacts)

	if len(pack.KeyFacts.Highlights) == 0 {
		pack.KeyFacts.Highlights = []string{defaultHighlight}
	}
	if pack.KeyFacts.Risk == nil {
		pack.KeyFacts.Risk = []string{}
	}
	if pack.KeyFacts.Ecosystem == nil {
		pack.KeyFacts.Ecosystem = []string{}
	}
	return pack
}

// extractFacts decodes the per-kind payload variant and returns the free-text
// body to scan for signals. Unknown kinds fall back to the raw payload text.
func extractFacts(item *ranker.RankedItem, pack *FactsPack) string {
	switch item.Source.Kind {
	case model.SourceKindGithub:
		var payload collector.GithubPayload
		if err := json.Unmarshal(item.Payload, &payload); err != nil {
			return string(item.Payload)
		}
		if payload.TagName != "" {
			pack.KeyFacts.Version = payload.TagName
			pack.Topic = item.Title + " Release"
		}
		return payload.Body
	case model.SourceKindRegistry:
		var payload collector.RegistryPayload
		if err := json.Unmarshal(item.Payload, &payload); err != nil {
			return string(item.Payload)
		}
		if payload.Version != "" {
			pack.KeyFacts.Version = payload.Version
		}
		return payload.Description + " " + strings.Join(payload.Keywords, " ")
	case model.SourceKindRss:
		var payload collector.RssPayload
		if err := json.Unmarshal(item.Payload, &payload); err != nil {
			return string(item.Payload)
		}
		return payload.Description
	case model.SourceKindBlog:
		var payload collector.BlogPayload
		if err := json.Unmarshal(item.Payload, &payload); err != nil {
			return string(item.Payload)
		}
		return payload.Description
	default:
		return string(item.Payload)
	}
}

// scanSignals maps the same signal words ranking uses into facts-pack
// buckets: breaking goes to risk, security/performance/features to
// highlights, named ecosystems to the ecosystem list.
func scanSignals(body string, facts *KeyFacts) {
	text := strings.ToLower(body)
	if text == "" {
		return
	}

	if strings.Contains(text, "breaking") {
		facts.Risk = append(facts.Risk, "Breaking changes detected")
	}
	if strings.Contains(text, "security") {
		facts.Highlights = append(facts.Highlights, "Security updates")
	}
	if strings.Contains(text, "performance") {
		facts.Highlights = append(facts.Highlights, "Performance improvements")
	}
	if strings.Contains(text, "new feature") {
		facts.Highlights = append(facts.Highlights, "New features")
	}

	ecosystems := []struct{ needle, label string }{
		{"react", "React ecosystem"},
		{"node", "Node.js ecosystem"},
		{"typescript", "TypeScript ecosystem"},
	}
	for _, eco := range ecosystems {
		if strings.Contains(text, eco.needle) {
			facts.Ecosystem = append(facts.Ecosystem, eco.label)
		}
	}
}
