// Package ranker assigns relevance scores to raw items and selects a
// diversified top-K batch for generation. Scoring is a pure additive
// heuristic: the same item and config always produce the same score.
package ranker

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

// RankedItem decorates a RawItem with its score for one ranking pass. It is
// never persisted.
type RankedItem struct {
	model.RawItem
	Score   float64
	Reasons []string
}

// Config tunes one ranking pass.
type Config struct {
	// Topic relevance vocabulary, matched case-insensitively.
	RelevantKeywords []string
	// Source ids that get a flat priority boost.
	PrioritySources []string
	// Items scoring below MinScore are dropped.
	MinScore float64
	// Truncation bound of the ranked list.
	MaxItems int
	// Reference time for the recency bonus. Zero means time.Now(); tests pin
	// it to keep scoring deterministic.
	Now time.Time
}

// DefaultConfig returns the curated vocabulary and thresholds.
func DefaultConfig() Config {
	return Config{
		RelevantKeywords: []string{
			// Frameworks
			"react", "nextjs", "vue", "angular", "svelte", "nuxt", "vite", "bun", "deno",
			// Languages
			"typescript", "javascript", "nodejs", "python", "rust", "go",
			// AI/ML
			"ai", "artificial intelligence", "machine learning", "ml", "openai", "gemini", "claude",
			// Cloud & infrastructure
			"aws", "azure", "gcp", "google cloud", "vercel", "netlify", "docker", "kubernetes",
			// Databases
			"postgresql", "mysql", "redis", "mongodb", "elasticsearch",
			// Tools & libraries
			"webpack", "rollup", "esbuild", "swc", "tailwind", "bootstrap",
			// Release lifecycle
			"release", "update", "version", "changelog", "breaking", "migration",
		},
		PrioritySources: []string{},
		MinScore:        0.3,
		MaxItems:        50,
	}
}

var majorVersionRe = regexp.MustCompile(`v?(\d+)\.0\.0`)

// itemText is the lowercase concatenation of title and serialized payload,
// the haystack every signal check runs against.
func itemText(item *model.RawItem) string {
	return strings.ToLower(item.Title + " " + string(item.Payload))
}

// Score computes the relevance score of one item in [0,1] together with the
// human-readable reasons for each signal that fired.
func Score(item *model.RawItem, config Config) (float64, []string) {
	score := 0.0
	reasons := []string{}
	text := itemText(item)

	matched := []string{}
	for _, keyword := range config.RelevantKeywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}
	if len(matched) > 0 {
		score += float64(len(matched)) * 0.2
		reasons = append(reasons, "Relevant keywords: "+strings.Join(matched, ", "))
	}

	if strings.Contains(text, "release") || strings.Contains(text, "version") {
		score += 0.3
		reasons = append(reasons, "Release/version announcement")
	}

	if strings.Contains(text, "breaking") || strings.Contains(text, "migration") {
		score += 0.4
		reasons = append(reasons, "Breaking changes mentioned")
	}

	if majorVersionRe.MatchString(text) {
		score += 0.5
		reasons = append(reasons, "Major version release")
	}

	if strings.Contains(text, "security") || strings.Contains(text, "vulnerability") || strings.Contains(text, "cve") {
		score += 0.4
		reasons = append(reasons, "Security update")
	}

	if strings.Contains(text, "performance") || strings.Contains(text, "faster") || strings.Contains(text, "optimization") {
		score += 0.2
		reasons = append(reasons, "Performance improvements")
	}

	if strings.Contains(text, "new feature") || strings.Contains(text, "introducing") || strings.Contains(text, "added") {
		score += 0.2
		reasons = append(reasons, "New features")
	}

	for _, id := range config.PrioritySources {
		if id == item.SourceID {
			score += 0.3
			reasons = append(reasons, "Priority source")
			break
		}
	}

	now := config.Now
	if now.IsZero() {
		now = time.Now()
	}
	if item.PublishedAt != nil {
		age := now.Sub(*item.PublishedAt)
		switch {
		case age <= 24*time.Hour:
			score += 0.3
			reasons = append(reasons, "Very recent (within 24h)")
		case age <= 7*24*time.Hour:
			score += 0.2
			reasons = append(reasons, "Recent (within 7 days)")
		case age <= 30*24*time.Hour:
			score += 0.1
			reasons = append(reasons, "Recent (within 30 days)")
		}
	}

	if len(item.Title) > 10 {
		score += 0.1
		reasons = append(reasons, "Good title length")
	}
	if strings.Contains(item.Url, "github.com") {
		score += 0.1
		reasons = append(reasons, "GitHub source")
	}

	if len(item.Payload) < 100 {
		score -= 0.2
		reasons = append(reasons, "Short content (penalty)")
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, reasons
}

// RankItems scores every item, sorts descending (stable, so ties keep the
// adapters' insertion order), filters by MinScore and truncates to MaxItems.
func RankItems(items []model.RawItem, config Config) []RankedItem {
	ranked := make([]RankedItem, 0, len(items))
	for i := range items {
		score, reasons := Score(&items[i], config)
		ranked = append(ranked, RankedItem{RawItem: items[i], Score: score, Reasons: reasons})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	filtered := make([]RankedItem, 0, len(ranked))
	for _, item := range ranked {
		if item.Score >= config.MinScore {
			filtered = append(filtered, item)
		}
		if len(filtered) >= config.MaxItems {
			break
		}
	}
	return filtered
}

// String implements fmt.Stringer for log lines.
func (r RankedItem) String() string {
	return fmt.Sprintf("%.2f %q", r.Score, r.Title)
}
