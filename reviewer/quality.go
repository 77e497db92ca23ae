// Package reviewer is the batch quality pass running outside the generation
// hot path: link liveness, content and SEO heuristics, and auto-promotion of
// articles that score well.
package reviewer

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
	"github.com/SerhiiAndruschenko/aidevpulse/store"
	Logger "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

// Check statuses.
const (
	StatusPassed  = "passed"
	StatusWarning = "warning"
	StatusFailed  = "failed"
)

// Check types.
const (
	TypeLinkValidation  = "link_validation"
	TypeContentAnalysis = "content_analysis"
	TypeSeoCheck        = "seo_check"
)

// QualityCheck is one individual verdict inside a report.
type QualityCheck struct {
	Id      string `json:"id"`
	Type    string `json:"type"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// QualityReport aggregates all checks for one article into a 0-100 score.
type QualityReport struct {
	ArticleId       string         `json:"article_id"`
	OverallScore    int            `json:"overall_score"`
	Checks          []QualityCheck `json:"checks"`
	Recommendations []string       `json:"recommendations"`
}

// Articles score at or above this, with zero hard failures, are promoted.
const promotionThreshold = 80

// Articles examined per batch run.
const reviewBatchSize = 10

var headingRe = regexp.MustCompile(`<h[1-6]`)
var codeRe = regexp.MustCompile(`<pre|<code`)

var cliches = []struct{ needle, message string }{
	{"as we all know", `Avoid cliché phrases like "as we all know"`},
	{"in today's world", `Avoid cliché phrases like "in today's world"`},
	{"it's no secret", `Avoid cliché phrases like "it's no secret"`},
	{"everyone knows", `Avoid cliché phrases like "everyone knows"`},
	{"obviously", `Avoid unnecessary qualifiers like "obviously"`},
	{"clearly", `Avoid unnecessary qualifiers like "clearly"`},
	{"undoubtedly", `Avoid unnecessary qualifiers like "undoubtedly"`},
}

type Reviewer struct {
	Store  *store.Store
	client *resty.Client
}

func NewReviewer(s *store.Store) *Reviewer {
	return &Reviewer{
		Store:  s,
		client: resty.New().SetTimeout(10 * time.Second),
	}
}

// ValidateLinks probes each citation url with a HEAD request. Unreachable
// links are hard failures: a citation the reader cannot follow is worthless.
func (r *Reviewer) ValidateLinks(ctx context.Context, urls []string) []QualityCheck {
	checks := []QualityCheck{}
	for _, link := range urls {
		resp, err := r.client.R().SetContext(ctx).Head(link)
		switch {
		case err != nil:
			checks = append(checks, QualityCheck{
				Id:      "link_" + link,
				Type:    TypeLinkValidation,
				Status:  StatusFailed,
				Message: fmt.Sprintf("Link validation failed: %s", link),
			})
		case resp.IsError():
			checks = append(checks, QualityCheck{
				Id:      "link_" + link,
				Type:    TypeLinkValidation,
				Status:  StatusFailed,
				Message: fmt.Sprintf("Link returned %d: %s", resp.StatusCode(), link),
			})
		default:
			checks = append(checks, QualityCheck{
				Id:      "link_" + link,
				Type:    TypeLinkValidation,
				Status:  StatusPassed,
				Message: fmt.Sprintf("Link is accessible: %s", link),
			})
		}
	}
	return checks
}

// AnalyzeContent applies the editorial heuristics to the stored body html.
// Pure; warnings only.
func AnalyzeContent(content string) []QualityCheck {
	checks := []QualityCheck{}
	lower := strings.ToLower(content)

	for _, cliche := range cliches {
		if strings.Contains(lower, cliche.needle) {
			checks = append(checks, QualityCheck{
				Id:      "content_pattern_" + cliche.needle,
				Type:    TypeContentAnalysis,
				Status:  StatusWarning,
				Message: cliche.message,
			})
		}
	}

	wordCount := len(strings.Fields(content))
	if wordCount < 200 {
		checks = append(checks, QualityCheck{
			Id:      "content_length_short",
			Type:    TypeContentAnalysis,
			Status:  StatusWarning,
			Message: "Content is quite short (less than 200 words)",
		})
	} else if wordCount > 3000 {
		checks = append(checks, QualityCheck{
			Id:      "content_length_long",
			Type:    TypeContentAnalysis,
			Status:  StatusWarning,
			Message: "Content is quite long (more than 3000 words)",
		})
	}

	if !codeRe.MatchString(content) {
		checks = append(checks, QualityCheck{
			Id:      "content_no_code",
			Type:    TypeContentAnalysis,
			Status:  StatusWarning,
			Message: "No code snippets found - consider adding examples",
		})
	}

	if len(headingRe.FindAllString(content, -1)) < 2 {
		checks = append(checks, QualityCheck{
			Id:      "content_headings",
			Type:    TypeContentAnalysis,
			Status:  StatusWarning,
			Message: "Consider adding more headings for better structure",
		})
	}

	return checks
}

// AnalyzeSeo checks title/description lengths and hero presence. Pure;
// warnings only.
func AnalyzeSeo(article *model.Article) []QualityCheck {
	checks := []QualityCheck{}

	if len(article.Title) < 30 {
		checks = append(checks, QualityCheck{
			Id: "seo_title_short", Type: TypeSeoCheck, Status: StatusWarning,
			Message: "Title is quite short (less than 30 characters)",
		})
	} else if len(article.Title) > 60 {
		checks = append(checks, QualityCheck{
			Id: "seo_title_long", Type: TypeSeoCheck, Status: StatusWarning,
			Message: "Title is quite long (more than 60 characters)",
		})
	}

	if article.Dek != "" {
		if len(article.Dek) < 120 {
			checks = append(checks, QualityCheck{
				Id: "seo_description_short", Type: TypeSeoCheck, Status: StatusWarning,
				Message: "Description is quite short (less than 120 characters)",
			})
		} else if len(article.Dek) > 160 {
			checks = append(checks, QualityCheck{
				Id: "seo_description_long", Type: TypeSeoCheck, Status: StatusWarning,
				Message: "Description is quite long (more than 160 characters)",
			})
		}
	}

	if article.HeroUrl == "" {
		checks = append(checks, QualityCheck{
			Id: "seo_no_hero_image", Type: TypeSeoCheck, Status: StatusWarning,
			Message: "No hero image - consider adding one for better social sharing",
		})
	}

	return checks
}

// ScoreChecks folds checks into a 0-100 score: passed counts fully, warnings
// half, failures zero. No checks at all scores 100.
func ScoreChecks(checks []QualityCheck) int {
	if len(checks) == 0 {
		return 100
	}
	passed, warned := 0, 0
	for _, check := range checks {
		switch check.Status {
		case StatusPassed:
			passed++
		case StatusWarning:
			warned++
		}
	}
	return int(math.Round(float64(passed)*100/float64(len(checks)) + float64(warned)*50/float64(len(checks))))
}

// GenerateReport builds the full quality report for one article.
func (r *Reviewer) GenerateReport(ctx context.Context, article *model.Article) (*QualityReport, error) {
	citations, err := r.Store.GetCitationsByArticleId(article.Id)
	if err != nil {
		return nil, err
	}

	checks := []QualityCheck{}
	if len(citations) > 0 {
		urls := make([]string, 0, len(citations))
		for _, citation := range citations {
			urls = append(urls, citation.Url)
		}
		checks = append(checks, r.ValidateLinks(ctx, urls)...)
	}
	checks = append(checks, AnalyzeContent(article.BodyHtml)...)
	checks = append(checks, AnalyzeSeo(article)...)

	report := &QualityReport{
		ArticleId:    article.Id,
		OverallScore: ScoreChecks(checks),
		Checks:       checks,
	}

	hasFailures := false
	for _, check := range checks {
		if check.Status == StatusFailed {
			hasFailures = true
			break
		}
	}
	if hasFailures {
		report.Recommendations = append(report.Recommendations, "Fix failed checks before publishing")
	}
	if report.OverallScore < 70 {
		report.Recommendations = append(report.Recommendations, "Overall quality score is low - review and improve content")
	}

	return report, nil
}

// RunQualityChecks reviews the pending batch and promotes articles scoring
// at or above the threshold with zero hard failures. Per-article failures
// are logged and the batch continues.
func (r *Reviewer) RunQualityChecks(ctx context.Context) (int, error) {
	articles, err := r.Store.ListArticlesNeedingReview(reviewBatchSize)
	if err != nil {
		return 0, err
	}

	promoted := 0
	for i := range articles {
		article := &articles[i]
		report, err := r.GenerateReport(ctx, article)
		if err != nil {
			Logger.Log.Errorf("fail to review article %s: %v", article.Id, err)
			continue
		}
		Logger.Log.Infof("quality report for article %s: %d%%", article.Id, report.OverallScore)

		if report.OverallScore >= promotionThreshold && !hasFailedCheck(report.Checks) {
			if err := r.Store.UpdateReviewStatus(article.Id, model.ReviewStatusReviewed); err != nil {
				Logger.Log.Errorf("fail to promote article %s: %v", article.Id, err)
				continue
			}
			promoted++
		}
	}
	return promoted, nil
}

func hasFailedCheck(checks []QualityCheck) bool {
	for _, check := range checks {
		if check.Status == StatusFailed {
			return true
		}
	}
	return false
}
