package generator

import (
	"context"
	"time"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
	"github.com/SerhiiAndruschenko/aidevpulse/ranker"
	Logger "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

// CandidateState tracks one candidate through the generation state machine.
type CandidateState string

const (
	StateSelected         CandidateState = "SELECTED"
	StateFactsBuilt       CandidateState = "FACTS_BUILT"
	StateGenerating       CandidateState = "GENERATING"
	StateGenerated        CandidateState = "GENERATED"
	StateValidating       CandidateState = "VALIDATING"
	StatePersisted        CandidateState = "PERSISTED"
	StateRejected         CandidateState = "REJECTED"
	StateGenerationFailed CandidateState = "GENERATION_FAILED"
)

// CandidateResult is the terminal record of one candidate. Exactly one of
// Article and Err/Issues is meaningful depending on State.
type CandidateResult struct {
	ItemTitle string
	State     CandidateState
	Article   *model.Article
	Issues    []string
	Err       error
}

// ArticleStore is the slice of storage the orchestrator needs.
type ArticleStore interface {
	GetArticleBySlug(slug string) (*model.Article, error)
	GetRecentArticles(daysBack int) ([]model.Article, error)
	InsertArticleBundle(article *model.Article, citations []model.Citation, tagNames []string) error
}

// Trailing window of the cross-run near-duplicate guard, in days.
const duplicateWindowDays = 7

// Orchestrator drives diversified candidates through generation, validation
// and persistence. Candidates are processed sequentially: the LLM quota is
// the bottleneck, not wall-clock time.
type Orchestrator struct {
	Store     ArticleStore
	Generator GenerationClient
	Images    ImageClient
	Lang      string
}

func NewOrchestrator(store ArticleStore, generation GenerationClient, images ImageClient) *Orchestrator {
	if images == nil {
		images = NoopImageClient{}
	}
	return &Orchestrator{Store: store, Generator: generation, Images: images, Lang: defaultLanguage}
}

// GenerateArticles runs the state machine for every candidate. One
// candidate's failure never aborts the batch; the caller reads per-candidate
// outcomes from the results.
func (o *Orchestrator) GenerateArticles(ctx context.Context, candidates []ranker.RankedItem) []CandidateResult {
	results := make([]CandidateResult, 0, len(candidates))
	for i := range candidates {
		if err := ctx.Err(); err != nil {
			results = append(results, CandidateResult{
				ItemTitle: candidates[i].Title,
				State:     StateGenerationFailed,
				Err:       err,
			})
			continue
		}
		result := o.generateOne(ctx, &candidates[i])
		switch result.State {
		case StatePersisted:
			Logger.Log.Infof("persisted article %s from %q", result.Article.Slug, result.ItemTitle)
		case StateRejected:
			Logger.Log.Warnf("rejected candidate %q: %v %v", result.ItemTitle, result.Issues, result.Err)
		case StateGenerationFailed:
			Logger.Log.Errorf("generation failed for candidate %q: %v", result.ItemTitle, result.Err)
		}
		results = append(results, result)
	}
	return results
}

// generateOne walks one candidate to a terminal state.
func (o *Orchestrator) generateOne(ctx context.Context, item *ranker.RankedItem) CandidateResult {
	result := CandidateResult{ItemTitle: item.Title, State: StateSelected}

	facts := BuildFactsPack(item)
	result.State = StateFactsBuilt

	result.State = StateGenerating
	content, err := o.Generator.GenerateArticle(ctx, facts)
	if err != nil {
		result.State = StateGenerationFailed
		result.Err = err
		return result
	}
	result.State = StateGenerated

	repaired := content.Sanitize()

	result.State = StateValidating
	validation := ValidateArticle(content, facts)
	if !validation.IsValid {
		result.State = StateRejected
		result.Issues = validation.Issues
		return result
	}

	slug := Slugify(content.Headline)
	if dup, err := o.findDuplicate(slug, content.Headline); err != nil {
		result.State = StateRejected
		result.Err = err
		return result
	} else if dup != nil {
		result.State = StateRejected
		result.Err = dup
		return result
	}

	bodyHtml, wordCount := RenderBodyHtml(content)

	// Validation passed cleanly: publish as auto. Output the sanitizer had to
	// repair goes through human review instead.
	reviewStatus := model.ReviewStatusAuto
	if repaired {
		reviewStatus = model.ReviewStatusNeedsReview
	}

	article := &model.Article{
		Slug:             slug,
		Title:            content.Headline,
		Dek:              content.Dek,
		BodyHtml:         bodyHtml,
		WordCount:        wordCount,
		HeroUrl:          maybeHeroImage(ctx, o.Images, facts.Topic),
		Lang:             o.Lang,
		AuthorType:       model.AuthorTypeAi,
		ReviewStatus:     reviewStatus,
		PrimarySourceUrl: item.Url,
		PublishedAt:      time.Now(),
	}

	citations := make([]model.Citation, 0, len(content.Citations))
	for _, citation := range content.Citations {
		citations = append(citations, model.Citation{Url: citation.Url, Title: citation.Title})
	}

	if err := o.Store.InsertArticleBundle(article, citations, content.Tags); err != nil {
		result.State = StateRejected
		result.Err = &PersistenceError{Slug: slug, Err: err}
		return result
	}

	result.State = StatePersisted
	result.Article = article
	return result
}

// findDuplicate is the cross-run guard complementing the raw-item
// fingerprint: exact slug collision, or an article in the trailing window
// whose title or slug shares at least two significant words.
func (o *Orchestrator) findDuplicate(slug, headline string) (*DuplicateArticleError, error) {
	if existing, err := o.Store.GetArticleBySlug(slug); err != nil {
		return nil, err
	} else if existing != nil {
		return &DuplicateArticleError{Slug: slug, ConflictsWith: existing.Slug}, nil
	}

	recent, err := o.Store.GetRecentArticles(duplicateWindowDays)
	if err != nil {
		return nil, err
	}
	for i := range recent {
		if ranker.AreSimilarTitles(headline, recent[i].Title) || ranker.AreSimilarTitles(slug, recent[i].Slug) {
			return &DuplicateArticleError{Slug: slug, ConflictsWith: recent[i].Slug}, nil
		}
	}
	return nil, nil
}
