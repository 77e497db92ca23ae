// Package pipeline chains the full run: ingest, rank, select, generate,
// prune. It owns the run summary the trigger surface reports.
package pipeline

import (
	"context"

	"github.com/SerhiiAndruschenko/aidevpulse/collector"
	"github.com/SerhiiAndruschenko/aidevpulse/generator"
	"github.com/SerhiiAndruschenko/aidevpulse/model"
	"github.com/SerhiiAndruschenko/aidevpulse/ranker"
	"github.com/SerhiiAndruschenko/aidevpulse/store"
	Logger "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

// Candidate pool read from the dedup store per run.
const rankingPoolSize = 100

// RunSummary is the structured result of one pipeline run, serialized by the
// trigger endpoints.
type RunSummary struct {
	IngestedCount     int             `json:"ingested_count"`
	ArticlesGenerated int             `json:"articles_generated"`
	Articles          []model.Article `json:"articles"`
	FailedCandidates  int             `json:"failed_candidates"`
	RejectedCount     int             `json:"rejected_count"`
	PrunedItems       int64           `json:"pruned_items"`
}

type Pipeline struct {
	Store        *store.Store
	Builder      *collector.CollectorBuilder
	Orchestrator *generator.Orchestrator

	// Batch size of the generation step.
	ArticlesPerRun int
	// Raw item retention in days, applied at the end of full runs.
	RetentionDays int
	// Ranking configuration, DefaultConfig unless overridden.
	Ranking ranker.Config
}

func NewPipeline(s *store.Store, builder *collector.CollectorBuilder, orchestrator *generator.Orchestrator, articlesPerRun, retentionDays int) *Pipeline {
	return &Pipeline{
		Store:          s,
		Builder:        builder,
		Orchestrator:   orchestrator,
		ArticlesPerRun: articlesPerRun,
		RetentionDays:  retentionDays,
		Ranking:        ranker.DefaultConfig(),
	}
}

// Run executes the full pipeline: every active source, then generation, then
// retention pruning. Per-source and per-candidate failures are absorbed into
// the summary; the returned error is reserved for run-level failures
// (storage unavailable, context cancelled).
func (p *Pipeline) Run(ctx context.Context) (*RunSummary, error) {
	return p.run(ctx, collector.DefaultRunnerConfig(), true)
}

// RunFast is the bounded-budget variant: allow-listed sources, tight
// timeouts, no pruning. The caller imposes the wall-clock budget through ctx.
func (p *Pipeline) RunFast(ctx context.Context) (*RunSummary, error) {
	return p.run(ctx, collector.FastRunnerConfig(), false)
}

// Ingest runs only the ingestion stage.
func (p *Pipeline) Ingest(ctx context.Context) (int, error) {
	runner := collector.NewRunner(p.Store, p.Builder, collector.DefaultRunnerConfig())
	return runner.IngestAll(ctx)
}

// Generate runs only the rank-select-generate stages over already ingested
// items.
func (p *Pipeline) Generate(ctx context.Context) (*RunSummary, error) {
	summary := &RunSummary{Articles: []model.Article{}}
	if err := p.generateInto(ctx, summary); err != nil {
		return summary, err
	}
	return summary, nil
}

func (p *Pipeline) run(ctx context.Context, runnerConfig collector.RunnerConfig, prune bool) (*RunSummary, error) {
	summary := &RunSummary{Articles: []model.Article{}}

	runner := collector.NewRunner(p.Store, p.Builder, runnerConfig)
	ingested, err := runner.IngestAll(ctx)
	summary.IngestedCount = ingested
	if err != nil {
		return summary, err
	}
	Logger.Log.Infof("ingest finished with %d new items", ingested)

	if err := p.generateInto(ctx, summary); err != nil {
		return summary, err
	}

	if prune {
		pruned, err := p.Store.ClearOldRawItems(p.RetentionDays)
		if err != nil {
			Logger.Log.Errorf("fail to prune raw items: %v", err)
		} else {
			summary.PrunedItems = pruned
		}
	}

	return summary, nil
}

// generateInto ranks the stored snapshot, selects a diversified batch and
// orchestrates generation, folding outcomes into the summary.
func (p *Pipeline) generateInto(ctx context.Context, summary *RunSummary) error {
	items, err := p.Store.GetRecentRawItems(rankingPoolSize)
	if err != nil {
		return err
	}

	ranked := ranker.RankItems(items, p.Ranking)
	selected := ranker.SelectTopCandidates(ranked, p.ArticlesPerRun)
	Logger.Log.Infof("ranked %d items, selected %d candidates", len(ranked), len(selected))

	results := p.Orchestrator.GenerateArticles(ctx, selected)
	for _, result := range results {
		switch result.State {
		case generator.StatePersisted:
			summary.ArticlesGenerated++
			summary.Articles = append(summary.Articles, *result.Article)
		case generator.StateRejected:
			summary.RejectedCount++
		case generator.StateGenerationFailed:
			summary.FailedCandidates++
		}
	}
	return ctx.Err()
}
