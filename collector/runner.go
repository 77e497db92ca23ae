package collector

import (
	"context"
	"time"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
	"github.com/SerhiiAndruschenko/aidevpulse/utils"
	Logger "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

// ItemStore is the slice of the storage layer the runner needs: the source
// catalog and the dedup store.
type ItemStore interface {
	GetActiveSources() ([]model.Source, error)
	HasRawItemWithHash(hash string) (bool, error)
	InsertRawItem(item *model.RawItem) (bool, error)
}

// Historically reliable, low-latency sources visited by the fast ingest
// variant. Matched by source name.
var fastSourceNames = []string{
	"The Verge",
	"Ars Technica",
	"Engadget",
	"OpenAI Blog",
	"React GitHub",
	"Next.js GitHub",
	"Vue GitHub",
	"TypeScript GitHub",
}

// RunnerConfig bounds one ingestion run.
type RunnerConfig struct {
	// Per-source fetch timeout; a timed-out source counts as failed, never
	// fatal.
	SourceTimeout time.Duration
	// Pause between sources, to stay under upstream rate limits.
	InterSourceDelay time.Duration
	// When true only fastSourceNames are visited, and only rss/github kinds:
	// the other kinds are not on the allow-list and would waste the budget.
	FastOnly bool
}

// DefaultRunnerConfig is the full variant: every active source, modest delay.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		SourceTimeout:    15 * time.Second,
		InterSourceDelay: time.Second,
	}
}

// FastRunnerConfig trades coverage for bounded wall-clock time, for trigger
// paths with a hard external budget.
func FastRunnerConfig() RunnerConfig {
	return RunnerConfig{
		SourceTimeout:    5 * time.Second,
		InterSourceDelay: 200 * time.Millisecond,
		FastOnly:         true,
	}
}

// Runner iterates the source catalog sequentially, collects, dedup-checks by
// fingerprint and persists new items. Sources are never fetched in parallel.
type Runner struct {
	Store   ItemStore
	Builder *CollectorBuilder
	Config  RunnerConfig
}

func NewRunner(store ItemStore, builder *CollectorBuilder, config RunnerConfig) *Runner {
	return &Runner{Store: store, Builder: builder, Config: config}
}

// IngestAll runs one ingestion pass and returns the number of newly stored
// items. Per-source failures are logged and skipped; the only fatal errors
// are catalog unavailability and context cancellation.
func (r *Runner) IngestAll(ctx context.Context) (int, error) {
	sources, err := r.Store.GetActiveSources()
	if err != nil {
		return 0, err
	}

	inserted := 0
	for i := range sources {
		source := &sources[i]
		if r.Config.FastOnly {
			if !utils.ContainsString(fastSourceNames, source.Name) {
				continue
			}
			if source.Kind != model.SourceKindRss && source.Kind != model.SourceKindGithub {
				continue
			}
		}

		if err := ctx.Err(); err != nil {
			return inserted, err
		}

		count, err := r.ingestOneSource(ctx, source)
		if err != nil {
			Logger.Log.Errorf("fail to ingest source %s: %v", source.Name, err)
		} else {
			Logger.Log.Infof("ingested %d new items from %s", count, source.Name)
		}
		inserted += count

		if i < len(sources)-1 {
			select {
			case <-time.After(r.Config.InterSourceDelay):
			case <-ctx.Done():
				return inserted, ctx.Err()
			}
		}
	}

	return inserted, nil
}

// ingestOneSource collects one source within its timeout and inserts every
// unseen item in fetch order.
func (r *Runner) ingestOneSource(ctx context.Context, source *model.Source) (int, error) {
	c := r.Builder.NewCollectorForSource(source)
	if c == nil {
		Logger.Log.Warnf("unknown source kind %s for source %s", source.Kind, source.Name)
		return 0, nil
	}

	fetchCtx := ctx
	if r.Config.SourceTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, r.Config.SourceTimeout)
		defer cancel()
	}

	items, err := c.Collect(fetchCtx, source)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for i := range items {
		// Fingerprint gate first; the unique index backstops races with
		// overlapping runs.
		exists, err := r.Store.HasRawItemWithHash(items[i].UniqHash)
		if err != nil {
			Logger.Log.Errorf("fail to check fingerprint for %s: %v", items[i].Title, err)
			continue
		}
		if exists {
			continue
		}
		ok, err := r.Store.InsertRawItem(&items[i])
		if err != nil {
			Logger.Log.Errorf("fail to insert item %s: %v", items[i].Title, err)
			continue
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}
