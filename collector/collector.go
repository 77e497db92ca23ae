// Package collector turns heterogeneous upstream formats (RSS XML, GitHub
// REST JSON, registry JSON, blog HTML) into uniform raw items carrying a
// stable content fingerprint. A collector never fails the whole batch for one
// malformed entry: it logs and returns whatever it could parse.
package collector

import (
	"context"
	"fmt"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

// SourceCollector is implemented once per source kind.
type SourceCollector interface {
	// Collect fetches the source and returns normalized raw item candidates.
	// The returned items are not yet dedup-checked or persisted.
	Collect(ctx context.Context, source *model.Source) ([]model.RawItem, error)
}

// SourceFetchError marks a network or parse failure for one source. It is
// recovered locally: the runner logs it, skips the source and continues.
type SourceFetchError struct {
	SourceName string
	Err        error
}

func (e *SourceFetchError) Error() string {
	return fmt.Sprintf("fail to fetch source %s: %v", e.SourceName, e.Err)
}

func (e *SourceFetchError) Unwrap() error {
	return e.Err
}

// NewCollectorForSource returns the collector handling the source's kind, or
// nil for an unknown kind.
func (b *CollectorBuilder) NewCollectorForSource(source *model.Source) SourceCollector {
	switch source.Kind {
	case model.SourceKindRss:
		return b.Rss
	case model.SourceKindGithub:
		return b.Github
	case model.SourceKindRegistry:
		return b.Registry
	case model.SourceKindBlog:
		return b.Blog
	default:
		return nil
	}
}

// CollectorBuilder holds one instance of each kind-specific collector so the
// runner can dispatch per source.
type CollectorBuilder struct {
	Rss      SourceCollector
	Github   SourceCollector
	Registry SourceCollector
	Blog     SourceCollector
}

// NewDefaultCollectorBuilder wires the production collectors. githubToken may
// be empty, which keeps the GitHub client anonymous.
func NewDefaultCollectorBuilder(githubToken string) *CollectorBuilder {
	return &CollectorBuilder{
		Rss:      NewRssCollector(),
		Github:   NewGithubReleaseCollector(githubToken),
		Registry: NewRegistryCollector(),
		Blog:     NewBlogCollector(),
	}
}
