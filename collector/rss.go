package collector

import (
	"context"
	"time"

	"github.com/araddon/dateparse"
	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
	Logger "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

// Entries processed per fetch, bounding cost on high-volume feeds.
const rssEntryCap = 10

type RssCollector struct {
	parser *gofeed.Parser
}

func NewRssCollector() *RssCollector {
	return &RssCollector{parser: gofeed.NewParser()}
}

// Collect parses the feed at source.Url and normalizes up to rssEntryCap
// entries. Entries missing a link or title are skipped, they cannot be
// fingerprinted or cited.
func (c *RssCollector) Collect(ctx context.Context, source *model.Source) ([]model.RawItem, error) {
	feed, err := c.parser.ParseURLWithContext(source.Url, ctx)
	if err != nil {
		return nil, &SourceFetchError{SourceName: source.Name, Err: errors.Wrap(err, "fail to parse rss feed")}
	}

	items := []model.RawItem{}
	for i, entry := range feed.Items {
		if i >= rssEntryCap {
			break
		}
		if entry.Link == "" || entry.Title == "" {
			Logger.Log.Debugf("skip rss entry without link or title in %s", source.Name)
			continue
		}

		externalId := entry.GUID
		if externalId == "" {
			externalId = entry.Link
		}

		payload := RssPayload{
			Description: firstNonEmpty(entry.Description, entry.Content),
			Categories:  entry.Categories,
		}
		if entry.Author != nil {
			payload.Creator = entry.Author.Name
		}
		publishedAt := entry.PublishedParsed
		if publishedAt == nil && entry.Published != "" {
			if t, err := dateparse.ParseAny(entry.Published); err == nil {
				publishedAt = &t
			}
		}
		if publishedAt != nil {
			payload.IsoDate = publishedAt.UTC().Format(time.RFC3339)
		}

		items = append(items, model.RawItem{
			SourceID:    source.Id,
			ExternalId:  externalId,
			Title:       entry.Title,
			Url:         entry.Link,
			PublishedAt: publishedAt,
			Payload:     MarshalPayload(payload),
			UniqHash:    Fingerprint(source.Url, entry.Link, entry.Title),
		})
	}

	return items, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
