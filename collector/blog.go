package collector

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
	"github.com/pkg/errors"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

// Links collected per blog index page.
const blogEntryCap = 10

// BlogCollector scrapes a blog index page for article links. It is the
// fallback for publishers without a feed; anything with RSS should be
// configured as an rss source instead.
type BlogCollector struct{}

func NewBlogCollector() *BlogCollector {
	return &BlogCollector{}
}

// Collect visits source.Url and extracts headline links from article and
// heading markup. Entries without a resolvable href or visible text are
// skipped.
func (c *BlogCollector) Collect(ctx context.Context, source *model.Source) ([]model.RawItem, error) {
	crawler := colly.NewCollector(colly.MaxDepth(1))
	if deadline, ok := ctx.Deadline(); ok {
		crawler.SetRequestTimeout(time.Until(deadline))
	} else {
		crawler.SetRequestTimeout(15 * time.Second)
	}

	items := []model.RawItem{}
	seen := map[string]bool{}

	crawler.OnHTML("article a[href], h1 a[href], h2 a[href], h3 a[href]", func(e *colly.HTMLElement) {
		if len(items) >= blogEntryCap {
			return
		}
		link := e.Request.AbsoluteURL(e.Attr("href"))
		title := strings.TrimSpace(e.Text)
		if link == "" || title == "" || seen[link] {
			return
		}
		seen[link] = true

		items = append(items, model.RawItem{
			SourceID:   source.Id,
			ExternalId: link,
			Title:      title,
			Url:        link,
			Payload:    MarshalPayload(BlogPayload{Description: teaserText(e.DOM, title)}),
			UniqHash:   Fingerprint(source.Url, link, title),
		})
	})

	if err := crawler.Visit(source.Url); err != nil {
		return nil, &SourceFetchError{SourceName: source.Name, Err: errors.Wrap(err, "fail to crawl blog page")}
	}
	crawler.Wait()

	return items, nil
}

// teaserText pulls the entry's teaser out of the surrounding block: the first
// paragraph next to the link if one exists, otherwise the block's own text
// with the headline stripped.
func teaserText(link *goquery.Selection, title string) string {
	parent := link.Parent()
	if p := parent.Find("p").First(); p.Length() > 0 {
		return strings.TrimSpace(p.Text())
	}
	text := strings.TrimSpace(parent.Text())
	return strings.TrimSpace(strings.TrimPrefix(text, title))
}
