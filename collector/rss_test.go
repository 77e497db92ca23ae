package collector

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>React Blog</title>
    <link>https://react.dev/blog</link>
    <item>
      <title>React 19 released</title>
      <link>https://react.dev/blog/react-19</link>
      <guid>react-19</guid>
      <description>The compiler ships by default.</description>
      <pubDate>Thu, 02 May 2024 09:30:00 GMT</pubDate>
      <category>release</category>
    </item>
    <item>
      <title></title>
      <link>https://react.dev/blog/untitled</link>
    </item>
    <item>
      <title>Older post without guid</title>
      <link>https://react.dev/blog/older</link>
    </item>
  </channel>
</rss>`

func TestRssCollectorCollect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(testFeed))
	}))
	defer srv.Close()

	source := &model.Source{Id: "src-1", Name: "React Blog", Kind: model.SourceKindRss, Url: srv.URL}
	items, err := NewRssCollector().Collect(context.Background(), source)
	require.NoError(t, err)

	// The untitled entry is skipped.
	require.Len(t, items, 2)

	first := items[0]
	require.Equal(t, "src-1", first.SourceID)
	require.Equal(t, "react-19", first.ExternalId)
	require.Equal(t, "React 19 released", first.Title)
	require.Equal(t, "https://react.dev/blog/react-19", first.Url)
	require.NotNil(t, first.PublishedAt)
	require.Equal(t, Fingerprint(srv.URL, first.Url, first.Title), first.UniqHash)

	payload := RssPayload{}
	require.NoError(t, json.Unmarshal(first.Payload, &payload))
	require.Equal(t, "The compiler ships by default.", payload.Description)
	require.Equal(t, []string{"release"}, payload.Categories)

	// An entry without a guid falls back to the link.
	require.Equal(t, "https://react.dev/blog/older", items[1].ExternalId)
	require.Nil(t, items[1].PublishedAt)
}

func TestRssCollectorFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	source := &model.Source{Name: "Broken Feed", Kind: model.SourceKindRss, Url: srv.URL}
	_, err := NewRssCollector().Collect(context.Background(), source)

	fetchErr := &SourceFetchError{}
	require.ErrorAs(t, err, &fetchErr)
	require.Equal(t, "Broken Feed", fetchErr.SourceName)
}
