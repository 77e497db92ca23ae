package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
	"github.com/SerhiiAndruschenko/aidevpulse/utils"
	"github.com/SerhiiAndruschenko/aidevpulse/utils/dotenv"
)

func init() {
	dotenv.LoadDotEnvsInTests()
}

func tempStore(t *testing.T) *Store {
	t.Helper()
	if !utils.HasTestDBEnv() {
		t.Skip("no test database configured")
	}
	db, _ := utils.CreateTempDB(t)
	return NewStore(db)
}

func TestInsertRawItemDedup(t *testing.T) {
	s := tempStore(t)

	item := model.RawItem{
		Title:    "React 19 released",
		Url:      "https://react.dev/blog/react-19",
		Payload:  []byte("{}"),
		UniqHash: "hash-1",
	}
	ok, err := s.InsertRawItem(&item)
	require.NoError(t, err)
	require.True(t, ok)

	// Same fingerprint, different row: ON CONFLICT DO NOTHING.
	dup := model.RawItem{Title: "React 19 released again", Payload: []byte("{}"), UniqHash: "hash-1"}
	ok, err = s.InsertRawItem(&dup)
	require.NoError(t, err)
	require.False(t, ok)

	count, err := s.CountRawItems()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	exists, err := s.HasRawItemWithHash("hash-1")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = s.HasRawItemWithHash("hash-2")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestGetRecentRawItemsLoadsSource(t *testing.T) {
	s := tempStore(t)

	source := model.Source{Name: "React Blog", Kind: model.SourceKindRss, Url: "https://react.dev/rss.xml", Active: true}
	require.NoError(t, s.UpsertSource(&source))

	published := time.Now().Add(-time.Hour)
	_, err := s.InsertRawItem(&model.RawItem{
		SourceID:    source.Id,
		Title:       "React 19 released",
		Payload:     []byte("{}"),
		UniqHash:    "hash-1",
		PublishedAt: &published,
	})
	require.NoError(t, err)

	items, err := s.GetRecentRawItems(10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, model.SourceKindRss, items[0].Source.Kind)
}

func TestClearOldRawItems(t *testing.T) {
	s := tempStore(t)

	old := model.RawItem{Title: "old", Payload: []byte("{}"), UniqHash: "hash-old"}
	old.CreatedAt = time.Now().AddDate(0, 0, -30)
	_, err := s.InsertRawItem(&old)
	require.NoError(t, err)

	fresh := model.RawItem{Title: "fresh", Payload: []byte("{}"), UniqHash: "hash-fresh"}
	_, err = s.InsertRawItem(&fresh)
	require.NoError(t, err)

	pruned, err := s.ClearOldRawItems(7)
	require.NoError(t, err)
	require.EqualValues(t, 1, pruned)

	count, err := s.CountRawItems()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	_, err = s.ClearOldRawItems(1000)
	require.Error(t, err)
}

func TestUpsertSourceByName(t *testing.T) {
	s := tempStore(t)

	source := model.Source{Name: "React Blog", Kind: model.SourceKindRss, Url: "https://old.example.org", Active: true}
	require.NoError(t, s.UpsertSource(&source))

	// Same name upserts in place.
	updated := model.Source{Name: "React Blog", Kind: model.SourceKindRss, Url: "https://react.dev/rss.xml", Active: true}
	require.NoError(t, s.UpsertSource(&updated))

	inactive := model.Source{Name: "Dormant Feed", Kind: model.SourceKindRss, Url: "https://dormant.example.org", Active: false}
	require.NoError(t, s.UpsertSource(&inactive))

	sources, err := s.GetActiveSources()
	require.NoError(t, err)
	require.Len(t, sources, 1)
	require.Equal(t, "https://react.dev/rss.xml", sources[0].Url)
}

func TestInsertArticleBundle(t *testing.T) {
	s := tempStore(t)

	article := &model.Article{
		Slug:         "react-19-released",
		Title:        "React 19 released",
		Dek:          "The compiler ships by default.",
		BodyHtml:     "<p>body</p>",
		WordCount:    120,
		Lang:         "en",
		AuthorType:   model.AuthorTypeAi,
		ReviewStatus: model.ReviewStatusAuto,
		PublishedAt:  time.Now(),
	}
	citations := []model.Citation{
		{Url: "https://react.dev/blog/react-19", Title: "React 19"},
		{Url: "https://github.com/facebook/react/releases"},
	}
	require.NoError(t, s.InsertArticleBundle(article, citations, []string{"react", "release"}))

	loaded, err := s.GetArticleWithRelations("react-19-released")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Citations, 2)
	require.Len(t, loaded.Tags, 2)

	// A second bundle reuses the existing tag rows.
	second := &model.Article{
		Slug:         "react-compiler-deep-dive",
		Title:        "React compiler deep dive",
		BodyHtml:     "<p>body</p>",
		AuthorType:   model.AuthorTypeAi,
		ReviewStatus: model.ReviewStatusAuto,
		PublishedAt:  time.Now(),
	}
	require.NoError(t, s.InsertArticleBundle(second, nil, []string{"react"}))

	tags, err := s.ListTags()
	require.NoError(t, err)
	require.Len(t, tags, 2)

	byTag, err := s.ListArticlesByTag("react", 10, 0)
	require.NoError(t, err)
	require.Len(t, byTag, 2)
}

func TestInsertArticleBundleRollsBackOnSlugCollision(t *testing.T) {
	s := tempStore(t)

	first := &model.Article{
		Slug: "react-19-released", Title: "React 19 released", BodyHtml: "<p>x</p>",
		AuthorType: model.AuthorTypeAi, ReviewStatus: model.ReviewStatusAuto, PublishedAt: time.Now(),
	}
	require.NoError(t, s.InsertArticleBundle(first, nil, nil))

	colliding := &model.Article{
		Slug: "react-19-released", Title: "React 19 released duplicate", BodyHtml: "<p>y</p>",
		AuthorType: model.AuthorTypeAi, ReviewStatus: model.ReviewStatusAuto, PublishedAt: time.Now(),
	}
	err := s.InsertArticleBundle(colliding, []model.Citation{{Url: "https://react.dev"}}, []string{"orphaned"})
	require.Error(t, err)

	// The failed bundle left nothing behind.
	count, err := s.CountArticles()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)

	tags, err := s.ListTags()
	require.NoError(t, err)
	require.Empty(t, tags)
}

func TestReviewStatusLifecycle(t *testing.T) {
	s := tempStore(t)

	article := &model.Article{
		Slug: "needs-review", Title: "Pending article", BodyHtml: "<p>x</p>",
		AuthorType: model.AuthorTypeAi, ReviewStatus: model.ReviewStatusNeedsReview, PublishedAt: time.Now(),
	}
	require.NoError(t, s.InsertArticleBundle(article, nil, nil))

	pending, err := s.ListArticlesNeedingReview(10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, s.UpdateReviewStatus(article.Id, model.ReviewStatusReviewed))

	pending, err = s.ListArticlesNeedingReview(10)
	require.NoError(t, err)
	require.Empty(t, pending)

	loaded, err := s.GetArticleBySlug("needs-review")
	require.NoError(t, err)
	require.Equal(t, model.ReviewStatusReviewed, loaded.ReviewStatus)
}

func TestGetArticleBySlugMissing(t *testing.T) {
	s := tempStore(t)

	article, err := s.GetArticleBySlug("nope")
	require.NoError(t, err)
	require.Nil(t, article)
}
