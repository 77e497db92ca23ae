package ranker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

func TestTopicKeywords(t *testing.T) {
	item := &RankedItem{RawItem: model.RawItem{
		Title:   "React 18.3.1 security release",
		Payload: []byte("{}"),
	}}

	keywords := TopicKeywords(item)
	require.Contains(t, keywords, "react")
	require.Contains(t, keywords, "18.3.1")
	require.Contains(t, keywords, "release")
	require.Contains(t, keywords, "security")
}

func TestTopicKeywordsEmptyWhenNoSignals(t *testing.T) {
	item := &RankedItem{RawItem: model.RawItem{Title: "misc links", Payload: []byte("{}")}}
	require.Empty(t, TopicKeywords(item))
}

func TestSignificantWords(t *testing.T) {
	words := SignificantWords("The React-Router team ships a fix for the v6 bug")

	require.True(t, words["react"])
	require.True(t, words["router"])
	require.True(t, words["ships"])
	// Stopwords and short tokens are dropped.
	require.False(t, words["the"])
	require.False(t, words["for"])
	require.False(t, words["bug"])
	require.False(t, words["v6"])
}

func TestAreSimilarTitles(t *testing.T) {
	t.Run("two shared significant words is similar", func(t *testing.T) {
		require.True(t, AreSimilarTitles(
			"React Router released with improvements",
			"react router gains improvements today",
		))
	})

	t.Run("one shared word is not similar", func(t *testing.T) {
		require.False(t, AreSimilarTitles(
			"React documentation refreshed",
			"Angular tooling refreshed",
		))
	})

	t.Run("slugs compare like titles", func(t *testing.T) {
		require.True(t, AreSimilarTitles(
			"typescript-5-4-released-today",
			"typescript 5.4 released with narrowing",
		))
	})
}
