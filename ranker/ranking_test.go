package ranker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

func pinnedTime() time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
}

func longPayload() []byte {
	b := make([]byte, 200)
	for i := range b {
		b[i] = 'x'
	}
	return b
}

func TestScoreIsDeterministicAndBounded(t *testing.T) {
	config := DefaultConfig()
	config.Now = pinnedTime()

	published := pinnedTime().Add(-2 * time.Hour)
	item := &model.RawItem{
		Title:       "React 19.0.0 release with breaking changes and security fixes",
		Url:         "https://github.com/facebook/react/releases/tag/v19.0.0",
		Payload:     longPayload(),
		PublishedAt: &published,
	}

	first, reasons := Score(item, config)
	second, _ := Score(item, config)
	require.Equal(t, first, second)
	require.NotEmpty(t, reasons)

	// Every additive signal fires here, so the score must clamp at 1.
	require.Equal(t, 1.0, first)
}

func TestScoreIndividualSignals(t *testing.T) {
	config := Config{MinScore: 0, MaxItems: 10, Now: pinnedTime()}

	t.Run("release announcement", func(t *testing.T) {
		score, reasons := Score(&model.RawItem{Title: "x release", Payload: longPayload()}, config)
		require.InDelta(t, 0.3, score, 1e-9)
		require.Contains(t, reasons, "Release/version announcement")
	})

	t.Run("breaking changes", func(t *testing.T) {
		score, _ := Score(&model.RawItem{Title: "x breaking", Payload: longPayload()}, config)
		require.InDelta(t, 0.4, score, 1e-9)
	})

	t.Run("major version", func(t *testing.T) {
		score, reasons := Score(&model.RawItem{Title: "x v2.0.0", Payload: longPayload()}, config)
		require.InDelta(t, 0.5, score, 1e-9)
		require.Contains(t, reasons, "Major version release")
	})

	t.Run("security update", func(t *testing.T) {
		score, _ := Score(&model.RawItem{Title: "x security", Payload: longPayload()}, config)
		require.InDelta(t, 0.4, score, 1e-9)
	})

	t.Run("short payload penalty clamps at zero", func(t *testing.T) {
		score, reasons := Score(&model.RawItem{Title: "abc", Payload: []byte("{}")}, config)
		require.Equal(t, 0.0, score)
		require.Contains(t, reasons, "Short content (penalty)")
	})

	t.Run("priority source", func(t *testing.T) {
		boosted := config
		boosted.PrioritySources = []string{"source-1"}
		score, _ := Score(&model.RawItem{SourceID: "source-1", Title: "abc", Payload: longPayload()}, boosted)
		require.InDelta(t, 0.3, score, 1e-9)
	})

	t.Run("keyword matches accumulate", func(t *testing.T) {
		keyed := config
		keyed.RelevantKeywords = []string{"react", "typescript"}
		score, _ := Score(&model.RawItem{Title: "react typescript tip", Payload: longPayload()}, keyed)
		// Two keywords plus the title-length bonus.
		require.InDelta(t, 0.5, score, 1e-9)
	})
}

func TestScoreRecencyTiers(t *testing.T) {
	config := Config{Now: pinnedTime()}

	tiers := []struct {
		age   time.Duration
		bonus float64
	}{
		{2 * time.Hour, 0.3},
		{3 * 24 * time.Hour, 0.2},
		{20 * 24 * time.Hour, 0.1},
		{60 * 24 * time.Hour, 0.0},
	}
	for _, tier := range tiers {
		published := pinnedTime().Add(-tier.age)
		score, _ := Score(&model.RawItem{Title: "abc", Payload: longPayload(), PublishedAt: &published}, config)
		require.InDelta(t, tier.bonus, score, 1e-9, "age %v", tier.age)
	}
}

func TestScoreBreakingSignalIsMonotonic(t *testing.T) {
	config := Config{Now: pinnedTime()}

	plain, _ := Score(&model.RawItem{Title: "x release", Payload: longPayload()}, config)
	withBreaking, _ := Score(&model.RawItem{Title: "x release breaking", Payload: longPayload()}, config)
	require.Greater(t, withBreaking, plain)
}

func TestMajorBreakingReleaseOutranksGenericKeywordMatch(t *testing.T) {
	config := Config{RelevantKeywords: []string{"react"}, Now: pinnedTime()}

	loud, _ := Score(&model.RawItem{Title: "react v2.0.0 breaking change", Payload: longPayload()}, config)
	quiet, _ := Score(&model.RawItem{Title: "react note", Payload: longPayload()}, config)

	// Keyword + major version + breaking stacks well past the clamp, far
	// ahead of a single keyword match.
	require.Equal(t, 1.0, loud)
	require.InDelta(t, 0.2, quiet, 1e-9)
}

func TestRankItemsFiltersSortsAndTruncates(t *testing.T) {
	config := Config{MinScore: 0.3, MaxItems: 2, Now: pinnedTime()}

	items := []model.RawItem{
		{Title: "nothing interesting here", Payload: longPayload()},
		{Title: "major release v3.0.0 breaking migration", Payload: longPayload()},
		{Title: "small release announced", Payload: longPayload()},
		{Title: "critical security vulnerability patched", Payload: longPayload()},
	}

	ranked := RankItems(items, config)
	require.Len(t, ranked, 2)
	require.Equal(t, "major release v3.0.0 breaking migration", ranked[0].Title)
	require.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
	for _, item := range ranked {
		require.GreaterOrEqual(t, item.Score, config.MinScore)
	}
}

func TestRankItemsStableOnTies(t *testing.T) {
	config := Config{MinScore: 0, MaxItems: 10, Now: pinnedTime()}

	items := []model.RawItem{
		{Title: "first identical signal", Payload: longPayload()},
		{Title: "other identical signal", Payload: longPayload()},
	}
	ranked := RankItems(items, config)
	require.Len(t, ranked, 2)
	require.Equal(t, "first identical signal", ranked[0].Title)
	require.Equal(t, "other identical signal", ranked[1].Title)
}
