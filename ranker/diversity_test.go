package ranker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

func ranked(title string, score float64) RankedItem {
	return RankedItem{
		RawItem: model.RawItem{Title: title, Payload: []byte("{}")},
		Score:   score,
	}
}

func TestSelectTopCandidatesKeepsTopicsDistinct(t *testing.T) {
	// Two react items, one vue, one rust: the second react item must lose to
	// the lower-ranked distinct topics.
	items := []RankedItem{
		ranked("React 19 ships server components", 0.9),
		ranked("React compiler deep dive", 0.8),
		ranked("Vue 3.5 reactivity overhaul", 0.7),
		ranked("Rust toolchain speedups", 0.6),
	}

	selected := SelectTopCandidates(items, 3)
	require.Len(t, selected, 3)
	require.Equal(t, "React 19 ships server components", selected[0].Title)
	require.Equal(t, "Vue 3.5 reactivity overhaul", selected[1].Title)
	require.Equal(t, "Rust toolchain speedups", selected[2].Title)
}

func TestSelectTopCandidatesRelaxedFallback(t *testing.T) {
	// All items share the react topic: the strict pass finds one, the relaxed
	// pass must still fill the batch instead of returning a single item.
	items := []RankedItem{
		ranked("React 19 released", 0.9),
		ranked("React compiler explained", 0.8),
		ranked("React hooks retrospective", 0.7),
	}

	selected := SelectTopCandidates(items, 2)
	require.Len(t, selected, 2)
	require.Equal(t, "React 19 released", selected[0].Title)
	require.Equal(t, "React compiler explained", selected[1].Title)
}

func TestSelectTopCandidatesSkipsExactTitleDuplicates(t *testing.T) {
	items := []RankedItem{
		ranked("React 19 released", 0.9),
		ranked("react 19 released", 0.8),
		ranked("React 19 released", 0.7),
	}

	selected := SelectTopCandidates(items, 3)
	require.Len(t, selected, 1)
}

func TestSelectTopCandidatesEdgeCases(t *testing.T) {
	require.Empty(t, SelectTopCandidates(nil, 3))
	require.Empty(t, SelectTopCandidates([]RankedItem{ranked("abc", 0.5)}, 0))

	// Fewer items than requested returns everything.
	selected := SelectTopCandidates([]RankedItem{ranked("only item here", 0.5)}, 3)
	require.Len(t, selected, 1)
}
