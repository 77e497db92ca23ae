package reviewer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SerhiiAndruschenko/aidevpulse/model"
)

func TestAnalyzeContent(t *testing.T) {
	t.Run("cliche phrases warn", func(t *testing.T) {
		checks := AnalyzeContent("<p>As we all know, React is popular.</p>")
		require.NotEmpty(t, checks)
		found := false
		for _, check := range checks {
			if check.Status == StatusWarning && strings.Contains(check.Message, "as we all know") {
				found = true
			}
		}
		require.True(t, found)
	})

	t.Run("short content warns", func(t *testing.T) {
		checks := AnalyzeContent("<p>tiny</p>")
		ids := checkIds(checks)
		require.Contains(t, ids, "content_length_short")
	})

	t.Run("well structured content passes", func(t *testing.T) {
		body := "<h2>What changed</h2><h2>Why it matters</h2><pre><code>npm i</code></pre><p>" +
			strings.Repeat("useful words about the release ", 50) + "</p>"
		checks := AnalyzeContent(body)
		require.Empty(t, checks)
	})

	t.Run("missing code and headings warn", func(t *testing.T) {
		checks := AnalyzeContent("<p>" + strings.Repeat("word ", 300) + "</p>")
		ids := checkIds(checks)
		require.Contains(t, ids, "content_no_code")
		require.Contains(t, ids, "content_headings")
	})
}

func TestAnalyzeSeo(t *testing.T) {
	t.Run("good metadata passes", func(t *testing.T) {
		article := &model.Article{
			Title:   "React 19 ships its compiler by default now",
			Dek:     strings.Repeat("A thorough look at the new compiler. ", 4)[:130],
			HeroUrl: "https://cdn.example.org/hero.png",
		}
		require.Empty(t, AnalyzeSeo(article))
	})

	t.Run("short title and missing hero warn", func(t *testing.T) {
		checks := AnalyzeSeo(&model.Article{Title: "Short"})
		ids := checkIds(checks)
		require.Contains(t, ids, "seo_title_short")
		require.Contains(t, ids, "seo_no_hero_image")
	})

	t.Run("empty dek is not judged", func(t *testing.T) {
		checks := AnalyzeSeo(&model.Article{Title: "Short"})
		ids := checkIds(checks)
		require.NotContains(t, ids, "seo_description_short")
	})
}

func TestScoreChecks(t *testing.T) {
	require.Equal(t, 100, ScoreChecks(nil))

	require.Equal(t, 100, ScoreChecks([]QualityCheck{
		{Status: StatusPassed}, {Status: StatusPassed},
	}))

	// One pass, one warning: (1*100 + 1*50) / 2.
	require.Equal(t, 75, ScoreChecks([]QualityCheck{
		{Status: StatusPassed}, {Status: StatusWarning},
	}))

	require.Equal(t, 0, ScoreChecks([]QualityCheck{
		{Status: StatusFailed}, {Status: StatusFailed},
	}))

	// One of each: (100 + 50 + 0) / 3 rounds to 50.
	require.Equal(t, 50, ScoreChecks([]QualityCheck{
		{Status: StatusPassed}, {Status: StatusWarning}, {Status: StatusFailed},
	}))
}

func TestValidateLinks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodHead, r.Method)
		if strings.HasPrefix(r.URL.Path, "/gone") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := NewReviewer(nil)
	checks := r.ValidateLinks(context.Background(), []string{srv.URL + "/ok", srv.URL + "/gone"})

	require.Len(t, checks, 2)
	require.Equal(t, StatusPassed, checks[0].Status)
	require.Equal(t, StatusFailed, checks[1].Status)
	require.Contains(t, checks[1].Message, "404")
}

func checkIds(checks []QualityCheck) []string {
	ids := make([]string, 0, len(checks))
	for _, check := range checks {
		ids = append(ids, check.Id)
	}
	return ids
}
