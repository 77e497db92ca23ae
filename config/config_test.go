package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	require.Equal(t, 3, cfg.ArticlesPerRun)
	require.Equal(t, 7, cfg.RetentionDays)
	require.Equal(t, "http://localhost:8080", cfg.SiteUrl)
}

func TestLoadMissingApiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsOutOfRangeBatchSize(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("ARTICLES_PER_RUN", "50")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")
	t.Setenv("ARTICLES_PER_RUN", "5")
	t.Setenv("SITE_URL", "https://aidevpulse.example.org")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
	require.Equal(t, 5, cfg.ArticlesPerRun)
	require.Equal(t, "https://aidevpulse.example.org", cfg.SiteUrl)
}
