package config

import (
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Config holds the runtime configuration shared by all entrypoints. DB
// connection parts are read directly by utils/database_utils and are not
// duplicated here.
type Config struct {
	// Gemini generation capability.
	GeminiApiKey string `validate:"required"`
	GeminiModel  string `validate:"required"`

	// Shared secret for the cron trigger surface. Empty rejects all trigger
	// requests.
	CronSecret string

	// Public base url used for absolute links in rss.xml and sitemap.xml.
	SiteUrl string `validate:"required,url"`

	// Optional token raising the GitHub API rate limit.
	GithubToken string

	// Optional image generation endpoint. Empty disables hero images.
	ImageApiUrl string
	ImageApiKey string

	// Batch size of the generation step.
	ArticlesPerRun int `validate:"min=1,max=10"`

	// Raw item retention in days.
	RetentionDays int `validate:"min=1,max=365"`
}

// Load reads configuration from the environment and validates it. Dotenv
// files must be loaded by the caller beforehand.
func Load() (*Config, error) {
	cfg := &Config{
		GeminiApiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		CronSecret:     os.Getenv("CRON_SECRET"),
		SiteUrl:        getEnv("SITE_URL", "http://localhost:8080"),
		GithubToken:    os.Getenv("GITHUB_TOKEN"),
		ImageApiUrl:    os.Getenv("IMAGE_API_URL"),
		ImageApiKey:    os.Getenv("IMAGE_API_KEY"),
		ArticlesPerRun: getEnvAsInt("ARTICLES_PER_RUN", 3),
		RetentionDays:  getEnvAsInt("RETENTION_DAYS", 7),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
