package main

import (
	"context"
	"flag"
	"time"

	"github.com/SerhiiAndruschenko/aidevpulse/collector"
	"github.com/SerhiiAndruschenko/aidevpulse/config"
	"github.com/SerhiiAndruschenko/aidevpulse/generator"
	"github.com/SerhiiAndruschenko/aidevpulse/pipeline"
	"github.com/SerhiiAndruschenko/aidevpulse/store"
	"github.com/SerhiiAndruschenko/aidevpulse/utils"
	"github.com/SerhiiAndruschenko/aidevpulse/utils/dotenv"
	appflag "github.com/SerhiiAndruschenko/aidevpulse/utils/flag"
	. "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

// One-shot pipeline run for local use and container cron jobs. The HTTP
// trigger surface in cmd/server covers hosted schedulers.

var (
	stage   = flag.String("stage", "full", "'full', 'fast', 'ingest' or 'generate'")
	timeout = flag.Duration("timeout", 10*time.Minute, "wall-clock budget of the run")
)

func main() {
	appflag.ServiceName = appflag.Pipeline
	appflag.Parse()
	InitLogger()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		Log.Fatalf("fail to load configuration: %v", err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatalf("fail to connect to database: %v", err)
	}
	utils.DatabaseSetupAndMigration(db)

	contentStore := store.NewStore(db)

	var images generator.ImageClient = generator.NoopImageClient{}
	if cfg.ImageApiUrl != "" {
		images = generator.NewRestImageClient(cfg.ImageApiUrl, cfg.ImageApiKey)
	}
	orchestrator := generator.NewOrchestrator(
		contentStore,
		generator.NewGeminiClient(cfg.GeminiApiKey, cfg.GeminiModel),
		images,
	)

	contentPipeline := pipeline.NewPipeline(
		contentStore,
		collector.NewDefaultCollectorBuilder(cfg.GithubToken),
		orchestrator,
		cfg.ArticlesPerRun,
		cfg.RetentionDays,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	switch *stage {
	case "ingest":
		ingested, err := contentPipeline.Ingest(ctx)
		if err != nil {
			Log.Fatalf("ingestion failed: %v", err)
		}
		Log.Infof("ingested %d new items", ingested)
	case "generate":
		summary, err := contentPipeline.Generate(ctx)
		if err != nil {
			Log.Fatalf("generation failed: %v", err)
		}
		Log.Infof("generated %d articles, %d rejected, %d failed",
			summary.ArticlesGenerated, summary.RejectedCount, summary.FailedCandidates)
	case "fast":
		summary, err := contentPipeline.RunFast(ctx)
		if err != nil {
			Log.Fatalf("fast run failed: %v", err)
		}
		Log.Infof("fast run: ingested %d, generated %d articles",
			summary.IngestedCount, summary.ArticlesGenerated)
	default:
		summary, err := contentPipeline.Run(ctx)
		if err != nil {
			Log.Fatalf("pipeline run failed: %v", err)
		}
		Log.Infof("full run: ingested %d, generated %d articles, pruned %d items",
			summary.IngestedCount, summary.ArticlesGenerated, summary.PrunedItems)
	}
}
