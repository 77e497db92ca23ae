package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SerhiiAndruschenko/aidevpulse/collector"
	"github.com/SerhiiAndruschenko/aidevpulse/config"
	"github.com/SerhiiAndruschenko/aidevpulse/generator"
	"github.com/SerhiiAndruschenko/aidevpulse/pipeline"
	"github.com/SerhiiAndruschenko/aidevpulse/reviewer"
	"github.com/SerhiiAndruschenko/aidevpulse/server"
	"github.com/SerhiiAndruschenko/aidevpulse/store"
	"github.com/SerhiiAndruschenko/aidevpulse/utils"
	"github.com/SerhiiAndruschenko/aidevpulse/utils/dotenv"
	appflag "github.com/SerhiiAndruschenko/aidevpulse/utils/flag"
	. "github.com/SerhiiAndruschenko/aidevpulse/utils/log"
)

func main() {
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

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()
	router.Use(cors.Default())

	handler := server.NewHandler(contentStore, contentPipeline, reviewer.NewReviewer(contentStore), cfg.SiteUrl)
	handler.RegisterRoutes(router, cfg.CronSecret)

	Log.Info("api server starts up")
	router.Run(":8080")
}
