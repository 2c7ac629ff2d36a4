// Command catalog ingests a hotels JSON file into the vector store.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hotelgenx/concierge/internal/config"
	dbRedis "github.com/hotelgenx/concierge/internal/db/redis"
	logpkg "github.com/hotelgenx/concierge/internal/logger"
	"github.com/hotelgenx/concierge/internal/metrics"
	hotelsrepo "github.com/hotelgenx/concierge/internal/repository/hotels"
	openaiTransport "github.com/hotelgenx/concierge/internal/transport/openai"
	cataloguc "github.com/hotelgenx/concierge/internal/usecase/catalog"
)

func main() {
	var (
		file  = flag.String("file", "hotels.json", "path to the catalog JSON file")
		force = flag.Bool("force", false, "re-ingest even if the catalog is already populated")
	)
	flag.Parse()

	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}

	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	embedder := openaiTransport.NewEmbedder(&openaiTransport.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		User:       cfg.Embedding.User,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	repo := hotelsrepo.New(store, logger).WithHNSW(hotelsrepo.HNSWConfig{
		M:           cfg.Search.HNSWM,
		EFConstruct: cfg.Search.HNSWEFConstruct,
	})
	svc := cataloguc.New(repo, embedder, logger)

	written, err := svc.IngestFile(ctx, *file, *force)
	if err != nil {
		logger.Fatal("Catalog ingestion failed", zap.Error(err))
	}

	logger.Info("Catalog ingestion finished",
		zap.String("file", *file),
		zap.Int("written", written),
	)
}
