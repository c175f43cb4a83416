// Command rater runs the sustainability rating service: the operational HTTP
// server, the brand-update event consumer and the periodic recalculation job.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenfolio/sustainability-rater/internal/analyzer"
	"github.com/greenfolio/sustainability-rater/internal/api/ops"
	"github.com/greenfolio/sustainability-rater/internal/cache"
	"github.com/greenfolio/sustainability-rater/internal/config"
	"github.com/greenfolio/sustainability-rater/internal/events"
	"github.com/greenfolio/sustainability-rater/internal/llm"
	"github.com/greenfolio/sustainability-rater/internal/ner"
	"github.com/greenfolio/sustainability-rater/internal/repository"
	"github.com/greenfolio/sustainability-rater/internal/scorer"
	"github.com/greenfolio/sustainability-rater/internal/service/orchestrator"
	"github.com/greenfolio/sustainability-rater/internal/service/scheduler"
	"github.com/greenfolio/sustainability-rater/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log.Info().Str("environment", cfg.Server.Environment).Msg("Starting sustainability rater")

	db, err := repository.NewDB(&cfg.Database.Postgres, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	redisClient, err := cache.NewRedisClient(&cfg.Database.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	brandRepo := repository.NewBrandRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// The language model is optional. Without it, commitment quality falls
	// back to the neutral default.
	var rater analyzer.QualityRater
	if llmClient, err := llm.NewClient(&cfg.LLM, log); err != nil {
		log.Warn().Err(err).Msg("Language model unavailable, commitment quality will use the neutral default")
	} else {
		rater = llmClient
	}

	nerClient, err := ner.NewClient(&cfg.NER, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create entity-recognition client")
	}

	commitmentAnalyzer := analyzer.New(rater, nerClient, log)

	rules := scorer.DefaultRuleSet()
	if cfg.Rating.RulesFile != "" {
		rules, err = scorer.LoadRuleSet(cfg.Rating.RulesFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.Rating.RulesFile).Msg("Failed to load scoring rules")
		}
	}
	componentScorer := scorer.New(rules, log)

	publisher := events.NewPublisher(redisClient, cfg.Events.CalculatedChannel, log)
	headlineCache := cache.NewRedisCache(redisClient)

	svc := orchestrator.NewService(brandRepo, ratingRepo, commitmentAnalyzer, componentScorer, publisher, headlineCache, &cfg.Rating, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := events.NewConsumer(redisClient, cfg.Events.BrandUpdatedChannel, svc, log)
	if err := consumer.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start event consumer")
	}

	sched := scheduler.NewService(&cfg.Scheduler, svc, log)
	if err := sched.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer sched.Stop()

	handler := ops.NewHandler(db, redisClient, &cfg.Metrics, log)
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.Router(cfg.Server.Environment),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Operational HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown failed")
	}

	consumer.Wait()
	log.Info().Msg("Sustainability rater stopped")
}
