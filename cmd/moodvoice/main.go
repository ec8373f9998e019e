// Command moodvoice runs the voice-to-mood analysis service.
package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/moodvoice/audio"
	"github.com/skillsenselab/moodvoice/config"
	"github.com/skillsenselab/moodvoice/database"
	"github.com/skillsenselab/moodvoice/emotion"
	"github.com/skillsenselab/moodvoice/logger"
	"github.com/skillsenselab/moodvoice/mood"
	"github.com/skillsenselab/moodvoice/observability"
	"github.com/skillsenselab/moodvoice/process"
	"github.com/skillsenselab/moodvoice/server"
	"github.com/skillsenselab/moodvoice/transcription"
	"github.com/skillsenselab/moodvoice/voice"
)

const shutdownTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.NewDefault("moodvoice").WithError(err).Fatal("configuration load failed")
	}

	log := logger.New(cfg.Logging, cfg.Service.Name)
	log.Info("starting service", map[string]interface{}{
		"environment": cfg.Service.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.WithError(err).Fatal("service failed")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	shutdownTracer, err := observability.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			log.WithError(err).Warn("tracer shutdown failed")
		}
	}()

	db, err := database.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("database close failed")
		}
	}()
	if err := db.AutoMigrate(&mood.Entry{}); err != nil {
		return err
	}

	runner := process.ExecRunner{}
	normalizer := audio.NewNormalizer(cfg.Audio, runner, log)

	// Strategy and device resolution happen once here, not per request.
	engine, err := transcription.NewEngine(ctx, cfg.Transcription, runner, log)
	if err != nil {
		return err
	}

	classifier, err := emotion.NewClassifier(cfg.Emotion, log)
	if err != nil {
		return err
	}

	upserter := mood.NewUpserter(mood.NewGormStore(db), log)
	svc := voice.NewService(normalizer, engine, classifier, upserter, log)

	srv := server.New(cfg.Server, log)
	server.RegisterRoutes(srv, svc, db)

	if err := srv.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
