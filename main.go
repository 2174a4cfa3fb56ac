package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"storyboard-pipeline/config"
	"storyboard-pipeline/pipeline"
	"storyboard-pipeline/upload"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load .env (local dev only — CI uses secrets)
	_ = godotenv.Load()

	log, err := newLogger()
	if err != nil {
		os.Stderr.WriteString("failed to init logger: " + err.Error() + "\n")
		return 1
	}
	defer log.Sync()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Errorf("Failed to load config: %v", err)
		return 1
	}

	runID := uuid.NewString()[:8]
	log.Infof("🎬 Storyboard pipeline — Run ID: %s", runID)

	// Ctrl+C stops the pipeline at the next stage boundary.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	orch := pipeline.New(cfg, log, pipeline.DefaultDeps(cfg, log))
	if err := orch.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			log.Warnf("⚠️ Pipeline interrupted")
			return 130
		}
		log.Errorf("❌ Pipeline failed: %v", err)
		return 1
	}

	if cfg.Upload.Enabled {
		log.Infof("--- ⬆️ Stage 4: YouTube upload ---")
		uploader := upload.New(cfg, log)
		videoID, videoURL, err := uploader.Run(ctx, orch.FinalVideoPath())
		if err != nil {
			log.Errorf("❌ Upload failed: %v", err)
			return 1
		}
		if err := uploader.LogUpload(videoID, videoURL, orch.FinalVideoPath()); err != nil {
			log.Warnf("⚠️ Could not save upload log: %v", err)
		}
	}
	return 0
}

// newLogger builds a development-style console logger without the
// caller/stacktrace noise.
func newLogger() (*zap.SugaredLogger, error) {
	zcfg := zap.NewDevelopmentConfig()
	zcfg.DisableCaller = true
	zcfg.DisableStacktrace = true
	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
