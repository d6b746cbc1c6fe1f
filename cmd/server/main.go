package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"getgsa/internal/analyzer"
	_ "getgsa/internal/analyzer/claude"
	_ "getgsa/internal/analyzer/openai"
	"getgsa/internal/config"
	"getgsa/internal/email/noop"
	"getgsa/internal/email/ses"
	"getgsa/internal/handler"
	"getgsa/internal/port"
	"getgsa/internal/repository/postgres"
	"getgsa/internal/router"
	"getgsa/internal/service"
	s3storage "getgsa/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	reqRepo := postgres.NewRequestRepo(db)
	docRepo := postgres.NewDocumentRepo(db)
	sinRepo := postgres.NewSINRepo(db)

	// Initialize storage (optional, only needed for original-corpus archival)
	var storage port.ObjectStorage
	if cfg.S3.ArchiveOriginals {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	// Initialize the generative provider when a real API key is configured;
	// otherwise every request takes the deterministic path.
	var provider port.AnalysisProvider
	if cfg.Analyzer.GenerativeEnabled() {
		provider, err = analyzer.NewProvider(&cfg.Analyzer)
		if err != nil {
			return fmt.Errorf("failed to initialize analysis provider: %w", err)
		}
		log.Printf("analysis provider %q initialized (model %s)", provider.Name(), provider.Model())
	} else {
		log.Printf("no generative provider configured, analysis runs deterministic only")
	}

	// Initialize email sender
	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender()
	}

	// Initialize services
	ingestSvc := service.NewIngestService(reqRepo, docRepo, storage, cfg.Limits, cfg.S3)
	analysisSvc := service.NewAnalysisService(reqRepo, docRepo, analyzer.New(provider), sender)
	sinSvc := service.NewSINService(sinRepo)

	// Initialize handlers
	ingestH := handler.NewIngestHandler(ingestSvc)
	analyzeH := handler.NewAnalyzeHandler(analysisSvc)
	sinH := handler.NewSINHandler(sinSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, ingestH, analyzeH, sinH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Retention.Enabled {
		worker := service.NewRetentionWorker(reqRepo, docRepo, storage, cfg.Retention, cfg.S3)
		go worker.Run(ctx)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
