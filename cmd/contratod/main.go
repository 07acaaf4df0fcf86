package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/common"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/contracts"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/export"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/extract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/llm"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/llm/mistral"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/llm/openai"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/pdfproc"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/pipeline"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/render"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/repository"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo := openStore(ctx, cfg, logger)
	if repo != nil {
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Error("close store", "error", err)
			}
		}()
	}

	var text llm.TextFieldExtractor
	var vision llm.VisionExtractor

	var attempts []llm.TextFieldExtractor
	if cfg.LLM.MistralAPIKey != "" {
		attempts = append(attempts, mistral.NewClient(mistral.Config{
			APIKey:  cfg.LLM.MistralAPIKey,
			BaseURL: cfg.LLM.MistralBaseURL,
			Model:   cfg.LLM.MistralModel,
			Timeout: cfg.LLM.MistralTimeout,
		}, logger))
	}
	if cfg.LLM.OpenAIAPIKey != "" {
		oc := openai.NewClient(openai.Config{
			APIKey:  cfg.LLM.OpenAIAPIKey,
			BaseURL: cfg.LLM.OpenAIBaseURL,
			Model:   cfg.LLM.OpenAIModel,
			Timeout: cfg.LLM.OpenAITimeout,
		}, logger)
		attempts = append(attempts, oc)
		vision = oc
	}
	if chain := llm.NewTextChain(logger, attempts...); chain.Configured() {
		text = chain
	}

	tools := pdfproc.NewTools(pdfproc.Config{
		Pdftotext: cfg.Extract.Pdftotext,
		Pdftoppm:  cfg.Extract.Pdftoppm,
		Mutool:    cfg.Extract.Mutool,
		DPI:       cfg.Extract.DPI,
	})

	router := extract.NewRouter(text, vision, tools, logger)
	processor := pipeline.New(router, logger)
	renderer := render.NewRenderer(cfg.Server.TemplatePath, logger)

	svc := contracts.NewService(processor, repo, renderer, contracts.Options{
		TextConfigured:   text != nil,
		VisionConfigured: vision != nil,
	}, logger)

	var exporter server.Exporter
	if repo != nil {
		exporter = export.NewService(repo, logger)
	}

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: server.New(svc, exporter, cfg.Server, logger).Handler(),
	}

	go func() {
		logger.Info("http serving", "addr", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http serve", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "error", err)
	}
	logger.Info("stopped")
}

// openStore prefers Postgres, falls back to SQLite, and returns nil when
// neither is available. The service runs stateless in that case.
func openStore(ctx context.Context, cfg *common.Config, logger *slog.Logger) repository.ContractRepository {
	if cfg.Database.DSN != "" {
		repo, err := repository.OpenPostgres(ctx, repository.Config{
			DSN:              cfg.Database.DSN,
			MaxConns:         cfg.Database.MaxConns,
			MinConns:         cfg.Database.MinConns,
			MaxConnLifetime:  cfg.Database.MaxConnLifetime,
			MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
			DialTimeout:      cfg.Database.DialTimeout,
			StatementTimeout: cfg.Database.StatementTimeout,
		}, logger)
		if err == nil {
			return repo
		}
		logger.Warn("postgres unavailable, trying sqlite", "error", err)
	}
	if cfg.Database.SQLitePath != "" {
		repo, err := repository.OpenSQLite(ctx, cfg.Database.SQLitePath, logger)
		if err == nil {
			return repo
		}
		logger.Warn("sqlite unavailable, running without a store", "error", err)
	}
	return nil
}
