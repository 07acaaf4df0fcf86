package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Tiagolw/Automa-o-contrato-social/constants"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/common"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/extract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/llm"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/llm/mistral"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/llm/openai"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/pdfproc"
)

// runextract reads one document and prints the extracted fields as JSON.
// Usage: runextract <identity|address-proof|company> <file>
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 3 {
		logger.Error("usage", "cmd", "runextract <identity|address-proof|company> <file>")
		os.Exit(2)
	}
	role := constants.DocumentRole(os.Args[1])
	switch role {
	case constants.RoleIdentity, constants.RoleAddressProof, constants.RoleCompany:
	default:
		logger.Error("invalid role", "arg", os.Args[1])
		os.Exit(2)
	}
	path := os.Args[2]
	if _, err := os.Stat(path); err != nil {
		logger.Error("file not readable", "path", path, "error", err)
		os.Exit(2)
	}

	cfg := common.LoadConfig()

	var attempts []llm.TextFieldExtractor
	var vision llm.VisionExtractor
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

	var text llm.TextFieldExtractor
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

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	start := time.Now()
	res, err := router.ExtractDocument(ctx, extract.UploadedDocument{
		Path: path,
		Ext:  constants.NormalizeExt(filepath.Ext(path)),
		Role: role,
	})
	dur := time.Since(start)

	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err, "duration_ms", dur.Milliseconds())
		os.Exit(1)
	}

	logger.Info("extraction OK",
		"path", path,
		"role", role,
		"fields", len(res),
		"duration_ms", dur.Milliseconds(),
	)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
}
