// Package server exposes the contract pipeline over HTTP: multipart upload
// and processing, dashboard listing, document generation and XLSX export.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/common"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/contracts"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/pipeline"
)

// ContractService is the part of the contracts service the handlers need.
type ContractService interface {
	ProcessUploads(ctx context.Context, in pipeline.Input) (*contract.ContractRecord, error)
	GenerateByID(ctx context.Context, id string) ([]byte, *contract.ContractRecord, error)
	Dashboard(ctx context.Context) (*contracts.Dashboard, error)
	Get(ctx context.Context, id string) (*contract.ContractRecord, error)
	Delete(ctx context.Context, id string) error
}

// Exporter produces the contract-list workbook.
type Exporter interface {
	ExportContractsXLSX(ctx context.Context) ([]byte, error)
}

type Server struct {
	svc      ContractService
	exporter Exporter
	cfg      common.ServerConfig
	logger   *slog.Logger

	// extraction holds decoded pages and model payloads in memory, so the
	// heavy route is gated separately from the cheap JSON ones.
	extractSem *semaphore.Weighted
	limiters   sync.Map // ip -> *rate.Limiter
}

func New(svc ContractService, exporter Exporter, cfg common.ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	maxConcurrent := cfg.MaxConcurrent
	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}
	return &Server{
		svc:        svc,
		exporter:   exporter,
		cfg:        cfg,
		logger:     logger,
		extractSem: semaphore.NewWeighted(maxConcurrent),
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/contracts", s.withRateLimit(s.handleDashboard))
	mux.HandleFunc("GET /api/contracts/{id}", s.withRateLimit(s.handleGet))
	mux.HandleFunc("DELETE /api/contracts/{id}", s.withRateLimit(s.handleDelete))
	mux.HandleFunc("POST /api/contracts/{id}/generate", s.withRateLimit(s.handleGenerate))
	mux.HandleFunc("POST /api/process", s.withRateLimit(s.withConcurrencyLimit(s.handleProcess)))
	mux.HandleFunc("GET /api/export", s.withRateLimit(s.handleExport))

	return s.withLogging(s.withRecovery(mux))
}
