// Package contracts assembles extracted records into stored contracts and
// drives document generation.
package contracts

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Tiagolw/Automa-o-contrato-social/constants"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/pipeline"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/render"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/repository"
)

// Service ties the extraction pipeline, the store and the renderer together.
// The repository may be nil: extraction and generation keep working, results
// just aren't persisted.
type Service struct {
	processor *pipeline.Processor
	repo      repository.ContractRepository
	renderer  *render.Renderer
	logger    *slog.Logger

	textConfigured   bool
	visionConfigured bool
	keyWarnOnce      sync.Once

	now   func() time.Time
	newID func() string
}

type Options struct {
	TextConfigured   bool
	VisionConfigured bool
}

func NewService(processor *pipeline.Processor, repo repository.ContractRepository, renderer *render.Renderer, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		processor:        processor,
		repo:             repo,
		renderer:         renderer,
		logger:           logger,
		textConfigured:   opts.TextConfigured,
		visionConfigured: opts.VisionConfigured,
		now:              time.Now,
		newID:            uuid.NewString,
	}
}

// ProcessUploads runs one extraction batch and stores the result as a draft.
// A failed save is logged and swallowed: the user already waited through the
// model calls and must get their data back regardless.
func (s *Service) ProcessUploads(ctx context.Context, in pipeline.Input) (*contract.ContractRecord, error) {
	s.warnMissingKeys()

	partners, company := s.processor.Process(ctx, in)
	company.DeriveAdministrators()

	now := s.now().UTC()
	rec := &contract.ContractRecord{
		ID:          s.newID(),
		Partners:    partners,
		CompanyData: company,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	rec.Name = contractName(rec)
	rec.Status = contract.EffectiveStatus(*rec)

	if s.repo != nil {
		if err := s.repo.Insert(ctx, rec); err != nil {
			s.logger.Warn("contracts.save_failed", "contract_id", rec.ID, "error", err)
		}
	}

	s.logger.Info("contracts.processed",
		"contract_id", rec.ID,
		"partners", len(partners),
		"status", rec.Status,
	)
	return rec, nil
}

// Generate renders the final document for a record, filling every remaining
// gap with a bracketed placeholder, and marks the record completed.
func (s *Service) Generate(ctx context.Context, rec *contract.ContractRecord) ([]byte, error) {
	company := rec.CompanyData
	if company.AdministratorNames == "" {
		company.DeriveAdministrators()
	}
	filled := contract.ApplyPlaceholders(company)

	doc, err := s.renderer.Render(filled)
	if err != nil {
		return nil, err
	}

	rec.Status = constants.StatusCompleted
	rec.UpdatedAt = s.now().UTC()
	if s.repo != nil {
		if err := s.repo.Update(ctx, rec); err != nil {
			s.logger.Warn("contracts.update_failed", "contract_id", rec.ID, "error", err)
		}
	}

	s.logger.Info("contracts.generated", "contract_id", rec.ID, "bytes", len(doc))
	return doc, nil
}

// GenerateByID loads a stored record and renders it.
func (s *Service) GenerateByID(ctx context.Context, id string) ([]byte, *contract.ContractRecord, error) {
	if s.repo == nil {
		return nil, nil, fmt.Errorf("no contract store configured")
	}
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	doc, err := s.Generate(ctx, rec)
	if err != nil {
		return nil, nil, err
	}
	return doc, rec, nil
}

// Dashboard summarizes the stored contracts. Status is recomputed per record
// so a contract edited into incompleteness shows as a draft again.
type Dashboard struct {
	Contracts []*contract.ContractRecord `json:"contracts"`
	Total     int                        `json:"total"`
	Drafts    int                        `json:"drafts"`
	Completed int                        `json:"completed"`
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	if s.repo == nil {
		return &Dashboard{Contracts: []*contract.ContractRecord{}}, nil
	}
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Contracts: recs, Total: len(recs)}
	for _, rec := range recs {
		rec.Status = contract.EffectiveStatus(*rec)
		switch rec.Status {
		case constants.StatusCompleted:
			d.Completed++
		default:
			d.Drafts++
		}
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, id string) (*contract.ContractRecord, error) {
	if s.repo == nil {
		return nil, repository.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if s.repo == nil {
		return repository.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// warnMissingKeys logs at most once per process; the extraction paths handle
// the absence themselves, the warning just tells the operator why every field
// is coming back empty.
func (s *Service) warnMissingKeys() {
	s.keyWarnOnce.Do(func() {
		if !s.textConfigured && !s.visionConfigured {
			s.logger.Warn("contracts.no_api_keys")
			return
		}
		if !s.textConfigured {
			s.logger.Warn("contracts.text_key_missing")
		}
		if !s.visionConfigured {
			s.logger.Warn("contracts.vision_key_missing")
		}
	})
}

func contractName(rec *contract.ContractRecord) string {
	if name := rec.CompanyData.CompanyName; !contract.FieldMissing(name) {
		return name
	}
	return fmt.Sprintf("Rascunho %d Sócios", len(rec.Partners))
}
