// Package pipeline walks a batch of uploaded documents partner by partner
// and assembles the extracted records. Documents are processed one at a time
// on purpose: each extraction holds a decoded page in memory, and the service
// runs under a tight memory ceiling.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/extract"
)

// DocumentExtractor reads one document. Satisfied by *extract.Router.
type DocumentExtractor interface {
	ExtractDocument(ctx context.Context, doc extract.UploadedDocument) (contract.ExtractionResult, error)
}

// PartnerUploads groups one partner's documents.
type PartnerUploads struct {
	Identity      []extract.UploadedDocument
	AddressProofs []extract.UploadedDocument
}

// Input is one processing batch.
type Input struct {
	Partners    []PartnerUploads
	CompanyDocs []extract.UploadedDocument
}

// Processor runs a batch through the extractor.
type Processor struct {
	extractor DocumentExtractor
	log       *slog.Logger
}

func New(extractor DocumentExtractor, log *slog.Logger) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{extractor: extractor, log: log}
}

// Process extracts every document in the batch and returns the assembled
// partner and company records. Individual extraction failures are logged and
// skipped; a partner whose documents all fail still gets a record, with the
// gaps left for the completeness check to report.
func (p *Processor) Process(ctx context.Context, in Input) ([]contract.PartnerRecord, contract.CompanyRecord) {
	start := time.Now()
	partners := make([]contract.PartnerRecord, 0, len(in.Partners))

	for i, uploads := range in.Partners {
		rec := contract.NewPartnerRecord(i)

		merged := p.extractAll(ctx, uploads.Identity)
		rec.Apply(merged)

		proofFields := p.extractAll(ctx, uploads.AddressProofs)
		if addr := contract.ComposeAddress(proofFields); addr != "" {
			rec.Address = addr
		}

		p.log.Info("pipeline.partner.done",
			"partner", i,
			"identity_docs", len(uploads.Identity),
			"address_docs", len(uploads.AddressProofs),
		)
		partners = append(partners, rec)
	}

	var company contract.CompanyRecord
	companyFields := p.extractAll(ctx, in.CompanyDocs)
	company.Apply(companyFields)
	company.Partners = partners

	p.log.Info("pipeline.done",
		"partners", len(partners),
		"company_docs", len(in.CompanyDocs),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return partners, company
}

// extractAll merges the results of a document group. Later documents only
// fill fields the earlier ones left empty or add new ones; a weak scan can
// never blank a field a better document already produced.
func (p *Processor) extractAll(ctx context.Context, docs []extract.UploadedDocument) contract.ExtractionResult {
	merged := contract.ExtractionResult{}
	for _, doc := range docs {
		res, err := p.extractor.ExtractDocument(ctx, doc)
		if err != nil {
			p.log.Warn("pipeline.extract_failed", "path", doc.Path, "role", doc.Role, "error", err)
			continue
		}
		merged = contract.Merge(merged, res)
	}
	return merged
}
