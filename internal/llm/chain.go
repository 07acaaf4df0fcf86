package llm

import (
	"context"
	"log/slog"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
)

// TextChain tries an ordered list of text extractors until one yields a
// non-empty result. A partial result from an earlier attempt wins over later
// attempts; the next extractor only runs on total failure (error or zero
// usable keys). When every attempt fails, or no extractor is configured at
// all, the chain returns an empty result and no error so the caller degrades
// to manual entry.
type TextChain struct {
	attempts []TextFieldExtractor
	logger   *slog.Logger
}

func NewTextChain(logger *slog.Logger, attempts ...TextFieldExtractor) *TextChain {
	if logger == nil {
		logger = slog.Default()
	}
	kept := make([]TextFieldExtractor, 0, len(attempts))
	for _, a := range attempts {
		if a != nil {
			kept = append(kept, a)
		}
	}
	return &TextChain{attempts: kept, logger: logger}
}

// Configured reports whether at least one provider is wired in.
func (c *TextChain) Configured() bool {
	return len(c.attempts) > 0
}

func (c *TextChain) ExtractFromText(ctx context.Context, text string) (contract.ExtractionResult, error) {
	for i, attempt := range c.attempts {
		res, err := attempt.ExtractFromText(ctx, text)
		if err != nil {
			c.logger.Warn("llm.chain.attempt_failed", "attempt", i, "error", err)
			continue
		}
		if res.IsEmpty() {
			c.logger.Warn("llm.chain.attempt_empty", "attempt", i)
			continue
		}
		c.logger.Info("llm.chain.ok", "attempt", i, "fields", len(res))
		return res, nil
	}
	c.logger.Warn("llm.chain.exhausted", "attempts", len(c.attempts))
	return contract.ExtractionResult{}, nil
}
