package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
)

type stubExtractor struct {
	res   contract.ExtractionResult
	err   error
	calls int
}

func (s *stubExtractor) ExtractFromText(_ context.Context, _ string) (contract.ExtractionResult, error) {
	s.calls++
	return s.res, s.err
}

func TestChainPrimaryPartialResultWins(t *testing.T) {
	primary := &stubExtractor{res: contract.ExtractionResult{"name": "Maria"}}
	fallback := &stubExtractor{res: contract.ExtractionResult{"name": "X", "cpf": "1"}}

	chain := NewTextChain(nil, primary, fallback)
	res, err := chain.ExtractFromText(context.Background(), "text")
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}
	if res["name"] != "Maria" {
		t.Errorf("name = %q, want primary result", res["name"])
	}
	if fallback.calls != 0 {
		t.Error("fallback must not run when primary yields fields")
	}
}

func TestChainFallsBackOnError(t *testing.T) {
	primary := &stubExtractor{err: errors.New("boom")}
	fallback := &stubExtractor{res: contract.ExtractionResult{"company_name": "Acme LTDA"}}

	chain := NewTextChain(nil, primary, fallback)
	res, err := chain.ExtractFromText(context.Background(), "text")
	if err != nil {
		t.Fatalf("ExtractFromText: %v", err)
	}
	if res["company_name"] != "Acme LTDA" {
		t.Errorf("company_name = %q, want fallback result", res["company_name"])
	}
}

func TestChainFallsBackOnEmptyResult(t *testing.T) {
	primary := &stubExtractor{res: contract.ExtractionResult{}}
	fallback := &stubExtractor{res: contract.ExtractionResult{"cpf": "123"}}

	chain := NewTextChain(nil, primary, fallback)
	res, _ := chain.ExtractFromText(context.Background(), "text")
	if res["cpf"] != "123" {
		t.Errorf("cpf = %q, want fallback result", res["cpf"])
	}
	if fallback.calls != 1 {
		t.Errorf("fallback calls = %d, want 1", fallback.calls)
	}
}

func TestChainExhaustedReturnsEmptyNoError(t *testing.T) {
	chain := NewTextChain(nil,
		&stubExtractor{err: errors.New("a")},
		&stubExtractor{err: errors.New("b")},
	)
	res, err := chain.ExtractFromText(context.Background(), "text")
	if err != nil {
		t.Fatalf("exhausted chain must not raise, got %v", err)
	}
	if !res.IsEmpty() {
		t.Errorf("res = %v, want empty", res)
	}
}

func TestChainUnconfigured(t *testing.T) {
	chain := NewTextChain(nil, nil, nil)
	if chain.Configured() {
		t.Error("chain with only nil attempts must report unconfigured")
	}
	res, err := chain.ExtractFromText(context.Background(), "text")
	if err != nil || !res.IsEmpty() {
		t.Errorf("got (%v, %v), want empty result and nil error", res, err)
	}
}
