package llm

import (
	"context"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
)

// PromptKind selects which field-enumeration prompt an extraction call uses.
type PromptKind string

const (
	// PromptDocument covers both person and company documents; the model is
	// expected to infer which applies and return only relevant keys.
	PromptDocument PromptKind = "document"
	// PromptIdentity targets Brazilian identity documents (CNH, CIN, RG).
	PromptIdentity PromptKind = "identity"
	// PromptAddressProof targets utility bills and other address proofs.
	PromptAddressProof PromptKind = "address-proof"
)

// Request-size bounds. Text sent to the primary model is capped lower than the
// fallback because the fallback only runs on total failure and can afford a
// larger prefix.
const (
	PrimaryTextLimit  = 10000
	FallbackTextLimit = 15000

	IdentityMaxTokens = 1000
	AddressMaxTokens  = 800
)

// TextFieldExtractor turns extracted document text into structured fields.
// Implementations recover provider and parse failures into an error; an empty
// result with a nil error means the reply carried no usable keys.
type TextFieldExtractor interface {
	ExtractFromText(ctx context.Context, text string) (contract.ExtractionResult, error)
}

// VisionRequest carries one normalized image (or raw PDF) payload plus the
// prompt selection for a vision extraction call.
type VisionRequest struct {
	Kind      PromptKind
	DataURL   string // data:<mime>;base64,<payload>
	MIMEType  string
	MaxTokens int
}

// VisionExtractor sends an image payload to a vision-capable model and parses
// a JSON object back. Failures never raise past the extractor boundary; the
// router converts them to empty results.
type VisionExtractor interface {
	ExtractFromImage(ctx context.Context, req VisionRequest) (contract.ExtractionResult, error)
}
