// Package extract routes an uploaded document to the cheapest extraction
// path that can read it: embedded PDF text through the text-model chain, or
// a rasterized page through the vision model.
package extract

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"strings"

	"github.com/Tiagolw/Automa-o-contrato-social/constants"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/imaging"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/llm"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/pdfproc"
)

// TextThreshold is the minimum trimmed text-layer length for a PDF to be
// treated as digital. Scanned PDFs often carry a handful of stray glyphs, so
// a short yield means the page must be read as an image.
const TextThreshold = 500

// UploadedDocument is one file handed to the router.
type UploadedDocument struct {
	Path string
	Ext  string
	Role constants.DocumentRole
}

// Router decides per document between the text chain and the vision model.
type Router struct {
	text   llm.TextFieldExtractor
	vision llm.VisionExtractor
	tools  *pdfproc.Tools
	log    *slog.Logger

	// test hooks
	encodeImage  func(path string) (dataURL, mimeType string)
	firstPagePDF func(path string) ([]byte, error)
}

// NewRouter wires the extraction backends. Either extractor may be nil when
// its API key is absent; the router then returns empty results for the paths
// that would need it.
func NewRouter(text llm.TextFieldExtractor, vision llm.VisionExtractor, tools *pdfproc.Tools, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	return &Router{
		text:         text,
		vision:       vision,
		tools:        tools,
		log:          log,
		encodeImage:  encodeImage,
		firstPagePDF: pdfproc.FirstPageBytes,
	}
}

// ExtractDocument reads one document and returns whatever fields the models
// could recover. A document that yields nothing produces an empty result, not
// an error; extraction failures must never abort the surrounding batch.
func (r *Router) ExtractDocument(ctx context.Context, doc UploadedDocument) (contract.ExtractionResult, error) {
	format := constants.MapExtToFormat(doc.Ext)
	switch {
	case format == constants.IMAGE:
		return r.extractViaVision(ctx, doc, doc.Path)
	case format == constants.PDF && doc.Role == constants.RoleAddressProof:
		// Address proofs are utility bills and bank statements whose text
		// layers are full of boilerplate that drowns the address. They
		// always go through vision.
		return r.extractPDFViaVision(ctx, doc)
	case format == constants.PDF:
		return r.extractPDF(ctx, doc)
	default:
		r.log.Warn("extract.unsupported_ext", "path", doc.Path, "ext", doc.Ext)
		return contract.ExtractionResult{}, nil
	}
}

func (r *Router) extractPDF(ctx context.Context, doc UploadedDocument) (contract.ExtractionResult, error) {
	text, pages, err := r.tools.TextLayer(ctx, doc.Path)
	if err != nil {
		r.log.Warn("extract.text_layer_failed", "path", doc.Path, "error", err)
		return r.extractPDFViaVision(ctx, doc)
	}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) > TextThreshold {
		r.log.Info("extract.route", "path", doc.Path, "route", "text", "pages", pages, "chars", len(trimmed))
		if r.text == nil {
			r.log.Warn("extract.text_chain_missing", "path", doc.Path)
			return contract.ExtractionResult{}, nil
		}
		return r.text.ExtractFromText(ctx, trimmed)
	}

	r.log.Info("extract.route", "path", doc.Path, "route", "vision", "pages", pages, "chars", len(trimmed))
	return r.extractPDFViaVision(ctx, doc)
}

func (r *Router) extractPDFViaVision(ctx context.Context, doc UploadedDocument) (contract.ExtractionResult, error) {
	pngPath, err := r.tools.RasterFirstPage(ctx, doc.Path)
	if err == nil {
		defer func() {
			if rmErr := os.Remove(pngPath); rmErr != nil {
				r.log.Warn("extract.cleanup_failed", "path", pngPath, "error", rmErr)
			}
		}()
		return r.extractViaVision(ctx, doc, pngPath)
	}
	r.log.Warn("extract.raster_failed", "path", doc.Path, "error", err)

	// Last resort: ship the first page as an inline PDF and let the vision
	// model rasterize it on their side.
	raw, err := r.firstPagePDF(doc.Path)
	if err != nil {
		r.log.Warn("extract.first_page_failed", "path", doc.Path, "error", err)
		return contract.ExtractionResult{}, nil
	}
	dataURL := imaging.DataURL("application/pdf", base64.StdEncoding.EncodeToString(raw))
	return r.callVision(ctx, doc, dataURL, "application/pdf")
}

func (r *Router) extractViaVision(ctx context.Context, doc UploadedDocument, imagePath string) (contract.ExtractionResult, error) {
	dataURL, mimeType := r.encodeImage(imagePath)
	if dataURL == "" {
		r.log.Warn("extract.encode_failed", "path", imagePath)
		return contract.ExtractionResult{}, nil
	}
	return r.callVision(ctx, doc, dataURL, mimeType)
}

func (r *Router) callVision(ctx context.Context, doc UploadedDocument, dataURL, mimeType string) (contract.ExtractionResult, error) {
	if r.vision == nil {
		r.log.Warn("extract.vision_missing", "path", doc.Path)
		return contract.ExtractionResult{}, nil
	}
	kind, maxTokens := visionParams(doc.Role)
	return r.vision.ExtractFromImage(ctx, llm.VisionRequest{
		Kind:      kind,
		DataURL:   dataURL,
		MIMEType:  mimeType,
		MaxTokens: maxTokens,
	})
}

func visionParams(role constants.DocumentRole) (llm.PromptKind, int) {
	switch role {
	case constants.RoleIdentity:
		return llm.PromptIdentity, llm.IdentityMaxTokens
	case constants.RoleAddressProof:
		return llm.PromptAddressProof, llm.AddressMaxTokens
	default:
		return llm.PromptDocument, llm.IdentityMaxTokens
	}
}

// encodeImage compresses the image to the vision payload budget, falling
// back to the raw bytes when the file cannot be decoded.
func encodeImage(path string) (string, string) {
	b64, mimeType, err := imaging.Normalize(path, imaging.Options{})
	if err == nil {
		return imaging.DataURL(mimeType, b64), mimeType
	}
	url, mimeType, err := imaging.FileDataURL(path)
	if err != nil {
		return "", ""
	}
	return url, mimeType
}
