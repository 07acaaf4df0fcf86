package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiagolw/Automa-o-contrato-social/constants"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/llm"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/pdfproc"
)

type fakeRunner struct {
	text string // pdftotext output
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	switch name {
	case "pdftotext":
		return []byte(f.text), nil, nil
	case "pdftoppm":
		out := args[len(args)-1] + ".png"
		if err := os.WriteFile(out, []byte("png"), 0o644); err != nil {
			return nil, nil, err
		}
		return nil, nil, nil
	}
	return nil, []byte("unknown"), errors.New("exit status 1")
}

type fakeText struct {
	calls  int
	gotLen int
	result contract.ExtractionResult
	err    error
}

func (f *fakeText) ExtractFromText(ctx context.Context, text string) (contract.ExtractionResult, error) {
	f.calls++
	f.gotLen = len(text)
	return f.result, f.err
}

type fakeVision struct {
	calls int
	last  llm.VisionRequest
}

func (f *fakeVision) ExtractFromImage(ctx context.Context, req llm.VisionRequest) (contract.ExtractionResult, error) {
	f.calls++
	f.last = req
	return contract.ExtractionResult{"name": "MARIA"}, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRouter(text llm.TextFieldExtractor, vision llm.VisionExtractor, r pdfproc.Runner) *Router {
	tools := pdfproc.NewToolsWithRunner(pdfproc.DefaultConfig(), r)
	router := NewRouter(text, vision, tools, discard())
	router.encodeImage = func(path string) (string, string) {
		return "data:image/jpeg;base64,ZmFrZQ==", "image/jpeg"
	}
	router.firstPagePDF = func(path string) ([]byte, error) {
		return []byte("%PDF-1.4 stub"), nil
	}
	return router
}

func pdfDoc(t *testing.T, role constants.DocumentRole) UploadedDocument {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0o644); err != nil {
		t.Fatal(err)
	}
	return UploadedDocument{Path: path, Ext: "pdf", Role: role}
}

func TestDigitalPDFUsesTextChain(t *testing.T) {
	text := &fakeText{result: contract.ExtractionResult{"company_name": "Acme LTDA"}}
	vision := &fakeVision{}
	router := newTestRouter(text, vision, &fakeRunner{text: strings.Repeat("x", 5000)})

	res, err := router.ExtractDocument(context.Background(), pdfDoc(t, constants.RoleCompany))
	if err != nil {
		t.Fatal(err)
	}
	if res["company_name"] != "Acme LTDA" {
		t.Errorf("result = %v", res)
	}
	if text.calls != 1 || vision.calls != 0 {
		t.Errorf("text=%d vision=%d, want 1/0", text.calls, vision.calls)
	}
}

func TestScannedPDFUsesVision(t *testing.T) {
	text := &fakeText{}
	vision := &fakeVision{}
	router := newTestRouter(text, vision, &fakeRunner{text: "short scan"})

	res, err := router.ExtractDocument(context.Background(), pdfDoc(t, constants.RoleIdentity))
	if err != nil {
		t.Fatal(err)
	}
	if res["name"] != "MARIA" {
		t.Errorf("result = %v", res)
	}
	if text.calls != 0 || vision.calls != 1 {
		t.Errorf("text=%d vision=%d, want 0/1", text.calls, vision.calls)
	}
	if vision.last.Kind != llm.PromptIdentity {
		t.Errorf("kind = %v, want identity", vision.last.Kind)
	}
	if vision.last.MaxTokens != llm.IdentityMaxTokens {
		t.Errorf("max_tokens = %d, want %d", vision.last.MaxTokens, llm.IdentityMaxTokens)
	}
}

func TestAddressProofPDFSkipsTextLayer(t *testing.T) {
	text := &fakeText{}
	vision := &fakeVision{}
	// Text layer is long enough for the text route, but address proofs
	// must still go through vision.
	router := newTestRouter(text, vision, &fakeRunner{text: strings.Repeat("boleto ", 1000)})

	_, err := router.ExtractDocument(context.Background(), pdfDoc(t, constants.RoleAddressProof))
	if err != nil {
		t.Fatal(err)
	}
	if text.calls != 0 || vision.calls != 1 {
		t.Errorf("text=%d vision=%d, want 0/1", text.calls, vision.calls)
	}
	if vision.last.Kind != llm.PromptAddressProof {
		t.Errorf("kind = %v, want address proof", vision.last.Kind)
	}
	if vision.last.MaxTokens != llm.AddressMaxTokens {
		t.Errorf("max_tokens = %d, want %d", vision.last.MaxTokens, llm.AddressMaxTokens)
	}
}

func TestImageGoesStraightToVision(t *testing.T) {
	vision := &fakeVision{}
	router := newTestRouter(&fakeText{}, vision, &fakeRunner{})

	doc := UploadedDocument{Path: "/tmp/rg.jpg", Ext: "jpg", Role: constants.RoleIdentity}
	if _, err := router.ExtractDocument(context.Background(), doc); err != nil {
		t.Fatal(err)
	}
	if vision.calls != 1 {
		t.Errorf("vision calls = %d, want 1", vision.calls)
	}
	if !strings.HasPrefix(vision.last.DataURL, "data:image/jpeg;base64,") {
		t.Errorf("data url = %q", vision.last.DataURL)
	}
}

func TestUnsupportedExtensionYieldsEmpty(t *testing.T) {
	vision := &fakeVision{}
	text := &fakeText{}
	router := newTestRouter(text, vision, &fakeRunner{})

	res, err := router.ExtractDocument(context.Background(), UploadedDocument{Path: "/tmp/x.docx", Ext: "docx"})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 || text.calls != 0 || vision.calls != 0 {
		t.Errorf("expected no extraction, got res=%v text=%d vision=%d", res, text.calls, vision.calls)
	}
}

func TestRasterFailureFallsBackToInlinePDF(t *testing.T) {
	vision := &fakeVision{}
	// Runner fails every command: no text layer, no raster.
	router := newTestRouter(&fakeText{}, vision, failingRunner{})

	_, err := router.ExtractDocument(context.Background(), pdfDoc(t, constants.RoleIdentity))
	if err != nil {
		t.Fatal(err)
	}
	if vision.calls != 1 {
		t.Fatalf("vision calls = %d, want 1", vision.calls)
	}
	if vision.last.MIMEType != "application/pdf" {
		t.Errorf("mime = %q, want application/pdf", vision.last.MIMEType)
	}
	if !strings.HasPrefix(vision.last.DataURL, "data:application/pdf;base64,") {
		t.Errorf("data url = %q", vision.last.DataURL)
	}
}

func TestMissingExtractorsYieldEmpty(t *testing.T) {
	router := newTestRouter(nil, nil, &fakeRunner{text: strings.Repeat("x", 5000)})

	res, err := router.ExtractDocument(context.Background(), pdfDoc(t, constants.RoleCompany))
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 0 {
		t.Errorf("result = %v, want empty", res)
	}
}

type failingRunner struct{}

func (failingRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	return nil, []byte("broken"), errors.New("exit status 1")
}
