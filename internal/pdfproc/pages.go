package pdfproc

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// PageCount reports the number of pages in a PDF file.
func PageCount(path string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read pdf: %w", err)
	}
	pdfContext, err := api.ReadValidateAndOptimize(bytes.NewReader(raw), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	return pdfContext.PageCount, nil
}

// FirstPageBytes returns a standalone single-page PDF holding only page 1 of
// the source file. Vision providers cap the inline payload, so shipping the
// whole document is both wasteful and frequently rejected.
func FirstPageBytes(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	pdfContext, err := api.ReadValidateAndOptimize(bytes.NewReader(raw), model.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}
	if pdfContext.PageCount == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	pageReader, err := api.ExtractPage(pdfContext, 1)
	if err != nil {
		return nil, fmt.Errorf("extract page 1: %w", err)
	}
	return io.ReadAll(pageReader)
}
