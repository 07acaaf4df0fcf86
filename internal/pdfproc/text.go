package pdfproc

import (
	"context"
	"fmt"
	"strings"
)

// TextLayer extracts the embedded text layer of a PDF.
// Scanned documents typically come back empty or with a few stray glyphs;
// the caller decides whether the yield is worth keeping.
func (t *Tools) TextLayer(ctx context.Context, path string) (text string, pages int, err error) {
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := t.runner.Run(ctx, t.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return "", 0, fmt.Errorf("pdftotext: %w: %s", err, truncate(string(errb), 512))
	}
	text = string(out)
	// A form-feed \f is used as page separator by default
	pages = 1 + strings.Count(text, "\f")
	return text, pages, nil
}
