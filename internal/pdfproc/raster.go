package pdfproc

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// RasterFirstPage renders page 1 of a PDF to a PNG next to the source file
// and returns the PNG path. Only the first page is rendered; identity and
// address documents carry everything of interest there, and rendering the
// rest only burns memory. It tries pdftoppm first and falls back to mutool.
// The caller owns the produced file and removes it when done.
func (t *Tools) RasterFirstPage(ctx context.Context, path string) (string, error) {
	base := strings.TrimSuffix(path, ".pdf")
	outPath := base + "_page1.png"

	// pdftoppm -f 1 -l 1 -r <dpi> -png -singlefile <path> <base>_page1
	_, errb1, err1 := t.runner.Run(ctx, t.cfg.Pdftoppm,
		"-f", "1", "-l", "1", "-r", fmt.Sprintf("%d", t.cfg.DPI), "-png", "-singlefile", path, base+"_page1")
	if err1 == nil {
		if _, statErr := os.Stat(outPath); statErr == nil {
			return outPath, nil
		}
		err1 = fmt.Errorf("pdftoppm produced no image")
	}

	// mutool draw -o <out> -r <dpi> <path> 1
	_, errb2, err2 := t.runner.Run(ctx, t.cfg.Mutool,
		"draw", "-o", outPath, "-r", fmt.Sprintf("%d", t.cfg.DPI), path, "1")
	if err2 == nil {
		if _, statErr := os.Stat(outPath); statErr == nil {
			return outPath, nil
		}
		err2 = fmt.Errorf("mutool produced no image")
	}

	return "", fmt.Errorf("rasterize %s: pdftoppm: %v (%s); mutool: %v (%s)",
		path, err1, truncate(string(errb1), 256), err2, truncate(string(errb2), 256))
}
