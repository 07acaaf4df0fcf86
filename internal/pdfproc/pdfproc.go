// Package pdfproc wraps the PDF tooling the extraction pipeline leans on:
// poppler-utils for the embedded text layer and page rasterization, mupdf as
// a rasterizer fallback, and pdfcpu for in-process page surgery.
package pdfproc

// Config names the external binaries and the render resolution.
type Config struct {
	Pdftotext string
	Pdftoppm  string
	Mutool    string
	DPI       int
}

// DefaultConfig assumes the binaries are on PATH.
func DefaultConfig() Config {
	return Config{
		Pdftotext: "pdftotext",
		Pdftoppm:  "pdftoppm",
		Mutool:    "mutool",
		DPI:       100,
	}
}

// Tools runs the external PDF commands.
type Tools struct {
	cfg    Config
	runner Runner
}

// NewTools builds a Tools with a real exec runner.
func NewTools(cfg Config) *Tools {
	return &Tools{cfg: cfg, runner: execRunner{}}
}

// NewToolsWithRunner is the test hook.
func NewToolsWithRunner(cfg Config, r Runner) *Tools {
	return &Tools{cfg: cfg, runner: r}
}
