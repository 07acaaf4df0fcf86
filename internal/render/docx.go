// Package render fills a .docx contract template with the assembled company
// record. A .docx file is a zip archive; only the XML parts that carry text
// are templated, everything else is copied through byte for byte.
package render

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/template"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
)

// Renderer executes the contract template.
type Renderer struct {
	templatePath string
	log          *slog.Logger
}

func NewRenderer(templatePath string, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{templatePath: templatePath, log: log}
}

// templatedPart reports whether a zip entry carries document text. Headers
// and footers are templated too so letterheads can reference the company
// name.
func templatedPart(name string) bool {
	if name == "word/document.xml" {
		return true
	}
	return strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")
}

// Render produces the filled .docx. A missing template file is the one error
// the caller must surface to the user; everything upstream degrades, but
// without a template there is nothing to generate.
func (r *Renderer) Render(c contract.CompanyRecord) ([]byte, error) {
	if _, err := os.Stat(r.templatePath); err != nil {
		return nil, fmt.Errorf("contract template not found at %s: %w", r.templatePath, err)
	}

	data, err := contract.RenderContext(c)
	if err != nil {
		return nil, err
	}

	zr, err := zip.OpenReader(r.templatePath)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer zr.Close()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		raw, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("read template part %s: %w", f.Name, err)
		}
		if templatedPart(f.Name) {
			raw, err = executePart(f.Name, raw, data)
			if err != nil {
				return nil, err
			}
		}
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method})
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(raw); err != nil {
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}

	r.log.Info("render.done", "template", r.templatePath, "bytes", buf.Len())
	return buf.Bytes(), nil
}

func executePart(name string, raw []byte, data map[string]any) ([]byte, error) {
	tmpl, err := template.New(name).Option("missingkey=zero").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template part %s: %w", name, err)
	}
	var out bytes.Buffer
	if err := tmpl.Execute(&out, data); err != nil {
		return nil, fmt.Errorf("execute template part %s: %w", name, err)
	}
	return out.Bytes(), nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
