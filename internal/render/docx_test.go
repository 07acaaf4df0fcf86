package render

import (
	"archive/zip"
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
)

func writeTemplate(t *testing.T, parts map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "modelo.docx")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func extractPart(t *testing.T, docx []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(docx), int64(len(docx)))
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(raw)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRenderFillsDocumentAndPartners(t *testing.T) {
	path := writeTemplate(t, map[string]string{
		"[Content_Types].xml": "<Types/>",
		"word/document.xml":   "<w:t>{{.company_name}}</w:t>{{range .partners}}<w:t>{{.name}} CPF {{.cpf}}</w:t>{{end}}",
	})

	p := contract.NewPartnerRecord(0)
	p.Name = "MARIA SILVA"
	p.CPF = "111.222.333-44"
	c := contract.CompanyRecord{
		CompanyName: "Acme LTDA",
		Partners:    []contract.PartnerRecord{p},
	}

	out, err := NewRenderer(path, testLogger()).Render(c)
	if err != nil {
		t.Fatal(err)
	}

	doc := extractPart(t, out, "word/document.xml")
	if !strings.Contains(doc, "Acme LTDA") {
		t.Errorf("company name missing: %q", doc)
	}
	if !strings.Contains(doc, "MARIA SILVA CPF 111.222.333-44") {
		t.Errorf("partner row missing: %q", doc)
	}
	if strings.Contains(doc, "{{") {
		t.Errorf("unexpanded tags left: %q", doc)
	}
	if got := extractPart(t, out, "[Content_Types].xml"); got != "<Types/>" {
		t.Errorf("non-text part changed: %q", got)
	}
}

func TestRenderTemplatesHeaderAndFooter(t *testing.T) {
	path := writeTemplate(t, map[string]string{
		"word/document.xml": "<w:t>corpo</w:t>",
		"word/header1.xml":  "<w:t>{{.company_name}}</w:t>",
		"word/footer1.xml":  "<w:t>{{.forum_city}}</w:t>",
		"word/settings.xml": "{{.company_name}}", // not a text part, copied verbatim
	})

	c := contract.CompanyRecord{CompanyName: "Acme LTDA", ForumCity: "Curitiba"}
	out, err := NewRenderer(path, testLogger()).Render(c)
	if err != nil {
		t.Fatal(err)
	}

	if got := extractPart(t, out, "word/header1.xml"); !strings.Contains(got, "Acme LTDA") {
		t.Errorf("header = %q", got)
	}
	if got := extractPart(t, out, "word/footer1.xml"); !strings.Contains(got, "Curitiba") {
		t.Errorf("footer = %q", got)
	}
	if got := extractPart(t, out, "word/settings.xml"); got != "{{.company_name}}" {
		t.Errorf("settings should be untouched: %q", got)
	}
}

func TestRenderMissingTemplateFile(t *testing.T) {
	r := NewRenderer(filepath.Join(t.TempDir(), "nope.docx"), testLogger())
	if _, err := r.Render(contract.CompanyRecord{}); err == nil {
		t.Fatal("expected error for missing template")
	}
}

func TestRenderBadTemplateSyntax(t *testing.T) {
	path := writeTemplate(t, map[string]string{
		"word/document.xml": "<w:t>{{.company_name</w:t>",
	})
	if _, err := NewRenderer(path, testLogger()).Render(contract.CompanyRecord{}); err == nil {
		t.Fatal("expected parse error")
	}
}
