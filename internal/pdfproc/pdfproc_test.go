package pdfproc

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type fakeRunner struct {
	calls   [][]string
	handler func(name string, args []string) ([]byte, []byte, error)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	return f.handler(name, args)
}

func TestTextLayer(t *testing.T) {
	r := &fakeRunner{handler: func(name string, args []string) ([]byte, []byte, error) {
		if name != "pdftotext" {
			t.Fatalf("unexpected binary %q", name)
		}
		return []byte("page one\ftwo\fthree"), nil, nil
	}}
	tools := NewToolsWithRunner(DefaultConfig(), r)

	text, pages, err := tools.TextLayer(context.Background(), "/tmp/doc.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if pages != 3 {
		t.Errorf("pages = %d, want 3", pages)
	}
	if !strings.HasPrefix(text, "page one") {
		t.Errorf("text = %q", text)
	}

	args := r.calls[0]
	want := []string{"pdftotext", "-layout", "-enc", "UTF-8", "-eol", "unix", "/tmp/doc.pdf", "-"}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestTextLayerError(t *testing.T) {
	r := &fakeRunner{handler: func(string, []string) ([]byte, []byte, error) {
		return nil, []byte("Syntax Error: couldn't read xref table"), errors.New("exit status 1")
	}}
	tools := NewToolsWithRunner(DefaultConfig(), r)

	_, _, err := tools.TextLayer(context.Background(), "/tmp/bad.pdf")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "xref") {
		t.Errorf("error should carry stderr: %v", err)
	}
}

func TestRasterFirstPagePrimary(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")

	r := &fakeRunner{handler: func(name string, args []string) ([]byte, []byte, error) {
		if name != "pdftoppm" {
			t.Fatalf("fallback should not run, got %q", name)
		}
		out := args[len(args)-1] + ".png"
		if err := os.WriteFile(out, []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}
		return nil, nil, nil
	}}
	tools := NewToolsWithRunner(DefaultConfig(), r)

	got, err := tools.RasterFirstPage(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "doc_page1.png")
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
	if len(r.calls) != 1 {
		t.Errorf("calls = %d, want 1", len(r.calls))
	}
}

func TestRasterFirstPageFallsBackToMutool(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "doc.pdf")

	r := &fakeRunner{handler: func(name string, args []string) ([]byte, []byte, error) {
		switch name {
		case "pdftoppm":
			return nil, []byte("not found"), errors.New("exec: not found")
		case "mutool":
			// mutool draw -o <out> -r <dpi> <path> 1
			if err := os.WriteFile(args[2], []byte("png"), 0o644); err != nil {
				t.Fatal(err)
			}
			return nil, nil, nil
		}
		t.Fatalf("unexpected binary %q", name)
		return nil, nil, nil
	}}
	tools := NewToolsWithRunner(DefaultConfig(), r)

	got, err := tools.RasterFirstPage(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(dir, "doc_page1.png") {
		t.Errorf("path = %q", got)
	}
	if len(r.calls) != 2 {
		t.Errorf("calls = %d, want 2", len(r.calls))
	}
}

func TestRasterFirstPageBothBackendsFail(t *testing.T) {
	r := &fakeRunner{handler: func(string, []string) ([]byte, []byte, error) {
		return nil, []byte("boom"), errors.New("exit status 1")
	}}
	tools := NewToolsWithRunner(DefaultConfig(), r)

	_, err := tools.RasterFirstPage(context.Background(), "/tmp/doc.pdf")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "pdftoppm") || !strings.Contains(err.Error(), "mutool") {
		t.Errorf("error should name both backends: %v", err)
	}
}
