package server

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Tiagolw/Automa-o-contrato-social/constants"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/common"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/extract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/pipeline"
)

// parseUploads reads the multipart form into a pipeline input, saving every
// admitted file under a per-request directory. The caller removes the
// directory once processing is done.
func (s *Server) parseUploads(r *http.Request) (pipeline.Input, string, error) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadBytes); err != nil {
		return pipeline.Input{}, "", fmt.Errorf("parse multipart form: %w", err)
	}

	count := constants.MinPartners
	if raw := r.FormValue("partners"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			count = constants.ClampPartnerCount(n)
		}
	}

	dir := filepath.Join(s.cfg.UploadDir, common.RequestIDFromContext(r.Context()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pipeline.Input{}, "", fmt.Errorf("create upload dir: %w", err)
	}

	in := pipeline.Input{Partners: make([]pipeline.PartnerUploads, count)}
	for i := 0; i < count; i++ {
		in.Partners[i].Identity = s.saveGroup(r, dir,
			fmt.Sprintf("partner_%d_identity", i), fmt.Sprintf("p%d_", i), constants.RoleIdentity)
		in.Partners[i].AddressProofs = s.saveGroup(r, dir,
			fmt.Sprintf("partner_%d_address", i), fmt.Sprintf("addr_%d_", i), constants.RoleAddressProof)
	}
	in.CompanyDocs = s.saveGroup(r, dir, "company", "company_", constants.RoleCompany)

	return in, dir, nil
}

// saveGroup persists the files of one form field. Unsupported extensions and
// failed saves are logged and skipped rather than failing the batch.
func (s *Server) saveGroup(r *http.Request, dir, field, prefix string, role constants.DocumentRole) []extract.UploadedDocument {
	if r.MultipartForm == nil {
		return nil
	}
	var docs []extract.UploadedDocument
	for _, fh := range r.MultipartForm.File[field] {
		ext := constants.NormalizeExt(filepath.Ext(fh.Filename))
		if constants.MapExtToFormat(ext) == "" {
			s.logger.Warn("upload.unsupported_ext", "filename", fh.Filename, "field", field)
			continue
		}
		path := filepath.Join(dir, prefix+filepath.Base(fh.Filename))
		if err := saveFile(fh, path); err != nil {
			s.logger.Warn("upload.save_failed", "filename", fh.Filename, "error", err)
			continue
		}
		docs = append(docs, extract.UploadedDocument{Path: path, Ext: ext, Role: role})
	}
	return docs
}

func saveFile(fh *multipart.FileHeader, path string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
