package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/Tiagolw/Automa-o-contrato-social/internal/common"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/contract"
	"github.com/Tiagolw/Automa-o-contrato-social/internal/repository"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.svc.Dashboard(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "dashboard_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// processResponse is the processing result plus the gaps the client must show
// the user before generation.
type processResponse struct {
	Contract *contract.ContractRecord `json:"contract"`
	Complete bool                     `json:"complete"`
	Missing  []string                 `json:"missing_fields"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	in, dir, err := s.parseUploads(r)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "bad_upload", err.Error())
		return
	}
	defer func() {
		if err := os.RemoveAll(dir); err != nil {
			s.logger.Warn("upload.cleanup_failed", "dir", dir, "error", err)
		}
	}()

	rec, err := s.svc.ProcessUploads(r.Context(), in)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "process_failed", err.Error())
		return
	}

	complete, missing := contract.IsComplete(*rec)
	if missing == nil {
		missing = []string{}
	}
	writeJSON(w, http.StatusOK, processResponse{Contract: rec, Complete: complete, Missing: missing})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := validateID(id); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_id", err.Error())
		return
	}
	rec, err := s.svc.Get(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not_found", "contract not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "get_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := validateID(id); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_id", err.Error())
		return
	}
	err := s.svc.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not_found", "contract not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "delete_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := validateID(id); err != nil {
		writeErr(w, http.StatusBadRequest, "bad_id", err.Error())
		return
	}
	doc, rec, err := s.svc.GenerateByID(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeErr(w, http.StatusNotFound, "not_found", "contract not found")
		return
	}
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "generate_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rec.Name+".docx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeErr(w, http.StatusNotImplemented, "no_exporter", "export is not configured")
		return
	}
	raw, err := s.exporter.ExportContractsXLSX(r.Context())
	if err != nil {
		writeErr(w, http.StatusInternalServerError, "export_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="contracts.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

func validateID(id string) error {
	v := common.NewValidator()
	v.Field("id", id, common.Required, common.UUID)
	return v.Error()
}
