package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dgallion1/botschema/internal/catalogue"
	"github.com/dgallion1/botschema/internal/pipeline"
	"github.com/go-chi/chi/v5"
	"gopkg.in/yaml.v3"
)

// completedCatalogue looks up the job and writes the error response itself
// when no catalogue is available yet.
func (s *Server) completedCatalogue(w http.ResponseWriter, r *http.Request) *catalogue.Catalogue {
	job := s.orchestrator.GetJob(chi.URLParam(r, "jobID"))
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return nil
	}
	snap := job.Snapshot()
	switch snap.Status {
	case pipeline.StatusCompleted:
	case pipeline.StatusFailed:
		msg := "extraction failed"
		if len(snap.Progress.Errors) > 0 {
			msg += ": " + strings.Join(snap.Progress.Errors, "; ")
		}
		jsonError(w, msg, http.StatusUnprocessableEntity)
		return nil
	default:
		jsonError(w, "extraction not finished: "+string(snap.Status), http.StatusConflict)
		return nil
	}
	cat := job.Catalogue()
	if cat == nil {
		jsonError(w, "catalogue unavailable", http.StatusInternalServerError)
		return nil
	}
	return cat
}

func (s *Server) handleGetCatalogue(w http.ResponseWriter, r *http.Request) {
	cat := s.completedCatalogue(w, r)
	if cat == nil {
		return
	}
	s.writeFormatted(w, r, catalogue.Export(cat))
}

func (s *Server) handleGetEntity(w http.ResponseWriter, r *http.Request) {
	cat := s.completedCatalogue(w, r)
	if cat == nil {
		return
	}
	e, err := cat.Get(chi.URLParam(r, "anchor"))
	if err != nil {
		var refErr *catalogue.ReferenceError
		if errors.As(err, &refErr) {
			jsonError(w, "unknown anchor: "+refErr.Anchor, http.StatusNotFound)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.writeFormatted(w, r, catalogue.ExportEntity(e))
}

// writeFormatted writes v as JSON, or as YAML when ?format=yaml.
func (s *Server) writeFormatted(w http.ResponseWriter, r *http.Request, v any) {
	if strings.EqualFold(r.URL.Query().Get("format"), "yaml") {
		out, err := yaml.Marshal(v)
		if err != nil {
			s.log.Error("yaml encode failed", "error", err)
			jsonError(w, "encode failed", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(out)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
