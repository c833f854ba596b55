package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jonathan/resume-latex/internal/export"
	"github.com/jonathan/resume-latex/internal/store"
	"github.com/jonathan/resume-latex/internal/types"
)

// validateResponse is returned by POST /draft/validate
type validateResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// handleGetDraft returns the saved draft
func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Load(r.Context())
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if data == nil {
		s.errResponse(w, &ErrDraftNotFound{})
		return
	}

	s.jsonResponse(w, http.StatusOK, data)
}

// handleSaveDraft replaces the saved draft with the request body
func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	data, err := decodeResumeData(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	withIDs := types.EnsureIDs(*data)
	if err := s.store.Save(r.Context(), &withIDs); err != nil {
		s.errResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":   "saved",
		"saved_at": s.now().UTC().Format(time.RFC3339),
		"data":     withIDs,
	})
}

// handleClearDraft removes the saved draft and returns the empty form state
func (s *Server) handleClearDraft(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Clear(r.Context()); err != nil {
		s.errResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "cleared",
		"data":   types.EmptyResumeData(),
	})
}

// handleValidateDraft reports which required fields are missing or malformed
func (s *Server) handleValidateDraft(w http.ResponseWriter, r *http.Request) {
	data, err := decodeResumeData(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	resp := validateResponse{Valid: true, Errors: map[string]string{}}
	if err := data.Validate(); err != nil {
		verr, ok := err.(*types.ValidationError)
		if !ok {
			s.errResponse(w, err)
			return
		}
		resp.Valid = false
		for _, fe := range verr.Errors {
			resp.Errors[fe.Field] = fe.Message
		}
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleExportDraft returns the saved draft wrapped in a versioned envelope
func (s *Server) handleExportDraft(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Load(r.Context())
	if err != nil {
		s.errResponse(w, err)
		return
	}
	if data == nil {
		s.errResponse(w, &ErrDraftNotFound{})
		return
	}

	now := s.now()
	content, err := store.MarshalEnvelope(*data, now)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.ExportFileName(now)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// handleImportDraft replaces the saved draft with the data from an export file
func (s *Server) handleImportDraft(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	env, err := store.UnmarshalEnvelope(body)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	withIDs := types.EnsureIDs(env.Data)
	if err := s.store.Save(r.Context(), &withIDs); err != nil {
		s.errResponse(w, err)
		return
	}

	log.Printf("[draft] imported export version %s from %s", env.Version, env.Timestamp.Format(time.RFC3339))
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status": "imported",
		"data":   withIDs,
	})
}
