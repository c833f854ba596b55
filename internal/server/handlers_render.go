package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/resume-latex/internal/export"
	"github.com/jonathan/resume-latex/internal/rendering"
	"github.com/jonathan/resume-latex/internal/types"
)

// renderResponse is returned by POST /render
type renderResponse struct {
	LaTeX    string   `json:"latex"`
	Sections []string `json:"sections"`
	FileName string   `json:"file_name"`
}

// readBody reads at most types.MaxInputSize bytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, types.MaxInputSize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, &ErrPayloadTooLarge{Limit: maxErr.Limit}
		}
		return nil, &ErrValidation{Field: "body", Message: "failed to read request body"}
	}
	return body, nil
}

// decodeResumeData parses the request body as ResumeData JSON.
func decodeResumeData(w http.ResponseWriter, r *http.Request) (*types.ResumeData, error) {
	body, err := readBody(w, r)
	if err != nil {
		return nil, err
	}
	data, err := types.ParseResumeData(body, types.FormatJSON)
	if err != nil {
		return nil, &ErrValidation{Field: "body", Message: err.Error()}
	}
	return data, nil
}

// render assembles the document with the configured layout and records metrics.
func (s *Server) render(data types.ResumeData, mode string) (string, error) {
	start := time.Now()

	var latex string
	if s.templatePath != "" {
		var err error
		latex, err = rendering.RenderTemplate(data, s.templatePath)
		if err != nil {
			return "", err
		}
	} else {
		latex = rendering.AssembleDocument(data)
	}

	s.metrics.observeRender(mode, start, len(latex))
	return latex, nil
}

// handleRender returns the LaTeX source for the posted résumé
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, err := decodeResumeData(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	latex, err := s.render(*data, modeLaTeX)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, renderResponse{
		LaTeX:    latex,
		Sections: rendering.SectionsOf(*data),
		FileName: export.DeriveBaseName(data.PersonalInfo.FullName),
	})
}

// handleRenderHighlight returns the document as highlighted HTML for preview panes
func (s *Server) handleRenderHighlight(w http.ResponseWriter, r *http.Request) {
	data, err := decodeResumeData(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	latex, err := s.render(*data, modeHighlight)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"html": export.HighlightSyntax(latex)})
}

// handleRenderDownload returns the document as a .tex attachment.
// The optional filename query parameter is sanitized like a person's name.
func (s *Server) handleRenderDownload(w http.ResponseWriter, r *http.Request) {
	data, err := decodeResumeData(w, r)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	latex, err := s.render(*data, modeDownload)
	if err != nil {
		s.errResponse(w, err)
		return
	}

	name := r.URL.Query().Get("filename")
	if name == "" {
		name = data.PersonalInfo.FullName
	}

	export.ServeDownload(w, latex, export.DeriveBaseName(name))
}
