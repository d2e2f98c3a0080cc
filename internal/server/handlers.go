package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/weekgrid/pkg/buildinfo"
	"github.com/matzehuels/weekgrid/pkg/errors"
	"github.com/matzehuels/weekgrid/pkg/pipeline"
	"github.com/matzehuels/weekgrid/pkg/render"
)

var contentTypes = map[string]string{
	render.FormatJSON: "application/json",
	render.FormatSVG:  "image/svg+xml",
	render.FormatText: "text/plain; charset=utf-8",
	render.FormatCSV:  "text/csv; charset=utf-8",
}

type healthResponse struct {
	Status string         `json:"status"`
	Source string         `json:"source"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status: "ok",
		Source: s.runner.Source.Name(),
		Build:  buildinfo.Current(),
	})
}

func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	table, err := s.runner.Source.Periods(r.Context())
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

type weeksResponse struct {
	SemesterID string   `json:"semesterId"`
	Weeks      []string `json:"weeks"`
}

func (s *Server) handleWeeks(w http.ResponseWriter, r *http.Request) {
	semester := chi.URLParam(r, "semester")
	if err := errors.ValidateIdentifier("semester", semester); err != nil {
		s.writeErr(w, r, err)
		return
	}
	weeks, err := s.runner.Source.Weeks(r.Context(), semester)
	if err != nil {
		s.writeErr(w, r, err)
		return
	}
	if weeks == nil {
		weeks = []string{}
	}
	writeJSON(w, http.StatusOK, weeksResponse{SemesterID: semester, Weeks: weeks})
}

func (s *Server) handleView(view string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		format := q.Get("format")
		if format == "" {
			format = render.FormatJSON
		}

		opts := pipeline.Options{
			SemesterID:  chi.URLParam(r, "semester"),
			WeekID:      chi.URLParam(r, "week"),
			View:        view,
			Formats:     []string{format},
			Grouping:    s.defaults.Grouping,
			OffsetStep:  s.defaults.OffsetStep,
			OpacityStep: s.defaults.OpacityStep,
			FullWidth:   s.defaults.FullWidth,
			Refresh:     q.Get("refresh") == "true",
		}
		if g := q.Get("grouping"); g != "" {
			opts.Grouping = g
		}

		result, err := s.runner.Execute(r.Context(), opts)
		if err != nil {
			s.writeErr(w, r, err)
			return
		}

		cacheState := "miss"
		if result.CacheInfo.RenderHit {
			cacheState = "hit"
		}
		w.Header().Set("Content-Type", contentTypes[format])
		w.Header().Set("X-Cache", cacheState)
		w.Header().Set("ETag", `"`+result.ETags[format]+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(result.Artifacts[format])
	}
}

// =============================================================================
// Responses
// =============================================================================

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

func (s *Server) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFrom(r.Context()), "path", r.URL.Path, "err", err)
		if status == http.StatusInternalServerError {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: msg, RequestID: RequestIDFrom(r.Context())}})
}

// StatusFor maps an error to an HTTP status by its code.
func StatusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeNetwork):
		return http.StatusBadGateway
	case errors.Is(err, errors.ErrCodeTimeout), stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
