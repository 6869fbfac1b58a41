package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/ukaji3/imgsheet-go/internal/observability"
	"github.com/ukaji3/imgsheet-go/internal/ui"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/manifest"
	"github.com/ukaji3/imgsheet-go/pkg/imgsheet/models"
)

// ExportIDHeader carries the export ID on export responses.
const ExportIDHeader = "X-Export-ID"

// statusClientClosedRequest is reported when the client went away mid-export.
const statusClientClosedRequest = 499

// ExportRequest is the body of POST /api/export.
type ExportRequest struct {
	Settings *manifest.SettingsOverride `json:"settings,omitempty"`
	Tabs     []models.Tab               `json:"tabs"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type themeResponse struct {
	Theme ui.Theme `json:"theme"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExport streams the finished document as an attachment. Nothing is
// written before the document is complete, so failures still get a JSON
// error body.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerFromContext(ctx)

	var req ExportRequest
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.fail(ctx, w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.fail(ctx, w, http.StatusBadRequest, fmt.Sprintf("decoding request: %v", err))
		return
	}

	settings := req.Settings.Apply(s.cfg.Export)
	opts := s.opts
	opts.Logger = logger
	opts.ExportID = uuid.NewString()

	result, err := imgsheet.Export(ctx, req.Tabs, settings, &httpSink{w: w, exportID: opts.ExportID}, opts)
	var exportErr *imgsheet.ExportError
	switch {
	case errors.As(err, &exportErr) && exportErr.Component == imgsheet.ComponentDeliver:
		// The response is already under way.
		s.notify(ctx, err.Error(), ui.ToastError)
		return
	case err != nil:
		s.fail(ctx, w, exportStatus(err), err.Error())
		return
	}

	s.notify(ctx, fmt.Sprintf("Exported %d images to %s", result.Images, result.FileName), ui.ToastSuccess)
}

func (s *Server) handleListToasts(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.board.Active())
}

func (s *Server) handleDismissToast(w http.ResponseWriter, r *http.Request) {
	if !s.board.Dismiss(chi.URLParam(r, "id")) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "toast not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetTheme(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, themeResponse{Theme: s.prefs.Theme()})
}

func (s *Server) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	theme, err := s.prefs.Toggle(r.Context())
	if err != nil {
		s.fail(r.Context(), w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, themeResponse{Theme: theme})
}

// fail writes a JSON error and raises an error toast.
func (s *Server) fail(ctx context.Context, w http.ResponseWriter, status int, message string) {
	s.notify(ctx, message, ui.ToastError)
	writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) notify(ctx context.Context, message string, kind ui.ToastKind) {
	if s.board != nil {
		s.board.Notify(ctx, message, kind)
	}
}

// exportStatus maps export failures caused by the request to 400.
func exportStatus(err error) int {
	switch {
	case errors.Is(err, imgsheet.ErrInvalidSettings),
		errors.Is(err, imgsheet.ErrMalformedDataURL),
		errors.Is(err, imgsheet.ErrUnreadableImage):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().Warn("writing response failed", slog.String("error", err.Error()))
	}
}

// httpSink delivers the document as the response body.
type httpSink struct {
	w        http.ResponseWriter
	exportID string
}

func (s *httpSink) Deliver(_ context.Context, name, contentType string, r io.Reader) (string, error) {
	h := s.w.Header()
	h.Set("Content-Type", contentType)
	// Non-ASCII names are sent as an RFC 2231 filename* parameter.
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	h.Set(ExportIDHeader, s.exportID)
	s.w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(s.w, r); err != nil {
		return "", fmt.Errorf("writing response: %w", err)
	}
	return name, nil
}
