package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/capture"
	"github.com/starford/dagaz/internal/dateid"
)

// Handler holds API route handlers.
type Handler struct {
	svc *Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// CaptureRequest is the request body for POST /capture.
// Exactly one of Date and Offset selects the target day; both empty means
// today. Date accepts the same short forms as the CLI date picker.
type CaptureRequest struct {
	Date     string `json:"date,omitempty"`
	Offset   *int   `json:"offset,omitempty"`
	Template string `json:"template,omitempty"`
	GoToOnly bool   `json:"goto_only,omitempty"`
}

// ListDailies handles GET /dailies.
func (h *Handler) ListDailies(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListDailies(r.Context())
	if err != nil {
		slog.Error("list dailies failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"dailies": items,
		"total":   len(items),
	})
}

// GetDaily handles GET /dailies/{date}.
func (h *Handler) GetDaily(w http.ResponseWriter, r *http.Request) {
	id, ok := dateParam(w, r)
	if !ok {
		return
	}
	detail, found, err := h.svc.GetDaily(r.Context(), id)
	if err != nil {
		slog.Error("get daily failed", slog.String("date", id.String()), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errorBody("no note for "+id.String()))
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

// Capture handles POST /capture.
func (h *Handler) Capture(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req CaptureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid json"))
		return
	}
	if req.Date != "" && req.Offset != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("date and offset are mutually exclusive"))
		return
	}

	at := time.Now()
	switch {
	case req.Date != "":
		id, err := h.svc.PickDate(req.Date, at)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
			return
		}
		at = id.Time()
	case req.Offset != nil:
		at = at.AddDate(0, 0, *req.Offset)
	}

	result, err := h.svc.Capture(r.Context(), capture.Options{
		Time:        at,
		GoToOnly:    req.GoToOnly,
		TemplateKey: req.Template,
	})
	if err != nil {
		slog.Error("capture failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
		return
	}
	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}

// Navigate handles GET /dailies/{date}/navigate?offset=n.
func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	id, ok := dateParam(w, r)
	if !ok {
		return
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("offset must be a non-zero integer"))
		return
	}

	item, err := h.svc.Navigate(r.Context(), id, offset)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrAlreadyNewest), errors.Is(err, apperr.ErrAlreadyOldest):
			writeJSON(w, http.StatusConflict, errorBody(err.Error()))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
		case errors.Is(err, apperr.ErrNotDailyNote), errors.Is(err, apperr.ErrNoFileAssociated):
			writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		default:
			slog.Error("navigate failed", slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Calendar handles GET /calendar?from=YYYY-MM-DD&to=YYYY-MM-DD.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from, err := dateid.Parse(q.Get("from"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("from: "+err.Error()))
		return
	}
	to, err := dateid.Parse(q.Get("to"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("to: "+err.Error()))
		return
	}
	marks, err := h.svc.CalendarMarks(r.Context(), from, to)
	if err != nil {
		slog.Error("calendar failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"dates": marks})
}

func dateParam(w http.ResponseWriter, r *http.Request) (dateid.Identity, bool) {
	id, err := dateid.Parse(chi.URLParam(r, "date"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return dateid.Identity{}, false
	}
	return id, true
}
