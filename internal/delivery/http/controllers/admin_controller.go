package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"signinsheet/internal/delivery/http/helpers"
	"signinsheet/internal/domain"
)

type AdminController struct {
	Logger  *slog.Logger
	Service domain.AdminService
}

func NewAdminController(logger *slog.Logger, svc domain.AdminService) *AdminController {
	return &AdminController{
		Logger:  logger,
		Service: svc,
	}
}

// writeAdminError maps admin service errors onto the response envelope.
func (c *AdminController) writeAdminError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrUnauthorized) {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "wrong or missing admin key")
		return
	}
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
		return
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
}

// ListEntriesSuccessResponse is the success response envelope for GET /events/{eventID}/entries (200).
type ListEntriesSuccessResponse struct {
	Data  []*domain.Entry   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEntries godoc
// @Summary List an event's entries
// @Description Returns all entries of the event in submission order. Requires the admin key.
// @Tags admin
// @Produce json
// @Param eventID path string true "Event ID (10 hex chars)"
// @Param key query string true "Admin key"
// @Success 200 {object} controllers.ListEntriesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/entries [get]
func (c *AdminController) ListEntries(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	entries, err := c.Service.List(r.Context(), eventID, r.URL.Query().Get("key"))
	if err != nil {
		c.writeAdminError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, entries)
}

// contentTypes per export format.
var exportContentTypes = map[domain.ExportFormat]string{
	domain.FormatCSV:  "text/csv; charset=utf-8",
	domain.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// ExportEntries godoc
// @Summary Export an event's entries
// @Description Streams the entry list as a CSV or XLSX download. Requires the admin key.
// @Tags admin
// @Produce octet-stream
// @Param eventID path string true "Event ID (10 hex chars)"
// @Param key query string true "Admin key"
// @Param format query string false "Export format: csv (default) or xlsx"
// @Success 200 {file} file "Tabular payload"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/export [get]
func (c *AdminController) ExportEntries(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	format := domain.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = domain.FormatCSV
	}
	contentType, ok := exportContentTypes[format]
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, fmt.Sprintf("unsupported export format %q", format))
		return
	}

	payload, filename, err := c.Service.Export(r.Context(), eventID, format, r.URL.Query().Get("key"))
	if err != nil {
		c.writeAdminError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// ResetEntriesSuccessResponse is the success response envelope for POST /events/{eventID}/reset (200).
type ResetEntriesSuccessResponse struct {
	Data  map[string]string `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ResetEntries godoc
// @Summary Reset an event's entries
// @Description Irrevocably deletes all entries of the event, keeping the event itself. Requires the admin key. Form posts are redirected back to the admin page.
// @Tags admin
// @Produce json
// @Param eventID path string true "Event ID (10 hex chars)"
// @Param key query string true "Admin key"
// @Success 200 {object} controllers.ResetEntriesSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/reset [post]
func (c *AdminController) ResetEntries(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	key := r.URL.Query().Get("key")
	if err := c.Service.Reset(r.Context(), eventID, key); err != nil {
		c.writeAdminError(w, r, err)
		return
	}
	if !helpers.WantsJSON(r) && r.PostFormValue("redirect") == "admin" {
		c.redirectToAdmin(w, r, eventID, key)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "reset"})
}

// RegenerateQRSuccessResponse is the success response envelope for POST /events/{eventID}/qr/regenerate (200).
type RegenerateQRSuccessResponse struct {
	Data  map[string]string `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// RegenerateQR godoc
// @Summary Re-render an event's QR code
// @Description Renders and stores a fresh QR code for the event's form link. Requires the admin key.
// @Tags admin
// @Produce json
// @Param eventID path string true "Event ID (10 hex chars)"
// @Param key query string true "Admin key"
// @Success 200 {object} controllers.RegenerateQRSuccessResponse "data.form_link contains the encoded URL"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/qr/regenerate [post]
func (c *AdminController) RegenerateQR(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	key := r.URL.Query().Get("key")
	link, err := c.Service.RegenerateQR(r.Context(), eventID, key)
	if err != nil {
		c.writeAdminError(w, r, err)
		return
	}
	if !helpers.WantsJSON(r) && r.PostFormValue("redirect") == "admin" {
		c.redirectToAdmin(w, r, eventID, key)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"form_link": link})
}

func (c *AdminController) redirectToAdmin(w http.ResponseWriter, r *http.Request, eventID, key string) {
	params := url.Values{"event": {eventID}, "mode": {"admin"}, "key": {key}}
	http.Redirect(w, r, "/index.html?"+params.Encode(), http.StatusSeeOther)
}
