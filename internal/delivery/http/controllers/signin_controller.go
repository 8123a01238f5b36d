package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"signinsheet/internal/delivery/http/helpers"
	"signinsheet/internal/domain"
)

type SignInController struct {
	Logger  *slog.Logger
	Service domain.SignInService
}

func NewSignInController(logger *slog.Logger, svc domain.SignInService) *SignInController {
	return &SignInController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitEntryRequest is the request body for POST /events/{eventID}/entries.
type SubmitEntryRequest struct {
	Name         string `json:"name"`
	Company      string `json:"company"`
	PhotoConsent string `json:"photo_consent"`
}

// Validate implements helpers.Validator. The service re-checks these rules;
// validating here keeps API error messages field-precise.
func (s SubmitEntryRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(s.Company) == "" {
		errs = append(errs, "company is required")
	}
	if s.PhotoConsent != domain.ConsentYes && s.PhotoConsent != domain.ConsentNo {
		errs = append(errs, fmt.Sprintf("photo_consent must be %q or %q", domain.ConsentYes, domain.ConsentNo))
	}
	return errs
}

// SubmitEntrySuccessResponse is the success response envelope for POST /events/{eventID}/entries (201).
type SubmitEntrySuccessResponse struct {
	Data  *domain.Entry     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SubmitEntry godoc
// @Summary Submit a sign-in entry
// @Description Appends one entry to the event's list. Accepts a JSON body or an HTML form post; form posts are redirected back to the form page. Resubmission creates a duplicate row by design.
// @Tags entries
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (10 hex chars)"
// @Param entry body SubmitEntryRequest true "Entry fields"
// @Success 201 {object} controllers.SubmitEntrySuccessResponse "data contains the stored entry"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/entries [post]
func (c *SignInController) SubmitEntry(w http.ResponseWriter, r *http.Request) {
	if helpers.WantsJSON(r) {
		c.submitJSON(w, r)
		return
	}
	c.submitForm(w, r)
}

func (c *SignInController) submitJSON(w http.ResponseWriter, r *http.Request) {
	eventID, ok := pathEventID(w, r)
	if !ok {
		return
	}
	var req SubmitEntryRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	entry, err := c.Service.Submit(r.Context(), eventID, req.Name, req.Company, req.PhotoConsent)
	if err != nil {
		c.writeSubmitError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, entry)
}

// submitForm handles posts from the HTML form page. Errors and the success
// confirmation are rendered by the form page itself, so the browser is sent
// back there with a status query parameter.
func (c *SignInController) submitForm(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if !eventIDRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid eventID")
		return
	}
	if err := r.ParseForm(); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}

	back := func(params url.Values) {
		params.Set("event", eventID)
		params.Set("mode", "form")
		http.Redirect(w, r, "/index.html?"+params.Encode(), http.StatusSeeOther)
	}

	_, err := c.Service.Submit(r.Context(), eventID, r.PostFormValue("name"), r.PostFormValue("company"), r.PostFormValue("photo_consent"))
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			back(url.Values{"error": {verr.Field}})
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	back(url.Values{"submitted": {"1"}})
}

func (c *SignInController) writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
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
