// Package web renders the HTML surface: a single index.html entry point that
// branches on the event and mode query parameters into the attendee form or
// the admin overview.
package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"signinsheet/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages serves the HTML views. It is a thin renderer over ResolveView; all
// behavior lives in the services.
type Pages struct {
	Logger *slog.Logger
	Events domain.EventService
	Admin  domain.AdminService
	Links  domain.LinkBuilder

	tmpl *template.Template
}

// NewPages parses the embedded templates and returns the page handler.
func NewPages(logger *slog.Logger, events domain.EventService, admin domain.AdminService, links domain.LinkBuilder) (*Pages, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Pages{
		Logger: logger,
		Events: events,
		Admin:  admin,
		Links:  links,
		tmpl:   tmpl,
	}, nil
}

func (p *Pages) render(w http.ResponseWriter, status int, name string, data any) {
	// Render into a buffer first so a template error cannot leave a
	// half-written page behind.
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		p.Logger.Error("render page failed", "template", name, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Index is the single HTML entry point, serving / and /index.html.
func (p *Pages) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	eventID := q.Get("event")
	mode := q.Get("mode")
	key := q.Get("key")

	// Bare visits jump straight to the newest event's form, so the sheet
	// at the desk only ever needs the base URL. noredirect=1 reaches the
	// landing page regardless.
	if eventID == "" && mode == "" && q.Get("noredirect") == "" {
		if events, err := p.Events.ListEvents(r.Context()); err == nil && len(events) > 0 {
			params := url.Values{"event": {events[0].ID}, "mode": {"form"}}
			http.Redirect(w, r, "/index.html?"+params.Encode(), http.StatusSeeOther)
			return
		}
	}

	view := ResolveView(mode, eventID, key, p.Admin.Authorize)
	switch view.Kind {
	case ViewHome:
		p.home(w, r, q.Get("created"))
	case ViewForm:
		p.form(w, r, view.EventID, q.Get("submitted") == "1", q.Get("error"))
	case ViewAdmin:
		p.admin(w, r, key)
	case ViewUnauthorized:
		p.render(w, http.StatusUnauthorized, "unauthorized.html", nil)
	default:
		p.render(w, http.StatusNotFound, "notfound.html", nil)
	}
}

type homeEvent struct {
	Event    *domain.Event
	FormLink string
}

type homeData struct {
	EventTypes []string
	Events     []homeEvent
	CreatedID  string
}

func (p *Pages) home(w http.ResponseWriter, r *http.Request, createdID string) {
	events, err := p.Events.ListEvents(r.Context())
	if err != nil {
		p.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data := homeData{
		EventTypes: domain.EventTypes(),
		CreatedID:  createdID,
	}
	for _, e := range events {
		data.Events = append(data.Events, homeEvent{
			Event:    e,
			FormLink: p.Events.FormLink(e.ID),
		})
	}
	p.render(w, http.StatusOK, "home.html", data)
}

// CreateEvent handles the landing page's create form and redirects back to
// the landing page with the new event highlighted.
func (p *Pages) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	event, _, err := p.Events.CreateEvent(r.Context(),
		r.PostFormValue("title"),
		r.PostFormValue("date"),
		r.PostFormValue("location"),
		r.PostFormValue("event_type"),
	)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		p.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	params := url.Values{"noredirect": {"1"}, "created": {event.ID}}
	http.Redirect(w, r, "/index.html?"+params.Encode(), http.StatusSeeOther)
}

type formData struct {
	Event      *domain.Event
	Consents   []string
	Submitted  bool
	ErrorField string
}

func (p *Pages) form(w http.ResponseWriter, r *http.Request, eventID string, submitted bool, errorField string) {
	event, err := p.Events.GetEvent(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			p.render(w, http.StatusNotFound, "notfound.html", nil)
			return
		}
		p.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	p.render(w, http.StatusOK, "form.html", formData{
		Event:      event,
		Consents:   []string{domain.ConsentYes, domain.ConsentNo},
		Submitted:  submitted,
		ErrorField: errorField,
	})
}

type adminEvent struct {
	Event     *domain.Event
	Entries   []*domain.Entry
	FormLink  string
	AdminLink string
}

type adminData struct {
	Events []adminEvent
	Key    string
}

// admin renders the overview over all events with their entries, mirroring
// the organizer's printed clipboard.
func (p *Pages) admin(w http.ResponseWriter, r *http.Request, key string) {
	events, err := p.Events.ListEvents(r.Context())
	if err != nil {
		p.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	data := adminData{Key: key}
	for _, e := range events {
		entries, err := p.Admin.List(r.Context(), e.ID, key)
		if err != nil {
			p.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "event", e.ID, "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		data.Events = append(data.Events, adminEvent{
			Event:     e,
			Entries:   entries,
			FormLink:  p.Events.FormLink(e.ID),
			AdminLink: p.Links.AdminLink(e.ID, key),
		})
	}
	p.render(w, http.StatusOK, "admin.html", data)
}
