package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"signinsheet/internal/domain"
)

type mockEventService struct {
	events []*domain.Event
	err    error
}

func (m *mockEventService) CreateEvent(ctx context.Context, title, date, location, eventType string) (*domain.Event, string, error) {
	if m.err != nil {
		return nil, "", m.err
	}
	event := &domain.Event{ID: "abcdef0123", Title: title, Date: date, Location: location, EventType: eventType, CreatedAt: time.Now()}
	m.events = append(m.events, event)
	return event, "http://test/index.html?event=abcdef0123&mode=form", nil
}

func (m *mockEventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	for _, e := range m.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockEventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.events, nil
}

func (m *mockEventService) QRImage(ctx context.Context, id string) ([]byte, error) {
	return []byte("png"), nil
}

func (m *mockEventService) FormLink(eventID string) string {
	return "http://test/index.html?event=" + eventID + "&mode=form"
}

type mockAdminService struct {
	secret  string
	entries []*domain.Entry
}

func (m *mockAdminService) Authorize(key string) bool { return key == m.secret }

func (m *mockAdminService) List(ctx context.Context, eventID, key string) ([]*domain.Entry, error) {
	if !m.Authorize(key) {
		return nil, domain.ErrUnauthorized
	}
	return m.entries, nil
}

func (m *mockAdminService) Export(ctx context.Context, eventID string, format domain.ExportFormat, key string) ([]byte, string, error) {
	return nil, "", domain.ErrUnauthorized
}

func (m *mockAdminService) Reset(ctx context.Context, eventID, key string) error {
	return domain.ErrUnauthorized
}

func (m *mockAdminService) RegenerateQR(ctx context.Context, eventID, key string) (string, error) {
	return "", domain.ErrUnauthorized
}

type mockLinks struct{}

func (mockLinks) FormLink(eventID string) string {
	return "http://test/index.html?event=" + eventID + "&mode=form"
}

func (mockLinks) AdminLink(eventID, key string) string {
	return "http://test/index.html?event=" + eventID + "&mode=admin&key=" + key
}

func newTestPages(t *testing.T, events *mockEventService, admin *mockAdminService) *Pages {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pages, err := NewPages(logger, events, admin, mockLinks{})
	if err != nil {
		t.Fatalf("NewPages: %v", err)
	}
	return pages
}

func seminarEvent() *domain.Event {
	return &domain.Event{
		ID:        "abcdef0123",
		Title:     "Brandschutzhelfer-Seminar Herbst",
		Date:      "01.09.2026",
		Location:  "Wache Nord",
		EventType: domain.EventTypeSeminar,
		CreatedAt: time.Now(),
	}
}

func TestPages_Index_LandingWithoutEvents(t *testing.T) {
	pages := newTestPages(t, &mockEventService{}, &mockAdminService{secret: "geheim"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	pages.Index(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Noch keine Termine angelegt") {
		t.Fatalf("expected empty-state text, got: %s", w.Body.String())
	}
}

func TestPages_Index_RedirectsToNewestForm(t *testing.T) {
	events := &mockEventService{events: []*domain.Event{seminarEvent()}}
	pages := newTestPages(t, events, &mockAdminService{secret: "geheim"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	pages.Index(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	loc := w.Header().Get("Location")
	if !strings.Contains(loc, "event=abcdef0123") || !strings.Contains(loc, "mode=form") {
		t.Fatalf("unexpected redirect location %q", loc)
	}
}

func TestPages_Index_NoRedirectHonored(t *testing.T) {
	events := &mockEventService{events: []*domain.Event{seminarEvent()}}
	pages := newTestPages(t, events, &mockAdminService{secret: "geheim"})

	req := httptest.NewRequest(http.MethodGet, "/?noredirect=1", nil)
	w := httptest.NewRecorder()
	pages.Index(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Vorhandene Termine") {
		t.Fatal("expected landing page content")
	}
}

func TestPages_Index_FormView(t *testing.T) {
	events := &mockEventService{events: []*domain.Event{seminarEvent()}}
	pages := newTestPages(t, events, &mockAdminService{secret: "geheim"})

	req := httptest.NewRequest(http.MethodGet, "/index.html?event=abcdef0123&mode=form", nil)
	w := httptest.NewRecorder()
	pages.Index(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Anmeldung") || !strings.Contains(body, domain.EventTypeSeminar) {
		t.Fatalf("unexpected form page: %s", body)
	}
	if !strings.Contains(body, "/events/abcdef0123/entries") {
		t.Fatal("form must post to the entries endpoint")
	}
}

func TestPages_Index_FormView_UnknownEvent(t *testing.T) {
	pages := newTestPages(t, &mockEventService{}, &mockAdminService{secret: "geheim"})

	req := httptest.NewRequest(http.MethodGet, "/index.html?event=0123456789&mode=form", nil)
	w := httptest.NewRecorder()
	pages.Index(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestPages_Index_AdminView(t *testing.T) {
	events := &mockEventService{events: []*domain.Event{seminarEvent()}}
	admin := &mockAdminService{
		secret:  "geheim",
		entries: []*domain.Entry{{Name: "Max Mustermann", Company: "Stadtwerke", Date: "27.08.2026", PhotoConsent: domain.ConsentYes}},
	}
	pages := newTestPages(t, events, admin)

	req := httptest.NewRequest(http.MethodGet, "/index.html?mode=admin&key=geheim", nil)
	w := httptest.NewRecorder()
	pages.Index(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Admin-Übersicht") || !strings.Contains(body, "Max Mustermann") {
		t.Fatalf("unexpected admin page: %s", body)
	}
	adminLink := "http://test/index.html?event=abcdef0123&amp;mode=admin&amp;key=geheim"
	if !strings.Contains(body, adminLink) {
		t.Fatalf("expected admin link %q in page: %s", adminLink, body)
	}
}

func TestPages_Index_AdminView_WrongKey(t *testing.T) {
	pages := newTestPages(t, &mockEventService{}, &mockAdminService{secret: "geheim"})

	req := httptest.NewRequest(http.MethodGet, "/index.html?mode=admin&key=falsch", nil)
	w := httptest.NewRecorder()
	pages.Index(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestPages_CreateEvent(t *testing.T) {
	events := &mockEventService{}
	pages := newTestPages(t, events, &mockAdminService{secret: "geheim"})

	form := "title=Seminar&event_type=" + domain.EventTypeSeminar
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	pages.CreateEvent(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.Contains(loc, "created=abcdef0123") {
		t.Fatalf("unexpected redirect location %q", loc)
	}
}
