package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"signinsheet/internal/delivery/http/helpers"
	"signinsheet/internal/domain"
)

type mockAdminService struct {
	secret  string
	entries []*domain.Entry
	payload []byte
	err     error

	resetCalled bool
}

func (m *mockAdminService) Authorize(key string) bool { return key == m.secret }

func (m *mockAdminService) List(ctx context.Context, eventID, key string) ([]*domain.Entry, error) {
	if !m.Authorize(key) {
		return nil, domain.ErrUnauthorized
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

func (m *mockAdminService) Export(ctx context.Context, eventID string, format domain.ExportFormat, key string) ([]byte, string, error) {
	if !m.Authorize(key) {
		return nil, "", domain.ErrUnauthorized
	}
	if m.err != nil {
		return nil, "", m.err
	}
	return m.payload, "teilnehmer_" + eventID + "." + string(format), nil
}

func (m *mockAdminService) Reset(ctx context.Context, eventID, key string) error {
	if !m.Authorize(key) {
		return domain.ErrUnauthorized
	}
	if m.err != nil {
		return m.err
	}
	m.resetCalled = true
	return nil
}

func (m *mockAdminService) RegenerateQR(ctx context.Context, eventID, key string) (string, error) {
	if !m.Authorize(key) {
		return "", domain.ErrUnauthorized
	}
	return "http://test/index.html?event=" + eventID + "&mode=form", m.err
}

func TestAdminController_ListEntries_Unauthorized(t *testing.T) {
	svc := &mockAdminService{secret: "geheim"}
	ctrl := NewAdminController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/abcdef0123/entries?key=falsch", nil)
	req.SetPathValue("eventID", "abcdef0123")
	w := httptest.NewRecorder()

	ctrl.ListEntries(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAdminController_ListEntries_Success(t *testing.T) {
	svc := &mockAdminService{
		secret:  "geheim",
		entries: []*domain.Entry{{Name: "Max", Company: "Firma", PhotoConsent: domain.ConsentYes}},
	}
	ctrl := NewAdminController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/abcdef0123/entries?key=geheim", nil)
	req.SetPathValue("eventID", "abcdef0123")
	w := httptest.NewRecorder()

	ctrl.ListEntries(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestAdminController_Export_CSV(t *testing.T) {
	svc := &mockAdminService{secret: "geheim", payload: []byte("a,b,c\n")}
	ctrl := NewAdminController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/abcdef0123/export?key=geheim", nil)
	req.SetPathValue("eventID", "abcdef0123")
	w := httptest.NewRecorder()

	ctrl.ExportEntries(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="teilnehmer_abcdef0123.csv"` {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if w.Body.String() != "a,b,c\n" {
		t.Fatalf("unexpected body %q", w.Body.String())
	}
}

func TestAdminController_Export_UnsupportedFormat(t *testing.T) {
	svc := &mockAdminService{secret: "geheim"}
	ctrl := NewAdminController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/abcdef0123/export?key=geheim&format=pdf", nil)
	req.SetPathValue("eventID", "abcdef0123")
	w := httptest.NewRecorder()

	ctrl.ExportEntries(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestAdminController_Reset(t *testing.T) {
	svc := &mockAdminService{secret: "geheim"}
	ctrl := NewAdminController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/events/abcdef0123/reset?key=geheim", nil)
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("eventID", "abcdef0123")
	w := httptest.NewRecorder()

	ctrl.ResetEntries(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !svc.resetCalled {
		t.Fatal("expected reset to be called")
	}
}

func TestAdminController_Reset_WrongKey(t *testing.T) {
	svc := &mockAdminService{secret: "geheim"}
	ctrl := NewAdminController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/events/abcdef0123/reset?key=falsch", nil)
	req.SetPathValue("eventID", "abcdef0123")
	w := httptest.NewRecorder()

	ctrl.ResetEntries(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if svc.resetCalled {
		t.Fatal("reset must not run with a wrong key")
	}
}

func TestAdminController_RegenerateQR(t *testing.T) {
	svc := &mockAdminService{secret: "geheim"}
	ctrl := NewAdminController(testLogger(), svc)

	req := httptest.NewRequest(http.MethodPost, "/events/abcdef0123/qr/regenerate?key=geheim", nil)
	req.Header.Set("Content-Type", "application/json")
	req.SetPathValue("eventID", "abcdef0123")
	w := httptest.NewRecorder()

	ctrl.RegenerateQR(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}
