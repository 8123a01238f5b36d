package domain

import (
	"context"
	"time"
)

// Photo consent answers. The form offers exactly these two values.
const (
	ConsentYes = "Ja"
	ConsentNo  = "Nein"
)

// EntryDateLayout is the day format stored with each entry (dd.mm.yyyy).
const EntryDateLayout = "02.01.2006"

// Entry is one attendee's submitted row for an event. Entries are append-only;
// they are never individually edited or deleted, only bulk-reset.
type Entry struct {
	EventType    string    `json:"event_type"`
	Timestamp    time.Time `json:"timestamp"`
	Date         string    `json:"date"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	PhotoConsent string    `json:"photo_consent"`
}

// SignInService is the attendee-facing form handler.
type SignInService interface {
	// Submit validates the fields, stamps the entry with the current day,
	// and appends it to the event's table. Resubmission creates a
	// duplicate row by design.
	Submit(ctx context.Context, eventID, name, company, consent string) (*Entry, error)
}

// AdminService exposes the shared-secret gated operations over an event's
// entries. Every method verifies the key first and performs no side effect
// on mismatch.
type AdminService interface {
	// Authorize reports whether key matches the configured admin secret
	// exactly (case-sensitive, no trimming).
	Authorize(key string) bool
	List(ctx context.Context, eventID, key string) ([]*Entry, error)
	// Export returns the payload and a download filename.
	Export(ctx context.Context, eventID string, format ExportFormat, key string) ([]byte, string, error)
	Reset(ctx context.Context, eventID, key string) error
	// RegenerateQR re-renders and stores the event's QR code and returns
	// the form link it encodes.
	RegenerateQR(ctx context.Context, eventID, key string) (string, error)
}
