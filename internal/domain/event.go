package domain

import (
	"context"
	"time"
)

// Event types offered when creating an event. Entries inherit the type of
// their event.
const (
	EventTypeSeminar  = "Brandschutzhelfer-Seminar"
	EventTypeTraining = "Feuerlöschtraining"
)

// EventTypes lists the allowed event categories in display order.
func EventTypes() []string {
	return []string{EventTypeSeminar, EventTypeTraining}
}

// IsValidEventType reports whether t is one of the allowed categories.
func IsValidEventType(t string) bool {
	return t == EventTypeSeminar || t == EventTypeTraining
}

// Event represents one organizer-created sign-in session. Events are created
// once and never mutated; resetting an event clears its entries only.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Location  string    `json:"location"`
	EventType string    `json:"event_type"`
	CreatedAt time.Time `json:"created_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the
// service on create.
func NewEvent(title, date, location, eventType string, createdAt time.Time) *Event {
	return &Event{
		Title:     title,
		Date:      date,
		Location:  location,
		EventType: eventType,
		CreatedAt: createdAt,
	}
}

// ExportFormat selects the tabular export encoding.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
)

// EventStore defines per-event persistence: one metadata record, one ordered
// entry table, and one QR image per event.
type EventStore interface {
	LoadMeta(ctx context.Context, id string) (*Event, error)
	// SaveMeta overwrites the metadata record for the event. Idempotent,
	// no merge.
	SaveMeta(ctx context.Context, event *Event) error
	// ListEvents returns all known events, newest first. Unreadable
	// metadata records are skipped.
	ListEvents(ctx context.Context) ([]*Event, error)

	// AppendEntry appends one row to the event's table, creating the table
	// with a header row if absent.
	AppendEntry(ctx context.Context, id string, entry *Entry) error
	// ReadEntries returns the event's entries in submission order. A
	// missing table yields an empty slice, not an error.
	ReadEntries(ctx context.Context, id string) ([]*Entry, error)
	// ResetEntries deletes all rows, keeping the header. Metadata is
	// untouched.
	ResetEntries(ctx context.Context, id string) error
	// Export produces a byte payload of the event's entries in the
	// requested format.
	Export(ctx context.Context, id string, format ExportFormat) ([]byte, error)

	SaveQR(ctx context.Context, id string, png []byte) error
	LoadQR(ctx context.Context, id string) ([]byte, error)
}

// LinkBuilder derives the public URLs encoded in QR codes and shown on the
// admin page.
type LinkBuilder interface {
	// FormLink returns the attendee-facing form URL for the event.
	FormLink(eventID string) string
	// AdminLink returns the admin URL for the event, including the key.
	AdminLink(eventID, key string) string
}

// QRRenderer renders a QR code PNG encoding the given content.
type QRRenderer interface {
	RenderPNG(content string) ([]byte, error)
}

// EventService defines organizer-facing operations.
type EventService interface {
	// CreateEvent creates the event, materializes its empty entry table,
	// and renders its QR code. Returns the event and its form link.
	CreateEvent(ctx context.Context, title, date, location, eventType string) (*Event, string, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	// QRImage returns the stored QR PNG for the event.
	QRImage(ctx context.Context, id string) ([]byte, error)
	// FormLink returns the attendee-facing form URL for the event.
	FormLink(eventID string) string
}
