package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"signinsheet/internal/domain"
)

// eventIDLength is the length of generated event identifiers. Ten hex
// characters give 16^10 possible ids, which is collision-negligible for the
// handful of events this system manages.
const eventIDLength = 10

// newEventID generates a short random event identifier.
func newEventID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:eventIDLength]
}

type eventService struct {
	store    domain.EventStore
	links    domain.LinkBuilder
	renderer domain.QRRenderer
}

// NewEventService creates an EventService backed by the given store, link
// builder, and QR renderer.
func NewEventService(store domain.EventStore, links domain.LinkBuilder, renderer domain.QRRenderer) domain.EventService {
	return &eventService{
		store:    store,
		links:    links,
		renderer: renderer,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, title, date, location, eventType string) (*domain.Event, string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, "", &domain.ValidationError{Field: "title", Reason: "is required"}
	}
	if !domain.IsValidEventType(eventType) {
		return nil, "", &domain.ValidationError{Field: "event_type", Reason: fmt.Sprintf("must be one of %s", strings.Join(domain.EventTypes(), ", "))}
	}

	event := domain.NewEvent(title, strings.TrimSpace(date), strings.TrimSpace(location), eventType, time.Now().Truncate(time.Second))
	event.ID = newEventID()

	// Materialize an empty entry table so the admin view has a header to
	// show before the first submission.
	if err := s.store.ResetEntries(ctx, event.ID); err != nil {
		return nil, "", fmt.Errorf("create entry table: %w", err)
	}

	link := s.links.FormLink(event.ID)
	png, err := s.renderer.RenderPNG(link)
	if err != nil {
		return nil, "", fmt.Errorf("render qr: %w", err)
	}
	if err := s.store.SaveQR(ctx, event.ID, png); err != nil {
		return nil, "", fmt.Errorf("save qr: %w", err)
	}

	if err := s.store.SaveMeta(ctx, event); err != nil {
		return nil, "", fmt.Errorf("save meta: %w", err)
	}
	return event, link, nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.store.LoadMeta(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load meta: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.store.ListEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) QRImage(ctx context.Context, id string) ([]byte, error) {
	png, err := s.store.LoadQR(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load qr: %w", err)
	}
	return png, nil
}

func (s *eventService) FormLink(eventID string) string {
	return s.links.FormLink(eventID)
}
