package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"signinsheet/internal/domain"
)

type adminService struct {
	store    domain.EventStore
	links    domain.LinkBuilder
	renderer domain.QRRenderer
	secret   string
}

// NewAdminService creates an AdminService gated by the given shared secret.
// The secret is injected so tests can supply arbitrary values.
func NewAdminService(store domain.EventStore, links domain.LinkBuilder, renderer domain.QRRenderer, secret string) domain.AdminService {
	return &adminService{
		store:    store,
		links:    links,
		renderer: renderer,
		secret:   secret,
	}
}

// Authorize compares key to the configured secret. Exact match only: no
// trimming, case-sensitive.
func (s *adminService) Authorize(key string) bool {
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.secret)) == 1
}

// requireEvent authorizes the key and resolves the event, in that order.
func (s *adminService) requireEvent(ctx context.Context, eventID, key string) (*domain.Event, error) {
	if !s.Authorize(key) {
		return nil, domain.ErrUnauthorized
	}
	event, err := s.store.LoadMeta(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load meta: %w", err)
	}
	return event, nil
}

func (s *adminService) List(ctx context.Context, eventID, key string) ([]*domain.Entry, error) {
	if _, err := s.requireEvent(ctx, eventID, key); err != nil {
		return nil, err
	}
	entries, err := s.store.ReadEntries(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	if entries == nil {
		entries = []*domain.Entry{}
	}
	return entries, nil
}

func (s *adminService) Export(ctx context.Context, eventID string, format domain.ExportFormat, key string) ([]byte, string, error) {
	if _, err := s.requireEvent(ctx, eventID, key); err != nil {
		return nil, "", err
	}
	payload, err := s.store.Export(ctx, eventID, format)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("teilnehmer_%s.%s", eventID, format)
	return payload, filename, nil
}

func (s *adminService) Reset(ctx context.Context, eventID, key string) error {
	if _, err := s.requireEvent(ctx, eventID, key); err != nil {
		return err
	}
	if err := s.store.ResetEntries(ctx, eventID); err != nil {
		return fmt.Errorf("reset entries: %w", err)
	}
	return nil
}

func (s *adminService) RegenerateQR(ctx context.Context, eventID, key string) (string, error) {
	if _, err := s.requireEvent(ctx, eventID, key); err != nil {
		return "", err
	}
	link := s.links.FormLink(eventID)
	png, err := s.renderer.RenderPNG(link)
	if err != nil {
		return "", fmt.Errorf("render qr: %w", err)
	}
	if err := s.store.SaveQR(ctx, eventID, png); err != nil {
		return "", fmt.Errorf("save qr: %w", err)
	}
	return link, nil
}
