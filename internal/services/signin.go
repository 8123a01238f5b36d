package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"signinsheet/internal/domain"
)

type signInService struct {
	store domain.EventStore
}

// NewSignInService creates the form handler backed by the given store.
func NewSignInService(store domain.EventStore) domain.SignInService {
	return &signInService{store: store}
}

func (s *signInService) Submit(ctx context.Context, eventID, name, company, consent string) (*domain.Entry, error) {
	event, err := s.store.LoadMeta(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load meta: %w", err)
	}

	name = strings.TrimSpace(name)
	company = strings.TrimSpace(company)
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Reason: "is required"}
	}
	if company == "" {
		return nil, &domain.ValidationError{Field: "company", Reason: "is required"}
	}
	if consent != domain.ConsentYes && consent != domain.ConsentNo {
		return nil, &domain.ValidationError{Field: "photo_consent", Reason: fmt.Sprintf("must be %q or %q", domain.ConsentYes, domain.ConsentNo)}
	}

	now := time.Now().Truncate(time.Second)
	entry := &domain.Entry{
		EventType:    event.EventType,
		Timestamp:    now,
		Date:         now.Format(domain.EntryDateLayout),
		Name:         name,
		Company:      company,
		PhotoConsent: consent,
	}
	if err := s.store.AppendEntry(ctx, eventID, entry); err != nil {
		return nil, fmt.Errorf("append entry: %w", err)
	}
	return entry, nil
}
