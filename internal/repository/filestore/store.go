// Package filestore persists events as flat files under a single data
// directory: one CSV table, one JSON metadata record, and one QR PNG per
// event, named <id>.csv, <id>_meta.json, and <id>_qr.png.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"signinsheet/internal/domain"
)

const metaSuffix = "_meta.json"

// Store implements domain.EventStore on the local filesystem. A keyed mutex
// serializes access to each event's files, so concurrent submissions to the
// same event cannot interleave writes.
type Store struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New returns a Store rooted at dir, creating the directory if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

// lock returns the mutex for one event's files, creating it on first use.
func (s *Store) lock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[id]
	if !ok {
		m = &sync.Mutex{}
		s.locks[id] = m
	}
	return m
}

func (s *Store) entryPath(id string) string {
	return filepath.Join(s.dir, id+".csv")
}

func (s *Store) metaPath(id string) string {
	return filepath.Join(s.dir, id+metaSuffix)
}

func (s *Store) qrPath(id string) string {
	return filepath.Join(s.dir, id+"_qr.png")
}

func (s *Store) LoadMeta(ctx context.Context, id string) (*domain.Event, error) {
	raw, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read meta: %w", err)
	}
	var event domain.Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("decode meta %s: %w", id, err)
	}
	return &event, nil
}

func (s *Store) SaveMeta(ctx context.Context, event *domain.Event) error {
	raw, err := json.MarshalIndent(event, "", "  ")
	if err != nil {
		return fmt.Errorf("encode meta: %w", err)
	}
	if err := os.WriteFile(s.metaPath(event.ID), raw, 0o644); err != nil {
		return fmt.Errorf("write meta: %w", err)
	}
	return nil
}

func (s *Store) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	events := []*domain.Event{}
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, metaSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, metaSuffix)
		event, err := s.LoadMeta(ctx, id)
		if err != nil {
			// A single corrupted record must not take down the
			// whole listing.
			s.logger.Warn("skipping unreadable event meta", "file", name, "err", err)
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})
	return events, nil
}

func (s *Store) SaveQR(ctx context.Context, id string, png []byte) error {
	if err := os.WriteFile(s.qrPath(id), png, 0o644); err != nil {
		return fmt.Errorf("write qr: %w", err)
	}
	return nil
}

func (s *Store) LoadQR(ctx context.Context, id string) ([]byte, error) {
	raw, err := os.ReadFile(s.qrPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read qr: %w", err)
	}
	return raw, nil
}
