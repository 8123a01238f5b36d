package filestore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"signinsheet/internal/domain"
)

// entryHeader is the CSV header row of every event table, in column order.
var entryHeader = []string{"event_type", "timestamp", "date", "name", "company", "photo_consent"}

func entryRecord(e *domain.Entry) []string {
	return []string{
		e.EventType,
		e.Timestamp.Format(time.RFC3339),
		e.Date,
		e.Name,
		e.Company,
		e.PhotoConsent,
	}
}

func (s *Store) AppendEntry(ctx context.Context, id string, entry *domain.Entry) error {
	m := s.lock(id)
	m.Lock()
	defer m.Unlock()

	path := s.entryPath(id)
	// An empty file needs the header just like a missing one, or the
	// first entry would later be read back as the header row.
	needHeader := true
	if info, statErr := os.Stat(path); statErr == nil {
		needHeader = info.Size() == 0
	} else if !os.IsNotExist(statErr) {
		return fmt.Errorf("stat entry table: %w", statErr)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open entry table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(entryHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(entryRecord(entry)); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush entry table: %w", err)
	}
	return nil
}

func (s *Store) ReadEntries(ctx context.Context, id string) ([]*domain.Entry, error) {
	m := s.lock(id)
	m.Lock()
	defer m.Unlock()

	return s.readEntriesLocked(id)
}

// readEntriesLocked reads the table without taking the event lock. Callers
// must hold it.
func (s *Store) readEntriesLocked(id string) ([]*domain.Entry, error) {
	f, err := os.Open(s.entryPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return []*domain.Entry{}, nil
		}
		return nil, fmt.Errorf("open entry table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	entries := []*domain.Entry{}
	line := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A corrupted row must not cut off everything after it.
			line++
			s.logger.Warn("skipping unparsable row", "event", id, "line", line, "err", err)
			continue
		}
		line++
		if line == 1 {
			// Header row.
			continue
		}
		entry, ok := s.parseRecord(id, line, record)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseRecord converts one CSV row to an Entry. Malformed rows are reported
// and skipped; they never fail the whole read.
func (s *Store) parseRecord(id string, line int, record []string) (*domain.Entry, bool) {
	if len(record) != len(entryHeader) {
		s.logger.Warn("skipping malformed row", "event", id, "line", line, "fields", len(record))
		return nil, false
	}
	ts, err := time.Parse(time.RFC3339, record[1])
	if err != nil {
		s.logger.Warn("skipping row with bad timestamp", "event", id, "line", line, "err", err)
		return nil, false
	}
	return &domain.Entry{
		EventType:    record[0],
		Timestamp:    ts,
		Date:         record[2],
		Name:         record[3],
		Company:      record[4],
		PhotoConsent: record[5],
	}, true
}

func (s *Store) ResetEntries(ctx context.Context, id string) error {
	m := s.lock(id)
	m.Lock()
	defer m.Unlock()

	f, err := os.OpenFile(s.entryPath(id), os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("truncate entry table: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(entryHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush entry table: %w", err)
	}
	return nil
}
