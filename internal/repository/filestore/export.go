package filestore

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"

	"signinsheet/internal/domain"
)

// exportSheet is the worksheet name of XLSX exports.
const exportSheet = "Teilnehmer"

// Export renders the event's current entries in the requested format. The
// payload is derived on demand; nothing is cached.
func (s *Store) Export(ctx context.Context, id string, format domain.ExportFormat) ([]byte, error) {
	m := s.lock(id)
	m.Lock()
	defer m.Unlock()

	entries, err := s.readEntriesLocked(id)
	if err != nil {
		return nil, err
	}

	switch format {
	case domain.FormatCSV:
		return exportCSV(entries)
	case domain.FormatXLSX:
		return exportXLSX(entries)
	default:
		return nil, &domain.ValidationError{Field: "format", Reason: fmt.Sprintf("unsupported export format %q", format)}
	}
}

func exportCSV(entries []*domain.Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(entryHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for _, e := range entries {
		if err := w.Write(entryRecord(e)); err != nil {
			return nil, fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func exportXLSX(entries []*domain.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(f, 1, entryHeader); err != nil {
		return nil, err
	}
	for i, e := range entries {
		if err := writeRow(f, i+2, entryRecord(e)); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}
