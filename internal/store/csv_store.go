package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"ballotbox/internal/logging"

	"go.uber.org/zap"
)

// CSVStore reads and appends the store file directly. The file is opened and
// closed inside every call; nothing is held between calls.
type CSVStore struct {
	path string
	log  *zap.Logger
}

var _ Store = (*CSVStore)(nil)

// NewCSVStore returns a store backed by the file at path. The file is not touched
// until the first Append.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{
		path: path,
		log:  logging.Get(logging.CategoryStore),
	}
}

// Path returns the store file location.
func (s *CSVStore) Path() string { return s.path }

// Append writes rec as one CRLF-terminated row. The row is encoded in full before
// the file is opened and is handed to the kernel in a single write.
func (s *CSVStore) Append(ctx context.Context, rec Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	timer := logging.StartTimer(logging.CategoryStore, "append")
	defer timer.Stop()

	row, err := encodeRow(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	if _, err := f.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("write store: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close store: %w", err)
	}

	s.log.Debug("record appended", zap.String("path", s.path), zap.String("candidate", rec.Candidate))
	return nil
}

// Contains scans rows in order and stops at the first match.
func (s *CSVStore) Contains(ctx context.Context, identifier string) (bool, error) {
	found := false
	err := s.scan(ctx, func(rec Record) bool {
		if rec.Identifier == identifier {
			found = true
			return false
		}
		return true
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// Records returns every row in file order. A missing file yields no records.
func (s *CSVStore) Records(ctx context.Context) ([]Record, error) {
	var recs []Record
	err := s.scan(ctx, func(rec Record) bool {
		recs = append(recs, rec)
		return true
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// scan feeds each row to fn until fn returns false or the file ends.
func (s *CSVStore) scan(ctx context.Context, fn func(Record) bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Debug("store not created yet", zap.String("path", s.path))
		return nil
	}
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read store %s: %w", s.path, err)
		}
		rec := Record{Identifier: row[0]}
		if len(row) > 1 {
			rec.Candidate = row[1]
		}
		if !fn(rec) {
			return nil
		}
	}
}

func encodeRow(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.UseCRLF = true
	if err := w.Write([]string{rec.Identifier, rec.Candidate}); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
