// Package output writes assembled measurement point rows.
package output

import (
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"golang.org/x/crypto/blake2b"

	"mpx/internal/export"
)

// Stdout is the path that selects standard output.
const Stdout = "-"

// Header is the first line of every CSV output.
var Header = []string{"Device", "Description", "PointID", "Quantity"}

var _ export.RowSink = (*CSVSink)(nil)

// CSVSink writes rows as CSV, optionally gzip-compressed, and hashes the
// bytes it produces.
//
// A sink from Create writes to a temporary file beside its path. Commit
// moves it into place; Close without Commit discards it, leaving any
// previous file at path untouched.
type CSVSink struct {
	dest      io.Writer
	file      *os.File
	path      string
	gz        *gzip.Writer
	csv       *csv.Writer
	hash      hash.Hash
	closed    bool
	committed bool
}

// NewCSVSink wraps w. When compress is true the stream is gzipped.
func NewCSVSink(w io.Writer, compress bool) *CSVSink {
	h, err := blake2b.New256(nil)
	if err != nil {
		// only fails for an oversized key
		panic(err)
	}
	s := &CSVSink{dest: w, hash: h}

	var out io.Writer = io.MultiWriter(w, h)
	if compress {
		s.gz = gzip.NewWriter(out)
		out = s.gz
	}
	s.csv = csv.NewWriter(out)
	return s
}

// Create prepares a sink for path. Stdout writes to standard output. A path
// ending in .gz is always compressed.
func Create(path string, compress bool) (*CSVSink, error) {
	if path == "" || path == Stdout {
		return NewCSVSink(os.Stdout, compress), nil
	}
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		compress = true
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	s := NewCSVSink(f, compress)
	s.file = f
	s.path = path
	return s, nil
}

// WriteRows writes the header and rows. It may be called once.
func (s *CSVSink) WriteRows(rows []export.FinalRow) error {
	if s.closed {
		return errors.New("csv sink is closed")
	}
	if err := s.csv.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := s.csv.Write([]string{r.Device, r.Description, r.PointID, r.Quantity}); err != nil {
			return err
		}
	}
	s.csv.Flush()
	return s.csv.Error()
}

// Commit finishes the output and, for a sink from Create, renames the
// temporary file to its path.
func (s *CSVSink) Commit() error {
	if s.closed {
		return errors.New("csv sink is closed")
	}
	if err := s.finish(); err != nil {
		s.discard()
		return err
	}
	if s.file == nil {
		s.committed = true
		return nil
	}
	if err := os.Chmod(s.file.Name(), 0644); err != nil {
		s.discard()
		return fmt.Errorf("failed to set output permissions: %w", err)
	}
	if err := os.Rename(s.file.Name(), s.path); err != nil {
		s.discard()
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	s.committed = true
	return nil
}

// Close releases the sink. A file sink that was not committed is removed.
func (s *CSVSink) Close() error {
	if s.closed {
		return nil
	}
	if s.file != nil && !s.committed {
		err := s.finish()
		s.discard()
		return err
	}
	return s.finish()
}

func (s *CSVSink) discard() {
	if s.file != nil && !s.committed {
		_ = os.Remove(s.file.Name())
	}
}

// finish flushes compression and closes the file, if Create opened one.
func (s *CSVSink) finish() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.csv.Flush()
	err := s.csv.Error()
	if s.gz != nil {
		if gzErr := s.gz.Close(); err == nil {
			err = gzErr
		}
	}
	if s.file != nil {
		if fErr := s.file.Close(); err == nil {
			err = fErr
		}
	}
	return err
}

// Checksum returns the hex BLAKE2b-256 digest of the bytes written so far,
// after compression. Call it after Commit for the final value.
func (s *CSVSink) Checksum() string {
	return hex.EncodeToString(s.hash.Sum(nil))
}
