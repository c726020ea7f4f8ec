package journal

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// FileExt is the extension of journal files.
const FileExt = ".jsonl.zst"

// maxLine bounds a single journal line.
const maxLine = 1 << 20

// FileWriter appends entries as zstd-compressed JSON lines. Each writer
// session produces one zstd frame, so reopening a file appends a new frame.
type FileWriter struct {
	path string

	mu  sync.Mutex
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// OpenFileWriter opens or creates the journal at path for appending.
//
// Postcondition: Returns a writer ready for Append or a non-nil error.
func OpenFileWriter(path string) (*FileWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("creating zstd encoder: %w", err)
	}
	return &FileWriter{
		path: path,
		f:    f,
		enc:  enc,
		w:    bufio.NewWriterSize(enc, 64*1024),
	}, nil
}

// Path returns the journal file path.
func (w *FileWriter) Path() string { return w.path }

// Append writes e as one line and flushes it into the compressor.
func (w *FileWriter) Append(e Entry) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return os.ErrClosed
	}
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

// Sync pushes buffered compressed data to the file.
func (w *FileWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.enc == nil {
		return os.ErrClosed
	}
	if err := w.enc.Flush(); err != nil {
		return err
	}
	return w.f.Sync()
}

// Close finishes the zstd frame and closes the file. Close is idempotent.
func (w *FileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.w == nil {
		return nil
	}
	var errs []error
	errs = append(errs, w.w.Flush())
	errs = append(errs, w.enc.Close())
	errs = append(errs, w.f.Close())
	w.w, w.enc, w.f = nil, nil, nil
	return errors.Join(errs...)
}

// Reader decodes entries from a zstd-compressed JSONL stream.
type Reader struct {
	dec  *zstd.Decoder
	scan *bufio.Scanner
	line int
}

// NewReader wraps r.
func NewReader(r io.Reader) (*Reader, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("creating zstd decoder: %w", err)
	}
	scan := bufio.NewScanner(dec)
	scan.Buffer(make([]byte, 0, 64*1024), maxLine)
	return &Reader{dec: dec, scan: scan}, nil
}

// Next returns the next entry, or io.EOF after the last one.
func (r *Reader) Next() (Entry, error) {
	for r.scan.Scan() {
		r.line++
		b := r.scan.Bytes()
		if len(b) == 0 {
			continue
		}
		var e Entry
		if err := json.Unmarshal(b, &e); err != nil {
			return Entry{}, fmt.Errorf("journal line %d: %w", r.line, err)
		}
		return e, nil
	}
	if err := r.scan.Err(); err != nil {
		return Entry{}, fmt.Errorf("journal line %d: %w", r.line+1, err)
	}
	return Entry{}, io.EOF
}

// Close releases the decoder.
func (r *Reader) Close() { r.dec.Close() }

// ReadFile returns every entry in the journal at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	defer f.Close()

	r, err := NewReader(f)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var out []Entry
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
}
