package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"fpm/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// ErrNotArray is returned when the history file parses but is not a JSON
// array, such as a literal null.
var ErrNotArray = errors.New("history is not a JSON array")

// ErrOutOfRange is returned by Get for an id outside [1, Len].
var ErrOutOfRange = errors.New("history id out of range")

// Log is the append-only action history backed by a JSON file.
//
// Every Append rewrites the whole file through a temp file and rename, so
// the file on disk is always a complete document. No lock is taken: two
// processes appending at once can lose an entry.
type Log struct {
	path   string
	now    func() time.Time
	logger *log.Logger
}

// New returns a Log stored at path. The file is created on first Append.
func New(path string) *Log {
	return &Log{
		path:   path,
		now:    time.Now,
		logger: logging.Get("history"),
	}
}

// Path returns the backing file path.
func (l *Log) Path() string {
	return l.path
}

// Append records a successful operation.
func (l *Log) Append(action Action, items []string) error {
	entries, err := l.ReadAll()
	if err != nil {
		return err
	}

	entry := newEntryAt(action, items, l.now())
	entries = append(entries, entry)

	if err := l.write(entries); err != nil {
		return err
	}

	l.logger.Debug("appended entry", "action", entry.Action, "items", len(entry.Items), "index", len(entries))
	return nil
}

// ReadAll returns every entry in append order. A missing file is an empty
// log; a file that exists must hold a JSON array, even when it is empty.
func (l *Log) ReadAll() ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read history file %s: %w", l.path, err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", l.path, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("failed to parse history file %s: %w", l.path, ErrNotArray)
	}

	return entries, nil
}

// Len returns the number of recorded entries.
func (l *Log) Len() (int, error) {
	entries, err := l.ReadAll()
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Get returns the entry with the given 1-based id.
func (l *Log) Get(id int) (Entry, error) {
	entries, err := l.ReadAll()
	if err != nil {
		return Entry{}, err
	}
	if id < 1 || id > len(entries) {
		return Entry{}, fmt.Errorf("%w: %d (valid range 1-%d)", ErrOutOfRange, id, len(entries))
	}
	return entries[id-1], nil
}

// Print writes the most recent limit entries to w, newest first.
func (l *Log) Print(w io.Writer, limit int) error {
	entries, err := l.ReadAll()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No history found")
		return nil
	}

	if limit < 0 {
		limit = 0
	}
	start := len(entries) - limit
	if start < 0 {
		start = 0
	}
	recent := entries[start:]

	fmt.Fprintf(w, "\nRecent package management history (last %d entries):\n", len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		e := recent[i]
		fmt.Fprintf(w, "  [%s] %s: %s\n", e.FormatTime(), e.Action, e.JoinItems())
	}

	return nil
}

// List writes every entry to w, oldest first, with the id rollback --id
// expects.
func (l *Log) List(w io.Writer) error {
	entries, err := l.ReadAll()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No history found")
		return nil
	}

	fmt.Fprintln(w, "\nHistory (most recent last):")
	for i, e := range entries {
		fmt.Fprintf(w, "  [%d] %s (%s) - %s %s\n",
			i+1, e.FormatTime(), humanize.Time(e.Timestamp), e.Action, e.JoinItems())
	}

	return nil
}

// write replaces the log file with entries.
func (l *Log) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write history file %s: %w", l.path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write history file %s: %w", l.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync history file %s: %w", l.path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write history file %s: %w", l.path, err)
	}

	if err := os.Rename(tmpPath, l.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to replace history file %s: %w", l.path, err)
	}

	return nil
}
