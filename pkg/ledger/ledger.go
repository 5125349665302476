// Package ledger records executed transfers and persists them as the
// undo log.
package ledger

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// SchemaVersion identifies the persisted log format. Logs written without
// a schema_version field are accepted and treated as this version.
const SchemaVersion = "1.0.0"

// Operation is the kind of filesystem action a record captures.
type Operation string

const (
	OpMove Operation = "move"
	OpCopy Operation = "copy"
)

// Record is one executed transfer. Records are created exactly once per
// successful non-dry-run transfer and are immutable afterward.
type Record struct {
	Timestamp   time.Time `json:"timestamp"`
	Operation   Operation `json:"operation"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Category    string    `json:"category"`
}

// SessionInfo describes the run that produced the log.
type SessionInfo struct {
	Timestamp       time.Time `json:"timestamp"`
	TotalOperations int       `json:"total_operations"`
}

// Ledger is the ordered, append-only sequence of records for one run.
type Ledger struct {
	SchemaVersion string      `json:"schema_version,omitempty"`
	SessionInfo   SessionInfo `json:"session_info"`
	Operations    []Record    `json:"operations"`
}

var (
	// ErrNotFound means the undo log file does not exist.
	ErrNotFound = errors.New("undo log not found")
	// ErrCorrupt means the undo log exists but is not a valid ledger.
	ErrCorrupt = errors.New("undo log is corrupt")
)

// New returns an empty ledger for a fresh run.
func New() *Ledger {
	return &Ledger{SchemaVersion: SchemaVersion}
}

// Append adds a record. Call only after the record's filesystem operation
// has fully succeeded, so an interrupted run never logs work it did not do.
func (l *Ledger) Append(r Record) {
	l.Operations = append(l.Operations, r)
}

// Len returns the number of recorded operations.
func (l *Ledger) Len() int {
	return len(l.Operations)
}

// Save persists the ledger to path. An empty ledger is not worth writing:
// Save returns cleanly without touching the filesystem. The write is
// guarded by an exclusive <path>.lock file and performed via a temp file
// rename, so a failed call never leaves a half-written log behind.
func (l *Ledger) Save(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx)

	if len(l.Operations) == 0 {
		logger.Debug().Str("path", path).Msg("no operations recorded, skipping log save")
		return nil
	}

	lockPath := path + ".lock"
	lock, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		return errors.Errorf("creating lock file: %w", err)
	}
	defer os.Remove(lockPath)
	defer lock.Close()

	l.SchemaVersion = SchemaVersion
	l.SessionInfo = SessionInfo{
		Timestamp:       time.Now(),
		TotalOperations: len(l.Operations),
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return errors.Errorf("marshaling ledger: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return errors.Errorf("writing temporary ledger file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Errorf("renaming ledger file into place: %w", err)
	}

	logger.Info().Str("path", path).Int("operations", len(l.Operations)).Msg("undo log saved")
	return nil
}

// Load reads a previously persisted ledger. A missing file is ErrNotFound;
// unparseable JSON or records missing required fields are ErrCorrupt.
func Load(ctx context.Context, path string) (*Ledger, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading undo log")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, errors.Errorf("reading undo log: %w", err)
	}

	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, errors.Errorf("%w: %v", ErrCorrupt, err)
	}
	if l.SchemaVersion == "" {
		l.SchemaVersion = SchemaVersion
	}

	for i, rec := range l.Operations {
		if rec.Source == "" || rec.Destination == "" {
			return nil, errors.Errorf("%w: operation %d is missing source or destination", ErrCorrupt, i)
		}
		if rec.Operation != OpMove && rec.Operation != OpCopy {
			return nil, errors.Errorf("%w: operation %d has unknown kind %q", ErrCorrupt, i, rec.Operation)
		}
	}

	return &l, nil
}
