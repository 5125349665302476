// Package undo replays a persisted operation ledger in reverse,
// restoring moved files and deleting copies.
package undo

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/sortrc/pkg/ledger"
	"github.com/walteh/sortrc/pkg/log"
	"github.com/walteh/sortrc/pkg/organize"
	"gitlab.com/tozd/go/errors"
)

// Run loads the ledger at logPath and undoes its records, last transfer
// first. Later transfers may have created directories or claimed names
// that earlier undos must not assume still exist, hence the reverse
// order. Records whose destination is already gone are skipped silently;
// a record that fails to undo is reported and does not stop the rest.
// Returns the number of operations undone (in dry-run mode, the number
// that would be).
func Run(ctx context.Context, console *log.Logger, logPath string, dryRun bool) (int, error) {
	logger := zerolog.Ctx(ctx)

	led, err := ledger.Load(ctx, logPath)
	if err != nil {
		return 0, err
	}

	undone := 0
	ops := led.Operations
	for i := len(ops) - 1; i >= 0; i-- {
		rec := ops[i]

		if _, err := os.Lstat(rec.Destination); err != nil {
			// Already moved or deleted by the user; nothing to undo.
			logger.Debug().Str("destination", rec.Destination).Msg("destination no longer exists, skipping record")
			continue
		}

		op := operationFor(rec)

		if dryRun {
			preview := op
			preview.DryRun = true
			console.LogFileOperation(ctx, preview)
			undone++
			continue
		}

		if err := undoRecord(rec); err != nil {
			logger.Error().Err(err).
				Str("destination", rec.Destination).
				Str("source", rec.Source).
				Msg("error undoing operation")
			failed := op
			failed.Err = err
			console.LogFileOperation(ctx, failed)
			continue
		}

		console.LogFileOperation(ctx, op)
		undone++
	}

	if !dryRun {
		logger.Info().Int("undone", undone).Msg("undo complete")
	}
	return undone, nil
}

// undoRecord reverses a single transfer. A move is undone by moving the
// destination back to the source path, recreating the source's parent
// directory if it vanished. A copy never touched the source, so undoing
// it just deletes the destination.
func undoRecord(rec ledger.Record) error {
	switch rec.Operation {
	case ledger.OpMove:
		if err := os.MkdirAll(filepath.Dir(rec.Source), 0755); err != nil {
			return errors.Errorf("recreating source directory: %w", err)
		}
		return organize.MoveFile(rec.Destination, rec.Source)
	case ledger.OpCopy:
		if err := os.Remove(rec.Destination); err != nil {
			return errors.Errorf("removing copied file: %w", err)
		}
		return nil
	default:
		// Load validated the kind already; kept for safety.
		return errors.Errorf("unknown operation kind %q", rec.Operation)
	}
}

func operationFor(rec ledger.Record) log.FileOperation {
	if rec.Operation == ledger.OpCopy {
		return log.FileOperation{
			Source: rec.Destination,
			Action: log.ActionRemove,
		}
	}
	return log.FileOperation{
		Source: rec.Destination,
		Target: rec.Source,
		Action: log.ActionRestore,
	}
}
