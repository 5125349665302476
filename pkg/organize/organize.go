// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package organize

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/walteh/sortrc/pkg/category"
	"github.com/walteh/sortrc/pkg/filter"
	"github.com/walteh/sortrc/pkg/ledger"
	"github.com/walteh/sortrc/pkg/log"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNotFound means the source directory does not exist.
	ErrNotFound = errors.New("source directory does not exist")
	// ErrNotADirectory means the source path is not a directory.
	ErrNotADirectory = errors.New("source is not a directory")
)

// 🔧 Options enumerates every recognized run option.
type Options struct {
	// DryRun reports intended actions without mutating the filesystem
	// or the ledger.
	DryRun bool
	// Recursive enumerates the whole source tree instead of only its
	// immediate children.
	Recursive bool
	// Copy duplicates files instead of relocating them.
	Copy bool

	// Filter predicates, passed through to the filter package.
	Pattern        string
	ExcludePattern string
	IgnoreGlobs    []string
	MinSize        *int64
	MaxSize        *int64
}

// FileError is one candidate's failure, captured without aborting the run.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// 📊 Result summarizes a run. Considered counts files that passed
// filtering; Transferred counts files whose filesystem operation completed
// and was recorded.
type Result struct {
	Considered  int
	Transferred int
	Errors      []FileError
}

// 🎮 Engine orchestrates one organize run.
type Engine struct {
	table   category.Table
	ledger  *ledger.Ledger
	console *log.Logger
}

// 🏭 New creates an engine. The table is immutable for the engine's
// lifetime; the ledger is exclusively owned by the run that appends to it.
func New(table category.Table, led *ledger.Ledger, console *log.Logger) *Engine {
	return &Engine{
		table:   table,
		ledger:  led,
		console: console,
	}
}

// 🏃 Run organizes files from source into categorized subdirectories of
// dest. Structural precondition failures (missing or non-directory
// source) abort before any file is touched; per-file failures are
// collected into the result and never stop the batch.
func (e *Engine) Run(ctx context.Context, source, dest string, opts Options) (Result, error) {
	logger := zerolog.Ctx(ctx)

	src, err := filepath.Abs(source)
	if err != nil {
		return Result{}, errors.Errorf("resolving source path: %w", err)
	}
	dst, err := filepath.Abs(dest)
	if err != nil {
		return Result{}, errors.Errorf("resolving destination path: %w", err)
	}

	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{}, errors.Errorf("%w: %s", ErrNotFound, source)
		}
		return Result{}, errors.Errorf("statting source directory: %w", err)
	}
	if !info.IsDir() {
		return Result{}, errors.Errorf("%w: %s", ErrNotADirectory, source)
	}

	// The candidate set is frozen before the first mutation.
	files, err := enumerate(ctx, src, opts.Recursive)
	if err != nil {
		return Result{}, err
	}
	logger.Info().Int("count", len(files)).Str("source", src).Msg("found files to process")

	flt := filter.New(ctx, filter.Options{
		Pattern:        opts.Pattern,
		ExcludePattern: opts.ExcludePattern,
		IgnoreGlobs:    opts.IgnoreGlobs,
		MinSize:        opts.MinSize,
		MaxSize:        opts.MaxSize,
	})

	var res Result
	for _, path := range files {
		rel, err := filepath.Rel(src, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		cand := filter.Candidate{
			Path:    path,
			RelPath: filepath.ToSlash(rel),
			Name:    filepath.Base(path),
		}
		if !flt.Passes(ctx, cand) {
			logger.Debug().Str("path", path).Msg("filtered out")
			continue
		}
		res.Considered++

		if err := e.transfer(ctx, path, dst, opts, &res); err != nil {
			logger.Error().Err(err).Str("path", path).Msg("error processing file")
			e.console.LogFileOperation(ctx, log.FileOperation{
				Source: path,
				Action: actionFor(opts),
				Err:    err,
			})
			res.Errors = append(res.Errors, FileError{Path: path, Err: err})
		}
	}

	return res, nil
}

// transfer handles one candidate: classify, pick a collision-free target,
// then move or copy and record. The ledger append happens strictly after
// the filesystem operation succeeded.
func (e *Engine) transfer(ctx context.Context, path, dst string, opts Options, res *Result) error {
	logger := zerolog.Ctx(ctx)

	cat := e.table.Resolve(filepath.Ext(path))
	targetDir := filepath.Join(dst, cat)
	target, err := UniquePath(filepath.Join(targetDir, filepath.Base(path)))
	if err != nil {
		return errors.Errorf("resolving target name: %w", err)
	}

	op := ledger.OpMove
	if opts.Copy {
		op = ledger.OpCopy
	}

	if opts.DryRun {
		e.console.LogFileOperation(ctx, log.FileOperation{
			Source:   path,
			Target:   target,
			Category: cat,
			Action:   actionFor(opts),
			DryRun:   true,
		})
		logger.Debug().Str("source", path).Str("target", target).Msg("dry run, not mutating")
		return nil
	}

	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return errors.Errorf("creating category directory: %w", err)
	}

	if opts.Copy {
		err = CopyFile(path, target)
	} else {
		err = MoveFile(path, target)
	}
	if err != nil {
		return err
	}

	e.ledger.Append(ledger.Record{
		Timestamp:   time.Now(),
		Operation:   op,
		Source:      path,
		Destination: target,
		Category:    cat,
	})
	res.Transferred++

	e.console.LogFileOperation(ctx, log.FileOperation{
		Source:   path,
		Target:   target,
		Category: cat,
		Action:   actionFor(opts),
	})
	logger.Info().Str("source", path).Str("target", target).Str("category", cat).Msg(string(op))
	return nil
}

func actionFor(opts Options) log.Action {
	if opts.Copy {
		return log.ActionCopy
	}
	return log.ActionMove
}

// enumerate lists regular files under root. Unreadable subtrees during a
// recursive walk are skipped with a warning rather than aborting, to
// match the per-file isolation contract.
func enumerate(ctx context.Context, root string, recursive bool) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, errors.Errorf("reading source directory: %w", err)
		}
		var files []string
		for _, entry := range entries {
			if entry.Type().IsRegular() {
				files = append(files, filepath.Join(root, entry.Name()))
			}
		}
		return files, nil
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("skipping unreadable path")
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, errors.Errorf("walking source tree: %w", walkErr)
	}
	return files, nil
}
