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

package log

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎯 Action is the kind of file operation being reported.
type Action string

const (
	ActionMove    Action = "move"
	ActionCopy    Action = "copy"
	ActionRestore Action = "restore" // undo of a move
	ActionRemove  Action = "remove"  // undo of a copy
)

// 🎯 FileOperation represents one per-file outcome for console display.
type FileOperation struct {
	Source   string // pre-operation path
	Target   string // post-operation path
	Category string // resolved category, empty for undo removals
	Action   Action
	DryRun   bool
	Err      error // set when the file failed
}

// 🎯 Logger renders per-file operation lines and run summaries to the
// console while mirroring structured events into zerolog.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger writing human-readable lines to console.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 📝 formatFileOperation formats one operation line for display.
func (l *Logger) formatFileOperation(op FileOperation) string {
	name := filepath.Base(op.Source)

	if op.Err != nil {
		return fmt.Sprintf("%s %s: %v",
			color.New(color.FgRed).Sprint("✗"),
			name,
			op.Err)
	}

	var verb string
	switch op.Action {
	case ActionMove:
		verb = "Moved"
	case ActionCopy:
		verb = "Copied"
	case ActionRestore:
		verb = "Restored"
	case ActionRemove:
		verb = "Removed copy"
	}

	if op.DryRun {
		would := map[Action]string{
			ActionMove:    "move",
			ActionCopy:    "copy",
			ActionRestore: "restore",
			ActionRemove:  "remove copy",
		}[op.Action]
		return fmt.Sprintf("%s %s %s %s %s",
			color.New(color.Faint).Sprint("[dry run]"),
			color.New(color.FgBlue).Sprint("→"),
			"would "+would,
			op.Source,
			color.New(color.Faint).Sprint("-> "+op.Target))
	}

	switch op.Action {
	case ActionRestore:
		return fmt.Sprintf("%s %s %s",
			color.New(color.FgGreen).Sprint("↩"),
			verb,
			color.New(color.Faint).Sprint(op.Source+" -> "+op.Target))
	case ActionRemove:
		return fmt.Sprintf("%s %s %s",
			color.New(color.FgYellow).Sprint("✗"),
			verb,
			op.Source)
	default:
		return fmt.Sprintf("%s %s %s %s",
			color.New(color.FgGreen).Sprint("✓"),
			verb,
			name,
			color.New(color.FgCyan).Sprint("to "+op.Category+string(filepath.Separator)))
	}
}

// 📝 LogFileOperation logs a single file operation.
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))

	ev := l.zlog.Info()
	if op.Err != nil {
		ev = l.zlog.Error().Err(op.Err)
	}
	ev.Str("source", op.Source).
		Str("target", op.Target).
		Str("category", op.Category).
		Str("action", string(op.Action)).
		Bool("dry_run", op.DryRun).
		Msg("file operation")
}

// 📝 Summary prints the end-of-run report for an organize run.
func (l *Logger) Summary(considered, transferred int, action Action, dryRun bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console)
	if dryRun {
		fmt.Fprintf(l.console, "%s Found %d files that would be organized\n",
			color.New(color.Faint).Sprint("[dry run]"), considered)
	} else {
		verb := "moved"
		if action == ActionCopy {
			verb = "copied"
		}
		fmt.Fprintf(l.console, "%s\n", color.New(color.Bold).Sprint("Organization complete!"))
		fmt.Fprintf(l.console, "Files processed: %d\n", considered)
		fmt.Fprintf(l.console, "Files %s: %d\n", verb, transferred)
	}

	l.zlog.Info().
		Int("considered", considered).
		Int("transferred", transferred).
		Bool("dry_run", dryRun).
		Msg("run complete")
}

// 📝 Header logs a header line.
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("sortrc")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message.
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Warningf logs a formatted warning message.
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.Error(fmt.Sprintf(format, args...))
}
