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

// Package commands wires the sortrc CLI surface to the organize and undo
// engines.
package commands

import (
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sortrc/pkg/config"
	"github.com/walteh/sortrc/pkg/ledger"
	"github.com/walteh/sortrc/pkg/log"
	"github.com/walteh/sortrc/pkg/organize"
	"gitlab.com/tozd/go/errors"
)

// 🔧 rootFlags holds every recognized organize option.
type rootFlags struct {
	dest       string
	dryRun     bool
	recursive  bool
	copyFiles  bool
	pattern    string
	exclude    string
	ignore     []string
	minSize    int64
	maxSize    int64
	configFile string
	saveLog    string
	debug      bool
}

// 🏭 NewRootCmd creates the sortrc root command.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "sortrc [source]",
		Short: "Organize files into categorized folders by extension",
		Long: `sortrc classifies the files in a source directory by extension and
moves (or copies) them into categorized subdirectories of a destination,
recording every operation in an undo log.`,
		Example: `  sortrc ~/Downloads --dest ~/organized
  sortrc ~/Downloads --dry-run --recursive
  sortrc ~/Documents --pattern "\.pdf$" --copy
  sortrc ~/Downloads --save-log operations.json
  sortrc undo operations.json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// Attach a context logger so every package logs through the
			// same zerolog pipeline.
			level := zerolog.InfoLevel
			if flags.debug {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger().Level(level)
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("source directory is required (see 'sortrc undo' for undoing a previous run)")
			}
			return runOrganize(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVar(&flags.dest, "dest", "organized", "destination directory")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show what would be done without moving files")
	cmd.Flags().BoolVar(&flags.copyFiles, "copy", false, "copy files instead of moving them")
	cmd.Flags().BoolVarP(&flags.recursive, "recursive", "r", false, "process subdirectories recursively")
	cmd.Flags().StringVar(&flags.pattern, "pattern", "", "only process files matching this regex pattern")
	cmd.Flags().StringVar(&flags.exclude, "exclude", "", "exclude files matching this regex pattern")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns for files to ignore (repeatable)")
	cmd.Flags().Int64Var(&flags.minSize, "min-size", 0, "minimum file size in bytes")
	cmd.Flags().Int64Var(&flags.maxSize, "max-size", 0, "maximum file size in bytes")
	cmd.Flags().StringVar(&flags.configFile, "config", "", "custom category configuration (.json, .yaml or .hcl)")
	cmd.Flags().StringVar(&flags.saveLog, "save-log", "", "save undo log to the given file")
	cmd.PersistentFlags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")

	cmd.AddCommand(NewUndoCmd())

	return cmd
}

func runOrganize(cmd *cobra.Command, source string, flags *rootFlags) error {
	ctx := cmd.Context()

	console := log.New(cmd.OutOrStdout(), consoleLevel(flags.debug))
	table := config.LoadOrDefault(ctx, flags.configFile)
	led := ledger.New()
	engine := organize.New(table, led, console)

	opts := organize.Options{
		DryRun:         flags.dryRun,
		Recursive:      flags.recursive,
		Copy:           flags.copyFiles,
		Pattern:        flags.pattern,
		ExcludePattern: flags.exclude,
		IgnoreGlobs:    flags.ignore,
	}
	// Distinguish "0 bytes" from "not set".
	if cmd.Flags().Changed("min-size") {
		opts.MinSize = &flags.minSize
	}
	if cmd.Flags().Changed("max-size") {
		opts.MaxSize = &flags.maxSize
	}

	res, err := engine.Run(ctx, source, flags.dest, opts)
	if err != nil {
		return err
	}

	console.Summary(res.Considered, res.Transferred, actionFor(flags.copyFiles), flags.dryRun)
	if len(res.Errors) > 0 {
		// Per-file failures are reported but do not fail the batch.
		pterm.Warning.Printfln("%d files could not be processed, see errors above", len(res.Errors))
	}

	if flags.saveLog != "" && !flags.dryRun && res.Transferred > 0 {
		if err := led.Save(ctx, flags.saveLog); err != nil {
			return errors.Errorf("saving undo log: %w", err)
		}
		pterm.Success.Printfln("Undo log saved to %s", flags.saveLog)
	}

	return nil
}

func actionFor(copyFiles bool) log.Action {
	if copyFiles {
		return log.ActionCopy
	}
	return log.ActionMove
}

func consoleLevel(debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}
