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

package commands

import (
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/sortrc/pkg/log"
	"github.com/walteh/sortrc/pkg/undo"
)

// 🏭 NewUndoCmd creates the undo command. Undo mode bypasses source and
// destination validation entirely: only the log file matters.
func NewUndoCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "undo <log-file>",
		Short: "Undo operations recorded in a previously saved log",
		Long: `undo replays a saved operation log in reverse: moved files return to
their original locations and copied files are deleted from the
destination. Records whose destination no longer exists are skipped.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			console := log.New(cmd.OutOrStdout(), zerolog.InfoLevel)

			count, err := undo.Run(ctx, console, args[0], dryRun)
			if err != nil {
				return err
			}

			if dryRun {
				pterm.Info.Printfln("Would undo %d operations", count)
			} else {
				pterm.Success.Printfln("Undone %d operations", count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be undone without moving files")

	return cmd
}
