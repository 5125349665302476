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

package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/sortrc/pkg/category"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "writing config fixture")
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		content     string
		wantErr     bool
		errContains string
		check       func(t *testing.T, table category.Table)
	}{
		{
			name: "valid_json",
			file: "types.json",
			content: `{
  "Scans": [".tif", ".tiff"],
  "Text": [".txt", ".md"]
}`,
			check: func(t *testing.T, table category.Table) {
				require.Len(t, table, 2)
				assert.Equal(t, "Scans", table[0].Name, "first category should follow document order")
				assert.Equal(t, "Text", table[1].Name)
				assert.Equal(t, "Scans", table.Resolve(".tiff"))
				assert.Equal(t, category.Other, table.Resolve(".jpg"), "default mappings are replaced wholesale")
			},
		},
		{
			name: "valid_yaml",
			file: "types.yaml",
			content: `
Music:
  - .mp3
  - .flac
Books:
  - .epub
`,
			check: func(t *testing.T, table category.Table) {
				require.Len(t, table, 2)
				assert.Equal(t, "Music", table[0].Name)
				assert.Equal(t, "Books", table.Resolve("epub"))
			},
		},
		{
			name: "valid_hcl",
			file: "types.hcl",
			content: `
category "Images" {
  extensions = [".jpg", ".png"]
}

category "Raw" {
  extensions = [".cr2"]
}
`,
			check: func(t *testing.T, table category.Table) {
				require.Len(t, table, 2)
				assert.Equal(t, "Raw", table.Resolve(".CR2"))
			},
		},
		{
			name:    "duplicate_extension_first_wins",
			file:    "types.json",
			content: `{"A": [".x"], "B": [".x"]}`,
			check: func(t *testing.T, table category.Table) {
				assert.Equal(t, "A", table.Resolve(".x"))
			},
		},
		{
			name:        "invalid_json",
			file:        "types.json",
			content:     `{not json}`,
			wantErr:     true,
			errContains: "parsing JSON",
		},
		{
			name:        "json_array_top_level",
			file:        "types.json",
			content:     `[".jpg"]`,
			wantErr:     true,
			errContains: "must be an object",
		},
		{
			name:        "yaml_scalar_top_level",
			file:        "types.yaml",
			content:     `just a string`,
			wantErr:     true,
			errContains: "must be a mapping",
		},
		{
			name:        "empty_category",
			file:        "types.json",
			content:     `{"Empty": []}`,
			wantErr:     true,
			errContains: "has no extensions",
		},
		{
			name:        "unsupported_extension",
			file:        "types.toml",
			content:     `whatever`,
			wantErr:     true,
			errContains: "unsupported config file extension",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestLogger(t)
			path := writeConfig(t, tt.file, tt.content)

			table, err := Load(ctx, path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			tt.check(t, table)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	ctx := setupTestLogger(t)
	_, err := Load(ctx, filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("empty_path_uses_builtin", func(t *testing.T) {
		ctx := setupTestLogger(t)
		table := LoadOrDefault(ctx, "")
		assert.Equal(t, "Images", table.Resolve(".jpg"))
	})

	t.Run("missing_file_falls_back", func(t *testing.T) {
		ctx := setupTestLogger(t)
		table := LoadOrDefault(ctx, filepath.Join(t.TempDir(), "nope.json"))
		assert.Equal(t, "Documents", table.Resolve(".pdf"))
	})

	t.Run("bad_file_falls_back", func(t *testing.T) {
		ctx := setupTestLogger(t)
		path := writeConfig(t, "types.json", `{broken`)
		table := LoadOrDefault(ctx, path)
		assert.Equal(t, "Audio", table.Resolve(".mp3"))
	})

	t.Run("valid_file_replaces_builtin", func(t *testing.T) {
		ctx := setupTestLogger(t)
		path := writeConfig(t, "types.json", `{"Pics": [".jpg"]}`)
		table := LoadOrDefault(ctx, path)
		assert.Equal(t, "Pics", table.Resolve(".jpg"))
		assert.Equal(t, category.Other, table.Resolve(".pdf"))
	})
}
