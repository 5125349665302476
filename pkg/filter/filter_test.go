package filter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.TestWriter{T: t}).With().Timestamp().Logger()
	return logger.WithContext(context.Background())
}

func writeBytes(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644), "writing fixture")
	return path
}

func candidate(path string) Candidate {
	return Candidate{Path: path, RelPath: filepath.Base(path), Name: filepath.Base(path)}
}

func TestPasses_Patterns(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		file string
		want bool
	}{
		{name: "no_filters_passes", opts: Options{}, file: "anything.txt", want: true},
		{name: "include_match", opts: Options{Pattern: `\.pdf$`}, file: "report.pdf", want: true},
		{name: "include_no_match", opts: Options{Pattern: `\.pdf$`}, file: "report.txt", want: false},
		{name: "include_case_insensitive", opts: Options{Pattern: "report"}, file: "REPORT.PDF", want: true},
		{name: "include_substring_search", opts: Options{Pattern: "port"}, file: "report.pdf", want: true},
		{name: "exclude_match", opts: Options{ExcludePattern: "draft"}, file: "draft-notes.txt", want: false},
		{name: "exclude_no_match", opts: Options{ExcludePattern: "draft"}, file: "final-notes.txt", want: true},
		{name: "exclude_case_insensitive", opts: Options{ExcludePattern: "draft"}, file: "DRAFT.txt", want: false},
		{name: "include_and_exclude", opts: Options{Pattern: `\.txt$`, ExcludePattern: "tmp"}, file: "tmp-file.txt", want: false},
		{name: "malformed_include_fails_open", opts: Options{Pattern: "[unclosed"}, file: "whatever.txt", want: true},
		{name: "malformed_exclude_excludes_nothing", opts: Options{ExcludePattern: "[unclosed"}, file: "whatever.txt", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := setupTestLogger(t)
			f := New(ctx, tt.opts)
			assert.Equal(t, tt.want, f.Passes(ctx, candidate(tt.file)))
		})
	}
}

func TestPasses_SizeBounds(t *testing.T) {
	ctx := setupTestLogger(t)
	dir := t.TempDir()
	path := writeBytes(t, dir, "blob.bin", 1000)

	bound := func(n int64) *int64 { return &n }

	tests := []struct {
		name string
		opts Options
		want bool
	}{
		{name: "exactly_min_passes", opts: Options{MinSize: bound(1000)}, want: true},
		{name: "one_under_min_rejected", opts: Options{MinSize: bound(1001)}, want: false},
		{name: "exactly_max_passes", opts: Options{MaxSize: bound(1000)}, want: true},
		{name: "one_over_max_rejected", opts: Options{MaxSize: bound(999)}, want: false},
		{name: "inside_range_passes", opts: Options{MinSize: bound(500), MaxSize: bound(1500)}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(ctx, tt.opts)
			assert.Equal(t, tt.want, f.Passes(ctx, candidate(path)))
		})
	}
}

func TestPasses_StatErrorFailsOpen(t *testing.T) {
	ctx := setupTestLogger(t)
	var min int64 = 1
	f := New(ctx, Options{MinSize: &min})

	// Vanished file: size cannot be determined, so it passes.
	gone := candidate(filepath.Join(t.TempDir(), "vanished.txt"))
	assert.True(t, f.Passes(ctx, gone))
}

func TestPasses_IgnoreGlobs(t *testing.T) {
	ctx := setupTestLogger(t)

	tests := []struct {
		name  string
		globs []string
		rel   string
		want  bool
	}{
		{name: "glob_match_rejected", globs: []string{"*.tmp"}, rel: "scratch.tmp", want: false},
		{name: "glob_no_match_passes", globs: []string{"*.tmp"}, rel: "keep.txt", want: true},
		{name: "doublestar_matches_subdirs", globs: []string{"**/node_modules/**"}, rel: "web/node_modules/x/index.js", want: false},
		{name: "malformed_glob_skipped", globs: []string{"[broken"}, rel: "keep.txt", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(ctx, Options{IgnoreGlobs: tt.globs})
			c := Candidate{Path: tt.rel, RelPath: tt.rel, Name: filepath.Base(tt.rel)}
			assert.Equal(t, tt.want, f.Passes(ctx, c))
		})
	}
}
