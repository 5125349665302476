// Package filter decides which candidate files an organize run touches.
package filter

import (
	"context"
	"os"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
)

// Options enumerates every recognized filter predicate. Zero values mean
// "no constraint".
type Options struct {
	// Pattern is a case-insensitive regex the base name must match
	// (substring search, not full match).
	Pattern string
	// ExcludePattern rejects files whose base name matches it.
	ExcludePattern string
	// IgnoreGlobs are doublestar patterns matched against the path
	// relative to the source root.
	IgnoreGlobs []string
	// MinSize and MaxSize are inclusive byte bounds; nil is unbounded.
	MinSize *int64
	MaxSize *int64
}

// Candidate is one file under consideration.
type Candidate struct {
	Path    string // absolute path
	RelPath string // slash-separated path relative to the source root
	Name    string // base name
}

// Filter evaluates candidates against the compiled predicates. All
// predicates combine with logical AND.
type Filter struct {
	include     *regexp.Regexp
	exclude     *regexp.Regexp
	ignoreGlobs []string
	minSize     *int64
	maxSize     *int64
}

// New compiles the filter. Malformed patterns are deliberately fail-open:
// a bad include or exclude regex is dropped with a warning instead of
// aborting the whole run on one bad flag.
func New(ctx context.Context, opts Options) *Filter {
	logger := zerolog.Ctx(ctx)

	f := &Filter{
		ignoreGlobs: opts.IgnoreGlobs,
		minSize:     opts.MinSize,
		maxSize:     opts.MaxSize,
	}

	if opts.Pattern != "" {
		re, err := regexp.Compile("(?i)" + opts.Pattern)
		if err != nil {
			logger.Warn().Err(err).Str("pattern", opts.Pattern).
				Msg("invalid include pattern, matching all files")
		} else {
			f.include = re
		}
	}

	if opts.ExcludePattern != "" {
		re, err := regexp.Compile("(?i)" + opts.ExcludePattern)
		if err != nil {
			logger.Warn().Err(err).Str("pattern", opts.ExcludePattern).
				Msg("invalid exclude pattern, excluding nothing")
		} else {
			f.exclude = re
		}
	}

	return f
}

// Passes reports whether the candidate survives every predicate.
func (f *Filter) Passes(ctx context.Context, c Candidate) bool {
	if f.include != nil && !f.include.MatchString(c.Name) {
		return false
	}
	if f.exclude != nil && f.exclude.MatchString(c.Name) {
		return false
	}
	if f.ignored(ctx, c.RelPath) {
		return false
	}
	return f.sizeOK(ctx, c.Path)
}

func (f *Filter) ignored(ctx context.Context, relPath string) bool {
	for _, pattern := range f.ignoreGlobs {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("pattern", pattern).
				Msg("invalid ignore glob, skipping it")
			continue
		}
		if matched {
			return true
		}
	}
	return false
}

// sizeOK checks the inclusive size bounds. A file whose size cannot be
// determined passes: a transient stat error must not silently drop it.
func (f *Filter) sizeOK(ctx context.Context, path string) bool {
	if f.minSize == nil && f.maxSize == nil {
		return true
	}

	info, err := os.Stat(path)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("path", path).
			Msg("cannot determine file size, letting it pass")
		return true
	}

	size := info.Size()
	if f.minSize != nil && size < *f.minSize {
		return false
	}
	if f.maxSize != nil && size > *f.maxSize {
		return false
	}
	return true
}
