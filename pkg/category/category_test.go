package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want string
	}{
		{name: "known_extension", ext: ".jpg", want: "Images"},
		{name: "uppercase_extension", ext: ".JPG", want: "Images"},
		{name: "mixed_case_extension", ext: ".Pdf", want: "Documents"},
		{name: "missing_leading_dot", ext: "mp3", want: "Audio"},
		{name: "unknown_extension", ext: ".xyz", want: Other},
		{name: "empty_extension", ext: "", want: Other},
		{name: "whitespace_only", ext: "  ", want: Other},
		{name: "archive_double_extension", ext: ".tar.gz", want: "Archives"},
	}

	table := DefaultTable()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Resolve(tt.ext))
		})
	}
}

func TestResolve_AllDefaultExtensions(t *testing.T) {
	// Every extension in the default table resolves back to its owning
	// category, regardless of input case.
	table := DefaultTable()
	for _, entry := range table {
		for _, ext := range entry.Extensions {
			assert.Equal(t, entry.Name, table.Resolve(ext), "extension %s", ext)
			assert.Equal(t, entry.Name, table.Resolve(strings.ToUpper(ext)), "uppercased extension %s", ext)
		}
	}
}

func TestResolve_DuplicateExtensionPicksFirst(t *testing.T) {
	table := Table{
		{Name: "First", Extensions: []string{".dup"}},
		{Name: "Second", Extensions: []string{".dup"}},
	}
	assert.Equal(t, "First", table.Resolve(".dup"))
}

func TestResolve_TableCaseInsensitive(t *testing.T) {
	// Extensions declared with odd casing in the table still match.
	table := Table{{Name: "Shouty", Extensions: []string{".LOUD"}}}
	assert.Equal(t, "Shouty", table.Resolve(".loud"))
}
