// Package category maps file extensions to category labels using an
// ordered lookup table.
package category

import (
	"strings"
)

// Other is the sentinel category for extensions not present in the table.
const Other = "Other"

// Entry associates a category name with the extensions it owns.
type Entry struct {
	Name       string   `json:"name" yaml:"name"`
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// Table is an ordered list of category entries. Order matters: when an
// extension appears under more than one category, Resolve returns the
// first match. A plain map would not preserve that ordering.
type Table []Entry

// DefaultTable returns the built-in extension mappings used when no
// external configuration is supplied.
func DefaultTable() Table {
	return Table{
		{Name: "Images", Extensions: []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp", ".tiff", ".ico"}},
		{Name: "Documents", Extensions: []string{".pdf", ".docx", ".txt", ".rtf", ".odt", ".pages", ".doc"}},
		{Name: "Videos", Extensions: []string{".mp4", ".mov", ".avi", ".mkv", ".wmv", ".flv", ".webm", ".m4v"}},
		{Name: "Audio", Extensions: []string{".mp3", ".wav", ".flac", ".aac", ".ogg", ".wma", ".m4a"}},
		{Name: "Archives", Extensions: []string{".zip", ".tar.gz", ".rar", ".7z", ".tar", ".gz", ".bz2"}},
		{Name: "Code", Extensions: []string{".py", ".js", ".html", ".css", ".java", ".cpp", ".c", ".h", ".php", ".rb"}},
		{Name: "Spreadsheets", Extensions: []string{".xlsx", ".xls", ".csv", ".ods", ".numbers"}},
		{Name: "Presentations", Extensions: []string{".pptx", ".ppt", ".odp", ".key"}},
		{Name: "Executables", Extensions: []string{".exe", ".msi", ".dmg", ".pkg", ".deb", ".rpm", ".app"}},
		{Name: "Fonts", Extensions: []string{".ttf", ".otf", ".woff", ".woff2", ".eot"}},
	}
}

// Normalize lowercases an extension and ensures it carries a leading dot.
// An empty or whitespace-only input normalizes to the empty string.
func Normalize(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Resolve returns the first category in table order whose extension set
// contains ext, or Other when no category owns it. Comparison is
// case-insensitive and tolerates a missing leading dot. Resolve is total:
// every input string yields a category.
func (t Table) Resolve(ext string) string {
	ext = Normalize(ext)
	if ext == "" {
		return Other
	}
	for _, entry := range t {
		for _, owned := range entry.Extensions {
			if Normalize(owned) == ext {
				return entry.Name
			}
		}
	}
	return Other
}
