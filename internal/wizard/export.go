package wizard

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var separatorRun = regexp.MustCompile(`[\s/\\]+`)

// Export is a plain-text rendition of the current letter.
type Export struct {
	FileName string
	Content  string
}

// ExportFileName builds "Cover_Letter_<Company>.txt", with runs of whitespace
// and path separators in the company collapsed to underscores. An empty
// company yields "Cover_Letter.txt".
func ExportFileName(company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		return "Cover_Letter.txt"
	}
	return fmt.Sprintf("Cover_Letter_%s.txt", separatorRun.ReplaceAllString(company, "_"))
}

// WriteTo writes the export into dir, creating it when needed, and returns
// the written path.
func (e Export) WriteTo(dir string) (string, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("wizard: create export dir: %w", err)
	}
	name := e.FileName
	if name == "" {
		name = ExportFileName("")
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, []byte(e.Content), 0o644); err != nil {
		return "", fmt.Errorf("wizard: write export: %w", err)
	}
	return path, nil
}
