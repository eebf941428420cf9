package analyzer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"

	"github.com/kingrea/coverwizard/internal/wizard"
)

// maxUploadBytes bounds what LoadFile will read into memory.
const maxUploadBytes = 10 << 20

// LoadFile reads path into an Upload. The declared type is sniffed from the
// content, so a renamed image is still reported as an image.
func LoadFile(path string) (wizard.Upload, error) {
	info, err := os.Stat(path)
	if err != nil {
		return wizard.Upload{}, fmt.Errorf("analyzer: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return wizard.Upload{}, fmt.Errorf("analyzer: %s is a directory", path)
	}
	if info.Size() > maxUploadBytes {
		return wizard.Upload{}, fmt.Errorf("analyzer: %s is larger than %d bytes", path, maxUploadBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return wizard.Upload{}, fmt.Errorf("analyzer: read %s: %w", path, err)
	}
	return wizard.Upload{
		Name: filepath.Base(path),
		Type: DetectType(data),
		Data: data,
	}, nil
}

// DetectType returns the normalized MIME type of data.
func DetectType(data []byte) string {
	return wizard.NormalizeMIME(mimetype.Detect(data).String())
}
