package wizard

import "strings"

// Declared MIME types accepted for resume uploads.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEText = "text/plain"
)

var acceptedTypes = map[string]struct{}{
	MIMEPDF:  {},
	MIMEDOCX: {},
	MIMEText: {},
}

// NormalizeMIME lowercases a MIME type and drops any parameters.
func NormalizeMIME(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// IsAcceptedType reports whether a declared type may be handed to the analyzer.
func IsAcceptedType(mimeType string) bool {
	_, ok := acceptedTypes[NormalizeMIME(mimeType)]
	return ok
}

// CheckUpload rejects uploads whose declared type is not accepted.
func CheckUpload(up Upload) error {
	if !IsAcceptedType(up.Type) {
		return &UnsupportedFileTypeError{FileName: up.Name, Type: up.Type}
	}
	return nil
}
