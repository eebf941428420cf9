package analyzer

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"github.com/kingrea/coverwizard/internal/wizard"
)

// Document extracts the real text of an upload and pulls skills out of it.
// Skills come from a SKILLS section when present, otherwise from a scan over
// Vocabulary. When neither finds anything the canned skills are reported.
type Document struct {
	// Vocabulary overrides the known-skills list used for scanning.
	Vocabulary []string
}

// Analyze implements wizard.ResumeAnalyzer.
func (d Document) Analyze(ctx context.Context, up wizard.Upload) (wizard.ResumeRecord, error) {
	if err := ctx.Err(); err != nil {
		return wizard.ResumeRecord{}, err
	}
	text, err := ExtractText(up.Data, up.Type)
	if err != nil {
		return wizard.ResumeRecord{}, fmt.Errorf("analyzer: %s: %w", up.Name, err)
	}
	skills := SkillsSection(text)
	if len(skills) == 0 {
		skills = ScanSkills(text, d.vocabulary())
	}
	if len(skills) == 0 {
		skills = CannedSkills()
	}
	return wizard.ResumeRecord{
		FileName:      up.Name,
		ExtractedText: text,
		Skills:        skills,
	}, nil
}

func (d Document) vocabulary() []string {
	if len(d.Vocabulary) > 0 {
		return d.Vocabulary
	}
	return defaultVocabulary
}

// ExtractText returns the plain text for a PDF, DOCX or text payload.
func ExtractText(data []byte, mimeType string) (string, error) {
	switch wizard.NormalizeMIME(mimeType) {
	case wizard.MIMEPDF:
		return extractPDF(data)
	case wizard.MIMEDOCX:
		return extractDOCX(data)
	case wizard.MIMEText:
		if !utf8.Valid(data) {
			return "", errors.New("text file is not valid UTF-8")
		}
		return strings.TrimSpace(string(data)), nil
	default:
		return "", fmt.Errorf("unsupported mime type: %s", mimeType)
	}
}

func extractPDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty pdf data")
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		return docxText(rc)
	}
	return "", errors.New("word/document.xml not found")
}

// docxText keeps character data and breaks lines at paragraph and break ends.
func docxText(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse docx xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteString("\n")
			}
		}
	}
	return strings.TrimSpace(buf.String()), nil
}

var sectionHeading = regexp.MustCompile(`(?i)^(professional summary|summary|profile|objective|experience|work experience|employment|education|projects|certifications|languages|interests|awards|references):?$`)

// SkillsSection reads the comma separated list under a "SKILLS" heading. The
// section ends at the next known heading or at a blank line after content.
func SkillsSection(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		heading := strings.TrimSuffix(strings.TrimSpace(line), ":")
		if !strings.EqualFold(heading, "skills") && !strings.EqualFold(heading, "technical skills") {
			continue
		}
		var collected []string
		for _, next := range lines[i+1:] {
			trimmed := strings.TrimSpace(next)
			if trimmed == "" {
				if len(collected) > 0 {
					break
				}
				continue
			}
			if sectionHeading.MatchString(trimmed) {
				break
			}
			collected = append(collected, trimmed)
		}
		return dedupe(wizard.SplitSkills(strings.Join(collected, ",")))
	}
	return nil
}

var defaultVocabulary = []string{
	"JavaScript", "TypeScript", "React", "Vue", "Angular", "Node.js",
	"HTML", "CSS", "Go", "Python", "Java", "Ruby", "Rust", "C#", "C++",
	"SQL", "PostgreSQL", "MySQL", "MongoDB", "Redis", "GraphQL",
	"Docker", "Kubernetes", "AWS", "GCP", "Azure", "Terraform", "Git",
}

// ScanSkills returns the vocabulary entries mentioned in text, in vocabulary
// order. Matching is case-insensitive and respects word boundaries.
func ScanSkills(text string, vocabulary []string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, skill := range vocabulary {
		if containsWord(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	return found
}

func containsWord(haystack, word string) bool {
	if word == "" {
		return false
	}
	for start := 0; ; {
		idx := strings.Index(haystack[start:], word)
		if idx < 0 {
			return false
		}
		begin := start + idx
		end := begin + len(word)
		if boundary(haystack, begin-1) && boundary(haystack, end) {
			return true
		}
		start = begin + 1
	}
}

func boundary(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return true
	}
	c := s[i]
	return !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '+' || c == '#')
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
