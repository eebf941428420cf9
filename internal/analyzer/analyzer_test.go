package analyzer

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/coverwizard/internal/wizard"
)

func TestCannedAnalyzer(t *testing.T) {
	rec, err := Canned{}.Analyze(context.Background(), wizard.Upload{Name: "resume.pdf", Type: wizard.MIMEPDF})
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", rec.FileName)
	assert.Equal(t, CannedText, rec.ExtractedText)
	assert.Equal(t, []string{"JavaScript", "React", "Node.js", "TypeScript", "HTML", "CSS"}, rec.Skills)

	rec.Skills[0] = "mutated"
	assert.Equal(t, "JavaScript", CannedSkills()[0])
}

func TestCannedRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Canned{}.Analyze(ctx, wizard.Upload{Name: "resume.txt"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSkillsSection(t *testing.T) {
	assert.Equal(t, []string{"JavaScript", "React", "Node.js", "TypeScript", "HTML", "CSS"}, SkillsSection(CannedText))

	text := "Jane Doe\n\nTechnical Skills:\nGo, Rust\nPostgreSQL, go\nEXPERIENCE\nAcme"
	assert.Equal(t, []string{"Go", "Rust", "PostgreSQL"}, SkillsSection(text))

	assert.Nil(t, SkillsSection("no headings at all"))
}

func TestScanSkills(t *testing.T) {
	text := "Built services in Go and Python. Deployed with Docker on AWS. Some JavaScript."
	got := ScanSkills(text, defaultVocabulary)
	assert.Equal(t, []string{"JavaScript", "Go", "Python", "Docker", "AWS"}, got)
	assert.NotContains(t, got, "Java")
}

func TestDocumentAnalyzerText(t *testing.T) {
	up := wizard.Upload{
		Name: "cv.txt",
		Type: "text/plain; charset=utf-8",
		Data: []byte("Experienced with Kubernetes and Terraform.\n"),
	}
	rec, err := Document{}.Analyze(context.Background(), up)
	require.NoError(t, err)
	assert.Equal(t, "Experienced with Kubernetes and Terraform.", rec.ExtractedText)
	assert.Equal(t, []string{"Kubernetes", "Terraform"}, rec.Skills)
}

func TestDocumentAnalyzerFallsBackToCannedSkills(t *testing.T) {
	up := wizard.Upload{Name: "cv.txt", Type: wizard.MIMEText, Data: []byte("I like gardening.")}
	rec, err := Document{}.Analyze(context.Background(), up)
	require.NoError(t, err)
	assert.Equal(t, CannedSkills(), rec.Skills)
}

func TestDocumentAnalyzerDOCX(t *testing.T) {
	data := buildDOCX(t, `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>SKILLS</w:t></w:r></w:p>
<w:p><w:r><w:t>Go, SQL</w:t></w:r></w:p>
</w:body></w:document>`)
	rec, err := Document{}.Analyze(context.Background(), wizard.Upload{Name: "cv.docx", Type: wizard.MIMEDOCX, Data: data})
	require.NoError(t, err)
	assert.Contains(t, rec.ExtractedText, "SKILLS")
	assert.Equal(t, []string{"Go", "SQL"}, rec.Skills)
}

func TestExtractTextErrors(t *testing.T) {
	_, err := ExtractText(nil, wizard.MIMEPDF)
	assert.Error(t, err)
	_, err = ExtractText([]byte("not a zip"), wizard.MIMEDOCX)
	assert.Error(t, err)
	_, err = ExtractText([]byte{0xff, 0xfe, 0xfd}, wizard.MIMEText)
	assert.Error(t, err)
	_, err = ExtractText([]byte("x"), "image/png")
	assert.Error(t, err)
}

func TestLoadFileSniffsType(t *testing.T) {
	dir := t.TempDir()

	textPath := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(textPath, []byte("SKILLS\nGo, SQL\n"), 0o644))
	up, err := LoadFile(textPath)
	require.NoError(t, err)
	assert.Equal(t, "resume.txt", up.Name)
	assert.Equal(t, wizard.MIMEText, up.Type)
	assert.True(t, wizard.IsAcceptedType(up.Type))

	pngPath := filepath.Join(dir, "resume.pdf")
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	require.NoError(t, os.WriteFile(pngPath, png, 0o644))
	up, err = LoadFile(pngPath)
	require.NoError(t, err)
	assert.Equal(t, "image/png", up.Type)
	assert.False(t, wizard.IsAcceptedType(up.Type))

	_, err = LoadFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
	_, err = LoadFile(dir)
	assert.Error(t, err)
}

func TestNewSelectsAnalyzer(t *testing.T) {
	a, err := New("")
	require.NoError(t, err)
	assert.IsType(t, Canned{}, a)

	a, err = New(" Document ")
	require.NoError(t, err)
	assert.IsType(t, Document{}, a)

	_, err = New("llm")
	assert.Error(t, err)
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}
