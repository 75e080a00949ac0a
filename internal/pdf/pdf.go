package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// WriteMarkdownReport writes a markdown report to path and renders it as a
// PDF next to it, returning the PDF's absolute path. Reports carry wide
// session tables, so the PDF is rendered in landscape orientation.
func WriteMarkdownReport(path, markdown string) (string, error) {
	if !strings.HasSuffix(path, ".md") {
		return "", fmt.Errorf("report file must have .md extension: %s", path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("os.WriteFile(%s) > %w", path, err)
	}

	pdfPath := strings.TrimSuffix(path, ".md") + ".pdf"
	renderer := mdtopdf.NewPdfRenderer("L", "A4", pdfPath, "", nil, mdtopdf.LIGHT)
	if err := renderer.Process([]byte(markdown)); err != nil {
		return "", fmt.Errorf("renderer.Process() > %w", err)
	}

	absPath, err := filepath.Abs(pdfPath)
	if err != nil {
		return pdfPath, nil
	}
	return absPath, nil
}
