package pdf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteMarkdownReport(t *testing.T) {
	tests := []struct {
		name       string
		path       func(t *testing.T) string
		markdown   string
		wantErr    bool
		wantErrMsg string
	}{
		{
			name: "invalid extension",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "report.txt")
			},
			markdown:   "# Report\n",
			wantErr:    true,
			wantErrMsg: "report file must have .md extension",
		},
		{
			name: "writes markdown and renders the pdf",
			path: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "reports", "overview.md")
			},
			markdown: "# Flashcards Overview\n\n| Deck | Cards |\n|---|---|\n| Biology | 2 |\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.path(t)

			pdfPath, err := WriteMarkdownReport(path, tt.markdown)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
				return
			}

			require.NoError(t, err)
			assert.True(t, filepath.Ext(pdfPath) == ".pdf")
			assert.FileExists(t, pdfPath)

			written, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.markdown, string(written))
		})
	}
}
