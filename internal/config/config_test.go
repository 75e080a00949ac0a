package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoader_Load(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		wantErr     string
		assertOnCfg func(t *testing.T, cfg *Config)
	}{
		{
			name:       "defaults apply without a config file",
			configYAML: "",
			assertOnCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, filepath.Join("data", "flashcards.yml"), cfg.Storage.File)
				assert.Equal(t, 20, cfg.Study.ReviewLimit)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, 3306, cfg.Database.Port)
				assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
			},
		},
		{
			name: "file values override defaults",
			configYAML: `storage:
  file: /tmp/cards/state.yml
study:
  review_limit: 5
database:
  host: db.internal
  database: flashcards
`,
			assertOnCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/tmp/cards/state.yml", cfg.Storage.File)
				assert.Equal(t, 5, cfg.Study.ReviewLimit)
				assert.Equal(t, "db.internal", cfg.Database.Host)
				assert.Equal(t, "flashcards", cfg.Database.Database)
			},
		},
		{
			name: "zero review limit is rejected",
			configYAML: `study:
  review_limit: 0
`,
			wantErr: "invalid configuration",
		},
		{
			name: "empty storage file is rejected",
			configYAML: `storage:
  file: ""
`,
			wantErr: "invalid configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configFile := ""
			if tt.configYAML != "" {
				configFile = filepath.Join(t.TempDir(), "config.yml")
				require.NoError(t, os.WriteFile(configFile, []byte(tt.configYAML), 0644))
			}

			loader, err := NewConfigLoader(configFile)
			require.NoError(t, err)

			cfg, err := loader.Load()
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.assertOnCfg(t, cfg)
		})
	}
}
