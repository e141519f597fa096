package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/dsiunit/table"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTempFile(t, `
language: en
labels:
  uncertainty: U95
decimals: 3
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "U95", cfg.Labels.Uncertainty)
	require.NotNil(t, cfg.Decimals)
	assert.Equal(t, 3, *cfg.Decimals)
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_DSI_LANG", "en")
	path := writeTempFile(t, "language: ${TEST_DSI_LANG}\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "labels:\n  distribution: Sebaran\n")

	cfg, err := LoadWithDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, table.DefaultLanguage, cfg.Language)
	require.NotNil(t, cfg.Decimals)
	assert.Equal(t, table.DefaultDecimals, *cfg.Decimals)
}

func TestLoad_ExplicitZeroDecimals(t *testing.T) {
	path := writeTempFile(t, "decimals: 0\n")

	cfg, err := LoadAndValidate(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.BuildOptions().Decimals)
	assert.Equal(t, 0, *cfg.BuildOptions().Decimals)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")

	_, err = Load(writeTempFile(t, "language: [unclosed\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config yaml")
}

func TestValidate(t *testing.T) {
	five, negative, huge := 5, -1, 19

	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Language: "id", Decimals: &five}, ""},
		{"unset decimals", Config{Language: "en"}, ""},
		{"unknown language", Config{Language: "fr"}, `language "fr" has no built-in labels`},
		{"negative decimals", Config{Language: "id", Decimals: &negative}, "decimals must be between 0 and 18, got -1"},
		{"too many decimals", Config{Language: "id", Decimals: &huge}, "decimals must be between 0 and 18, got 19"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestBuildOptions(t *testing.T) {
	cfg := Default()
	cfg.Labels.CoverageFactor = "k"

	opts := cfg.BuildOptions()
	require.NotNil(t, opts.Decimals)
	assert.Equal(t, table.DefaultDecimals, *opts.Decimals)
	assert.Equal(t, "k", opts.Labels.CoverageFactor)
	assert.Equal(t, "Ketidakpastian", opts.Labels.Uncertainty)
}
