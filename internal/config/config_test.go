package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("SCANDOC_DB_PATH", "")
	t.Setenv("SCANDOC_OCR_LANGUAGE", "")
	t.Setenv("DEBUG", "")

	cfg := Load()
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, "scandoc.db", cfg.DBPath)
	assert.Equal(t, "en", cfg.DefaultOCRLanguage)
	assert.True(t, cfg.Debug)
}

func TestLoad_ProdDisablesDebug(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("DEBUG", "")

	cfg := Load()
	assert.False(t, cfg.Debug)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCANDOC_DB_PATH", "/data/store.db")
	t.Setenv("SCANDOC_OCR_LANGUAGE", "de")
	t.Setenv("ENVIRONMENT", "prod")
	t.Setenv("DEBUG", "true")

	cfg := Load()
	assert.Equal(t, "/data/store.db", cfg.DBPath)
	assert.Equal(t, "de", cfg.DefaultOCRLanguage)
	assert.True(t, cfg.Debug)
}
