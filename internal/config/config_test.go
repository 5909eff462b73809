package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_DRIVER", "GOOGLE_API_KEY", "GEMINI_API_KEY", "GEMINI_MODEL",
		"GEMINI_TEMPERATURE", "STORAGE_BACKEND", "PARSER_STRATEGY", "PARSER_MAX_PROMPT_CHARS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.InDelta(t, 0.1, cfg.Gemini.Temperature, 0.0001)
	assert.Equal(t, StorageLocal, cfg.Storage.Backend)
	assert.Equal(t, int64(10485760), cfg.Storage.MaxFileSize)
	assert.Equal(t, "single_call", cfg.Parser.Strategy)
	assert.Equal(t, 3000, cfg.Parser.MaxPromptChars)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "fallback-key")
	t.Setenv("PARSER_STRATEGY", "multi_call")
	t.Setenv("PARSER_MAX_PROMPT_CHARS", "not-a-number")
	t.Setenv("GEMINI_TEMPERATURE", "0.4")
	t.Setenv("MAX_FILE_SIZE", "2048")

	cfg := Load()

	assert.Equal(t, "fallback-key", cfg.Gemini.APIKey)
	assert.Equal(t, "multi_call", cfg.Parser.Strategy)
	assert.Equal(t, 3000, cfg.Parser.MaxPromptChars)
	assert.InDelta(t, 0.4, cfg.Gemini.Temperature, 0.0001)
	assert.Equal(t, int64(2048), cfg.Storage.MaxFileSize)

	t.Setenv("GOOGLE_API_KEY", "primary-key")
	assert.Equal(t, "primary-key", Load().Gemini.APIKey)
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n",
	}}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.GetDatabaseDSN())

	cfg.Database.Driver = DriverSQLite
	cfg.Database.Path = "/tmp/x.db"
	assert.Equal(t, "/tmp/x.db", cfg.GetDatabaseDSN())
}

func TestInitDatabase_SQLite(t *testing.T) {
	cfg := &Config{
		Server:   ServerConfig{Env: "test"},
		Database: DatabaseConfig{Driver: DriverSQLite, Path: filepath.Join(t.TempDir(), "test.db")},
	}

	db, err := InitDatabase(cfg)
	require.NoError(t, err)

	for _, table := range []string{"candidates", "education", "experience", "skills", "projects", "certifications"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
}

func TestInitDatabase_UnknownDriver(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "oracle"}}

	_, err := InitDatabase(cfg)
	assert.ErrorContains(t, err, "unsupported database driver")
}
