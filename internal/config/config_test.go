package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"COUNCIL_OUTPUT_DIR",
		"COUNCIL_LOG_LEVEL",
		"COUNCIL_LOG_DIR",
		"COUNCIL_HISTORY_DB",
		"COUNCIL_PARALLEL",
		"COUNCIL_PRESETS_FILE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("council", pflag.ContinueOnError)
	fs.String("output", "results", "")
	fs.String("log-level", "info", "")
	fs.String("log-dir", "", "")
	fs.String("history-db", "", "")
	fs.Int("parallel", 1, "")
	fs.String("presets-file", "", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "results" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "results")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.Parallel != 1 {
		t.Errorf("Parallel = %d, want 1", cfg.Parallel)
	}
	if cfg.HistoryDB != "" || cfg.LogDir != "" || cfg.PresetsFile != "" {
		t.Errorf("optional paths should be empty, got %+v", cfg)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "council.yaml"), []byte("output_dir: from-file\nparallel: 2\nhistory_db: runs.db\n"), 0644)

	cfg, err := Load(nil, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "from-file" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "from-file")
	}
	if cfg.Parallel != 2 {
		t.Errorf("Parallel = %d, want 2", cfg.Parallel)
	}
	if cfg.HistoryDB != "runs.db" {
		t.Errorf("HistoryDB = %q, want %q", cfg.HistoryDB, "runs.db")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "council.yaml"), []byte("output_dir: from-file\n"), 0644)
	t.Setenv("COUNCIL_OUTPUT_DIR", "from-env")
	t.Setenv("COUNCIL_PARALLEL", "4")

	cfg, err := Load(nil, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "from-env")
	}
	if cfg.Parallel != 4 {
		t.Errorf("Parallel = %d, want 4", cfg.Parallel)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("COUNCIL_OUTPUT_DIR", "from-env")
	t.Setenv("COUNCIL_LOG_LEVEL", "warn")
	fs := testFlags()
	if err := fs.Parse([]string{"--output", "from-flag", "--parallel", "3"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(fs, t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "from-flag" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "from-flag")
	}
	if cfg.Parallel != 3 {
		t.Errorf("Parallel = %d, want 3", cfg.Parallel)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q (unset flag must not mask env)", cfg.LogLevel, "warn")
	}
}

func TestLoad_InvalidParallel(t *testing.T) {
	clearEnv(t)
	t.Setenv("COUNCIL_PARALLEL", "0")

	if _, err := Load(nil, t.TempDir()); err == nil {
		t.Fatal("expected error when parallel < 1")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("COUNCIL_LOG_LEVEL", "chatty")

	if _, err := Load(nil, t.TempDir()); err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestLoad_MalformedConfigFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "council.yaml"), []byte("output_dir: [unterminated\n"), 0644)

	if _, err := Load(nil, dir); err == nil {
		t.Fatal("expected error for malformed council.yaml")
	}
}

func TestLoadDotEnv_SetsVarsFromFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	os.WriteFile(envFile, []byte("# comment\nCOUNCIL_OUTPUT_DIR=\"dotenv-output\"\nCOUNCIL_PARALLEL=2\n"), 0644)

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		os.Unsetenv("COUNCIL_OUTPUT_DIR")
		os.Unsetenv("COUNCIL_PARALLEL")
	})

	cfg, err := Load(nil, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "dotenv-output" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "dotenv-output")
	}
	if cfg.Parallel != 2 {
		t.Errorf("Parallel = %d, want 2", cfg.Parallel)
	}
}

func TestLoadDotEnv_EnvVarsTakePrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("COUNCIL_OUTPUT_DIR", "from-env")

	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	os.WriteFile(envFile, []byte("COUNCIL_OUTPUT_DIR=from-dotenv\n"), 0644)

	if err := LoadDotEnv(envFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := Load(nil, dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("OutputDir = %q, want %q (env var should take precedence)", cfg.OutputDir, "from-env")
	}
}

func TestLoadDotEnv_MissingFileIsNotError(t *testing.T) {
	if err := LoadDotEnv("/nonexistent/.env"); err != nil {
		t.Fatalf("missing .env file should not be an error, got: %v", err)
	}
}
