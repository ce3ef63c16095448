package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/lorenzotomasdiez/council/internal/logging"
)

// Setting keys, as they appear in council.yaml.
const (
	KeyOutputDir   = "output_dir"
	KeyLogLevel    = "log_level"
	KeyLogDir      = "log_dir"
	KeyHistoryDB   = "history_db"
	KeyParallel    = "parallel"
	KeyPresetsFile = "presets_file"
)

// EnvPrefix namespaces environment overrides, e.g. COUNCIL_OUTPUT_DIR.
const EnvPrefix = "COUNCIL"

// flagKeys maps CLI flag names onto setting keys.
var flagKeys = map[string]string{
	"output":       KeyOutputDir,
	"log-level":    KeyLogLevel,
	"log-dir":      KeyLogDir,
	"history-db":   KeyHistoryDB,
	"parallel":     KeyParallel,
	"presets-file": KeyPresetsFile,
}

type Config struct {
	OutputDir   string
	LogLevel    string
	LogDir      string
	HistoryDB   string
	Parallel    int
	PresetsFile string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		OutputDir: "results",
		LogLevel:  "info",
		Parallel:  1,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyOutputDir, d.OutputDir)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogDir, d.LogDir)
	v.SetDefault(KeyHistoryDB, d.HistoryDB)
	v.SetDefault(KeyParallel, d.Parallel)
	v.SetDefault(KeyPresetsFile, d.PresetsFile)
}

// Load layers defaults, an optional council.yaml found in searchPaths (the
// working directory when none are given), COUNCIL_* environment variables and
// any flags in flags that the user set.
func Load(flags *pflag.FlagSet, searchPaths ...string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("council")
	v.SetConfigType("yaml")
	if len(searchPaths) == 0 {
		searchPaths = []string{"."}
	}
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading council.yaml: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: binding --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		OutputDir:   v.GetString(KeyOutputDir),
		LogLevel:    v.GetString(KeyLogLevel),
		LogDir:      v.GetString(KeyLogDir),
		HistoryDB:   v.GetString(KeyHistoryDB),
		Parallel:    v.GetInt(KeyParallel),
		PresetsFile: v.GetString(KeyPresetsFile),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("config: %s must not be empty", KeyOutputDir)
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("config: invalid %s %q (want debug, info, warn or error)", KeyLogLevel, c.LogLevel)
	}
	if c.Parallel < 1 {
		return fmt.Errorf("config: %s must be >= 1, got %d", KeyParallel, c.Parallel)
	}
	return nil
}

// LoadDotEnv sets variables from a KEY=value file without overriding ones
// already in the environment. A missing file is not an error.
func LoadDotEnv(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: opening .env: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), `"'`)
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
	return scanner.Err()
}
