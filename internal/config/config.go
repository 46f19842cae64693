package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	jstnlab "github.com/reoring/jstnlab"
	"github.com/reoring/jstnlab/i18n"
)

// Config holds the settings for the jstnlab server and CLI.
type Config struct {
	Addr      string `yaml:"addr" toml:"addr"`
	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"` // "console" or "json"
	Language  string `yaml:"language" toml:"language"`

	// Data document parsing
	JSONDriver    string `yaml:"json_driver" toml:"json_driver"`
	DuplicateKeys string `yaml:"duplicate_keys" toml:"duplicate_keys"` // ignore, warn, error
	MaxDepth      int    `yaml:"max_depth" toml:"max_depth"`
	MaxBytes      int64  `yaml:"max_bytes" toml:"max_bytes"`

	FormatDeclarations bool `yaml:"format_declarations" toml:"format_declarations"`

	// Sessions
	SessionTTL  Duration `yaml:"session_ttl" toml:"session_ttl"`
	MaxSessions int      `yaml:"max_sessions" toml:"max_sessions"`

	// Texts a new session starts with.
	InitialTypeDeclaration string `yaml:"initial_jstn" toml:"initial_jstn"`
	InitialDataDocument    string `yaml:"initial_json" toml:"initial_json"`
}

// Duration is a time.Duration written as "30m" in config files.
type Duration struct{ time.Duration }

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) { return []byte(d.Duration.String()), nil }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:                   ":8080",
		LogLevel:               "info",
		LogFormat:              "console",
		Language:               "en",
		JSONDriver:             "gojson",
		DuplicateKeys:          "ignore",
		MaxDepth:               256,
		MaxBytes:               1 << 20,
		SessionTTL:             Duration{30 * time.Minute},
		MaxSessions:            1000,
		InitialTypeDeclaration: "string?",
		InitialDataDocument:    `"foo bar"`,
	}
}

// Load builds a Config from defaults, then the file at path (YAML or TOML by
// extension, skipped when path is empty), then JSTNLAB_* environment
// variables, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, out *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	case ".toml":
		err = toml.Unmarshal(data, out)
	default:
		return fmt.Errorf("config load failed (%s): unsupported extension %q", path, ext)
	}
	if err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	str("JSTNLAB_ADDR", &cfg.Addr)
	str("JSTNLAB_LOG_LEVEL", &cfg.LogLevel)
	str("JSTNLAB_LOG_FORMAT", &cfg.LogFormat)
	str("JSTNLAB_LANGUAGE", &cfg.Language)
	str("JSTNLAB_JSON_DRIVER", &cfg.JSONDriver)
	str("JSTNLAB_DUPLICATE_KEYS", &cfg.DuplicateKeys)

	if v, ok := lookup("JSTNLAB_MAX_DEPTH"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("JSTNLAB_MAX_DEPTH: %w", err)
		}
		cfg.MaxDepth = n
	}
	if v, ok := lookup("JSTNLAB_MAX_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("JSTNLAB_MAX_BYTES: %w", err)
		}
		cfg.MaxBytes = n
	}
	if v, ok := lookup("JSTNLAB_MAX_SESSIONS"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("JSTNLAB_MAX_SESSIONS: %w", err)
		}
		cfg.MaxSessions = n
	}
	if v, ok := lookup("JSTNLAB_SESSION_TTL"); ok {
		if err := cfg.SessionTTL.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("JSTNLAB_SESSION_TTL: %w", err)
		}
	}
	if v, ok := lookup("JSTNLAB_FORMAT_DECLARATIONS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("JSTNLAB_FORMAT_DECLARATIONS: %w", err)
		}
		cfg.FormatDeclarations = b
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("config: addr is required")
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("config: log_format must be console or json, got %q", c.LogFormat)
	}
	if !i18n.Supported(c.Language) {
		return fmt.Errorf("config: unsupported language %q", c.Language)
	}
	if _, err := jstnlab.JSONDriverByName(c.JSONDriver); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := jstnlab.ParseSeverity(c.DuplicateKeys); err != nil {
		return fmt.Errorf("config: duplicate_keys: %w", err)
	}
	if c.MaxDepth < 0 || c.MaxBytes < 0 {
		return fmt.Errorf("config: max_depth and max_bytes must not be negative")
	}
	if c.SessionTTL.Duration <= 0 {
		return fmt.Errorf("config: session_ttl must be positive")
	}
	if c.MaxSessions <= 0 {
		return fmt.Errorf("config: max_sessions must be positive")
	}
	return nil
}

// EngineOptions translates the parsing and formatting settings. The config
// must have passed Validate.
func (c Config) EngineOptions() []jstnlab.Option {
	driver, _ := jstnlab.JSONDriverByName(c.JSONDriver)
	dup, _ := jstnlab.ParseSeverity(c.DuplicateKeys)
	return []jstnlab.Option{
		jstnlab.WithJSONDriver(driver),
		jstnlab.WithParseOpt(jstnlab.ParseOpt{
			Strictness: jstnlab.Strictness{OnDuplicateKey: dup},
			MaxDepth:   c.MaxDepth,
			MaxBytes:   c.MaxBytes,
		}),
		jstnlab.WithDeclarationFormatting(c.FormatDeclarations),
		jstnlab.WithTranslator(i18n.New(c.Language)),
	}
}
