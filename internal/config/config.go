package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kindelia-archive/Lambolt/ast"
	"github.com/kindelia-archive/Lambolt/parser"
)

// FileName is the config file Find looks for.
const FileName = "lambolt.toml"

// Config holds the complete tool configuration
type Config struct {
	Parser ParserConfig `toml:"parser"`
	Format FormatConfig `toml:"format"`
	Log    LogConfig    `toml:"log"`
}

// ParserConfig holds grammar settings
type ParserConfig struct {
	StrictOperators bool `toml:"strict_operators"`
}

// FormatConfig holds printer settings used by `lambolt fmt`
type FormatConfig struct {
	RuleSeparator   string `toml:"rule_separator"`
	TrailingNewline *bool  `toml:"trailing_newline"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	// Expand environment variables in path
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Find returns the path of lambolt.toml in dir, or "" if there is none.
func Find(dir string) string {
	path := filepath.Join(dir, FileName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Format.RuleSeparator == "" {
		c.Format.RuleSeparator = "\n"
	}
	if c.Format.TrailingNewline == nil {
		on := true
		c.Format.TrailingNewline = &on
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

func (c *Config) validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if strings.TrimSpace(c.Format.RuleSeparator) != "" {
		return fmt.Errorf("format.rule_separator must be whitespace, got %q", c.Format.RuleSeparator)
	}
	return nil
}

// ParserOptions returns the parser options described by c, logging to logger.
func (c *Config) ParserOptions(logger *slog.Logger) parser.Options {
	return parser.Options{
		Logger:          logger,
		StrictOperators: c.Parser.StrictOperators,
	}
}

// FileFormat returns the printer layout described by c.
func (c *Config) FileFormat() ast.FileFormat {
	return ast.FileFormat{
		Separator:       c.Format.RuleSeparator,
		TrailingNewline: c.Format.TrailingNewline != nil && *c.Format.TrailingNewline,
	}
}

// Level returns the configured log level. Load has already rejected bad
// values, so an unknown level here falls back to info.
func (c *Config) Level() slog.Level {
	lvl, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewLogger returns a text logger writing to w at the configured level, or
// at debug when verbose is set.
func (c *Config) NewLogger(w io.Writer, verbose bool) *slog.Logger {
	lvl := c.Level()
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
