package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Parser.StrictOperators {
		t.Error("Parser.StrictOperators = true, want false")
	}
	if cfg.Format.RuleSeparator != "\n" {
		t.Errorf("Format.RuleSeparator = %q, want newline", cfg.Format.RuleSeparator)
	}
	if !cfg.FileFormat().TrailingNewline {
		t.Error("TrailingNewline = false, want true")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %v, want info", cfg.Log.Level)
	}
	if cfg.Level() != slog.LevelInfo {
		t.Errorf("Level() = %v, want INFO", cfg.Level())
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "empty file uses defaults",
			content: "",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Format.RuleSeparator != "\n" || cfg.Log.Level != "info" {
					t.Errorf("defaults not applied: %+v", cfg)
				}
			},
		},
		{
			name: "all sections",
			content: `
[parser]
strict_operators = true

[format]
rule_separator = "\n\n"
trailing_newline = false

[log]
level = "debug"
`,
			check: func(t *testing.T, cfg *Config) {
				if !cfg.Parser.StrictOperators {
					t.Error("StrictOperators not set")
				}
				ff := cfg.FileFormat()
				if ff.Separator != "\n\n" || ff.TrailingNewline {
					t.Errorf("FileFormat() = %+v", ff)
				}
				if cfg.Level() != slog.LevelDebug {
					t.Errorf("Level() = %v, want DEBUG", cfg.Level())
				}
			},
		},
		{
			name:    "warning alias",
			content: "[log]\nlevel = \"WARNING\"\n",
			check: func(t *testing.T, cfg *Config) {
				if cfg.Level() != slog.LevelWarn {
					t.Errorf("Level() = %v, want WARN", cfg.Level())
				}
			},
		},
		{
			name:    "bad level",
			content: "[log]\nlevel = \"loud\"\n",
			wantErr: "unknown log level",
		},
		{
			name:    "separator must be whitespace",
			content: "[format]\nrule_separator = \";\"\n",
			wantErr: "rule_separator",
		},
		{
			name:    "unknown key",
			content: "[parser]\nstrict = true\n",
			wantErr: "unknown config key",
		},
		{
			name:    "malformed toml",
			content: "[parser\n",
			wantErr: "failed to parse config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.content))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Load() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Errorf("Load() error = %v", err)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	path := writeConfig(t, "[parser]\nstrict_operators = true\n")
	t.Setenv("LAMBOLT_TEST_DIR", filepath.Dir(path))

	cfg, err := Load("$LAMBOLT_TEST_DIR/" + FileName)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.ParserOptions(nil).StrictOperators {
		t.Error("StrictOperators not carried into parser options")
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	if got := Find(dir); got != "" {
		t.Errorf("Find() = %q, want empty", got)
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if got := Find(dir); got != path {
		t.Errorf("Find() = %q, want %q", got, path)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := Default()

	cfg.NewLogger(&buf, false).Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug record written at info level: %q", buf.String())
	}

	cfg.NewLogger(&buf, true).Debug("shown")
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Errorf("verbose logger dropped debug record: %q", buf.String())
	}
}
