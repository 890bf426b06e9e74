package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/kindelia-archive/Lambolt/internal/config"
	"github.com/kindelia-archive/Lambolt/parser"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lambolt",
	Short: "Lambolt - rewrite rule toolkit",
	Long: `lambolt reads files of Lambolt rewrite rules.

Commands:
  fmt      - print rules in canonical form
  check    - report syntax errors
  ast      - dump the syntax tree as YAML
  version  - print version information

Settings are read from --config, or from lambolt.toml in the working
directory when present.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./lambolt.toml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log parser debug records to stderr")
}

// loadConfig resolves the configuration for a command run.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = config.Find(".")
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

// setup loads the configuration and builds the parser and logger a
// subcommand works with.
func setup(cmd *cobra.Command) (*config.Config, *parser.Parser, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := cfg.NewLogger(cmd.ErrOrStderr(), verbose)
	return cfg, parser.New(cfg.ParserOptions(logger)), logger, nil
}

// readSource reads a file argument; "-" reads standard input.
func readSource(cmd *cobra.Command, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// sources returns the file arguments, or "-" when there are none.
func sources(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
