package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kindelia-archive/Lambolt/internal/dump"
)

var astCmd = &cobra.Command{
	Use:   "ast [file]",
	Short: "Dump the syntax tree as YAML",
	Long: `Parses a file and writes its syntax tree as YAML, one entry per rule.

Examples:
  lambolt ast rules.lam
  echo '(Id x) = x' | lambolt ast`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
}

func runAST(cmd *cobra.Command, args []string) error {
	_, p, _, err := setup(cmd)
	if err != nil {
		return err
	}
	path := sources(args)[0]
	src, err := readSource(cmd, path)
	if err != nil {
		return err
	}
	file, err := p.File(src)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return dump.Write(cmd.OutOrStdout(), dump.File(file))
}
