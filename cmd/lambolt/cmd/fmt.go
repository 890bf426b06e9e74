package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var fmtWrite bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Print rules in canonical form",
	Long: `Parses each file and prints its rules in canonical form.

Comments and original layout are not preserved.

Examples:
  lambolt fmt rules.lam
  lambolt fmt -w *.lam
  cat rules.lam | lambolt fmt`,
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result to the source file instead of stdout")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cfg, p, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	layout := cfg.FileFormat()

	for _, path := range sources(args) {
		src, err := readSource(cmd, path)
		if err != nil {
			return err
		}
		file, err := p.File(src)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		out := layout.Format(file)

		if !fmtWrite || path == "-" {
			if _, err := io.WriteString(cmd.OutOrStdout(), out); err != nil {
				return err
			}
			continue
		}
		if out == src {
			continue
		}
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			return err
		}
		logger.Info("formatted", slog.String("file", path), slog.Int("rules", len(file)))
	}
	return nil
}
