package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/kindelia-archive/Lambolt/internal/render"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Report syntax errors",
	Long: `Parses each file and reports the first syntax error in it, with the
offending source line highlighted. Exits non-zero if any file fails.

Examples:
  lambolt check rules.lam
  lambolt check --config strict.toml *.lam`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, p, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	out := render.New(cmd.OutOrStdout())
	errOut := render.New(cmd.ErrOrStderr())

	files := sources(args)
	failed := 0
	for _, path := range files {
		src, err := readSource(cmd, path)
		if err == nil {
			file, perr := p.File(src)
			if perr == nil {
				fmt.Fprintln(cmd.OutOrStdout(), out.OK(path, len(file)))
				continue
			}
			err = perr
		}
		failed++
		logger.Debug("check failed", slog.String("file", path), slog.Any("error", err))
		fmt.Fprintln(cmd.ErrOrStderr(), errOut.Error(path, err))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(files))
	}
	return nil
}
