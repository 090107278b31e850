package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"binastgen/internal/errors"
)

func newCheckCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify generated files are up to date",
		Long: `Regenerate the artifacts in memory and compare them with the files in
the output directory. Exits non-zero if any file is missing or differs.
Nothing is written.`,
		Example: `  binastgen check -s es6.yaml -o include/`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := opts.generate()
			if err != nil {
				return err
			}

			var stale []string
			for _, f := range run.files(opts.output) {
				existing, err := os.ReadFile(f.path)
				switch {
				case os.IsNotExist(err):
					stale = append(stale, f.path+" (missing)")
				case err != nil:
					return errors.Wrapf(err, "reading %s", f.path)
				case !bytes.Equal(existing, f.content):
					stale = append(stale, f.path)
				}
			}

			if len(stale) > 0 {
				run.log.Warn("stale artifacts", zap.Strings("files", stale))
				return errors.WithHint(
					errors.Wrapf(errors.ErrStale, "%v", stale),
					"run binastgen generate with the same flags")
			}

			fmt.Fprintln(cmd.OutOrStdout(), "up to date")
			return nil
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Directory holding the generated files")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
