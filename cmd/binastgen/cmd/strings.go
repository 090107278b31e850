package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"binastgen/internal/errors"
	"binastgen/internal/logger"
	"binastgen/internal/strtable"
)

func newStringsCmd() *cobra.Command {
	var signature bool

	cmd := &cobra.Command{
		Use:   "strings <file>",
		Short: "Dump a string table",
		Long: `Decode a string table file and print one entry per line as
index, a tab and the quoted string.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "opening string table")
			}
			defer f.Close()

			table, err := strtable.Read(f, signature)
			if err != nil {
				return errors.Wrapf(err, "decoding %s", args[0])
			}
			logger.Logger.Debugw("decoded string table", "path", args[0], "count", len(table))

			w := cmd.OutOrStdout()
			for i, s := range table {
				fmt.Fprintf(w, "%d\t%q\n", i, s)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&signature, "signature", false, "Expect the \""+strtable.Signature+"\" signature")
	return cmd
}
