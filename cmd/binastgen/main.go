// binastgen generates C++ macro tables and enum classes from an IDL schema.
package main

import (
	"fmt"
	"os"

	"binastgen/cmd/binastgen/cmd"
	"binastgen/internal/errors"
	"binastgen/internal/logger"
)

func main() {
	err := cmd.NewRootCmd().Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if hint := errors.FlattenHints(err); hint != "" {
			fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
