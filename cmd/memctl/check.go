package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Verify an arena's structural invariants",
		Long: `The check command runs the full integrity sweep: tag agreement, tiling,
the coalescing rule, and freelist consistency. It exits non-zero when the
arena is corrupt.

Example:
  memctl check heap.arena`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(args[0])
		},
	}
}

func runCheck(path string) error {
	f, m, err := openExisting(path)
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}
	defer f.Close()

	if err := m.Check(); err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	printInfo("%s: OK\n", path)
	return nil
}
