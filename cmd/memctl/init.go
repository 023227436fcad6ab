package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codemix/malloc/pkg/malloc"
)

var (
	initSize  string
	initForce bool
)

func init() {
	cmd := newInitCmd()
	cmd.Flags().StringVar(&initSize, "size", "64K", "Arena size (e.g. 4096, 64K, 16M)")
	cmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing file")
	rootCmd.AddCommand(cmd)
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <file>",
		Short: "Create and format an arena file",
		Long: `The init command creates a file of the requested size and formats it as an
empty arena: a header block followed by a single free block spanning the
remainder.

Example:
  memctl init heap.arena --size 16M`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(args[0])
		},
	}
}

func runInit(path string) error {
	size, err := parseSize(initSize)
	if err != nil {
		return err
	}
	if size%4 != 0 {
		return fmt.Errorf("size %d is not a multiple of 4", size)
	}

	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	printVerbose("Creating %s (%s)\n", path, formatBytes(size))
	if err := os.WriteFile(path, make([]byte, size), 0o600); err != nil {
		return err
	}

	m, err := malloc.Open(path)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Check(); err != nil {
		return err
	}
	if err := m.Sync(cmdContext()); err != nil {
		return err
	}

	printInfo("Formatted %s: %s arena, %s usable\n",
		path, formatBytes(size), formatBytes(size-malloc.Overhead))
	return nil
}
