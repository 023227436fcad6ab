package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/codemix/malloc/arena"
)

var dumpFreeOnly bool

func init() {
	cmd := newDumpCmd()
	cmd.Flags().BoolVar(&dumpFreeOnly, "free", false, "List only free blocks")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "List every block in an arena",
		Long: `The dump command walks the arena and prints one line per block: byte
offset, state, and size. With --json the full snapshot is emitted, including
each free block's skip-list height and links.

Example:
  memctl dump heap.arena
  memctl dump heap.arena --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args[0])
		},
	}
}

func runDump(path string) error {
	f, m, err := openExisting(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if jsonOut || dumpFreeOnly {
		blocks, err := m.Inspect()
		if err != nil {
			return err
		}
		if dumpFreeOnly {
			filtered := blocks[:0]
			for _, b := range blocks {
				if b.Free {
					filtered = append(filtered, b)
				}
			}
			blocks = filtered
		}
		if jsonOut {
			return printJSON(blocks)
		}
		for _, b := range blocks {
			printInfo("%8d  free %8d bytes  h=%d\n", b.Offset, b.Size, b.Height)
		}
		return nil
	}

	a, err := arena.New(f.Bytes())
	if err != nil {
		return err
	}
	return arena.Fprint(os.Stdout, a)
}
