package main

import (
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file>",
		Short: "Show arena statistics",
		Long: `The stats command summarizes an arena file: block counts, used and free
byte totals, the largest free block, and a fragmentation estimate.

Example:
  memctl stats heap.arena
  memctl stats heap.arena --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args[0])
		},
	}
}

// ArenaStats aggregates an Inspect snapshot.
type ArenaStats struct {
	FilePath    string
	FileSize    int64
	UsedBlocks  int
	FreeBlocks  int
	UsedBytes   int64
	FreeBytes   int64
	LargestFree int

	// Fragmentation is 1 - largest_free/total_free: 0 when all free space
	// is one block, approaching 1 as it shatters.
	Fragmentation float64
}

func runStats(path string) error {
	printVerbose("Opening arena: %s\n", path)

	f, m, err := openExisting(path)
	if err != nil {
		return err
	}
	defer f.Close()

	blocks, err := m.Inspect()
	if err != nil {
		return err
	}

	stats := ArenaStats{FilePath: path}
	for _, b := range blocks {
		if b.Free {
			stats.FreeBlocks++
			stats.FreeBytes += int64(b.Size)
			if b.Size > stats.LargestFree {
				stats.LargestFree = b.Size
			}
		} else {
			stats.UsedBlocks++
			stats.UsedBytes += int64(b.Size)
		}
	}
	stats.FileSize = stats.UsedBytes + stats.FreeBytes
	if stats.FreeBytes > 0 {
		stats.Fragmentation = 1 - float64(stats.LargestFree)/float64(stats.FreeBytes)
	}

	if jsonOut {
		return printJSON(stats)
	}

	p := message.NewPrinter(language.English)
	printInfo("Arena: %s\n\n", path)
	printInfo("  Used:  %s blocks, %s bytes\n",
		p.Sprint(stats.UsedBlocks), p.Sprint(stats.UsedBytes))
	printInfo("  Free:  %s blocks, %s bytes\n",
		p.Sprint(stats.FreeBlocks), p.Sprint(stats.FreeBytes))
	printInfo("  Largest free block: %s bytes\n", p.Sprint(stats.LargestFree))
	printInfo("  Fragmentation: %.1f%%\n", stats.Fragmentation*100)
	return nil
}
