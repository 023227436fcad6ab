package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("memctl %s (%s/%s)\n", rootCmd.Version, runtime.GOOS, runtime.GOARCH)
		},
	})
}
