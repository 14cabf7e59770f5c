package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glint-lang/glint/internal/config"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("glint version %s\n", config.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
