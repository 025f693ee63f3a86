package cli

import (
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage discovery caches",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the result and analysis caches",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := initServices(); err != nil {
			return err
		}
		discoveryService.ClearCaches()
		cmd.Println("Caches cleared.")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}
