// Command submissionsctl is a small admin CLI for the submissions
// server: health, stats, paginated listings, deletion, and exports.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "submissionsctl",
	Short: "CLI for the Clavisnova submissions server",
	Long: `submissionsctl drives the admin API of the submissions server.

It lists stored submissions with pagination and search, deletes records,
downloads spreadsheet exports, and reports server health and stats.`,
}

func init() {
	defaultServer := os.Getenv("SUBMISSIONS_SERVER")
	if defaultServer == "" {
		defaultServer = "http://localhost:8080"
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", defaultServer, "Submissions server URL")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
}
