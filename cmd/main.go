package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var portFlag string

var rootCmd = &cobra.Command{
	Use:   "daily-reports",
	Short: "Daily reports backend",
	Long: `HTTP backend for daily text reports: add, list, update, delete
and download every report as an .xlsx workbook.

Configuration is read from .env and the environment (STORE_DRIVER, MONGO_URI,
DATABASE_URL, SQLITE_PATH, PORT, LOG_LEVEL, EXPORT_SCHEDULE, ...).`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "HTTP port (overrides PORT)")
	rootCmd.AddCommand(serveCmd, seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
