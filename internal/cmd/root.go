package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "bookstore",
	Short: "Bookstore API server",
	Long: `Bookstore serves the online bookstore REST API: catalogue, carts,
orders with their transactional checkout, users and sales statistics.

Configuration comes from environment variables, an optional .env file and
an optional TOML file passed with --config.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
