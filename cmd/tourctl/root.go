package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tourctl",
	Short: "Manage and run the tourism content server",
	Long: `tourctl runs the tourism content management server and its
supporting tasks: database migrations, configuration inspection and admin
account management.

Configuration comes from tourcms.yml (or TOURCMS_CONFIG_PATH) overridden by
TOURCMS_* environment variables. DATABASE_URL is always required for
commands that touch the database.`,
}

func main() {
	// A local .env is a convenience for development; absence is not an error.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
