package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// adminCmd represents the admin command
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin accounts",
	Long:  `Manage the admin accounts used to authenticate against the API.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'admin' requires a subcommand (create)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(adminCmd)
}
