package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/trailpost/tourcms/pkg/db"
	gormstore "github.com/trailpost/tourcms/pkg/server/store/gorm"
)

// adminCreateCmd represents the admin create command
var adminCreateCmd = &cobra.Command{
	Use:   "create USERNAME PASSWORD",
	Short: "Create an admin account",
	Long: `Create an admin account that can log in to the API.

Example:
  tourctl admin create editor s3cret`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if err := createAdmin(args[0], args[1]); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create admin: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created admin %q\n", args[0])
	},
}

func init() {
	adminCmd.AddCommand(adminCreateCmd)
}

func createAdmin(username, password string) error {
	if db.URL() == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	conn, err := db.Connect(db.Config{URL: db.URL()})
	if err != nil {
		return fmt.Errorf("unable to connect to DB: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = gormstore.NewAuthStore(conn).CreateAdmin(username, string(hash))
	return err
}
