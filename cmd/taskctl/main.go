// Command taskctl runs administrative tasks against the taskapp database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dimitrije/taskapp-api/internal/config"
	"github.com/dimitrije/taskapp-api/internal/database"
	"github.com/dimitrije/taskapp-api/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	databaseURL string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "taskctl",
	Short: "Administer the taskapp database",
	Long: `taskctl runs migrations and account maintenance outside the API.

Examples:
  taskctl migrate up                 # Apply pending migrations
  taskctl promote-admin a@x.com      # Grant admin rights
  taskctl block a@x.com              # Block a user and revoke their sessions
  taskctl seed                       # Load demo data`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres DSN (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(promoteAdminCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(unblockCmd)
	rootCmd.AddCommand(seedCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}

func newLogger() *logrus.Logger {
	level := "info"
	if verbose {
		level = "debug"
	}
	return logging.New(level, false)
}

// openDB connects using --database-url, falling back to the environment.
func openDB(ctx context.Context) (*database.DB, error) {
	dsn := databaseURL
	if dsn == "" {
		cfg, err := loadConfig()
		if err != nil {
			return nil, err
		}
		dsn = cfg.DatabaseURL
	}
	if dsn == "" {
		return nil, fmt.Errorf("no database url: set DATABASE_URL or --database-url")
	}
	return database.New(ctx, dsn)
}

// loadConfig turns the panic on a missing JWT_SECRET into an error; the CLI
// does not sign tokens.
func loadConfig() (cfg *config.Config, err error) {
	if os.Getenv("JWT_SECRET") == "" {
		_ = os.Setenv("JWT_SECRET", "unused")
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("load config: %v", r)
		}
	}()
	return config.Load()
}
