// dfsctl is the operational companion to the API server: schema
// migration, admin account creation, static asset collection, session
// cleanup, and sample data seeding.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"dfseducation/internal/config"
	"dfseducation/internal/database"
	"dfseducation/internal/database/migration"
	"dfseducation/internal/repository/sqlrepo"
	"dfseducation/internal/service"
	"dfseducation/internal/staticfiles"
)

func main() {
	root := &cobra.Command{
		Use:           "dfsctl",
		Short:         "Administration commands for the DFS Education service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		migrateCmd(),
		createAdminCmd(),
		collectStaticCmd(),
		clearSessionsCmd(),
		seedCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// openDB loads configuration, connects, and runs migrations. Every
// subcommand that touches data goes through it.
func openDB(ctx context.Context) (*config.AppConfig, *sql.DB, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if err := migration.EnsureMigrated(ctx, db, cfg.Database.Engine); err != nil {
		db.Close()
		return nil, nil, err
	}
	return cfg, db, nil
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()
			fmt.Fprintln(cmd.OutOrStdout(), "database schema is up to date")
			return nil
		},
	}
}

func createAdminCmd() *cobra.Command {
	var username, email, password string

	cmd := &cobra.Command{
		Use:   "createadmin",
		Short: "Create a superuser account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			auth := service.NewAuthService(
				sqlrepo.NewUserSQL(db),
				sqlrepo.NewSessionSQL(db),
				cfg.SecretKey,
				time.Duration(cfg.Session.TTLHours)*time.Hour,
			)
			user, err := auth.CreateAdmin(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created superuser %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "admin username")
	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}

func collectStaticCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collectstatic",
		Short: "Copy static asset sources into the static root",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return err
			}
			res, err := staticfiles.Collect(cfg.Files.StaticRoot, cfg.Files.StaticSourceDirs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d static files copied to %s, %d skipped\n",
				res.Copied, cfg.Files.StaticRoot, res.Skipped)
			return nil
		},
	}
}

func clearSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clearsessions",
		Short: "Delete expired login sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			auth := service.NewAuthService(
				sqlrepo.NewUserSQL(db),
				sqlrepo.NewSessionSQL(db),
				cfg.SecretKey,
				time.Duration(cfg.Session.TTLHours)*time.Hour,
			)
			n, err := auth.ClearExpiredSessions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired sessions\n", n)
			return nil
		},
	}
}
