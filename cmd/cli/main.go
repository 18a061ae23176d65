package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/caisse/internal/adapter/http/dto"
	"github.com/iho/caisse/internal/infrastructure/logger"
	"github.com/iho/caisse/internal/infrastructure/postgres"
)

var (
	baseURL string
	token   string
	timeout time.Duration
	asJSON  bool

	bcryptGenerate = bcrypt.GenerateFromPassword
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "caisse-cli",
		Short:         "Caisse CLI tool",
		Long:          `A command line interface for the caisse register API and database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&baseURL, "url", envOr("CAISSE_URL", "http://localhost:8080"), "Base URL of the caisse API")
	root.PersistentFlags().StringVar(&token, "token", os.Getenv("CAISSE_TOKEN"), "Bearer token")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	root.PersistentFlags().BoolVar(&asJSON, "json", false, "Print raw JSON responses")

	root.AddCommand(registerCmd(), ledgerCmd(), hashPasswordCmd(), migrateCmd())
	return root
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Cash register session operations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "open",
			Short: "Open a new register session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return sessionRequest(cmd.OutOrStdout(), http.MethodPost, "/caisse/open")
			},
		},
		&cobra.Command{
			Use:   "close",
			Short: "Close the open register session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return sessionRequest(cmd.OutOrStdout(), http.MethodPost, "/caisse/close")
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show the latest register session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return sessionRequest(cmd.OutOrStdout(), http.MethodGet, "/caisse")
			},
		},
	)

	return cmd
}

func sessionRequest(out io.Writer, method, path string) error {
	var session dto.SessionResponse
	if err := call(method, path, &session); err != nil {
		return err
	}
	if asJSON {
		printJSON(session)
		return nil
	}

	state := "closed"
	if session.IsOpen {
		state = "open"
	}
	fmt.Fprintf(out, "Session %s (%s)\n", session.ID, state)
	fmt.Fprintf(out, "Opened:  %s\n", session.OpenedAt.Format(time.RFC3339))
	if session.ClosedAt != nil {
		fmt.Fprintf(out, "Closed:  %s\n", session.ClosedAt.Format(time.RFC3339))
	}
	fmt.Fprintf(out, "Opening: %s\n", session.OpeningBalance.StringFixed(2))
	fmt.Fprintf(out, "Balance: %s\n", session.ClosingBalance.StringFixed(2))
	return nil
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkConsistency(cmd.OutOrStdout())
		},
	})

	return cmd
}

func checkConsistency(out io.Writer) error {
	var report dto.ConsistencyResponse
	if err := call(http.MethodGet, "/caisse/consistency", &report); err != nil {
		return err
	}
	if asJSON {
		printJSON(report)
	} else {
		printReport(out, &report)
	}

	if !report.LedgerConsistent || len(report.Discrepancies) > 0 {
		return errors.New("consistency check FAILED")
	}
	if !asJSON {
		fmt.Fprintln(out, "Consistency check PASSED")
	}
	return nil
}

func printReport(out io.Writer, report *dto.ConsistencyResponse) {
	fmt.Fprintf(out, "Sessions:   %d checked, %d reconciled\n", report.TotalSessions, report.ReconciledSessions)
	fmt.Fprintf(out, "Ledger:     consistent=%v\n", report.LedgerConsistent)
	for _, d := range report.Discrepancies {
		fmt.Fprintf(out, "  session %s: expected %s, recorded %s\n",
			d.SessionID, d.ExpectedBalance.StringFixed(2), d.RecordedBalance.StringFixed(2))
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print the bcrypt hash of a password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcryptGenerate([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			fmt.Println(string(hash))
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	var databaseURL, migrationsPath string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")
	cmd.PersistentFlags().StringVar(&migrationsPath, "migrations", envOr("MIGRATIONS_PATH", "migrations"), "Migrations directory")

	log := func() zerolog.Logger {
		return logger.New(logger.Config{Level: "info", Format: "console", Output: os.Stderr})
	}
	requireURL := func() error {
		if databaseURL == "" {
			return errors.New("--database-url or DATABASE_URL is required")
		}
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireURL(); err != nil {
					return err
				}
				return postgres.RunMigrations(log(), databaseURL, migrationsPath)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireURL(); err != nil {
					return err
				}
				return postgres.RunMigrationsDown(log(), databaseURL, migrationsPath)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print the current schema version",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := requireURL(); err != nil {
					return err
				}
				version, dirty, err := postgres.MigrationVersion(databaseURL, migrationsPath)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty=%v)\n", version, dirty)
				return nil
			},
		},
	)

	return cmd
}

// call performs a request against the API and decodes a 2xx JSON body into out.
func call(method, path string, out any) error {
	req, err := http.NewRequest(method, strings.TrimRight(baseURL, "/")+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr dto.ErrorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%s %s: %d %s", method, path, resp.StatusCode, truncate(string(body), 200))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(b))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
