package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/panelledger/internal/adapter/http/dto"
	"github.com/iho/panelledger/internal/infrastructure/postgres"
)

type options struct {
	baseURL string
	timeout time.Duration
	userID  int64
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "panelledger-cli",
		Short:         "PanelLedger CLI tool",
		Long:          `A command line interface for the PanelLedger API and database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", envOr("PANELLEDGER_URL", "http://localhost:8080"), "Base URL of the PanelLedger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().Int64Var(&opts.userID, "user", 0, "User ID sent as X-User-ID")

	rootCmd.AddCommand(
		ledgerCmd(opts),
		usersCmd(opts),
		accountsCmd(opts),
		entriesCmd(opts, "expenses", "expense"),
		entriesCmd(opts, "incomes", "income"),
		transactionsCmd(opts),
		overviewCmd(opts),
		migrateCmd(),
	)

	return rootCmd
}

func (o *options) client() *client {
	return newClient(o.baseURL, o.userID, o.timeout)
}

func ledgerCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check that every account balance matches its entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var report dto.ReconciliationReportResponse
			err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/ledger/consistency", nil, &report)

			var apiErr *apiError
			if errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict {
				fmt.Fprintf(cmd.OutOrStdout(), "Consistency check FAILED\n%s\n", apiErr.Message)
				return errors.New("ledger is inconsistent")
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Consistency check PASSED")
			fmt.Fprintf(out, "Accounts: %d reconciled of %d\n", report.ReconciledAccounts, report.TotalAccounts)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reconcile <account-id>",
		Short: "Recompute one account's balance from its entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result dto.ReconciliationResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/accounts/"+args[0]+"/reconciliation", nil, &result); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	})

	return cmd
}

func usersCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}

	var admin bool
	create := &cobra.Command{
		Use:   "create <username>",
		Short: "Create a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var user dto.UserResponse
			req := dto.CreateUserRequest{Username: args[0], IsAdmin: admin}
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/users", req, &user); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
	create.Flags().BoolVar(&admin, "admin", false, "Grant admin rights")

	cmd.AddCommand(create, listCmd(opts, "/api/v1/users", "List users"))
	return cmd
}

func accountsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}

	var currency, opening string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create an account owned by --user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var account dto.AccountResponse
			req := dto.CreateAccountRequest{Name: args[0], Currency: currency, OpeningBalance: opening}
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/accounts", req, &account); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), account)
		},
	}
	create.Flags().StringVar(&currency, "currency", "", "ISO currency code")
	create.Flags().StringVar(&opening, "opening-balance", "", "Opening balance")

	adjust := &cobra.Command{
		Use:   "adjust <account-id> <delta>",
		Short: "Apply a signed manual balance adjustment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var account dto.AccountResponse
			path := "/api/v1/accounts/" + args[0] + "/adjustments"
			if err := opts.client().do(cmd.Context(), http.MethodPost, path, dto.AdjustBalanceRequest{Delta: args[1]}, &account); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), account)
		},
	}

	cmd.AddCommand(
		create,
		adjust,
		listCmd(opts, "/api/v1/accounts", "List accounts"),
		deleteCmd(opts, "/api/v1/accounts", "Delete an account"),
	)
	return cmd
}

func entriesCmd(opts *options, resource, noun string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   resource,
		Short: "Manage " + resource,
	}

	var req dto.EntryRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Record an " + noun + " and apply it to the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var entry dto.EntryResponse
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/"+resource, req, &entry); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), entry)
		},
	}
	create.Flags().StringVar(&req.AccountID, "account", "", "Account ID")
	create.Flags().StringVar(&req.CategoryID, "category", "", "Category ID")
	create.Flags().StringVar(&req.SubcategoryID, "subcategory", "", "Subcategory ID")
	create.Flags().StringVar(&req.Amount, "amount", "", "Positive amount")
	create.Flags().StringVar(&req.Currency, "currency", "", "ISO currency code")
	create.Flags().StringVar(&req.Comment, "comment", "", "Free-text comment")
	for _, name := range []string{"account", "category", "subcategory", "amount"} {
		_ = create.MarkFlagRequired(name)
	}

	cmd.AddCommand(
		create,
		listCmd(opts, "/api/v1/"+resource, "List your "+resource),
		deleteCmd(opts, "/api/v1/"+resource, "Delete an "+noun+" and reverse its effect"),
	)
	return cmd
}

func transactionsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Manage transfers between accounts",
	}

	var req dto.TransactionRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Move an amount from one account to another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var transaction dto.TransactionResponse
			if err := opts.client().do(cmd.Context(), http.MethodPost, "/api/v1/transactions", req, &transaction); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), transaction)
		},
	}
	create.Flags().StringVar(&req.Account1ID, "from", "", "Source account ID")
	create.Flags().StringVar(&req.Account2ID, "to", "", "Destination account ID")
	create.Flags().StringVar(&req.Amount, "amount", "", "Positive amount")
	create.Flags().StringVar(&req.Comment, "comment", "", "Free-text comment")
	for _, name := range []string{"from", "to", "amount"} {
		_ = create.MarkFlagRequired(name)
	}

	cmd.AddCommand(
		create,
		listCmd(opts, "/api/v1/transactions", "List your transactions"),
		deleteCmd(opts, "/api/v1/transactions", "Delete a transaction and reverse it"),
	)
	return cmd
}

func overviewCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "entries",
		Short: "Show your incomes, expenses and transactions, each ordered by date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var overview dto.EntriesOverviewResponse
			if err := opts.client().do(cmd.Context(), http.MethodGet, "/api/v1/entries", nil, &overview); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), overview)
		},
	}
}

func listCmd(opts *options, path, short string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var items []json.RawMessage
			if err := opts.client().do(cmd.Context(), http.MethodGet, path, nil, &items); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), items)
		},
	}
}

func deleteCmd(opts *options, path, short string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("invalid id %q", args[0])
			}
			if err := opts.client().do(cmd.Context(), http.MethodDelete, path+"/"+args[0], nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection URL")

	requireURL := func(*cobra.Command, []string) error {
		if databaseURL == "" {
			return errors.New("--database-url or DATABASE_URL is required")
		}
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:     "up",
			Short:   "Apply all pending migrations",
			Args:    cobra.NoArgs,
			PreRunE: requireURL,
			RunE: func(cmd *cobra.Command, args []string) error {
				return postgres.RunMigrations(databaseURL)
			},
		},
		&cobra.Command{
			Use:     "down",
			Short:   "Roll back the last migration",
			Args:    cobra.NoArgs,
			PreRunE: requireURL,
			RunE: func(cmd *cobra.Command, args []string) error {
				return postgres.RunMigrationsDown(databaseURL)
			},
		},
		&cobra.Command{
			Use:     "version",
			Short:   "Print the current schema version",
			Args:    cobra.NoArgs,
			PreRunE: requireURL,
			RunE: func(cmd *cobra.Command, args []string) error {
				version, dirty, err := postgres.MigrationVersion(databaseURL)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
				return nil
			},
		},
	)

	return cmd
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
