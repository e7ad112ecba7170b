package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/walletledger/internal/infrastructure/config"
	"github.com/iho/walletledger/internal/infrastructure/logger"
	"github.com/iho/walletledger/internal/infrastructure/postgres"
)

type options struct {
	baseURL string
	timeout time.Duration
	userID  string
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
		Use:           "walletledger-cli",
		Short:         "WalletLedger CLI tool",
		Long:          `A command line interface for the WalletLedger API and database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the WalletLedger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&opts.userID, "user", "", "User id sent as X-User-ID")

	rootCmd.AddCommand(ratesCmd(opts), currenciesCmd(opts), cashflowsCmd(opts), migrateCmd())
	return rootCmd
}

func ratesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Exchange rate operations",
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the currency catalog if it is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newAPIClient(opts).do(cmd.OutOrStdout(), http.MethodPost, "/api/v1/rates/seed", nil)
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Fetch and store today's rates (run daily from a scheduler)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newAPIClient(opts).do(cmd.OutOrStdout(), http.MethodPost, "/api/v1/rates/update", nil)
		},
	}

	var (
		date     string
		rateType string
	)
	getCmd := &cobra.Command{
		Use:   "get CODE",
		Short: "Show the stored rate of a currency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if date != "" {
				query.Set("date", date)
			}
			if rateType != "" {
				query.Set("type", rateType)
			}
			path := "/api/v1/currencies/" + url.PathEscape(args[0]) + "/rates"
			if len(query) > 0 {
				path += "?" + query.Encode()
			}
			return newAPIClient(opts).do(cmd.OutOrStdout(), http.MethodGet, path, nil)
		},
	}
	getCmd.Flags().StringVar(&date, "date", "", "Rate date (YYYY-MM-DD), defaults to today")
	getCmd.Flags().StringVar(&rateType, "type", "", "Rate type, defaults to ForexBuying")

	cmd.AddCommand(seedCmd, updateCmd, getCmd)
	return cmd
}

func currenciesCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currencies",
		Short: "Currency catalog operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the currency catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newAPIClient(opts).do(cmd.OutOrStdout(), http.MethodGet, "/api/v1/currencies", nil)
		},
	})
	return cmd
}

func cashflowsCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cashflows",
		Short: "Cashflow operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get ID",
		Short: "Show a cashflow with its document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return newAPIClient(opts).do(cmd.OutOrStdout(), http.MethodGet, "/api/v1/cashflows/"+url.PathEscape(args[0]), nil)
		},
	})
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations (uses DATABASE_URL and MIGRATIONS_PATH)",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console"}, cmd.ErrOrStderr())
				return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := config.Load()
				if err != nil {
					return err
				}
				log := logger.NewWithWriter(logger.Config{Level: cfg.LogLevel, Format: "console"}, cmd.ErrOrStderr())
				return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, log)
			},
		},
	)
	return cmd
}

type apiClient struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

func newAPIClient(opts *options) *apiClient {
	return &apiClient{
		baseURL:    opts.baseURL,
		userID:     opts.userID,
		httpClient: &http.Client{Timeout: opts.timeout},
	}
}

// do sends a request and pretty-prints the JSON response to out.
func (c *apiClient) do(out io.Writer, method, path string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s %s failed (status %d): %s", method, path, resp.StatusCode, bytes.TrimSpace(raw))
	}

	return printJSON(out, raw)
}

func printJSON(out io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, err = out.Write(raw)
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(out)
	return err
}
