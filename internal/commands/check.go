package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/config"
	"github.com/aghanem007/quickbooks-financial-reporting/internal/qbo"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify the ledger API credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), os.Stdout)
		},
	}

	return cmd
}

func runCheck(ctx context.Context, out io.Writer) error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	client, creds := newAPIClient(cfg, log)

	info, err := probeCompany(ctx, client, creds, log)
	if err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}

	fmt.Fprintf(out, "Connected to %s (%s realm %s)\n", info.CompanyName, cfg.Environment, cfg.RealmID)
	return nil
}

// newAPIClient wires a ledger client from the environment config.
func newAPIClient(cfg config.Config, log *slog.Logger) (*qbo.Client, qbo.CredentialProvider) {
	creds := qbo.NewTokenSource(cfg.ClientID, cfg.ClientSecret, cfg.RefreshToken, cfg.AccessToken)
	client := qbo.NewClient(cfg.RealmID, creds, log)
	client.SetBaseURL(cfg.BaseURL())
	return client, creds
}

// probeCompany fetches the company record to prove the credentials work.
// A seeded access token may have expired, so a rejection triggers one
// refresh before the probe is retried.
func probeCompany(ctx context.Context, client *qbo.Client, creds qbo.CredentialProvider, log *slog.Logger) (qbo.CompanyInfo, error) {
	info, err := client.CompanyInfo(ctx)
	var authErr *qbo.AuthorizationError
	if !errors.As(err, &authErr) {
		return info, err
	}

	log.Warn("access token rejected, refreshing", "error", err)
	if _, err := creds.Refresh(ctx); err != nil {
		return qbo.CompanyInfo{}, err
	}
	return client.CompanyInfo(ctx)
}
