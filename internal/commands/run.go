package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/config"
	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
	"github.com/aghanem007/quickbooks-financial-reporting/internal/period"
	"github.com/aghanem007/quickbooks-financial-reporting/internal/qbo"
	"github.com/aghanem007/quickbooks-financial-reporting/internal/render"
	"github.com/aghanem007/quickbooks-financial-reporting/internal/report"
	"github.com/aghanem007/quickbooks-financial-reporting/internal/runlog"
)

type runOptions struct {
	period    string
	from      string
	to        string
	format    string
	outDir    string
	rulesPath string
	logDir    string
	documents bool
}

func newRunCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch ledger data and build the financial statements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), os.Stdout, opts)
		},
	}

	cmd.Flags().StringVar(&opts.period, "period", period.PresetMonth, "reporting period: month, quarter, ytd, custom or all")
	cmd.Flags().StringVar(&opts.from, "from", "", "custom period start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.to, "to", "", "custom period end (YYYY-MM-DD)")
	cmd.Flags().StringVar(&opts.format, "format", "xlsx", "report format: xlsx or csv")
	cmd.Flags().StringVar(&opts.outDir, "out", "reports", "output directory")
	cmd.Flags().StringVar(&opts.rulesPath, "rules", "cashflow.yaml", "cash flow classification rules file")
	cmd.Flags().StringVar(&opts.logDir, "log-dir", "logs", "run log directory")
	cmd.Flags().BoolVar(&opts.documents, "documents", false, "also export invoice and bill summaries")

	return cmd
}

func runReport(ctx context.Context, out io.Writer, opts runOptions) error {
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	rng, err := period.Resolve(opts.period, opts.from, opts.to, time.Now())
	if err != nil {
		return err
	}

	rules, err := loadRules(opts.rulesPath)
	if err != nil {
		return err
	}
	flowRules, err := rules.FlowRules()
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.rulesPath, err)
	}

	renderer, err := render.For(opts.format, opts.outDir)
	if err != nil {
		return err
	}

	run, err := runlog.Open(opts.logDir)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer run.Close()
	log := run.Logger(slog.NewTextHandler(os.Stderr, nil))

	client, creds := newAPIClient(cfg, log)
	info, err := probeCompany(ctx, client, creds, log)
	if err != nil {
		return fmt.Errorf("verifying credentials: %w", err)
	}
	log.Info("run started",
		"company", info.CompanyName,
		"environment", cfg.Environment,
		"period", rng.Label,
		"filter", rng.Filter())

	res := fetchEntities(ctx, client, rng.Filter(), log)
	if err := ctx.Err(); err != nil {
		return err
	}
	log.Info("entities fetched",
		"invoices", len(res.invoices),
		"bills", len(res.bills),
		"accounts", len(res.accounts))

	sts, outcomes := buildStatements(res, flowRules, log)

	if !sts.Empty() {
		if err := renderer.Render(sts, rng.Label); err != nil {
			return fmt.Errorf("rendering statements: %w", err)
		}
		log.Info("statements rendered", "dir", opts.outDir, "format", opts.format)
	}

	if opts.documents {
		if err := exportDocuments(opts.outDir, res); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "Run %s: %s\n", run.ID(), rng.Label)
	var failed []string
	for _, oc := range outcomes {
		if oc.err != nil {
			failed = append(failed, oc.name)
			log.Error("statement failed", "statement", oc.name, "error", oc.err)
			fmt.Fprintf(out, "  %s: failed: %v\n", oc.name, oc.err)
			continue
		}
		log.Info("statement built", "statement", oc.name)
		fmt.Fprintf(out, "  %s: ok\n", oc.name)
	}
	if len(failed) > 0 {
		return fmt.Errorf("statements failed: %s (log: %s)", strings.Join(failed, ", "), run.Path())
	}

	fmt.Fprintf(out, "Statements written to %s\n", opts.outDir)
	return nil
}

// loadRules falls back to the built-in defaults when no rules file exists,
// so a bare workspace still produces a cash flow statement.
func loadRules(path string) (*config.CashFlowRules, error) {
	rules, err := config.LoadRules(path)
	if errors.Is(err, os.ErrNotExist) {
		return config.DefaultRules(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return rules, nil
}

// fetchResults carries the three entity fetches. Each slot pairs records
// with the error that ended the fetch, so statement building can decide
// per statement what is usable.
type fetchResults struct {
	invoices    []model.Invoice
	invoicesErr error
	bills       []model.Bill
	billsErr    error
	accounts    []model.Account
	accountsErr error
}

// fetchEntities retrieves invoices, bills and accounts concurrently. Each
// goroutine writes to its own slot, so no locking is needed. Accounts are
// a point-in-time snapshot and ignore the period filter.
func fetchEntities(ctx context.Context, client *qbo.Client, filter string, log *slog.Logger) fetchResults {
	var res fetchResults
	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		res.invoices, res.invoicesErr = qbo.FetchAll(ctx, client.InvoiceSource(), filter,
			qbo.DefaultRetryPolicy(), log.With("entity", "Invoice"))
	}()
	go func() {
		defer wg.Done()
		res.bills, res.billsErr = qbo.FetchAll(ctx, client.BillSource(), filter,
			qbo.DefaultRetryPolicy(), log.With("entity", "Bill"))
	}()
	go func() {
		defer wg.Done()
		res.accounts, res.accountsErr = qbo.FetchAll(ctx, client.AccountSource(), "",
			qbo.DefaultRetryPolicy(), log.With("entity", "Account"))
	}()
	wg.Wait()

	return res
}

type statementOutcome struct {
	name string
	err  error
}

// buildStatements assembles whatever the fetched data supports. A failed
// fetch takes down only the statements that need it: the profit and loss
// needs invoices and bills, the balance sheet needs accounts, and the
// cash flow needs both.
func buildStatements(res fetchResults, rules report.FlowRules, log *slog.Logger) (render.Statements, []statementOutcome) {
	var sts render.Statements
	outcomes := make([]statementOutcome, 0, 3)

	plErr := res.invoicesErr
	if plErr == nil {
		plErr = res.billsErr
	}
	if plErr != nil {
		outcomes = append(outcomes, statementOutcome{"profit and loss", plErr})
	} else {
		pl := report.BuildProfitLoss(res.invoices, res.bills)
		if pl.Fallbacks > 0 {
			log.Warn("lines fell back to a default category", "count", pl.Fallbacks)
		}
		sts.ProfitLoss = &pl
		outcomes = append(outcomes, statementOutcome{"profit and loss", nil})
	}

	if res.accountsErr != nil {
		outcomes = append(outcomes, statementOutcome{"balance sheet", res.accountsErr})
	} else {
		bs := report.BuildBalanceSheet(res.accounts)
		sts.BalanceSheet = &bs
		outcomes = append(outcomes, statementOutcome{"balance sheet", nil})
	}

	switch {
	case plErr != nil:
		outcomes = append(outcomes, statementOutcome{"cash flow", fmt.Errorf("profit and loss unavailable: %w", plErr)})
	case res.accountsErr != nil:
		outcomes = append(outcomes, statementOutcome{"cash flow", fmt.Errorf("accounts unavailable: %w", res.accountsErr)})
	default:
		cf := report.BuildCashFlow(report.ClassifyMovements(res.accounts, sts.ProfitLoss.NetIncome, rules))
		sts.CashFlow = &cf
		outcomes = append(outcomes, statementOutcome{"cash flow", nil})
	}

	return sts, outcomes
}

// exportDocuments writes invoice and bill summary CSVs for whichever
// fetches succeeded.
func exportDocuments(dir string, res fetchResults) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if res.invoicesErr == nil {
		if err := writeDocumentsFile(filepath.Join(dir, "invoices.csv"), report.SummarizeInvoices(res.invoices)); err != nil {
			return err
		}
	}
	if res.billsErr == nil {
		if err := writeDocumentsFile(filepath.Join(dir, "bills.csv"), report.SummarizeBills(res.bills)); err != nil {
			return err
		}
	}
	return nil
}

func writeDocumentsFile(path string, docs []model.DocumentSummary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	if err := render.WriteDocumentSummaries(f, docs); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
