package render

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
	"github.com/aghanem007/quickbooks-financial-reporting/internal/period"
	"github.com/aghanem007/quickbooks-financial-reporting/internal/report"
)

// CSV report file names.
const (
	ProfitLossFile   = "profit-loss.csv"
	BalanceSheetFile = "balance-sheet.csv"
	CashFlowFile     = "cash-flow.csv"
)

// Headers for the CSV report files.
const (
	profitLossHeader   = "category,amount,row_type"
	balanceSheetHeader = "account,balance,row_type"
	cashFlowHeader     = "label,amount,row_type"
	documentsHeader    = "id,counterparty,txn_date,total,balance"
)

// Profit-and-loss row types.
const (
	plRowRevenue = "revenue"
	plRowExpense = "expense"
	plRowTotal   = "total"
)

// CSVRenderer writes one CSV file per statement into Dir. CSV output is
// raw data; the period label appears only in workbook output.
type CSVRenderer struct {
	Dir string
}

// Render writes the present statements, one file each.
func (r *CSVRenderer) Render(sts Statements, periodLabel string) error {
	if sts.Empty() {
		return nil
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}
	if sts.ProfitLoss != nil {
		if err := r.writeFile(ProfitLossFile, profitLossHeader, profitLossRows(sts.ProfitLoss)); err != nil {
			return err
		}
	}
	if sts.BalanceSheet != nil {
		if err := r.writeFile(BalanceSheetFile, balanceSheetHeader, balanceSheetRows(sts.BalanceSheet)); err != nil {
			return err
		}
	}
	if sts.CashFlow != nil {
		if err := r.writeFile(CashFlowFile, cashFlowHeader, cashFlowRows(sts.CashFlow)); err != nil {
			return err
		}
	}
	return nil
}

func (r *CSVRenderer) writeFile(name, header string, rows [][]string) error {
	f, err := os.Create(filepath.Join(r.Dir, name))
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	defer cw.Flush()

	if err := cw.Write(strings.Split(header, ",")); err != nil {
		return fmt.Errorf("writing %s header: %w", name, err)
	}
	for i, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", name, i+2, err)
		}
	}
	return cw.Error()
}

func profitLossRows(pl *report.ProfitLoss) [][]string {
	var rows [][]string
	if pl.Shape == report.ShapeCategorized {
		for _, cat := range sortedCategories(pl.RevenueDetail) {
			rows = append(rows, []string{cat, pl.RevenueDetail[cat].String(), plRowRevenue})
		}
		for _, cat := range sortedCategories(pl.ExpenseDetail) {
			rows = append(rows, []string{cat, pl.ExpenseDetail[cat].String(), plRowExpense})
		}
	}
	rows = append(rows,
		[]string{"Total Revenue", pl.TotalRevenue.String(), plRowTotal},
		[]string{"Total Expenses", pl.TotalExpenses.String(), plRowTotal},
		[]string{"Net Income", pl.NetIncome.String(), plRowTotal},
	)
	return rows
}

func balanceSheetRows(bs *report.BalanceSheet) [][]string {
	rows := make([][]string, 0, len(bs.Rows))
	for _, row := range bs.Rows {
		amount := ""
		if row.Amount != nil {
			amount = row.Amount.String()
		}
		rows = append(rows, []string{strings.TrimLeft(row.Label, " "), amount, string(row.Kind)})
	}
	return rows
}

func cashFlowRows(cf *report.CashFlow) [][]string {
	var rows [][]string
	for _, sec := range flowSections(cf) {
		rows = append(rows, []string{sec.title, "", string(report.RowSection)})
		for _, label := range sec.order {
			rows = append(rows, []string{label, sec.amounts[label].String(), string(report.RowDetail)})
		}
		rows = append(rows, []string{sec.netName, sec.net.String(), string(report.RowSubtotal)})
	}
	rows = append(rows,
		[]string{"Net Change in Cash", cf.NetChange.String(), string(report.RowTotal)},
		[]string{"Beginning Cash", cf.BeginningCash.String(), string(report.RowDetail)},
		[]string{"Ending Cash", cf.EndingCash.String(), string(report.RowTotal)},
	)
	return rows
}

// WriteDocumentSummaries writes per-document rows, the invoices.csv and
// bills.csv export.
func WriteDocumentSummaries(w io.Writer, docs []model.DocumentSummary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(documentsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, d := range docs {
		txnDate := ""
		if !d.TxnDate.IsZero() {
			txnDate = d.TxnDate.Format(period.DateFormat)
		}
		row := []string{d.ID, d.Counterparty, txnDate, d.Total.String(), d.Balance.String()}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
