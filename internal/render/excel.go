package render

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/report"
)

// WorkbookFile is the Excel report written by the xlsx renderer.
const WorkbookFile = "financial-statements.xlsx"

const currencyFormat = "$#,##0.00"

// ExcelRenderer writes one workbook with a sheet per statement into Dir.
type ExcelRenderer struct {
	Dir string
}

type sheetStyles struct {
	title        int
	bold         int
	currency     int
	boldCurrency int
}

func newSheetStyles(f *excelize.File) (sheetStyles, error) {
	numFmt := currencyFormat
	var st sheetStyles
	var err error
	if st.title, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 13}}); err != nil {
		return st, err
	}
	if st.bold, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return st, err
	}
	if st.currency, err = f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt}); err != nil {
		return st, err
	}
	st.boldCurrency, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &numFmt})
	return st, err
}

// Render writes the present statements as sheets of one workbook.
func (r *ExcelRenderer) Render(sts Statements, periodLabel string) error {
	if sts.Empty() {
		return nil
	}
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return fmt.Errorf("creating report dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	styles, err := newSheetStyles(f)
	if err != nil {
		return fmt.Errorf("building styles: %w", err)
	}

	if sts.ProfitLoss != nil {
		if err := writeProfitLossSheet(f, styles, sts.ProfitLoss, periodLabel); err != nil {
			return fmt.Errorf("profit and loss sheet: %w", err)
		}
	}
	if sts.BalanceSheet != nil {
		if err := writeBalanceSheet(f, styles, sts.BalanceSheet, periodLabel); err != nil {
			return fmt.Errorf("balance sheet: %w", err)
		}
	}
	if sts.CashFlow != nil {
		if err := writeCashFlowSheet(f, styles, sts.CashFlow, periodLabel); err != nil {
			return fmt.Errorf("cash flow sheet: %w", err)
		}
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("dropping default sheet: %w", err)
	}
	if err := f.SaveAs(filepath.Join(r.Dir, WorkbookFile)); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// sheetWriter appends labelled rows to one sheet, keeping the first
// error it hits. Style 0 means the default style.
type sheetWriter struct {
	f      *excelize.File
	sheet  string
	styles sheetStyles
	row    int
	err    error
}

func newSheet(f *excelize.File, styles sheetStyles, name, title, periodLabel string) (*sheetWriter, error) {
	if _, err := f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("creating sheet %q: %w", name, err)
	}
	if err := f.SetColWidth(name, "A", "A", 42); err != nil {
		return nil, fmt.Errorf("sizing sheet %q: %w", name, err)
	}
	if err := f.SetColWidth(name, "B", "B", 16); err != nil {
		return nil, fmt.Errorf("sizing sheet %q: %w", name, err)
	}
	w := &sheetWriter{f: f, sheet: name, styles: styles, row: 1}
	w.label(title, styles.title)
	w.label("Period: "+periodLabel, 0)
	w.blank()
	return w, nil
}

func (w *sheetWriter) set(col string, v any, style int) {
	if w.err != nil {
		return
	}
	cell := fmt.Sprintf("%s%d", col, w.row)
	if w.err = w.f.SetCellValue(w.sheet, cell, v); w.err != nil {
		return
	}
	if style != 0 {
		w.err = w.f.SetCellStyle(w.sheet, cell, cell, style)
	}
}

func (w *sheetWriter) label(text string, style int) {
	w.set("A", text, style)
	w.row++
}

func (w *sheetWriter) amountRow(label string, amount decimal.Decimal, labelStyle, amountStyle int) {
	w.set("A", label, labelStyle)
	// Display cells hold floats so the currency format applies; the
	// statement math stays decimal.
	w.set("B", amount.InexactFloat64(), amountStyle)
	w.row++
}

func (w *sheetWriter) blank() {
	w.row++
}

func writeProfitLossSheet(f *excelize.File, st sheetStyles, pl *report.ProfitLoss, periodLabel string) error {
	w, err := newSheet(f, st, "Profit & Loss", "Profit & Loss Statement", periodLabel)
	if err != nil {
		return err
	}
	if pl.Shape == report.ShapeCategorized {
		w.label("Revenue", st.bold)
		for _, cat := range sortedCategories(pl.RevenueDetail) {
			w.amountRow(cat, pl.RevenueDetail[cat], 0, st.currency)
		}
		w.blank()
		w.label("Expenses", st.bold)
		for _, cat := range sortedCategories(pl.ExpenseDetail) {
			w.amountRow(cat, pl.ExpenseDetail[cat], 0, st.currency)
		}
		w.blank()
	}
	w.amountRow("Total Revenue", pl.TotalRevenue, st.bold, st.boldCurrency)
	w.amountRow("Total Expenses", pl.TotalExpenses, st.bold, st.boldCurrency)
	w.amountRow("Net Income", pl.NetIncome, st.bold, st.boldCurrency)
	return w.err
}

func writeBalanceSheet(f *excelize.File, st sheetStyles, bs *report.BalanceSheet, periodLabel string) error {
	w, err := newSheet(f, st, "Balance Sheet", "Balance Sheet", periodLabel)
	if err != nil {
		return err
	}
	for _, row := range bs.Rows {
		switch row.Kind {
		case report.RowSection:
			w.label(row.Label, st.bold)
		case report.RowDetail:
			w.amountRow(row.Label, *row.Amount, 0, st.currency)
		case report.RowSubtotal, report.RowTotal:
			w.amountRow(row.Label, *row.Amount, st.bold, st.boldCurrency)
		case report.RowSpacer:
			w.blank()
		}
	}
	return w.err
}

func writeCashFlowSheet(f *excelize.File, st sheetStyles, cf *report.CashFlow, periodLabel string) error {
	w, err := newSheet(f, st, "Cash Flow", "Cash Flow Statement", periodLabel)
	if err != nil {
		return err
	}
	for _, sec := range flowSections(cf) {
		w.label(sec.title, st.bold)
		for _, label := range sec.order {
			w.amountRow(label, sec.amounts[label], 0, st.currency)
		}
		w.amountRow(sec.netName, sec.net, st.bold, st.boldCurrency)
		w.blank()
	}
	w.amountRow("Net Change in Cash", cf.NetChange, st.bold, st.boldCurrency)
	w.amountRow("Beginning Cash", cf.BeginningCash, 0, st.currency)
	w.amountRow("Ending Cash", cf.EndingCash, st.bold, st.boldCurrency)
	return w.err
}
