// Package render writes built statements to report files.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/report"
)

// Statements bundles whatever the run managed to build. Nil members were
// not built; renderers write what is present.
type Statements struct {
	ProfitLoss   *report.ProfitLoss
	BalanceSheet *report.BalanceSheet
	CashFlow     *report.CashFlow
}

// Empty reports whether there is nothing to render.
func (s Statements) Empty() bool {
	return s.ProfitLoss == nil && s.BalanceSheet == nil && s.CashFlow == nil
}

// Renderer writes statements to report files.
type Renderer interface {
	Render(sts Statements, periodLabel string) error
}

// For returns the renderer for format, writing into dir. Formats are
// xlsx (excel also accepted) and csv.
func For(format, dir string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "xlsx", "excel":
		return &ExcelRenderer{Dir: dir}, nil
	case "csv":
		return &CSVRenderer{Dir: dir}, nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}

func sortedCategories(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// operatingOrder keeps the Net Income reconciliation entry first, the
// rest alphabetical.
func operatingOrder(m map[string]decimal.Decimal) []string {
	out := make([]string, 0, len(m))
	if _, ok := m["Net Income"]; ok {
		out = append(out, "Net Income")
	}
	for _, k := range sortedCategories(m) {
		if k != "Net Income" {
			out = append(out, k)
		}
	}
	return out
}

// flowSection is one activity block of the cash flow statement, in
// display order.
type flowSection struct {
	title   string
	netName string
	order   []string
	amounts map[string]decimal.Decimal
	net     decimal.Decimal
}

func flowSections(cf *report.CashFlow) []flowSection {
	return []flowSection{
		{"Operating Activities", "Net Operating Cash Flow", operatingOrder(cf.Operating), cf.Operating, cf.NetOperating},
		{"Investing Activities", "Net Investing Cash Flow", sortedCategories(cf.Investing), cf.Investing, cf.NetInvesting},
		{"Financing Activities", "Net Financing Cash Flow", sortedCategories(cf.Financing), cf.Financing, cf.NetFinancing},
	}
}
