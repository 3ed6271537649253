package report

import (
	"github.com/shopspring/decimal"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
)

// Shape tells callers which form a ProfitLoss carries: categorized
// detail maps, or flat totals when no line detail was available.
type Shape string

const (
	ShapeCategorized Shape = "categorized"
	ShapeFlatTotals  Shape = "flat_totals"
)

// ProfitLoss is the profit and loss statement. GrossProfit and NetIncome
// always carry the same value: the model has no cost-of-goods split.
// Fallbacks counts lines that took a default category.
type ProfitLoss struct {
	Shape         Shape
	RevenueDetail map[string]decimal.Decimal
	ExpenseDetail map[string]decimal.Decimal
	TotalRevenue  decimal.Decimal
	TotalExpenses decimal.Decimal
	GrossProfit   decimal.Decimal
	NetIncome     decimal.Decimal
	Fallbacks     int
}

// BuildProfitLoss aggregates invoice lines as revenue and bill lines as
// expenses, grouped by category. Empty inputs produce zero totals and
// empty maps, never an error.
func BuildProfitLoss(invoices []model.Invoice, bills []model.Bill) ProfitLoss {
	cat := NewCategorizer()
	pl := ProfitLoss{
		Shape:         ShapeCategorized,
		RevenueDetail: map[string]decimal.Decimal{},
		ExpenseDetail: map[string]decimal.Decimal{},
	}
	for _, inv := range invoices {
		for _, line := range inv.Lines {
			c := cat.Categorize(line, model.DocRevenue)
			pl.RevenueDetail[c.Category] = pl.RevenueDetail[c.Category].Add(c.Amount)
			pl.TotalRevenue = pl.TotalRevenue.Add(c.Amount)
			if c.Fallback {
				pl.Fallbacks++
			}
		}
	}
	for _, bill := range bills {
		for _, line := range bill.Lines {
			c := cat.Categorize(line, model.DocExpense)
			pl.ExpenseDetail[c.Category] = pl.ExpenseDetail[c.Category].Add(c.Amount)
			pl.TotalExpenses = pl.TotalExpenses.Add(c.Amount)
			if c.Fallback {
				pl.Fallbacks++
			}
		}
	}
	pl.GrossProfit = pl.TotalRevenue.Sub(pl.TotalExpenses)
	pl.NetIncome = pl.GrossProfit
	return pl
}

// BuildProfitLossFromTotals produces the flat shape from document totals.
// The detail maps stay nil so callers cannot mistake it for the
// categorized shape.
func BuildProfitLossFromTotals(invoices, bills []model.DocumentSummary) ProfitLoss {
	pl := ProfitLoss{Shape: ShapeFlatTotals}
	for _, d := range invoices {
		pl.TotalRevenue = pl.TotalRevenue.Add(d.Total)
	}
	for _, d := range bills {
		pl.TotalExpenses = pl.TotalExpenses.Add(d.Total)
	}
	pl.GrossProfit = pl.TotalRevenue.Sub(pl.TotalExpenses)
	pl.NetIncome = pl.GrossProfit
	return pl
}
