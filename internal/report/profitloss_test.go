package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
)

func TestBuildProfitLossCategorizes(t *testing.T) {
	invoices := []model.Invoice{
		{ID: "1", Lines: []model.Line{salesLine("5000", "Consulting")}},
		{ID: "2", Lines: []model.Line{salesLine("3000", "Products")}},
	}
	bills := []model.Bill{
		{ID: "3", Lines: []model.Line{
			accountExpenseLine("2000", "Rent"),
			itemExpenseLine("500", "Supplies"),
		}},
	}

	pl := BuildProfitLoss(invoices, bills)

	assert.Equal(t, ShapeCategorized, pl.Shape)
	assert.True(t, pl.TotalRevenue.Equal(dec("8000")), "revenue: got %s", pl.TotalRevenue)
	assert.True(t, pl.TotalExpenses.Equal(dec("2500")), "expenses: got %s", pl.TotalExpenses)
	assert.True(t, pl.GrossProfit.Equal(dec("5500")), "gross profit: got %s", pl.GrossProfit)
	assert.True(t, pl.NetIncome.Equal(dec("5500")), "net income: got %s", pl.NetIncome)

	require.Len(t, pl.RevenueDetail, 2)
	assert.True(t, pl.RevenueDetail["Consulting"].Equal(dec("5000")))
	assert.True(t, pl.RevenueDetail["Products"].Equal(dec("3000")))
	require.Len(t, pl.ExpenseDetail, 2)
	assert.True(t, pl.ExpenseDetail["Rent"].Equal(dec("2000")))
	assert.True(t, pl.ExpenseDetail["Supplies"].Equal(dec("500")))
	assert.Zero(t, pl.Fallbacks)
}

func TestBuildProfitLossRecordsFallbacks(t *testing.T) {
	invoices := []model.Invoice{
		{ID: "1", Lines: []model.Line{bareLine("1000")}},
	}

	pl := BuildProfitLoss(invoices, nil)

	assert.True(t, pl.RevenueDetail["Other Revenue"].Equal(dec("1000")), "got %s", pl.RevenueDetail["Other Revenue"])
	assert.True(t, pl.TotalRevenue.Equal(dec("1000")))
	assert.Equal(t, 1, pl.Fallbacks)
}

func TestBuildProfitLossMergesRepeatedCategories(t *testing.T) {
	invoices := []model.Invoice{
		{ID: "1", Lines: []model.Line{salesLine("5000", "Consulting")}},
		{ID: "2", Lines: []model.Line{salesLine("1500", "Consulting")}},
	}

	pl := BuildProfitLoss(invoices, nil)

	require.Len(t, pl.RevenueDetail, 1)
	assert.True(t, pl.RevenueDetail["Consulting"].Equal(dec("6500")), "got %s", pl.RevenueDetail["Consulting"])
}

func TestBuildProfitLossEmptyInputs(t *testing.T) {
	pl := BuildProfitLoss(nil, nil)

	assert.Equal(t, ShapeCategorized, pl.Shape)
	assert.True(t, pl.NetIncome.IsZero(), "net income: got %s", pl.NetIncome)
	assert.Empty(t, pl.RevenueDetail)
	assert.Empty(t, pl.ExpenseDetail)
	assert.NotNil(t, pl.RevenueDetail, "empty, not absent")
}

func TestBuildProfitLossConservesValue(t *testing.T) {
	invoices := []model.Invoice{
		{ID: "1", Lines: []model.Line{
			salesLine("100.25", "A"),
			salesLine("-40.10", "B"),
			bareLine("7.77"),
		}},
	}
	bills := []model.Bill{
		{ID: "2", Lines: []model.Line{
			accountExpenseLine("55.55", "Rent"),
			itemExpenseLine("0.45", "Supplies"),
			bareLine("12"),
		}},
	}

	pl := BuildProfitLoss(invoices, bills)

	var rawRevenue, rawExpense decimal.Decimal
	for _, line := range invoices[0].Lines {
		rawRevenue = rawRevenue.Add(line.Amount)
	}
	for _, line := range bills[0].Lines {
		rawExpense = rawExpense.Add(line.Amount)
	}
	assert.True(t, sumValues(pl.RevenueDetail).Equal(rawRevenue), "revenue detail must sum to the raw lines")
	assert.True(t, sumValues(pl.ExpenseDetail).Equal(rawExpense), "expense detail must sum to the raw lines")
	assert.True(t, pl.TotalRevenue.Equal(rawRevenue))
	assert.True(t, pl.TotalExpenses.Equal(rawExpense))
}

func TestBuildProfitLossFromTotals(t *testing.T) {
	day := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	invoices := []model.DocumentSummary{
		{ID: "1", Counterparty: "Acme", TxnDate: day, Total: dec("8000")},
		{ID: "2", Counterparty: "Globex", TxnDate: day, Total: dec("1200")},
	}
	bills := []model.DocumentSummary{
		{ID: "3", Counterparty: "City Properties", TxnDate: day, Total: dec("2500")},
	}

	pl := BuildProfitLossFromTotals(invoices, bills)

	assert.Equal(t, ShapeFlatTotals, pl.Shape)
	assert.Nil(t, pl.RevenueDetail, "flat shape carries no detail maps")
	assert.Nil(t, pl.ExpenseDetail)
	assert.True(t, pl.TotalRevenue.Equal(dec("9200")), "revenue: got %s", pl.TotalRevenue)
	assert.True(t, pl.TotalExpenses.Equal(dec("2500")), "expenses: got %s", pl.TotalExpenses)
	assert.True(t, pl.NetIncome.Equal(dec("6700")), "net income: got %s", pl.NetIncome)
	assert.True(t, pl.GrossProfit.Equal(pl.NetIncome))
}
