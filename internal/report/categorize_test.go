package report

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func salesLine(amount, item string) model.Line {
	return model.Line{
		Amount: dec(amount),
		Detail: model.LineDetail{Kind: model.DetailSalesItem, Item: model.Ref{Value: "1", Name: item}},
	}
}

func accountExpenseLine(amount, account string) model.Line {
	return model.Line{
		Amount: dec(amount),
		Detail: model.LineDetail{Kind: model.DetailAccountExpense, Account: model.Ref{Value: "80", Name: account}},
	}
}

func itemExpenseLine(amount, item string) model.Line {
	return model.Line{
		Amount: dec(amount),
		Detail: model.LineDetail{Kind: model.DetailItemExpense, Item: model.Ref{Value: "31", Name: item}},
	}
}

func bareLine(amount string) model.Line {
	return model.Line{Amount: dec(amount)}
}

func acct(name, accountType, balance string) model.Account {
	return model.Account{ID: "1", Name: name, Type: accountType, Balance: dec(balance)}
}

func TestCategorizeRevenueTakesItemName(t *testing.T) {
	c := NewCategorizer()

	got := c.Categorize(salesLine("5000", "Consulting"), model.DocRevenue)

	assert.Equal(t, "Consulting", got.Category)
	assert.True(t, got.Amount.Equal(dec("5000")), "amount: got %s", got.Amount)
	assert.False(t, got.Fallback)
}

func TestCategorizeRevenueWithoutDetailFallsBack(t *testing.T) {
	c := NewCategorizer()

	got := c.Categorize(bareLine("1000"), model.DocRevenue)

	assert.Equal(t, "Other Revenue", got.Category)
	assert.True(t, got.Amount.Equal(dec("1000")), "amount passes through unchanged: got %s", got.Amount)
	assert.True(t, got.Fallback)
}

func TestCategorizeRevenueUnnamedReferenceFallsBack(t *testing.T) {
	c := NewCategorizer()
	line := model.Line{
		Amount: dec("250"),
		Detail: model.LineDetail{Kind: model.DetailSalesItem, Item: model.Ref{Value: "9"}},
	}

	got := c.Categorize(line, model.DocRevenue)

	assert.Equal(t, "Other Revenue", got.Category, "a present but unnamed reference never yields a blank category")
	assert.True(t, got.Fallback)
}

func TestCategorizeExpenseDetailPriority(t *testing.T) {
	c := NewCategorizer()
	tests := []struct {
		name     string
		line     model.Line
		category string
		fallback bool
	}{
		{"account-based detail wins", accountExpenseLine("2000", "Rent"), "Rent", false},
		{"item-based detail is second", itemExpenseLine("500", "Supplies"), "Supplies", false},
		{"no detail takes the default", bareLine("75"), "Other Expenses", true},
		{"unnamed account reference takes the default", model.Line{
			Amount: dec("75"),
			Detail: model.LineDetail{Kind: model.DetailAccountExpense, Account: model.Ref{Value: "80"}},
		}, "Other Expenses", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Categorize(tt.line, model.DocExpense)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.fallback, got.Fallback)
		})
	}
}

func TestCategorizeSalesDetailOnExpenseKindFallsBack(t *testing.T) {
	c := NewCategorizer()

	got := c.Categorize(salesLine("100", "Consulting"), model.DocExpense)

	assert.Equal(t, "Other Expenses", got.Category, "revenue detail never categorizes an expense line")
}

func TestCategorizeAbsentAmountIsZero(t *testing.T) {
	c := NewCategorizer()

	got := c.Categorize(model.Line{}, model.DocRevenue)

	assert.True(t, got.Amount.IsZero(), "amount: got %s", got.Amount)
}

func TestCategorizeConservesValue(t *testing.T) {
	c := NewCategorizer()
	lines := []model.Line{
		salesLine("5000", "Consulting"),
		salesLine("3000", "Products"),
		bareLine("1000"),
		salesLine("-250", "Consulting"),
	}

	var raw, categorized decimal.Decimal
	for _, line := range lines {
		raw = raw.Add(line.Amount)
		categorized = categorized.Add(c.Categorize(line, model.DocRevenue).Amount)
	}

	assert.True(t, categorized.Equal(raw), "categorization must not lose or duplicate value: %s != %s", categorized, raw)
}
