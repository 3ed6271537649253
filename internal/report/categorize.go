// Package report builds the three financial statements from fetched
// ledger records: profit and loss, balance sheet, and cash flow. All
// builders are pure transforms over in-memory data.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
)

// Category defaults when no reference yields a label.
const (
	DefaultRevenueCategory = "Other Revenue"
	DefaultExpenseCategory = "Other Expenses"
)

// Categorized is a transaction line resolved to a category label.
// Fallback records that no reference produced a label and the kind
// default was used instead.
type Categorized struct {
	Category string
	Amount   decimal.Decimal
	Fallback bool
}

// extractor inspects a line's detail and either produces a category
// label or declines.
type extractor func(model.LineDetail) (string, bool)

func salesItemName(d model.LineDetail) (string, bool) {
	if d.Kind != model.DetailSalesItem || d.Item.Name == "" {
		return "", false
	}
	return d.Item.Name, true
}

func expenseAccountName(d model.LineDetail) (string, bool) {
	if d.Kind != model.DetailAccountExpense || d.Account.Name == "" {
		return "", false
	}
	return d.Account.Name, true
}

func expenseItemName(d model.LineDetail) (string, bool) {
	if d.Kind != model.DetailItemExpense || d.Item.Name == "" {
		return "", false
	}
	return d.Item.Name, true
}

// Categorizer resolves transaction lines to category labels using an
// ordered rule list per document kind. Rules are tried in order; the
// first that produces a label wins.
type Categorizer struct {
	rules    map[model.DocKind][]extractor
	defaults map[model.DocKind]string
}

// NewCategorizer returns the standard categorizer: revenue lines take
// the sold item's name; expense lines take the expense account's name
// first, the purchased item's name second.
func NewCategorizer() *Categorizer {
	return &Categorizer{
		rules: map[model.DocKind][]extractor{
			model.DocRevenue: {salesItemName},
			model.DocExpense: {expenseAccountName, expenseItemName},
		},
		defaults: map[model.DocKind]string{
			model.DocRevenue: DefaultRevenueCategory,
			model.DocExpense: DefaultExpenseCategory,
		},
	}
}

// Categorize resolves one line. It is total: a missing detail payload or
// an unnamed reference falls back to the kind default, never a blank
// category and never an error.
func (c *Categorizer) Categorize(line model.Line, kind model.DocKind) Categorized {
	for _, rule := range c.rules[kind] {
		if name, ok := rule(line.Detail); ok {
			return Categorized{Category: name, Amount: line.Amount}
		}
	}
	return Categorized{Category: c.defaults[kind], Amount: line.Amount, Fallback: true}
}
