package model

import "github.com/shopspring/decimal"

// DetailKind tags the payload variant attached to a transaction line.
type DetailKind string

const (
	// DetailNone marks a line with no recognized detail payload.
	DetailNone DetailKind = ""
	// DetailSalesItem marks a revenue line referencing a sold item.
	DetailSalesItem DetailKind = "sales_item"
	// DetailAccountExpense marks an expense line referencing an account.
	DetailAccountExpense DetailKind = "account_expense"
	// DetailItemExpense marks an expense line referencing a purchased item.
	DetailItemExpense DetailKind = "item_expense"
)

// Ref points at another ledger object by ID, carrying its display name.
type Ref struct {
	Value string
	Name  string
}

// LineDetail is a tagged variant: Kind selects which reference is
// meaningful. Item holds the reference for sales-item and item-expense
// lines, Account for account-expense lines.
type LineDetail struct {
	Kind    DetailKind
	Item    Ref
	Account Ref
}

// Line is a single transaction line on an invoice or bill. Amount is zero
// when the ledger omitted it.
type Line struct {
	Amount decimal.Decimal
	Detail LineDetail
}
