package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocKind tells the categorizer whether a document's lines carry revenue or
// expense.
type DocKind string

const (
	DocRevenue DocKind = "revenue"
	DocExpense DocKind = "expense"
)

// Invoice is a revenue document fetched from the ledger service. Documents
// are immutable once fetched.
type Invoice struct {
	ID       string
	Customer string
	TxnDate  time.Time
	Total    decimal.Decimal
	Balance  decimal.Decimal
	Lines    []Line
}

// Bill is an expense document fetched from the ledger service.
type Bill struct {
	ID      string
	Vendor  string
	TxnDate time.Time
	Total   decimal.Decimal
	Balance decimal.Decimal
	Lines   []Line
}

// DocumentSummary is a flattened per-document row: the input for flat
// profit and loss totals and for the document CSV export.
type DocumentSummary struct {
	ID           string
	Counterparty string
	TxnDate      time.Time
	Total        decimal.Decimal
	Balance      decimal.Decimal
}
