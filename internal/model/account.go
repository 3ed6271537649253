package model

import "github.com/shopspring/decimal"

// Account is one entry of the company's chart of accounts as the ledger
// service reports it. Type carries the declared account-type tag
// (e.g. "Bank", "Accounts Receivable") and is the sole classification input
// for the balance sheet.
type Account struct {
	ID      string
	Name    string
	Type    string
	Balance decimal.Decimal
}

// DisplayName returns the account name, or "Unknown Account" for unnamed
// accounts so no account is ever dropped from a report.
func (a Account) DisplayName() string {
	if a.Name == "" {
		return "Unknown Account"
	}
	return a.Name
}
