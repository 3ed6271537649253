package report

import (
	"github.com/shopspring/decimal"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
)

// RowKind tells renderers what a balance-sheet row is.
type RowKind string

const (
	RowSection  RowKind = "section"
	RowDetail   RowKind = "detail"
	RowSubtotal RowKind = "subtotal"
	RowTotal    RowKind = "total"
	RowSpacer   RowKind = "spacer"
)

// Row is one display row. Amount is nil only on section headers and
// spacers. Row order is significant and renderers must preserve it.
type Row struct {
	Label  string
	Amount *decimal.Decimal
	Kind   RowKind
}

// BalanceSheet carries the ordered display rows plus per-section totals.
// SectionTotals always holds the three canonical sections, zero when a
// section had no accounts; Unclassified appears only when present.
type BalanceSheet struct {
	Rows          []Row
	SectionTotals map[Section]decimal.Decimal
}

// BuildBalanceSheet groups accounts by section and subgroup and lays out
// the rows: per subgroup a header, indented account details, a
// "Total <subgroup>" subtotal, and a spacer; per section a closing
// "Total <section>" row. Sections render in fixed order; subgroups and
// accounts keep first-encounter order. Each section total equals the sum
// of its subtotal rows exactly.
func BuildBalanceSheet(accounts []model.Account) BalanceSheet {
	type group struct {
		subgroup string
		accounts []model.Account
	}
	bySection := map[Section][]*group{}
	index := map[Section]map[string]*group{}

	for _, acct := range accounts {
		section, subgroup := Classify(acct.Type)
		if index[section] == nil {
			index[section] = map[string]*group{}
		}
		g := index[section][subgroup]
		if g == nil {
			g = &group{subgroup: subgroup}
			index[section][subgroup] = g
			bySection[section] = append(bySection[section], g)
		}
		g.accounts = append(g.accounts, acct)
	}

	bs := BalanceSheet{
		SectionTotals: map[Section]decimal.Decimal{
			SectionAssets:      {},
			SectionLiabilities: {},
			SectionEquity:      {},
		},
	}
	for _, section := range sectionOrder {
		groups := bySection[section]
		if len(groups) == 0 {
			continue
		}
		var sectionTotal decimal.Decimal
		for _, g := range groups {
			bs.Rows = append(bs.Rows, Row{Label: g.subgroup, Kind: RowSection})
			var subtotal decimal.Decimal
			for _, acct := range g.accounts {
				amount := acct.Balance
				bs.Rows = append(bs.Rows, Row{Label: "  " + acct.DisplayName(), Amount: &amount, Kind: RowDetail})
				subtotal = subtotal.Add(acct.Balance)
			}
			groupTotal := subtotal
			bs.Rows = append(bs.Rows, Row{Label: "Total " + g.subgroup, Amount: &groupTotal, Kind: RowSubtotal})
			bs.Rows = append(bs.Rows, Row{Kind: RowSpacer})
			sectionTotal = sectionTotal.Add(subtotal)
		}
		total := sectionTotal
		bs.Rows = append(bs.Rows, Row{Label: "Total " + string(section), Amount: &total, Kind: RowTotal})
		bs.SectionTotals[section] = sectionTotal
	}
	return bs
}
