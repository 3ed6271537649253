package report

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
)

// FlowCategory names a cash-flow activity bucket.
type FlowCategory string

const (
	FlowOperating FlowCategory = "operating"
	FlowInvesting FlowCategory = "investing"
	FlowFinancing FlowCategory = "financing"
)

// FlowRules is the caller-supplied mapping from declared account-type
// tags (lowercased keys) to cash-flow categories, plus the opening cash
// position.
type FlowRules struct {
	BeginningCash decimal.Decimal
	Categories    map[string]FlowCategory
}

// CashFlowInputs is everything BuildCashFlow needs: net income, three
// pre-classified movement maps, and the opening cash position. The
// builder never infers category membership itself.
type CashFlowInputs struct {
	NetIncome     decimal.Decimal
	Operating     map[string]decimal.Decimal
	Investing     map[string]decimal.Decimal
	Financing     map[string]decimal.Decimal
	BeginningCash decimal.Decimal
}

// CashFlow is the cash flow statement, indirect method.
type CashFlow struct {
	NetIncome     decimal.Decimal
	Operating     map[string]decimal.Decimal
	Investing     map[string]decimal.Decimal
	Financing     map[string]decimal.Decimal
	NetOperating  decimal.Decimal
	NetInvesting  decimal.Decimal
	NetFinancing  decimal.Decimal
	NetChange     decimal.Decimal
	BeginningCash decimal.Decimal
	EndingCash    decimal.Decimal
}

// BuildCashFlow derives the net figures from pre-classified inputs.
// NetChange is the sum of the three category nets; EndingCash is
// BeginningCash plus NetChange.
func BuildCashFlow(in CashFlowInputs) CashFlow {
	cf := CashFlow{
		NetIncome:     in.NetIncome,
		Operating:     in.Operating,
		Investing:     in.Investing,
		Financing:     in.Financing,
		BeginningCash: in.BeginningCash,
		NetOperating:  sumValues(in.Operating),
		NetInvesting:  sumValues(in.Investing),
		NetFinancing:  sumValues(in.Financing),
	}
	cf.NetChange = cf.NetOperating.Add(cf.NetInvesting).Add(cf.NetFinancing)
	cf.EndingCash = in.BeginningCash.Add(cf.NetChange)
	return cf
}

func sumValues(m map[string]decimal.Decimal) decimal.Decimal {
	var sum decimal.Decimal
	for _, v := range m {
		sum = sum.Add(v)
	}
	return sum
}

// ClassifyMovements builds cash-flow inputs from account balances using
// the caller-supplied rules. The operating map always opens with the
// period's net income (indirect method). Balances of asset-section
// accounts enter negated, an asset build-up consumes cash; liability and
// equity balances enter as-is. Account types absent from the rules are
// skipped.
func ClassifyMovements(accounts []model.Account, netIncome decimal.Decimal, rules FlowRules) CashFlowInputs {
	in := CashFlowInputs{
		NetIncome:     netIncome,
		Operating:     map[string]decimal.Decimal{"Net Income": netIncome},
		Investing:     map[string]decimal.Decimal{},
		Financing:     map[string]decimal.Decimal{},
		BeginningCash: rules.BeginningCash,
	}
	for _, acct := range accounts {
		cat, ok := rules.Categories[strings.ToLower(strings.TrimSpace(acct.Type))]
		if !ok {
			continue
		}
		delta := acct.Balance
		if section, _ := Classify(acct.Type); section == SectionAssets {
			delta = delta.Neg()
		}
		name := acct.DisplayName()
		switch cat {
		case FlowOperating:
			in.Operating[name] = in.Operating[name].Add(delta)
		case FlowInvesting:
			in.Investing[name] = in.Investing[name].Add(delta)
		case FlowFinancing:
			in.Financing[name] = in.Financing[name].Add(delta)
		}
	}
	return in
}
