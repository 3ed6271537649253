package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/report"
)

// CashFlowRules is the cashflow.yaml file: the opening cash position and
// which declared account types belong to each cash-flow activity.
type CashFlowRules struct {
	BeginningCash string   `yaml:"beginning_cash"`
	Operating     []string `yaml:"operating"`
	Investing     []string `yaml:"investing"`
	Financing     []string `yaml:"financing"`
}

// LoadRules reads a cashflow.yaml file from disk.
func LoadRules(path string) (*CashFlowRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var rules CashFlowRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	return &rules, nil
}

// SaveRules writes rules to a YAML file.
func SaveRules(path string, rules *CashFlowRules) error {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// DefaultRules classifies the working-capital account types as operating,
// fixed assets as investing, and long-term debt and equity as financing.
func DefaultRules() *CashFlowRules {
	return &CashFlowRules{
		BeginningCash: "0",
		Operating: []string{
			"Accounts Receivable",
			"Accounts Payable",
			"Other Current Asset",
			"Other Current Liability",
			"Credit Card",
		},
		Investing: []string{"Fixed Asset"},
		Financing: []string{"Long Term Liability", "Equity"},
	}
}

// FlowRules converts the file form to the report package's rules,
// validating the opening cash amount. Type tags match case-insensitively.
func (r *CashFlowRules) FlowRules() (report.FlowRules, error) {
	var beginning decimal.Decimal
	if r.BeginningCash != "" {
		d, err := decimal.NewFromString(r.BeginningCash)
		if err != nil {
			return report.FlowRules{}, fmt.Errorf("parsing beginning_cash %q: %w", r.BeginningCash, err)
		}
		beginning = d
	}

	categories := map[string]report.FlowCategory{}
	add := func(tags []string, cat report.FlowCategory) {
		for _, tag := range tags {
			categories[strings.ToLower(strings.TrimSpace(tag))] = cat
		}
	}
	add(r.Operating, report.FlowOperating)
	add(r.Investing, report.FlowInvesting)
	add(r.Financing, report.FlowFinancing)

	return report.FlowRules{BeginningCash: beginning, Categories: categories}, nil
}
