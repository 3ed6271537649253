package report

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Section is a top-level balance-sheet grouping.
type Section string

const (
	SectionAssets       Section = "Assets"
	SectionLiabilities  Section = "Liabilities"
	SectionEquity       Section = "Equity"
	SectionUnclassified Section = "Unclassified"
)

// sectionOrder is the balance-sheet display order. Unclassified renders
// last and only when an unrecognized account type produced it.
var sectionOrder = []Section{SectionAssets, SectionLiabilities, SectionEquity, SectionUnclassified}

type classification struct {
	section  Section
	subgroup string
}

// classifications maps declared account-type tags, lowercased, to their
// section and canonical subgroup label.
var classifications = map[string]classification{
	"bank":                    {SectionAssets, "Bank"},
	"accounts receivable":     {SectionAssets, "Accounts Receivable"},
	"other current asset":     {SectionAssets, "Other Current Asset"},
	"fixed asset":             {SectionAssets, "Fixed Asset"},
	"accounts payable":        {SectionLiabilities, "Accounts Payable"},
	"credit card":             {SectionLiabilities, "Credit Card"},
	"other current liability": {SectionLiabilities, "Other Current Liability"},
	"long term liability":     {SectionLiabilities, "Long Term Liability"},
	"equity":                  {SectionEquity, "Equity"},
}

var subgroupTitle = cases.Title(language.AmericanEnglish)

// Classify maps a declared account-type tag to its balance-sheet section
// and a display subgroup. The mapping is total: unknown tags land in
// Unclassified with a title-cased rendering of the raw tag, so no account
// is ever dropped from the report.
func Classify(accountType string) (Section, string) {
	tag := strings.TrimSpace(accountType)
	if c, ok := classifications[strings.ToLower(tag)]; ok {
		return c.section, c.subgroup
	}
	if tag == "" {
		return SectionUnclassified, string(SectionUnclassified)
	}
	return SectionUnclassified, subgroupTitle.String(tag)
}
