package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
)

func TestSummarizeInvoices(t *testing.T) {
	day := time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)
	invoices := []model.Invoice{
		{ID: "145", Customer: "Acme Corp", TxnDate: day, Total: dec("1250"), Balance: dec("250"),
			Lines: []model.Line{salesLine("1250", "Consulting")}},
	}

	got := SummarizeInvoices(invoices)

	require.Len(t, got, 1)
	assert.Equal(t, model.DocumentSummary{
		ID: "145", Counterparty: "Acme Corp", TxnDate: day,
		Total: dec("1250"), Balance: dec("250"),
	}, got[0])
}

func TestSummarizeBills(t *testing.T) {
	day := time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC)
	bills := []model.Bill{
		{ID: "301", Vendor: "City Properties", TxnDate: day, Total: dec("2500")},
	}

	got := SummarizeBills(bills)

	require.Len(t, got, 1)
	assert.Equal(t, "City Properties", got[0].Counterparty)
	assert.True(t, got[0].Total.Equal(dec("2500")))
	assert.True(t, got[0].Balance.IsZero())
}

func TestSummarizeEmptyInputs(t *testing.T) {
	assert.Empty(t, SummarizeInvoices(nil))
	assert.Empty(t, SummarizeBills(nil))
}
