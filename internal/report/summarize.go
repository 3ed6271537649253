package report

import "github.com/aghanem007/quickbooks-financial-reporting/internal/model"

// SummarizeInvoices flattens invoices to per-document summary rows, the
// input for the flat profit-and-loss path and the documents export.
func SummarizeInvoices(invoices []model.Invoice) []model.DocumentSummary {
	out := make([]model.DocumentSummary, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, model.DocumentSummary{
			ID:           inv.ID,
			Counterparty: inv.Customer,
			TxnDate:      inv.TxnDate,
			Total:        inv.Total,
			Balance:      inv.Balance,
		})
	}
	return out
}

// SummarizeBills flattens bills to per-document summary rows.
func SummarizeBills(bills []model.Bill) []model.DocumentSummary {
	out := make([]model.DocumentSummary, 0, len(bills))
	for _, b := range bills {
		out = append(out, model.DocumentSummary{
			ID:           b.ID,
			Counterparty: b.Vendor,
			TxnDate:      b.TxnDate,
			Total:        b.Total,
			Balance:      b.Balance,
		})
	}
	return out
}
