package qbo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
)

// txnDateFormat is how the service renders transaction dates.
const txnDateFormat = "2006-01-02"

// CompanyInfo identifies the connected company.
type CompanyInfo struct {
	CompanyName string `json:"CompanyName"`
	LegalName   string `json:"LegalName"`
	Country     string `json:"Country"`
}

type companyInfoEnvelope struct {
	CompanyInfo CompanyInfo `json:"CompanyInfo"`
}

// faultResponse is the error body returned with non-2xx statuses.
type faultResponse struct {
	Fault struct {
		Type   string       `json:"type"`
		Errors []faultError `json:"Error"`
	} `json:"Fault"`
}

type faultError struct {
	Code    string `json:"code"`
	Message string `json:"Message"`
	Detail  string `json:"Detail"`
}

// first returns the leading fault fields, or zero values when the body
// carried no parseable fault.
func (f faultResponse) first() (code, message, detail string) {
	if len(f.Fault.Errors) == 0 {
		return "", "", ""
	}
	e := f.Fault.Errors[0]
	return e.Code, e.Message, e.Detail
}

type invoiceEnvelope struct {
	QueryResponse struct {
		Invoice       []wireInvoice `json:"Invoice"`
		StartPosition int           `json:"startPosition"`
		MaxResults    int           `json:"maxResults"`
	} `json:"QueryResponse"`
}

type billEnvelope struct {
	QueryResponse struct {
		Bill          []wireBill `json:"Bill"`
		StartPosition int        `json:"startPosition"`
		MaxResults    int        `json:"maxResults"`
	} `json:"QueryResponse"`
}

type accountEnvelope struct {
	QueryResponse struct {
		Account       []wireAccount `json:"Account"`
		StartPosition int           `json:"startPosition"`
		MaxResults    int           `json:"maxResults"`
	} `json:"QueryResponse"`
}

type wireRef struct {
	Value string `json:"value"`
	Name  string `json:"name"`
}

// Wire records keep amounts as pointers so a missing field is telling:
// required amounts fail conversion, optional ones default to zero.
type wireInvoice struct {
	ID          string           `json:"Id"`
	CustomerRef *wireRef         `json:"CustomerRef"`
	TxnDate     string           `json:"TxnDate"`
	TotalAmt    *decimal.Decimal `json:"TotalAmt"`
	Balance     *decimal.Decimal `json:"Balance"`
	Line        []wireLine       `json:"Line"`
}

type wireBill struct {
	ID        string           `json:"Id"`
	VendorRef *wireRef         `json:"VendorRef"`
	TxnDate   string           `json:"TxnDate"`
	TotalAmt  *decimal.Decimal `json:"TotalAmt"`
	Balance   *decimal.Decimal `json:"Balance"`
	Line      []wireLine       `json:"Line"`
}

type wireAccount struct {
	ID             string           `json:"Id"`
	Name           string           `json:"Name"`
	AccountType    string           `json:"AccountType"`
	CurrentBalance *decimal.Decimal `json:"CurrentBalance"`
}

type wireLine struct {
	Amount                        *decimal.Decimal          `json:"Amount"`
	SalesItemLineDetail           *wireSalesItemDetail      `json:"SalesItemLineDetail"`
	AccountBasedExpenseLineDetail *wireAccountExpenseDetail `json:"AccountBasedExpenseLineDetail"`
	ItemBasedExpenseLineDetail    *wireItemExpenseDetail    `json:"ItemBasedExpenseLineDetail"`
}

type wireSalesItemDetail struct {
	ItemRef *wireRef `json:"ItemRef"`
}

type wireAccountExpenseDetail struct {
	AccountRef *wireRef `json:"AccountRef"`
}

type wireItemExpenseDetail struct {
	ItemRef *wireRef `json:"ItemRef"`
}

func (w wireInvoice) toModel() (model.Invoice, error) {
	if w.TotalAmt == nil {
		return model.Invoice{}, &MalformedRecordError{Entity: "Invoice", ID: w.ID, Field: "TotalAmt"}
	}
	txnDate, err := parseTxnDate(w.TxnDate)
	if err != nil {
		return model.Invoice{}, &MalformedRecordError{Entity: "Invoice", ID: w.ID, Field: "TxnDate"}
	}
	return model.Invoice{
		ID:       w.ID,
		Customer: refName(w.CustomerRef),
		TxnDate:  txnDate,
		Total:    *w.TotalAmt,
		Balance:  amountOrZero(w.Balance),
		Lines:    toLines(w.Line),
	}, nil
}

func (w wireBill) toModel() (model.Bill, error) {
	if w.TotalAmt == nil {
		return model.Bill{}, &MalformedRecordError{Entity: "Bill", ID: w.ID, Field: "TotalAmt"}
	}
	txnDate, err := parseTxnDate(w.TxnDate)
	if err != nil {
		return model.Bill{}, &MalformedRecordError{Entity: "Bill", ID: w.ID, Field: "TxnDate"}
	}
	return model.Bill{
		ID:      w.ID,
		Vendor:  refName(w.VendorRef),
		TxnDate: txnDate,
		Total:   *w.TotalAmt,
		Balance: amountOrZero(w.Balance),
		Lines:   toLines(w.Line),
	}, nil
}

func (w wireAccount) toModel() (model.Account, error) {
	if w.CurrentBalance == nil {
		return model.Account{}, &MalformedRecordError{Entity: "Account", ID: w.ID, Field: "CurrentBalance"}
	}
	return model.Account{
		ID:      w.ID,
		Name:    w.Name,
		Type:    w.AccountType,
		Balance: *w.CurrentBalance,
	}, nil
}

// toModel maps whichever detail payload is present onto the tagged variant.
// Lines with no recognized payload keep DetailNone.
func (w wireLine) toModel() model.Line {
	line := model.Line{Amount: amountOrZero(w.Amount)}
	switch {
	case w.SalesItemLineDetail != nil:
		line.Detail = model.LineDetail{
			Kind: model.DetailSalesItem,
			Item: refOrZero(w.SalesItemLineDetail.ItemRef),
		}
	case w.AccountBasedExpenseLineDetail != nil:
		line.Detail = model.LineDetail{
			Kind:    model.DetailAccountExpense,
			Account: refOrZero(w.AccountBasedExpenseLineDetail.AccountRef),
		}
	case w.ItemBasedExpenseLineDetail != nil:
		line.Detail = model.LineDetail{
			Kind: model.DetailItemExpense,
			Item: refOrZero(w.ItemBasedExpenseLineDetail.ItemRef),
		}
	}
	return line
}

func toLines(wires []wireLine) []model.Line {
	if len(wires) == 0 {
		return nil
	}
	lines := make([]model.Line, 0, len(wires))
	for _, w := range wires {
		lines = append(lines, w.toModel())
	}
	return lines
}

func parseTxnDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(txnDateFormat, s)
}

func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Decimal{}
	}
	return *d
}

func refName(r *wireRef) string {
	if r == nil {
		return ""
	}
	return r.Name
}

func refOrZero(r *wireRef) model.Ref {
	if r == nil {
		return model.Ref{}
	}
	return model.Ref{Value: r.Value, Name: r.Name}
}
