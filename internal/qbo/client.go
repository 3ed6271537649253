package qbo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/aghanem007/quickbooks-financial-reporting/internal/model"
)

const (
	// SandboxBaseURL and ProductionBaseURL are the QuickBooks Online API hosts.
	SandboxBaseURL    = "https://sandbox-quickbooks.api.intuit.com"
	ProductionBaseURL = "https://quickbooks.api.intuit.com"

	// minorVersion pins the API behavior the wire types were written against.
	minorVersion = "65"
)

// Client talks to the QuickBooks Online v3 API for one company (realm).
// It classifies failures into the package's error taxonomy but never
// refreshes credentials or retries on its own; that is the fetch layer's
// and the run orchestrator's job.
type Client struct {
	httpClient *http.Client
	baseURL    string
	realmID    string
	creds      CredentialProvider
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewClient creates a sandbox client for realmID. Use SetBaseURL to point
// it at production or a test server.
func NewClient(realmID string, creds CredentialProvider, log *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    SandboxBaseURL,
		realmID:    realmID,
		creds:      creds,
		// The service allows 500 requests per minute per realm.
		limiter: rate.NewLimiter(rate.Limit(500.0/60.0), 10),
		log:     log,
	}
}

// SetBaseURL overrides the API base URL.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimRight(u, "/")
}

// InvoiceSource adapts the client for the paged fetcher.
func (c *Client) InvoiceSource() EntitySource[model.Invoice] {
	return SourceFunc[model.Invoice](c.ListInvoices)
}

// BillSource adapts the client for the paged fetcher.
func (c *Client) BillSource() EntitySource[model.Bill] {
	return SourceFunc[model.Bill](c.ListBills)
}

// AccountSource adapts the client for the paged fetcher.
func (c *Client) AccountSource() EntitySource[model.Account] {
	return SourceFunc[model.Account](c.ListAccounts)
}

// ListInvoices returns one page of invoices matching filter, in server order.
func (c *Client) ListInvoices(ctx context.Context, filter string, startPosition, pageSize int) ([]model.Invoice, error) {
	var env invoiceEnvelope
	if err := c.query(ctx, "Invoice", filter, startPosition, pageSize, &env); err != nil {
		return nil, err
	}
	invoices := make([]model.Invoice, 0, len(env.QueryResponse.Invoice))
	for _, w := range env.QueryResponse.Invoice {
		inv, err := w.toModel()
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}

// ListBills returns one page of bills matching filter, in server order.
func (c *Client) ListBills(ctx context.Context, filter string, startPosition, pageSize int) ([]model.Bill, error) {
	var env billEnvelope
	if err := c.query(ctx, "Bill", filter, startPosition, pageSize, &env); err != nil {
		return nil, err
	}
	bills := make([]model.Bill, 0, len(env.QueryResponse.Bill))
	for _, w := range env.QueryResponse.Bill {
		b, err := w.toModel()
		if err != nil {
			return nil, err
		}
		bills = append(bills, b)
	}
	return bills, nil
}

// ListAccounts returns one page of accounts matching filter, in server order.
func (c *Client) ListAccounts(ctx context.Context, filter string, startPosition, pageSize int) ([]model.Account, error) {
	var env accountEnvelope
	if err := c.query(ctx, "Account", filter, startPosition, pageSize, &env); err != nil {
		return nil, err
	}
	accounts := make([]model.Account, 0, len(env.QueryResponse.Account))
	for _, w := range env.QueryResponse.Account {
		a, err := w.toModel()
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// CompanyInfo fetches the company record for the client's realm. The run
// command uses it to probe the credential before fetching anything.
func (c *Client) CompanyInfo(ctx context.Context) (CompanyInfo, error) {
	u := fmt.Sprintf("%s/v3/company/%s/companyinfo/%s?minorversion=%s",
		c.baseURL, url.PathEscape(c.realmID), url.PathEscape(c.realmID), minorVersion)
	var env companyInfoEnvelope
	if err := c.get(ctx, u, &env); err != nil {
		return CompanyInfo{}, err
	}
	return env.CompanyInfo, nil
}

// query runs one page of a SELECT against the query endpoint. The filter is
// interpolated verbatim; the client never parses or rewrites it.
func (c *Client) query(ctx context.Context, entity, filter string, startPosition, pageSize int, into any) error {
	stmt := "SELECT * FROM " + entity
	if filter != "" {
		stmt += " WHERE " + filter
	}
	stmt += fmt.Sprintf(" STARTPOSITION %d MAXRESULTS %d", startPosition, pageSize)

	params := url.Values{
		"query":        {stmt},
		"minorversion": {minorVersion},
	}
	u := fmt.Sprintf("%s/v3/company/%s/query?%s", c.baseURL, url.PathEscape(c.realmID), params.Encode())
	return c.get(ctx, u, into)
}

func (c *Client) get(ctx context.Context, u string, into any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	token, err := c.creds.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Request-Id", uuid.NewString())

	c.log.Debug("ledger request", "url", u)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Timeouts and connection failures are worth another attempt.
		return &TransientError{Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransientError{StatusCode: resp.StatusCode, Message: "reading response body", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return classifyResponse(resp, body)
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// classifyResponse maps a non-2xx response onto the error taxonomy.
func classifyResponse(resp *http.Response, body []byte) error {
	var fr faultResponse
	_ = json.Unmarshal(body, &fr) // fault body is best effort; the status alone classifies
	code, message, detail := fr.first()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden,
		strings.EqualFold(fr.Fault.Type, "AUTHENTICATION"):
		return &AuthorizationError{StatusCode: resp.StatusCode, Code: code, Message: messageOr(message, "credential rejected")}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &TransientError{
			StatusCode: resp.StatusCode,
			Message:    messageOr(message, "rate limited"),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	case resp.StatusCode >= 500:
		return &TransientError{StatusCode: resp.StatusCode, Message: messageOr(message, http.StatusText(resp.StatusCode))}
	default:
		return &QueryError{Code: code, Message: messageOr(message, resp.Status), Detail: detail}
	}
}

func messageOr(message, fallback string) string {
	if message == "" {
		return fallback
	}
	return message
}

// parseRetryAfter reads the seconds form of a Retry-After header; anything
// else counts as no hint.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
