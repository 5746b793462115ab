// Package edgar retrieves SEC EDGAR filing indexes and filing documents for
// the tracked banks. EDGAR's fair-use policy requires a descriptive
// client-identification header and paced requests; every call goes through a
// shared rate limiter.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bmartin/banktracker/internal/fetch"
	"github.com/bmartin/banktracker/internal/types"
)

// DefaultUserAgent identifies this client to EDGAR as its fair-use policy
// requires: product name plus a contact address.
const DefaultUserAgent = "Canadian Bank Industry Tracker (ops@banktracker.example)"

// minRequestInterval is the fixed minimum delay enforced between successive
// outbound calls to EDGAR hosts.
const minRequestInterval = 150 * time.Millisecond

// CIK maps bank codes to their SEC Central Index Key.
var CIK = map[types.BankCode]string{
	types.BankRBC:    "0001000275",
	types.BankTD:     "0000947263",
	types.BankBMO:    "0000927971",
	types.BankScotia: "0000009631",
	types.BankCIBC:   "0001045520",
}

// Filing is one entry of a company's recent-filings index.
type Filing struct {
	AccessionNumber string
	FilingDate      string
	Form            string
	PrimaryDocument string
}

// submissionsResponse mirrors the column-oriented shape of the EDGAR
// submissions endpoint: parallel arrays, one value per filing.
type submissionsResponse struct {
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			Form            []string `json:"form"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// Client fetches filing indexes and documents with paced, identified requests.
type Client struct {
	userAgent      string
	limiter        *rate.Limiter
	submissionsURL string
	archivesURL    string
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithUserAgent overrides the client-identification header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithBaseURLs overrides the EDGAR endpoints, for tests.
func WithBaseURLs(submissions, archives string) ClientOption {
	return func(c *Client) {
		c.submissionsURL = submissions
		c.archivesURL = archives
	}
}

// NewClient creates an EDGAR client with the pacing limiter installed.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		userAgent:      DefaultUserAgent,
		limiter:        rate.NewLimiter(rate.Every(minRequestInterval), 1),
		submissionsURL: "https://data.sec.gov/submissions",
		archivesURL:    "https://www.sec.gov/Archives/edgar/data",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchFilings retrieves the recent-filings index for a CIK and transposes
// the column-oriented arrays into Filing structs.
func (c *Client) FetchFilings(ctx context.Context, cik string) ([]Filing, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/CIK%s.json", c.submissionsURL, padCIK(cik))
	result, err := fetch.URL(ctx, url, c.fetchOptions("application/json"))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch filings for CIK %s: %w", cik, err)
	}

	var resp submissionsResponse
	if err := json.Unmarshal([]byte(result.HTML), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse submissions for CIK %s: %w", cik, err)
	}

	recent := resp.Filings.Recent
	filings := make([]Filing, 0, len(recent.AccessionNumber))
	for i := range recent.AccessionNumber {
		if i >= len(recent.FilingDate) || i >= len(recent.Form) || i >= len(recent.PrimaryDocument) {
			break
		}
		filings = append(filings, Filing{
			AccessionNumber: recent.AccessionNumber[i],
			FilingDate:      recent.FilingDate[i],
			Form:            recent.Form[i],
			PrimaryDocument: recent.PrimaryDocument[i],
		})
	}

	return filings, nil
}

// DocumentURL constructs the archive address of a filing's primary document.
func (c *Client) DocumentURL(f Filing) string {
	accession := strings.ReplaceAll(f.AccessionNumber, "-", "")
	cik := strings.SplitN(f.AccessionNumber, "-", 2)[0]
	return fmt.Sprintf("%s/%s/%s/%s", c.archivesURL, strings.TrimLeft(cik, "0"), accession, f.PrimaryDocument)
}

// FetchDocumentText retrieves the text of a filing's primary document.
func (c *Client) FetchDocumentText(ctx context.Context, f Filing) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	url := c.DocumentURL(f)
	result, err := fetch.URL(ctx, url, c.fetchOptions(""))
	if err != nil {
		return "", fmt.Errorf("failed to fetch filing document: %w", err)
	}

	return result.HTML, nil
}

func (c *Client) fetchOptions(accept string) *fetch.Options {
	opts := fetch.DefaultOptions()
	opts.UserAgent = c.userAgent
	if accept != "" {
		opts.Headers = map[string]string{"Accept": accept}
	}
	return opts
}

// padCIK left-pads a CIK to the 10 digits the submissions endpoint expects.
func padCIK(cik string) string {
	if len(cik) >= 10 {
		return cik
	}
	return strings.Repeat("0", 10-len(cik)) + cik
}
