package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmartin/banktracker/internal/types"
)

func TestFilterFilings_Window(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	a := &Adapter{now: func() time.Time { return now }}

	filings := []Filing{
		{AccessionNumber: "a", Form: "10-K", FilingDate: "2024-05-15"}, // 13 months ago
		{AccessionNumber: "b", Form: "40-F", FilingDate: "2024-07-20"}, // 11 months ago
		{AccessionNumber: "c", Form: "10-Q", FilingDate: "2025-06-16"}, // tomorrow (clock skew)
		{AccessionNumber: "d", Form: "8-K", FilingDate: "2025-05-01"},  // recent but irrelevant form
		{AccessionNumber: "e", Form: "6-K", FilingDate: "2025-06-01"},
	}

	relevant := a.filterFilings(filings)
	require.Len(t, relevant, 2)
	assert.Equal(t, "b", relevant[0].AccessionNumber, "filing 11 months ago with accepted form is included")
	assert.Equal(t, "e", relevant[1].AccessionNumber)
}

func TestFilterFilings_UnparsableDateExcluded(t *testing.T) {
	a := &Adapter{now: time.Now}
	relevant := a.filterFilings([]Filing{{Form: "10-K", FilingDate: "not-a-date"}})
	assert.Empty(t, relevant)
}

func TestSummarize(t *testing.T) {
	doc := "\n\nFirst line of the filing.\n\nSecond line.\nThird line.\nFourth line is ignored.\n"
	got := Summarize(doc)
	assert.Equal(t, "First line of the filing. Second line. Third line.", got)
}

func TestSummarize_CapsLength(t *testing.T) {
	long := strings.Repeat("word ", 200)
	got := Summarize(long)
	assert.LessOrEqual(t, len(got), summaryMaxLen+3)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestSummarize_MultibyteAtCap(t *testing.T) {
	// An "é" straddling the length cap must not be split mid-rune.
	long := strings.Repeat("a", summaryMaxLen-1) + "é plus trailing text"
	got := Summarize(long)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), summaryMaxLen+3)
	assert.NotContains(t, got, "�")
}

func TestSummarize_HTMLDocument(t *testing.T) {
	doc := "<html><body><p>Annual report overview.</p><script>x()</script></body></html>"
	got := Summarize(doc)
	assert.Contains(t, got, "Annual report overview.")
	assert.NotContains(t, got, "x()")
}

func TestDocumentURL(t *testing.T) {
	c := NewClient()
	f := Filing{
		AccessionNumber: "0001000275-25-000042",
		PrimaryDocument: "form6k.htm",
	}
	assert.Equal(t,
		"https://www.sec.gov/Archives/edgar/data/1000275/000100027525000042/form6k.htm",
		c.DocumentURL(f))
}

// newSubmissionsBody builds a column-oriented submissions payload.
func newSubmissionsBody(t *testing.T, filings []Filing) []byte {
	t.Helper()
	var resp submissionsResponse
	for _, f := range filings {
		resp.Filings.Recent.AccessionNumber = append(resp.Filings.Recent.AccessionNumber, f.AccessionNumber)
		resp.Filings.Recent.FilingDate = append(resp.Filings.Recent.FilingDate, f.FilingDate)
		resp.Filings.Recent.Form = append(resp.Filings.Recent.Form, f.Form)
		resp.Filings.Recent.PrimaryDocument = append(resp.Filings.Recent.PrimaryDocument, f.PrimaryDocument)
	}
	body, err := json.Marshal(resp)
	require.NoError(t, err)
	return body
}

func TestAdapter_Fetch(t *testing.T) {
	recentDate := time.Now().AddDate(0, -2, 0).Format("2006-01-02")

	var gotUserAgents []string
	mux := http.NewServeMux()
	mux.HandleFunc("/submissions/", func(w http.ResponseWriter, r *http.Request) {
		gotUserAgents = append(gotUserAgents, r.Header.Get("User-Agent"))
		_, _ = w.Write(newSubmissionsBody(t, []Filing{
			{AccessionNumber: "0001000275-25-000042", FilingDate: recentDate, Form: "6-K", PrimaryDocument: "form6k.htm"},
			{AccessionNumber: "0001000275-25-000041", FilingDate: recentDate, Form: "8-K", PrimaryDocument: "form8k.htm"},
		}))
	})
	mux.HandleFunc("/archives/", func(w http.ResponseWriter, r *http.Request) {
		gotUserAgents = append(gotUserAgents, r.Header.Get("User-Agent"))
		_, _ = fmt.Fprint(w, "Report of Foreign Private Issuer.\nFor the quarter.")
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(
		WithBaseURLs(server.URL+"/submissions", server.URL+"/archives"),
		WithUserAgent("Canadian Bank Industry Tracker (test@example.com)"),
	)
	adapter := NewAdapter(client)

	articles, err := adapter.Fetch(context.Background())
	require.NoError(t, err)
	// One relevant filing per bank; the 8-K is filtered out.
	require.Len(t, articles, len(types.Banks))

	first := articles[0]
	assert.Equal(t, "SEC EDGAR", first.Source)
	assert.Equal(t, types.BankRBC, first.BankCode)
	assert.Contains(t, first.Title, "6-K")
	assert.Contains(t, first.Link, "form6k.htm")
	assert.Contains(t, first.Summary, "Report of Foreign Private Issuer.")

	for _, ua := range gotUserAgents {
		assert.Equal(t, "Canadian Bank Industry Tracker (test@example.com)", ua,
			"every EDGAR request must carry the descriptive client identification")
	}
}

func TestAdapter_Fetch_IndexFailureSkipsBank(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(WithBaseURLs(server.URL+"/submissions", server.URL+"/archives"))
	adapter := NewAdapter(client)

	articles, err := adapter.Fetch(context.Background())
	require.NoError(t, err, "index failures are recovered per bank, not propagated")
	assert.Empty(t, articles)
}
