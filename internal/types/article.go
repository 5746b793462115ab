// Package types provides type definitions for structured data used throughout the banktracker system.
package types

import (
	"time"
)

// BankCode identifies one of the tracked Canadian banks.
type BankCode string

// Tracked institutions.
const (
	BankRBC    BankCode = "RBC"
	BankTD     BankCode = "TD"
	BankBMO    BankCode = "BMO"
	BankScotia BankCode = "SCOTIA"
	BankCIBC   BankCode = "CIBC"
)

// Bank describes a tracked institution and its primary newsroom.
type Bank struct {
	Name       string
	Code       BankCode
	WebsiteURL string
}

// Banks is the registry of tracked institutions.
var Banks = []Bank{
	{Name: "Royal Bank of Canada", Code: BankRBC, WebsiteURL: "https://www.rbc.com/newsroom/"},
	{Name: "TD Bank", Code: BankTD, WebsiteURL: "https://newsroom.td.com/"},
	{Name: "Bank of Montreal", Code: BankBMO, WebsiteURL: "https://newsroom.bmo.com/"},
	{Name: "Scotiabank", Code: BankScotia, WebsiteURL: "https://www.scotiabank.com/ca/en/about/news/press-releases.html"},
	{Name: "Canadian Imperial Bank of Commerce", Code: BankCIBC, WebsiteURL: "https://cibc.mediaroom.com/"},
}

// Article is the canonical, deduplicated news or filing record.
// Link is the natural unique key; no two stored articles share one.
type Article struct {
	ID                int64     `json:"id,omitempty"`
	Title             string    `json:"title"`
	Link              string    `json:"link"`
	PublishDate       time.Time `json:"publishDate"`
	Source            string    `json:"source"`
	BankCode          BankCode  `json:"bankCode"`
	Summary           string    `json:"summary"`
	AIRelevanceScore  float64   `json:"aiRelevanceScore"`
	AIRelevanceReason string    `json:"aiRelevanceReason"`
	CreatedAt         time.Time `json:"createdAt,omitempty"`
}
