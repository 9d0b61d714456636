package models

import (
	"time"

	"github.com/carbonx/backend/internal/geo"
)

// ReportCategories is the fixed enumeration a submission must use.
var ReportCategories = []string{
	"Renewable Energy",
	"Waste Reduction",
	"Carbon Offset",
	"Sustainable Agriculture",
	"Forest Conservation",
	"Ocean Conservation",
	"Clean Water Initiative",
	"Biodiversity Protection",
	"Circular Economy",
	"Sustainable Transportation",
}

// ValidCategory reports whether category is one of ReportCategories.
func ValidCategory(category string) bool {
	for _, c := range ReportCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Report is a sustainability report as read back from the ledger, with
// coordinates decoded to decimal degrees. A report's identity is its
// position within the pending or verified collection it was read from; the
// index is not stable across verifications, which shorten the pending
// collection.
type Report struct {
	// Index is the position in the collection this report was read from
	Index        int           `json:"index"`
	Reporter     string        `json:"reporter"`
	Title        string        `json:"title"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	Evidence     string        `json:"evidence,omitempty"`
	SubmittedAt  time.Time     `json:"submitted_at"`
	Latitude     float64       `json:"latitude"`
	LatDirection geo.Direction `json:"lat_direction"`
	Longitude    float64       `json:"longitude"`
	LngDirection geo.Direction `json:"lng_direction"`
	// MintedTokens is the reward in whole tokens; zero until verified
	MintedTokens uint64 `json:"minted_tokens"`
	Verified     bool   `json:"verified"`
}

// ReportSubmission carries the caller-supplied fields of a new report.
// Coordinates are unsigned decimal-degree magnitudes paired with explicit
// hemisphere letters; the ledger adapter encodes them before submission.
type ReportSubmission struct {
	Title        string        `json:"title" binding:"required"`
	Description  string        `json:"description" binding:"required"`
	Category     string        `json:"category" binding:"required"`
	Evidence     string        `json:"evidence"`
	Latitude     float64       `json:"latitude"`
	LatDirection geo.Direction `json:"lat_direction"`
	Longitude    float64       `json:"longitude"`
	LngDirection geo.Direction `json:"lng_direction"`
}

// TokenTransaction is one entry of the ledger's per-account token history.
type TokenTransaction struct {
	Account   string    `json:"account"`
	Amount    uint64    `json:"amount"` // whole tokens
	Price     string    `json:"price"`  // wei, as emitted by the contract
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"` // mint, buy, sell, grant
}
