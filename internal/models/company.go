package models

import (
	"time"

	"github.com/google/uuid"
)

// VerificationStatus represents a company's place in the approval lifecycle.
// The machine is one-way: pending may move to approved or rejected, and both
// of those are terminal.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// Industry values offered at registration.
var Industries = []string{
	"Energy",
	"Manufacturing",
	"Transportation",
	"Agriculture",
	"Technology",
	"Finance",
	"Retail",
	"Other",
}

// Company is an off-chain registry record. Records are created at
// registration with status pending, mutated only by the gated approve and
// reject operations, and never deleted. The token balance map and the
// transaction list are informational caches; the ledger is authoritative
// for both.
type Company struct {
	Base
	Name          string             `gorm:"type:varchar(255);not null;index" json:"name"`
	Industry      string             `gorm:"type:varchar(100);not null" json:"industry"`
	Email         string             `gorm:"type:varchar(255);not null" json:"email"`
	Website       string             `gorm:"type:varchar(255)" json:"website,omitempty"`
	Description   string             `gorm:"type:text" json:"description,omitempty"`
	ContactPerson string             `gorm:"type:varchar(255)" json:"contact_person,omitempty"`
	Phone         string             `gorm:"type:varchar(50)" json:"phone,omitempty"`
	WalletAddress string             `gorm:"type:varchar(64);index" json:"wallet_address"`
	RegisteredAt  time.Time          `json:"registered_at"`
	Status        VerificationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	// RejectionReason is set iff Status is rejected
	RejectionReason string     `gorm:"type:text" json:"rejection_reason,omitempty"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	// TokenBalances maps token symbol to a cached balance; advisory only
	TokenBalances JSON                 `gorm:"type:jsonb" json:"token_balances"`
	Transactions  []CompanyTransaction `gorm:"foreignKey:CompanyID" json:"transactions,omitempty"`
}

// CompanyTransaction is an informational record of a token movement seen by
// the off-chain side. It is a cache only and is never used to compute
// balances.
type CompanyTransaction struct {
	Base
	CompanyID uuid.UUID `gorm:"type:uuid;index" json:"company_id"`
	Type      string    `gorm:"type:varchar(20)" json:"type"` // mint, buy, sell, grant
	Symbol    string    `gorm:"type:varchar(20)" json:"symbol"`
	Amount    float64   `gorm:"type:decimal(30,18)" json:"amount"`
	Reference string    `gorm:"type:varchar(100)" json:"reference"`
}
