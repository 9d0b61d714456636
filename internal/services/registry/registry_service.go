package registry

import (
	"errors"
	"strings"
	"time"

	"github.com/carbonx/backend/internal/errs"
	"github.com/carbonx/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// freeMailDomains are consumer providers rejected at registration; a company
// must register with an address on its own domain.
var freeMailDomains = map[string]bool{
	"gmail.com":   true,
	"yahoo.com":   true,
	"hotmail.com": true,
	"outlook.com": true,
	"aol.com":     true,
	"icloud.com":  true,
}

// RegistryService provides typed operations against the off-chain company
// store. It performs no authorization checks; gating privileged mutations is
// the workflow engine's responsibility, keeping this a thin I/O boundary.
type RegistryService struct {
	db *gorm.DB
}

// NewRegistryService creates a new registry service
func NewRegistryService(db *gorm.DB) *RegistryService {
	return &RegistryService{db: db}
}

// RegisterInput carries the caller-supplied fields of a new company record.
type RegisterInput struct {
	Name          string `json:"name" binding:"required"`
	Industry      string `json:"industry" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Website       string `json:"website"`
	Description   string `json:"description"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	WalletAddress string `json:"wallet_address"`
}

// Register validates the input and writes a new pending company record.
// Validation happens entirely before the write: empty name, industry or
// email and free-mail domains fail with a ValidationError; an existing
// record with the exact same name fails with a ConflictError.
func (s *RegistryService) Register(input RegisterInput) (*models.Company, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, errs.NewValidation("name", "company name is required")
	}
	if strings.TrimSpace(input.Industry) == "" {
		return nil, errs.NewValidation("industry", "industry is required")
	}
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, errs.NewValidation("email", "contact email is required")
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return nil, errs.NewValidation("email", "contact email is malformed")
	}
	domain := strings.ToLower(email[at+1:])
	if freeMailDomains[domain] {
		return nil, errs.NewValidation("email", "free email providers are not allowed; use a company email domain")
	}

	// Duplicate names are a case-sensitive exact match, regardless of wallet
	var count int64
	if err := s.db.Model(&models.Company{}).Where("name = ?", input.Name).Count(&count).Error; err != nil {
		return nil, &errs.RegistryError{Op: "register", Err: err}
	}
	if count > 0 {
		return nil, &errs.ConflictError{Message: "a company with this name already exists"}
	}

	company := models.Company{
		Name:          input.Name,
		Industry:      input.Industry,
		Email:         email,
		Website:       input.Website,
		Description:   input.Description,
		ContactPerson: input.ContactPerson,
		Phone:         input.Phone,
		WalletAddress: strings.ToLower(strings.TrimSpace(input.WalletAddress)),
		RegisteredAt:  time.Now().UTC(),
		Status:        models.VerificationPending,
		TokenBalances: models.JSON{"carbonCredits": 0},
	}

	if err := s.db.Create(&company).Error; err != nil {
		return nil, &errs.RegistryError{Op: "register", Err: err}
	}

	return &company, nil
}

// GetByID fetches a company record by id.
func (s *RegistryService) GetByID(id uuid.UUID) (*models.Company, error) {
	var company models.Company
	if err := s.db.Preload("Transactions").First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, &errs.RegistryError{Op: "get", Err: err}
	}
	return &company, nil
}

// GetByWallet fetches the company holding the given wallet address. The
// address comparison is case-insensitive. When no record matches, both
// return values are nil: an unregistered wallet is an expected state, not an
// error. Should the store ever hold several records for one address (a
// data-integrity violation), the record with the lowest id wins so repeated
// calls stay deterministic.
func (s *RegistryService) GetByWallet(address string) (*models.Company, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return nil, nil
	}

	var companies []models.Company
	err := s.db.Where("lower(wallet_address) = ?", address).Order("id").Limit(1).Find(&companies).Error
	if err != nil {
		return nil, &errs.RegistryError{Op: "get_by_wallet", Err: err}
	}
	if len(companies) == 0 {
		return nil, nil
	}
	return &companies[0], nil
}

// ListAll returns every company record.
func (s *RegistryService) ListAll() ([]models.Company, error) {
	var companies []models.Company
	if err := s.db.Order("registered_at").Find(&companies).Error; err != nil {
		return nil, &errs.RegistryError{Op: "list", Err: err}
	}
	return companies, nil
}

// SetVerificationStatus updates a company's status, rejection reason and
// verification timestamp. Reachable only through the workflow engine's gated
// approve and reject operations; no authorization happens here.
func (s *RegistryService) SetVerificationStatus(id uuid.UUID, status models.VerificationStatus, reason string, verifiedAt time.Time) error {
	updates := map[string]interface{}{
		"status":           status,
		"rejection_reason": reason,
		"verified_at":      verifiedAt,
	}

	result := s.db.Model(&models.Company{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return &errs.RegistryError{Op: "set_status", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RecordTransaction appends an informational token-movement record to a
// company's cache. Failures here never affect workflow state.
func (s *RegistryService) RecordTransaction(companyID uuid.UUID, txType, symbol string, amount float64, reference string) error {
	record := models.CompanyTransaction{
		CompanyID: companyID,
		Type:      txType,
		Symbol:    symbol,
		Amount:    amount,
		Reference: reference,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return &errs.RegistryError{Op: "record_transaction", Err: err}
	}
	return nil
}
