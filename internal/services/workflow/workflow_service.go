package workflow

import (
	"context"
	"math/big"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/carbonx/backend/internal/auth"
	"github.com/carbonx/backend/internal/errs"
	"github.com/carbonx/backend/internal/models"
	"github.com/google/uuid"
)

// Registry is the workflow engine's view of the off-chain company store.
type Registry interface {
	GetByID(id uuid.UUID) (*models.Company, error)
	GetByWallet(address string) (*models.Company, error)
	ListAll() ([]models.Company, error)
	SetVerificationStatus(id uuid.UUID, status models.VerificationStatus, reason string, verifiedAt time.Time) error
}

// Ledger is the workflow engine's view of the report contract.
type Ledger interface {
	Submit(ctx context.Context, sub models.ReportSubmission) (string, error)
	ListPending(ctx context.Context) ([]models.Report, error)
	ListVerified(ctx context.Context, filterByReporter string) ([]models.Report, error)
	Verify(ctx context.Context, index int, wholeTokens int64) (string, error)
	PendingCount(ctx context.Context) (int, error)
	TokenBalance(ctx context.Context, address string) (*big.Int, error)
	TransactionHistory(ctx context.Context, address string) ([]models.TokenTransaction, error)
	TotalSupply(ctx context.Context) (*big.Int, error)
}

// UnknownCompany labels reports whose reporter wallet matches no registry
// record. This is an expected state, not an error: a wallet may submit
// before its company registers.
const UnknownCompany = "Unknown Company"

// WorkflowService orchestrates the report and company verification state
// machines across the two stores. Writes go through exactly one adapter;
// reads fan in from both and are joined fresh per call.
type WorkflowService struct {
	gate     *auth.Gate
	registry Registry
	ledger   Ledger
}

// NewWorkflowService creates a new workflow service
func NewWorkflowService(gate *auth.Gate, registry Registry, ledger Ledger) *WorkflowService {
	return &WorkflowService{gate: gate, registry: registry, ledger: ledger}
}

// ApproveCompany moves a pending company to approved. The transition is
// terminal and only the configured admin identity may perform it. At most
// one approved company may hold a given wallet address; that uniqueness is
// enforced here, at approval time, not at registration.
func (s *WorkflowService) ApproveCompany(companyID uuid.UUID, actorAddress string) error {
	if !s.gate.IsAuthorized(actorAddress) {
		return errs.ErrUnauthorized
	}

	company, err := s.registry.GetByID(companyID)
	if err != nil {
		return err
	}
	if company.Status != models.VerificationPending {
		return errs.NewValidation("status", "company is not pending verification")
	}

	if company.WalletAddress != "" {
		all, err := s.registry.ListAll()
		if err != nil {
			return err
		}
		wallet := strings.ToLower(company.WalletAddress)
		for _, other := range all {
			if other.ID != company.ID &&
				other.Status == models.VerificationApproved &&
				strings.ToLower(other.WalletAddress) == wallet {
				return &errs.ConflictError{Message: "an approved company already holds this wallet address"}
			}
		}
	}

	return s.registry.SetVerificationStatus(companyID, models.VerificationApproved, "", time.Now().UTC())
}

// RejectCompany moves a pending company to rejected. A rejection without a
// non-empty reason is never persisted.
func (s *WorkflowService) RejectCompany(companyID uuid.UUID, actorAddress, reason string) error {
	if !s.gate.IsAuthorized(actorAddress) {
		return errs.ErrUnauthorized
	}
	if strings.TrimSpace(reason) == "" {
		return errs.NewValidation("reason", "a rejection reason is required")
	}

	company, err := s.registry.GetByID(companyID)
	if err != nil {
		return err
	}
	if company.Status != models.VerificationPending {
		return errs.NewValidation("status", "company is not pending verification")
	}

	return s.registry.SetVerificationStatus(companyID, models.VerificationRejected, reason, time.Now().UTC())
}

// SubmitReport validates a submission and appends it to the ledger's pending
// collection. Any wallet may submit; there is no gate check here. The actor
// is implicitly the connected wallet identity.
func (s *WorkflowService) SubmitReport(ctx context.Context, sub models.ReportSubmission) (string, error) {
	if !models.ValidCategory(sub.Category) {
		return "", errs.NewValidation("category", "unknown report category")
	}
	if sub.Evidence != "" {
		u, err := url.Parse(sub.Evidence)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "", errs.NewValidation("evidence", "evidence must be a well-formed http(s) URL")
		}
	}
	return s.ledger.Submit(ctx, sub)
}

// VerifyReport verifies the pending report at index, minting wholeTokens to
// its reporter. Only the admin identity passes the gate, and no write
// happens before the gate check.
//
// index is positional into the caller's last pending-reports snapshot. If
// another verification lands between that read and this call, the pending
// collection shifts and the index may address a different report. The
// engine does not re-validate the target; callers should compare
// PendingCount against their snapshot first. A stable report identity would
// close the race but changes the contract's shape.
func (s *WorkflowService) VerifyReport(ctx context.Context, index int, wholeTokens int64, actorAddress string) (string, error) {
	if !s.gate.IsAuthorized(actorAddress) {
		return "", errs.ErrUnauthorized
	}
	return s.ledger.Verify(ctx, index, wholeTokens)
}

// ReconciledReport is a ledger report joined to its registry company name
// for presentation. The join is computed fresh on every read and never
// persisted back to either store.
type ReconciledReport struct {
	models.Report
	CompanyName string `json:"company_name"`
}

// Dashboard is the operator view: companies bucketed by status plus both
// report collections, reconciled.
type Dashboard struct {
	PendingCompanies  []models.Company   `json:"pending_companies"`
	ApprovedCompanies []models.Company   `json:"approved_companies"`
	RejectedCompanies []models.Company   `json:"rejected_companies"`
	PendingReports    []ReconciledReport `json:"pending_reports"`
	VerifiedReports   []ReconciledReport `json:"verified_reports"`
	PendingCount      int                `json:"pending_count"`
}

// GetDashboard assembles the operator dashboard. The registry and ledger
// reads are independent and issued concurrently; either source may be
// momentarily stale relative to the other, which the join tolerates.
func (s *WorkflowService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		wg        sync.WaitGroup
		companies []models.Company
		pending   []models.Report
		verified  []models.Report
		regErr    error
		pendErr   error
		verErr    error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		companies, regErr = s.registry.ListAll()
	}()
	go func() {
		defer wg.Done()
		pending, pendErr = s.ledger.ListPending(ctx)
	}()
	go func() {
		defer wg.Done()
		verified, verErr = s.ledger.ListVerified(ctx, "")
	}()
	wg.Wait()

	for _, err := range []error{regErr, pendErr, verErr} {
		if err != nil {
			return nil, err
		}
	}

	names := companyNameIndex(companies)
	dash := &Dashboard{
		PendingCompanies:  make([]models.Company, 0),
		ApprovedCompanies: make([]models.Company, 0),
		RejectedCompanies: make([]models.Company, 0),
		PendingReports:    reconcile(pending, names),
		VerifiedReports:   reconcile(verified, names),
		PendingCount:      len(pending),
	}
	for _, c := range companies {
		switch c.Status {
		case models.VerificationApproved:
			dash.ApprovedCompanies = append(dash.ApprovedCompanies, c)
		case models.VerificationRejected:
			dash.RejectedCompanies = append(dash.RejectedCompanies, c)
		default:
			dash.PendingCompanies = append(dash.PendingCompanies, c)
		}
	}
	return dash, nil
}

// ListPendingReports returns the pending collection reconciled with company
// names.
func (s *WorkflowService) ListPendingReports(ctx context.Context) ([]ReconciledReport, error) {
	reports, err := s.ledger.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := s.registry.ListAll()
	if err != nil {
		return nil, err
	}
	return reconcile(reports, companyNameIndex(companies)), nil
}

// ListVerifiedReports returns the verified collection reconciled with
// company names, optionally filtered by reporter wallet.
func (s *WorkflowService) ListVerifiedReports(ctx context.Context, filterByReporter string) ([]ReconciledReport, error) {
	reports, err := s.ledger.ListVerified(ctx, filterByReporter)
	if err != nil {
		return nil, err
	}
	companies, err := s.registry.ListAll()
	if err != nil {
		return nil, err
	}
	return reconcile(reports, companyNameIndex(companies)), nil
}

// CompanyProfile is a registry record joined with its authoritative ledger
// balance and transaction history.
type CompanyProfile struct {
	Company      *models.Company           `json:"company"`
	TokenBalance uint64                    `json:"token_balance"`
	BalanceWei   string                    `json:"balance_base_units"`
	History      []models.TokenTransaction `json:"history"`
}

// GetCompanyProfile returns the profile for a wallet address. The ledger
// balance is authoritative; the registry's cached balance map is ignored
// here. A wallet with no registry record returns a nil company alongside
// its ledger figures.
func (s *WorkflowService) GetCompanyProfile(ctx context.Context, walletAddress string) (*CompanyProfile, error) {
	company, err := s.registry.GetByWallet(walletAddress)
	if err != nil {
		return nil, err
	}

	balance, err := s.ledger.TokenBalance(ctx, walletAddress)
	if err != nil {
		return nil, err
	}
	history, err := s.ledger.TransactionHistory(ctx, walletAddress)
	if err != nil {
		return nil, err
	}

	return &CompanyProfile{
		Company:      company,
		TokenBalance: wholeTokens(balance),
		BalanceWei:   balance.String(),
		History:      history,
	}, nil
}

// GetTokenBalance returns a wallet's ledger balance in base units.
func (s *WorkflowService) GetTokenBalance(ctx context.Context, address string) (*big.Int, error) {
	return s.ledger.TokenBalance(ctx, address)
}

// GetTransactionHistory returns a wallet's ledger token history.
func (s *WorkflowService) GetTransactionHistory(ctx context.Context, address string) ([]models.TokenTransaction, error) {
	return s.ledger.TransactionHistory(ctx, address)
}

// GetTotalSupply returns the total minted token supply in base units.
func (s *WorkflowService) GetTotalSupply(ctx context.Context) (*big.Int, error) {
	return s.ledger.TotalSupply(ctx)
}

// PendingReportCount returns the current length of the pending collection.
func (s *WorkflowService) PendingReportCount(ctx context.Context) (int, error) {
	return s.ledger.PendingCount(ctx)
}

func companyNameIndex(companies []models.Company) map[string]string {
	names := make(map[string]string, len(companies))
	for _, c := range companies {
		if c.WalletAddress == "" {
			continue
		}
		names[strings.ToLower(c.WalletAddress)] = c.Name
	}
	return names
}

func reconcile(reports []models.Report, names map[string]string) []ReconciledReport {
	out := make([]ReconciledReport, 0, len(reports))
	for _, r := range reports {
		name, ok := names[strings.ToLower(r.Reporter)]
		if !ok {
			name = UnknownCompany
		}
		out = append(out, ReconciledReport{Report: r, CompanyName: name})
	}
	return out
}

func wholeTokens(baseUnits *big.Int) uint64 {
	if baseUnits == nil {
		return 0
	}
	return new(big.Int).Div(baseUnits, new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)).Uint64()
}
