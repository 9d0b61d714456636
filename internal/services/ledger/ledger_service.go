package ledger

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/carbonx/backend/internal/config"
	"github.com/carbonx/backend/internal/errs"
	"github.com/carbonx/backend/internal/geo"
	"github.com/carbonx/backend/internal/models"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// weiPerToken is the ledger token's base-unit scale: 18 fractional decimals,
// the same as ether itself.
var weiPerToken = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// transactionTypes decodes the contract's TransactionType enum.
var transactionTypes = map[uint8]string{
	0: "mint",
	1: "buy",
	2: "sell",
	3: "grant",
}

// LedgerService wraps the report contract's call and transaction primitives.
// Writes are single-attempt: any rejection, revert, or declined signing step
// surfaces as a LedgerError carrying the underlying message verbatim, and
// the contract's own atomicity guarantees state is untouched on failure.
type LedgerService struct {
	client   *ethclient.Client
	contract *bind.BoundContract
	address  common.Address
	chainID  *big.Int
	signer   *bind.TransactOpts
}

// NewLedgerService connects to the chain RPC endpoint and binds the report
// contract. A signer is configured only when a key is present; read-only
// deployments leave it empty and route writes through a browser wallet.
func NewLedgerService(cfg config.ChainConfig) (*LedgerService, error) {
	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain RPC: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(reportContractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	address := common.HexToAddress(cfg.ContractAddress)
	chainID := big.NewInt(cfg.ChainID)

	s := &LedgerService{
		client:   client,
		contract: bind.NewBoundContract(address, parsed, client, client, client),
		address:  address,
		chainID:  chainID,
	}

	if cfg.SignerKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.SignerKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid signer key: %w", err)
		}
		signer, err := bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			return nil, fmt.Errorf("failed to create transactor: %w", err)
		}
		s.signer = signer
	}

	return s, nil
}

// rawReport mirrors the contract's Report tuple.
type rawReport struct {
	Reporter      common.Address
	Title         string
	Description   string
	Category      string
	Evidence      string
	Timestamp     *big.Int
	Latitude      *big.Int
	Longitude     *big.Int
	LatDirection  string
	LongDirection string
	MintedTokens  *big.Int
	Verified      bool
}

// rawTokenTransaction mirrors the contract's TokenTransaction tuple.
type rawTokenTransaction struct {
	Account   common.Address
	Amount    *big.Int
	Price     *big.Int
	Timestamp *big.Int
	TxType    uint8
}

// Submit validates the submission, encodes its coordinates, and sends the
// submitReport transaction. Validation happens before the ledger is
// contacted; no round trip is wasted on bad input.
func (s *LedgerService) Submit(ctx context.Context, sub models.ReportSubmission) (string, error) {
	if strings.TrimSpace(sub.Title) == "" {
		return "", errs.NewValidation("title", "title is required")
	}
	if strings.TrimSpace(sub.Description) == "" {
		return "", errs.NewValidation("description", "description is required")
	}
	if strings.TrimSpace(sub.Category) == "" {
		return "", errs.NewValidation("category", "category is required")
	}
	if !geo.ValidDirection(sub.LatDirection, geo.AxisLatitude) {
		return "", errs.NewValidation("lat_direction", "latitude direction must be N or S")
	}
	if !geo.ValidDirection(sub.LngDirection, geo.AxisLongitude) {
		return "", errs.NewValidation("lng_direction", "longitude direction must be E or W")
	}

	latMag, err := geo.Encode(sub.Latitude, geo.AxisLatitude)
	if err != nil {
		return "", err
	}
	lngMag, err := geo.Encode(sub.Longitude, geo.AxisLongitude)
	if err != nil {
		return "", err
	}

	opts, err := s.transactOpts(ctx)
	if err != nil {
		return "", err
	}

	tx, err := s.contract.Transact(opts, "submitReport",
		sub.Title, sub.Description, sub.Category, sub.Evidence,
		big.NewInt(latMag), big.NewInt(lngMag),
		string(sub.LatDirection), string(sub.LngDirection))
	if err != nil {
		return "", errs.NewLedger(err)
	}

	return tx.Hash().Hex(), nil
}

// Verify sends the verifyReport transaction for the report at index within
// the pending collection, minting wholeTokens to its reporter. The token
// amount must be a positive whole-token count; it is converted to the
// ledger's 18-decimal base unit here. index is positional into whichever
// pending snapshot the caller last read; compare PendingCount against that
// snapshot before calling to reduce the window for a shifted index.
func (s *LedgerService) Verify(ctx context.Context, index int, wholeTokens int64) (string, error) {
	if wholeTokens <= 0 {
		return "", errs.NewValidation("token_amount", "token amount must be a positive integer")
	}
	if index < 0 {
		return "", errs.NewValidation("index", "report index must not be negative")
	}

	opts, err := s.transactOpts(ctx)
	if err != nil {
		return "", err
	}

	tx, err := s.contract.Transact(opts, "verifyReport",
		big.NewInt(int64(index)), ToBaseUnits(wholeTokens))
	if err != nil {
		return "", errs.NewLedger(err)
	}

	return tx.Hash().Hex(), nil
}

// ListPending returns the ledger's pending reports, decoded.
func (s *LedgerService) ListPending(ctx context.Context) ([]models.Report, error) {
	return s.listReports(ctx, "getPendingReports", "")
}

// ListVerified returns the ledger's verified reports, decoded, optionally
// filtered to a single reporter address (case-insensitive).
func (s *LedgerService) ListVerified(ctx context.Context, filterByReporter string) ([]models.Report, error) {
	return s.listReports(ctx, "getVerifiedReports", filterByReporter)
}

func (s *LedgerService) listReports(ctx context.Context, method, filterByReporter string) ([]models.Report, error) {
	var out []interface{}
	if err := s.contract.Call(&bind.CallOpts{Context: ctx}, &out, method); err != nil {
		return nil, errs.NewLedger(err)
	}

	raws := *abi.ConvertType(out[0], new([]rawReport)).(*[]rawReport)

	filter := strings.ToLower(strings.TrimSpace(filterByReporter))
	reports := make([]models.Report, 0, len(raws))
	for i, raw := range raws {
		if filter != "" && strings.ToLower(raw.Reporter.Hex()) != filter {
			continue
		}
		report, err := decodeReport(raw, i)
		if err != nil {
			return nil, errs.NewLedger(fmt.Errorf("%s[%d]: %w", method, i, err))
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// PendingCount returns the length of the pending collection. Callers use it
// to detect a shifted snapshot before verifying by index.
func (s *LedgerService) PendingCount(ctx context.Context) (int, error) {
	n, err := s.callUint(ctx, "getPendingReportsCount")
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// TokenBalance returns an account's token balance in base units. The ledger
// is authoritative for balances; the registry's cached map is advisory only.
func (s *LedgerService) TokenBalance(ctx context.Context, address string) (*big.Int, error) {
	return s.callUint(ctx, "getTokenBalance", common.HexToAddress(address))
}

// TotalSupply returns the total minted token supply in base units.
func (s *LedgerService) TotalSupply(ctx context.Context) (*big.Int, error) {
	return s.callUint(ctx, "getTotalTokenSupply")
}

// TransactionHistory returns an account's token transaction history.
func (s *LedgerService) TransactionHistory(ctx context.Context, address string) ([]models.TokenTransaction, error) {
	var out []interface{}
	err := s.contract.Call(&bind.CallOpts{Context: ctx}, &out, "getTokenTransactionHistory", common.HexToAddress(address))
	if err != nil {
		return nil, errs.NewLedger(err)
	}

	raws := *abi.ConvertType(out[0], new([]rawTokenTransaction)).(*[]rawTokenTransaction)

	history := make([]models.TokenTransaction, 0, len(raws))
	for _, raw := range raws {
		txType, ok := transactionTypes[raw.TxType]
		if !ok {
			txType = "unknown"
		}
		history = append(history, models.TokenTransaction{
			Account:   raw.Account.Hex(),
			Amount:    FromBaseUnits(raw.Amount),
			Price:     raw.Price.String(),
			Timestamp: time.Unix(raw.Timestamp.Int64(), 0).UTC(),
			Type:      txType,
		})
	}
	return history, nil
}

// Owner returns the contract's designated owner address, the on-ledger
// counterpart of the authorization gate.
func (s *LedgerService) Owner(ctx context.Context) (string, error) {
	var out []interface{}
	if err := s.contract.Call(&bind.CallOpts{Context: ctx}, &out, "owner"); err != nil {
		return "", errs.NewLedger(err)
	}
	addr := *abi.ConvertType(out[0], new(common.Address)).(*common.Address)
	return addr.Hex(), nil
}

func (s *LedgerService) callUint(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	var out []interface{}
	if err := s.contract.Call(&bind.CallOpts{Context: ctx}, &out, method, args...); err != nil {
		return nil, errs.NewLedger(err)
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

func (s *LedgerService) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if s.signer == nil {
		return nil, errs.ErrWritesDisabled
	}
	// The wallet-side confirmation step can take as long as the user needs,
	// so no deadline beyond the caller's context is imposed here
	opts := *s.signer
	opts.Context = ctx
	return &opts, nil
}

// ToBaseUnits converts a whole-token count to the ledger's 18-decimal base
// unit.
func ToBaseUnits(wholeTokens int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(wholeTokens), weiPerToken)
}

// FromBaseUnits converts base units down to whole tokens, truncating any
// fractional remainder.
func FromBaseUnits(baseUnits *big.Int) uint64 {
	if baseUnits == nil {
		return 0
	}
	return new(big.Int).Div(baseUnits, weiPerToken).Uint64()
}

// decodeReport maps a raw ledger tuple into the internal report type. The
// ledger is a best-effort external source: absent strings stay empty rather
// than propagating junk, but numerically corrupt records (magnitudes beyond
// the axis bounds, unknown hemisphere letters) return an error so corruption
// is observable instead of masked.
func decodeReport(raw rawReport, index int) (models.Report, error) {
	latDir := geo.Direction(raw.LatDirection)
	if !geo.ValidDirection(latDir, geo.AxisLatitude) {
		return models.Report{}, fmt.Errorf("invalid latitude direction %q", raw.LatDirection)
	}
	lngDir := geo.Direction(raw.LongDirection)
	if !geo.ValidDirection(lngDir, geo.AxisLongitude) {
		return models.Report{}, fmt.Errorf("invalid longitude direction %q", raw.LongDirection)
	}

	latMag := int64(0)
	if raw.Latitude != nil {
		latMag = raw.Latitude.Int64()
	}
	if latMag < 0 || latMag > 9000 {
		return models.Report{}, fmt.Errorf("latitude magnitude %d out of range", latMag)
	}
	lngMag := int64(0)
	if raw.Longitude != nil {
		lngMag = raw.Longitude.Int64()
	}
	if lngMag < 0 || lngMag > 18000 {
		return models.Report{}, fmt.Errorf("longitude magnitude %d out of range", lngMag)
	}

	lat, latDir := geo.Decode(latMag, latDir)
	lng, lngDir := geo.Decode(lngMag, lngDir)

	submittedAt := time.Time{}
	if raw.Timestamp != nil && raw.Timestamp.Sign() > 0 {
		submittedAt = time.Unix(raw.Timestamp.Int64(), 0).UTC()
	}

	return models.Report{
		Index:        index,
		Reporter:     raw.Reporter.Hex(),
		Title:        raw.Title,
		Description:  raw.Description,
		Category:     raw.Category,
		Evidence:     raw.Evidence,
		SubmittedAt:  submittedAt,
		Latitude:     lat,
		LatDirection: latDir,
		Longitude:    lng,
		LngDirection: lngDir,
		MintedTokens: FromBaseUnits(raw.MintedTokens),
		Verified:     raw.Verified,
	}, nil
}
