package workflow

import (
	"context"
	"fmt"
	"math/big"
	"testing"

	"github.com/carbonx/backend/internal/auth"
	"github.com/carbonx/backend/internal/errs"
	"github.com/carbonx/backend/internal/geo"
	"github.com/carbonx/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLedger emulates the report contract in memory: submissions append to
// the pending collection with codec-encoded coordinates, verification moves
// the indexed report to the verified collection and credits the reporter.
type fakeLedger struct {
	reporter string
	pending  []storedReport
	verified []storedReport
	balances map[string]*big.Int
}

type storedReport struct {
	reporter     string
	title        string
	description  string
	category     string
	evidence     string
	latMag       int64
	lngMag       int64
	latDir       geo.Direction
	lngDir       geo.Direction
	mintedTokens uint64
	verifiedFlag bool
}

func newFakeLedger(reporter string) *fakeLedger {
	return &fakeLedger{reporter: reporter, balances: map[string]*big.Int{}}
}

func (f *fakeLedger) Submit(_ context.Context, sub models.ReportSubmission) (string, error) {
	latMag, err := geo.Encode(sub.Latitude, geo.AxisLatitude)
	if err != nil {
		return "", err
	}
	lngMag, err := geo.Encode(sub.Longitude, geo.AxisLongitude)
	if err != nil {
		return "", err
	}
	f.pending = append(f.pending, storedReport{
		reporter:    f.reporter,
		title:       sub.Title,
		description: sub.Description,
		category:    sub.Category,
		evidence:    sub.Evidence,
		latMag:      latMag,
		lngMag:      lngMag,
		latDir:      sub.LatDirection,
		lngDir:      sub.LngDirection,
	})
	return fmt.Sprintf("0xsubmit%d", len(f.pending)), nil
}

func (f *fakeLedger) Verify(_ context.Context, index int, wholeTokens int64) (string, error) {
	if wholeTokens <= 0 {
		return "", errs.NewValidation("token_amount", "token amount must be a positive integer")
	}
	if index < 0 || index >= len(f.pending) {
		return "", &errs.LedgerError{Message: "execution reverted: invalid report index"}
	}

	report := f.pending[index]
	report.verifiedFlag = true
	report.mintedTokens = uint64(wholeTokens)
	f.pending = append(f.pending[:index], f.pending[index+1:]...)
	f.verified = append(f.verified, report)

	baseUnits := new(big.Int).Mul(big.NewInt(wholeTokens), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	if prev, ok := f.balances[report.reporter]; ok {
		baseUnits = new(big.Int).Add(prev, baseUnits)
	}
	f.balances[report.reporter] = baseUnits

	return fmt.Sprintf("0xverify%d", len(f.verified)), nil
}

func (f *fakeLedger) decode(stored []storedReport) []models.Report {
	out := make([]models.Report, 0, len(stored))
	for i, r := range stored {
		lat, latDir := geo.Decode(r.latMag, r.latDir)
		lng, lngDir := geo.Decode(r.lngMag, r.lngDir)
		out = append(out, models.Report{
			Index:        i,
			Reporter:     r.reporter,
			Title:        r.title,
			Description:  r.description,
			Category:     r.category,
			Evidence:     r.evidence,
			Latitude:     lat,
			LatDirection: latDir,
			Longitude:    lng,
			LngDirection: lngDir,
			MintedTokens: r.mintedTokens,
			Verified:     r.verifiedFlag,
		})
	}
	return out
}

func (f *fakeLedger) ListPending(context.Context) ([]models.Report, error) {
	return f.decode(f.pending), nil
}

func (f *fakeLedger) ListVerified(context.Context, string) ([]models.Report, error) {
	return f.decode(f.verified), nil
}

func (f *fakeLedger) PendingCount(context.Context) (int, error) {
	return len(f.pending), nil
}

func (f *fakeLedger) TokenBalance(_ context.Context, address string) (*big.Int, error) {
	if b, ok := f.balances[address]; ok {
		return b, nil
	}
	return big.NewInt(0), nil
}

func (f *fakeLedger) TransactionHistory(context.Context, string) ([]models.TokenTransaction, error) {
	return nil, nil
}

func (f *fakeLedger) TotalSupply(context.Context) (*big.Int, error) {
	total := big.NewInt(0)
	for _, b := range f.balances {
		total = new(big.Int).Add(total, b)
	}
	return total, nil
}

// The full submit-then-verify path: coordinates encode to hundredths of a
// degree on the way in and decode back intact, and verification moves the
// report to the verified collection with its whole-token reward.
func TestSubmitVerifyRoundTrip(t *testing.T) {
	led := newFakeLedger(reporterAddr)
	reg := new(MockRegistry)
	reg.On("ListAll").Return([]models.Company{
		{Name: "Acme", WalletAddress: reporterAddr, Status: models.VerificationApproved},
	}, nil)
	svc := NewWorkflowService(auth.NewGate(adminAddr), reg, led)
	ctx := context.Background()

	_, err := svc.SubmitReport(ctx, models.ReportSubmission{
		Title:        "Harbor cleanup",
		Description:  "Removed 12 tons of waste",
		Category:     "Ocean Conservation",
		Latitude:     40.71,
		LatDirection: geo.DirNorth,
		Longitude:    74.01,
		LngDirection: geo.DirWest,
	})
	require.NoError(t, err)

	// The ledger holds the fixed-point encoding
	require.Len(t, led.pending, 1)
	assert.Equal(t, int64(4071), led.pending[0].latMag)
	assert.Equal(t, geo.DirNorth, led.pending[0].latDir)
	assert.Equal(t, int64(7401), led.pending[0].lngMag)
	assert.Equal(t, geo.DirWest, led.pending[0].lngDir)

	pending, err := svc.ListPendingReports(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.False(t, pending[0].Verified)
	assert.Equal(t, uint64(0), pending[0].MintedTokens)
	assert.Equal(t, "Acme", pending[0].CompanyName)

	// A non-admin cannot verify and the pending collection is untouched
	_, err = svc.VerifyReport(ctx, 0, 10, strangerAddr)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	count, err := svc.PendingReportCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = svc.VerifyReport(ctx, 0, 50, adminAddr)
	require.NoError(t, err)

	count, err = svc.PendingReportCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	verified, err := svc.ListVerifiedReports(ctx, "")
	require.NoError(t, err)
	require.Len(t, verified, 1)
	assert.True(t, verified[0].Verified)
	assert.Equal(t, uint64(50), verified[0].MintedTokens)
	assert.InDelta(t, 40.71, verified[0].Latitude, 1e-9)
	assert.Equal(t, geo.DirNorth, verified[0].LatDirection)
	assert.InDelta(t, 74.01, verified[0].Longitude, 1e-9)
	assert.Equal(t, geo.DirWest, verified[0].LngDirection)

	// The reporter's balance reflects the mint at base-unit scale
	balance, err := svc.GetTokenBalance(ctx, reporterAddr)
	require.NoError(t, err)
	want, _ := new(big.Int).SetString("50000000000000000000", 10)
	assert.Equal(t, 0, balance.Cmp(want))
}

// Verifying by index after another verification shifted the collection is
// the documented race: the index now addresses a different report. The
// engine does not re-validate the target; the pending count is how callers
// detect the shift.
func TestVerifyIndexShiftsAfterConcurrentVerification(t *testing.T) {
	led := newFakeLedger(reporterAddr)
	reg := new(MockRegistry)
	reg.On("ListAll").Return([]models.Company{}, nil)
	svc := NewWorkflowService(auth.NewGate(adminAddr), reg, led)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.SubmitReport(ctx, models.ReportSubmission{
			Title:        title,
			Description:  "d",
			Category:     "Carbon Offset",
			Latitude:     10,
			LatDirection: geo.DirNorth,
			Longitude:    20,
			LngDirection: geo.DirEast,
		})
		require.NoError(t, err)
	}

	snapshotCount, err := svc.PendingReportCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, snapshotCount)

	// Another verification lands, shifting the collection
	_, err = svc.VerifyReport(ctx, 0, 10, adminAddr)
	require.NoError(t, err)

	// The stale index 1 now addresses "third", not "second"
	current, err := svc.PendingReportCount(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, snapshotCount, current, "count mismatch is the caller's staleness signal")

	_, err = svc.VerifyReport(ctx, 1, 10, adminAddr)
	require.NoError(t, err)

	verified, err := svc.ListVerifiedReports(ctx, "")
	require.NoError(t, err)
	require.Len(t, verified, 2)
	assert.Equal(t, "first", verified[0].Title)
	assert.Equal(t, "third", verified[1].Title)
}
