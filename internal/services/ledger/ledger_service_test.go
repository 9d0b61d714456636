package ledger

import (
	"context"
	"math/big"
	"testing"

	"github.com/carbonx/backend/internal/errs"
	"github.com/carbonx/backend/internal/geo"
	"github.com/carbonx/backend/internal/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSubmission() models.ReportSubmission {
	return models.ReportSubmission{
		Title:        "Mangrove restoration",
		Description:  "Replanted 40 hectares of coastal mangrove",
		Category:     "Forest Conservation",
		Latitude:     40.71,
		LatDirection: geo.DirNorth,
		Longitude:    74.01,
		LngDirection: geo.DirWest,
	}
}

// Validation failures must never reach the ledger, so a zero-value service
// with no client is enough to exercise them.
func TestSubmitValidation(t *testing.T) {
	s := &LedgerService{}

	cases := []struct {
		name   string
		mutate func(*models.ReportSubmission)
	}{
		{"missing title", func(sub *models.ReportSubmission) { sub.Title = "" }},
		{"missing description", func(sub *models.ReportSubmission) { sub.Description = " " }},
		{"missing category", func(sub *models.ReportSubmission) { sub.Category = "" }},
		{"bad latitude direction", func(sub *models.ReportSubmission) { sub.LatDirection = geo.DirEast }},
		{"bad longitude direction", func(sub *models.ReportSubmission) { sub.LngDirection = geo.Direction("Z") }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := validSubmission()
			tc.mutate(&sub)

			_, err := s.Submit(context.Background(), sub)
			assert.True(t, errs.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func TestSubmitOutOfRangeCoordinates(t *testing.T) {
	s := &LedgerService{}

	sub := validSubmission()
	sub.Latitude = 91
	_, err := s.Submit(context.Background(), sub)
	var re *geo.RangeError
	require.ErrorAs(t, err, &re)

	sub = validSubmission()
	sub.Longitude = 181
	_, err = s.Submit(context.Background(), sub)
	require.ErrorAs(t, err, &re)
}

func TestVerifyValidation(t *testing.T) {
	s := &LedgerService{}

	_, err := s.Verify(context.Background(), 0, 0)
	assert.True(t, errs.IsValidation(err))

	_, err = s.Verify(context.Background(), 0, -5)
	assert.True(t, errs.IsValidation(err))

	_, err = s.Verify(context.Background(), -1, 10)
	assert.True(t, errs.IsValidation(err))
}

func TestBaseUnitConversion(t *testing.T) {
	base := ToBaseUnits(50)
	want, _ := new(big.Int).SetString("50000000000000000000", 10)
	assert.Equal(t, 0, base.Cmp(want))

	assert.Equal(t, uint64(50), FromBaseUnits(base))
	assert.Equal(t, uint64(0), FromBaseUnits(nil))
	assert.Equal(t, uint64(0), FromBaseUnits(big.NewInt(1))) // dust truncates

	// A fractional remainder truncates down to whole tokens
	withDust := new(big.Int).Add(base, big.NewInt(999))
	assert.Equal(t, uint64(50), FromBaseUnits(withDust))
}

func validRaw() rawReport {
	return rawReport{
		Reporter:      common.HexToAddress("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"),
		Title:         "Solar rollout",
		Description:   "Installed rooftop panels",
		Category:      "Renewable Energy",
		Timestamp:     big.NewInt(1714000000),
		Latitude:      big.NewInt(4071),
		Longitude:     big.NewInt(7401),
		LatDirection:  "N",
		LongDirection: "W",
		MintedTokens:  ToBaseUnits(50),
		Verified:      true,
	}
}

func TestDecodeReport(t *testing.T) {
	report, err := decodeReport(validRaw(), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, report.Index)
	assert.Equal(t, "Solar rollout", report.Title)
	assert.InDelta(t, 40.71, report.Latitude, 1e-9)
	assert.Equal(t, geo.DirNorth, report.LatDirection)
	assert.InDelta(t, 74.01, report.Longitude, 1e-9)
	assert.Equal(t, geo.DirWest, report.LngDirection)
	assert.Equal(t, uint64(50), report.MintedTokens)
	assert.True(t, report.Verified)
	assert.Equal(t, int64(1714000000), report.SubmittedAt.Unix())
}

func TestDecodeReportDefaultsAbsentFields(t *testing.T) {
	raw := validRaw()
	raw.Title = ""
	raw.Evidence = ""
	raw.Timestamp = nil
	raw.MintedTokens = nil

	report, err := decodeReport(raw, 0)
	require.NoError(t, err)
	assert.Empty(t, report.Title)
	assert.Empty(t, report.Evidence)
	assert.True(t, report.SubmittedAt.IsZero())
	assert.Equal(t, uint64(0), report.MintedTokens)
}

// Numeric corruption must be observable, not silently defaulted.
func TestDecodeReportRejectsCorruptRecords(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*rawReport)
	}{
		{"latitude magnitude too large", func(r *rawReport) { r.Latitude = big.NewInt(9001) }},
		{"negative latitude magnitude", func(r *rawReport) { r.Latitude = big.NewInt(-1) }},
		{"longitude magnitude too large", func(r *rawReport) { r.Longitude = big.NewInt(18001) }},
		{"unknown latitude letter", func(r *rawReport) { r.LatDirection = "E" }},
		{"unknown longitude letter", func(r *rawReport) { r.LongDirection = "Q" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRaw()
			tc.mutate(&raw)
			_, err := decodeReport(raw, 0)
			assert.Error(t, err)
		})
	}
}

func TestDecodeReportZeroCoordinates(t *testing.T) {
	raw := validRaw()
	raw.Latitude = big.NewInt(0)
	raw.LatDirection = "S"
	raw.Longitude = big.NewInt(0)
	raw.LongDirection = "W"

	report, err := decodeReport(raw, 0)
	require.NoError(t, err)

	// 0°S stays 0°S: the hemisphere letter is preserved, never normalized
	assert.Equal(t, 0.0, report.Latitude)
	assert.Equal(t, geo.DirSouth, report.LatDirection)
	assert.Equal(t, geo.DirWest, report.LngDirection)
}

// A deployment without a signer key serves reads only; write attempts fail
// with the dedicated sentinel after input validation, never as a generic
// internal error.
func TestWritesDisabledWithoutSigner(t *testing.T) {
	svc := &LedgerService{}

	_, err := svc.Submit(context.Background(), validSubmission())
	assert.ErrorIs(t, err, errs.ErrWritesDisabled)

	_, err = svc.Verify(context.Background(), 0, 50)
	assert.ErrorIs(t, err, errs.ErrWritesDisabled)

	// Bad input is still reported as such, not as a disabled-writes state
	_, err = svc.Verify(context.Background(), 0, 0)
	assert.True(t, errs.IsValidation(err))
	assert.NotErrorIs(t, err, errs.ErrWritesDisabled)
}
