package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/carbonx/backend/internal/errs"
	"github.com/carbonx/backend/internal/geo"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation",
			err:        errs.NewValidation("category", "unknown report category"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "unknown report category",
		},
		{
			name:       "coordinate out of range",
			err:        &geo.RangeError{Axis: geo.AxisLatitude, Value: 91},
			wantStatus: http.StatusBadRequest,
			wantBody:   "out of range",
		},
		{
			name:       "conflict",
			err:        &errs.ConflictError{Message: "a company with this name already exists"},
			wantStatus: http.StatusConflict,
			wantBody:   "already exists",
		},
		{
			name:       "unauthorized is opaque",
			err:        errs.ErrUnauthorized,
			wantStatus: http.StatusForbidden,
			wantBody:   "not authorized",
		},
		{
			name:       "writes disabled is a configuration state",
			err:        fmt.Errorf("verify report: %w", errs.ErrWritesDisabled),
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "no signer key configured",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("get company: %w", gorm.ErrRecordNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   "record not found",
		},
		{
			name:       "ledger message passes through verbatim",
			err:        errs.NewLedger(errors.New("execution reverted: invalid report index")),
			wantStatus: http.StatusBadGateway,
			wantBody:   "execution reverted: invalid report index",
		},
		{
			name:       "registry outage",
			err:        &errs.RegistryError{Op: "ListAll", Err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "temporarily unavailable",
		},
		{
			name:       "unclassified",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRegistryOutageHidesInternalDetail(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, &errs.RegistryError{Op: "GetByID", Err: errors.New("password authentication failed for user postgres")})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}
