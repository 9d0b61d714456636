package handlers

import (
	"errors"
	"net/http"

	"github.com/carbonx/backend/internal/errs"
	"github.com/carbonx/backend/internal/geo"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// respondError translates the core error taxonomy into HTTP responses. The
// core never logs; surfacing failures to callers happens here.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *errs.ValidationError
		conflictErr   *errs.ConflictError
		ledgerErr     *errs.LedgerError
		registryErr   *errs.RegistryError
		rangeErr      *geo.RangeError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message, "field": validationErr.Field})
	case errors.As(err, &rangeErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": rangeErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message})
	case errors.Is(err, errs.ErrUnauthorized):
		// Deliberately opaque: no detail beyond "not authorized"
		c.JSON(http.StatusForbidden, gin.H{"error": "not authorized"})
	case errors.Is(err, errs.ErrWritesDisabled):
		// Deployment configuration, not an internal fault
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": errs.ErrWritesDisabled.Error()})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.As(err, &ledgerErr):
		// The ledger's message passes through verbatim; retrying is the
		// caller's decision
		c.JSON(http.StatusBadGateway, gin.H{"error": ledgerErr.Error()})
	case errors.As(err, &registryErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "registry temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
