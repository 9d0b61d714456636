package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// WalletHeader carries the caller's wallet address. Signature verification
// is the wallet provider's job; this header is the advisory identity the
// off-chain gate inspects, while the ledger contract's owner check remains
// the true enforcement point for privileged writes.
const WalletHeader = "X-Wallet-Address"

// WalletAddress extracts the caller's wallet address into the request
// context. Routes that tolerate anonymous reads mount it without requiring
// a value.
func WalletAddress() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("wallet_address", strings.TrimSpace(c.GetHeader(WalletHeader)))
		c.Next()
	}
}

// RequireWallet rejects requests that carry no wallet identity.
func RequireWallet() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader(WalletHeader)) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "wallet address required"})
			c.Abort()
			return
		}
		c.Set("wallet_address", strings.TrimSpace(c.GetHeader(WalletHeader)))
		c.Next()
	}
}
