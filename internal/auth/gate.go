package auth

import "strings"

// Gate decides whether a wallet identity may perform a privileged action.
// There is exactly one privileged identity, injected at construction so
// tests can substitute arbitrary addresses. The gate is advisory at this
// layer; the ledger contract's owner check is the true enforcement point.
type Gate struct {
	admin string
}

// NewGate creates a gate for the given admin wallet address.
func NewGate(adminAddress string) *Gate {
	return &Gate{admin: strings.ToLower(strings.TrimSpace(adminAddress))}
}

// IsAuthorized reports whether address is the configured admin identity.
// The comparison is case-insensitive. Empty input is never authorized and
// never panics.
func (g *Gate) IsAuthorized(address string) bool {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" || g.admin == "" {
		return false
	}
	return address == g.admin
}
