package core

import (
	"errors"
	"sync"

	"github.com/arlet/classroom/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrWrongSecret         = errors.New("wrong admin secret")
	ErrAdminAlreadyPresent = errors.New("admin already present")
)

// AdminAuthority enforces the at-most-one-admin invariant. Claim is a
// compare-and-set under one mutex so concurrent claims with the correct
// secret resolve with exactly one grant.
type AdminAuthority struct {
	mu      sync.Mutex
	secret  string
	adminID domain.ConnID
	present bool
}

// NewAdminAuthority configures the shared secret. An empty secret disables
// admin claims entirely.
func NewAdminAuthority(secret string) *AdminAuthority {
	return &AdminAuthority{secret: secret}
}

func (a *AdminAuthority) Claim(id domain.ConnID, secret string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.secret == "" || secret != a.secret {
		return ErrWrongSecret
	}
	if a.present {
		return ErrAdminAlreadyPresent
	}
	a.present = true
	a.adminID = id
	log.Info().Str("module", "core.admin").Str("conn", string(id)).Msg("admin claim granted")
	return nil
}

// Release clears the admin unconditionally. Only the session teardown path
// calls it; voluntary demotion is not supported.
func (a *AdminAuthority) Release() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.present = false
	a.adminID = ""
}

func (a *AdminAuthority) AdminID() (domain.ConnID, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.adminID, a.present
}

func (a *AdminAuthority) Present() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.present
}
