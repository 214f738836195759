package claim

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrEmptyCatalog           = errors.New("catalog is empty")
	ErrCooldownActive         = errors.New("cooldown active")
	ErrPersistence            = errors.New("persistence error")
	ErrPaymentAlreadyUsed     = errors.New("payment already used")
	ErrNoOpenClaim            = errors.New("no open claim for wallet")
	ErrVerificationInProgress = errors.New("verification already in progress")
)

const CooldownMessage = "You have already claimed an NFT within the last 24 hours."

// CooldownError is returned when a wallet claimed too recently. It matches
// ErrCooldownActive.
type CooldownError struct {
	RetryAfter time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("cooldown active, retry in %s", e.RetryAfter.Round(time.Second))
}

func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}
