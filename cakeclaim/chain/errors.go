package chain

import "errors"

var (
	ErrInvalidAddress      = errors.New("invalid address")
	ErrInvalidTxHash       = errors.New("invalid transaction hash")
	ErrUnsupportedNetwork  = errors.New("unsupported network")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrConfirmationTimeout = errors.New("confirmation timed out")
	ErrPaymentRejected     = errors.New("payment rejected")
	ErrMintFailed          = errors.New("mint failed")
)
