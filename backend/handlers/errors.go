package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/cakeclaim/backend/models"
	"github.com/ellavondegurechaff/cakeclaim/backend/utils"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/claim"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/logger"
)

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Order matters: a mint failure can wrap an upstream error.
var errorMappings = []errorMapping{
	{chain.ErrInvalidAddress, http.StatusBadRequest, "INVALID_ADDRESS", "No valid address provided."},
	{chain.ErrInvalidTxHash, http.StatusBadRequest, "INVALID_TRANSACTION", "No valid transaction hash provided."},
	{chain.ErrUnsupportedNetwork, http.StatusBadRequest, "UNSUPPORTED_NETWORK", "Unsupported network."},
	{claim.ErrCooldownActive, http.StatusTooManyRequests, "COOLDOWN_ACTIVE", claim.CooldownMessage},
	{claim.ErrPaymentAlreadyUsed, http.StatusConflict, "PAYMENT_ALREADY_USED", "This payment has already been used to claim an NFT."},
	{claim.ErrVerificationInProgress, http.StatusConflict, "VERIFICATION_IN_PROGRESS", "This payment is already being verified."},
	{claim.ErrNoOpenClaim, http.StatusForbidden, "CLAIM_REQUIRED", "No open claim for this wallet. Request a claim first."},
	{chain.ErrPaymentRejected, http.StatusUnprocessableEntity, "PAYMENT_REJECTED", "The transaction does not pay for this claim."},
	{chain.ErrConfirmationTimeout, http.StatusGatewayTimeout, "CONFIRMATION_TIMEOUT", "The transaction was not confirmed in time. Please try again."},
	{chain.ErrMintFailed, http.StatusBadGateway, "MINT_FAILED", "Minting failed. Your payment has been recorded for review."},
	{chain.ErrUpstreamUnavailable, http.StatusBadGateway, "UPSTREAM_UNAVAILABLE", "The blockchain node is unavailable. Please try again."},
	{claim.ErrEmptyCatalog, http.StatusServiceUnavailable, "EMPTY_CATALOG", "No NFTs are available to claim."},
}

// sendClaimError writes the response for err. Unknown errors are logged
// and reported as internal errors.
func sendClaimError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		resp := models.ErrorResponse{Success: false, Message: m.message, Code: m.code}

		var cooldown *claim.CooldownError
		if errors.As(err, &cooldown) {
			seconds := int64(cooldown.RetryAfter.Seconds())
			resp.RetryAfter = seconds
			c.Set(fiber.HeaderRetryAfter, strconv.FormatInt(seconds, 10))
		}
		if m.status >= http.StatusInternalServerError {
			logger.LogError("Claim request failed", err, slog.String("path", c.Path()))
		}
		return utils.SendJSON(c, m.status, resp)
	}

	if repositories.IsNotFound(err) {
		return utils.SendNotFound(c, "Not found.")
	}

	logger.LogError("Unhandled request error", err, slog.String("path", c.Path()))
	return utils.SendInternalServerError(c, "Internal server error.")
}
