package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gofiber/fiber/v2"

	"github.com/ellavondegurechaff/cakeclaim/backend/models"
	"github.com/ellavondegurechaff/cakeclaim/backend/utils"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/chain"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/claim"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/services"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type OwnerReader interface {
	OwnerOf(ctx context.Context, tokenID int64) (common.Address, error)
}

// WebApp represents the web application with all dependencies
type WebApp struct {
	DB      Pinger
	Repos   *models.Repositories
	Claims  *claim.Service
	Owners  OwnerReader
	Version string
	Commit  string
}

func HealthCheck(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		resp := models.HealthResponse{
			Success:  true,
			Status:   "ok",
			Version:  webApp.Version,
			Commit:   webApp.Commit,
			Database: "ok",
		}
		if webApp.DB != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := webApp.DB.Ping(ctx); err != nil {
				slog.Warn("Health check database ping failed",
					slog.String("type", "http"),
					slog.Any("error", err))
				resp.Success = false
				resp.Status = "degraded"
				resp.Database = "unreachable"
				return utils.SendJSON(c, http.StatusServiceUnavailable, resp)
			}
		}
		return utils.SendJSON(c, http.StatusOK, resp)
	}
}

// ListTemplates returns the catalog rarest first, optionally fuzzy filtered by ?q=.
func ListTemplates(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		entries, err := webApp.Repos.Catalog.List(c.UserContext(), repositories.OrderByWeight)
		if err != nil {
			return sendClaimError(c, err)
		}
		if q := strings.TrimSpace(c.Query("q")); q != "" {
			entries = services.SearchCatalog(entries, q)
		}
		return utils.SendJSON(c, http.StatusOK, models.TemplatesResponse{
			Success:      true,
			NftTemplates: entries,
		})
	}
}

// ListTokens returns issued tokens newest first. Without ?limit= every token
// is returned. With it, a full page carries nextBefore, which the caller
// passes back as ?before= for the next page.
func ListTokens(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				return utils.SendBadRequest(c, "Invalid limit.")
			}
			limit = n
		}
		var before *int64
		if raw := c.Query("before"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id < 0 {
				return utils.SendBadRequest(c, "Invalid before token id.")
			}
			before = &id
		}

		tokens, err := webApp.Repos.Token.List(c.UserContext(), before, limit)
		if err != nil {
			return sendClaimError(c, err)
		}

		resp := models.TokensResponse{Success: true, Nfts: tokens}
		if limit > 0 && len(tokens) == limit {
			next := tokens[len(tokens)-1].TokenID
			resp.NextBefore = &next
		}
		return utils.SendJSON(c, http.StatusOK, resp)
	}
}

func TokenOwner(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenID, err := strconv.ParseInt(c.Params("tokenId"), 10, 64)
		if err != nil || tokenID < 0 {
			return utils.SendBadRequest(c, "Invalid token id.")
		}

		if _, err := webApp.Repos.Token.GetByTokenID(c.UserContext(), tokenID); err != nil {
			return sendClaimError(c, err)
		}
		owner, err := webApp.Owners.OwnerOf(c.UserContext(), tokenID)
		if err != nil {
			return sendClaimError(c, err)
		}
		return utils.SendJSON(c, http.StatusOK, models.OwnerResponse{
			Success: true,
			TokenID: tokenID,
			Owner:   owner.Hex(),
		})
	}
}

// Claim admits the wallet and answers with the payment transaction it
// should send.
func Claim(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.ClaimRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body.")
		}

		instruction, err := webApp.Claims.RequestClaim(c.UserContext(), req.Address, req.Network)
		if err != nil {
			return sendClaimError(c, err)
		}
		return utils.SendJSON(c, http.StatusOK, models.ClaimResponse{
			Success:        true,
			PaymentRequest: instruction,
		})
	}
}

// VerifyTransaction blocks until the payment is mined, then mints the reward.
func VerifyTransaction(webApp *WebApp) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.VerifyRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "Invalid request body.")
		}

		reward, err := webApp.Claims.VerifyAndMint(c.UserContext(), req.Address, req.Network, req.TransactionHash)
		if err != nil {
			return sendClaimError(c, err)
		}
		return utils.SendJSON(c, http.StatusOK, models.VerifyResponse{
			Success:         true,
			Message:         "Transaction verified and NFT minted.",
			Address:         reward.Address.Hex(),
			RewardEntry:     reward.Entry,
			TokenID:         reward.TokenID,
			TransactionHash: reward.TransactionHash.Hex(),
		})
	}
}

func NotFound(c *fiber.Ctx) error {
	slog.Warn("No route matched for request",
		slog.String("type", "http"),
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.String("ip", c.IP()),
	)
	return utils.SendNotFound(c, "The requested endpoint does not exist")
}

var _ OwnerReader = (*chain.MintIssuer)(nil)
