package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/disgo/webhook"
	"github.com/disgoorg/snowflake/v2"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/claim"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/logger"
)

const (
	alertColor          = 0xE74C3C
	defaultAlertTimeout = 10 * time.Second
)

type embedSender interface {
	CreateEmbeds(embeds []discord.Embed, opts ...rest.RequestOpt) (*discord.Message, error)
}

// DiscordAlerter posts paid-but-unminted claims to a Discord webhook.
type DiscordAlerter struct {
	client  embedSender
	closer  func(ctx context.Context)
	timeout time.Duration
}

// ParseWebhookURL extracts the webhook id and token from a Discord webhook
// URL of the form https://discord.com/api/webhooks/{id}/{token}.
func ParseWebhookURL(raw string) (snowflake.ID, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return 0, "", fmt.Errorf("invalid webhook url: %w", err)
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] != "webhooks" {
			continue
		}
		id, err := snowflake.Parse(parts[i+1])
		if err != nil {
			return 0, "", fmt.Errorf("invalid webhook id %q: %w", parts[i+1], err)
		}
		if parts[i+2] == "" {
			break
		}
		return id, parts[i+2], nil
	}
	return 0, "", fmt.Errorf("invalid webhook url: %s", u.Redacted())
}

func NewDiscordAlerter(webhookURL string) (*DiscordAlerter, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}

	client := webhook.New(id, token)
	return &DiscordAlerter{
		client:  client,
		closer:  client.Close,
		timeout: defaultAlertTimeout,
	}, nil
}

func (a *DiscordAlerter) MintFailed(ctx context.Context, failure claim.MintFailure) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if _, err := a.client.CreateEmbeds([]discord.Embed{failureEmbed(failure)}, rest.WithCtx(ctx)); err != nil {
		logger.LogError("Failed to send mint failure alert", err,
			slog.String("payment", failure.PaymentTxHash))
	}
}

func (a *DiscordAlerter) Close(ctx context.Context) {
	if a.closer != nil {
		a.closer(ctx)
	}
}

func failureEmbed(failure claim.MintFailure) discord.Embed {
	tokenID := "not allocated"
	if failure.TokenID != nil {
		tokenID = fmt.Sprintf("#%d", *failure.TokenID)
	}
	reason := "unknown"
	if failure.Err != nil {
		reason = failure.Err.Error()
	}
	if len(reason) > 1000 {
		reason = reason[:1000] + "…"
	}

	return discord.NewEmbedBuilder().
		SetTitle("Paid claim needs reconciliation").
		SetDescription(fmt.Sprintf("```%s```", reason)).
		SetColor(alertColor).
		AddField("Wallet", failure.Wallet, false).
		AddField("Payment", failure.PaymentTxHash, false).
		AddField("Network", failure.Network, true).
		AddField("Token", tokenID, true).
		AddField("Entry", failure.Entry, true).
		SetTimestamp(time.Now()).
		Build()
}
