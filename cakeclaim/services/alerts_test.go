package services

import (
	"context"
	"errors"
	"testing"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/claim"
)

func TestParseWebhookURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantID    snowflake.ID
		wantToken string
		wantErr   bool
	}{
		{name: "discord.com", url: "https://discord.com/api/webhooks/1234567890123456789/abc-DEF_123", wantID: 1234567890123456789, wantToken: "abc-DEF_123"},
		{name: "versioned api", url: "https://discord.com/api/v10/webhooks/42/tok", wantID: 42, wantToken: "tok"},
		{name: "missing token", url: "https://discord.com/api/webhooks/42", wantErr: true},
		{name: "bad id", url: "https://discord.com/api/webhooks/notanid/tok", wantErr: true},
		{name: "not a webhook", url: "https://example.com/hooks/42/tok", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, token, err := ParseWebhookURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseWebhookURL() = %v, %s, want error", id, token)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseWebhookURL() error = %v", err)
			}
			if id != tt.wantID || token != tt.wantToken {
				t.Errorf("ParseWebhookURL() = %v, %s", id, token)
			}
		})
	}
}

type fakeEmbedSender struct {
	embeds []discord.Embed
	err    error
}

func (f *fakeEmbedSender) CreateEmbeds(embeds []discord.Embed, _ ...rest.RequestOpt) (*discord.Message, error) {
	f.embeds = append(f.embeds, embeds...)
	return &discord.Message{}, f.err
}

func TestDiscordAlerter_MintFailed(t *testing.T) {
	sender := &fakeEmbedSender{}
	alerter := &DiscordAlerter{client: sender, timeout: defaultAlertTimeout}
	tokenID := int64(42)

	alerter.MintFailed(context.Background(), claim.MintFailure{
		Wallet:        "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		Network:       "polygon",
		PaymentTxHash: "0xabc",
		TokenID:       &tokenID,
		Entry:         "Golden Cake",
		Err:           errors.New("execution reverted"),
	})

	if len(sender.embeds) != 1 {
		t.Fatalf("sent %d embeds, want 1", len(sender.embeds))
	}
	embed := sender.embeds[0]
	if embed.Description != "```execution reverted```" {
		t.Errorf("Description = %q", embed.Description)
	}
	fields := make(map[string]string)
	for _, f := range embed.Fields {
		fields[f.Name] = f.Value
	}
	if fields["Token"] != "#42" || fields["Wallet"] != "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed" {
		t.Errorf("Fields = %v", fields)
	}

	sender.err = errors.New("rate limited")
	alerter.MintFailed(context.Background(), claim.MintFailure{PaymentTxHash: "0xdef"})
	if len(sender.embeds) != 2 {
		t.Errorf("second alert not attempted")
	}
}
