package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/models"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories/memory"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/database/repositories/mock"
)

func TestWriteUnreconciled(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	for i, tx := range []string{"0xaa", "0xbb", "0xcc"} {
		wallet := []string{"0x01", "0x02", "0x03"}[i]
		at := now.Add(time.Duration(i) * time.Minute)
		if ok, err := store.ClaimRecords().Reserve(ctx, wallet, at, at.Add(-24*time.Hour), at.Add(24*time.Hour)); err != nil || !ok {
			t.Fatalf("Reserve(%s) = %v, %v", wallet, ok, err)
		}
		if err := store.Payments().Register(ctx, &models.Payment{TxHash: tx, WalletAddress: wallet, Network: "polygon"}, at); err != nil {
			t.Fatalf("Register(%s) error = %v", tx, err)
		}
	}
	tokenID := int64(42)
	if err := store.Payments().MarkMintFailed(ctx, "0xaa", &tokenID, "execution reverted"); err != nil {
		t.Fatalf("MarkMintFailed() error = %v", err)
	}
	if err := store.Payments().RecordMint(ctx, "0xbb", &models.IssuedToken{TokenID: 43, MintTxHash: "0xmint"}); err != nil {
		t.Fatalf("RecordMint() error = %v", err)
	}

	var buf bytes.Buffer
	if err := writeUnreconciled(ctx, store.Payments(), 0, &buf); err != nil {
		t.Fatalf("writeUnreconciled() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header and two payments:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "TX_HASH") {
		t.Errorf("header = %q", lines[0])
	}
	for _, want := range []string{"0xaa", "0x01", "mint_failed", "42", "execution reverted"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q does not contain %q", lines[1], want)
		}
	}
	if !strings.Contains(lines[2], "0xcc") || !strings.Contains(lines[2], "confirmed") {
		t.Errorf("row %q, want confirmed 0xcc", lines[2])
	}
	if strings.Contains(buf.String(), "0xbb") {
		t.Error("minted payment listed as unreconciled")
	}

	buf.Reset()
	if err := writeUnreconciled(ctx, store.Payments(), 1, &buf); err != nil {
		t.Fatalf("writeUnreconciled() error = %v", err)
	}
	if got := strings.Count(strings.TrimSpace(buf.String()), "\n"); got != 1 {
		t.Errorf("limit 1 printed %d rows:\n%s", got, buf.String())
	}
}

func TestWriteUnreconciled_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	payments := mock.NewMockPaymentRepository(ctrl)
	cause := errors.New("connection reset")
	payments.EXPECT().ListUnreconciled(gomock.Any(), 100).Return(nil, cause)

	var buf bytes.Buffer
	if err := writeUnreconciled(context.Background(), payments, 100, &buf); !errors.Is(err, cause) {
		t.Errorf("writeUnreconciled() error = %v, want %v", err, cause)
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %q on error", buf.String())
	}
}

func TestPaymentsCommand_Registered(t *testing.T) {
	found, _, err := rootCmd.Find([]string{"payments", "unreconciled"})
	if err != nil || found != paymentsUnreconciledCmd {
		t.Fatalf("Find(payments unreconciled) = %v, %v", found, err)
	}
	if f := found.Flags().Lookup("limit"); f == nil || f.DefValue != "100" {
		t.Errorf("--limit flag = %+v", f)
	}
}
