package chain

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    common.Address
		wantErr bool
	}{
		{
			name:  "checksummed",
			input: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			want:  common.HexToAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"),
		},
		{
			name:  "all lowercase",
			input: "0xfb6916095ca1df60bb79ce92ce3ea74c37c5d359",
			want:  common.HexToAddress("0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"),
		},
		{
			name:  "all uppercase",
			input: "0xDBF03B407C01E7CD3CBEA99509D93F8DDDC8C6FB",
			want:  common.HexToAddress("0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"),
		},
		{
			name:  "surrounding whitespace",
			input: "  0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb ",
			want:  common.HexToAddress("0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"),
		},
		{
			name:    "bad checksum",
			input:   "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD",
			wantErr: true,
		},
		{
			name:    "too short",
			input:   "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeA",
			wantErr: true,
		},
		{
			name:    "not hex",
			input:   "0xZZZeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAddress(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAddress() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidAddress) {
					t.Errorf("ParseAddress() error = %v, want ErrInvalidAddress", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseAddress() = %v, want %v", got.Hex(), tt.want.Hex())
			}
		})
	}
}

func TestParseTxHash(t *testing.T) {
	valid := "0x88df016429689c079f3b2f6ad39fa052532c56795b733da78a91ebe6a713944b"
	got, err := ParseTxHash(valid)
	if err != nil {
		t.Fatalf("ParseTxHash() error = %v", err)
	}
	if got != common.HexToHash(valid) {
		t.Errorf("ParseTxHash() = %v", got.Hex())
	}

	for _, input := range []string{"", "0x1234", valid[2:], valid + "00"} {
		if _, err := ParseTxHash(input); !errors.Is(err, ErrInvalidTxHash) {
			t.Errorf("ParseTxHash(%q) error = %v, want ErrInvalidTxHash", input, err)
		}
	}
}
