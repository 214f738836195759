package repositories

import (
	"database/sql"
	"errors"
	"testing"
)

func TestNextTokenID(t *testing.T) {
	max := func(v int64) *int64 { return &v }

	tests := []struct {
		name string
		max  *int64
		want int64
	}{
		{name: "empty collection starts at zero", max: nil, want: 0},
		{name: "first token issued", max: max(0), want: 1},
		{name: "follows the highest id", max: max(41), want: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextTokenID(tt.max); got != tt.want {
				t.Errorf("NextTokenID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBaseRepository_HandleErrorWithID(t *testing.T) {
	br := &BaseRepository{}

	if err := br.HandleErrorWithID("get", "claim_record", "0xabc", nil); err != nil {
		t.Errorf("HandleErrorWithID(nil) = %v, want nil", err)
	}

	err := br.HandleErrorWithID("get", "claim_record", "0xabc", sql.ErrNoRows)
	if !IsNotFound(err) {
		t.Errorf("HandleErrorWithID(ErrNoRows) = %v, want NotFoundError", err)
	}

	cause := errors.New("connection reset")
	err = br.HandleErrorWithID("reserve", "claim_record", "0xabc", cause)
	var repoErr *RepositoryError
	if !errors.As(err, &repoErr) || !errors.Is(err, cause) {
		t.Errorf("HandleErrorWithID() = %v, want RepositoryError wrapping cause", err)
	}
	if IsNotFound(err) || IsConflict(err) {
		t.Errorf("HandleErrorWithID() = %v classified as not found or conflict", err)
	}
}
