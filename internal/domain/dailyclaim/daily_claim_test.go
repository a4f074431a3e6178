package dailyclaim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDailyClaim(t *testing.T) {
	claimedAt := time.Date(2025, 6, 1, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name         string
		userID       string
		amount       int64
		wantClaimKey string
		wantError    error
	}{
		{
			name:         "正常系: 受取記録を作成",
			userID:       "user123",
			amount:       100,
			wantClaimKey: "2025-06-01",
		},
		{
			name:      "異常系: 空のユーザーID",
			userID:    "",
			amount:    100,
			wantError: ErrInvalidUserID,
		},
		{
			name:      "異常系: ゼロ金額",
			userID:    "user123",
			amount:    0,
			wantError: ErrInvalidAmount,
		},
		{
			name:      "異常系: マイナス金額",
			userID:    "user123",
			amount:    -100,
			wantError: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewDailyClaim(tt.userID, tt.amount, claimedAt)

			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.userID, got.UserID())
			assert.Equal(t, tt.wantClaimKey, got.ClaimKey())
			assert.Equal(t, tt.amount, got.Amount())
			assert.Equal(t, claimedAt, got.ClaimedAt())
		})
	}
}

func TestAlreadyClaimedError_Unwrap(t *testing.T) {
	err := &AlreadyClaimedError{NextClaimIn: 3 * time.Hour, Balance: 500}

	assert.ErrorIs(t, err, ErrAlreadyClaimed)
	assert.Contains(t, err.Error(), "3h")
}
