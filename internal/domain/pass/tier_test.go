package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Tier
		wantErr bool
	}{
		{
			name:    "正常系: free",
			input:   "free",
			want:    TierFree,
			wantErr: false,
		},
		{
			name:    "正常系: premium",
			input:   "premium",
			want:    TierPremium,
			wantErr: false,
		},
		{
			name:    "異常系: 無効な値",
			input:   "gold",
			want:    "",
			wantErr: true,
		},
		{
			name:    "異常系: 空文字列",
			input:   "",
			want:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTier(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTier)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTier_String(t *testing.T) {
	assert.Equal(t, "free", TierFree.String())
	assert.Equal(t, "premium", TierPremium.String())
}
