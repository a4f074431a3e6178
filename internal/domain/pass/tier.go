package pass

// Tier 報酬トラックのティア
type Tier string

const (
	// TierFree 無料トラック
	TierFree Tier = "free"
	// TierPremium プレミアムトラック
	TierPremium Tier = "premium"
)

// NewTier 文字列からTierを作成
func NewTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.Valid() {
		return "", ErrInvalidTier
	}
	return t, nil
}

// Valid 有効なティアかどうかを返す
func (t Tier) Valid() bool {
	return t == TierFree || t == TierPremium
}

// String 文字列表現を返す
func (t Tier) String() string {
	return string(t)
}
