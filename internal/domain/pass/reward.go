package pass

const (
	// milestoneInterval 大型報酬の間隔（5レベルごと）
	milestoneInterval = 5

	freeCoinsBase         = 50
	freeCoinsMilestone    = 200
	premiumCoinsBase      = 100
	premiumCoinsMilestone = 500
)

// Reward レベル報酬の定義
// 50件のレコードを手で管理するのではなく、レベル番号から決定的に生成する
type Reward struct {
	Level        int
	RequiredXP   int64
	FreeCoins    int64
	PremiumCoins int64
}

// IsMilestone 5レベルごとの大型報酬かどうかを返す
func (r Reward) IsMilestone() bool {
	return r.Level%milestoneInterval == 0
}

// CoinsFor 指定ティアのコイン数を返す
func (r Reward) CoinsFor(tier Tier) int64 {
	if tier == TierPremium {
		return r.PremiumCoins
	}
	return r.FreeCoins
}

// RewardForLevel 指定レベルの報酬定義を返す
func RewardForLevel(level int) (Reward, error) {
	if level < 1 || level > MaxLevel {
		return Reward{}, ErrRewardNotFound
	}

	r := Reward{
		Level:        level,
		RequiredXP:   RequiredXP(level),
		FreeCoins:    freeCoinsBase,
		PremiumCoins: premiumCoinsBase,
	}
	if r.IsMilestone() {
		r.FreeCoins = freeCoinsMilestone
		r.PremiumCoins = premiumCoinsMilestone
	}
	return r, nil
}

// Rewards 全レベルの報酬定義をレベル順に返す
func Rewards() []Reward {
	rewards := make([]Reward, 0, MaxLevel)
	for level := 1; level <= MaxLevel; level++ {
		r, _ := RewardForLevel(level)
		rewards = append(rewards, r)
	}
	return rewards
}
