package pass

import (
	"regexp"
	"sort"
)

// MaxXP 累計XPの上限
const MaxXP = 1_000_000_000

var userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)

// State パス状態エンティティ
// XPは単調増加し、受取済みセットは増えることしかない
type State struct {
	userID         string
	xp             int64
	hasPremium     bool
	claimedFree    map[int]struct{}
	claimedPremium map[int]struct{}
}

// NewState 新しいStateエンティティを作成
func NewState(userID string, xp int64, hasPremium bool, claimedFree, claimedPremium []int) (*State, error) {
	if !userIDRegex.MatchString(userID) {
		return nil, ErrInvalidUserID
	}
	if xp < 0 || xp > MaxXP {
		return nil, ErrXPOutOfRange
	}

	free, err := newClaimedSet(claimedFree)
	if err != nil {
		return nil, err
	}
	premium, err := newClaimedSet(claimedPremium)
	if err != nil {
		return nil, err
	}

	return &State{
		userID:         userID,
		xp:             xp,
		hasPremium:     hasPremium,
		claimedFree:    free,
		claimedPremium: premium,
	}, nil
}

// NewZeroState XPゼロの初期Stateエンティティを作成
func NewZeroState(userID string) (*State, error) {
	return NewState(userID, 0, false, nil, nil)
}

func newClaimedSet(levels []int) (map[int]struct{}, error) {
	set := make(map[int]struct{}, len(levels))
	for _, level := range levels {
		if level < 1 || level > MaxLevel {
			return nil, ErrRewardNotFound
		}
		set[level] = struct{}{}
	}
	return set, nil
}

// UserID ユーザーIDを返す
func (s *State) UserID() string {
	return s.userID
}

// XP 累計XPを返す
func (s *State) XP() int64 {
	return s.xp
}

// HasPremium プレミアムパスを所有しているかを返す
func (s *State) HasPremium() bool {
	return s.hasPremium
}

// ClaimedFree 受取済みの無料報酬レベルを昇順で返す
func (s *State) ClaimedFree() []int {
	return sortedLevels(s.claimedFree)
}

// ClaimedPremium 受取済みのプレミアム報酬レベルを昇順で返す
func (s *State) ClaimedPremium() []int {
	return sortedLevels(s.claimedPremium)
}

func sortedLevels(set map[int]struct{}) []int {
	levels := make([]int, 0, len(set))
	for level := range set {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	return levels
}

// HasClaimed 指定レベル・ティアの報酬が受取済みかを返す
func (s *State) HasClaimed(level int, tier Tier) bool {
	set := s.claimedFree
	if tier == TierPremium {
		set = s.claimedPremium
	}
	_, ok := set[level]
	return ok
}

// Progress 現在のXPから進行状況を導出する
func (s *State) Progress() Progress {
	return DeriveProgress(s.xp)
}

// AddXP XPを加算する（単調増加）
func (s *State) AddXP(amount int64) error {
	if amount < 0 {
		return ErrInvalidXPAmount
	}
	if s.xp > MaxXP-amount {
		return ErrXPOutOfRange
	}
	s.xp += amount
	return nil
}

// EnablePremium プレミアムパスを有効化する
func (s *State) EnablePremium() error {
	if s.hasPremium {
		return ErrAlreadyPremium
	}
	s.hasPremium = true
	return nil
}

// ClaimReward 指定レベル・ティアの報酬を受取済みにする
// 解放条件・重複受取・プレミアム所有を検証してからセットに追加する
func (s *State) ClaimReward(level int, tier Tier) (Reward, error) {
	reward, err := RewardForLevel(level)
	if err != nil {
		return Reward{}, err
	}
	if !tier.Valid() {
		return Reward{}, ErrInvalidTier
	}
	if s.xp < reward.RequiredXP {
		return Reward{}, ErrRewardLocked
	}
	if tier == TierPremium && !s.hasPremium {
		return Reward{}, ErrPremiumRequired
	}
	if s.HasClaimed(level, tier) {
		return Reward{}, ErrRewardAlreadyClaimed
	}

	if tier == TierPremium {
		s.claimedPremium[level] = struct{}{}
	} else {
		s.claimedFree[level] = struct{}{}
	}
	return reward, nil
}

// MustNewState テスト用ヘルパー: NewStateを呼び出し、エラーが発生した場合はpanicする
func MustNewState(userID string, xp int64, hasPremium bool, claimedFree, claimedPremium []int) *State {
	s, err := NewState(userID, xp, hasPremium, claimedFree, claimedPremium)
	if err != nil {
		panic(err)
	}
	return s
}
