package transaction

// Type 取引タイプ
type Type string

const (
	// TypeEarn 獲得（ショップ報酬・タスク報酬・管理者付与など）
	TypeEarn Type = "earn"
	// TypeSpend 消費（購入・プレミアムパス購入など）
	TypeSpend Type = "spend"
	// TypeClaim デイリー報酬の受け取り
	TypeClaim Type = "claim"
)

// NewType 文字列からTypeを作成
func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.Valid() {
		return "", ErrInvalidTransactionType
	}
	return t, nil
}

// Valid 有効な取引タイプかどうかを返す
func (t Type) Valid() bool {
	switch t {
	case TypeEarn, TypeSpend, TypeClaim:
		return true
	default:
		return false
	}
}

// String 文字列表現を返す
func (t Type) String() string {
	return string(t)
}

// IsCredit 残高を増やすタイプかどうかを返す
func (t Type) IsCredit() bool {
	return t == TypeEarn || t == TypeClaim
}
