package shop

// OrderStatus オーダーのステータス
type OrderStatus string

const (
	// OrderStatusPending 承認待ち
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusAccepted 承認済み（終端状態）
	OrderStatusAccepted OrderStatus = "accepted"
	// OrderStatusRejected 却下済み（終端状態、返金済み）
	OrderStatusRejected OrderStatus = "rejected"
)

// NewOrderStatus 文字列からOrderStatusを作成
func NewOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.Valid() {
		return "", ErrInvalidOrderStatus
	}
	return st, nil
}

// Valid 有効なステータスかどうかを返す
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusRejected:
		return true
	default:
		return false
	}
}

// String 文字列表現を返す
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal 終端状態かどうかを返す
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusAccepted || s == OrderStatusRejected
}
