package shop

import (
	"regexp"
	"time"
)

const maxDecisionNoteLength = 500

var (
	idRegex     = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)
	userIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_\-\.\@]{1,255}$`)
)

// Order 承認待ち購入オーダーエンティティ
// ライフサイクルは明示的な状態機械として表現する:
// pending → accepted|rejected（不可逆）→ 通知済み → 既読
// 却下は同一トランザクション内での返金とセットで行われる
type Order struct {
	orderID          string
	userID           string
	productID        string
	productName      string
	price            int64 // 購入時に引き落とされた合計額
	quantity         int
	discordID        *string
	userEmail        string
	promotionContent *string
	status           OrderStatus
	decisionNote     *string
	resolvedAt       *time.Time
	resolvedBy       *string
	notifiedAt       *time.Time
	dismissedAt      *time.Time
	createdAt        time.Time
}

// NewOrder 新しい承認待ちOrderエンティティを作成
func NewOrder(
	orderID string,
	userID string,
	product Product,
	price int64,
	quantity int,
	discordID *string,
	userEmail string,
	promotionContent *string,
	createdAt time.Time,
) (*Order, error) {
	if !idRegex.MatchString(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !userIDRegex.MatchString(userID) {
		return nil, ErrInvalidUserID
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}
	return &Order{
		orderID:          orderID,
		userID:           userID,
		productID:        product.ID,
		productName:      product.Name,
		price:            price,
		quantity:         quantity,
		discordID:        discordID,
		userEmail:        userEmail,
		promotionContent: promotionContent,
		status:           OrderStatusPending,
		createdAt:        createdAt,
	}, nil
}

// ReconstructOrder 永続化された値からOrderエンティティを復元する
func ReconstructOrder(
	orderID string,
	userID string,
	productID string,
	productName string,
	price int64,
	quantity int,
	discordID *string,
	userEmail string,
	promotionContent *string,
	status OrderStatus,
	decisionNote *string,
	resolvedAt *time.Time,
	resolvedBy *string,
	notifiedAt *time.Time,
	dismissedAt *time.Time,
	createdAt time.Time,
) (*Order, error) {
	if !status.Valid() {
		return nil, ErrInvalidOrderStatus
	}
	return &Order{
		orderID:          orderID,
		userID:           userID,
		productID:        productID,
		productName:      productName,
		price:            price,
		quantity:         quantity,
		discordID:        discordID,
		userEmail:        userEmail,
		promotionContent: promotionContent,
		status:           status,
		decisionNote:     decisionNote,
		resolvedAt:       resolvedAt,
		resolvedBy:       resolvedBy,
		notifiedAt:       notifiedAt,
		dismissedAt:      dismissedAt,
		createdAt:        createdAt,
	}, nil
}

// OrderID オーダーIDを返す
func (o *Order) OrderID() string {
	return o.orderID
}

// UserID ユーザーIDを返す
func (o *Order) UserID() string {
	return o.userID
}

// ProductID 商品IDを返す
func (o *Order) ProductID() string {
	return o.productID
}

// ProductName 商品名を返す
func (o *Order) ProductName() string {
	return o.productName
}

// Price 引き落とされた合計額を返す
func (o *Order) Price() int64 {
	return o.price
}

// Quantity 数量を返す
func (o *Order) Quantity() int {
	return o.quantity
}

// DiscordID Discord IDを返す
func (o *Order) DiscordID() *string {
	return o.discordID
}

// UserEmail ユーザーのメールアドレスを返す
func (o *Order) UserEmail() string {
	return o.userEmail
}

// PromotionContent 宣伝文を返す
func (o *Order) PromotionContent() *string {
	return o.promotionContent
}

// Status ステータスを返す
func (o *Order) Status() OrderStatus {
	return o.status
}

// DecisionNote 決裁メモを返す
func (o *Order) DecisionNote() *string {
	return o.decisionNote
}

// ResolvedAt 決裁日時を返す
func (o *Order) ResolvedAt() *time.Time {
	return o.resolvedAt
}

// ResolvedBy 決裁者を返す
func (o *Order) ResolvedBy() *string {
	return o.resolvedBy
}

// NotifiedAt 通知日時を返す
func (o *Order) NotifiedAt() *time.Time {
	return o.notifiedAt
}

// DismissedAt 既読日時を返す
func (o *Order) DismissedAt() *time.Time {
	return o.dismissedAt
}

// CreatedAt 作成日時を返す
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// IsPending 承認待ちかどうかを返す
func (o *Order) IsPending() bool {
	return o.status == OrderStatusPending
}

// IsUnread 未通知の終端オーダーかどうかを返す
func (o *Order) IsUnread() bool {
	return o.status.IsTerminal() && o.notifiedAt == nil
}

// Accept オーダーを承認する（終端状態、金銭的な影響なし）
func (o *Order) Accept(resolvedBy, note string, at time.Time) error {
	return o.resolve(OrderStatusAccepted, resolvedBy, note, at)
}

// Reject オーダーを却下する（終端状態）
// 呼び出し側は同一トランザクション内で合計額を返金しなければならない
func (o *Order) Reject(resolvedBy, note string, at time.Time) error {
	return o.resolve(OrderStatusRejected, resolvedBy, note, at)
}

func (o *Order) resolve(status OrderStatus, resolvedBy, note string, at time.Time) error {
	if o.status != OrderStatusPending {
		return ErrOrderNotPending
	}
	if len([]rune(note)) > maxDecisionNoteLength {
		return ErrInvalidDecisionNote
	}
	t := at
	o.status = status
	o.resolvedAt = &t
	o.resolvedBy = &resolvedBy
	if note != "" {
		o.decisionNote = &note
	}
	return nil
}

// MarkNotified 通知済みにする（行ごとに最大一度だけ配信される）
func (o *Order) MarkNotified(at time.Time) error {
	if !o.status.IsTerminal() {
		return ErrOrderNotPending
	}
	if o.notifiedAt != nil {
		return nil
	}
	t := at
	o.notifiedAt = &t
	return nil
}

// Dismiss 通知を既読にする
// 未通知のまま既読になる状態を作らないため、通知日時が未設定なら同時に設定する
func (o *Order) Dismiss(at time.Time) error {
	if !o.status.IsTerminal() || o.dismissedAt != nil {
		return ErrNotificationNotFound
	}
	t := at
	if o.notifiedAt == nil {
		o.notifiedAt = &t
	}
	o.dismissedAt = &t
	return nil
}
