package shop

import "time"

// ListProductsRequest 商品一覧取得リクエスト
type ListProductsRequest struct {
	UserID string
}

// ProductView 商品の表示用ビュー
type ProductView struct {
	ID                       string
	Name                     string
	Price                    int64
	RequiresDiscordID        bool
	AllowsQuantity           bool
	RequiresReview           bool
	RequiresPromotionContent bool
	InstantRewardAmount      int64
	Featured                 bool
}

// ListProductsResponse 商品一覧取得レスポンス
type ListProductsResponse struct {
	Products []ProductView
}

// PurchaseRequest 購入リクエスト
type PurchaseRequest struct {
	UserID           string
	UserEmail        string
	ProductID        string
	Quantity         int
	DiscordID        string
	PromotionContent string
}

// PurchaseResponse 購入レスポンス
type PurchaseResponse struct {
	UserID        string
	ProductID     string
	Quantity      int
	TotalPrice    int64
	InstantReward int64
	Balance       int64
	TransactionID string
	OrderID       string // 承認待ちオーダーが作られた場合のみ
}

// OrderView オーダーの表示用ビュー
type OrderView struct {
	OrderID          string
	UserID           string
	ProductID        string
	ProductName      string
	Price            int64
	Quantity         int
	DiscordID        *string
	UserEmail        string
	PromotionContent *string
	Status           string
	DecisionNote     *string
	ResolvedAt       *time.Time
	ResolvedBy       *string
	CreatedAt        time.Time
}

// GetNotificationsRequest 通知取得リクエスト
// Modeは "new"（未通知分を既読化しつつ取得）または "all"（副作用なし）
type GetNotificationsRequest struct {
	UserID string
	Mode   string
}

// GetNotificationsResponse 通知取得レスポンス
type GetNotificationsResponse struct {
	UserID string
	Orders []OrderView
}

// DismissNotificationRequest 通知破棄リクエスト
type DismissNotificationRequest struct {
	UserID  string
	OrderID string
}

// ListOrdersRequest オーダー一覧取得リクエスト（管理者用）
type ListOrdersRequest struct {
	Status string
	Limit  int
}

// ListOrdersResponse オーダー一覧取得レスポンス
type ListOrdersResponse struct {
	Orders []OrderView
}

// DecideOrderRequest オーダー審査リクエスト（管理者用）
type DecideOrderRequest struct {
	OrderID    string
	Action     string // "accept" or "reject"
	Note       string
	ResolvedBy string
}

// DecideOrderResponse オーダー審査レスポンス
type DecideOrderResponse struct {
	OrderID        string
	Status         string
	RefundedAmount int64 // 拒否時のみ非ゼロ
}

// SetFeaturedProductRequest 注目商品設定リクエスト（管理者用）
type SetFeaturedProductRequest struct {
	ProductID string
}
