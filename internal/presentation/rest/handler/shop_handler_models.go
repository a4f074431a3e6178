package handler

// ProductItem 商品の1件
type ProductItem struct {
	ID                       string `json:"id"`
	Name                     string `json:"name"`
	Price                    int64  `json:"price"`
	RequiresDiscordID        bool   `json:"requires_discord_id"`
	AllowsQuantity           bool   `json:"allows_quantity"`
	RequiresReview           bool   `json:"requires_review"`
	RequiresPromotionContent bool   `json:"requires_promotion_content"`
	InstantRewardAmount      int64  `json:"instant_reward_amount"`
	Featured                 bool   `json:"featured"`
}

// ProductsResponse 商品一覧レスポンス
type ProductsResponse struct {
	Success  bool          `json:"success"`
	Products []ProductItem `json:"products"`
}

// PurchaseRequest 購入リクエスト
type PurchaseRequest struct {
	ProductID        string `json:"product_id"`
	Quantity         int    `json:"quantity"`
	DiscordID        string `json:"discord_id"`
	PromotionContent string `json:"promotion_content"`
}

// PurchaseResponse 購入レスポンス
type PurchaseResponse struct {
	Success       bool   `json:"success"`
	UserID        string `json:"user_id"`
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	TotalPrice    int64  `json:"total_price"`
	InstantReward int64  `json:"instant_reward,omitempty"`
	Balance       int64  `json:"balance"`
	TransactionID string `json:"transaction_id"`
	OrderID       string `json:"order_id,omitempty"`
}

// OrderItem オーダーの1件
type OrderItem struct {
	OrderID          string  `json:"order_id"`
	UserID           string  `json:"user_id"`
	ProductID        string  `json:"product_id"`
	ProductName      string  `json:"product_name"`
	Price            int64   `json:"price"`
	Quantity         int     `json:"quantity"`
	DiscordID        *string `json:"discord_id,omitempty"`
	UserEmail        string  `json:"user_email"`
	PromotionContent *string `json:"promotion_content,omitempty"`
	Status           string  `json:"status"`
	DecisionNote     *string `json:"decision_note,omitempty"`
	ResolvedAt       *string `json:"resolved_at,omitempty"`
	ResolvedBy       *string `json:"resolved_by,omitempty"`
	CreatedAt        string  `json:"created_at"`
}

// NotificationsResponse 通知一覧レスポンス
type NotificationsResponse struct {
	Success bool        `json:"success"`
	UserID  string      `json:"user_id"`
	Orders  []OrderItem `json:"orders"`
}

// DismissResponse 通知破棄レスポンス
type DismissResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id"`
}

// OrdersResponse オーダー一覧レスポンス（管理者用）
type OrdersResponse struct {
	Success bool        `json:"success"`
	Orders  []OrderItem `json:"orders"`
}

// DecideOrderRequest オーダー審査リクエスト（管理者用）
type DecideOrderRequest struct {
	Action string `json:"action"`
	Note   string `json:"note"`
}

// DecideOrderResponse オーダー審査レスポンス（管理者用）
type DecideOrderResponse struct {
	Success        bool   `json:"success"`
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	RefundedAmount int64  `json:"refunded_amount,omitempty"`
}

// SetFeaturedProductRequest 注目商品設定リクエスト（管理者用）
type SetFeaturedProductRequest struct {
	ProductID string `json:"product_id"`
}

// SetFeaturedProductResponse 注目商品設定レスポンス（管理者用）
type SetFeaturedProductResponse struct {
	Success   bool   `json:"success"`
	ProductID string `json:"product_id"`
}
