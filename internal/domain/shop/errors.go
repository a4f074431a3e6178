package shop

import "errors"

var (
	// ErrProductNotFound 商品が見つからないエラー
	ErrProductNotFound = errors.New("product not found")
	// ErrDiscordIDRequired Discord IDの指定が必要エラー
	ErrDiscordIDRequired = errors.New("discord id required")
	// ErrPromotionContentRequired 宣伝文が必要エラー
	ErrPromotionContentRequired = errors.New("promotion content required")
	// ErrPromotionContentLength 宣伝文の長さが範囲外エラー
	ErrPromotionContentLength = errors.New("promotion content must be 10-500 characters")
	// ErrInvalidOrderID オーダーIDが無効
	ErrInvalidOrderID = errors.New("invalid order id")
	// ErrInvalidUserID ユーザーIDが無効
	ErrInvalidUserID = errors.New("invalid user id")
	// ErrInvalidPrice 価格が無効
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInvalidQuantity 数量が無効
	ErrInvalidQuantity = errors.New("invalid quantity")
	// ErrInvalidOrderStatus ステータスが無効
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrInvalidDecisionNote 決裁メモが無効
	ErrInvalidDecisionNote = errors.New("invalid decision note")
	// ErrInvalidDecision 決裁アクションが無効
	ErrInvalidDecision = errors.New("invalid decision action")
	// ErrOrderNotFound オーダーが見つからないエラー
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderNotPending オーダーが承認待ちではないエラー（二重決裁・二重返金のガード）
	ErrOrderNotPending = errors.New("order not pending")
	// ErrNotificationNotFound 通知が見つからないエラー
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrInvalidNotificationMode 通知取得モードが無効
	ErrInvalidNotificationMode = errors.New("invalid notification mode")
	// ErrSettingNotFound 設定が見つからないエラー
	ErrSettingNotFound = errors.New("shop setting not found")
)
