package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	shopapp "coin-server/internal/application/shop"
	"coin-server/internal/presentation/rest/middleware"
)

// ShopHandler ショップ関連ハンドラー
type ShopHandler struct {
	shopService *shopapp.ShopApplicationService
}

// NewShopHandler 新しいShopHandlerを作成
func NewShopHandler(shopService *shopapp.ShopApplicationService) *ShopHandler {
	return &ShopHandler{
		shopService: shopService,
	}
}

// ListProducts 商品一覧を取得（閲覧は本日分のショップ訪問として記録される）
func (h *ShopHandler) ListProducts(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.shopService.ListProducts(c.Request().Context(), &shopapp.ListProductsRequest{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	products := make([]ProductItem, 0, len(resp.Products))
	for _, p := range resp.Products {
		products = append(products, ProductItem{
			ID:                       p.ID,
			Name:                     p.Name,
			Price:                    p.Price,
			RequiresDiscordID:        p.RequiresDiscordID,
			AllowsQuantity:           p.AllowsQuantity,
			RequiresReview:           p.RequiresReview,
			RequiresPromotionContent: p.RequiresPromotionContent,
			InstantRewardAmount:      p.InstantRewardAmount,
			Featured:                 p.Featured,
		})
	}

	return c.JSON(http.StatusOK, ProductsResponse{
		Success:  true,
		Products: products,
	})
}

// Purchase 商品を購入する
func (h *ShopHandler) Purchase(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	userEmail, _ := c.Get(middleware.ContextKeyEmail).(string)

	var reqBody PurchaseRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if reqBody.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	resp, err := h.shopService.Purchase(c.Request().Context(), &shopapp.PurchaseRequest{
		UserID:           userID,
		UserEmail:        userEmail,
		ProductID:        reqBody.ProductID,
		Quantity:         reqBody.Quantity,
		DiscordID:        reqBody.DiscordID,
		PromotionContent: reqBody.PromotionContent,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, PurchaseResponse{
		Success:       true,
		UserID:        resp.UserID,
		ProductID:     resp.ProductID,
		Quantity:      resp.Quantity,
		TotalPrice:    resp.TotalPrice,
		InstantReward: resp.InstantReward,
		Balance:       resp.Balance,
		TransactionID: resp.TransactionID,
		OrderID:       resp.OrderID,
	})
}

// GetNotifications 審査結果の通知を取得
func (h *ShopHandler) GetNotifications(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.shopService.GetNotifications(c.Request().Context(), &shopapp.GetNotificationsRequest{
		UserID: userID,
		Mode:   c.QueryParam("mode"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NotificationsResponse{
		Success: true,
		UserID:  resp.UserID,
		Orders:  orderItems(resp.Orders),
	})
}

// DismissNotification 通知を破棄する
func (h *ShopHandler) DismissNotification(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orderID := c.Param("id")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "order id is required")
	}

	if err := h.shopService.DismissNotification(c.Request().Context(), &shopapp.DismissNotificationRequest{
		UserID:  userID,
		OrderID: orderID,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DismissResponse{
		Success: true,
		OrderID: orderID,
	})
}

// orderItems アプリケーション層のオーダービューをレスポンスモデルに変換
func orderItems(orders []shopapp.OrderView) []OrderItem {
	items := make([]OrderItem, 0, len(orders))
	for _, o := range orders {
		var resolvedAt *string
		if o.ResolvedAt != nil {
			s := o.ResolvedAt.UTC().Format(time.RFC3339)
			resolvedAt = &s
		}
		items = append(items, OrderItem{
			OrderID:          o.OrderID,
			UserID:           o.UserID,
			ProductID:        o.ProductID,
			ProductName:      o.ProductName,
			Price:            o.Price,
			Quantity:         o.Quantity,
			DiscordID:        o.DiscordID,
			UserEmail:        o.UserEmail,
			PromotionContent: o.PromotionContent,
			Status:           o.Status,
			DecisionNote:     o.DecisionNote,
			ResolvedAt:       resolvedAt,
			ResolvedBy:       o.ResolvedBy,
			CreatedAt:        o.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return items
}
