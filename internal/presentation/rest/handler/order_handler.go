package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	shopapp "coin-server/internal/application/shop"
	"coin-server/internal/presentation/rest/middleware"
)

// OrderHandler オーダー審査関連ハンドラー（管理者用）
type OrderHandler struct {
	shopService *shopapp.ShopApplicationService
}

// NewOrderHandler 新しいOrderHandlerを作成
func NewOrderHandler(shopService *shopapp.ShopApplicationService) *OrderHandler {
	return &OrderHandler{
		shopService: shopService,
	}
}

// ListOrders オーダー一覧を取得
func (h *OrderHandler) ListOrders(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	resp, err := h.shopService.ListOrders(c.Request().Context(), &shopapp.ListOrdersRequest{
		Status: c.QueryParam("status"),
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, OrdersResponse{
		Success: true,
		Orders:  orderItems(resp.Orders),
	})
}

// DecideOrder オーダーを承認または拒否する
func (h *OrderHandler) DecideOrder(c echo.Context) error {
	orderID := c.Param("id")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "order id is required")
	}

	var reqBody DecideOrderRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resolvedBy, _ := c.Get(middleware.ContextKeyUserID).(string)

	resp, err := h.shopService.DecideOrder(c.Request().Context(), &shopapp.DecideOrderRequest{
		OrderID:    orderID,
		Action:     reqBody.Action,
		Note:       reqBody.Note,
		ResolvedBy: resolvedBy,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DecideOrderResponse{
		Success:        true,
		OrderID:        resp.OrderID,
		Status:         resp.Status,
		RefundedAmount: resp.RefundedAmount,
	})
}

// SetFeaturedProduct 注目商品を設定する
func (h *OrderHandler) SetFeaturedProduct(c echo.Context) error {
	var reqBody SetFeaturedProductRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if reqBody.ProductID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_id is required")
	}

	if err := h.shopService.SetFeaturedProduct(c.Request().Context(), &shopapp.SetFeaturedProductRequest{
		ProductID: reqBody.ProductID,
	}); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, SetFeaturedProductResponse{
		Success:   true,
		ProductID: reqBody.ProductID,
	})
}
