package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	walletapp "coin-server/internal/application/wallet"
	"coin-server/internal/presentation/rest/middleware"
)

// WalletHandler ウォレット関連ハンドラー
type WalletHandler struct {
	walletService *walletapp.WalletApplicationService
}

// NewWalletHandler 新しいWalletHandlerを作成
func NewWalletHandler(walletService *walletapp.WalletApplicationService) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetWallet 自分のウォレットを取得
func (h *WalletHandler) GetWallet(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.walletService.GetWallet(c.Request().Context(), &walletapp.GetWalletRequest{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	var lastClaimAt *string
	if resp.LastClaimAt != nil {
		s := resp.LastClaimAt.UTC().Format(time.RFC3339)
		lastClaimAt = &s
	}

	return c.JSON(http.StatusOK, WalletResponse{
		Success:     true,
		UserID:      resp.UserID,
		Balance:     resp.Balance,
		LastClaimAt: lastClaimAt,
	})
}

// GetHistory 自分の取引履歴を新しい順に取得
func (h *WalletHandler) GetHistory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	resp, err := h.walletService.GetHistory(c.Request().Context(), &walletapp.GetHistoryRequest{
		UserID: userID,
		Limit:  limit,
	})
	if err != nil {
		return err
	}

	items := make([]TransactionItem, 0, len(resp.Transactions))
	for _, t := range resp.Transactions {
		items = append(items, TransactionItem{
			TransactionID: t.TransactionID,
			Type:          t.Type,
			Amount:        t.Amount,
			Reason:        t.Reason,
			BalanceAfter:  t.BalanceAfter,
			CreatedAt:     t.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, HistoryResponse{
		Success:      true,
		UserID:       resp.UserID,
		Transactions: items,
	})
}

// GetLeaderboard 残高リーダーボードを取得
func (h *WalletHandler) GetLeaderboard(c echo.Context) error {
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	resp, err := h.walletService.GetLeaderboard(c.Request().Context(), &walletapp.GetLeaderboardRequest{
		Limit: limit,
	})
	if err != nil {
		return err
	}

	items := make([]LeaderboardItem, 0, len(resp.Ranks))
	for _, r := range resp.Ranks {
		items = append(items, LeaderboardItem{
			Rank:     r.Rank,
			UserID:   r.UserID,
			Username: r.Username,
			Balance:  r.Balance,
		})
	}

	return c.JSON(http.StatusOK, LeaderboardResponse{
		Success: true,
		Ranks:   items,
	})
}

// AdminGrant コインを付与・没収する（管理者用）
func (h *WalletHandler) AdminGrant(c echo.Context) error {
	var reqBody AdminGrantRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if reqBody.Email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	resp, err := h.walletService.AdminGrant(c.Request().Context(), &walletapp.AdminGrantRequest{
		Email:          reqBody.Email,
		Amount:         reqBody.Amount,
		Reason:         reqBody.Reason,
		IdempotencyKey: reqBody.IdempotencyKey,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, AdminGrantResponse{
		Success:       true,
		UserID:        resp.UserID,
		TransactionID: resp.TransactionID,
		Balance:       resp.Balance,
	})
}

// currentUserID 認証ミドルウェアが設定したユーザーIDを取得
func currentUserID(c echo.Context) (string, error) {
	userID, ok := c.Get(middleware.ContextKeyUserID).(string)
	if !ok || userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "user_id not found in token")
	}
	return userID, nil
}

// queryInt 数値クエリパラメータを取得（未指定は0）
func queryInt(c echo.Context, name string) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be an integer")
	}
	return v, nil
}
