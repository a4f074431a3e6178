package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	dailyclaimapp "coin-server/internal/application/dailyclaim"
)

// DailyClaimHandler デイリー受取ハンドラー
type DailyClaimHandler struct {
	claimService *dailyclaimapp.DailyClaimApplicationService
}

// NewDailyClaimHandler 新しいDailyClaimHandlerを作成
func NewDailyClaimHandler(claimService *dailyclaimapp.DailyClaimApplicationService) *DailyClaimHandler {
	return &DailyClaimHandler{
		claimService: claimService,
	}
}

// Claim デイリー報酬を受け取る
func (h *DailyClaimHandler) Claim(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.claimService.Claim(c.Request().Context(), &dailyclaimapp.ClaimRequest{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ClaimResponse{
		Success:       true,
		UserID:        resp.UserID,
		Amount:        resp.Amount,
		Balance:       resp.Balance,
		TransactionID: resp.TransactionID,
		ClaimedAt:     resp.ClaimedAt.UTC().Format(time.RFC3339),
		NextClaimInMs: resp.NextClaimIn.Milliseconds(),
	})
}
