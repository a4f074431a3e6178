package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"coin-server/internal/domain/dailyclaim"
	"coin-server/internal/domain/pass"
	"coin-server/internal/domain/shop"
	"coin-server/internal/domain/transaction"
	"coin-server/internal/domain/user"
	"coin-server/internal/domain/wallet"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

// ErrorResponse エラーレスポンス
// 残高に関わる競合（残高不足・受取済み）の場合はクライアントが再同期
// できるようウォレットのスナップショットを含める
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	Balance       *int64 `json:"balance,omitempty"`
	Required      *int64 `json:"required,omitempty"`
	NextClaimInMs *int64 `json:"next_claim_in_ms,omitempty"`
}

// ErrorHandlerMiddleware エラーハンドリングミドルウェア
func ErrorHandlerMiddleware(logger *otelinfra.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			return handleError(c, err, logger)
		}
	}
}

// domainErrorMapping センチネルエラーとHTTPステータスの対応
type domainErrorMapping struct {
	sentinel error
	status   int
	code     string
}

var domainErrorMappings = []domainErrorMapping{
	// 400: 入力不正
	{wallet.ErrInvalidUserID, http.StatusBadRequest, "invalid_user_id"},
	{wallet.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{wallet.ErrAmountTooLarge, http.StatusBadRequest, "amount_too_large"},
	{wallet.ErrBalanceOutOfRange, http.StatusBadRequest, "balance_out_of_range"},
	{dailyclaim.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{pass.ErrInvalidTier, http.StatusBadRequest, "invalid_tier"},
	{pass.ErrInvalidXPAmount, http.StatusBadRequest, "invalid_xp_amount"},
	{shop.ErrDiscordIDRequired, http.StatusBadRequest, "discord_id_required"},
	{shop.ErrPromotionContentRequired, http.StatusBadRequest, "promotion_content_required"},
	{shop.ErrPromotionContentLength, http.StatusBadRequest, "promotion_content_length"},
	{shop.ErrInvalidQuantity, http.StatusBadRequest, "invalid_quantity"},
	{shop.ErrInvalidOrderStatus, http.StatusBadRequest, "invalid_order_status"},
	{shop.ErrInvalidDecision, http.StatusBadRequest, "invalid_decision"},
	{shop.ErrInvalidDecisionNote, http.StatusBadRequest, "invalid_decision_note"},
	{shop.ErrInvalidNotificationMode, http.StatusBadRequest, "invalid_notification_mode"},

	// 404: 対象が存在しない
	{wallet.ErrWalletNotFound, http.StatusNotFound, "wallet_not_found"},
	{user.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{transaction.ErrTransactionNotFound, http.StatusNotFound, "transaction_not_found"},
	{pass.ErrStateNotFound, http.StatusNotFound, "pass_state_not_found"},
	{pass.ErrRewardNotFound, http.StatusNotFound, "reward_not_found"},
	{pass.ErrUnknownTask, http.StatusNotFound, "task_not_found"},
	{shop.ErrProductNotFound, http.StatusNotFound, "product_not_found"},
	{shop.ErrOrderNotFound, http.StatusNotFound, "order_not_found"},
	{shop.ErrNotificationNotFound, http.StatusNotFound, "notification_not_found"},

	// 409: 現在の状態と矛盾する操作
	{wallet.ErrInsufficientBalance, http.StatusConflict, "insufficient_balance"},
	{dailyclaim.ErrAlreadyClaimed, http.StatusConflict, "already_claimed"},
	{transaction.ErrDuplicateTransaction, http.StatusConflict, "duplicate_transaction"},
	{pass.ErrRewardLocked, http.StatusConflict, "reward_locked"},
	{pass.ErrRewardAlreadyClaimed, http.StatusConflict, "reward_already_claimed"},
	{pass.ErrPremiumRequired, http.StatusConflict, "premium_required"},
	{pass.ErrAlreadyPremium, http.StatusConflict, "already_premium"},
	{pass.ErrTaskAlreadyCompleted, http.StatusConflict, "task_already_completed"},
	{pass.ErrTaskPreconditionNotMet, http.StatusConflict, "task_precondition_not_met"},
	{shop.ErrOrderNotPending, http.StatusConflict, "order_not_pending"},
}

// handleError エラーを処理して適切なHTTPレスポンスを返す
func handleError(c echo.Context, err error, logger *otelinfra.Logger) error {
	ctx := c.Request().Context()

	// 残高スナップショット付きの競合エラー
	var insufficientErr *wallet.InsufficientFundsError
	if errors.As(err, &insufficientErr) {
		logger.Warn(ctx, "Insufficient balance", map[string]interface{}{
			"error": err.Error(),
		})
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:    "insufficient_balance",
			Message:  err.Error(),
			Balance:  &insufficientErr.Balance,
			Required: &insufficientErr.Required,
		})
	}

	var alreadyClaimedErr *dailyclaim.AlreadyClaimedError
	if errors.As(err, &alreadyClaimedErr) {
		logger.Warn(ctx, "Daily reward already claimed", map[string]interface{}{
			"error": err.Error(),
		})
		nextClaimInMs := alreadyClaimedErr.NextClaimIn.Milliseconds()
		return c.JSON(http.StatusConflict, ErrorResponse{
			Error:         "already_claimed",
			Message:       err.Error(),
			Balance:       &alreadyClaimedErr.Balance,
			NextClaimInMs: &nextClaimInMs,
		})
	}

	// ドメインのセンチネルエラー
	for _, m := range domainErrorMappings {
		if errors.Is(err, m.sentinel) {
			logger.Warn(ctx, "Domain error", map[string]interface{}{
				"error": err.Error(),
				"code":  m.code,
			})
			return c.JSON(m.status, ErrorResponse{
				Error:   m.code,
				Message: err.Error(),
			})
		}
	}

	// EchoのHTTPエラー
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		logger.Warn(ctx, "HTTP error", map[string]interface{}{
			"status_code": httpErr.Code,
			"message":     httpErr.Message,
		})
		message := ""
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(httpErr.Code)
		}
		return c.JSON(httpErr.Code, ErrorResponse{
			Error:   http.StatusText(httpErr.Code),
			Message: message,
		})
	}

	// 予期しないエラー
	logger.Error(ctx, "Internal server error", err, map[string]interface{}{
		"path": c.Request().URL.Path,
	})
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_server_error",
		Message: "An unexpected error occurred",
	})
}
