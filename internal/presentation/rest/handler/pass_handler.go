package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	passapp "coin-server/internal/application/pass"
)

// PassHandler パス関連ハンドラー
type PassHandler struct {
	passService *passapp.PassApplicationService
}

// NewPassHandler 新しいPassHandlerを作成
func NewPassHandler(passService *passapp.PassApplicationService) *PassHandler {
	return &PassHandler{
		passService: passService,
	}
}

// GetPass 自分のパス状態と報酬カタログを取得
func (h *PassHandler) GetPass(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.passService.GetPass(c.Request().Context(), &passapp.GetPassRequest{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	rewards := make([]RewardItem, 0, len(resp.Rewards))
	for _, r := range resp.Rewards {
		rewards = append(rewards, RewardItem{
			Level:          r.Level,
			RequiredXP:     r.RequiredXP,
			FreeCoins:      r.FreeCoins,
			PremiumCoins:   r.PremiumCoins,
			IsMilestone:    r.IsMilestone,
			Unlocked:       r.Unlocked,
			ClaimedFree:    r.ClaimedFree,
			ClaimedPremium: r.ClaimedPremium,
		})
	}

	return c.JSON(http.StatusOK, PassResponse{
		Success:         true,
		UserID:          resp.UserID,
		XP:              resp.XP,
		HasPremium:      resp.HasPremium,
		CompletedLevels: resp.CompletedLevels,
		CurrentLevel:    resp.CurrentLevel,
		LevelProgress:   resp.LevelProgress,
		Rewards:         rewards,
	})
}

// PurchasePremium プレミアムパスを購入する
func (h *PassHandler) PurchasePremium(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.passService.PurchasePremium(c.Request().Context(), &passapp.PurchasePremiumRequest{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, PurchasePremiumResponse{
		Success:       true,
		UserID:        resp.UserID,
		Price:         resp.Price,
		Balance:       resp.Balance,
		TransactionID: resp.TransactionID,
	})
}

// ClaimReward レベル報酬を受け取る
func (h *PassHandler) ClaimReward(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var reqBody ClaimRewardRequest
	if err := c.Bind(&reqBody); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	resp, err := h.passService.ClaimReward(c.Request().Context(), &passapp.ClaimRewardRequest{
		UserID: userID,
		Level:  reqBody.RewardLevel,
		Tier:   reqBody.Tier,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ClaimRewardResponse{
		Success:       true,
		UserID:        resp.UserID,
		Level:         resp.Level,
		Tier:          resp.Tier,
		Coins:         resp.Coins,
		Balance:       resp.Balance,
		TransactionID: resp.TransactionID,
	})
}

// ListTasks タスク一覧と完了状況を取得
func (h *PassHandler) ListTasks(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	resp, err := h.passService.ListTasks(c.Request().Context(), &passapp.ListTasksRequest{
		UserID: userID,
	})
	if err != nil {
		return err
	}

	tasks := make([]TaskItem, 0, len(resp.Tasks))
	for _, t := range resp.Tasks {
		var lastCompletedAt *string
		if t.LastCompletedAt != nil {
			s := t.LastCompletedAt.UTC().Format(time.RFC3339)
			lastCompletedAt = &s
		}
		tasks = append(tasks, TaskItem{
			ID:              t.ID,
			Name:            t.Name,
			Frequency:       t.Frequency,
			XP:              t.XP,
			CompletedCount:  t.CompletedCount,
			LastCompletedAt: lastCompletedAt,
			CompletableNow:  t.CompletableNow,
		})
	}

	return c.JSON(http.StatusOK, TasksResponse{
		Success: true,
		UserID:  resp.UserID,
		Tasks:   tasks,
	})
}

// CompleteTask タスクを完了してXPを獲得する
func (h *PassHandler) CompleteTask(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	taskID := c.Param("task_id")
	if taskID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task_id is required")
	}

	resp, err := h.passService.CompleteTask(c.Request().Context(), &passapp.CompleteTaskRequest{
		UserID: userID,
		TaskID: taskID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, CompleteTaskResponse{
		Success:         true,
		UserID:          resp.UserID,
		TaskID:          resp.TaskID,
		XPAwarded:       resp.XPAwarded,
		XP:              resp.XP,
		CompletedLevels: resp.CompletedLevels,
		CurrentLevel:    resp.CurrentLevel,
		LevelProgress:   resp.LevelProgress,
	})
}
