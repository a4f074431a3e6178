package pass

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/dailyclaim"
	"coin-server/internal/domain/pass"
	"coin-server/internal/domain/service"
	"coin-server/internal/domain/shop"
	"coin-server/internal/domain/transaction"
	"coin-server/internal/domain/user"
	"coin-server/internal/domain/wallet"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

const (
	premiumPurchaseReason = "premium pass purchase"
	rewardClaimReason     = "pass level reward"
)

// PassApplicationService パスアプリケーションサービス
type PassApplicationService struct {
	stateRepo    pass.StateRepository
	taskLogRepo  pass.TaskLogRepository
	walletRepo   wallet.Repository
	claimRepo    dailyclaim.Repository
	visitRepo    shop.VisitRepository
	userRepo     user.Repository
	txManager    transaction.TransactionManager
	ledger       *service.LedgerService
	premiumPrice int64
	logger       *otelinfra.Logger
	metrics      *otelinfra.Metrics
	tracer       trace.Tracer
	now          func() time.Time
}

// NewPassApplicationService 新しいPassApplicationServiceを作成
func NewPassApplicationService(
	stateRepo pass.StateRepository,
	taskLogRepo pass.TaskLogRepository,
	walletRepo wallet.Repository,
	claimRepo dailyclaim.Repository,
	visitRepo shop.VisitRepository,
	userRepo user.Repository,
	txManager transaction.TransactionManager,
	ledger *service.LedgerService,
	premiumPrice int64,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *PassApplicationService {
	return &PassApplicationService{
		stateRepo:    stateRepo,
		taskLogRepo:  taskLogRepo,
		walletRepo:   walletRepo,
		claimRepo:    claimRepo,
		visitRepo:    visitRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		ledger:       ledger,
		premiumPrice: premiumPrice,
		logger:       logger,
		metrics:      metrics,
		tracer:       otel.Tracer("pass-service"),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// GetPass パス状態と報酬カタログを取得
// 状態が存在しない場合は初期状態として扱う（行は作成しない）
func (s *PassApplicationService) GetPass(ctx context.Context, req *GetPassRequest) (*GetPassResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PassApplicationService.GetPass")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
	)

	state, err := s.stateRepo.Find(ctx, req.UserID)
	if err == pass.ErrStateNotFound {
		state, err = pass.NewZeroState(req.UserID)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to find pass state", err, map[string]interface{}{
			"user_id": req.UserID,
		})
		return nil, fmt.Errorf("failed to find pass state: %w", err)
	}

	progress := state.Progress()
	rewards := make([]RewardView, 0, pass.MaxLevel)
	for _, r := range pass.Rewards() {
		rewards = append(rewards, RewardView{
			Level:          r.Level,
			RequiredXP:     r.RequiredXP,
			FreeCoins:      r.FreeCoins,
			PremiumCoins:   r.PremiumCoins,
			IsMilestone:    r.IsMilestone(),
			Unlocked:       state.XP() >= r.RequiredXP,
			ClaimedFree:    state.HasClaimed(r.Level, pass.TierFree),
			ClaimedPremium: state.HasClaimed(r.Level, pass.TierPremium),
		})
	}

	return &GetPassResponse{
		UserID:          state.UserID(),
		XP:              state.XP(),
		HasPremium:      state.HasPremium(),
		CompletedLevels: progress.CompletedLevels,
		CurrentLevel:    progress.CurrentLevel,
		LevelProgress:   progress.LevelProgress,
		Rewards:         rewards,
	}, nil
}

// PurchasePremium プレミアムパスを購入
// 残高の減算とフラグの更新は同一トランザクションで行う。既にプレミアムの
// 場合は全体がロールバックされ、課金は発生しない
func (s *PassApplicationService) PurchasePremium(ctx context.Context, req *PurchasePremiumRequest) (*PurchasePremiumResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PassApplicationService.PurchasePremium")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.Int64("price", s.premiumPrice),
	)

	s.logger.Info(ctx, "Processing premium pass purchase", map[string]interface{}{
		"user_id": req.UserID,
		"price":   s.premiumPrice,
	})

	var result *PurchasePremiumResponse
	err := s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		// ロック順序: 常にウォレット行→パス状態行の順で取得する
		w, txn, err := s.ledger.Debit(ctx, tx, req.UserID, s.premiumPrice, premiumPurchaseReason)
		if err != nil {
			return err
		}

		state, err := s.stateRepo.FindForUpdate(ctx, tx, req.UserID)
		if err != nil {
			return fmt.Errorf("failed to lock pass state: %w", err)
		}
		if err := state.EnablePremium(); err != nil {
			return err
		}
		if err := s.stateRepo.Save(ctx, tx, state); err != nil {
			return fmt.Errorf("failed to save pass state: %w", err)
		}

		result = &PurchasePremiumResponse{
			UserID:        req.UserID,
			Price:         s.premiumPrice,
			Balance:       w.Balance(),
			TransactionID: txn.TransactionID(),
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to purchase premium pass", err, map[string]interface{}{
			"user_id": req.UserID,
		})
		return nil, err
	}

	s.metrics.RecordTransaction(ctx, transaction.TypeSpend.String(), premiumPurchaseReason)
	s.metrics.RecordWalletBalance(ctx, result.UserID, result.Balance)

	s.logger.Info(ctx, "Premium pass purchase completed", map[string]interface{}{
		"user_id":        result.UserID,
		"transaction_id": result.TransactionID,
		"balance":        result.Balance,
	})

	return result, nil
}

// ClaimReward レベル報酬を受け取る
// 受取済みセットの更新とコイン付与は同一トランザクションで行う
func (s *PassApplicationService) ClaimReward(ctx context.Context, req *ClaimRewardRequest) (*ClaimRewardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PassApplicationService.ClaimReward")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.Int("level", req.Level),
		attribute.String("tier", req.Tier),
	)

	tier, err := pass.NewTier(req.Tier)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Processing pass reward claim", map[string]interface{}{
		"user_id": req.UserID,
		"level":   req.Level,
		"tier":    tier.String(),
	})

	var result *ClaimRewardResponse
	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		// ロック順序: 常にウォレット行→パス状態行の順で取得する
		if _, err := s.walletRepo.FindForUpdate(ctx, tx, req.UserID); err != nil {
			return fmt.Errorf("failed to lock wallet: %w", err)
		}

		state, err := s.stateRepo.FindForUpdate(ctx, tx, req.UserID)
		if err != nil {
			return fmt.Errorf("failed to lock pass state: %w", err)
		}

		reward, err := state.ClaimReward(req.Level, tier)
		if err != nil {
			return err
		}
		if err := s.stateRepo.Save(ctx, tx, state); err != nil {
			return fmt.Errorf("failed to save pass state: %w", err)
		}

		coins := reward.CoinsFor(tier)
		reason := fmt.Sprintf("%s: level %d (%s)", rewardClaimReason, req.Level, tier)
		w, txn, err := s.ledger.Credit(ctx, tx, req.UserID, coins, transaction.TypeEarn, reason)
		if err != nil {
			return err
		}

		result = &ClaimRewardResponse{
			UserID:        req.UserID,
			Level:         req.Level,
			Tier:          tier.String(),
			Coins:         coins,
			Balance:       w.Balance(),
			TransactionID: txn.TransactionID(),
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to claim pass reward", err, map[string]interface{}{
			"user_id": req.UserID,
			"level":   req.Level,
			"tier":    tier.String(),
		})
		return nil, err
	}

	s.metrics.RecordTransaction(ctx, transaction.TypeEarn.String(), rewardClaimReason)
	s.metrics.RecordWalletBalance(ctx, result.UserID, result.Balance)

	s.logger.Info(ctx, "Pass reward claim completed", map[string]interface{}{
		"user_id":        result.UserID,
		"level":          result.Level,
		"tier":           result.Tier,
		"coins":          result.Coins,
		"transaction_id": result.TransactionID,
	})

	return result, nil
}

// ListTasks タスク一覧と完了状況を取得
func (s *PassApplicationService) ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PassApplicationService.ListTasks")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
	)

	logs, err := s.taskLogRepo.ListByUserID(ctx, req.UserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to list task logs", err, map[string]interface{}{
			"user_id": req.UserID,
		})
		return nil, fmt.Errorf("failed to list task logs: %w", err)
	}

	logByTaskID := make(map[string]*pass.TaskLog, len(logs))
	for _, l := range logs {
		logByTaskID[l.TaskID()] = l
	}

	now := s.now()
	views := make([]TaskView, 0, len(pass.Tasks()))
	for _, task := range pass.Tasks() {
		view := TaskView{
			ID:        task.ID,
			Name:      task.Name,
			Frequency: string(task.Frequency),
			XP:        task.XP,
		}
		l, ok := logByTaskID[task.ID]
		if !ok {
			l, _ = pass.NewEmptyTaskLog(req.UserID, task.ID)
		}
		view.CompletedCount = l.CompletedCount()
		view.LastCompletedAt = l.LastCompletedAt()
		view.CompletableNow = l.CanComplete(task, now) == nil
		views = append(views, view)
	}

	return &ListTasksResponse{
		UserID: req.UserID,
		Tasks:  views,
	}, nil
}

// CompleteTask タスクを完了してXPを獲得する
// 完了記録の更新とXPの加算は同一トランザクションで行う
func (s *PassApplicationService) CompleteTask(ctx context.Context, req *CompleteTaskRequest) (*CompleteTaskResponse, error) {
	ctx, span := s.tracer.Start(ctx, "PassApplicationService.CompleteTask")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("task_id", req.TaskID),
	)

	task, err := pass.TaskByID(req.TaskID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Processing task completion", map[string]interface{}{
		"user_id": req.UserID,
		"task_id": task.ID,
	})

	now := s.now()
	if err := s.checkEvidence(ctx, req.UserID, task, now); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var result *CompleteTaskResponse
	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		l, err := s.taskLogRepo.FindForUpdate(ctx, tx, req.UserID, task.ID)
		if err != nil {
			return fmt.Errorf("failed to lock task log: %w", err)
		}
		if err := l.CanComplete(task, now); err != nil {
			return err
		}
		l.Complete(now)
		if err := s.taskLogRepo.Upsert(ctx, tx, l); err != nil {
			return fmt.Errorf("failed to upsert task log: %w", err)
		}

		state, err := s.stateRepo.FindForUpdate(ctx, tx, req.UserID)
		if err != nil {
			return fmt.Errorf("failed to lock pass state: %w", err)
		}
		if err := state.AddXP(task.XP); err != nil {
			return err
		}
		if err := s.stateRepo.Save(ctx, tx, state); err != nil {
			return fmt.Errorf("failed to save pass state: %w", err)
		}

		progress := state.Progress()
		result = &CompleteTaskResponse{
			UserID:          req.UserID,
			TaskID:          task.ID,
			XPAwarded:       task.XP,
			XP:              state.XP(),
			CompletedLevels: progress.CompletedLevels,
			CurrentLevel:    progress.CurrentLevel,
			LevelProgress:   progress.LevelProgress,
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to complete task", err, map[string]interface{}{
			"user_id": req.UserID,
			"task_id": task.ID,
		})
		return nil, err
	}

	s.logger.Info(ctx, "Task completion recorded", map[string]interface{}{
		"user_id":    result.UserID,
		"task_id":    result.TaskID,
		"xp_awarded": result.XPAwarded,
		"xp":         result.XP,
	})

	return result, nil
}

// checkEvidence タスク完了の外部証跡を検査する
// 証跡が無い場合はErrTaskPreconditionNotMetを返す
func (s *PassApplicationService) checkEvidence(ctx context.Context, userID string, task pass.Task, now time.Time) error {
	switch task.Evidence {
	case pass.EvidenceDailyClaim:
		claimed, err := s.claimRepo.Exists(ctx, userID, dailyclaim.DayKey(now))
		if err != nil {
			return fmt.Errorf("failed to check daily claim evidence: %w", err)
		}
		if !claimed {
			return pass.ErrTaskPreconditionNotMet
		}
	case pass.EvidenceShopVisit:
		visited, err := s.visitRepo.Exists(ctx, userID, dailyclaim.DayKey(now))
		if err != nil {
			return fmt.Errorf("failed to check shop visit evidence: %w", err)
		}
		if !visited {
			return pass.ErrTaskPreconditionNotMet
		}
	case pass.EvidenceDiscordLink:
		u, err := s.userRepo.FindByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if !u.HasDiscordLink() {
			return pass.ErrTaskPreconditionNotMet
		}
	default:
		return pass.ErrUnknownTask
	}
	return nil
}
