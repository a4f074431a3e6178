package dailyclaim

import (
	"context"
	"database/sql"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/dailyclaim"
	"coin-server/internal/domain/service"
	"coin-server/internal/domain/transaction"
	"coin-server/internal/domain/wallet"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

// claimReason デイリー受取の取引理由
const claimReason = "daily reward"

// DailyClaimApplicationService デイリー受取アプリケーションサービス
type DailyClaimApplicationService struct {
	claimRepo   dailyclaim.Repository
	walletRepo  wallet.Repository
	txManager   transaction.TransactionManager
	ledger      *service.LedgerService
	rewardCoins int64
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
	now         func() time.Time
}

// NewDailyClaimApplicationService 新しいDailyClaimApplicationServiceを作成
func NewDailyClaimApplicationService(
	claimRepo dailyclaim.Repository,
	walletRepo wallet.Repository,
	txManager transaction.TransactionManager,
	ledger *service.LedgerService,
	rewardCoins int64,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *DailyClaimApplicationService {
	return &DailyClaimApplicationService{
		claimRepo:   claimRepo,
		walletRepo:  walletRepo,
		txManager:   txManager,
		ledger:      ledger,
		rewardCoins: rewardCoins,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("daily-claim-service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Claim デイリー報酬を受け取る
// 受取記録の挿入とコイン付与は同一トランザクションで行うため、
// 「記録だけあって付与がない」状態は観測されない。同一UTC+8日の
// 2回目以降は一意制約によりAlreadyClaimedErrorを返す
func (s *DailyClaimApplicationService) Claim(ctx context.Context, req *ClaimRequest) (*ClaimResponse, error) {
	ctx, span := s.tracer.Start(ctx, "DailyClaimApplicationService.Claim")
	defer span.End()

	now := s.now()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("claim_key", dailyclaim.DayKey(now)),
	)

	s.logger.Info(ctx, "Processing daily claim", map[string]interface{}{
		"user_id":   req.UserID,
		"claim_key": dailyclaim.DayKey(now),
	})

	claim, err := dailyclaim.NewDailyClaim(req.UserID, s.rewardCoins, now)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	var result *ClaimResponse
	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.claimRepo.Insert(ctx, tx, claim); err != nil {
			return err
		}

		w, txn, err := s.ledger.Credit(ctx, tx, req.UserID, s.rewardCoins, transaction.TypeClaim, claimReason)
		if err != nil {
			return err
		}

		result = &ClaimResponse{
			UserID:        req.UserID,
			Amount:        s.rewardCoins,
			Balance:       w.Balance(),
			TransactionID: txn.TransactionID(),
			ClaimedAt:     claim.ClaimedAt(),
			NextClaimIn:   dailyclaim.UntilNextReset(now),
		}
		return nil
	})
	if err == dailyclaim.ErrAlreadyClaimed {
		// クライアントが再同期できるよう、残り時間と現在の残高を添えて返す
		conflict := &dailyclaim.AlreadyClaimedError{
			NextClaimIn: dailyclaim.UntilNextReset(now),
		}
		if w, werr := s.walletRepo.Find(ctx, req.UserID); werr == nil {
			conflict.Balance = w.Balance()
		}
		span.SetStatus(otelcodes.Ok, "already claimed")
		return nil, conflict
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to process daily claim", err, map[string]interface{}{
			"user_id": req.UserID,
		})
		return nil, err
	}

	s.metrics.RecordDailyClaim(ctx)
	s.metrics.RecordTransaction(ctx, transaction.TypeClaim.String(), claimReason)
	s.metrics.RecordWalletBalance(ctx, result.UserID, result.Balance)

	s.logger.Info(ctx, "Daily claim completed", map[string]interface{}{
		"user_id":        result.UserID,
		"transaction_id": result.TransactionID,
		"balance":        result.Balance,
	})

	return result, nil
}
