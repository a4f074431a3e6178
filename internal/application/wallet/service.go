package wallet

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/service"
	"coin-server/internal/domain/transaction"
	"coin-server/internal/domain/user"
	"coin-server/internal/domain/wallet"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 100

	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// LeaderboardCache リーダーボードのキャッシュインターフェース
// 実装が無い（nil）場合は常にデータベースから読む
type LeaderboardCache interface {
	Get(ctx context.Context, limit int) ([]*wallet.LeaderboardEntry, bool, error)
	Set(ctx context.Context, limit int, entries []*wallet.LeaderboardEntry) error
}

// WalletApplicationService ウォレットアプリケーションサービス
type WalletApplicationService struct {
	walletRepo wallet.Repository
	txnRepo    transaction.Repository
	userRepo   user.Repository
	txManager  transaction.TransactionManager
	ledger     *service.LedgerService
	cache      LeaderboardCache
	logger     *otelinfra.Logger
	metrics    *otelinfra.Metrics
	tracer     trace.Tracer
}

// NewWalletApplicationService 新しいWalletApplicationServiceを作成
// cacheはnilでもよい（その場合キャッシュは無効）
func NewWalletApplicationService(
	walletRepo wallet.Repository,
	txnRepo transaction.Repository,
	userRepo user.Repository,
	txManager transaction.TransactionManager,
	ledger *service.LedgerService,
	cache LeaderboardCache,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *WalletApplicationService {
	return &WalletApplicationService{
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		userRepo:   userRepo,
		txManager:  txManager,
		ledger:     ledger,
		cache:      cache,
		logger:     logger,
		metrics:    metrics,
		tracer:     otel.Tracer("wallet-service"),
	}
}

// GetWallet ウォレットを取得
// ウォレットが存在しない場合は残高ゼロで作成してから返す
func (s *WalletApplicationService) GetWallet(ctx context.Context, req *GetWalletRequest) (*GetWalletResponse, error) {
	ctx, span := s.tracer.Start(ctx, "WalletApplicationService.GetWallet")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
	)

	w, err := s.walletRepo.Find(ctx, req.UserID)
	if err == wallet.ErrWalletNotFound {
		if err := s.walletRepo.Create(ctx, req.UserID); err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			s.logger.Error(ctx, "Failed to create wallet", err, map[string]interface{}{
				"user_id": req.UserID,
			})
			return nil, fmt.Errorf("failed to create wallet: %w", err)
		}
		w, err = s.walletRepo.Find(ctx, req.UserID)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to find wallet", err, map[string]interface{}{
			"user_id": req.UserID,
		})
		return nil, fmt.Errorf("failed to find wallet: %w", err)
	}

	s.metrics.RecordWalletBalance(ctx, w.UserID(), w.Balance())

	return &GetWalletResponse{
		UserID:      w.UserID(),
		Balance:     w.Balance(),
		LastClaimAt: w.LastClaimAt(),
	}, nil
}

// GetHistory 取引履歴を新しい順に取得
func (s *WalletApplicationService) GetHistory(ctx context.Context, req *GetHistoryRequest) (*GetHistoryResponse, error) {
	ctx, span := s.tracer.Start(ctx, "WalletApplicationService.GetHistory")
	defer span.End()

	limit := req.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.Int("limit", limit),
	)

	transactions, err := s.txnRepo.FindByUserID(ctx, req.UserID, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to find transactions", err, map[string]interface{}{
			"user_id": req.UserID,
		})
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}

	records := make([]TransactionRecord, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, TransactionRecord{
			TransactionID: t.TransactionID(),
			Type:          t.Type().String(),
			Amount:        t.Signed(),
			Reason:        t.Reason(),
			BalanceAfter:  t.BalanceAfter(),
			CreatedAt:     t.CreatedAt(),
		})
	}

	return &GetHistoryResponse{
		UserID:       req.UserID,
		Transactions: records,
	}, nil
}

// GetLeaderboard 残高の多い順にユーザーを取得
// キャッシュが有効な場合はリードスルーで読む。キャッシュ障害は
// データベースへのフォールバックで吸収し、リクエストを失敗させない
func (s *WalletApplicationService) GetLeaderboard(ctx context.Context, req *GetLeaderboardRequest) (*GetLeaderboardResponse, error) {
	ctx, span := s.tracer.Start(ctx, "WalletApplicationService.GetLeaderboard")
	defer span.End()

	limit := req.Limit
	if limit <= 0 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	span.SetAttributes(
		attribute.Int("limit", limit),
	)

	var entries []*wallet.LeaderboardEntry
	if s.cache != nil {
		cached, hit, err := s.cache.Get(ctx, limit)
		if err != nil {
			s.logger.Warn(ctx, "Leaderboard cache read failed, falling back to database", map[string]interface{}{
				"error": err.Error(),
			})
		} else if hit {
			entries = cached
		}
	}

	if entries == nil {
		var err error
		entries, err = s.walletRepo.ListTopByBalance(ctx, limit)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			s.logger.Error(ctx, "Failed to list leaderboard", err, map[string]interface{}{
				"limit": limit,
			})
			return nil, fmt.Errorf("failed to list leaderboard: %w", err)
		}

		if s.cache != nil {
			if err := s.cache.Set(ctx, limit, entries); err != nil {
				s.logger.Warn(ctx, "Leaderboard cache write failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}

	ranks := make([]LeaderboardRank, 0, len(entries))
	for i, e := range entries {
		ranks = append(ranks, LeaderboardRank{
			Rank:     i + 1,
			UserID:   e.UserID,
			Username: e.Username,
			Balance:  e.Balance,
		})
	}

	return &GetLeaderboardResponse{Ranks: ranks}, nil
}

// AdminGrant 管理者によるコインの付与・没収
// Amountが正なら付与（type=earn）、負なら没収（type=spend）。
// IdempotencyKeyが指定された場合は取引IDとして機能し、同じキーでの
// 再実行はErrDuplicateTransactionで失敗する（二重付与は起きない）
func (s *WalletApplicationService) AdminGrant(ctx context.Context, req *AdminGrantRequest) (*AdminGrantResponse, error) {
	ctx, span := s.tracer.Start(ctx, "WalletApplicationService.AdminGrant")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("amount", req.Amount),
	)

	s.logger.Info(ctx, "Processing admin grant", map[string]interface{}{
		"amount": req.Amount,
		"reason": req.Reason,
	})

	if req.Amount == 0 {
		err := wallet.ErrInvalidAmount
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to find grant target user", err, nil)
		return nil, err
	}

	transactionID := service.NewTransactionID()
	if req.IdempotencyKey != "" {
		transactionID = "grant_" + req.IdempotencyKey
	}

	reason := req.Reason
	if reason == "" {
		reason = "admin grant"
	}

	var result *AdminGrantResponse
	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		var (
			w   *wallet.Wallet
			txn *transaction.Transaction
			err error
		)
		if req.Amount > 0 {
			w, txn, err = s.ledger.CreditWithID(ctx, tx, transactionID, u.UserID(), req.Amount, transaction.TypeEarn, reason)
		} else {
			w, txn, err = s.ledger.DebitWithID(ctx, tx, transactionID, u.UserID(), -req.Amount, reason)
		}
		if err != nil {
			return err
		}

		result = &AdminGrantResponse{
			UserID:        w.UserID(),
			TransactionID: txn.TransactionID(),
			Balance:       w.Balance(),
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to process admin grant", err, map[string]interface{}{
			"user_id": u.UserID(),
			"amount":  req.Amount,
		})
		return nil, err
	}

	s.metrics.RecordTransaction(ctx, transactionTypeFor(req.Amount), reason)
	s.metrics.RecordWalletBalance(ctx, result.UserID, result.Balance)

	s.logger.Info(ctx, "Admin grant completed", map[string]interface{}{
		"user_id":        result.UserID,
		"transaction_id": result.TransactionID,
		"balance":        result.Balance,
	})

	return result, nil
}

func transactionTypeFor(amount int64) string {
	if amount > 0 {
		return transaction.TypeEarn.String()
	}
	return transaction.TypeSpend.String()
}
