package shop

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"coin-server/internal/domain/dailyclaim"
	"coin-server/internal/domain/service"
	"coin-server/internal/domain/shop"
	"coin-server/internal/domain/transaction"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

const (
	defaultOrderLimit = 50
	maxOrderLimit     = 200

	// DecisionAccept オーダーを承認する審査アクション
	DecisionAccept = "accept"
	// DecisionReject オーダーを拒否する審査アクション
	DecisionReject = "reject"
)

// ShopApplicationService ショップアプリケーションサービス
type ShopApplicationService struct {
	orderRepo   shop.OrderRepository
	visitRepo   shop.VisitRepository
	settingRepo shop.SettingRepository
	txManager   transaction.TransactionManager
	ledger      *service.LedgerService
	logger      *otelinfra.Logger
	metrics     *otelinfra.Metrics
	tracer      trace.Tracer
	now         func() time.Time
}

// NewShopApplicationService 新しいShopApplicationServiceを作成
func NewShopApplicationService(
	orderRepo shop.OrderRepository,
	visitRepo shop.VisitRepository,
	settingRepo shop.SettingRepository,
	txManager transaction.TransactionManager,
	ledger *service.LedgerService,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
) *ShopApplicationService {
	return &ShopApplicationService{
		orderRepo:   orderRepo,
		visitRepo:   visitRepo,
		settingRepo: settingRepo,
		txManager:   txManager,
		ledger:      ledger,
		logger:      logger,
		metrics:     metrics,
		tracer:      otel.Tracer("shop-service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// ListProducts 商品一覧を取得
// 閲覧自体がタスク証跡になるため、本日分のショップ訪問を記録する。
// 訪問記録の失敗は一覧取得を妨げない
func (s *ShopApplicationService) ListProducts(ctx context.Context, req *ListProductsRequest) (*ListProductsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ShopApplicationService.ListProducts")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
	)

	if err := s.visitRepo.Record(ctx, req.UserID, dailyclaim.DayKey(s.now())); err != nil {
		s.logger.Warn(ctx, "Failed to record shop visit", map[string]interface{}{
			"user_id": req.UserID,
			"error":   err.Error(),
		})
	}

	featuredID, err := s.settingRepo.Get(ctx, shop.FeaturedProductSetting)
	if err != nil && err != shop.ErrSettingNotFound {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to get featured product setting", err, nil)
		return nil, fmt.Errorf("failed to get featured product setting: %w", err)
	}

	products := make([]ProductView, 0, len(shop.Products()))
	for _, p := range shop.Products() {
		products = append(products, ProductView{
			ID:                       p.ID,
			Name:                     p.Name,
			Price:                    p.Price,
			RequiresDiscordID:        p.RequiresDiscordID,
			AllowsQuantity:           p.AllowsQuantity,
			RequiresReview:           p.RequiresReview,
			RequiresPromotionContent: p.RequiresPromotionContent,
			InstantRewardAmount:      p.InstantRewardAmount,
			Featured:                 p.ID == featuredID,
		})
	}

	return &ListProductsResponse{Products: products}, nil
}

// Purchase 商品を購入する
// 課金・即時キャッシュバック・オーダー作成は独立した3つのトランザクションで
// 実行する。キャッシュバックの失敗は購入を妨げない。オーダー作成に失敗した
// 場合は課金分を補償返金し、返金にも失敗した場合は運用者向けに昇格させる
func (s *ShopApplicationService) Purchase(ctx context.Context, req *PurchaseRequest) (*PurchaseResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ShopApplicationService.Purchase")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("product_id", req.ProductID),
	)

	product, err := shop.ProductByID(req.ProductID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	if err := product.ValidatePurchase(req.DiscordID, req.PromotionContent); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	quantity := product.NormalizeQuantity(req.Quantity)
	totalPrice := product.Price * int64(quantity)

	span.SetAttributes(
		attribute.Int("quantity", quantity),
		attribute.Int64("total_price", totalPrice),
	)

	s.logger.Info(ctx, "Processing purchase", map[string]interface{}{
		"user_id":     req.UserID,
		"product_id":  product.ID,
		"quantity":    quantity,
		"total_price": totalPrice,
	})

	// 1. 課金
	purchaseReason := fmt.Sprintf("purchase: %s x%d", product.ID, quantity)
	result := &PurchaseResponse{
		UserID:     req.UserID,
		ProductID:  product.ID,
		Quantity:   quantity,
		TotalPrice: totalPrice,
	}
	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		w, txn, err := s.ledger.Debit(ctx, tx, req.UserID, totalPrice, purchaseReason)
		if err != nil {
			return err
		}
		result.Balance = w.Balance()
		result.TransactionID = txn.TransactionID()
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to debit purchase", err, map[string]interface{}{
			"user_id":    req.UserID,
			"product_id": product.ID,
		})
		return nil, err
	}

	s.metrics.RecordTransaction(ctx, transaction.TypeSpend.String(), purchaseReason)

	// 2. 即時キャッシュバック（失敗しても購入は成立する）
	if product.InstantRewardAmount > 0 {
		rewardAmount := product.InstantRewardAmount * int64(quantity)
		rewardReason := fmt.Sprintf("instant reward: %s x%d", product.ID, quantity)
		err := s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
			w, _, err := s.ledger.Credit(ctx, tx, req.UserID, rewardAmount, transaction.TypeEarn, rewardReason)
			if err != nil {
				return err
			}
			result.InstantReward = rewardAmount
			result.Balance = w.Balance()
			return nil
		})
		if err != nil {
			s.metrics.RecordError(ctx, "instant_reward_failure")
			s.logger.Error(ctx, "Failed to credit instant reward, purchase stands", err, map[string]interface{}{
				"user_id":    req.UserID,
				"product_id": product.ID,
				"amount":     rewardAmount,
			})
		}
	}

	// 3. 承認待ちオーダーの作成
	if product.RequiresReview {
		orderID, err := s.createPendingOrder(ctx, req, product, totalPrice, quantity)
		if err != nil {
			s.compensatePurchase(ctx, req.UserID, totalPrice, purchaseReason)
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
		result.OrderID = orderID
	}

	s.metrics.RecordWalletBalance(ctx, result.UserID, result.Balance)

	s.logger.Info(ctx, "Purchase completed", map[string]interface{}{
		"user_id":        result.UserID,
		"product_id":     result.ProductID,
		"transaction_id": result.TransactionID,
		"order_id":       result.OrderID,
		"balance":        result.Balance,
	})

	return result, nil
}

func (s *ShopApplicationService) createPendingOrder(ctx context.Context, req *PurchaseRequest, product shop.Product, totalPrice int64, quantity int) (string, error) {
	var discordID *string
	if req.DiscordID != "" {
		discordID = &req.DiscordID
	}
	var promotionContent *string
	if req.PromotionContent != "" {
		promotionContent = &req.PromotionContent
	}

	order, err := shop.NewOrder(
		newOrderID(),
		req.UserID,
		product,
		totalPrice,
		quantity,
		discordID,
		req.UserEmail,
		promotionContent,
		s.now(),
	)
	if err != nil {
		return "", err
	}

	err = s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		return s.orderRepo.Insert(ctx, tx, order)
	})
	if err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	return order.OrderID(), nil
}

// compensatePurchase オーダー作成に失敗した購入の補償返金を行う
// 返金にも失敗した場合はメトリクスを記録し、運用者向けログに昇格させる
func (s *ShopApplicationService) compensatePurchase(ctx context.Context, userID string, amount int64, purchaseReason string) {
	refundReason := "refund: order creation failed"
	err := s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, _, err := s.ledger.Credit(ctx, tx, userID, amount, transaction.TypeEarn, refundReason)
		return err
	})
	if err != nil {
		s.metrics.RecordCompensationFailure(ctx, "purchase_refund")
		s.logger.Escalate(ctx, "Failed to refund purchase after order creation failure", err, map[string]interface{}{
			"user_id":         userID,
			"amount":          amount,
			"purchase_reason": purchaseReason,
		})
		return
	}

	s.logger.Warn(ctx, "Purchase refunded after order creation failure", map[string]interface{}{
		"user_id": userID,
		"amount":  amount,
	})
}

// GetNotifications 審査結果の通知を取得
// mode=new は未通知の終端オーダーを既読化しながら返す（at-most-once）。
// mode=all は破棄されていない終端オーダーを副作用なしで返す
func (s *ShopApplicationService) GetNotifications(ctx context.Context, req *GetNotificationsRequest) (*GetNotificationsResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ShopApplicationService.GetNotifications")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("mode", req.Mode),
	)

	switch req.Mode {
	case "", "new":
		return s.getNewNotifications(ctx, req.UserID)
	case "all":
		orders, err := s.orderRepo.ListActive(ctx, req.UserID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			s.logger.Error(ctx, "Failed to list active orders", err, map[string]interface{}{
				"user_id": req.UserID,
			})
			return nil, fmt.Errorf("failed to list active orders: %w", err)
		}
		return &GetNotificationsResponse{
			UserID: req.UserID,
			Orders: orderViews(orders),
		}, nil
	default:
		return nil, shop.ErrInvalidNotificationMode
	}
}

func (s *ShopApplicationService) getNewNotifications(ctx context.Context, userID string) (*GetNotificationsResponse, error) {
	var orders []*shop.Order
	// 取得と既読化を同一トランザクションで行うため、同じ通知が
	// 2つのクライアントに同時に配られることはない
	err := s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		unread, err := s.orderRepo.ListUnreadForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		now := s.now()
		for _, o := range unread {
			if err := o.MarkNotified(now); err != nil {
				return err
			}
			if err := s.orderRepo.Update(ctx, tx, o); err != nil {
				return err
			}
		}
		orders = unread
		return nil
	})
	if err != nil {
		s.logger.Error(ctx, "Failed to fetch new notifications", err, map[string]interface{}{
			"user_id": userID,
		})
		return nil, fmt.Errorf("failed to fetch new notifications: %w", err)
	}

	return &GetNotificationsResponse{
		UserID: userID,
		Orders: orderViews(orders),
	}, nil
}

// DismissNotification 通知を破棄する
// 破棄済みや承認待ちのオーダーはErrNotificationNotFoundになる
func (s *ShopApplicationService) DismissNotification(ctx context.Context, req *DismissNotificationRequest) error {
	ctx, span := s.tracer.Start(ctx, "ShopApplicationService.DismissNotification")
	defer span.End()

	span.SetAttributes(
		attribute.String("user_id", req.UserID),
		attribute.String("order_id", req.OrderID),
	)

	err := s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		o, err := s.orderRepo.FindForUpdate(ctx, tx, req.OrderID)
		if err != nil {
			return err
		}
		// 他人のオーダーの存在は漏らさない
		if o.UserID() != req.UserID {
			return shop.ErrOrderNotFound
		}
		if err := o.Dismiss(s.now()); err != nil {
			return err
		}
		return s.orderRepo.Update(ctx, tx, o)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	return nil
}

// ListOrders オーダー一覧を取得（管理者用）
func (s *ShopApplicationService) ListOrders(ctx context.Context, req *ListOrdersRequest) (*ListOrdersResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ShopApplicationService.ListOrders")
	defer span.End()

	limit := req.Limit
	if limit <= 0 {
		limit = defaultOrderLimit
	}
	if limit > maxOrderLimit {
		limit = maxOrderLimit
	}

	var status shop.OrderStatus
	if req.Status != "" {
		var err error
		status, err = shop.NewOrderStatus(req.Status)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			return nil, err
		}
	}

	span.SetAttributes(
		attribute.String("status", status.String()),
		attribute.Int("limit", limit),
	)

	orders, err := s.orderRepo.ListByStatus(ctx, status, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to list orders", err, map[string]interface{}{
			"status": status.String(),
		})
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &ListOrdersResponse{Orders: orderViews(orders)}, nil
}

// DecideOrder オーダーを審査する（管理者用）
// 拒否時の返金はステータス更新と同一トランザクションで行う。承認待ち
// 以外のオーダーはErrOrderNotPendingになるため、二重返金は起きない
func (s *ShopApplicationService) DecideOrder(ctx context.Context, req *DecideOrderRequest) (*DecideOrderResponse, error) {
	ctx, span := s.tracer.Start(ctx, "ShopApplicationService.DecideOrder")
	defer span.End()

	span.SetAttributes(
		attribute.String("order_id", req.OrderID),
		attribute.String("action", req.Action),
	)

	if req.Action != DecisionAccept && req.Action != DecisionReject {
		err := shop.ErrInvalidDecision
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, err
	}

	s.logger.Info(ctx, "Processing order decision", map[string]interface{}{
		"order_id": req.OrderID,
		"action":   req.Action,
	})

	var result *DecideOrderResponse
	err := s.txManager.WithTransaction(ctx, func(tx *sql.Tx) error {
		o, err := s.orderRepo.FindForUpdate(ctx, tx, req.OrderID)
		if err != nil {
			return err
		}

		now := s.now()
		result = &DecideOrderResponse{OrderID: o.OrderID()}

		if req.Action == DecisionAccept {
			if err := o.Accept(req.ResolvedBy, req.Note, now); err != nil {
				return err
			}
		} else {
			if err := o.Reject(req.ResolvedBy, req.Note, now); err != nil {
				return err
			}
			refundReason := fmt.Sprintf("refund: order %s rejected", o.OrderID())
			if _, _, err := s.ledger.Credit(ctx, tx, o.UserID(), o.Price(), transaction.TypeEarn, refundReason); err != nil {
				return fmt.Errorf("failed to refund rejected order: %w", err)
			}
			result.RefundedAmount = o.Price()
		}

		if err := s.orderRepo.Update(ctx, tx, o); err != nil {
			return err
		}
		result.Status = o.Status().String()
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to decide order", err, map[string]interface{}{
			"order_id": req.OrderID,
			"action":   req.Action,
		})
		return nil, err
	}

	s.logger.Info(ctx, "Order decision completed", map[string]interface{}{
		"order_id": result.OrderID,
		"status":   result.Status,
		"refunded": result.RefundedAmount,
	})

	return result, nil
}

// SetFeaturedProduct 注目商品を設定する（管理者用）
// プロセス内の状態ではなく永続化された設定行を更新するため、
// 複数インスタンスでも一致する
func (s *ShopApplicationService) SetFeaturedProduct(ctx context.Context, req *SetFeaturedProductRequest) error {
	ctx, span := s.tracer.Start(ctx, "ShopApplicationService.SetFeaturedProduct")
	defer span.End()

	span.SetAttributes(
		attribute.String("product_id", req.ProductID),
	)

	if _, err := shop.ProductByID(req.ProductID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return err
	}

	if err := s.settingRepo.Set(ctx, shop.FeaturedProductSetting, req.ProductID); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		s.logger.Error(ctx, "Failed to set featured product", err, map[string]interface{}{
			"product_id": req.ProductID,
		})
		return fmt.Errorf("failed to set featured product: %w", err)
	}

	s.logger.Info(ctx, "Featured product updated", map[string]interface{}{
		"product_id": req.ProductID,
	})
	return nil
}

func orderViews(orders []*shop.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, OrderView{
			OrderID:          o.OrderID(),
			UserID:           o.UserID(),
			ProductID:        o.ProductID(),
			ProductName:      o.ProductName(),
			Price:            o.Price(),
			Quantity:         o.Quantity(),
			DiscordID:        o.DiscordID(),
			UserEmail:        o.UserEmail(),
			PromotionContent: o.PromotionContent(),
			Status:           o.Status().String(),
			DecisionNote:     o.DecisionNote(),
			ResolvedAt:       o.ResolvedAt(),
			ResolvedBy:       o.ResolvedBy(),
			CreatedAt:        o.CreatedAt(),
		})
	}
	return views
}

func newOrderID() string {
	return "ord_" + uuid.NewString()
}
