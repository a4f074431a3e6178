package rest

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	dailyclaimapp "coin-server/internal/application/dailyclaim"
	passapp "coin-server/internal/application/pass"
	shopapp "coin-server/internal/application/shop"
	walletapp "coin-server/internal/application/wallet"
	"coin-server/internal/infrastructure/config"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
	"coin-server/internal/presentation/rest/handler"
	restmiddleware "coin-server/internal/presentation/rest/middleware"
)

// Router REST APIルーター
type Router struct {
	echo              *echo.Echo
	walletHandler     *handler.WalletHandler
	dailyClaimHandler *handler.DailyClaimHandler
	passHandler       *handler.PassHandler
	shopHandler       *handler.ShopHandler
	orderHandler      *handler.OrderHandler
}

// NewRouter 新しいRouterを作成
func NewRouter(
	cfg *config.Config,
	logger *otelinfra.Logger,
	metrics *otelinfra.Metrics,
	walletService *walletapp.WalletApplicationService,
	claimService *dailyclaimapp.DailyClaimApplicationService,
	passService *passapp.PassApplicationService,
	shopService *shopapp.ShopApplicationService,
) (*Router, error) {
	e := echo.New()

	// Echoのデフォルトエラーハンドラーを無効化（カスタムエラーハンドラーを使用）
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		// エラーハンドリングミドルウェアで処理される
	}

	setupMiddleware(e, logger, metrics)

	walletHandler := handler.NewWalletHandler(walletService)
	dailyClaimHandler := handler.NewDailyClaimHandler(claimService)
	passHandler := handler.NewPassHandler(passService)
	shopHandler := handler.NewShopHandler(shopService)
	orderHandler := handler.NewOrderHandler(shopService)

	setupRoutes(e, cfg, logger, walletHandler, dailyClaimHandler, passHandler, shopHandler, orderHandler)

	return &Router{
		echo:              e,
		walletHandler:     walletHandler,
		dailyClaimHandler: dailyClaimHandler,
		passHandler:       passHandler,
		shopHandler:       shopHandler,
		orderHandler:      orderHandler,
	}, nil
}

// setupMiddleware ミドルウェアを設定
func setupMiddleware(e *echo.Echo, logger *otelinfra.Logger, metrics *otelinfra.Metrics) {
	// リカバリーミドルウェア
	e.Use(middleware.Recover())

	// CORS設定
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"}, // 本番環境では適切に設定
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// リクエストIDの設定
	e.Use(middleware.RequestID())

	// セキュリティヘッダー
	e.Use(restmiddleware.SecurityHeadersMiddleware())

	// トレーシングミドルウェア
	e.Use(restmiddleware.TracingMiddleware())

	// ログミドルウェア
	e.Use(restmiddleware.LoggingMiddleware(logger))

	// メトリクスミドルウェア
	e.Use(restmiddleware.MetricsMiddleware(metrics))

	// エラーハンドリングミドルウェア
	e.Use(restmiddleware.ErrorHandlerMiddleware(logger))
}

// setupRoutes ルーティングを設定
func setupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	logger *otelinfra.Logger,
	walletHandler *handler.WalletHandler,
	dailyClaimHandler *handler.DailyClaimHandler,
	passHandler *handler.PassHandler,
	shopHandler *handler.ShopHandler,
	orderHandler *handler.OrderHandler,
) {
	// API v1グループ
	api := e.Group("/api/v1")

	// 認証が必要なエンドポイント
	authGroup := api.Group("", restmiddleware.AuthMiddleware(&cfg.JWT, logger))

	// ウォレット関連エンドポイント
	authGroup.GET("/wallet", walletHandler.GetWallet)
	authGroup.GET("/history", walletHandler.GetHistory)
	authGroup.GET("/leaderboard", walletHandler.GetLeaderboard)
	authGroup.POST("/claim-daily", dailyClaimHandler.Claim)

	// パス関連エンドポイント
	authGroup.GET("/pass", passHandler.GetPass)
	authGroup.POST("/pass/purchase", passHandler.PurchasePremium)
	authGroup.POST("/pass/claim", passHandler.ClaimReward)
	authGroup.GET("/pass/tasks", passHandler.ListTasks)
	authGroup.POST("/pass/tasks/:task_id/complete", passHandler.CompleteTask)

	// ショップ関連エンドポイント
	authGroup.GET("/products", shopHandler.ListProducts)
	authGroup.POST("/purchase", shopHandler.Purchase)
	authGroup.GET("/notifications", shopHandler.GetNotifications)
	authGroup.DELETE("/notifications/:id", shopHandler.DismissNotification)

	// 管理者専用エンドポイント
	adminGroup := authGroup.Group("", restmiddleware.AdminMiddleware(logger))
	adminGroup.GET("/orders", orderHandler.ListOrders)
	adminGroup.POST("/orders/:id/decision", orderHandler.DecideOrder)
	adminGroup.POST("/grant", walletHandler.AdminGrant)
	adminGroup.PUT("/products/featured", orderHandler.SetFeaturedProduct)

	// ヘルスチェックエンドポイント（認証不要）
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
}

// Start サーバーを起動
func (r *Router) Start(address string) error {
	return r.echo.Start(address)
}

// Shutdown サーバーをシャットダウン
func (r *Router) Shutdown() error {
	return r.echo.Close()
}
