package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	dailyclaimapp "coin-server/internal/application/dailyclaim"
	passapp "coin-server/internal/application/pass"
	shopapp "coin-server/internal/application/shop"
	walletapp "coin-server/internal/application/wallet"
	"coin-server/internal/domain/service"
	"coin-server/internal/infrastructure/config"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
	"coin-server/internal/infrastructure/persistence/mysql"
	redisinfra "coin-server/internal/infrastructure/persistence/redis"
	"coin-server/internal/presentation/rest"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// OpenTelemetryの初期化
	tracerShutdown, err := otelinfra.InitTracer(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown tracer: %v", err)
		}
	}()

	meterShutdown, err := otelinfra.InitMeter(&cfg.OpenTelemetry)
	if err != nil {
		log.Fatalf("Failed to initialize meter: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterShutdown(ctx); err != nil {
			log.Printf("Failed to shutdown meter: %v", err)
		}
	}()

	// ロガーとメトリクスの初期化
	tracer := otelinfra.Tracer("coin-server")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("coin-server")
	if err != nil {
		log.Fatalf("Failed to create metrics: %v", err)
	}

	// データベース接続の初期化
	db, err := mysql.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// リポジトリの初期化
	walletRepo := mysql.NewWalletRepository(db)
	transactionRepo := mysql.NewTransactionRepository(db)
	dailyClaimRepo := mysql.NewDailyClaimRepository(db)
	passStateRepo := mysql.NewPassStateRepository(db)
	taskLogRepo := mysql.NewTaskLogRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	shopVisitRepo := mysql.NewShopVisitRepository(db)
	shopSettingRepo := mysql.NewShopSettingRepository(db)
	userRepo := mysql.NewUserRepository(db)

	// トランザクションマネージャーの初期化
	txManager := mysql.NewTransactionManager(db)

	// リーダーボードキャッシュの初期化（無効時はデータベース直読み）
	var leaderboardCache walletapp.LeaderboardCache
	if cfg.Redis.Enabled {
		cache, err := redisinfra.NewLeaderboardCache(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer cache.Close()
		leaderboardCache = cache
	}

	// ドメインサービスの初期化
	ledgerService := service.NewLedgerService(walletRepo, transactionRepo)

	// アプリケーションサービスの初期化
	walletAppService := walletapp.NewWalletApplicationService(
		walletRepo,
		transactionRepo,
		userRepo,
		txManager,
		ledgerService,
		leaderboardCache,
		logger,
		metrics,
	)

	claimAppService := dailyclaimapp.NewDailyClaimApplicationService(
		dailyClaimRepo,
		walletRepo,
		txManager,
		ledgerService,
		cfg.Economy.DailyReward,
		logger,
		metrics,
	)

	passAppService := passapp.NewPassApplicationService(
		passStateRepo,
		taskLogRepo,
		walletRepo,
		dailyClaimRepo,
		shopVisitRepo,
		userRepo,
		txManager,
		ledgerService,
		cfg.Economy.PremiumPassPrice,
		logger,
		metrics,
	)

	shopAppService := shopapp.NewShopApplicationService(
		orderRepo,
		shopVisitRepo,
		shopSettingRepo,
		txManager,
		ledgerService,
		logger,
		metrics,
	)

	// REST APIルーターの初期化
	router, err := rest.NewRouter(
		cfg,
		logger,
		metrics,
		walletAppService,
		claimAppService,
		passAppService,
		shopAppService,
	)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// サーバーアドレスの設定
	address := fmt.Sprintf(":%d", cfg.Server.Port)

	// グレースフルシャットダウンの設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("REST API server starting on %s", address)
		if err := router.Start(address); err != nil {
			log.Printf("REST API server error: %v", err)
		}
	}()

	// シグナルを待機
	<-quit
	log.Println("Shutting down server...")

	if err := router.Shutdown(); err != nil {
		log.Printf("Error shutting down REST API server: %v", err)
	}

	log.Println("Server stopped")
}
