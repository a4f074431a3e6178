package otel

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics メトリクス定義
type Metrics struct {
	// 取引数
	TransactionCount metric.Int64Counter

	// ウォレット残高の分布
	WalletBalance metric.Int64Gauge

	// デイリー報酬の受取数
	DailyClaimCount metric.Int64Counter

	// リクエスト数
	RequestCount metric.Int64Counter

	// レスポンス時間
	ResponseTime metric.Float64Histogram

	// エラー率
	ErrorCount metric.Int64Counter

	// 補償処理（返金など）の失敗件数。運用者の対応が必要
	CompensationFailureCount metric.Int64Counter
}

// NewMetrics 新しいMetricsを作成
func NewMetrics(meterName string) (*Metrics, error) {
	meter := Meter(meterName)

	transactionCount, err := meter.Int64Counter(
		"transactions_total",
		metric.WithDescription("Total number of ledger transactions"),
	)
	if err != nil {
		return nil, err
	}

	walletBalance, err := meter.Int64Gauge(
		"wallet_balance",
		metric.WithDescription("Wallet balance"),
	)
	if err != nil {
		return nil, err
	}

	dailyClaimCount, err := meter.Int64Counter(
		"daily_claims_total",
		metric.WithDescription("Total number of daily reward claims"),
	)
	if err != nil {
		return nil, err
	}

	requestCount, err := meter.Int64Counter(
		"requests_total",
		metric.WithDescription("Total number of requests"),
	)
	if err != nil {
		return nil, err
	}

	responseTime, err := meter.Float64Histogram(
		"response_time_seconds",
		metric.WithDescription("Response time in seconds"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"errors_total",
		metric.WithDescription("Total number of errors"),
	)
	if err != nil {
		return nil, err
	}

	compensationFailureCount, err := meter.Int64Counter(
		"compensation_failures_total",
		metric.WithDescription("Total number of failed compensating actions requiring operator attention"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		TransactionCount:         transactionCount,
		WalletBalance:            walletBalance,
		DailyClaimCount:          dailyClaimCount,
		RequestCount:             requestCount,
		ResponseTime:             responseTime,
		ErrorCount:               errorCount,
		CompensationFailureCount: compensationFailureCount,
	}, nil
}

// RecordTransaction 取引を記録
func (m *Metrics) RecordTransaction(ctx context.Context, transactionType, reason string) {
	m.TransactionCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("transaction_type", transactionType),
			attribute.String("reason", reason),
		),
	)
}

// RecordWalletBalance ウォレット残高を記録
func (m *Metrics) RecordWalletBalance(ctx context.Context, userID string, balance int64) {
	m.WalletBalance.Record(ctx, balance,
		metric.WithAttributes(
			attribute.String("user_id", userID),
		),
	)
}

// RecordDailyClaim デイリー報酬の受取を記録
func (m *Metrics) RecordDailyClaim(ctx context.Context) {
	m.DailyClaimCount.Add(ctx, 1)
}

// RecordRequest リクエストを記録
func (m *Metrics) RecordRequest(ctx context.Context, method, path string) {
	m.RequestCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordResponseTime レスポンス時間を記録
func (m *Metrics) RecordResponseTime(ctx context.Context, method, path string, duration float64) {
	m.ResponseTime.Record(ctx, duration,
		metric.WithAttributes(
			attribute.String("method", method),
			attribute.String("path", path),
		),
	)
}

// RecordError エラーを記録
func (m *Metrics) RecordError(ctx context.Context, errorType string) {
	m.ErrorCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("error_type", errorType),
		),
	)
}

// RecordCompensationFailure 補償処理の失敗を記録
func (m *Metrics) RecordCompensationFailure(ctx context.Context, stage string) {
	m.CompensationFailureCount.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("stage", stage),
		),
	)
}
