package handler

import (
	"context"
	"database/sql"

	"github.com/stretchr/testify/mock"

	"coin-server/internal/domain/dailyclaim"
	"coin-server/internal/domain/pass"
	"coin-server/internal/domain/shop"
	"coin-server/internal/domain/transaction"
	"coin-server/internal/domain/user"
	"coin-server/internal/domain/wallet"
)

// MockWalletRepository モックウォレットリポジトリ
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Find(ctx context.Context, userID string) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Create(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockWalletRepository) FindForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*wallet.Wallet, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Save(ctx context.Context, tx *sql.Tx, w *wallet.Wallet) error {
	args := m.Called(ctx, tx, w)
	return args.Error(0)
}

func (m *MockWalletRepository) ListTopByBalance(ctx context.Context, limit int) ([]*wallet.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*wallet.LeaderboardEntry), args.Error(1)
}

// MockTransactionRepository モック取引リポジトリ
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Insert(ctx context.Context, tx *sql.Tx, t *transaction.Transaction) error {
	args := m.Called(ctx, tx, t)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByTransactionID(ctx context.Context, transactionID string) (*transaction.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transaction.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByUserID(ctx context.Context, userID string, limit int) ([]*transaction.Transaction, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transaction.Transaction), args.Error(1)
}

// MockUserRepository モックユーザーリポジトリ
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByUserID(ctx context.Context, userID string) (*user.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// MockDailyClaimRepository モックデイリー受取リポジトリ
type MockDailyClaimRepository struct {
	mock.Mock
}

func (m *MockDailyClaimRepository) Insert(ctx context.Context, tx *sql.Tx, c *dailyclaim.DailyClaim) error {
	args := m.Called(ctx, tx, c)
	return args.Error(0)
}

func (m *MockDailyClaimRepository) Exists(ctx context.Context, userID string, claimKey string) (bool, error) {
	args := m.Called(ctx, userID, claimKey)
	return args.Bool(0), args.Error(1)
}

// MockPassStateRepository モックパス状態リポジトリ
type MockPassStateRepository struct {
	mock.Mock
}

func (m *MockPassStateRepository) Find(ctx context.Context, userID string) (*pass.State, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pass.State), args.Error(1)
}

func (m *MockPassStateRepository) FindForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*pass.State, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pass.State), args.Error(1)
}

func (m *MockPassStateRepository) Save(ctx context.Context, tx *sql.Tx, s *pass.State) error {
	args := m.Called(ctx, tx, s)
	return args.Error(0)
}

// MockTaskLogRepository モックタスク記録リポジトリ
type MockTaskLogRepository struct {
	mock.Mock
}

func (m *MockTaskLogRepository) FindForUpdate(ctx context.Context, tx *sql.Tx, userID, taskID string) (*pass.TaskLog, error) {
	args := m.Called(ctx, tx, userID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pass.TaskLog), args.Error(1)
}

func (m *MockTaskLogRepository) Upsert(ctx context.Context, tx *sql.Tx, l *pass.TaskLog) error {
	args := m.Called(ctx, tx, l)
	return args.Error(0)
}

func (m *MockTaskLogRepository) ListByUserID(ctx context.Context, userID string) ([]*pass.TaskLog, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pass.TaskLog), args.Error(1)
}

// MockOrderRepository モックオーダーリポジトリ
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Insert(ctx context.Context, tx *sql.Tx, o *shop.Order) error {
	args := m.Called(ctx, tx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) FindForUpdate(ctx context.Context, tx *sql.Tx, orderID string) (*shop.Order, error) {
	args := m.Called(ctx, tx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shop.Order), args.Error(1)
}

func (m *MockOrderRepository) Update(ctx context.Context, tx *sql.Tx, o *shop.Order) error {
	args := m.Called(ctx, tx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) ListByStatus(ctx context.Context, status shop.OrderStatus, limit int) ([]*shop.Order, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shop.Order), args.Error(1)
}

func (m *MockOrderRepository) ListUnreadForUpdate(ctx context.Context, tx *sql.Tx, userID string) ([]*shop.Order, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shop.Order), args.Error(1)
}

func (m *MockOrderRepository) ListActive(ctx context.Context, userID string) ([]*shop.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*shop.Order), args.Error(1)
}

// MockVisitRepository モック訪問記録リポジトリ
type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) Record(ctx context.Context, userID, visitKey string) error {
	args := m.Called(ctx, userID, visitKey)
	return args.Error(0)
}

func (m *MockVisitRepository) Exists(ctx context.Context, userID, visitKey string) (bool, error) {
	args := m.Called(ctx, userID, visitKey)
	return args.Bool(0), args.Error(1)
}

// MockSettingRepository モックショップ設定リポジトリ
type MockSettingRepository struct {
	mock.Mock
}

func (m *MockSettingRepository) Get(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockSettingRepository) Set(ctx context.Context, name, value string) error {
	args := m.Called(ctx, name, value)
	return args.Error(0)
}

// MockTransactionManager モックトランザクションマネージャー
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	args := m.Called(ctx, fn)
	if fn != nil {
		return fn(nil)
	}
	return args.Error(0)
}
