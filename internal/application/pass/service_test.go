package pass

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"coin-server/internal/domain/dailyclaim"
	"coin-server/internal/domain/pass"
	"coin-server/internal/domain/service"
	"coin-server/internal/domain/transaction"
	"coin-server/internal/domain/user"
	"coin-server/internal/domain/wallet"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
)

// MockStateRepository モックパス状態リポジトリ
type MockStateRepository struct {
	mock.Mock
}

func (m *MockStateRepository) Find(ctx context.Context, userID string) (*pass.State, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pass.State), args.Error(1)
}

func (m *MockStateRepository) FindForUpdate(ctx context.Context, tx *sql.Tx, userID string) (*pass.State, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pass.State), args.Error(1)
}

func (m *MockStateRepository) Save(ctx context.Context, tx *sql.Tx, s *pass.State) error {
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

// MockVisitRepository モックショップ訪問リポジトリ
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

// MockTransactionManager モックトランザクションマネージャー
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	args := m.Called(ctx, fn)
	// 実際のトランザクションは使わず、関数を直接実行
	if fn != nil {
		return fn(nil)
	}
	return args.Error(0)
}

type mocks struct {
	stateRepo   *MockStateRepository
	taskLogRepo *MockTaskLogRepository
	walletRepo  *MockWalletRepository
	txnRepo     *MockTransactionRepository
	claimRepo   *MockDailyClaimRepository
	visitRepo   *MockVisitRepository
	userRepo    *MockUserRepository
	txManager   *MockTransactionManager
}

func newMocks() *mocks {
	return &mocks{
		stateRepo:   new(MockStateRepository),
		taskLogRepo: new(MockTaskLogRepository),
		walletRepo:  new(MockWalletRepository),
		txnRepo:     new(MockTransactionRepository),
		claimRepo:   new(MockDailyClaimRepository),
		visitRepo:   new(MockVisitRepository),
		userRepo:    new(MockUserRepository),
		txManager:   new(MockTransactionManager),
	}
}

func (m *mocks) newService(t *testing.T, premiumPrice int64) *PassApplicationService {
	t.Helper()

	// モックロガーとメトリクスを作成（実際の実装を使う）
	tracer := otel.Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)
	ledger := service.NewLedgerService(m.walletRepo, m.txnRepo)

	return NewPassApplicationService(
		m.stateRepo,
		m.taskLogRepo,
		m.walletRepo,
		m.claimRepo,
		m.visitRepo,
		m.userRepo,
		m.txManager,
		ledger,
		premiumPrice,
		logger,
		metrics,
	)
}

func (m *mocks) assertExpectations(t *testing.T) {
	m.stateRepo.AssertExpectations(t)
	m.taskLogRepo.AssertExpectations(t)
	m.walletRepo.AssertExpectations(t)
	m.claimRepo.AssertExpectations(t)
	m.visitRepo.AssertExpectations(t)
	m.userRepo.AssertExpectations(t)
}

func TestPassApplicationService_GetPass(t *testing.T) {
	tests := []struct {
		name       string
		req        *GetPassRequest
		setupMocks func(*mocks)
		checkFunc  func(*testing.T, *GetPassResponse, error)
	}{
		{
			name: "正常系: 既存のパス状態を取得",
			req:  &GetPassRequest{UserID: "user123"},
			setupMocks: func(m *mocks) {
				state := pass.MustNewState("user123", 2600, true, []int{1, 5}, []int{1})
				m.stateRepo.On("Find", mock.Anything, "user123").Return(state, nil)
			},
			checkFunc: func(t *testing.T, got *GetPassResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(2600), got.XP)
				assert.True(t, got.HasPremium)
				assert.Equal(t, 5, got.CompletedLevels)
				assert.Equal(t, 6, got.CurrentLevel)
				assert.Equal(t, int64(100), got.LevelProgress)
				require.Len(t, got.Rewards, pass.MaxLevel)
				assert.True(t, got.Rewards[0].Unlocked)
				assert.True(t, got.Rewards[0].ClaimedFree)
				assert.True(t, got.Rewards[0].ClaimedPremium)
				assert.True(t, got.Rewards[4].ClaimedFree)
				assert.False(t, got.Rewards[5].Unlocked)
			},
		},
		{
			name: "正常系: 状態が無ければ初期状態として返す",
			req:  &GetPassRequest{UserID: "user123"},
			setupMocks: func(m *mocks) {
				m.stateRepo.On("Find", mock.Anything, "user123").Return(nil, pass.ErrStateNotFound)
			},
			checkFunc: func(t *testing.T, got *GetPassResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(0), got.XP)
				assert.False(t, got.HasPremium)
				assert.Equal(t, 1, got.CurrentLevel)
			},
		},
		{
			name: "異常系: 取得エラー",
			req:  &GetPassRequest{UserID: "user123"},
			setupMocks: func(m *mocks) {
				m.stateRepo.On("Find", mock.Anything, "user123").Return(nil, errors.New("database error"))
			},
			checkFunc: func(t *testing.T, got *GetPassResponse, err error) {
				assert.Error(t, err)
				assert.Nil(t, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMocks(m)
			svc := m.newService(t, 5000)

			got, err := svc.GetPass(context.Background(), tt.req)
			tt.checkFunc(t, got, err)

			m.assertExpectations(t)
		})
	}
}

func TestPassApplicationService_PurchasePremium(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*mocks)
		checkFunc  func(*testing.T, *PurchasePremiumResponse, error)
	}{
		{
			name: "正常系: 残高から引き落としてプレミアムを有効化",
			setupMocks: func(m *mocks) {
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				w := wallet.MustNewWallet("user123", 8000, nil)
				m.walletRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(w, nil)
				m.walletRepo.On("Save", mock.Anything, mock.Anything, w).Return(nil)
				m.txnRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				state := pass.MustNewState("user123", 0, false, nil, nil)
				m.stateRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(state, nil)
				m.stateRepo.On("Save", mock.Anything, mock.Anything, state).Return(nil)
			},
			checkFunc: func(t *testing.T, got *PurchasePremiumResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(5000), got.Price)
				assert.Equal(t, int64(3000), got.Balance)
				assert.NotEmpty(t, got.TransactionID)
			},
		},
		{
			name: "異常系: 残高不足",
			setupMocks: func(m *mocks) {
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				w := wallet.MustNewWallet("user123", 1000, nil)
				m.walletRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(w, nil)
			},
			checkFunc: func(t *testing.T, got *PurchasePremiumResponse, err error) {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, wallet.ErrInsufficientBalance)
			},
		},
		{
			name: "異常系: 既にプレミアム所有（引き落としはロールバックされる）",
			setupMocks: func(m *mocks) {
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				w := wallet.MustNewWallet("user123", 8000, nil)
				m.walletRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(w, nil)
				m.walletRepo.On("Save", mock.Anything, mock.Anything, w).Return(nil)
				m.txnRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				state := pass.MustNewState("user123", 0, true, nil, nil)
				m.stateRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(state, nil)
			},
			checkFunc: func(t *testing.T, got *PurchasePremiumResponse, err error) {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, pass.ErrAlreadyPremium)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMocks(m)
			svc := m.newService(t, 5000)

			got, err := svc.PurchasePremium(context.Background(), &PurchasePremiumRequest{UserID: "user123"})
			tt.checkFunc(t, got, err)

			m.assertExpectations(t)
		})
	}
}

func TestPassApplicationService_ClaimReward(t *testing.T) {
	tests := []struct {
		name       string
		req        *ClaimRewardRequest
		setupMocks func(*mocks)
		checkFunc  func(*testing.T, *ClaimRewardResponse, error)
	}{
		{
			name: "正常系: 解放済みの無料報酬を受け取る",
			req:  &ClaimRewardRequest{UserID: "user123", Level: 1, Tier: "free"},
			setupMocks: func(m *mocks) {
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				w := wallet.MustNewWallet("user123", 1000, nil)
				m.walletRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(w, nil)
				m.walletRepo.On("Save", mock.Anything, mock.Anything, w).Return(nil)
				m.txnRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				state := pass.MustNewState("user123", 500, false, nil, nil)
				m.stateRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(state, nil)
				m.stateRepo.On("Save", mock.Anything, mock.Anything, state).Return(nil)
			},
			checkFunc: func(t *testing.T, got *ClaimRewardResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(50), got.Coins)
				assert.Equal(t, int64(1050), got.Balance)
			},
		},
		{
			name: "異常系: 無効なティア",
			req:  &ClaimRewardRequest{UserID: "user123", Level: 1, Tier: "gold"},
			setupMocks: func(m *mocks) {},
			checkFunc: func(t *testing.T, got *ClaimRewardResponse, err error) {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, pass.ErrInvalidTier)
			},
		},
		{
			name: "異常系: 必要XPに達していない",
			req:  &ClaimRewardRequest{UserID: "user123", Level: 2, Tier: "free"},
			setupMocks: func(m *mocks) {
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				w := wallet.MustNewWallet("user123", 1000, nil)
				m.walletRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(w, nil)
				state := pass.MustNewState("user123", 500, false, nil, nil)
				m.stateRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(state, nil)
			},
			checkFunc: func(t *testing.T, got *ClaimRewardResponse, err error) {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, pass.ErrRewardLocked)
			},
		},
		{
			name: "異常系: 受取済みの報酬",
			req:  &ClaimRewardRequest{UserID: "user123", Level: 1, Tier: "free"},
			setupMocks: func(m *mocks) {
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				w := wallet.MustNewWallet("user123", 1000, nil)
				m.walletRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(w, nil)
				state := pass.MustNewState("user123", 500, false, []int{1}, nil)
				m.stateRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(state, nil)
			},
			checkFunc: func(t *testing.T, got *ClaimRewardResponse, err error) {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, pass.ErrRewardAlreadyClaimed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMocks(m)
			svc := m.newService(t, 5000)

			got, err := svc.ClaimReward(context.Background(), tt.req)
			tt.checkFunc(t, got, err)

			m.assertExpectations(t)
		})
	}
}

func TestPassApplicationService_CompleteTask(t *testing.T) {
	discordID := "discord123"

	tests := []struct {
		name       string
		req        *CompleteTaskRequest
		setupMocks func(*mocks)
		checkFunc  func(*testing.T, *CompleteTaskResponse, error)
	}{
		{
			name: "正常系: デイリー受取タスクを完了してXPを獲得",
			req:  &CompleteTaskRequest{UserID: "user123", TaskID: "daily_claim"},
			setupMocks: func(m *mocks) {
				m.claimRepo.On("Exists", mock.Anything, "user123", mock.Anything).Return(true, nil)
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				l := pass.MustNewTaskLog("user123", "daily_claim", 0, nil)
				m.taskLogRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123", "daily_claim").Return(l, nil)
				m.taskLogRepo.On("Upsert", mock.Anything, mock.Anything, l).Return(nil)
				state := pass.MustNewState("user123", 450, false, nil, nil)
				m.stateRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(state, nil)
				m.stateRepo.On("Save", mock.Anything, mock.Anything, state).Return(nil)
			},
			checkFunc: func(t *testing.T, got *CompleteTaskResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(100), got.XPAwarded)
				assert.Equal(t, int64(550), got.XP)
				assert.Equal(t, 1, got.CompletedLevels)
			},
		},
		{
			name: "正常系: Discord連携タスクを完了",
			req:  &CompleteTaskRequest{UserID: "user123", TaskID: "link_discord"},
			setupMocks: func(m *mocks) {
				linked, err := user.NewUser("user123", "user@example.com", "alice", user.RoleUser, &discordID)
				if err != nil {
					panic(err)
				}
				m.userRepo.On("FindByUserID", mock.Anything, "user123").Return(linked, nil)
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				l := pass.MustNewTaskLog("user123", "link_discord", 0, nil)
				m.taskLogRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123", "link_discord").Return(l, nil)
				m.taskLogRepo.On("Upsert", mock.Anything, mock.Anything, l).Return(nil)
				state := pass.MustNewState("user123", 0, false, nil, nil)
				m.stateRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(state, nil)
				m.stateRepo.On("Save", mock.Anything, mock.Anything, state).Return(nil)
			},
			checkFunc: func(t *testing.T, got *CompleteTaskResponse, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(300), got.XPAwarded)
			},
		},
		{
			name:       "異常系: 存在しないタスク",
			req:        &CompleteTaskRequest{UserID: "user123", TaskID: "unknown_task"},
			setupMocks: func(m *mocks) {},
			checkFunc: func(t *testing.T, got *CompleteTaskResponse, err error) {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, pass.ErrUnknownTask)
			},
		},
		{
			name: "異常系: デイリー受取の証跡が無い",
			req:  &CompleteTaskRequest{UserID: "user123", TaskID: "daily_claim"},
			setupMocks: func(m *mocks) {
				m.claimRepo.On("Exists", mock.Anything, "user123", mock.Anything).Return(false, nil)
			},
			checkFunc: func(t *testing.T, got *CompleteTaskResponse, err error) {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, pass.ErrTaskPreconditionNotMet)
			},
		},
		{
			name: "異常系: Discord未連携",
			req:  &CompleteTaskRequest{UserID: "user123", TaskID: "link_discord"},
			setupMocks: func(m *mocks) {
				unlinked, err := user.NewUser("user123", "user@example.com", "alice", user.RoleUser, nil)
				if err != nil {
					panic(err)
				}
				m.userRepo.On("FindByUserID", mock.Anything, "user123").Return(unlinked, nil)
			},
			checkFunc: func(t *testing.T, got *CompleteTaskResponse, err error) {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, pass.ErrTaskPreconditionNotMet)
			},
		},
		{
			name: "異常系: 一度きりタスクの再完了",
			req:  &CompleteTaskRequest{UserID: "user123", TaskID: "link_discord"},
			setupMocks: func(m *mocks) {
				linked, err := user.NewUser("user123", "user@example.com", "alice", user.RoleUser, &discordID)
				if err != nil {
					panic(err)
				}
				m.userRepo.On("FindByUserID", mock.Anything, "user123").Return(linked, nil)
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				l := pass.MustNewTaskLog("user123", "link_discord", 1, nil)
				m.taskLogRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123", "link_discord").Return(l, nil)
			},
			checkFunc: func(t *testing.T, got *CompleteTaskResponse, err error) {
				assert.Nil(t, got)
				assert.ErrorIs(t, err, pass.ErrTaskAlreadyCompleted)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMocks()
			tt.setupMocks(m)
			svc := m.newService(t, 5000)

			got, err := svc.CompleteTask(context.Background(), tt.req)
			tt.checkFunc(t, got, err)

			m.assertExpectations(t)
		})
	}
}

func TestPassApplicationService_ListTasks(t *testing.T) {
	m := newMocks()
	logs := []*pass.TaskLog{
		pass.MustNewTaskLog("user123", "link_discord", 1, nil),
	}
	m.taskLogRepo.On("ListByUserID", mock.Anything, "user123").Return(logs, nil)
	svc := m.newService(t, 5000)

	got, err := svc.ListTasks(context.Background(), &ListTasksRequest{UserID: "user123"})

	require.NoError(t, err)
	require.Len(t, got.Tasks, len(pass.Tasks()))
	byID := make(map[string]TaskView, len(got.Tasks))
	for _, v := range got.Tasks {
		byID[v.ID] = v
	}
	// 一度きりタスクは完了済みなので再完了不可
	assert.Equal(t, 1, byID["link_discord"].CompletedCount)
	assert.False(t, byID["link_discord"].CompletableNow)
	// 未完了のデイリータスクは完了可能
	assert.Equal(t, 0, byID["daily_claim"].CompletedCount)
	assert.True(t, byID["daily_claim"].CompletableNow)

	m.assertExpectations(t)
}
