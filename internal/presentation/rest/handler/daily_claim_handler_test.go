package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	dailyclaimapp "coin-server/internal/application/dailyclaim"
	"coin-server/internal/domain/dailyclaim"
	"coin-server/internal/domain/service"
	"coin-server/internal/domain/wallet"
	otelinfra "coin-server/internal/infrastructure/observability/otel"
	restmiddleware "coin-server/internal/presentation/rest/middleware"
)

type dailyClaimHandlerMocks struct {
	claimRepo  *MockDailyClaimRepository
	walletRepo *MockWalletRepository
	txnRepo    *MockTransactionRepository
	txManager  *MockTransactionManager
}

func newDailyClaimHandler(t *testing.T) (*DailyClaimHandler, *dailyClaimHandlerMocks) {
	t.Helper()
	m := &dailyClaimHandlerMocks{
		claimRepo:  new(MockDailyClaimRepository),
		walletRepo: new(MockWalletRepository),
		txnRepo:    new(MockTransactionRepository),
		txManager:  new(MockTransactionManager),
	}
	tracer := noop.NewTracerProvider().Tracer("test")
	logger := otelinfra.NewLogger(tracer)
	metrics, err := otelinfra.NewMetrics("test")
	require.NoError(t, err)
	ledger := service.NewLedgerService(m.walletRepo, m.txnRepo)

	appService := dailyclaimapp.NewDailyClaimApplicationService(
		m.claimRepo,
		m.walletRepo,
		m.txManager,
		ledger,
		100,
		logger,
		metrics,
	)
	return NewDailyClaimHandler(appService), m
}

func TestDailyClaimHandler_Claim(t *testing.T) {
	tests := []struct {
		name           string
		tokenUserID    string
		setupMocks     func(m *dailyClaimHandlerMocks)
		expectedStatus int
		checkFunc      func(t *testing.T, body []byte)
	}{
		{
			name:        "正常系: デイリー報酬受取成功",
			tokenUserID: "user123",
			setupMocks: func(m *dailyClaimHandlerMocks) {
				w := wallet.MustNewWallet("user123", 500, nil)
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				m.walletRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(w, nil)
				m.walletRepo.On("Save", mock.Anything, mock.Anything, w).Return(nil)
				m.claimRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(nil)
				m.txnRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(nil)
			},
			expectedStatus: http.StatusOK,
			checkFunc: func(t *testing.T, body []byte) {
				var response ClaimResponse
				require.NoError(t, json.Unmarshal(body, &response))
				assert.True(t, response.Success)
				assert.Equal(t, int64(100), response.Amount)
				assert.Equal(t, int64(600), response.Balance)
				assert.Greater(t, response.NextClaimInMs, int64(0))
			},
		},
		{
			name:        "異常系: 本日分は受取済み",
			tokenUserID: "user123",
			setupMocks: func(m *dailyClaimHandlerMocks) {
				w := wallet.MustNewWallet("user123", 600, nil)
				m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
				m.claimRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(dailyclaim.ErrAlreadyClaimed)
				m.walletRepo.On("Find", mock.Anything, "user123").Return(w, nil)
			},
			expectedStatus: http.StatusConflict,
			checkFunc: func(t *testing.T, body []byte) {
				var response map[string]interface{}
				require.NoError(t, json.Unmarshal(body, &response))
				assert.Equal(t, "already_claimed", response["error"])
				assert.Equal(t, float64(600), response["balance"])
			},
		},
		{
			name:           "異常系: user_idがトークンにない",
			tokenUserID:    "",
			setupMocks:     func(m *dailyClaimHandlerMocks) {},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, m := newDailyClaimHandler(t)
			tt.setupMocks(m)

			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/me/daily-claim", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.tokenUserID != "" {
				c.Set(restmiddleware.ContextKeyUserID, tt.tokenUserID)
			}

			invokeHandler(t, c, handler.Claim)
			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.checkFunc != nil {
				tt.checkFunc(t, rec.Body.Bytes())
			}

			m.claimRepo.AssertExpectations(t)
			m.walletRepo.AssertExpectations(t)
		})
	}
}

func TestDailyClaimHandler_Claim_受取日時はRFC3339で返る(t *testing.T) {
	handler, m := newDailyClaimHandler(t)

	w := wallet.MustNewWallet("user123", 0, nil)
	m.txManager.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
	m.walletRepo.On("FindForUpdate", mock.Anything, mock.Anything, "user123").Return(w, nil)
	m.walletRepo.On("Save", mock.Anything, mock.Anything, w).Return(nil)
	m.claimRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	m.txnRepo.On("Insert", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/me/daily-claim", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(restmiddleware.ContextKeyUserID, "user123")

	invokeHandler(t, c, handler.Claim)
	require.Equal(t, http.StatusOK, rec.Code)

	var response ClaimResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	claimedAt, err := time.Parse(time.RFC3339, response.ClaimedAt)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), claimedAt, time.Minute)
}
