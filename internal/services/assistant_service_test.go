package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finance-api/internal/config"
	"finance-api/internal/dto"
	"finance-api/internal/models"
	"finance-api/internal/repositories/repository_mocks"
	"finance-api/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type AssistantServiceTestSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	auditLogger     *service_mocks.MockAuditLoggerInterface
	metrics         *service_mocks.MockMetricsRecorderInterface
	breaker         CircuitBreakerInterface
	server          *httptest.Server
	handler         http.HandlerFunc
	cfg             *config.AssistantConfig
	userID          uuid.UUID
}

func (s *AssistantServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.auditLogger = service_mocks.NewMockAuditLoggerInterface(s.ctrl)
	s.metrics = service_mocks.NewMockMetricsRecorderInterface(s.ctrl)
	s.breaker = NewCircuitBreaker(CircuitBreakerConfig{
		Name:            "assistant",
		MaxFailures:     2,
		ResetTimeout:    time.Minute,
		HalfOpenMaxSucc: 1,
	}, nil, nil)
	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.handler(w, r)
	}))
	s.cfg = &config.AssistantConfig{
		BaseURL:     s.server.URL + "/v1",
		APIKey:      "test-key",
		Model:       "gpt-test",
		Temperature: 0.7,
		Timeout:     5 * time.Second,
	}
	s.userID = uuid.New()

	s.metrics.EXPECT().RecordGauge(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	s.metrics.EXPECT().RecordProcessingTime(gomock.Any(), gomock.Any()).AnyTimes()
}

func (s *AssistantServiceTestSuite) TearDownTest() {
	s.server.Close()
	s.ctrl.Finish()
}

func TestAssistantServiceSuite(t *testing.T) {
	suite.Run(t, new(AssistantServiceTestSuite))
}

func (s *AssistantServiceTestSuite) newService() AssistantServiceInterface {
	return NewAssistantService(s.cfg, s.transactionRepo, s.breaker, s.auditLogger, s.metrics, slog.Default())
}

func (s *AssistantServiceTestSuite) expectOutcome(status string) {
	s.metrics.EXPECT().IncrementCounter("assistant_request", map[string]string{"status": status}).Times(1)
}

func (s *AssistantServiceTestSuite) ledger() []models.Transaction {
	return []models.Transaction{
		{
			Date:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			Amount:   decimal.RequireFromString("2500"),
			Type:     models.TypeIncome,
			Category: &models.Category{Name: "Salary"},
		},
		{
			Date:   time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
			Amount: decimal.RequireFromString("12.5"),
			Type:   models.TypeExpense,
		},
	}
}

func writeCompletion(w http.ResponseWriter, content string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.ChatCompletionResponse{
		ID:    "chatcmpl-1",
		Model: "gpt-test",
		Choices: []dto.ChatCompletionChoice{
			{Index: 0, Message: dto.ChatMessage{Role: "assistant", Content: content}, FinishReason: "stop"},
		},
	})
}

func (s *AssistantServiceTestSuite) TestAsk_Success() {
	var received dto.ChatCompletionRequest
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Equal(http.MethodPost, r.Method)
		s.Equal("/v1/chat/completions", r.URL.Path)
		s.Equal("Bearer test-key", r.Header.Get("Authorization"))
		s.Equal("application/json", r.Header.Get("Content-Type"))
		s.NoError(json.NewDecoder(r.Body).Decode(&received))
		writeCompletion(w, "  You spent 12.50 this month.\n")
	}

	s.transactionRepo.EXPECT().ListByUser(s.userID).Return(s.ledger(), nil).Times(1)
	s.expectOutcome("success")
	s.auditLogger.EXPECT().LogAssistantRequest(gomock.Any(), s.userID, 2, gomock.Any()).Times(1)

	answer, err := s.newService().Ask(context.Background(), s.userID, "How much did I spend?")

	s.Require().NoError(err)
	s.Equal("You spent 12.50 this month.", answer)
	s.Equal("gpt-test", received.Model)
	s.InDelta(0.7, received.Temperature, 0.0001)
	s.Require().Len(received.Messages, 1)
	s.Equal("user", received.Messages[0].Role)
	s.Contains(received.Messages[0].Content, "Date: 2024-03-01, Amount: 2500.00, Type: Income, Category: Salary\n")
	s.Contains(received.Messages[0].Content, "Date: 2024-03-02, Amount: 12.50, Type: Expense, Category: N/A\n")
	s.True(strings.HasSuffix(received.Messages[0].Content, "User's question: How much did I spend?\n"))
}

func (s *AssistantServiceTestSuite) TestAsk_UpstreamErrorCarriesProviderMessage() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`))
	}

	s.transactionRepo.EXPECT().ListByUser(s.userID).Return(nil, nil).Times(1)
	s.expectOutcome("failed")
	s.auditLogger.EXPECT().LogAssistantFailure(gomock.Any(), s.userID, http.StatusTooManyRequests, gomock.Any(), gomock.Any()).Times(1)

	_, err := s.newService().Ask(context.Background(), s.userID, "hi")

	var upstreamErr *UpstreamError
	s.Require().True(errors.As(err, &upstreamErr))
	s.Equal(http.StatusTooManyRequests, upstreamErr.StatusCode)
	s.Equal("Rate limit reached", upstreamErr.Payload)
	s.Equal(1, s.breaker.GetFailureCount())
}

func (s *AssistantServiceTestSuite) TestAsk_UpstreamErrorRawBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded\n"))
	}

	s.transactionRepo.EXPECT().ListByUser(s.userID).Return(nil, nil).Times(1)
	s.expectOutcome("failed")
	s.auditLogger.EXPECT().LogAssistantFailure(gomock.Any(), s.userID, http.StatusBadGateway, gomock.Any(), gomock.Any()).Times(1)

	_, err := s.newService().Ask(context.Background(), s.userID, "hi")

	var upstreamErr *UpstreamError
	s.Require().True(errors.As(err, &upstreamErr))
	s.Equal("upstream exploded", upstreamErr.Payload)
	s.Contains(upstreamErr.Error(), "502")
}

func (s *AssistantServiceTestSuite) TestAsk_EmptyChoices() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"x","choices":[]}`))
	}

	s.transactionRepo.EXPECT().ListByUser(s.userID).Return(nil, nil).Times(1)
	s.expectOutcome("failed")
	s.auditLogger.EXPECT().LogAssistantFailure(gomock.Any(), s.userID, http.StatusOK, gomock.Any(), gomock.Any()).Times(1)

	_, err := s.newService().Ask(context.Background(), s.userID, "hi")

	s.ErrorIs(err, ErrEmptyCompletion)
}

func (s *AssistantServiceTestSuite) TestAsk_MalformedBody() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}

	s.transactionRepo.EXPECT().ListByUser(s.userID).Return(nil, nil).Times(1)
	s.expectOutcome("failed")
	s.auditLogger.EXPECT().LogAssistantFailure(gomock.Any(), s.userID, http.StatusOK, gomock.Any(), gomock.Any()).Times(1)

	_, err := s.newService().Ask(context.Background(), s.userID, "hi")

	var upstreamErr *UpstreamError
	s.Require().True(errors.As(err, &upstreamErr))
	s.Contains(upstreamErr.Error(), "decode completion")
}

func (s *AssistantServiceTestSuite) TestAsk_TransportFailure() {
	s.server.Close()

	s.transactionRepo.EXPECT().ListByUser(s.userID).Return(nil, nil).Times(1)
	s.expectOutcome("failed")
	s.auditLogger.EXPECT().LogAssistantFailure(gomock.Any(), s.userID, 0, gomock.Any(), gomock.Any()).Times(1)

	_, err := s.newService().Ask(context.Background(), s.userID, "hi")

	var upstreamErr *UpstreamError
	s.Require().True(errors.As(err, &upstreamErr))
	s.Zero(upstreamErr.StatusCode)
}

func (s *AssistantServiceTestSuite) TestAsk_CancelledRequestDoesNotTripBreaker() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		writeCompletion(w, "too late")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s.transactionRepo.EXPECT().ListByUser(s.userID).Return(s.ledger(), nil).Times(3)
	s.metrics.EXPECT().IncrementCounter("assistant_request", map[string]string{"status": "cancelled"}).Times(3)

	service := s.newService()
	for i := 0; i < 3; i++ {
		_, err := service.Ask(ctx, s.userID, "hi")
		s.ErrorIs(err, context.Canceled)
	}

	s.False(s.breaker.IsOpen())
}

func (s *AssistantServiceTestSuite) TestAsk_NotConfigured() {
	s.cfg.APIKey = ""
	s.expectOutcome("not_configured")

	_, err := s.newService().Ask(context.Background(), s.userID, "hi")

	s.ErrorIs(err, ErrAssistantNotConfigured)
}

func (s *AssistantServiceTestSuite) TestAsk_OpenCircuitSkipsUpstream() {
	s.handler = func(w http.ResponseWriter, r *http.Request) {
		s.Fail("upstream must not be called while the circuit is open")
	}
	s.breaker.RecordFailure()
	s.breaker.RecordFailure()
	s.expectOutcome("circuit_open")

	_, err := s.newService().Ask(context.Background(), s.userID, "hi")

	s.ErrorIs(err, ErrAssistantUnavailable)
}

func (s *AssistantServiceTestSuite) TestAsk_LedgerFailureIsNotUpstream() {
	s.transactionRepo.EXPECT().ListByUser(s.userID).Return(nil, errors.New("database is closed")).Times(1)

	_, err := s.newService().Ask(context.Background(), s.userID, "hi")

	s.Error(err)
	var upstreamErr *UpstreamError
	s.False(errors.As(err, &upstreamErr))
}

func (s *AssistantServiceTestSuite) TestBuildPrompt_EmptyLedger() {
	prompt := BuildPrompt(nil, "Am I saving?")

	s.Equal("You are an AI financial assistant. Based on the following transaction data, answer the user's question.\n"+
		"Transactions:\n"+
		"\nUser's question: Am I saving?\n", prompt)
}

func (s *AssistantServiceTestSuite) TestFormatTransactionLine() {
	line := FormatTransactionLine(models.Transaction{
		Date:     time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Amount:   decimal.RequireFromString("7"),
		Type:     models.TypeExpense,
		Category: &models.Category{Name: "Coffee"},
	})

	s.Equal("Date: 2024-12-31, Amount: 7.00, Type: Expense, Category: Coffee", line)
}
