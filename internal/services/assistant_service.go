package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"finance-api/internal/config"
	"finance-api/internal/dto"
	"finance-api/internal/models"
	"finance-api/internal/repositories"

	"github.com/google/uuid"
)

const (
	chatCompletionsPath = "/chat/completions"
	notApplicable       = "N/A"

	// maxUpstreamBody caps how much of an upstream response is read into memory
	maxUpstreamBody = 1 << 20
)

var (
	ErrAssistantUnavailable   = errors.New("assistant is temporarily unavailable")
	ErrAssistantNotConfigured = errors.New("assistant API key is not configured")
	ErrEmptyCompletion        = errors.New("completion contained no choices")
)

// UpstreamError reports a failed chat completion call. StatusCode is zero for transport failures.
type UpstreamError struct {
	StatusCode int
	Payload    string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("chat completion failed with status %d: %v", e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("chat completion failed with status %d: %s", e.StatusCode, e.Payload)
	default:
		return fmt.Sprintf("chat completion failed: %v", e.Err)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// AuthTransport adds the API key and JSON content type to every outgoing request
type AuthTransport struct {
	apiKey string
	base   http.RoundTripper
}

func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())

	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", "application/json")

	return t.base.RoundTrip(req)
}

// AssistantService answers questions about a user's ledger through a chat completions endpoint
type AssistantService struct {
	config          *config.AssistantConfig
	client          *http.Client
	transactionRepo repositories.TransactionRepositoryInterface
	breaker         CircuitBreakerInterface
	auditLogger     AuditLoggerInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAssistantService creates a new assistant service
func NewAssistantService(
	cfg *config.AssistantConfig,
	transactionRepo repositories.TransactionRepositoryInterface,
	breaker CircuitBreakerInterface,
	auditLogger AuditLoggerInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AssistantServiceInterface {

	transport := &AuthTransport{
		apiKey: cfg.APIKey,
		base:   http.DefaultTransport,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout,
	}

	return &AssistantService{
		config:          cfg,
		client:          client,
		transactionRepo: transactionRepo,
		breaker:         breaker,
		auditLogger:     auditLogger,
		metrics:         metrics,
		logger:          logger,
	}
}

// Ask embeds the user's transactions and question in a prompt and returns the model's answer
func (s *AssistantService) Ask(ctx context.Context, userID uuid.UUID, query string) (string, error) {
	if s.config.APIKey == "" {
		s.recordOutcome("not_configured")
		return "", &UpstreamError{Err: ErrAssistantNotConfigured}
	}

	if s.breaker.IsOpen() {
		s.recordOutcome("circuit_open")
		return "", &UpstreamError{Err: ErrAssistantUnavailable}
	}

	transactions, err := s.transactionRepo.ListByUser(userID)
	if err != nil {
		return "", fmt.Errorf("failed to load transactions: %w", err)
	}

	prompt := BuildPrompt(transactions, query)
	if s.metrics != nil {
		s.metrics.RecordGauge("assistant_prompt_transactions", float64(len(transactions)), nil)
	}

	req, err := s.buildRequest(ctx, http.MethodPost, chatCompletionsPath, dto.ChatCompletionRequest{
		Model:       s.config.Model,
		Messages:    []dto.ChatMessage{{Role: "user", Content: prompt}},
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return "", err
	}

	start := time.Now()
	answer, err := s.complete(req)
	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecordProcessingTime("assistant_request", elapsed)
	}

	if err != nil {
		// A client that gave up says nothing about the upstream's health
		if ctx.Err() != nil {
			s.recordOutcome("cancelled")
			s.logger.Info("assistant request cancelled", "user_id", userID, "error", ctx.Err())
			return "", err
		}

		s.breaker.RecordFailure()
		s.recordOutcome("failed")

		var upstreamErr *UpstreamError
		statusCode := 0
		if errors.As(err, &upstreamErr) {
			statusCode = upstreamErr.StatusCode
		}
		s.auditLogger.LogAssistantFailure(ctx, userID, statusCode, err.Error(), elapsed.Milliseconds())
		return "", err
	}

	s.breaker.RecordSuccess()
	s.recordOutcome("success")
	s.auditLogger.LogAssistantRequest(ctx, userID, len(transactions), elapsed.Milliseconds())

	return answer, nil
}

// BuildPrompt renders the fixed assistant prompt: one line per transaction, then the question
func BuildPrompt(transactions []models.Transaction, query string) string {
	var b strings.Builder
	b.WriteString("You are an AI financial assistant. Based on the following transaction data, answer the user's question.\n")
	b.WriteString("Transactions:\n")
	for _, t := range transactions {
		b.WriteString(FormatTransactionLine(t))
		b.WriteByte('\n')
	}
	b.WriteString("\nUser's question: ")
	b.WriteString(query)
	b.WriteByte('\n')
	return b.String()
}

// FormatTransactionLine renders a transaction as "Date: ..., Amount: ..., Type: ..., Category: ..."
func FormatTransactionLine(t models.Transaction) string {
	category := notApplicable
	if t.Category != nil && t.Category.Name != "" {
		category = t.Category.Name
	}
	return fmt.Sprintf("Date: %s, Amount: %s, Type: %s, Category: %s",
		t.Date.Format(models.DateLayout), t.Amount.StringFixed(2), t.Type, category)
}

func (s *AssistantService) buildRequest(
	ctx context.Context,
	method, path string,
	body any,
) (*http.Request, error) {

	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		method,
		s.config.BaseURL+path,
		buf,
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	return req, nil
}

func (s *AssistantService) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error(
			"chat completion request failed",
			"method", req.Method,
			"url", req.URL.String(),
			"error", err,
		)
		return nil, nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	resp.Body.Close()

	if err != nil {
		return nil, nil, fmt.Errorf("read response body: %w", err)
	}

	return resp, body, nil
}

func (s *AssistantService) complete(req *http.Request) (string, error) {
	resp, body, err := s.do(req)
	if err != nil {
		return "", &UpstreamError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		payload := upstreamErrorPayload(body)
		s.logger.Error(
			"chat completion error",
			"status", resp.StatusCode,
			"payload", payload,
		)
		return "", &UpstreamError{StatusCode: resp.StatusCode, Payload: payload}
	}

	var completion dto.ChatCompletionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Err: fmt.Errorf("decode completion: %w", err)}
	}

	if len(completion.Choices) == 0 {
		return "", &UpstreamError{StatusCode: resp.StatusCode, Err: ErrEmptyCompletion}
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// upstreamErrorPayload prefers the provider's error message, falling back to the raw body
func upstreamErrorPayload(body []byte) string {
	var errResp dto.ChatCompletionErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return strings.TrimSpace(string(body))
}

func (s *AssistantService) recordOutcome(status string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("assistant_request", map[string]string{"status": status})
}
