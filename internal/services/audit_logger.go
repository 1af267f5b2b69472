package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

// WithTraceID returns a copy of ctx carrying the request trace id for log correlation
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace id stored by WithTraceID, or ""
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if traceID, ok := ctx.Value(traceIDKey).(string); ok {
		return traceID
	}
	return ""
}

type AuditLogger struct {
	logger *slog.Logger
}

func NewAuditLogger(logger *slog.Logger) AuditLoggerInterface {
	return &AuditLogger{
		logger: logger,
	}
}

func (al *AuditLogger) LogLedgerChange(ctx context.Context, entity, action string, userID, entityID uuid.UUID) {
	al.logger.InfoContext(ctx, "ledger change",
		slog.String("event_type", entity+"_"+action),
		slog.String("user_id", userID.String()),
		slog.String("entity_id", entityID.String()),
		slog.Time("timestamp", time.Now()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (al *AuditLogger) LogCategoryResolved(ctx context.Context, userID uuid.UUID, categoryName, entryType string) {
	al.logger.DebugContext(ctx, "category resolved",
		slog.String("event_type", "category_resolved"),
		slog.String("user_id", userID.String()),
		slog.String("category", categoryName),
		slog.String("type", entryType),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (al *AuditLogger) LogAssistantRequest(ctx context.Context, userID uuid.UUID, transactionCount int, durationMs int64) {
	al.logger.InfoContext(ctx, "assistant request completed",
		slog.String("event_type", "assistant_request_completed"),
		slog.String("user_id", userID.String()),
		slog.Int("transaction_count", transactionCount),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (al *AuditLogger) LogAssistantFailure(ctx context.Context, userID uuid.UUID, statusCode int, errorMsg string, durationMs int64) {
	al.logger.WarnContext(ctx, "assistant request failed",
		slog.String("event_type", "assistant_request_failed"),
		slog.String("user_id", userID.String()),
		slog.Int("upstream_status", statusCode),
		slog.String("error", errorMsg),
		slog.Int64("duration_ms", durationMs),
		slog.Time("timestamp", time.Now()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}

func (al *AuditLogger) LogCircuitBreakerStateChange(ctx context.Context, service string, oldState, newState string) {
	al.logger.WarnContext(ctx, "circuit breaker state change",
		slog.String("event_type", "circuit_breaker_state_change"),
		slog.String("service", service),
		slog.String("old_state", oldState),
		slog.String("new_state", newState),
		slog.Time("timestamp", time.Now()),
		slog.String("trace_id", TraceIDFromContext(ctx)),
	)
}
