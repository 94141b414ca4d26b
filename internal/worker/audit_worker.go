package worker

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/social-api/internal/config"
	"github.com/spec-kit/social-api/internal/events"
)

// AuditRecorder appends auth events to a capped Redis list so recent
// authentication activity can be inspected without a database round trip.
type AuditRecorder struct {
	client     *redis.Client
	key        string
	maxEntries int64
	logger     *zap.Logger
}

// NewAuditRecorder builds a recorder over the shared Redis client.
func NewAuditRecorder(client *redis.Client, cfg config.AuditConfig, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{
		client:     client,
		key:        cfg.Key,
		maxEntries: cfg.MaxEntries,
		logger:     logger,
	}
}

// Record serializes the event and pushes it onto the audit list,
// trimming to the configured cap.
func (r *AuditRecorder) Record(ctx context.Context, event events.Event) error {
	if r == nil || r.client == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.LPush(ctx, r.key, data)
	if r.maxEntries > 0 {
		pipe.LTrim(ctx, r.key, 0, r.maxEntries-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		r.logger.Warn("audit record failed", zap.Error(err))
		return err
	}
	return nil
}

// StartAuditWorker subscribes the recorder to every auth event type.
func StartAuditWorker(dispatcher events.Dispatcher, recorder *AuditRecorder) {
	if dispatcher == nil || recorder == nil {
		return
	}

	types := []events.EventType{
		events.EventLoginSucceeded,
		events.EventLoginFailed,
		events.EventAccountRegistered,
		events.EventTokenRefreshed,
		events.EventLogout,
		events.EventAuthRejected,
	}
	for _, eventType := range types {
		dispatcher.Subscribe(eventType, recorder.Record)
	}
}
