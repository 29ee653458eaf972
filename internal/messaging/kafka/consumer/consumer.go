package consumer

import (
	"context"
	"encoding/json"
	"strings"

	"go-directory/internal/bootstrap"
	"go-directory/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is satisfied by *kafkago.Reader.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeDirectoryLifecycle writes every directory lifecycle event to the
// audit log. Undecodable messages are committed and skipped.
func ConsumeDirectoryLifecycle(
	ctx context.Context,
	reader MessageReader,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.directory_lifecycle")
	log.Info("directory lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("directory lifecycle consumer stopped")
				return
			}
			log.Error("fetch directory lifecycle message failed", zap.Error(err))
			continue
		}

		if err := HandleMessage(ctx, msg, audit); err != nil {
			log.Error("decode directory lifecycle event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit directory lifecycle message failed", zap.Error(err))
		}
	}
}

// HandleMessage decodes one lifecycle message and records it.
func HandleMessage(ctx context.Context, msg kafkago.Message, audit bootstrap.AuditLogger) error {
	var envelope events.Envelope
	if err := json.Unmarshal(msg.Value, &envelope); err != nil {
		return err
	}

	meta := map[string]any{}
	if err := json.Unmarshal(msg.Value, &meta); err != nil {
		return err
	}
	for _, h := range msg.Headers {
		if h.Key == "request_id" && len(h.Value) > 0 {
			meta["request_id"] = string(h.Value)
		}
	}

	audit.Log(ctx, bootstrap.AuditLog{
		Action:  strings.ToUpper(envelope.EventType),
		Message: "directory " + strings.ReplaceAll(envelope.EventType, "_", " "),
		Meta:    meta,
	})
	return nil
}
