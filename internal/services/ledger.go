package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/segmentio/kafka-go"
)

// ErrLedgerAppend is returned when a completed transaction could not be
// recorded. The caller must treat the whole flow as failed: no partial
// records, no success message.
var ErrLedgerAppend = errors.New("failed to record transaction")

// TransactionAppender appends transaction records to durable storage.
type TransactionAppender interface {
	Append(ctx context.Context, txn models.TransactionDB) error
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// LedgerService records completed transactions and publishes them to
// Kafka for downstream consumers. The Kafka publish is best-effort; the
// durable append is the source of truth.
type LedgerService struct {
	appender    TransactionAppender
	kafkaWriter KafkaWriter
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(appender TransactionAppender, kafkaWriter KafkaWriter) *LedgerService {
	return &LedgerService{
		appender:    appender,
		kafkaWriter: kafkaWriter,
	}
}

// Record appends one completed transaction and publishes it.
func (s *LedgerService) Record(ctx context.Context, txn models.TransactionDB) error {
	if err := s.appender.Append(ctx, txn); err != nil {
		logger.Log.Errorw("failed to append transaction",
			"transaction_id", txn.TransactionID, "user_id", txn.UserID, "error", err)
		return ErrLedgerAppend
	}

	s.publish(ctx, txn)
	return nil
}

// publish sends the transaction to Kafka.
func (s *LedgerService) publish(ctx context.Context, txn models.TransactionDB) {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", txn.TransactionID)
		return
	}

	data, err := json.Marshal(txn)
	if err != nil {
		logger.Log.Errorw("failed to marshal transaction for Kafka", "transaction_id", txn.TransactionID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(txn.TransactionID),
		Value: data,
	}

	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish transaction to Kafka", "transaction_id", txn.TransactionID, "error", err)
	} else {
		logger.Log.Infow("transaction published to Kafka",
			"transaction_id", txn.TransactionID, "direction", txn.Direction)
	}
}
