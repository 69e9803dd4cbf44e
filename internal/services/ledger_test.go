package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/abokixyz/ramp-bot/internal/services"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func sampleTxn() models.TransactionDB {
	return models.TransactionDB{
		TransactionID:  uuid.NewString(),
		UserID:         42,
		Direction:      models.DirectionSell,
		SourceAmount:   10,
		SourceCurrency: models.USDC,
		DestAmount:     15000,
		DestCurrency:   models.NGN,
		Reference:      "TXABCDEF12",
		CreatedAt:      time.Now(),
	}
}

func TestLedgerService_Record(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAppender := services.NewMockTransactionAppender(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewLedgerService(mockAppender, mockKafka)
	txn := sampleTxn()

	mockAppender.EXPECT().Append(gomock.Any(), txn).Return(nil)
	mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil)

	assert.NoError(t, svc.Record(context.Background(), txn))
}

func TestLedgerService_Record_AppendFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAppender := services.NewMockTransactionAppender(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewLedgerService(mockAppender, mockKafka)
	txn := sampleTxn()

	mockAppender.EXPECT().Append(gomock.Any(), txn).Return(errors.New("db down"))
	// No Kafka publish when the durable append fails.

	err := svc.Record(context.Background(), txn)
	assert.ErrorIs(t, err, services.ErrLedgerAppend)
}

func TestLedgerService_Record_KafkaFailureIsBestEffort(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAppender := services.NewMockTransactionAppender(ctrl)
	mockKafka := services.NewMockKafkaWriter(ctrl)

	svc := services.NewLedgerService(mockAppender, mockKafka)
	txn := sampleTxn()

	mockAppender.EXPECT().Append(gomock.Any(), txn).Return(nil)
	mockKafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	assert.NoError(t, svc.Record(context.Background(), txn))
}

func TestLedgerService_Record_NilKafkaWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAppender := services.NewMockTransactionAppender(ctrl)
	svc := services.NewLedgerService(mockAppender, nil)
	txn := sampleTxn()

	mockAppender.EXPECT().Append(gomock.Any(), txn).Return(nil)

	assert.NoError(t, svc.Record(context.Background(), txn))
}

func TestHistoryService_Recent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockRecentTransactionsReader(ctrl)
	svc := services.NewHistoryService(mockReader)

	want := []models.TransactionDB{sampleTxn()}
	mockReader.EXPECT().
		GetRecentByUserID(gomock.Any(), int64(42), services.DefaultHistoryLimit).
		Return(want, nil)

	got, err := svc.Recent(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, want, got)
}
