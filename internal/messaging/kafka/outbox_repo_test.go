package kafka_test

import (
	"context"
	"testing"

	"github.com/AndraZero121/lomba-bank-jateng/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateOutboxEvent(t *testing.T) {
	valid := kafka.OutboxEvent{
		ID:      uuid.New().String(),
		Topic:   "hr.payslip.created.v1",
		Payload: []byte(`{"payslip_id":"x"}`),
		Status:  kafka.OutboxStatusPending,
	}

	assert.NoError(t, kafka.ValidateOutboxEvent(valid))

	t.Run("missing id", func(t *testing.T) {
		e := valid
		e.ID = ""
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})

	t.Run("missing topic", func(t *testing.T) {
		e := valid
		e.Topic = ""
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})

	t.Run("empty payload", func(t *testing.T) {
		e := valid
		e.Payload = nil
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})

	t.Run("unknown status", func(t *testing.T) {
		e := valid
		e.Status = "queued"
		assert.Error(t, kafka.ValidateOutboxEvent(e))
	})
}

func TestOutboxRepository_CreateUsesTransaction(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("INSERT INTO outbox_events").
		WillReturnResult(sqlmock.NewResult(1, 1))
	sqlMock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)

	err = repo.Create(context.Background(), kafka.OutboxEvent{
		ID:            uuid.New().String(),
		AggregateType: "payslip",
		AggregateID:   uuid.New().String(),
		EventType:     "payslip.created",
		Topic:         "hr.payslip.created.v1",
		Payload:       []byte(`{}`),
		Status:        kafka.OutboxStatusPending,
	})
	assert.NoError(t, err)

	assert.NoError(t, tx.Commit())
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSent(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	id := uuid.New().String()
	sqlMock.ExpectExec("UPDATE outbox_events").
		WithArgs(id, kafka.OutboxStatusSent).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := kafka.NewOutboxRepository(db)

	assert.NoError(t, repo.MarkSent(context.Background(), id))
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
