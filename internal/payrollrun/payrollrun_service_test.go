package payrollrun_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/AndraZero121/lomba-bank-jateng/internal/events"
	"github.com/AndraZero121/lomba-bank-jateng/internal/messaging/kafka"
	"github.com/AndraZero121/lomba-bank-jateng/internal/payrollrun"
	payrollrunerrors "github.com/AndraZero121/lomba-bank-jateng/internal/payrollrun/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakePayrollRunRepository struct {
	withTxFn      func(tx *sql.Tx) payrollrun.Repository
	createFn      func(ctx context.Context, run *payrollrun.PayrollRun) error
	findAllFn     func(ctx context.Context) ([]payrollrun.PayrollRun, error)
	findByIDFn    func(ctx context.Context, id string) (*payrollrun.PayrollRun, error)
	updateFn      func(ctx context.Context, run *payrollrun.PayrollRun) error
	deleteFn      func(ctx context.Context, id string) error
	hasPayslipsFn func(ctx context.Context, id string) (bool, error)
}

func (f *fakePayrollRunRepository) WithTx(tx *sql.Tx) payrollrun.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakePayrollRunRepository) Create(ctx context.Context, run *payrollrun.PayrollRun) error {
	if f.createFn != nil {
		return f.createFn(ctx, run)
	}
	return nil
}

func (f *fakePayrollRunRepository) FindAll(ctx context.Context) ([]payrollrun.PayrollRun, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakePayrollRunRepository) FindByID(ctx context.Context, id string) (*payrollrun.PayrollRun, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakePayrollRunRepository) Update(ctx context.Context, run *payrollrun.PayrollRun) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, run)
	}
	return nil
}

func (f *fakePayrollRunRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakePayrollRunRepository) HasPayslips(ctx context.Context, id string) (bool, error) {
	if f.hasPayslipsFn != nil {
		return f.hasPayslipsFn(ctx, id)
	}
	return false, nil
}

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type payrollRunServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service payrollrun.Service
	repo    *fakePayrollRunRepository
	outbox  *fakeOutboxRepository
}

func setupPayrollRunServiceTest(t *testing.T) *payrollRunServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakePayrollRunRepository{}
	outbox := &fakeOutboxRepository{}
	svc := payrollrun.NewServiceWithOutbox(db, repo, outbox)

	return &payrollRunServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo, outbox: outbox}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func strptr(s string) *string { return &s }

func TestPayrollRunService_Create_DefaultsToDraft(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()

	deps := setupPayrollRunServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	deps.repo.createFn = func(ctx context.Context, run *payrollrun.PayrollRun) error {
		assert.Equal(t, payrollrun.StatusDraft, run.Status)
		assert.Equal(t, "March 2026", run.Period)
		return nil
	}

	resp, err := deps.service.Create(ctx, actorID, payrollrun.CreatePayrollRunRequest{
		Period:        "March 2026",
		ExecutionDate: "2026-03-25",
	})

	assert.NoError(t, err)
	assert.Equal(t, payrollrun.StatusDraft, resp.Status)
	assert.Equal(t, "2026-03-25", resp.ExecutionDate)
	assert.Equal(t, actorID, resp.ExecutedBy)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollRunService_Create_InvalidInputs(t *testing.T) {
	ctx := context.Background()

	t.Run("bad executor id", func(t *testing.T) {
		deps := setupPayrollRunServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, "not-a-uuid", payrollrun.CreatePayrollRunRequest{
			Period:        "March 2026",
			ExecutionDate: "2026-03-25",
		})

		assert.ErrorIs(t, err, payrollrunerrors.ErrInvalidExecutorID)
	})

	t.Run("bad execution date", func(t *testing.T) {
		deps := setupPayrollRunServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, uuid.New().String(), payrollrun.CreatePayrollRunRequest{
			Period:        "March 2026",
			ExecutionDate: "25-03-2026",
		})

		assert.ErrorIs(t, err, payrollrunerrors.ErrInvalidDateFormat)
	})
}

func TestPayrollRunService_Update_FinalizeQueuesEvent(t *testing.T) {
	ctx := context.Background()
	runID := uuid.New()

	deps := setupPayrollRunServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payrollrun.PayrollRun, error) {
		return &payrollrun.PayrollRun{
			ID:            runID,
			Period:        "March 2026",
			ExecutionDate: time.Date(2026, 3, 25, 0, 0, 0, 0, time.UTC),
			Status:        payrollrun.StatusDraft,
			ExecutedBy:    uuid.New(),
		}, nil
	}

	var published *kafka.OutboxEvent
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		published = &event
		return nil
	}

	resp, err := deps.service.Update(ctx, runID.String(), payrollrun.UpdatePayrollRunRequest{
		Status: strptr(payrollrun.StatusFinal),
	})

	assert.NoError(t, err)
	assert.Equal(t, payrollrun.StatusFinal, resp.Status)
	if assert.NotNil(t, published) {
		assert.Equal(t, events.PayrollRunFinalizedTopic, published.Topic)
		assert.Equal(t, runID.String(), published.AggregateID)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollRunService_Update_IllegalTransitionRejected(t *testing.T) {
	ctx := context.Background()
	runID := uuid.New()

	tests := []struct {
		name string
		from string
		to   string
	}{
		{"draft straight to approve", payrollrun.StatusDraft, payrollrun.StatusApprove},
		{"approve back to draft", payrollrun.StatusApprove, payrollrun.StatusDraft},
		{"failed to final", payrollrun.StatusFailed, payrollrun.StatusFinal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupPayrollRunServiceTest(t)
			defer deps.db.Close()

			expectTx(t, deps.sqlMock, false)

			deps.repo.findByIDFn = func(ctx context.Context, id string) (*payrollrun.PayrollRun, error) {
				return &payrollrun.PayrollRun{ID: runID, Status: tt.from, ExecutedBy: uuid.New()}, nil
			}
			deps.repo.updateFn = func(ctx context.Context, run *payrollrun.PayrollRun) error {
				t.Fatal("update must not be called on an illegal transition")
				return nil
			}

			_, err := deps.service.Update(ctx, runID.String(), payrollrun.UpdatePayrollRunRequest{
				Status: &tt.to,
			})

			assert.ErrorIs(t, err, payrollrunerrors.ErrInvalidStatusTransition)
			assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		})
	}
}

func TestPayrollRunService_Update_SameStatusIsNoOp(t *testing.T) {
	ctx := context.Background()
	runID := uuid.New()

	deps := setupPayrollRunServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payrollrun.PayrollRun, error) {
		return &payrollrun.PayrollRun{ID: runID, Status: payrollrun.StatusFinal, ExecutedBy: uuid.New()}, nil
	}
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		t.Fatal("re-submitting the current status must not publish an event")
		return nil
	}

	resp, err := deps.service.Update(ctx, runID.String(), payrollrun.UpdatePayrollRunRequest{
		Status: strptr(payrollrun.StatusFinal),
	})

	assert.NoError(t, err)
	assert.Equal(t, payrollrun.StatusFinal, resp.Status)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollRunService_Update_InvalidID(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollRunServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payrollrun.PayrollRun, error) {
		t.Fatal("repository must not be reached for a malformed id")
		return nil, nil
	}

	_, err := deps.service.Update(ctx, "not-a-uuid", payrollrun.UpdatePayrollRunRequest{Period: strptr("2025-07")})

	assert.ErrorIs(t, err, payrollrunerrors.ErrInvalidPayrollRunID)
	// No transaction is opened before the id check.
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollRunService_Delete_InvalidID(t *testing.T) {
	ctx := context.Background()

	deps := setupPayrollRunServiceTest(t)
	defer deps.db.Close()

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payrollrun.PayrollRun, error) {
		t.Fatal("repository must not be reached for a malformed id")
		return nil, nil
	}

	err := deps.service.Delete(ctx, "not-a-uuid")

	assert.ErrorIs(t, err, payrollrunerrors.ErrInvalidPayrollRunID)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollRunService_Delete_BlockedWhenPayslipsExist(t *testing.T) {
	ctx := context.Background()
	runID := uuid.New()

	deps := setupPayrollRunServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payrollrun.PayrollRun, error) {
		return &payrollrun.PayrollRun{ID: runID, Status: payrollrun.StatusDraft, ExecutedBy: uuid.New()}, nil
	}
	deps.repo.hasPayslipsFn = func(ctx context.Context, id string) (bool, error) {
		return true, nil
	}

	err := deps.service.Delete(ctx, runID.String())

	assert.ErrorIs(t, err, payrollrunerrors.ErrRunHasPayslips)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollRunService_Delete_Success(t *testing.T) {
	ctx := context.Background()
	runID := uuid.New()

	deps := setupPayrollRunServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)

	deps.repo.findByIDFn = func(ctx context.Context, id string) (*payrollrun.PayrollRun, error) {
		return &payrollrun.PayrollRun{ID: runID, Status: payrollrun.StatusDraft, ExecutedBy: uuid.New()}, nil
	}

	err := deps.service.Delete(ctx, runID.String())

	assert.NoError(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
