package payrollrun

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/AndraZero121/lomba-bank-jateng/internal/events"
	"github.com/AndraZero121/lomba-bank-jateng/internal/messaging/kafka"
	payrollrunerrors "github.com/AndraZero121/lomba-bank-jateng/internal/payrollrun/errors"
	"github.com/AndraZero121/lomba-bank-jateng/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payrollrun_service.go -destination=mock/payrollrun_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreatePayrollRunRequest) (PayrollRunResponse, error)
	GetAll(ctx context.Context) ([]PayrollRunResponse, error)
	GetByID(ctx context.Context, id string) (PayrollRunResponse, error)
	Update(ctx context.Context, id string, req UpdatePayrollRunRequest) (PayrollRunResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payrollrun.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollrun.service")
	}
	return &service{db: db, repo: repo, outbox: outboxRepo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	actorID string,
	req CreatePayrollRunRequest,
) (PayrollRunResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	executorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollRunResponse{}, payrollrunerrors.ErrInvalidExecutorID
	}

	executionDate, err := parseDate(req.ExecutionDate)
	if err != nil {
		return PayrollRunResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = StatusDraft
	}
	if !ValidStatus(status) {
		return PayrollRunResponse{}, payrollrunerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create payroll run begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run := &PayrollRun{
		ID:            uuid.New(),
		Period:        req.Period,
		ExecutionDate: executionDate,
		Status:        status,
		ExecutedBy:    executorUUID,
	}

	if err := qtx.Create(ctx, run); err != nil {
		s.logger.Error("create payroll run insert failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRunResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	s.logger.Info("payroll run created",
		zap.String("request_id", rid),
		zap.String("payroll_run_id", run.ID.String()),
		zap.String("period", run.Period),
		zap.String("status", run.Status),
	)

	return mapToResponse(*run), nil
}

func (s *service) GetAll(ctx context.Context) ([]PayrollRunResponse, error) {
	runs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(runs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayrollRunResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollRunResponse{}, payrollrunerrors.ErrInvalidPayrollRunID
	}

	run, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollRunResponse{}, payrollrunerrors.ErrPayrollRunNotFound
		}
		return PayrollRunResponse{}, err
	}

	return mapToResponse(*run), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdatePayrollRunRequest,
) (PayrollRunResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return PayrollRunResponse{}, payrollrunerrors.ErrInvalidPayrollRunID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollRunResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	run, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollRunResponse{}, payrollrunerrors.ErrPayrollRunNotFound
		}
		return PayrollRunResponse{}, err
	}

	if req.Period != nil {
		run.Period = *req.Period
	}
	if req.ExecutionDate != nil {
		executionDate, err := parseDate(*req.ExecutionDate)
		if err != nil {
			return PayrollRunResponse{}, err
		}
		run.ExecutionDate = executionDate
	}

	finalized := false
	if req.Status != nil && *req.Status != run.Status {
		if !ValidStatus(*req.Status) {
			return PayrollRunResponse{}, payrollrunerrors.ErrInvalidStatus
		}
		if !CanTransition(run.Status, *req.Status) {
			s.logger.Warn("illegal payroll run transition rejected",
				zap.String("request_id", rid),
				zap.String("payroll_run_id", id),
				zap.String("from", run.Status),
				zap.String("to", *req.Status),
			)
			return PayrollRunResponse{}, payrollrunerrors.ErrInvalidStatusTransition
		}
		run.Status = *req.Status
		finalized = run.Status == StatusFinal
	}

	if err := qtx.Update(ctx, run); err != nil {
		s.logger.Error("update payroll run failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollRunResponse{}, err
	}

	if finalized && s.outbox != nil {
		if err := s.queueFinalizedEvent(ctx, s.outbox.WithTx(tx), rid, run); err != nil {
			return PayrollRunResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayrollRunResponse{}, err
	}

	return mapToResponse(*run), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollrunerrors.ErrInvalidPayrollRunID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollrunerrors.ErrPayrollRunNotFound
		}
		return err
	}

	// A run with payslips cannot be deleted; callers must remove or move the
	// payslips first.
	hasPayslips, err := qtx.HasPayslips(ctx, id)
	if err != nil {
		return err
	}
	if hasPayslips {
		return payrollrunerrors.ErrRunHasPayslips
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) queueFinalizedEvent(ctx context.Context, outbox kafka.OutboxRepository, rid string, run *PayrollRun) error {
	payload, err := json.Marshal(events.PayrollRunFinalizedEvent{
		EventType:    "payroll_run.finalized",
		PayrollRunID: run.ID.String(),
		Period:       run.Period,
		Status:       run.Status,
		ExecutedBy:   run.ExecutedBy.String(),
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "payroll_run",
		AggregateID:   run.ID.String(),
		EventType:     "payroll_run.finalized",
		Topic:         events.PayrollRunFinalizedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, payrollrunerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(run PayrollRun) PayrollRunResponse {
	return PayrollRunResponse{
		ID:            run.ID.String(),
		Period:        run.Period,
		ExecutionDate: run.ExecutionDate.Format("2006-01-02"),
		Status:        run.Status,
		ExecutedBy:    run.ExecutedBy.String(),
	}
}

func mapToListResponse(runs []PayrollRun) []PayrollRunResponse {
	res := make([]PayrollRunResponse, len(runs))
	for i, r := range runs {
		res[i] = mapToResponse(r)
	}
	return res
}
