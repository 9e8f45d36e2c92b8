package payslip

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/AndraZero121/lomba-bank-jateng/internal/bootstrap"
	"github.com/AndraZero121/lomba-bank-jateng/internal/events"
	"github.com/AndraZero121/lomba-bank-jateng/internal/messaging/kafka"
	paysliperrors "github.com/AndraZero121/lomba-bank-jateng/internal/payslip/errors"
	"github.com/AndraZero121/lomba-bank-jateng/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=payslip_service.go -destination=mock/payslip_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreatePayslipRequest) (PayslipResponse, error)
	GetAll(ctx context.Context, filter PayslipQueryFilter) ([]PayslipResponse, int64, error)
	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	Update(ctx context.Context, id string, req UpdatePayslipRequest) (PayslipResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	audit  bootstrap.AuditLogger
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithDeps(db, repo, nil, nil, logger...)
}

func NewServiceWithDeps(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	auditLogger bootstrap.AuditLogger,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payslip.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		audit:  auditLogger,
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreatePayslipRequest,
) (PayslipResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	runUUID, err := uuid.Parse(req.PayrollRunID)
	if err != nil {
		return PayslipResponse{}, s.auditCreate(ctx, req, paysliperrors.ErrInvalidPayrollRunID)
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayslipResponse{}, s.auditCreate(ctx, req, paysliperrors.ErrInvalidEmployeeID)
	}

	detail, err := normalizeDetail(req.Detail)
	if err != nil {
		return PayslipResponse{}, s.auditCreate(ctx, req, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create payslip begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayslipResponse{}, s.auditCreate(ctx, req, err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	runExists, err := qtx.PayrollRunExists(ctx, req.PayrollRunID)
	if err != nil {
		return PayslipResponse{}, s.auditCreate(ctx, req, err)
	}
	if !runExists {
		return PayslipResponse{}, s.auditCreate(ctx, req, paysliperrors.ErrPayrollRunNotFound)
	}

	employeeExists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return PayslipResponse{}, s.auditCreate(ctx, req, err)
	}
	if !employeeExists {
		return PayslipResponse{}, s.auditCreate(ctx, req, paysliperrors.ErrEmployeeNotFound)
	}

	duplicate, err := qtx.ExistsForRunAndEmployee(ctx, req.PayrollRunID, req.EmployeeID, nil)
	if err != nil {
		return PayslipResponse{}, s.auditCreate(ctx, req, err)
	}
	if duplicate {
		return PayslipResponse{}, s.auditCreate(ctx, req, paysliperrors.ErrPayslipAlreadyExists)
	}

	slip := &Payslip{
		ID:              uuid.New(),
		PayrollRunID:    runUUID,
		EmployeeID:      employeeUUID,
		BaseSalary:      int64Value(req.BaseSalary),
		TotalAllowances: int64Value(req.TotalAllowances),
		OtherDeductions: int64Value(req.OtherDeductions),
		IncomeTax:       int64Value(req.IncomeTax),
		HealthInsurance: int64Value(req.HealthInsurance),
		Detail:          detail,
	}
	applyDerived(slip)

	if err := qtx.Create(ctx, slip); err != nil {
		mapped := mapRepositoryError(err)
		s.logger.Error("create payslip insert failed", zap.String("request_id", rid), zap.Error(err))
		return PayslipResponse{}, s.auditCreate(ctx, req, mapped)
	}

	if s.outbox != nil {
		if err := s.queueCreatedEvent(ctx, s.outbox.WithTx(tx), rid, slip); err != nil {
			return PayslipResponse{}, s.auditCreate(ctx, req, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, s.auditCreate(ctx, req, err)
	}

	s.logger.Info("payslip created",
		zap.String("request_id", rid),
		zap.String("payslip_id", slip.ID.String()),
		zap.String("payroll_run_id", slip.PayrollRunID.String()),
		zap.String("employee_id", slip.EmployeeID.String()),
		zap.Int64("net_pay", slip.NetPay),
	)
	s.auditCreate(ctx, req, nil, slip.ID.String())

	return toPayslipResponse(slip), nil
}

func (s *service) GetAll(
	ctx context.Context,
	filter PayslipQueryFilter,
) ([]PayslipResponse, int64, error) {
	slips, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	res := make([]PayslipResponse, len(slips))
	for i := range slips {
		res[i] = toPayslipResponse(&slips[i])
	}
	return res, total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayslipResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidPayslipID
	}

	slip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}

	return toPayslipResponse(slip), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdatePayslipRequest,
) (PayslipResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return PayslipResponse{}, paysliperrors.ErrInvalidPayslipID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayslipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	slip, err := qtx.FindByID(ctx, id)
	if err != nil {
		return PayslipResponse{}, mapRepositoryError(err)
	}

	if req.PayrollRunID != nil {
		runUUID, err := uuid.Parse(*req.PayrollRunID)
		if err != nil {
			return PayslipResponse{}, paysliperrors.ErrInvalidPayrollRunID
		}
		runExists, err := qtx.PayrollRunExists(ctx, *req.PayrollRunID)
		if err != nil {
			return PayslipResponse{}, err
		}
		if !runExists {
			return PayslipResponse{}, paysliperrors.ErrPayrollRunNotFound
		}
		slip.PayrollRunID = runUUID
	}
	if req.EmployeeID != nil {
		employeeUUID, err := uuid.Parse(*req.EmployeeID)
		if err != nil {
			return PayslipResponse{}, paysliperrors.ErrInvalidEmployeeID
		}
		employeeExists, err := qtx.EmployeeExists(ctx, *req.EmployeeID)
		if err != nil {
			return PayslipResponse{}, err
		}
		if !employeeExists {
			return PayslipResponse{}, paysliperrors.ErrEmployeeNotFound
		}
		slip.EmployeeID = employeeUUID
	}

	if req.PayrollRunID != nil || req.EmployeeID != nil {
		excludeID := slip.ID.String()
		duplicate, err := qtx.ExistsForRunAndEmployee(
			ctx,
			slip.PayrollRunID.String(),
			slip.EmployeeID.String(),
			&excludeID,
		)
		if err != nil {
			return PayslipResponse{}, err
		}
		if duplicate {
			return PayslipResponse{}, paysliperrors.ErrPayslipAlreadyExists
		}
	}

	if req.BaseSalary != nil {
		slip.BaseSalary = *req.BaseSalary
	}
	if req.TotalAllowances != nil {
		slip.TotalAllowances = *req.TotalAllowances
	}
	if req.OtherDeductions != nil {
		slip.OtherDeductions = *req.OtherDeductions
	}
	if req.IncomeTax != nil {
		slip.IncomeTax = *req.IncomeTax
	}
	if req.HealthInsurance != nil {
		slip.HealthInsurance = *req.HealthInsurance
	}
	if req.Detail != nil {
		detail, err := normalizeDetail(req.Detail)
		if err != nil {
			return PayslipResponse{}, err
		}
		slip.Detail = detail
	}

	// Derived figures are always recomputed from the merged inputs, even when
	// no monetary field changed.
	applyDerived(slip)

	// Preloaded association must not be written back.
	slip.Employee = nil

	if err := qtx.Update(ctx, slip); err != nil {
		mapped := mapRepositoryError(err)
		s.logger.Error("update payslip failed", zap.String("request_id", rid), zap.Error(err))
		return PayslipResponse{}, mapped
	}

	if err := tx.Commit(); err != nil {
		return PayslipResponse{}, err
	}

	s.auditUpdate(ctx, id, nil)

	// Reload to materialize employee details on the response.
	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return toPayslipResponse(slip), nil
	}
	return toPayslipResponse(updated), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return paysliperrors.ErrInvalidPayslipID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "PAYSLIP_DELETE",
			Actor:   contextutil.GetUserID(ctx),
			Message: "payslip deleted",
			Meta:    map[string]any{"payslip_id": id},
		})
	}

	return nil
}

// auditCreate records the create attempt and its outcome. It returns the
// error it was given so callers can audit and return in one statement.
func (s *service) auditCreate(ctx context.Context, req CreatePayslipRequest, outcome error, payslipID ...string) error {
	if s.audit == nil {
		return outcome
	}

	entry := bootstrap.AuditLog{
		Action: "PAYSLIP_CREATE",
		Actor:  contextutil.GetUserID(ctx),
		Meta: map[string]any{
			"payroll_run_id": req.PayrollRunID,
			"employee_id":    req.EmployeeID,
		},
	}
	if outcome != nil {
		entry.Message = "payslip create rejected: " + outcome.Error()
	} else {
		entry.Message = "payslip created"
		if len(payslipID) > 0 {
			entry.Meta["payslip_id"] = payslipID[0]
		}
	}
	s.audit.Log(ctx, entry)

	return outcome
}

func (s *service) auditUpdate(ctx context.Context, id string, outcome error) {
	if s.audit == nil {
		return
	}

	entry := bootstrap.AuditLog{
		Action: "PAYSLIP_UPDATE",
		Actor:  contextutil.GetUserID(ctx),
		Meta:   map[string]any{"payslip_id": id},
	}
	if outcome != nil {
		entry.Message = "payslip update rejected: " + outcome.Error()
	} else {
		entry.Message = "payslip updated"
	}
	s.audit.Log(ctx, entry)
}

func (s *service) queueCreatedEvent(ctx context.Context, outbox kafka.OutboxRepository, rid string, slip *Payslip) error {
	payload, err := json.Marshal(events.PayslipCreatedEvent{
		EventType:    "payslip.created",
		PayslipID:    slip.ID.String(),
		PayrollRunID: slip.PayrollRunID.String(),
		EmployeeID:   slip.EmployeeID.String(),
		NetPay:       slip.NetPay,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     rid,
		AggregateType: "payslip",
		AggregateID:   slip.ID.String(),
		EventType:     "payslip.created",
		Topic:         events.PayslipCreatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

// normalizeDetail validates the caller-supplied detail payload and returns
// the text to persist. Only structured JSON (an object or array) is accepted;
// scalars and malformed input are rejected up front so broken payloads never
// reach storage.
func normalizeDetail(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, paysliperrors.ErrInvalidDetailPayload
	}
	switch parsed.(type) {
	case map[string]any, []any:
	case nil:
		return nil, nil
	default:
		return nil, paysliperrors.ErrInvalidDetailPayload
	}

	stored := string(raw)
	return &stored, nil
}

func int64Value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
