package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	employeeerrors "github.com/AndraZero121/lomba-bank-jateng/internal/employee/errors"
	"github.com/AndraZero121/lomba-bank-jateng/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const EmployeeOptionsKey = "employees:options"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("position_id", req.PositionID),
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	departmentID, err := qtx.GetDepartmentIDByPosition(ctx, req.PositionID)
	if err != nil {
		s.logger.Error("create employee resolve position failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	if departmentID == "" {
		s.logger.Warn("create employee position not found", zap.String("position_id", req.PositionID))
		return EmployeeResponse{}, employeeerrors.ErrPositionNotFound
	}

	joinDate, err := parseOptionalDate(req.JoinDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	emp := &Employee{
		ID:                uuid.New(),
		DepartmentID:      uuid.MustParse(departmentID),
		PositionID:        uuid.MustParse(req.PositionID),
		FullName:          req.FullName,
		Email:             req.Email,
		NationalID:        optionalString(req.NationalID),
		TaxID:             optionalString(req.TaxID),
		TaxStatusCode:     optionalString(req.TaxStatusCode),
		JoinDate:          joinDate,
		BaseSalary:        req.BaseSalary,
		BankAccountNumber: optionalString(req.BankAccountNumber),
		BankName:          optionalString(req.BankName),
		EmploymentStatus:  optionalString(req.EmploymentStatus),
		IsActive:          true,
	}

	if err := qtx.Create(ctx, emp); err != nil {
		s.logger.Error("create employee insert failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	s.logger.Info("employee created",
		zap.String("request_id", rid),
		zap.String("employee_id", emp.ID.String()),
	)

	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	emps, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	return mapToListResponse(emps), nil
}

// GetOptions serves the id/name/salary list for payslip form prefill. Reads
// go through Redis; concurrent cache misses collapse into one DB query.
func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var options []EmployeeOption
			if err := json.Unmarshal([]byte(cached), &options); err == nil {
				return options, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		emps, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		options := make([]EmployeeOption, 0, len(emps))
		for _, e := range emps {
			if !e.IsActive {
				continue
			}
			options = append(options, EmployeeOption{
				ID:         e.ID.String(),
				FullName:   e.FullName,
				BaseSalary: e.BaseSalary,
			})
		}

		if s.rdb != nil {
			if payload, err := json.Marshal(options); err == nil {
				_ = s.rdb.Set(ctx, EmployeeOptionsKey, payload, 5*time.Minute).Err()
			}
		}

		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*emp), nil
}

func (s *service) Update(
	ctx context.Context,
	id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	departmentID, err := qtx.GetDepartmentIDByPosition(ctx, req.PositionID)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if departmentID == "" {
		return EmployeeResponse{}, employeeerrors.ErrPositionNotFound
	}

	joinDate, err := parseOptionalDate(req.JoinDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	emp.DepartmentID = uuid.MustParse(departmentID)
	emp.PositionID = uuid.MustParse(req.PositionID)
	emp.FullName = req.FullName
	emp.Email = req.Email
	emp.NationalID = optionalString(req.NationalID)
	emp.TaxID = optionalString(req.TaxID)
	emp.TaxStatusCode = optionalString(req.TaxStatusCode)
	emp.JoinDate = joinDate
	emp.BaseSalary = req.BaseSalary
	emp.BankAccountNumber = optionalString(req.BankAccountNumber)
	emp.BankName = optionalString(req.BankName)
	emp.EmploymentStatus = optionalString(req.EmploymentStatus)
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, emp); err != nil {
		s.logger.Error("update employee failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)

	return mapToResponse(*emp), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
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
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateOptions(ctx)
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Warn("invalidate employee options cache failed", zap.Error(err))
	}
}

func parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidJoinDate
	}
	return &t, nil
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(emp Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:                emp.ID.String(),
		DepartmentID:      emp.DepartmentID.String(),
		PositionID:        emp.PositionID.String(),
		FullName:          emp.FullName,
		Email:             emp.Email,
		NationalID:        emp.NationalID,
		TaxID:             emp.TaxID,
		TaxStatusCode:     emp.TaxStatusCode,
		BaseSalary:        emp.BaseSalary,
		BankAccountNumber: emp.BankAccountNumber,
		BankName:          emp.BankName,
		EmploymentStatus:  emp.EmploymentStatus,
		IsActive:          emp.IsActive,
	}

	if emp.JoinDate != nil {
		v := emp.JoinDate.Format("2006-01-02")
		resp.JoinDate = &v
	}

	return resp
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(emps))
	for i, e := range emps {
		res[i] = mapToResponse(e)
	}
	return res
}
