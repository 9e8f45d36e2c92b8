package payslip

import (
	"context"
	"database/sql"

	"github.com/AndraZero121/lomba-bank-jateng/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, slip *Payslip) error
	FindAll(ctx context.Context, filter PayslipQueryFilter) ([]Payslip, int64, error)
	FindByID(ctx context.Context, id string) (*Payslip, error)
	Update(ctx context.Context, slip *Payslip) error
	Delete(ctx context.Context, id string) error
	PayrollRunExists(ctx context.Context, runID string) (bool, error)
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	ExistsForRunAndEmployee(ctx context.Context, runID, employeeID string, excludePayslipID *string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository whose statements run inside tx, so a payslip
// insert and its outbox row commit or roll back together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GORMWithTx(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, slip *Payslip) error {
	return r.db.WithContext(ctx).Create(slip).Error
}

func (r *repository) FindAll(ctx context.Context, filter PayslipQueryFilter) ([]Payslip, int64, error) {
	query := r.db.WithContext(ctx).Model(&Payslip{})

	if filter.PayrollRunID != nil {
		query = query.Where("payroll_run_id = ?", *filter.PayrollRunID)
	}
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var slips []Payslip
	err := query.
		Preload("Employee").
		Preload("Employee.Position").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&slips).Error
	return slips, total, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Payslip, error) {
	var slip Payslip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Preload("Employee.Position").
		First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) Update(ctx context.Context, slip *Payslip) error {
	return r.db.WithContext(ctx).Save(slip).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Delete(&Payslip{}, "id = ?", id).Error
}

func (r *repository) PayrollRunExists(ctx context.Context, runID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("payroll_runs").
		Where("id = ?", runID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ExistsForRunAndEmployee(ctx context.Context, runID, employeeID string, excludePayslipID *string) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Where("payroll_run_id = ?", runID).
		Where("employee_id = ?", employeeID)
	if excludePayslipID != nil {
		query = query.Where("id <> ?", *excludePayslipID)
	}

	var count int64
	err := query.Count(&count).Error
	return count > 0, err
}
