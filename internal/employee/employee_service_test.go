package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/AndraZero121/lomba-bank-jateng/internal/employee"
	employeeerrors "github.com/AndraZero121/lomba-bank-jateng/internal/employee/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeRepository struct {
	withTxFn                    func(tx *sql.Tx) employee.Repository
	createFn                    func(ctx context.Context, emp *employee.Employee) error
	findAllFn                   func(ctx context.Context) ([]employee.Employee, error)
	findByIDFn                  func(ctx context.Context, id string) (*employee.Employee, error)
	getDepartmentIDByPositionFn func(ctx context.Context, positionID string) (string, error)
	updateFn                    func(ctx context.Context, emp *employee.Employee) error
	deleteFn                    func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepository) WithTx(tx *sql.Tx) employee.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeEmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	if f.createFn != nil {
		return f.createFn(ctx, emp)
	}
	return nil
}

func (f *fakeEmployeeRepository) FindAll(ctx context.Context) ([]employee.Employee, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) GetDepartmentIDByPosition(ctx context.Context, positionID string) (string, error) {
	if f.getDepartmentIDByPositionFn != nil {
		return f.getDepartmentIDByPositionFn(ctx, positionID)
	}
	return uuid.New().String(), nil
}

func (f *fakeEmployeeRepository) Update(ctx context.Context, emp *employee.Employee) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, emp)
	}
	return nil
}

func (f *fakeEmployeeRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()
	positionID := uuid.New().String()
	departmentID := uuid.New().String()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	repo := &fakeEmployeeRepository{
		getDepartmentIDByPositionFn: func(ctx context.Context, pid string) (string, error) {
			assert.Equal(t, positionID, pid)
			return departmentID, nil
		},
	}
	svc := employee.NewService(db, repo, nil)

	resp, err := svc.Create(ctx, employee.CreateEmployeeRequest{
		FullName:   "Siti Rahma",
		Email:      "siti.rahma@example.com",
		PositionID: positionID,
		JoinDate:   "2024-06-01",
		BaseSalary: 8000000,
	})

	assert.NoError(t, err)
	assert.Equal(t, "Siti Rahma", resp.FullName)
	assert.Equal(t, departmentID, resp.DepartmentID)
	assert.Equal(t, int64(8000000), resp.BaseSalary)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestEmployeeService_Create_PositionNotFound(t *testing.T) {
	ctx := context.Background()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	repo := &fakeEmployeeRepository{
		getDepartmentIDByPositionFn: func(ctx context.Context, pid string) (string, error) {
			return "", nil
		},
	}
	svc := employee.NewService(db, repo, nil)

	_, err = svc.Create(ctx, employee.CreateEmployeeRequest{
		FullName:   "Siti Rahma",
		Email:      "siti.rahma@example.com",
		PositionID: uuid.New().String(),
	})

	assert.ErrorIs(t, err, employeeerrors.ErrPositionNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestEmployeeService_Create_DuplicateEmail(t *testing.T) {
	ctx := context.Background()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	repo := &fakeEmployeeRepository{
		createFn: func(ctx context.Context, emp *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"}
		},
	}
	svc := employee.NewService(db, repo, nil)

	_, err = svc.Create(ctx, employee.CreateEmployeeRequest{
		FullName:   "Siti Rahma",
		Email:      "siti.rahma@example.com",
		PositionID: uuid.New().String(),
	})

	assert.ErrorIs(t, err, employeeerrors.ErrEmailAlreadyExists)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestEmployeeService_GetOptions_CacheHit(t *testing.T) {
	ctx := context.Background()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()

	cached := []employee.EmployeeOption{
		{ID: uuid.New().String(), FullName: "Siti Rahma", BaseSalary: 8000000},
	}
	payload, err := json.Marshal(cached)
	assert.NoError(t, err)

	redisMock.ExpectGet(employee.EmployeeOptionsKey).SetVal(string(payload))

	repo := &fakeEmployeeRepository{
		findAllFn: func(ctx context.Context) ([]employee.Employee, error) {
			t.Fatal("cache hit must not touch the database")
			return nil, nil
		},
	}
	svc := employee.NewService(db, repo, rdb)

	options, err := svc.GetOptions(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, options)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_GetOptions_CacheMissFillsRedis(t *testing.T) {
	ctx := context.Background()

	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	rdb, redisMock := redismock.NewClientMock()

	active := employee.Employee{ID: uuid.New(), FullName: "Siti Rahma", BaseSalary: 8000000, IsActive: true}
	inactive := employee.Employee{ID: uuid.New(), FullName: "Mantan Karyawan", BaseSalary: 7000000, IsActive: false}

	expected := []employee.EmployeeOption{
		{ID: active.ID.String(), FullName: active.FullName, BaseSalary: active.BaseSalary},
	}
	payload, err := json.Marshal(expected)
	assert.NoError(t, err)

	redisMock.ExpectGet(employee.EmployeeOptionsKey).RedisNil()
	redisMock.ExpectSet(employee.EmployeeOptionsKey, payload, 5*time.Minute).SetVal("OK")

	repo := &fakeEmployeeRepository{
		findAllFn: func(ctx context.Context) ([]employee.Employee, error) {
			return []employee.Employee{active, inactive}, nil
		},
	}
	svc := employee.NewService(db, repo, rdb)

	options, err := svc.GetOptions(ctx)

	assert.NoError(t, err)
	assert.Equal(t, expected, options)
	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestEmployeeService_GetByID_InvalidID(t *testing.T) {
	db, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	svc := employee.NewService(db, &fakeEmployeeRepository{}, nil)

	_, err = svc.GetByID(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
}
