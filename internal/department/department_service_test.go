package department_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/AndraZero121/lomba-bank-jateng/internal/department"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepository struct {
	withTxFn       func(tx *sql.Tx) department.Repository
	createFn       func(ctx context.Context, dept *department.Department) error
	findAllFn      func(ctx context.Context) ([]department.Department, error)
	findByIDFn     func(ctx context.Context, id string) (*department.Department, error)
	updateFn       func(ctx context.Context, dept *department.Department) error
	deleteFn       func(ctx context.Context, id string) error
	hasPositionsFn func(ctx context.Context, id string) (bool, error)
}

func (f *fakeDepartmentRepository) WithTx(tx *sql.Tx) department.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeDepartmentRepository) Create(ctx context.Context, dept *department.Department) error {
	if f.createFn != nil {
		return f.createFn(ctx, dept)
	}
	return nil
}

func (f *fakeDepartmentRepository) FindAll(ctx context.Context) ([]department.Department, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeDepartmentRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepository) Update(ctx context.Context, dept *department.Department) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, dept)
	}
	return nil
}

func (f *fakeDepartmentRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeDepartmentRepository) HasPositions(ctx context.Context, id string) (bool, error) {
	if f.hasPositionsFn != nil {
		return f.hasPositionsFn(ctx, id)
	}
	return false, nil
}

func TestDepartmentService_Create(t *testing.T) {
	ctx := context.Background()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()

	repo := &fakeDepartmentRepository{}
	svc := department.NewService(db, repo)

	resp, err := svc.Create(ctx, department.CreateDepartmentRequest{Name: "Finance"})

	assert.NoError(t, err)
	assert.Equal(t, "Finance", resp.Name)
	assert.NotEmpty(t, resp.ID)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := department.NewService(db, &fakeDepartmentRepository{})

		_, err = svc.GetByID(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, department.ErrInvalidDepartmentID)
	})

	t.Run("not found", func(t *testing.T) {
		db, _, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		svc := department.NewService(db, &fakeDepartmentRepository{})

		_, err = svc.GetByID(ctx, uuid.New().String())

		assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	})
}

func TestDepartmentService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := department.NewService(db, &fakeDepartmentRepository{})

	err = svc.Delete(ctx, uuid.New().String())

	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDepartmentService_Delete_BlockedWhenPositionsExist(t *testing.T) {
	ctx := context.Background()
	departmentID := uuid.New()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	repo := &fakeDepartmentRepository{
		findByIDFn: func(ctx context.Context, id string) (*department.Department, error) {
			return &department.Department{ID: departmentID, Name: "Finance"}, nil
		},
		hasPositionsFn: func(ctx context.Context, id string) (bool, error) {
			return true, nil
		},
	}
	svc := department.NewService(db, repo)

	err = svc.Delete(ctx, departmentID.String())

	assert.ErrorIs(t, err, department.ErrDepartmentInUse)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
