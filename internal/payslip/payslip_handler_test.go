package payslip_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AndraZero121/lomba-bank-jateng/internal/payslip"
	paysliperrors "github.com/AndraZero121/lomba-bank-jateng/internal/payslip/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakePayslipService struct {
	createFn  func(ctx context.Context, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error)
	getAllFn  func(ctx context.Context, filter payslip.PayslipQueryFilter) ([]payslip.PayslipResponse, int64, error)
	getByIDFn func(ctx context.Context, id string) (payslip.PayslipResponse, error)
	updateFn  func(ctx context.Context, id string, req payslip.UpdatePayslipRequest) (payslip.PayslipResponse, error)
	deleteFn  func(ctx context.Context, id string) error
}

func (f *fakePayslipService) Create(ctx context.Context, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error) {
	return f.createFn(ctx, req)
}

func (f *fakePayslipService) GetAll(ctx context.Context, filter payslip.PayslipQueryFilter) ([]payslip.PayslipResponse, int64, error) {
	return f.getAllFn(ctx, filter)
}

func (f *fakePayslipService) GetByID(ctx context.Context, id string) (payslip.PayslipResponse, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakePayslipService) Update(ctx context.Context, id string, req payslip.UpdatePayslipRequest) (payslip.PayslipResponse, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakePayslipService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestPayslipHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	runID := uuid.New().String()
	employeeID := uuid.New().String()

	svc := &fakePayslipService{
		createFn: func(ctx context.Context, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error) {
			assert.Equal(t, runID, req.PayrollRunID)
			assert.Equal(t, employeeID, req.EmployeeID)
			if assert.NotNil(t, req.BaseSalary) {
				assert.Equal(t, int64(8000000), *req.BaseSalary)
			}
			return payslip.PayslipResponse{
				ID:           uuid.New().String(),
				PayrollRunID: req.PayrollRunID,
				EmployeeID:   req.EmployeeID,
				GrossIncome:  9200000,
				NetPay:       8570000,
			}, nil
		},
	}

	h := payslip.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"payroll_run_id":"` + runID + `","employee_id":"` + employeeID + `","base_salary":8000000,"total_allowances":1200000,"other_deductions":100000,"income_tax":450000,"health_insurance":80000}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payslips", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var resp payslip.PayslipResponse
	assert.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, int64(8570000), resp.NetPay)
}

func TestPayslipHandler_Create_MissingBaseSalary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePayslipService{
		createFn: func(ctx context.Context, req payslip.CreatePayslipRequest) (payslip.PayslipResponse, error) {
			t.Fatal("service must not be called on a binding failure")
			return payslip.PayslipResponse{}, nil
		},
	}

	h := payslip.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"payroll_run_id":"` + uuid.New().String() + `","employee_id":"` + uuid.New().String() + `","total_allowances":0}`
	c.Request = httptest.NewRequest(http.MethodPost, "/payslips", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	if assert.NotNil(t, env.Error) {
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	}
}

func TestPayslipHandler_GetById_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePayslipService{
		getByIDFn: func(ctx context.Context, id string) (payslip.PayslipResponse, error) {
			return payslip.PayslipResponse{}, paysliperrors.ErrPayslipNotFound
		},
	}

	h := payslip.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/payslips/"+uuid.New().String(), nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	h.GetById(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	if assert.NotNil(t, env.Error) {
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	}
}

func TestPayslipHandler_GetAll_FiltersByRun(t *testing.T) {
	gin.SetMode(gin.TestMode)

	runID := uuid.New().String()

	svc := &fakePayslipService{
		getAllFn: func(ctx context.Context, filter payslip.PayslipQueryFilter) ([]payslip.PayslipResponse, int64, error) {
			if assert.NotNil(t, filter.PayrollRunID) {
				assert.Equal(t, runID, *filter.PayrollRunID)
			}
			return []payslip.PayslipResponse{{ID: uuid.New().String(), PayrollRunID: runID}}, 1, nil
		},
	}

	h := payslip.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodGet, "/payslips?payroll_run_id="+runID, nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestPayslipHandler_Update_Conflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePayslipService{
		updateFn: func(ctx context.Context, id string, req payslip.UpdatePayslipRequest) (payslip.PayslipResponse, error) {
			return payslip.PayslipResponse{}, paysliperrors.ErrPayslipAlreadyExists
		},
	}

	h := payslip.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"employee_id":"` + uuid.New().String() + `"}`
	c.Request = httptest.NewRequest(http.MethodPut, "/payslips/"+uuid.New().String(), strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	h.Update(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	if assert.NotNil(t, env.Error) {
		assert.Equal(t, "CONFLICT", env.Error.Code)
	}
}

func TestPayslipHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakePayslipService{
		deleteFn: func(ctx context.Context, id string) error {
			return nil
		},
	}

	h := payslip.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodDelete, "/payslips/"+uuid.New().String(), nil)
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
