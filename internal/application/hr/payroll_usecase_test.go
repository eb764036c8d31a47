package hr_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgrid/flowgrid-api/internal/application/dto"
	"github.com/flowgrid/flowgrid-api/internal/application/hr"
	"github.com/flowgrid/flowgrid-api/internal/domain"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de repositorio de empleados
// ──────────────────────────────────────────────────────────────────────────────

type fakeEmployeeRepo struct {
	employees map[string]*entity.Employee
	payrolls  []*entity.Payroll
	// failFor ids de empleado cuyo AddPayroll debe fallar (simula error de DB)
	failFor map[string]bool
}

func newFakeEmployeeRepo(emps ...*entity.Employee) *fakeEmployeeRepo {
	r := &fakeEmployeeRepo{
		employees: map[string]*entity.Employee{},
		failFor:   map[string]bool{},
	}
	for _, e := range emps {
		r.employees[e.ID] = e
	}
	return r
}

func (r *fakeEmployeeRepo) Create(e *entity.Employee) error { r.employees[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	e, ok := r.employees[id]
	if !ok {
		return nil, nil
	}
	return e, nil
}
func (r *fakeEmployeeRepo) GetByUserID(userID string) (*entity.Employee, error) {
	for _, e := range r.employees {
		if e.UserID == userID {
			return e, nil
		}
	}
	return nil, nil
}
func (r *fakeEmployeeRepo) GetByLeaveID(leaveID string) (*entity.Employee, error) {
	return nil, nil
}
func (r *fakeEmployeeRepo) List(repository.EmployeeFilter, int, int) ([]*entity.Employee, int, error) {
	return nil, 0, nil
}
func (r *fakeEmployeeRepo) ListActive(ids []string) ([]*entity.Employee, error) {
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	var out []*entity.Employee
	for _, e := range r.employees {
		if e.Status != "active" {
			continue
		}
		if len(wanted) > 0 && !wanted[e.ID] {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}
func (r *fakeEmployeeRepo) Update(e *entity.Employee) error { r.employees[e.ID] = e; return nil }
func (r *fakeEmployeeRepo) AddPayroll(p *entity.Payroll) error {
	if r.failFor[p.EmployeeID] {
		return errors.New("db: insert payroll failed")
	}
	r.payrolls = append(r.payrolls, p)
	return nil
}
func (r *fakeEmployeeRepo) AddLeaveRequest(l *entity.LeaveRequest) error { return nil }
func (r *fakeEmployeeRepo) UpdateLeaveStatus(leaveID, status string) error {
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func defaultRates() hr.Rates {
	return hr.Rates{
		Tax:       decimal.NewFromFloat(0.20),
		Insurance: decimal.NewFromFloat(0.05),
	}
}

func activeEmployee(id, empID, name string, salary int64) *entity.Employee {
	return &entity.Employee{
		ID:         id,
		EmployeeID: empID,
		Name:       name,
		Status:     "active",
		BaseSalary: decimal.NewFromInt(salary),
	}
}

func testPeriod() (time.Time, time.Time) {
	start := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)
	return start, end
}

// ──────────────────────────────────────────────────────────────────────────────
// Process — lote de nómina
// ──────────────────────────────────────────────────────────────────────────────

func TestProcess_LiquidacionCorrecta(t *testing.T) {
	repo := newFakeEmployeeRepo(activeEmployee("e1", "EMP-00001", "Ana Gómez", 100000))
	uc := hr.NewPayrollUseCase(repo, defaultRates())
	start, end := testPeriod()

	result, err := uc.Process(dto.ProcessPayrollRequest{PayPeriodStart: start, PayPeriodEnd: end})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Payrolls, 1)

	// base 100000 → bruto 100000, impuesto 20000, seguro 5000, neto 75000
	assert.True(t, result.Payrolls[0].NetPay.Equal(decimal.NewFromInt(75000)),
		"neto esperado 75000, obtenido %s", result.Payrolls[0].NetPay)
	assert.Equal(t, "EMP-00001", result.Payrolls[0].EmployeeID)
	assert.Equal(t, "Ana Gómez", result.Payrolls[0].Name)
	assert.Contains(t, result.Payrolls[0].PayrollID, "PAY-EMP-00001-")

	require.Len(t, repo.payrolls, 1)
	stored := repo.payrolls[0]
	assert.True(t, stored.GrossPay.Equal(decimal.NewFromInt(100000)))
	assert.True(t, stored.TaxDeduction.Equal(decimal.NewFromInt(20000)))
	assert.True(t, stored.InsuranceDeduction.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, entity.PayrollStatusPaid, stored.Status)
	require.NotNil(t, stored.PayDate)
	assert.Equal(t, start, stored.PayPeriodStart)
	assert.Equal(t, end, stored.PayPeriodEnd)
}

func TestProcess_RedondeoADosDecimales(t *testing.T) {
	// base 1234.56 → impuesto 246.91 (redondeo), seguro 61.73, neto 925.92
	repo := newFakeEmployeeRepo(&entity.Employee{
		ID: "e1", EmployeeID: "EMP-00001", Name: "Ana", Status: "active",
		BaseSalary: decimal.NewFromFloat(1234.56),
	})
	uc := hr.NewPayrollUseCase(repo, defaultRates())
	start, end := testPeriod()

	result, err := uc.Process(dto.ProcessPayrollRequest{PayPeriodStart: start, PayPeriodEnd: end})
	require.NoError(t, err)
	require.Len(t, repo.payrolls, 1)

	p := repo.payrolls[0]
	assert.Equal(t, "246.91", p.TaxDeduction.StringFixed(2))
	assert.Equal(t, "61.73", p.InsuranceDeduction.StringFixed(2))
	assert.Equal(t, "925.92", p.NetPay.StringFixed(2))
	require.Len(t, result.Payrolls, 1)
}

func TestProcess_LoteMejorEsfuerzo(t *testing.T) {
	repo := newFakeEmployeeRepo(
		activeEmployee("e1", "EMP-00001", "Ana Gómez", 100000),
		activeEmployee("e2", "EMP-00002", "Luis Pérez", 80000),
		activeEmployee("e3", "EMP-00003", "Marta Ríos", 90000),
	)
	repo.failFor["e2"] = true // la inserción de Luis falla

	uc := hr.NewPayrollUseCase(repo, defaultRates())
	start, end := testPeriod()

	result, err := uc.Process(dto.ProcessPayrollRequest{PayPeriodStart: start, PayPeriodEnd: end})
	require.NoError(t, err, "un fallo individual no debe abortar el lote")

	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Payrolls, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "EMP-00002", result.Errors[0].EmployeeID)
	assert.Equal(t, "Luis Pérez", result.Errors[0].Name)
	assert.Contains(t, result.Errors[0].Error, "insert payroll failed")
}

func TestProcess_SoloEmpleadosIndicados(t *testing.T) {
	repo := newFakeEmployeeRepo(
		activeEmployee("e1", "EMP-00001", "Ana", 100000),
		activeEmployee("e2", "EMP-00002", "Luis", 80000),
	)
	uc := hr.NewPayrollUseCase(repo, defaultRates())
	start, end := testPeriod()

	result, err := uc.Process(dto.ProcessPayrollRequest{
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		EmployeeIDs:    []string{"e2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	require.Len(t, result.Payrolls, 1)
	assert.Equal(t, "EMP-00002", result.Payrolls[0].EmployeeID)
}

func TestProcess_IgnoraInactivos(t *testing.T) {
	inactive := activeEmployee("e2", "EMP-00002", "Luis", 80000)
	inactive.Status = "terminated"
	repo := newFakeEmployeeRepo(activeEmployee("e1", "EMP-00001", "Ana", 100000), inactive)

	uc := hr.NewPayrollUseCase(repo, defaultRates())
	start, end := testPeriod()

	result, err := uc.Process(dto.ProcessPayrollRequest{PayPeriodStart: start, PayPeriodEnd: end})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
}

func TestProcess_PeriodoInvalido(t *testing.T) {
	repo := newFakeEmployeeRepo()
	uc := hr.NewPayrollUseCase(repo, defaultRates())
	start, end := testPeriod()

	// sin fechas
	_, err := uc.Process(dto.ProcessPayrollRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// fin antes del inicio
	_, err = uc.Process(dto.ProcessPayrollRequest{PayPeriodStart: end, PayPeriodEnd: start})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddManual — alta manual de nómina
// ──────────────────────────────────────────────────────────────────────────────

func TestAddManual_CompletaMontosDesdeSalarioBase(t *testing.T) {
	repo := newFakeEmployeeRepo(activeEmployee("e1", "EMP-00001", "Ana", 100000))
	uc := hr.NewPayrollUseCase(repo, defaultRates())
	start, end := testPeriod()

	resp, err := uc.AddManual("e1", dto.AddPayrollRequest{
		PayPeriodStart: start,
		PayPeriodEnd:   end,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, resp.NetPay.Equal(decimal.NewFromInt(75000)))
	assert.Equal(t, entity.PayrollStatusPaid, resp.Status, "el estado por defecto es paid")
	require.NotNil(t, resp.PayDate)
}

func TestAddManual_SumaExtrasYBonos(t *testing.T) {
	repo := newFakeEmployeeRepo(activeEmployee("e1", "EMP-00001", "Ana", 100000))
	uc := hr.NewPayrollUseCase(repo, defaultRates())
	start, end := testPeriod()

	resp, err := uc.AddManual("e1", dto.AddPayrollRequest{
		PayPeriodStart: start,
		PayPeriodEnd:   end,
		OvertimePay:    decimal.NewFromInt(5000),
		Bonuses:        decimal.NewFromInt(10000),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// bruto 115000; deducciones calculadas sobre la base (25000); neto 90000
	assert.True(t, resp.GrossPay.Equal(decimal.NewFromInt(115000)),
		"bruto esperado 115000, obtenido %s", resp.GrossPay)
	assert.True(t, resp.NetPay.Equal(decimal.NewFromInt(90000)))
}

func TestAddManual_MontosExplicitosSeRespetan(t *testing.T) {
	repo := newFakeEmployeeRepo(activeEmployee("e1", "EMP-00001", "Ana", 100000))
	uc := hr.NewPayrollUseCase(repo, defaultRates())
	start, end := testPeriod()

	resp, err := uc.AddManual("e1", dto.AddPayrollRequest{
		PayPeriodStart:     start,
		PayPeriodEnd:       end,
		GrossPay:           decimal.NewFromInt(50000),
		TaxDeduction:       decimal.NewFromInt(5000),
		InsuranceDeduction: decimal.NewFromInt(1000),
		NetPay:             decimal.NewFromInt(44000),
		Status:             entity.PayrollStatusPending,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.True(t, resp.GrossPay.Equal(decimal.NewFromInt(50000)))
	assert.True(t, resp.NetPay.Equal(decimal.NewFromInt(44000)))
	assert.Equal(t, entity.PayrollStatusPending, resp.Status)
	assert.Nil(t, resp.PayDate, "un pago pendiente no lleva fecha de pago")
}

func TestAddManual_EmpleadoInexistente(t *testing.T) {
	repo := newFakeEmployeeRepo()
	uc := hr.NewPayrollUseCase(repo, defaultRates())
	start, end := testPeriod()

	resp, err := uc.AddManual("no-existe", dto.AddPayrollRequest{
		PayPeriodStart: start,
		PayPeriodEnd:   end,
	})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestAddManual_PeriodoInvalido(t *testing.T) {
	repo := newFakeEmployeeRepo(activeEmployee("e1", "EMP-00001", "Ana", 100000))
	uc := hr.NewPayrollUseCase(repo, defaultRates())

	_, err := uc.AddManual("e1", dto.AddPayrollRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
