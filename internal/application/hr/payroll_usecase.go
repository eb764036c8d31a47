package hr

import (
	"fmt"
	"time"

	"github.com/flowgrid/flowgrid-api/internal/application/dto"
	"github.com/flowgrid/flowgrid-api/internal/domain"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rates tasas de deducción aplicadas sobre el bruto.
type Rates struct {
	Tax       decimal.Decimal
	Insurance decimal.Decimal
}

// PayrollUseCase liquida nóminas: lote sobre empleados activos y alta manual.
// El lote es de mejor esfuerzo, no atómico: un empleado que falla se reporta
// en el resultado sin abortar a los demás.
type PayrollUseCase struct {
	employeeRepo repository.EmployeeRepository
	rates        Rates
}

// NewPayrollUseCase construye el caso de uso.
func NewPayrollUseCase(employeeRepo repository.EmployeeRepository, rates Rates) *PayrollUseCase {
	return &PayrollUseCase{employeeRepo: employeeRepo, rates: rates}
}

// compute liquida un período: bruto = base + horas extra (0) + bonos (0);
// deducciones = tasas sobre el bruto; neto = bruto - deducciones.
func (uc *PayrollUseCase) compute(base decimal.Decimal) (gross, tax, insurance, net decimal.Decimal) {
	gross = base.Add(decimal.Zero).Add(decimal.Zero)
	tax = gross.Mul(uc.rates.Tax).Round(2)
	insurance = gross.Mul(uc.rates.Insurance).Round(2)
	net = gross.Sub(tax).Sub(insurance)
	return gross, tax, insurance, net
}

// Process liquida la nómina del período para los empleados activos (todos, o
// los ids indicados). Devuelve procesados, fallidos y el detalle por empleado.
func (uc *PayrollUseCase) Process(in dto.ProcessPayrollRequest) (*dto.ProcessPayrollResponse, error) {
	if in.PayPeriodStart.IsZero() || in.PayPeriodEnd.IsZero() || in.PayPeriodEnd.Before(in.PayPeriodStart) {
		return nil, domain.ErrInvalidInput
	}
	employees, err := uc.employeeRepo.ListActive(in.EmployeeIDs)
	if err != nil {
		return nil, err
	}

	result := &dto.ProcessPayrollResponse{
		Payrolls: make([]dto.ProcessedPayroll, 0, len(employees)),
		Errors:   make([]dto.PayrollError, 0),
	}
	now := time.Now()
	for _, emp := range employees {
		gross, tax, insurance, net := uc.compute(emp.BaseSalary)
		payroll := &entity.Payroll{
			ID:                 uuid.New().String(),
			EmployeeID:         emp.ID,
			PayrollID:          fmt.Sprintf("PAY-%s-%d", emp.EmployeeID, now.UnixMilli()),
			PayPeriodStart:     in.PayPeriodStart,
			PayPeriodEnd:       in.PayPeriodEnd,
			BaseSalary:         emp.BaseSalary,
			OvertimePay:        decimal.Zero,
			Bonuses:            decimal.Zero,
			GrossPay:           gross,
			TaxDeduction:       tax,
			InsuranceDeduction: insurance,
			NetPay:             net,
			Status:             entity.PayrollStatusPaid,
			PayDate:            &now,
		}
		if err := uc.employeeRepo.AddPayroll(payroll); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, dto.PayrollError{
				EmployeeID: emp.EmployeeID,
				Name:       emp.Name,
				Error:      err.Error(),
			})
			continue
		}
		result.Processed++
		result.Payrolls = append(result.Payrolls, dto.ProcessedPayroll{
			EmployeeID: emp.EmployeeID,
			Name:       emp.Name,
			NetPay:     net,
			PayrollID:  payroll.PayrollID,
		})
	}
	return result, nil
}

// AddManual registra un pago de nómina manual sobre un empleado. Los montos
// no enviados se completan con la misma liquidación del lote.
func (uc *PayrollUseCase) AddManual(employeeID string, in dto.AddPayrollRequest) (*dto.PayrollResponse, error) {
	employee, err := uc.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	if in.PayPeriodStart.IsZero() || in.PayPeriodEnd.IsZero() || in.PayPeriodEnd.Before(in.PayPeriodStart) {
		return nil, domain.ErrInvalidInput
	}
	base := in.BaseSalary
	if base.IsZero() {
		base = employee.BaseSalary
	}
	gross, tax, insurance, net := in.GrossPay, in.TaxDeduction, in.InsuranceDeduction, in.NetPay
	if gross.IsZero() {
		gross, tax, insurance, net = uc.compute(base)
		gross = gross.Add(in.OvertimePay).Add(in.Bonuses)
		net = gross.Sub(tax).Sub(insurance)
	}
	status := in.Status
	if status == "" {
		status = entity.PayrollStatusPaid
	}
	now := time.Now()
	payroll := &entity.Payroll{
		ID:                 uuid.New().String(),
		EmployeeID:         employee.ID,
		PayrollID:          fmt.Sprintf("PAY-%s-%d", employee.EmployeeID, now.UnixMilli()),
		PayPeriodStart:     in.PayPeriodStart,
		PayPeriodEnd:       in.PayPeriodEnd,
		BaseSalary:         base,
		OvertimePay:        in.OvertimePay,
		Bonuses:            in.Bonuses,
		GrossPay:           gross,
		TaxDeduction:       tax,
		InsuranceDeduction: insurance,
		NetPay:             net,
		Status:             status,
	}
	if status == entity.PayrollStatusPaid {
		payroll.PayDate = &now
	}
	if err := uc.employeeRepo.AddPayroll(payroll); err != nil {
		return nil, err
	}
	resp := toPayrollResponse(*payroll)
	return &resp, nil
}
