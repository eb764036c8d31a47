package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEmployeeRequest entrada para crear un empleado. Si UserID viene vacío
// se busca (o provisiona) la cuenta de usuario por email.
type CreateEmployeeRequest struct {
	UserID     string          `json:"userId"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone" validate:"required"`
	Department string          `json:"department" validate:"required"`
	Position   string          `json:"position" validate:"required"`
	HireDate   time.Time       `json:"hireDate"`
	BaseSalary decimal.Decimal `json:"baseSalary"`
	Address    AddressDTO      `json:"address"`
}

// UpdateEmployeeRequest entrada para actualizar la ficha.
type UpdateEmployeeRequest struct {
	Name       *string          `json:"name"`
	Phone      *string          `json:"phone"`
	Department *string          `json:"department"`
	Position   *string          `json:"position"`
	BaseSalary *decimal.Decimal `json:"baseSalary"`
	Status     *string          `json:"status"`
	Address    *AddressDTO      `json:"address"`
}

// AddPayrollRequest alta manual de un registro de nómina.
type AddPayrollRequest struct {
	PayPeriodStart     time.Time       `json:"payPeriodStart" validate:"required"`
	PayPeriodEnd       time.Time       `json:"payPeriodEnd" validate:"required"`
	BaseSalary         decimal.Decimal `json:"baseSalary"`
	OvertimePay        decimal.Decimal `json:"overtimePay"`
	Bonuses            decimal.Decimal `json:"bonuses"`
	GrossPay           decimal.Decimal `json:"grossPay"`
	TaxDeduction       decimal.Decimal `json:"taxDeduction"`
	InsuranceDeduction decimal.Decimal `json:"insuranceDeduction"`
	NetPay             decimal.Decimal `json:"netPay"`
	Status             string          `json:"status"`
}

// ProcessPayrollRequest lote de nómina: período y opcionalmente ids concretos
// (vacío = todos los empleados activos).
type ProcessPayrollRequest struct {
	PayPeriodStart time.Time `json:"payPeriodStart"`
	PayPeriodEnd   time.Time `json:"payPeriodEnd"`
	EmployeeIDs    []string  `json:"employeeIds"`
}

// ProcessedPayroll resumen por empleado procesado con éxito.
type ProcessedPayroll struct {
	EmployeeID string          `json:"employeeId"`
	Name       string          `json:"name"`
	NetPay     decimal.Decimal `json:"netPay"`
	PayrollID  string          `json:"payrollId"`
}

// PayrollError detalle de fallo por empleado; un fallo no aborta el lote.
type PayrollError struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Error      string `json:"error"`
}

// ProcessPayrollResponse resultado del lote (mejor esfuerzo, no atómico).
type ProcessPayrollResponse struct {
	Processed int                `json:"processed"`
	Failed    int                `json:"failed"`
	Payrolls  []ProcessedPayroll `json:"payrolls"`
	Errors    []PayrollError     `json:"errors"`
}

// AddLeaveRequest alta de solicitud de licencia.
type AddLeaveRequest struct {
	Type      string    `json:"type" validate:"required"`
	StartDate time.Time `json:"startDate" validate:"required"`
	EndDate   time.Time `json:"endDate" validate:"required"`
	Days      int       `json:"days" validate:"required,min=1"`
	Reason    string    `json:"reason" validate:"required"`
}

// UpdateLeaveRequest cambio de estado de una solicitud.
type UpdateLeaveRequest struct {
	Status string `json:"status" validate:"required"`
}

// PayrollResponse registro de nómina.
type PayrollResponse struct {
	PayrollID          string          `json:"payrollId"`
	PayPeriodStart     time.Time       `json:"payPeriodStart"`
	PayPeriodEnd       time.Time       `json:"payPeriodEnd"`
	BaseSalary         decimal.Decimal `json:"baseSalary"`
	OvertimePay        decimal.Decimal `json:"overtimePay"`
	Bonuses            decimal.Decimal `json:"bonuses"`
	GrossPay           decimal.Decimal `json:"grossPay"`
	TaxDeduction       decimal.Decimal `json:"taxDeduction"`
	InsuranceDeduction decimal.Decimal `json:"insuranceDeduction"`
	NetPay             decimal.Decimal `json:"netPay"`
	Status             string          `json:"status"`
	PayDate            *time.Time      `json:"payDate,omitempty"`
}

// LeaveRequestResponse solicitud de licencia.
type LeaveRequestResponse struct {
	LeaveID     string    `json:"leaveId"`
	Type        string    `json:"type"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Days        int       `json:"days"`
	Status      string    `json:"status"`
	Reason      string    `json:"reason"`
	AppliedDate time.Time `json:"appliedDate"`
}

// EmployeeResponse ficha completa del empleado.
type EmployeeResponse struct {
	ID            string                 `json:"id"`
	EmployeeID    string                 `json:"employeeId"`
	UserID        string                 `json:"userId"`
	Name          string                 `json:"name"`
	Email         string                 `json:"email"`
	Phone         string                 `json:"phone"`
	Department    string                 `json:"department"`
	Position      string                 `json:"position"`
	HireDate      time.Time              `json:"hireDate"`
	BaseSalary    decimal.Decimal        `json:"baseSalary"`
	Status        string                 `json:"status"`
	Address       AddressDTO             `json:"address"`
	Payroll       []PayrollResponse      `json:"payroll"`
	LeaveRequests []LeaveRequestResponse `json:"leaveRequests"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// EmployeeListQuery filtros del listado.
type EmployeeListQuery struct {
	PageRequest
	Department string `query:"department"`
	Status     string `query:"status"`
}
