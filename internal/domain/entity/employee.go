package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de empleado.
const (
	EmployeeStatusActive     = "active"
	EmployeeStatusInactive   = "inactive"
	EmployeeStatusTerminated = "terminated"
)

// Estados de nómina.
const (
	PayrollStatusPaid    = "paid"
	PayrollStatusPending = "pending"
	PayrollStatusFailed  = "failed"
)

// Tipos y estados de solicitud de licencia.
const (
	LeaveTypeAnnual    = "Annual Leave"
	LeaveTypeSick      = "Sick Leave"
	LeaveTypeMaternity = "Maternity Leave"
	LeaveTypePersonal  = "Personal Leave"

	LeaveStatusApproved = "approved"
	LeaveStatusPending  = "pending"
	LeaveStatusRejected = "rejected"
)

// ValidLeaveType indica si el tipo de licencia pertenece a la enumeración.
func ValidLeaveType(t string) bool {
	switch t {
	case LeaveTypeAnnual, LeaveTypeSick, LeaveTypeMaternity, LeaveTypePersonal:
		return true
	}
	return false
}

// Payroll registro de nómina, hijo de Employee (sin ciclo de vida propio).
type Payroll struct {
	ID                 string
	EmployeeID         string // FK interno (uuid del empleado)
	PayrollID          string // identificador legible PAY-...
	PayPeriodStart     time.Time
	PayPeriodEnd       time.Time
	BaseSalary         decimal.Decimal
	OvertimePay        decimal.Decimal
	Bonuses            decimal.Decimal
	GrossPay           decimal.Decimal
	TaxDeduction       decimal.Decimal
	InsuranceDeduction decimal.Decimal
	NetPay             decimal.Decimal
	Status             string // paid, pending, failed
	PayDate            *time.Time
}

// LeaveRequest solicitud de licencia, hija de Employee.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveID     string // identificador legible LEAVE-...
	Type        string
	StartDate   time.Time
	EndDate     time.Time
	Days        int
	Status      string // approved, pending, rejected
	Reason      string
	AppliedDate time.Time
}

// Employee ficha de RRHH, ligada 1:1 a un User.
type Employee struct {
	ID            string
	EmployeeID    string // EMP-NNNNN, único
	UserID        string // FK único hacia users
	Name          string
	Email         string
	Phone         string
	Department    string
	Position      string
	HireDate      time.Time
	BaseSalary    decimal.Decimal
	Status        string // active, inactive, terminated
	Address       Address
	Payroll       []Payroll
	LeaveRequests []LeaveRequest
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
