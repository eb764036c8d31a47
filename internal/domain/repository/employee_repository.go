package repository

import "github.com/flowgrid/flowgrid-api/internal/domain/entity"

// EmployeeFilter filtros del listado de empleados.
type EmployeeFilter struct {
	Department string
	Status     string
}

// EmployeeRepository define el puerto de persistencia para Employee y sus
// hijos Payroll y LeaveRequest (sin ciclo de vida propio: siempre a través
// del empleado).
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	GetByUserID(userID string) (*entity.Employee, error)
	// GetByLeaveID localiza al empleado dueño de una solicitud de licencia.
	GetByLeaveID(leaveID string) (*entity.Employee, error)
	List(filter EmployeeFilter, limit, offset int) ([]*entity.Employee, int, error)
	// ListActive devuelve empleados activos, opcionalmente restringidos a ids.
	ListActive(ids []string) ([]*entity.Employee, error)
	Update(employee *entity.Employee) error
	AddPayroll(payroll *entity.Payroll) error
	AddLeaveRequest(leave *entity.LeaveRequest) error
	UpdateLeaveStatus(leaveID, status string) error
}
