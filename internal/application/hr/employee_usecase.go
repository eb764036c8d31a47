package hr

import (
	"fmt"
	"time"

	"github.com/flowgrid/flowgrid-api/internal/application/dto"
	"github.com/flowgrid/flowgrid-api/internal/domain"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// defaultEmployeePassword contraseña inicial de cuentas provisionadas al
// crear un empleado sin usuario existente; debe cambiarse en el primer login.
const defaultEmployeePassword = "Welcome123!"

// EmployeeUseCase gestiona fichas de RRHH y solicitudes de licencia.
// Cada empleado queda ligado 1:1 a una cuenta de usuario.
type EmployeeUseCase struct {
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
	counterRepo  repository.CounterRepository
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(
	employeeRepo repository.EmployeeRepository,
	userRepo repository.UserRepository,
	counterRepo repository.CounterRepository,
) *EmployeeUseCase {
	return &EmployeeUseCase{
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		counterRepo:  counterRepo,
	}
}

// Create crea la ficha de un empleado. Si UserID viene vacío se busca la
// cuenta por email, y si tampoco existe se provisiona una con rol sales_rep
// y contraseña por defecto. Un usuario no puede tener dos fichas.
func (uc *EmployeeUseCase) Create(in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if in.Name == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.resolveUser(in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.employeeRepo.GetByUserID(user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	seq, err := uc.counterRepo.Next("employee")
	if err != nil {
		return nil, err
	}
	now := time.Now()
	hireDate := in.HireDate
	if hireDate.IsZero() {
		hireDate = now
	}
	employee := &entity.Employee{
		ID:         uuid.New().String(),
		EmployeeID: fmt.Sprintf("EMP-%05d", seq),
		UserID:     user.ID,
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Department: in.Department,
		Position:   in.Position,
		HireDate:   hireDate,
		BaseSalary: in.BaseSalary,
		Status:     entity.EmployeeStatusActive,
		Address: entity.Address{
			Street:  in.Address.Street,
			City:    in.Address.City,
			State:   in.Address.State,
			ZipCode: in.Address.ZipCode,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.employeeRepo.Create(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// resolveUser localiza o provisiona la cuenta de usuario del empleado.
func (uc *EmployeeUseCase) resolveUser(in dto.CreateEmployeeRequest) (*entity.User, error) {
	if in.UserID != "" {
		user, err := uc.userRepo.GetByID(in.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		return user, nil
	}
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultEmployeePassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user = &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         entity.RoleSalesRep,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID obtiene la ficha completa (nómina y licencias incluidas).
func (uc *EmployeeUseCase) GetByID(id string) (*dto.EmployeeResponse, error) {
	employee, err := uc.employeeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	return toEmployeeResponse(employee), nil
}

// Update actualiza la ficha. EmployeeID y UserID no son editables.
func (uc *EmployeeUseCase) Update(id string, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.employeeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	if in.Name != nil {
		employee.Name = *in.Name
	}
	if in.Phone != nil {
		employee.Phone = *in.Phone
	}
	if in.Department != nil {
		employee.Department = *in.Department
	}
	if in.Position != nil {
		employee.Position = *in.Position
	}
	if in.BaseSalary != nil {
		if in.BaseSalary.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		employee.BaseSalary = *in.BaseSalary
	}
	if in.Status != nil {
		switch *in.Status {
		case entity.EmployeeStatusActive, entity.EmployeeStatusInactive, entity.EmployeeStatusTerminated:
			employee.Status = *in.Status
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if in.Address != nil {
		employee.Address = entity.Address{
			Street:  in.Address.Street,
			City:    in.Address.City,
			State:   in.Address.State,
			ZipCode: in.Address.ZipCode,
		}
	}
	employee.UpdatedAt = time.Now()
	if err := uc.employeeRepo.Update(employee); err != nil {
		return nil, err
	}
	return toEmployeeResponse(employee), nil
}

// List lista empleados con filtros y paginación.
func (uc *EmployeeUseCase) List(q dto.EmployeeListQuery) ([]dto.EmployeeResponse, dto.Pagination, error) {
	q.DefaultPage()
	filter := repository.EmployeeFilter{Department: q.Department, Status: q.Status}
	list, total, err := uc.employeeRepo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	items := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		items = append(items, *toEmployeeResponse(e))
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

// AddLeaveRequest registra una solicitud de licencia en estado pending.
func (uc *EmployeeUseCase) AddLeaveRequest(employeeID string, in dto.AddLeaveRequest) (*dto.EmployeeResponse, error) {
	employee, err := uc.employeeRepo.GetByID(employeeID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	if !entity.ValidLeaveType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Days <= 0 || in.EndDate.Before(in.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	leave := &entity.LeaveRequest{
		ID:          uuid.New().String(),
		EmployeeID:  employee.ID,
		LeaveID:     fmt.Sprintf("LEAVE-%d", now.UnixMilli()),
		Type:        in.Type,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Days:        in.Days,
		Status:      entity.LeaveStatusPending,
		Reason:      in.Reason,
		AppliedDate: now,
	}
	if err := uc.employeeRepo.AddLeaveRequest(leave); err != nil {
		return nil, err
	}
	return uc.GetByID(employee.ID)
}

// UpdateLeaveStatus aprueba o rechaza una solicitud por su LEAVE-id legible.
func (uc *EmployeeUseCase) UpdateLeaveStatus(leaveID string, in dto.UpdateLeaveRequest) (*dto.EmployeeResponse, error) {
	switch in.Status {
	case entity.LeaveStatusApproved, entity.LeaveStatusPending, entity.LeaveStatusRejected:
	default:
		return nil, domain.ErrInvalidInput
	}
	employee, err := uc.employeeRepo.GetByLeaveID(leaveID)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, nil
	}
	if err := uc.employeeRepo.UpdateLeaveStatus(leaveID, in.Status); err != nil {
		return nil, err
	}
	return uc.GetByID(employee.ID)
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	if e == nil {
		return nil
	}
	payroll := make([]dto.PayrollResponse, 0, len(e.Payroll))
	for _, p := range e.Payroll {
		payroll = append(payroll, toPayrollResponse(p))
	}
	leaves := make([]dto.LeaveRequestResponse, 0, len(e.LeaveRequests))
	for _, l := range e.LeaveRequests {
		leaves = append(leaves, dto.LeaveRequestResponse{
			LeaveID:     l.LeaveID,
			Type:        l.Type,
			StartDate:   l.StartDate,
			EndDate:     l.EndDate,
			Days:        l.Days,
			Status:      l.Status,
			Reason:      l.Reason,
			AppliedDate: l.AppliedDate,
		})
	}
	return &dto.EmployeeResponse{
		ID:         e.ID,
		EmployeeID: e.EmployeeID,
		UserID:     e.UserID,
		Name:       e.Name,
		Email:      e.Email,
		Phone:      e.Phone,
		Department: e.Department,
		Position:   e.Position,
		HireDate:   e.HireDate,
		BaseSalary: e.BaseSalary,
		Status:     e.Status,
		Address: dto.AddressDTO{
			Street:  e.Address.Street,
			City:    e.Address.City,
			State:   e.Address.State,
			ZipCode: e.Address.ZipCode,
		},
		Payroll:       payroll,
		LeaveRequests: leaves,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func toPayrollResponse(p entity.Payroll) dto.PayrollResponse {
	return dto.PayrollResponse{
		PayrollID:          p.PayrollID,
		PayPeriodStart:     p.PayPeriodStart,
		PayPeriodEnd:       p.PayPeriodEnd,
		BaseSalary:         p.BaseSalary,
		OvertimePay:        p.OvertimePay,
		Bonuses:            p.Bonuses,
		GrossPay:           p.GrossPay,
		TaxDeduction:       p.TaxDeduction,
		InsuranceDeduction: p.InsuranceDeduction,
		NetPay:             p.NetPay,
		Status:             p.Status,
		PayDate:            p.PayDate,
	}
}
