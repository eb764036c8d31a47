package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/flowgrid/flowgrid-api/internal/domain"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación del puerto EmployeeRepository sobre PostgreSQL.
// Los hijos payrolls y leave_requests se cargan junto con la ficha.
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de persistencia para empleados. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

const employeeColumns = `id, employee_id, user_id, name, email, phone, department, position,
	hire_date, base_salary, status,
	address_street, address_city, address_state, address_zip,
	created_at, updated_at`

func scanEmployee(row pgx.Row) (*entity.Employee, error) {
	var e entity.Employee
	err := row.Scan(
		&e.ID, &e.EmployeeID, &e.UserID, &e.Name, &e.Email, &e.Phone, &e.Department, &e.Position,
		&e.HireDate, &e.BaseSalary, &e.Status,
		&e.Address.Street, &e.Address.City, &e.Address.State, &e.Address.ZipCode,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create persiste la ficha de un nuevo empleado.
func (r *EmployeeRepo) Create(employee *entity.Employee) error {
	query := `
		INSERT INTO employees (id, employee_id, user_id, name, email, phone, department, position,
			hire_date, base_salary, status,
			address_street, address_city, address_state, address_zip,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.EmployeeID, employee.UserID, employee.Name, employee.Email,
		employee.Phone, employee.Department, employee.Position,
		employee.HireDate, employee.BaseSalary, employee.Status,
		employee.Address.Street, employee.Address.City, employee.Address.State, employee.Address.ZipCode,
		employee.CreatedAt, employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID obtiene la ficha completa del empleado (con nómina y licencias).
func (r *EmployeeRepo) GetByID(id string) (*entity.Employee, error) {
	return r.getBy(`id = $1`, id)
}

// GetByUserID obtiene la ficha ligada a una cuenta de usuario.
func (r *EmployeeRepo) GetByUserID(userID string) (*entity.Employee, error) {
	return r.getBy(`user_id = $1`, userID)
}

// GetByLeaveID localiza al empleado dueño de una solicitud de licencia.
func (r *EmployeeRepo) GetByLeaveID(leaveID string) (*entity.Employee, error) {
	return r.getBy(`id = (SELECT employee_id FROM leave_requests WHERE leave_id = $1)`, leaveID)
}

func (r *EmployeeRepo) getBy(where string, arg any) (*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE ` + where
	e, err := scanEmployee(r.q.QueryRow(context.Background(), query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if err := r.loadChildren(e); err != nil {
		return nil, err
	}
	return e, nil
}

// loadChildren carga payrolls y leave_requests de una ficha.
func (r *EmployeeRepo) loadChildren(e *entity.Employee) error {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, employee_id, payroll_id, pay_period_start, pay_period_end,
			base_salary, overtime_pay, bonuses, gross_pay, tax_deduction, insurance_deduction, net_pay,
			status, pay_date
		FROM payrolls WHERE employee_id = $1 ORDER BY pay_period_start DESC`, e.ID)
	if err != nil {
		return fmt.Errorf("list payrolls: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.Payroll
		if err := rows.Scan(&p.ID, &p.EmployeeID, &p.PayrollID, &p.PayPeriodStart, &p.PayPeriodEnd,
			&p.BaseSalary, &p.OvertimePay, &p.Bonuses, &p.GrossPay, &p.TaxDeduction,
			&p.InsuranceDeduction, &p.NetPay, &p.Status, &p.PayDate); err != nil {
			return fmt.Errorf("scan payroll: %w", err)
		}
		e.Payroll = append(e.Payroll, p)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	leaves, err := r.q.Query(context.Background(), `
		SELECT id, employee_id, leave_id, type, start_date, end_date, days, status, reason, applied_date
		FROM leave_requests WHERE employee_id = $1 ORDER BY applied_date DESC`, e.ID)
	if err != nil {
		return fmt.Errorf("list leave requests: %w", err)
	}
	defer leaves.Close()
	for leaves.Next() {
		var l entity.LeaveRequest
		if err := leaves.Scan(&l.ID, &l.EmployeeID, &l.LeaveID, &l.Type, &l.StartDate, &l.EndDate,
			&l.Days, &l.Status, &l.Reason, &l.AppliedDate); err != nil {
			return fmt.Errorf("scan leave request: %w", err)
		}
		e.LeaveRequests = append(e.LeaveRequests, l)
	}
	return leaves.Err()
}

// List lista fichas con filtros, total y paginación. Los hijos no se cargan
// en el listado; sólo en la vista de detalle.
func (r *EmployeeRepo) List(filter repository.EmployeeFilter, limit, offset int) ([]*entity.Employee, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	i := 1
	if filter.Department != "" {
		where += fmt.Sprintf(` AND department = $%d`, i)
		args = append(args, filter.Department)
		i++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, i)
		args = append(args, filter.Status)
		i++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM employees`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count employees: %w", err)
	}

	query := `SELECT ` + employeeColumns + ` FROM employees` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, i, i+1)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, total, rows.Err()
}

// ListActive devuelve fichas activas, opcionalmente restringidas a ids.
func (r *EmployeeRepo) ListActive(ids []string) ([]*entity.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE status = $1`
	args := []any{entity.EmployeeStatusActive}
	if len(ids) > 0 {
		query += ` AND id = ANY($2)`
		args = append(args, ids)
	}
	query += ` ORDER BY employee_id ASC`
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Update actualiza la ficha (EmployeeID y UserID no cambian).
func (r *EmployeeRepo) Update(employee *entity.Employee) error {
	query := `
		UPDATE employees SET name = $2, email = $3, phone = $4, department = $5, position = $6,
			hire_date = $7, base_salary = $8, status = $9,
			address_street = $10, address_city = $11, address_state = $12, address_zip = $13,
			updated_at = $14
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		employee.ID, employee.Name, employee.Email, employee.Phone, employee.Department,
		employee.Position, employee.HireDate, employee.BaseSalary, employee.Status,
		employee.Address.Street, employee.Address.City, employee.Address.State, employee.Address.ZipCode,
		employee.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update employee: %w", err)
	}
	return nil
}

// AddPayroll inserta un registro de nómina.
func (r *EmployeeRepo) AddPayroll(payroll *entity.Payroll) error {
	query := `
		INSERT INTO payrolls (id, employee_id, payroll_id, pay_period_start, pay_period_end,
			base_salary, overtime_pay, bonuses, gross_pay, tax_deduction, insurance_deduction, net_pay,
			status, pay_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		payroll.ID, payroll.EmployeeID, payroll.PayrollID, payroll.PayPeriodStart, payroll.PayPeriodEnd,
		payroll.BaseSalary, payroll.OvertimePay, payroll.Bonuses, payroll.GrossPay,
		payroll.TaxDeduction, payroll.InsuranceDeduction, payroll.NetPay,
		payroll.Status, payroll.PayDate,
	)
	if err != nil {
		return fmt.Errorf("insert payroll: %w", err)
	}
	return nil
}

// AddLeaveRequest inserta una solicitud de licencia.
func (r *EmployeeRepo) AddLeaveRequest(leave *entity.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (id, employee_id, leave_id, type, start_date, end_date, days, status, reason, applied_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		leave.ID, leave.EmployeeID, leave.LeaveID, leave.Type, leave.StartDate, leave.EndDate,
		leave.Days, leave.Status, leave.Reason, leave.AppliedDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert leave request: %w", err)
	}
	return nil
}

// UpdateLeaveStatus cambia el estado de una solicitud por su id legible.
func (r *EmployeeRepo) UpdateLeaveStatus(leaveID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE leave_requests SET status = $2 WHERE leave_id = $1`, leaveID, status)
	if err != nil {
		return fmt.Errorf("update leave status: %w", err)
	}
	return nil
}
