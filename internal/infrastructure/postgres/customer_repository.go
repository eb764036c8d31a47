package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/flowgrid/flowgrid-api/internal/domain"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación del puerto CustomerRepository sobre PostgreSQL (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador de persistencia para clientes. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, name, email, phone, status, company, segment,
	address_street, address_city, address_state, address_zip,
	total_orders, total_value, last_contact, notes, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.Company, &c.Segment,
		&c.Address.Street, &c.Address.City, &c.Address.State, &c.Address.ZipCode,
		&c.TotalOrders, &c.TotalValue, &c.LastContact, &c.Notes, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, phone, status, company, segment,
			address_street, address_city, address_state, address_zip,
			total_orders, total_value, last_contact, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.Status,
		customer.Company, customer.Segment,
		customer.Address.Street, customer.Address.City, customer.Address.State, customer.Address.ZipCode,
		customer.TotalOrders, customer.TotalValue, customer.LastContact, customer.Notes,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// GetByEmail obtiene un cliente por email.
func (r *CustomerRepo) GetByEmail(email string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}
	return c, nil
}

// List lista clientes con filtros opcionales, total y paginación.
func (r *CustomerRepo) List(filter repository.CustomerFilter, limit, offset int) ([]*entity.Customer, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	i := 1
	if filter.Search != "" {
		where += fmt.Sprintf(` AND (name ILIKE $%d OR email ILIKE $%d OR company ILIKE $%d)`, i, i, i)
		args = append(args, "%"+filter.Search+"%")
		i++
	}
	if filter.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, i)
		args = append(args, filter.Status)
		i++
	}
	if filter.Segment != "" {
		where += fmt.Sprintf(` AND segment = $%d`, i)
		args = append(args, filter.Segment)
		i++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM customers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	query := `SELECT ` + customerColumns + ` FROM customers` + where +
		fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, i, i+1)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, total, rows.Err()
}

// ListCompanyNames lista id/empresa de clientes active|premium con empresa no vacía.
func (r *CustomerRepo) ListCompanyNames() ([]repository.CompanyName, error) {
	query := `
		SELECT id, company FROM customers
		WHERE status IN ($1, $2) AND company <> ''
		ORDER BY company ASC`
	rows, err := r.q.Query(context.Background(), query, entity.CustomerStatusActive, entity.CustomerStatusPremium)
	if err != nil {
		return nil, fmt.Errorf("list company names: %w", err)
	}
	defer rows.Close()
	var list []repository.CompanyName
	for rows.Next() {
		var n repository.CompanyName
		if err := rows.Scan(&n.ID, &n.Company); err != nil {
			return nil, fmt.Errorf("scan company name: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// Update actualiza un cliente existente (sin tocar los acumulados de pedidos).
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers SET name = $2, email = $3, phone = $4, status = $5, company = $6, segment = $7,
			address_street = $8, address_city = $9, address_state = $10, address_zip = $11,
			notes = $12, updated_at = $13
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Email, customer.Phone, customer.Status,
		customer.Company, customer.Segment,
		customer.Address.Street, customer.Address.City, customer.Address.State, customer.Address.ZipCode,
		customer.Notes, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

// ApplyOrderStats suma un pedido a los acumulados del cliente en una sola
// sentencia, para que la suma sea correcta bajo escritores concurrentes.
func (r *CustomerRepo) ApplyOrderStats(id string, orderTotal decimal.Decimal, lastContact time.Time) error {
	query := `
		UPDATE customers
		SET total_orders = total_orders + 1,
		    total_value = total_value + $2,
		    last_contact = $3,
		    updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, orderTotal, lastContact)
	if err != nil {
		return fmt.Errorf("apply order stats: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *CustomerRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}
