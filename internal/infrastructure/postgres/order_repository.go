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

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// La factura vive embebida en la fila del pedido; las líneas en order_items.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, customer_id, customer_name, customer_email,
	status, order_date, delivery_date, total,
	ship_street, ship_city, ship_state, ship_zip,
	invoice_number, invoice_amount, invoice_status, invoice_due_date, invoice_paid_date, invoice_payment_method,
	created_by, created_by_name, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerName, &o.CustomerEmail,
		&o.Status, &o.OrderDate, &o.DeliveryDate, &o.Total,
		&o.ShippingAddress.Street, &o.ShippingAddress.City, &o.ShippingAddress.State, &o.ShippingAddress.ZipCode,
		&o.Invoice.InvoiceNumber, &o.Invoice.Amount, &o.Invoice.Status, &o.Invoice.DueDate,
		&o.Invoice.PaidDate, &o.Invoice.PaymentMethod,
		&o.CreatedBy, &o.CreatedByName, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create persiste cabecera (incluida la factura) y todas las líneas del pedido.
// Llamar dentro de una transacción para que líneas y cabecera queden juntas.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, order_number, customer_id, customer_name, customer_email,
			status, order_date, delivery_date, total,
			ship_street, ship_city, ship_state, ship_zip,
			invoice_number, invoice_amount, invoice_status, invoice_due_date, invoice_paid_date, invoice_payment_method,
			created_by, created_by_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.CustomerID, order.CustomerName, order.CustomerEmail,
		order.Status, order.OrderDate, order.DeliveryDate, order.Total,
		order.ShippingAddress.Street, order.ShippingAddress.City, order.ShippingAddress.State, order.ShippingAddress.ZipCode,
		order.Invoice.InvoiceNumber, order.Invoice.Amount, order.Invoice.Status, order.Invoice.DueDate,
		order.Invoice.PaidDate, order.Invoice.PaymentMethod,
		order.CreatedBy, order.CreatedByName, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	for i := range order.Items {
		it := &order.Items[i]
		_, err := r.q.Exec(context.Background(), `
			INSERT INTO order_items (id, order_id, product_id, product_sku, product_name, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, order.ID, it.ProductID, it.ProductSKU, it.ProductName, it.Quantity, it.UnitPrice, it.LineTotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene un pedido con sus líneas.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	items, err := r.itemsFor([]string{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return o, nil
}

// List lista pedidos (más reciente primero) con filtros, total y líneas cargadas.
func (r *OrderRepo) List(filter repository.OrderFilter, limit, offset int) ([]*entity.Order, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	i := 1
	if filter.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, i)
		args = append(args, filter.Status)
		i++
	}
	if filter.CustomerID != "" {
		where += fmt.Sprintf(` AND customer_id = $%d`, i)
		args = append(args, filter.CustomerID)
		i++
	}

	var total int
	if err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `SELECT ` + orderColumns + ` FROM orders` + where +
		fmt.Sprintf(` ORDER BY order_date DESC LIMIT $%d OFFSET $%d`, i, i+1)
	args = append(args, limit, offset)
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	var ids []string
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	if len(ids) > 0 {
		items, err := r.itemsFor(ids)
		if err != nil {
			return nil, 0, err
		}
		for _, o := range list {
			o.Items = items[o.ID]
		}
	}
	return list, total, nil
}

// itemsFor carga las líneas de un conjunto de pedidos en una sola consulta.
func (r *OrderRepo) itemsFor(orderIDs []string) (map[string][]entity.OrderItem, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, order_id, product_id, product_sku, product_name, quantity, unit_price, line_total
		FROM order_items WHERE order_id = ANY($1)`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	result := make(map[string][]entity.OrderItem, len(orderIDs))
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductSKU, &it.ProductName,
			&it.Quantity, &it.UnitPrice, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		result[it.OrderID] = append(result[it.OrderID], it)
	}
	return result, rows.Err()
}

// UpdateStatus persiste el estado de entrega y la fecha de entrega.
func (r *OrderRepo) UpdateStatus(order *entity.Order) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE orders SET status = $2, delivery_date = $3, updated_at = $4 WHERE id = $1`,
		order.ID, order.Status, order.DeliveryDate, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// UpdateInvoice persiste el estado de cobro de la factura embebida.
func (r *OrderRepo) UpdateInvoice(order *entity.Order) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE orders SET invoice_status = $2, invoice_paid_date = $3, invoice_payment_method = $4, updated_at = $5
		WHERE id = $1`,
		order.ID, order.Invoice.Status, order.Invoice.PaidDate, order.Invoice.PaymentMethod, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order invoice: %w", err)
	}
	return nil
}
