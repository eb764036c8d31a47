package sales_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgrid/flowgrid-api/internal/application/dto"
	"github.com/flowgrid/flowgrid-api/internal/application/sales"
	"github.com/flowgrid/flowgrid-api/internal/domain"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *fakeProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error           { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateStock(id string, stock int, status string) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.Status = status
	return nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

type fakeCustomerRepo struct {
	customers  map[string]*entity.Customer
	statsCalls []decimal.Decimal // totales aplicados vía ApplyOrderStats
}

func (r *fakeCustomerRepo) Create(c *entity.Customer) error { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r *fakeCustomerRepo) GetByEmail(email string) (*entity.Customer, error) { return nil, nil }
func (r *fakeCustomerRepo) List(repository.CustomerFilter, int, int) ([]*entity.Customer, int, error) {
	return nil, 0, nil
}
func (r *fakeCustomerRepo) ListCompanyNames() ([]repository.CompanyName, error) { return nil, nil }
func (r *fakeCustomerRepo) Update(c *entity.Customer) error                     { r.customers[c.ID] = c; return nil }
func (r *fakeCustomerRepo) ApplyOrderStats(id string, orderTotal decimal.Decimal, lastContact time.Time) error {
	c, ok := r.customers[id]
	if !ok {
		return domain.ErrNotFound
	}
	c.TotalOrders++
	c.TotalValue = c.TotalValue.Add(orderTotal)
	c.LastContact = &lastContact
	r.statsCalls = append(r.statsCalls, orderTotal)
	return nil
}
func (r *fakeCustomerRepo) Delete(id string) error { delete(r.customers, id); return nil }

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func (r *fakeOrderRepo) Create(o *entity.Order) error { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}
func (r *fakeOrderRepo) List(repository.OrderFilter, int, int) ([]*entity.Order, int, error) {
	return nil, 0, nil
}
func (r *fakeOrderRepo) UpdateStatus(o *entity.Order) error  { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) UpdateInvoice(o *entity.Order) error { r.orders[o.ID] = o; return nil }

type fakeCounterRepo struct {
	values map[string]int64
}

func (r *fakeCounterRepo) Next(name string) (int64, error) {
	r.values[name]++
	return r.values[name], nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(u *entity.User) error { r.users[u.ID] = u; return nil }
func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}
func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (r *fakeUserRepo) Update(u *entity.User) error { r.users[u.ID] = u; return nil }

// fakeTxRunner ejecuta fn contra los fakes. Si fn falla, restaura los
// snapshots para emular el rollback de la transacción real.
type fakeTxRunner struct {
	products  *fakeProductRepo
	customers *fakeCustomerRepo
	orders    *fakeOrderRepo
	counters  *fakeCounterRepo
}

func (tr *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	counterRepo repository.CounterRepository,
) error) error {
	productSnap := snapshotProducts(tr.products.products)
	customerSnap := snapshotCustomers(tr.customers.customers)
	orderSnap := snapshotOrders(tr.orders.orders)

	if err := fn(tr.products, tr.customers, tr.orders, tr.counters); err != nil {
		tr.products.products = productSnap
		tr.customers.customers = customerSnap
		tr.orders.orders = orderSnap
		return err
	}
	return nil
}

func snapshotProducts(m map[string]*entity.Product) map[string]*entity.Product {
	out := make(map[string]*entity.Product, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

func snapshotCustomers(m map[string]*entity.Customer) map[string]*entity.Customer {
	out := make(map[string]*entity.Customer, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

func snapshotOrders(m map[string]*entity.Order) map[string]*entity.Order {
	out := make(map[string]*entity.Order, len(m))
	for k, v := range m {
		cp := *v
		out[k] = &cp
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

type orderFixture struct {
	uc        *sales.OrderUseCase
	products  *fakeProductRepo
	customers *fakeCustomerRepo
	orders    *fakeOrderRepo
	counters  *fakeCounterRepo
}

func newOrderFixture() *orderFixture {
	products := &fakeProductRepo{products: map[string]*entity.Product{
		"prod-1": {
			ID:     "prod-1",
			SKU:    "TEC-0001",
			Name:   "Teclado mecánico",
			Price:  decimal.NewFromInt(10),
			Stock:  5,
			Status: entity.ProductStatusLowStock,
		},
		"prod-2": {
			ID:     "prod-2",
			SKU:    "MON-0002",
			Name:   "Monitor 24\"",
			Price:  decimal.NewFromFloat(150.50),
			Stock:  20,
			Status: entity.ProductStatusActive,
		},
	}}
	customers := &fakeCustomerRepo{customers: map[string]*entity.Customer{
		"cust-1": {
			ID:         "cust-1",
			Name:       "Acme Corp",
			Email:      "compras@acme.test",
			Status:     "active",
			TotalValue: decimal.Zero,
		},
	}}
	orders := &fakeOrderRepo{orders: map[string]*entity.Order{}}
	counters := &fakeCounterRepo{values: map[string]int64{}}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"user-1": {ID: "user-1", Email: "vendedor@flowgrid.test", Name: "Vendedor Uno", Role: "sales_rep", Status: "active"},
	}}

	txRunner := &fakeTxRunner{products: products, customers: customers, orders: orders, counters: counters}
	uc := sales.NewOrderUseCase(txRunner, orders, customers, users)
	return &orderFixture{uc: uc, products: products, customers: customers, orders: orders, counters: counters}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_PedidoExitoso(t *testing.T) {
	fx := newOrderFixture()

	resp, err := fx.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerID: "cust-1",
		OrderItems: []dto.OrderItemRequest{
			{ProductID: "prod-1", Quantity: 2},
		},
		ShippingAddress: dto.AddressDTO{Street: "Calle 1", City: "Bogotá"},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	// Total = precio snapshot × cantidad
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(20)),
		"total esperado 20, obtenido %s", resp.Total)
	require.Len(t, resp.OrderItems, 1)
	assert.Equal(t, "TEC-0001", resp.OrderItems[0].ProductSKU, "la línea debe copiar el SKU")
	assert.Equal(t, "Teclado mecánico", resp.OrderItems[0].ProductName)
	assert.True(t, resp.OrderItems[0].UnitPrice.Equal(decimal.NewFromInt(10)))

	// Numeración: pedido y factura comparten consecutivo
	year := time.Now().Year()
	assert.Equal(t, formatOrderNumber(year, 1), resp.OrderNumber)
	assert.Equal(t, formatInvoiceNumber(year, 1), resp.Invoice.InvoiceNumber)

	// Estado inicial y factura pendiente con vencimiento a 30 días
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Equal(t, entity.InvoiceStatusPending, resp.Invoice.Status)
	assert.True(t, resp.Invoice.Amount.Equal(resp.Total), "el monto de factura es el total del pedido")
	expectedDue := resp.OrderDate.AddDate(0, 0, 30)
	assert.WithinDuration(t, expectedDue, resp.Invoice.DueDate, time.Second)

	// Efectos laterales: stock descontado y estado re-derivado
	product, _ := fx.products.GetByID("prod-1")
	assert.Equal(t, 3, product.Stock)
	assert.Equal(t, entity.ProductStatusLowStock, product.Status)

	// Acumulados del cliente
	customer, _ := fx.customers.GetByID("cust-1")
	assert.Equal(t, 1, customer.TotalOrders)
	assert.True(t, customer.TotalValue.Equal(decimal.NewFromInt(20)))
	require.NotNil(t, customer.LastContact)

	// Snapshot del creador
	assert.Equal(t, "user-1", resp.CreatedBy)
	assert.Equal(t, "Vendedor Uno", resp.CreatedByName)
}

func TestCreateOrder_StockAgotaElProducto(t *testing.T) {
	fx := newOrderFixture()

	_, err := fx.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerID: "cust-1",
		OrderItems: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 5}},
	})
	require.NoError(t, err)

	product, _ := fx.products.GetByID("prod-1")
	assert.Equal(t, 0, product.Stock)
	assert.Equal(t, entity.ProductStatusOutOfStock, product.Status,
		"stock cero debe derivar out_of_stock")
}

func TestCreateOrder_StockInsuficiente_SinEfectosParciales(t *testing.T) {
	fx := newOrderFixture()

	// prod-2 sí alcanza, prod-1 no: la transacción debe revertir TODO
	_, err := fx.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerID: "cust-1",
		OrderItems: []dto.OrderItemRequest{
			{ProductID: "prod-2", Quantity: 1},
			{ProductID: "prod-1", Quantity: 99},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó mutado
	p1, _ := fx.products.GetByID("prod-1")
	p2, _ := fx.products.GetByID("prod-2")
	assert.Equal(t, 5, p1.Stock)
	assert.Equal(t, 20, p2.Stock, "el stock de la primera línea debe revertirse")
	customer, _ := fx.customers.GetByID("cust-1")
	assert.Equal(t, 0, customer.TotalOrders)
	assert.Empty(t, fx.orders.orders, "no debe persistirse ningún pedido")
}

func TestCreateOrder_ClienteInexistente(t *testing.T) {
	fx := newOrderFixture()

	_, err := fx.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerID: "cust-ghost",
		OrderItems: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_UsuarioInexistente(t *testing.T) {
	fx := newOrderFixture()

	_, err := fx.uc.CreateOrder(context.Background(), "user-ghost", dto.CreateOrderRequest{
		CustomerID: "cust-1",
		OrderItems: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestCreateOrder_SinLineas(t *testing.T) {
	fx := newOrderFixture()

	_, err := fx.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerID: "cust-1",
		OrderItems: nil,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_CantidadInvalida(t *testing.T) {
	fx := newOrderFixture()

	_, err := fx.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerID: "cust-1",
		OrderItems: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_ConsecutivoIncrementa(t *testing.T) {
	fx := newOrderFixture()
	year := time.Now().Year()

	for i := 1; i <= 3; i++ {
		resp, err := fx.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
			CustomerID: "cust-1",
			OrderItems: []dto.OrderItemRequest{{ProductID: "prod-2", Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, formatOrderNumber(year, i), resp.OrderNumber)
		assert.Equal(t, formatInvoiceNumber(year, i), resp.Invoice.InvoiceNumber)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// UpdateStatus / UpdateInvoice
// ──────────────────────────────────────────────────────────────────────────────

func placeOrder(t *testing.T, fx *orderFixture) *dto.OrderResponse {
	t.Helper()
	resp, err := fx.uc.CreateOrder(context.Background(), "user-1", dto.CreateOrderRequest{
		CustomerID: "cust-1",
		OrderItems: []dto.OrderItemRequest{{ProductID: "prod-1", Quantity: 2}},
	})
	require.NoError(t, err)
	return resp
}

func TestUpdateStatus_ProgresionValida(t *testing.T) {
	fx := newOrderFixture()
	order := placeOrder(t, fx)

	for _, next := range []string{
		entity.OrderStatusProcessing,
		entity.OrderStatusShipped,
		entity.OrderStatusCompleted,
	} {
		resp, err := fx.uc.UpdateStatus(order.ID, dto.UpdateOrderRequest{Status: next})
		require.NoError(t, err)
		assert.Equal(t, next, resp.Status)
	}
}

func TestUpdateStatus_SaltoHaciaAdelantePermitido(t *testing.T) {
	fx := newOrderFixture()
	order := placeOrder(t, fx)

	// pending → shipped saltándose processing: avance permitido
	resp, err := fx.uc.UpdateStatus(order.ID, dto.UpdateOrderRequest{Status: entity.OrderStatusShipped})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, resp.Status)
}

func TestUpdateStatus_RetrocesoRechazado(t *testing.T) {
	fx := newOrderFixture()
	order := placeOrder(t, fx)

	_, err := fx.uc.UpdateStatus(order.ID, dto.UpdateOrderRequest{Status: entity.OrderStatusShipped})
	require.NoError(t, err)

	_, err = fx.uc.UpdateStatus(order.ID, dto.UpdateOrderRequest{Status: entity.OrderStatusProcessing})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "retroceder en la progresión debe rechazarse")
}

func TestUpdateStatus_CancelarNoReponeStock(t *testing.T) {
	fx := newOrderFixture()
	order := placeOrder(t, fx) // descuenta 2 unidades de prod-1 (5 → 3)

	resp, err := fx.uc.UpdateStatus(order.ID, dto.UpdateOrderRequest{Status: entity.OrderStatusCancelled})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)

	product, _ := fx.products.GetByID("prod-1")
	assert.Equal(t, 3, product.Stock, "cancelar no debe reponer el stock descontado")
}

func TestUpdateStatus_PedidoCanceladoEsTerminal(t *testing.T) {
	fx := newOrderFixture()
	order := placeOrder(t, fx)

	_, err := fx.uc.UpdateStatus(order.ID, dto.UpdateOrderRequest{Status: entity.OrderStatusCancelled})
	require.NoError(t, err)

	_, err = fx.uc.UpdateStatus(order.ID, dto.UpdateOrderRequest{Status: entity.OrderStatusProcessing})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestUpdateStatus_PedidoInexistente(t *testing.T) {
	fx := newOrderFixture()
	resp, err := fx.uc.UpdateStatus("no-existe", dto.UpdateOrderRequest{Status: entity.OrderStatusProcessing})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestUpdateInvoice_MarcarPagada(t *testing.T) {
	fx := newOrderFixture()
	order := placeOrder(t, fx)

	resp, err := fx.uc.UpdateInvoice(order.ID, dto.UpdateInvoiceRequest{
		Status:        entity.InvoiceStatusPaid,
		PaymentMethod: "transferencia",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoiceStatusPaid, resp.Invoice.Status)
	assert.Equal(t, "transferencia", resp.Invoice.PaymentMethod)
	require.NotNil(t, resp.Invoice.PaidDate, "paid sin fecha explícita usa la fecha actual")
	assert.WithinDuration(t, time.Now(), *resp.Invoice.PaidDate, 2*time.Second)
}

func TestUpdateInvoice_EstadoInvalido(t *testing.T) {
	fx := newOrderFixture()
	order := placeOrder(t, fx)

	_, err := fx.uc.UpdateInvoice(order.ID, dto.UpdateInvoiceRequest{Status: "refunded"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// util
// ──────────────────────────────────────────────────────────────────────────────

func formatOrderNumber(year, seq int) string {
	return fmt.Sprintf("ORD-%d-%05d", year, seq)
}

func formatInvoiceNumber(year, seq int) string {
	return fmt.Sprintf("INV-%d-%05d", year, seq)
}
