package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/flowgrid/flowgrid-api/internal/application/dto"
	"github.com/flowgrid/flowgrid-api/internal/domain"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// invoiceDueDays plazo de pago de la factura desde la fecha del pedido.
const invoiceDueDays = 30

// OrderUseCase coloca pedidos de venta de forma transaccional con bloqueo de
// fila sobre el stock (SELECT FOR UPDATE) y gestiona su ciclo de vida.
type OrderUseCase struct {
	txRunner     TxRunner
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
) *OrderUseCase {
	return &OrderUseCase{
		txRunner:     txRunner,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
	}
}

// CreateOrder coloca un pedido: valida cliente y líneas, y dentro de una
// transacción bloquea cada producto, verifica stock, copia SKU/nombre/precio
// a la línea, descuenta stock, asigna ORD-/INV- con el mismo consecutivo,
// crea la factura pendiente (vencimiento a 30 días) y actualiza los
// acumulados del cliente. Si algo falla no queda ningún efecto parcial.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.OrderItems) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.OrderItems {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	creator, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, domain.ErrUserNotFound
	}

	now := time.Now()
	var order *entity.Order

	err = uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		orderRepo repository.OrderRepository,
		counterRepo repository.CounterRepository,
	) error {
		customer, err := customerRepo.GetByID(in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.ErrNotFound
		}

		total := decimal.Zero
		items := make([]entity.OrderItem, 0, len(in.OrderItems))
		for _, line := range in.OrderItems {
			product, err := productRepo.GetForUpdate(line.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.Stock < line.Quantity {
				return domain.ErrInsufficientStock
			}
			lineTotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			items = append(items, entity.OrderItem{
				ID:          uuid.New().String(),
				ProductID:   product.ID,
				ProductSKU:  product.SKU,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
				LineTotal:   lineTotal,
			})
			total = total.Add(lineTotal)

			product.ApplyStock(product.Stock - line.Quantity)
			if err := productRepo.UpdateStock(product.ID, product.Stock, product.Status); err != nil {
				return err
			}
		}

		// mismo consecutivo para pedido y factura, ámbito por año
		year := now.Year()
		seq, err := counterRepo.Next(fmt.Sprintf("order-%d", year))
		if err != nil {
			return err
		}
		orderNumber := fmt.Sprintf("ORD-%d-%05d", year, seq)
		invoiceNumber := fmt.Sprintf("INV-%d-%05d", year, seq)

		orderID := uuid.New().String()
		for i := range items {
			items[i].OrderID = orderID
		}
		order = &entity.Order{
			ID:            orderID,
			OrderNumber:   orderNumber,
			CustomerID:    customer.ID,
			CustomerName:  customer.Name,
			CustomerEmail: customer.Email,
			Status:        entity.OrderStatusPending,
			OrderDate:     now,
			Total:         total,
			ShippingAddress: entity.Address{
				Street:  in.ShippingAddress.Street,
				City:    in.ShippingAddress.City,
				State:   in.ShippingAddress.State,
				ZipCode: in.ShippingAddress.ZipCode,
			},
			Items: items,
			Invoice: entity.Invoice{
				InvoiceNumber: invoiceNumber,
				Amount:        total,
				Status:        entity.InvoiceStatusPending,
				DueDate:       now.AddDate(0, 0, invoiceDueDays),
			},
			CreatedBy:     creator.ID,
			CreatedByName: creator.Name,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		return customerRepo.ApplyOrderStats(customer.ID, total, now)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// GetByID obtiene un pedido con líneas y factura.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	return toOrderResponse(order), nil
}

// List lista pedidos con filtros y paginación.
func (uc *OrderUseCase) List(q dto.OrderListQuery) ([]dto.OrderResponse, dto.Pagination, error) {
	q.DefaultPage()
	filter := repository.OrderFilter{Status: q.Status, CustomerID: q.CustomerID}
	list, total, err := uc.orderRepo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

// UpdateStatus cambia el estado de entrega respetando la progresión
// pending→processing→shipped→completed (cancelled desde cualquier estado no
// terminal). Cancelar NO repone stock: las unidades quedan en revisión manual.
func (uc *OrderUseCase) UpdateStatus(id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if !entity.CanTransitionOrder(order.Status, in.Status) {
		return nil, domain.ErrInvalidTransition
	}
	order.Status = in.Status
	if in.DeliveryDate != nil {
		order.DeliveryDate = in.DeliveryDate
	}
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.UpdateStatus(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// UpdateInvoice cambia el estado de cobro de la factura embebida. Al marcar
// paid sin fecha explícita se usa la fecha actual.
func (uc *OrderUseCase) UpdateInvoice(id string, in dto.UpdateInvoiceRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	if !entity.ValidInvoiceStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	order.Invoice.Status = in.Status
	if in.PaymentMethod != "" {
		order.Invoice.PaymentMethod = in.PaymentMethod
	}
	if in.Status == entity.InvoiceStatusPaid {
		paid := time.Now()
		if in.PaidDate != nil {
			paid = *in.PaidDate
		}
		order.Invoice.PaidDate = &paid
	}
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.UpdateInvoice(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			ProductSKU:  it.ProductSKU,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Status:        o.Status,
		OrderDate:     o.OrderDate,
		DeliveryDate:  o.DeliveryDate,
		Total:         o.Total,
		ShippingAddress: dto.AddressDTO{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
		},
		OrderItems:    items,
		Invoice:       toInvoiceResponse(o.Invoice),
		CreatedBy:     o.CreatedBy,
		CreatedByName: o.CreatedByName,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toInvoiceResponse(inv entity.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		InvoiceNumber: inv.InvoiceNumber,
		Amount:        inv.Amount,
		Status:        inv.Status,
		DueDate:       inv.DueDate,
		PaidDate:      inv.PaidDate,
		PaymentMethod: inv.PaymentMethod,
	}
}
