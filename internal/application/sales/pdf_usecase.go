package sales

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flowgrid/flowgrid-api/internal/domain"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
)

// OrderPDFLine línea de la factura para el PDF.
type OrderPDFLine struct {
	ProductSKU  string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// OrderPDFData datos planos del pedido que consume el generador de PDF.
type OrderPDFData struct {
	OrderNumber   string
	InvoiceNumber string
	InvoiceStatus string
	OrderDate     time.Time
	DueDate       time.Time
	CustomerName  string
	CustomerEmail string
	ShipTo        entity.Address
	Lines         []OrderPDFLine
	Total         decimal.Decimal
}

// PDFUseCase genera la representación en PDF de la factura de un pedido.
type PDFUseCase struct {
	orderRepo repository.OrderRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(orderRepo repository.OrderRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{orderRepo: orderRepo, generator: generator}
}

// DownloadInvoicePDF carga el pedido y genera el PDF de su factura embebida.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el pedido no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(orderID string) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener pedido: %w", err)
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	lines := make([]OrderPDFLine, 0, len(order.Items))
	for _, it := range order.Items {
		lines = append(lines, OrderPDFLine{
			ProductSKU:  it.ProductSKU,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	data := OrderPDFData{
		OrderNumber:   order.OrderNumber,
		InvoiceNumber: order.Invoice.InvoiceNumber,
		InvoiceStatus: order.Invoice.Status,
		OrderDate:     order.OrderDate,
		DueDate:       order.Invoice.DueDate,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		ShipTo:        order.ShippingAddress,
		Lines:         lines,
		Total:         order.Total,
	}

	pdfBytes, err = uc.generator.GenerateInvoice(data)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("factura_%s.pdf", order.Invoice.InvoiceNumber)
	return pdfBytes, filename, nil
}
