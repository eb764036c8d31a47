package usecase

import (
	"time"

	"github.com/flowgrid/flowgrid-api/internal/application/dto"
	"github.com/flowgrid/flowgrid-api/internal/domain"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerUseCase casos de uso CRUD para clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente. El email debe ser único.
func (uc *CustomerUseCase) Create(in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	status := in.Status
	if status == "" {
		status = entity.CustomerStatusActive
	}
	segment := in.Segment
	if segment == "" {
		segment = entity.SegmentSMB
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		Status:     status,
		Company:    in.Company,
		Segment:    segment,
		Address:    toAddress(in.Address),
		TotalValue: decimal.Zero,
		Notes:      in.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	return toCustomerResponse(customer), nil
}

// Update actualiza un cliente. Los acumulados de pedidos no se tocan aquí.
func (uc *CustomerUseCase) Update(id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if in.Email != nil && *in.Email != customer.Email {
		existing, err := uc.repo.GetByEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		customer.Email = *in.Email
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Status != nil {
		customer.Status = *in.Status
	}
	if in.Segment != nil {
		customer.Segment = *in.Segment
	}
	if in.Company != nil {
		customer.Company = *in.Company
	}
	if in.Address != nil {
		customer.Address = toAddress(*in.Address)
	}
	if in.Notes != nil {
		customer.Notes = *in.Notes
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes con filtros y paginación.
func (uc *CustomerUseCase) List(q dto.CustomerListQuery) ([]dto.CustomerResponse, dto.Pagination, error) {
	q.DefaultPage()
	filter := repository.CustomerFilter{Search: q.Search, Status: q.Status, Segment: q.Segment}
	list, total, err := uc.repo.List(filter, q.Limit, q.Offset())
	if err != nil {
		return nil, dto.Pagination{}, err
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return items, dto.NewPagination(q.Page, q.Limit, total), nil
}

// ListCompanyNames lista las empresas de clientes activos o premium.
func (uc *CustomerUseCase) ListCompanyNames() ([]dto.CompanyNameResponse, error) {
	names, err := uc.repo.ListCompanyNames()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyNameResponse, 0, len(names))
	for _, n := range names {
		items = append(items, dto.CompanyNameResponse{ID: n.ID, Company: n.Company})
	}
	return items, nil
}

// Delete elimina un cliente por ID.
func (uc *CustomerUseCase) Delete(id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toAddress(a dto.AddressDTO) entity.Address {
	return entity.Address{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode}
}

func toAddressDTO(a entity.Address) dto.AddressDTO {
	return dto.AddressDTO{Street: a.Street, City: a.City, State: a.State, ZipCode: a.ZipCode}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:          c.ID,
		Name:        c.Name,
		Email:       c.Email,
		Phone:       c.Phone,
		Status:      c.Status,
		Company:     c.Company,
		Segment:     c.Segment,
		Address:     toAddressDTO(c.Address),
		TotalOrders: c.TotalOrders,
		TotalValue:  c.TotalValue,
		LastContact: c.LastContact,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
