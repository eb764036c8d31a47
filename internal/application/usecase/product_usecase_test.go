package usecase_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgrid/flowgrid-api/internal/application/dto"
	"github.com/flowgrid/flowgrid-api/internal/application/usecase"
	"github.com/flowgrid/flowgrid-api/internal/domain"
	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
)

// fakeProductRepo repositorio en memoria; skuErr fuerza el fallo de GetBySKU
// para simular una caída del almacén.
type fakeProductRepo struct {
	products map[string]*entity.Product
	skuErr   error
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (r *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	if r.skuErr != nil {
		return nil, r.skuErr
	}
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }
func (r *fakeProductRepo) List(repository.ProductFilter, int, int) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *fakeProductRepo) ListLowStock() ([]*entity.Product, error)    { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error              { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) UpdateStock(id string, s int, st string) error {
	return nil
}
func (r *fakeProductRepo) Delete(id string) error { delete(r.products, id); return nil }

func TestProductCreate_DerivaEstadoDesdeStock(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	out, err := uc.Create(dto.CreateProductRequest{
		SKU:   "SKU-001",
		Name:  "Teclado",
		Price: decimal.NewFromInt(10),
		Stock: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusLowStock, out.Status)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	repo := newFakeProductRepo()
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Teclado", Price: decimal.NewFromInt(10), Stock: 5,
	})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Otro", Price: decimal.NewFromInt(20), Stock: 1,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Un fallo del almacén durante la verificación de duplicado debe propagarse,
// no leerse como "no hay duplicado".
func TestProductCreate_FalloDeConsultaSePropaga(t *testing.T) {
	repo := newFakeProductRepo()
	repo.skuErr = errors.New("db: connection reset")
	uc := usecase.NewProductUseCase(repo)

	_, err := uc.Create(dto.CreateProductRequest{
		SKU: "SKU-001", Name: "Teclado", Price: decimal.NewFromInt(10), Stock: 5,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicate)
	assert.Contains(t, err.Error(), "connection reset")
	assert.Empty(t, repo.products, "nada debe persistirse cuando la verificación falla")
}
