package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Vestuario-api/internal/application/dto"
	"github.com/jhoicas/Vestuario-api/internal/application/usecase"
	"github.com/jhoicas/Vestuario-api/internal/domain"
	"github.com/jhoicas/Vestuario-api/internal/domain/entity"
	"github.com/jhoicas/Vestuario-api/internal/domain/repository"
)

// fakeProductRepo repo en memoria para los tests del caso de uso.
type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*entity.Product{}}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	for _, existing := range f.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.products, id)
	return nil
}

type fakeCategoryRepo struct {
	categories map[string]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: map[string]*entity.Category{}}
}

func (f *fakeCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCategoryRepo) Update(c *entity.Category) error {
	cp := *c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeCategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range f.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCategoryRepo) Delete(id string) error {
	delete(f.categories, id)
	return nil
}

func newProductFixture(t *testing.T) (*usecase.ProductUseCase, *fakeProductRepo, *fakeCategoryRepo) {
	t.Helper()
	productRepo := newFakeProductRepo()
	categoryRepo := newFakeCategoryRepo()
	categoryRepo.categories["cat1"] = &entity.Category{ID: "cat1", Name: "Camisas"}
	return usecase.NewProductUseCase(productRepo, categoryRepo), productRepo, categoryRepo
}

func validCreateRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:        "CAM-001",
		Name:       "Camisa oxford",
		CategoryID: "cat1",
		CostPrice:  decimal.NewFromFloat(25.00),
		SalePrice:  decimal.NewFromFloat(49.90),
		MinStock:   5,
	}
}

func TestProductUseCase_Create(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	out, err := uc.Create(validCreateRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "CAM-001", out.SKU)
	assert.Equal(t, int64(5), out.MinStock)
}

// El SKU es único: un segundo producto con el mismo SKU debe fallar.
func TestProductUseCase_Create_SKUDuplicado(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	_, err := uc.Create(validCreateRequest())
	require.NoError(t, err)

	_, err = uc.Create(validCreateRequest())
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_Create_CategoriaInexistente(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	in := validCreateRequest()
	in.CategoryID = "no-existe"
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestProductUseCase_Create_MinStockNegativo(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	in := validCreateRequest()
	in.MinStock = -1
	_, err := uc.Create(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Update usa campos puntero: solo lo presente en el body cambia.
func TestProductUseCase_Update_SoloCamposPresentes(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	created, err := uc.Create(validCreateRequest())
	require.NoError(t, err)

	newName := "Camisa oxford slim"
	newMin := int64(10)
	out, err := uc.Update(created.ID, dto.UpdateProductRequest{
		Name:     &newName,
		MinStock: &newMin,
	})
	require.NoError(t, err)

	assert.Equal(t, "Camisa oxford slim", out.Name)
	assert.Equal(t, int64(10), out.MinStock)
	assert.Equal(t, "CAM-001", out.SKU, "el SKU no debe cambiar si no viene en el body")
	assert.True(t, out.SalePrice.Equal(decimal.NewFromFloat(49.90)),
		"el precio no debe cambiar si no viene en el body")
}

func TestProductUseCase_Update_CategoriaInexistente(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	created, err := uc.Create(validCreateRequest())
	require.NoError(t, err)

	bad := "no-existe"
	_, err = uc.Update(created.ID, dto.UpdateProductRequest{CategoryID: &bad})
	assert.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestProductUseCase_GetByID_NoExiste(t *testing.T) {
	uc, _, _ := newProductFixture(t)

	_, err := uc.GetByID("no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUseCase_Delete(t *testing.T) {
	uc, repo, _ := newProductFixture(t)

	created, err := uc.Create(validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(created.ID))
	assert.Empty(t, repo.products)

	err = uc.Delete(created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound, "borrar dos veces debe fallar")
}
