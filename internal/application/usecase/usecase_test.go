package usecase_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/dto"
	"github.com/jhoicas/stockcontrol-gateway/internal/application/usecase"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/entity"
	"github.com/jhoicas/stockcontrol-gateway/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fakeItems struct {
	items    map[string]entity.Item
	costs    *entity.ItemCosts
	costsErr error
	lastPut  *entity.Item
	filters  []repository.ItemFilter
}

func (f *fakeItems) List(_ context.Context, filter repository.ItemFilter) (*repository.Page[entity.Item], error) {
	f.filters = append(f.filters, filter)
	out := make([]entity.Item, 0, len(f.items))
	for _, it := range f.items {
		out = append(out, it)
	}
	return &repository.Page[entity.Item]{Results: out, Count: len(out), Page: 1}, nil
}

func (f *fakeItems) Get(_ context.Context, sku string) (*entity.Item, error) {
	it, ok := f.items[sku]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &it, nil
}

func (f *fakeItems) Create(_ context.Context, it *entity.Item) (*entity.Item, error) {
	f.items[it.SKU] = *it
	return it, nil
}

func (f *fakeItems) Update(_ context.Context, it *entity.Item) (*entity.Item, error) {
	f.lastPut = it
	f.items[it.SKU] = *it
	return it, nil
}

func (f *fakeItems) Delete(_ context.Context, sku string) error {
	delete(f.items, sku)
	return nil
}

func (f *fakeItems) Costs(_ context.Context, _ string) (*entity.ItemCosts, error) {
	if f.costsErr != nil {
		return nil, f.costsErr
	}
	return f.costs, nil
}

type fakeStockCosts struct {
	rows    []entity.StockCost
	filters []repository.StockCostFilter
}

func (f *fakeStockCosts) List(_ context.Context, filter repository.StockCostFilter) (*repository.Page[entity.StockCost], error) {
	f.filters = append(f.filters, filter)
	return &repository.Page[entity.StockCost]{Results: f.rows, Count: len(f.rows)}, nil
}

type fakeUsers struct {
	repository.UserRepository
	registered *repository.UserRegistration
	updated    *repository.UserUpdate
}

func (f *fakeUsers) Register(_ context.Context, r repository.UserRegistration) (*entity.User, error) {
	f.registered = &r
	return &entity.User{ID: 9, Username: r.Username, IsActive: r.IsActive, Permissions: r.Permissions}, nil
}

func (f *fakeUsers) Update(_ context.Context, id int64, u repository.UserUpdate) (*entity.User, error) {
	f.updated = &u
	out := &entity.User{ID: id, Username: "op"}
	if u.Permissions != nil {
		out.Permissions = *u.Permissions
	}
	return out, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Itens
// ──────────────────────────────────────────────────────────────────────────────

func TestItemUseCase_AverageCostDelEndpointDeItem(t *testing.T) {
	items := &fakeItems{items: map[string]entity.Item{}, costs: &entity.ItemCosts{AverageCost: d("16.67"), LastEntryCost: d("20")}}
	uc := usecase.NewItemUseCase(items, &fakeStockCosts{})

	out, err := uc.AverageCost(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, usecase.CostSourceItem, out.Source)
	assert.Equal(t, "16.67", out.AverageCost.String())
	assert.Equal(t, "R$ 16,67", out.AverageCostFormatted)
}

// Caso: custo-medio falla → se usa la fila del SKU exacto en stock-costs.
func TestItemUseCase_AverageCostRecurreAStockCosts(t *testing.T) {
	last := d("12")
	costs := &fakeStockCosts{rows: []entity.StockCost{
		{SKU: "A-2", UnitCost: d("99")},
		{SKU: "A", UnitCost: d("10.5"), LastEntryCost: &last},
	}}
	items := &fakeItems{items: map[string]entity.Item{}, costsErr: fmt.Errorf("boom: %w", domain.ErrUpstream)}
	uc := usecase.NewItemUseCase(items, costs)

	out, err := uc.AverageCost(context.Background(), "A")
	require.NoError(t, err)
	assert.Equal(t, usecase.CostSourceStockCost, out.Source)
	assert.Equal(t, "10.5", out.AverageCost.String())
	assert.Equal(t, "12", out.LastEntryCost.String())
	require.Len(t, costs.filters, 1)
	assert.Equal(t, "A", costs.filters[0].SKU)
}

func TestItemUseCase_AverageCostSesionExpiradaNoRecurre(t *testing.T) {
	costs := &fakeStockCosts{}
	items := &fakeItems{items: map[string]entity.Item{}, costsErr: domain.ErrSessionExpired}
	uc := usecase.NewItemUseCase(items, costs)

	_, err := uc.AverageCost(context.Background(), "A")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Empty(t, costs.filters)
}

// Caso: el PUT lleva el item completo con sólo los campos cambiados.
func TestItemUseCase_UpdateCombinaCampos(t *testing.T) {
	items := &fakeItems{items: map[string]entity.Item{
		"A": {SKU: "A", Description: "Parafuso", UnitMeasure: "UN", Active: true},
	}}
	uc := usecase.NewItemUseCase(items, &fakeStockCosts{})

	out, err := uc.Update(context.Background(), "A", dto.UpdateItemRequest{Active: ptr(false)})
	require.NoError(t, err)
	require.NotNil(t, items.lastPut)
	assert.Equal(t, "Parafuso", items.lastPut.Description)
	assert.Equal(t, "UN", items.lastPut.UnitMeasure)
	assert.False(t, out.Active)

	_, err = uc.Update(context.Background(), "A", dto.UpdateItemRequest{DescricaoItem: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), "Z", dto.UpdateItemRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemUseCase_CreateYSearch(t *testing.T) {
	items := &fakeItems{items: map[string]entity.Item{}}
	uc := usecase.NewItemUseCase(items, &fakeStockCosts{})
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.ItemRequest{CodSku: "A"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Create(ctx, dto.ItemRequest{CodSku: " A ", DescricaoItem: "Parafuso", UnidMedida: "UN"})
	require.NoError(t, err)
	assert.Equal(t, "A", out.CodSku)
	assert.True(t, out.Active, "sin active explícito se crea activo")

	found, err := uc.Search(ctx, "  ")
	require.NoError(t, err)
	assert.Empty(t, found)
	assert.Empty(t, items.filters, "término vacío no consulta el backend")

	found, err = uc.Search(ctx, "paraf")
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "paraf", items.filters[0].Search)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestUserUseCase_CreateValidaContrasenas(t *testing.T) {
	users := &fakeUsers{}
	uc := usecase.NewUserUseCase(users)
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateUserRequest{Username: "op", Password: "a", Password2: "b"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, users.registered)

	out, err := uc.Create(ctx, dto.CreateUserRequest{Username: "op", Password: "a", Password2: "a"})
	require.NoError(t, err)
	assert.True(t, users.registered.IsActive)
	assert.Equal(t, entity.RoleOperator, out.Role)

	_, err = uc.Update(ctx, 9, dto.UpdateUserRequest{Password: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUseCase_UpdatePermissionsDeduplica(t *testing.T) {
	users := &fakeUsers{}
	uc := usecase.NewUserUseCase(users)

	out, err := uc.UpdatePermissions(context.Background(), 3, []string{"view_item", " view_item ", "", "add_item"})
	require.NoError(t, err)
	assert.Equal(t, []string{"view_item", "add_item"}, *users.updated.Permissions)
	assert.Equal(t, []string{"view_item", "add_item"}, out.PermissionsList)
}

// ──────────────────────────────────────────────────────────────────────────────
// Navegación y preferencias
// ──────────────────────────────────────────────────────────────────────────────

func paths(entries []dto.NavigationEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}

func TestNavigationService_MenuPorRol(t *testing.T) {
	nav := usecase.NewNavigationService()

	assert.Equal(t, []string{"/login"}, paths(nav.Menu(nil)))

	operator := paths(nav.Menu(&entity.User{}))
	assert.NotContains(t, operator, "/transacao")
	assert.NotContains(t, operator, "/usuarios")
	assert.Contains(t, operator, "/estoques")

	staff := paths(nav.Menu(&entity.User{IsStaff: true}))
	assert.Contains(t, staff, "/transacao")
	assert.NotContains(t, staff, "/usuarios")

	master := paths(nav.Menu(&entity.User{IsMaster: true}))
	assert.Contains(t, master, "/usuarios")

	assert.False(t, nav.CanAccess(&entity.User{IsStaff: true}, "/usuarios"))
	assert.True(t, nav.CanAccess(&entity.User{IsSuperuser: true}, "/usuarios"))
	assert.False(t, nav.CanAccess(&entity.User{}, "/desconocida"))
}

func TestPreferencesUseCase_UpdateYReset(t *testing.T) {
	uc := usecase.NewPreferencesUseCase()
	s := entity.NewSession(time.Now())

	_, err := uc.Update(s, dto.PreferencesDTO{FontSize: "huge"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.Update(s, dto.PreferencesDTO{FontSize: entity.FontLarge, HighContrast: true})
	require.NoError(t, err)
	assert.True(t, out.HighContrast)
	assert.Contains(t, out.Classes, "high-contrast")

	out, err = uc.Update(s, dto.PreferencesDTO{ReducedMotion: true})
	require.NoError(t, err)
	assert.Equal(t, entity.FontLarge, out.FontSize, "tamaño vacío conserva el actual")
	assert.False(t, out.HighContrast)

	reset := uc.Reset(s)
	assert.Equal(t, entity.DefaultPreferences().FontSize, reset.FontSize)
	assert.Equal(t, 1.0, reset.FontSizeMultiplier)
}

func TestStockCostUseCase_LastEntryCost(t *testing.T) {
	last := d("7.5")
	costs := &fakeStockCosts{rows: []entity.StockCost{{SKU: "AB"}, {SKU: "A", LastEntryCost: &last}}}
	uc := usecase.NewStockCostUseCase(costs)

	got, err := uc.LastEntryCost(context.Background(), "A")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "7.5", got.String())
	assert.NotEmpty(t, costs.filters[0].StockDate)

	got, err = uc.LastEntryCost(context.Background(), "Z")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStockCostUseCase_ListSumaTotal(t *testing.T) {
	costs := &fakeStockCosts{rows: []entity.StockCost{
		{SKU: "A", TotalCost: d("15")}, {SKU: "B", TotalCost: d("9.5")},
	}}
	out, err := usecase.NewStockCostUseCase(costs).List(context.Background(), repository.StockCostFilter{})
	require.NoError(t, err)
	assert.Equal(t, "24.5", out.TotalValue.String())
	assert.Len(t, out.Results, 2)
}
