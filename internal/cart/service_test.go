package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/geocart/geocart-backend/pkg/config"
	"github.com/geocart/geocart-backend/pkg/db/models"
	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
)

type memoryCartStore struct {
	carts   map[string]*Cart
	cleared []string
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: make(map[string]*Cart)}
}

func (m *memoryCartStore) Load(_ context.Context, userID string) (*Cart, error) {
	if cart, ok := m.carts[userID]; ok {
		cpy := *cart
		cpy.Items = append([]Item(nil), cart.Items...)
		return &cpy, nil
	}
	return New(), nil
}

func (m *memoryCartStore) Save(_ context.Context, userID string, cart *Cart) error {
	m.carts[userID] = cart
	return nil
}

func (m *memoryCartStore) Clear(_ context.Context, userID string) error {
	delete(m.carts, userID)
	m.cleared = append(m.cleared, userID)
	return nil
}

type fakeCatalog struct {
	products map[uuid.UUID]*models.Product
	stores   map[uuid.UUID]*models.Store
}

func (f *fakeCatalog) FindByID(_ context.Context, id uuid.UUID) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeStores struct {
	stores map[uuid.UUID]*models.Store
}

func (f *fakeStores) FindByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	if s, ok := f.stores[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func cartTestConfig() config.CartConfig {
	return config.CartConfig{MaxLineItems: 100, MaxQuantity: 999}
}

func newCartFixture(t *testing.T) (Service, *memoryCartStore, *models.Product, *models.Store) {
	t.Helper()
	store := &models.Store{ID: uuid.New(), Name: "Corner Shop"}
	product := &models.Product{
		ID:       uuid.New(),
		StoreID:  store.ID,
		Name:     "Chai",
		Price:    decimal.RequireFromString("12.50"),
		ImageURL: "https://cdn.example.com/chai.png",
		Store:    store,
	}
	backing := newMemoryCartStore()
	svc, err := NewService(
		backing,
		&fakeCatalog{products: map[uuid.UUID]*models.Product{product.ID: product}},
		&fakeStores{stores: map[uuid.UUID]*models.Store{store.ID: store}},
		cartTestConfig(),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, backing, product, store
}

func TestServiceAddItemSelectsStoreAndPersists(t *testing.T) {
	svc, backing, product, store := newCartFixture(t)
	ctx := context.Background()

	dto, err := svc.AddItem(ctx, "user-1", product.ID)
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if dto.StoreID == nil || *dto.StoreID != store.ID {
		t.Fatal("expected store auto-selected from product")
	}
	if dto.TotalItems != 1 || dto.TotalPrice != "12.50" {
		t.Fatalf("unexpected totals %+v", dto)
	}
	if _, ok := backing.carts["user-1"]; !ok {
		t.Fatal("expected cart persisted")
	}

	dto, err = svc.AddItem(ctx, "user-1", product.ID)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if dto.TotalItems != 2 || dto.TotalPrice != "25.00" {
		t.Fatalf("unexpected totals after second add %+v", dto)
	}
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	svc, _, _, _ := newCartFixture(t)

	_, err := svc.AddItem(context.Background(), "user-1", uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected NOT_FOUND got %v", err)
	}
}

func TestServiceAddItemFromOtherStoreBlocked(t *testing.T) {
	svc, _, product, _ := newCartFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "user-1", product.ID); err != nil {
		t.Fatalf("add item: %v", err)
	}

	otherStore := &models.Store{ID: uuid.New(), Name: "Other"}
	otherProduct := &models.Product{
		ID:       uuid.New(),
		StoreID:  otherStore.ID,
		Name:     "Coffee",
		Price:    decimal.RequireFromString("20.00"),
		Store:    otherStore,
	}
	catalog := &fakeCatalog{products: map[uuid.UUID]*models.Product{
		product.ID:      product,
		otherProduct.ID: otherProduct,
	}}

	// Rebuild the service with the wider catalog over the same backing store.
	backing := newMemoryCartStore()
	svc2, err := NewService(backing, catalog, &fakeStores{stores: map[uuid.UUID]*models.Store{}}, cartTestConfig())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if _, err := svc2.AddItem(ctx, "user-2", product.ID); err != nil {
		t.Fatalf("seed cart: %v", err)
	}

	_, err = svc2.AddItem(ctx, "user-2", otherProduct.ID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodePrecondition {
		t.Fatalf("expected PRECONDITION got %v", err)
	}
}

func TestServiceUpdateQuantityRemovesAtZero(t *testing.T) {
	svc, _, product, _ := newCartFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "user-1", product.ID); err != nil {
		t.Fatalf("add item: %v", err)
	}

	dto, err := svc.UpdateQuantity(ctx, "user-1", product.ID, 4)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if dto.TotalItems != 4 {
		t.Fatalf("expected quantity 4 got %d", dto.TotalItems)
	}

	dto, err = svc.UpdateQuantity(ctx, "user-1", product.ID, 0)
	if err != nil {
		t.Fatalf("update quantity zero: %v", err)
	}
	if dto.TotalItems != 0 || len(dto.Items) != 0 {
		t.Fatalf("expected empty cart got %+v", dto)
	}
}

func TestServiceUpdateQuantityUnknownProductReturnsCart(t *testing.T) {
	svc, _, product, _ := newCartFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "user-1", product.ID); err != nil {
		t.Fatalf("add item: %v", err)
	}

	dto, err := svc.UpdateQuantity(ctx, "user-1", uuid.New(), 9)
	if err != nil {
		t.Fatalf("update unknown product: %v", err)
	}
	if dto.TotalItems != 1 {
		t.Fatalf("expected cart unchanged got %+v", dto)
	}
}

func TestServiceSelectStoreSwitchClearsItems(t *testing.T) {
	svc, _, product, store := newCartFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "user-1", product.ID); err != nil {
		t.Fatalf("add item: %v", err)
	}

	dto, err := svc.SelectStore(ctx, "user-1", store.ID)
	if err != nil {
		t.Fatalf("reselect same store: %v", err)
	}
	if dto.TotalItems != 1 {
		t.Fatal("reselecting the same store must keep items")
	}
}

func TestServiceClear(t *testing.T) {
	svc, backing, product, _ := newCartFixture(t)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "user-1", product.ID); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if err := svc.Clear(ctx, "user-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(backing.cleared) != 1 {
		t.Fatal("expected backing store cleared")
	}

	dto, err := svc.Get(ctx, "user-1")
	if err != nil {
		t.Fatalf("get after clear: %v", err)
	}
	if dto.TotalItems != 0 {
		t.Fatalf("expected empty cart got %+v", dto)
	}
}
