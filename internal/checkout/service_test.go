package checkout

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/geocart/geocart-backend/internal/cart"
	"github.com/geocart/geocart-backend/internal/orders"
	"github.com/geocart/geocart-backend/pkg/db/models"
	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
)

type fakeCarts struct {
	cart    *cart.Cart
	cleared int
}

func (f *fakeCarts) Snapshot(_ context.Context, _ string) (*cart.Cart, error) {
	return f.cart, nil
}

func (f *fakeCarts) Clear(_ context.Context, _ string) error {
	f.cleared++
	return nil
}

type fakeStoreLookup struct {
	stores map[uuid.UUID]*models.Store
}

func (f *fakeStoreLookup) FindByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	if s, ok := f.stores[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type sqliteTx struct {
	conn *gorm.DB
}

func (s *sqliteTx) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	tx := s.conn.Begin()
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

type checkoutFixture struct {
	svc   Service
	carts *fakeCarts
	conn  *gorm.DB
	store *models.Store
}

func newCheckoutFixture(t *testing.T, c *cart.Cart) *checkoutFixture {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	store := &models.Store{ID: uuid.New(), Name: "Corner Shop"}
	if c.HasStore() {
		store.ID = *c.StoreID
	}

	carts := &fakeCarts{cart: c}
	svc, err := NewService(ServiceParams{
		Carts:     carts,
		Stores:    &fakeStoreLookup{stores: map[uuid.UUID]*models.Store{store.ID: store}},
		OrderRepo: orders.NewRepository(conn),
		Tx:        &sqliteTx{conn: conn},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return &checkoutFixture{svc: svc, carts: carts, conn: conn, store: store}
}

func cartWithItems(t *testing.T) *cart.Cart {
	t.Helper()
	c := cart.New()
	storeID := uuid.New()
	c.SetStore(storeID, "Corner Shop")
	c.AddItem(uuid.New(), "Chai", decimal.RequireFromString("12.50"), "")
	c.AddItem(uuid.New(), "Samosa", decimal.RequireFromString("5.25"), "")
	c.UpdateQuantity(c.Items[1].ProductID, 2)
	// total: 12.50 + 5.25*2 = 23.00
	return c
}

func codRequest() SubmitRequest {
	return SubmitRequest{PaymentMethod: "cod"}
}

func orderCount(t *testing.T, conn *gorm.DB) int64 {
	t.Helper()
	var count int64
	if err := conn.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	return count
}

func TestSubmitPersistsOrderAndClearsCart(t *testing.T) {
	fixture := newCheckoutFixture(t, cartWithItems(t))
	userID := uuid.New()

	resp, err := fixture.svc.Submit(context.Background(), userID, codRequest())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !regexp.MustCompile(`^GC-\d{6}$`).MatchString(resp.OrderNumber) {
		t.Fatalf("expected GC-NNNNNN order number got %q", resp.OrderNumber)
	}

	var order models.Order
	if err := fixture.conn.Preload("Items").First(&order, "id = ?", resp.OrderID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if !order.Total.Equal(decimal.RequireFromString("23.00")) {
		t.Fatalf("expected recomputed total 23.00 got %s", order.Total)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 line items got %d", len(order.Items))
	}
	if order.StoreName != "Corner Shop" {
		t.Fatalf("expected store name snapshot got %q", order.StoreName)
	}
	if fixture.carts.cleared != 1 {
		t.Fatalf("expected cart cleared once got %d", fixture.carts.cleared)
	}
}

func TestSubmitEmptyCartPrecondition(t *testing.T) {
	fixture := newCheckoutFixture(t, cart.New())

	_, err := fixture.svc.Submit(context.Background(), uuid.New(), codRequest())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodePrecondition {
		t.Fatalf("expected PRECONDITION got %v", err)
	}
	if fixture.carts.cleared != 0 {
		t.Fatal("failed submit must not clear the cart")
	}
	if orderCount(t, fixture.conn) != 0 {
		t.Fatal("failed submit must not persist an order")
	}
}

func TestSubmitNoStoreSelectedPrecondition(t *testing.T) {
	c := cart.New()
	c.Items = append(c.Items, cart.Item{
		ProductID: uuid.New(),
		Name:      "Loose Item",
		Price:     decimal.RequireFromString("1.00"),
		Quantity:  1,
	})
	fixture := newCheckoutFixture(t, c)

	_, err := fixture.svc.Submit(context.Background(), uuid.New(), codRequest())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodePrecondition {
		t.Fatalf("expected PRECONDITION got %v", err)
	}
}

func TestSubmitInvalidPaymentBlocksBeforeCart(t *testing.T) {
	fixture := newCheckoutFixture(t, cartWithItems(t))

	_, err := fixture.svc.Submit(context.Background(), uuid.New(), SubmitRequest{
		PaymentMethod: "card",
		Card:          &CardInput{Number: "42", Expiry: "01/20", CVV: "1"},
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected VALIDATION got %v", err)
	}
	if orderCount(t, fixture.conn) != 0 {
		t.Fatal("invalid payment must not persist an order")
	}
	if fixture.carts.cleared != 0 {
		t.Fatal("invalid payment must not clear the cart")
	}
}

func TestSubmitClientTotalMismatch(t *testing.T) {
	fixture := newCheckoutFixture(t, cartWithItems(t))

	stale := "19.99"
	_, err := fixture.svc.Submit(context.Background(), uuid.New(), SubmitRequest{
		PaymentMethod: "cod",
		ClientTotal:   &stale,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodePrecondition {
		t.Fatalf("expected PRECONDITION got %v", err)
	}
	if orderCount(t, fixture.conn) != 0 {
		t.Fatal("mismatched total must not persist an order")
	}
}

func TestSubmitClientTotalMatchAccepted(t *testing.T) {
	fixture := newCheckoutFixture(t, cartWithItems(t))

	match := "23.00"
	resp, err := fixture.svc.Submit(context.Background(), uuid.New(), SubmitRequest{
		PaymentMethod: "cod",
		ClientTotal:   &match,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if resp.OrderID == uuid.Nil {
		t.Fatal("expected order id")
	}
}

func TestSubmitMissingStorePrecondition(t *testing.T) {
	c := cartWithItems(t)
	fixture := newCheckoutFixture(t, c)
	// Point the cart at a store the lookup does not know.
	ghost := uuid.New()
	c.StoreID = &ghost

	_, err := fixture.svc.Submit(context.Background(), uuid.New(), codRequest())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodePrecondition {
		t.Fatalf("expected PRECONDITION got %v", err)
	}
}
