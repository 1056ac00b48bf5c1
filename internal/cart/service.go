package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/geocart/geocart-backend/pkg/config"
	"github.com/geocart/geocart-backend/pkg/db/models"
	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
)

type cartStore interface {
	Load(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, userID string, cart *Cart) error
	Clear(ctx context.Context, userID string) error
}

type productLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

type storeLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

// Service exposes cart operations for the authenticated user.
type Service interface {
	Get(ctx context.Context, userID string) (*CartDTO, error)
	AddItem(ctx context.Context, userID string, productID uuid.UUID) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, userID string, productID uuid.UUID, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (*CartDTO, error)
	SelectStore(ctx context.Context, userID string, storeID uuid.UUID) (*CartDTO, error)
	Snapshot(ctx context.Context, userID string) (*Cart, error)
	Clear(ctx context.Context, userID string) error
}

type service struct {
	store    cartStore
	products productLookup
	stores   storeLookup
	cfg      config.CartConfig
}

// NewService builds a cart service with the provided collaborators.
func NewService(store cartStore, products productLookup, stores storeLookup, cfg config.CartConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if products == nil {
		return nil, fmt.Errorf("product lookup required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store lookup required")
	}
	return &service{store: store, products: products, stores: stores, cfg: cfg}, nil
}

func (s *service) Get(ctx context.Context, userID string) (*CartDTO, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToDTO(cart), nil
}

func (s *service) AddItem(ctx context.Context, userID string, productID uuid.UUID) (*CartDTO, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if cart.HasStore() && *cart.StoreID != product.StoreID {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "cart holds items from another store")
	}
	if !cart.HasStore() {
		storeName := ""
		if product.Store != nil {
			storeName = product.Store.Name
		}
		cart.SetStore(product.StoreID, storeName)
	}

	if line := cart.Find(productID); line == nil && s.cfg.MaxLineItems > 0 && len(cart.Items) >= s.cfg.MaxLineItems {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "cart line limit reached")
	}

	cart.AddItem(product.ID, product.Name, product.Price, product.ImageURL)
	if s.cfg.MaxQuantity > 0 {
		if line := cart.Find(productID); line != nil && line.Quantity > s.cfg.MaxQuantity {
			return nil, pkgerrors.New(pkgerrors.CodePrecondition,
				fmt.Sprintf("quantity must not exceed %d", s.cfg.MaxQuantity))
		}
	}

	return s.persist(ctx, userID, cart)
}

func (s *service) UpdateQuantity(ctx context.Context, userID string, productID uuid.UUID, quantity int) (*CartDTO, error) {
	if s.cfg.MaxQuantity > 0 && quantity > s.cfg.MaxQuantity {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("quantity must not exceed %d", s.cfg.MaxQuantity)).
			WithDetails(map[string]any{"field": "quantity"})
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Unknown product IDs fall through silently; the cart is returned
	// unchanged so clients stay in sync.
	cart.UpdateQuantity(productID, quantity)
	return s.persist(ctx, userID, cart)
}

func (s *service) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) (*CartDTO, error) {
	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.RemoveItem(productID)
	return s.persist(ctx, userID, cart)
}

func (s *service) SelectStore(ctx context.Context, userID string, storeID uuid.UUID) (*CartDTO, error) {
	store, err := s.stores.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	cart, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart.SetStore(store.ID, store.Name)
	return s.persist(ctx, userID, cart)
}

// Snapshot returns the raw aggregate for checkout without mutating it.
func (s *service) Snapshot(ctx context.Context, userID string) (*Cart, error) {
	return s.load(ctx, userID)
}

func (s *service) Clear(ctx context.Context, userID string) error {
	if err := s.store.Clear(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) load(ctx context.Context, userID string) (*Cart, error) {
	cart, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

func (s *service) persist(ctx context.Context, userID string, cart *Cart) (*CartDTO, error) {
	if err := s.store.Save(ctx, userID, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart")
	}
	return ToDTO(cart), nil
}

func decimalFromInt(value int) decimal.Decimal {
	return decimal.NewFromInt(int64(value))
}
