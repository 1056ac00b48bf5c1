package checkout

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/geocart/geocart-backend/internal/cart"
	"github.com/geocart/geocart-backend/internal/orders"
	"github.com/geocart/geocart-backend/pkg/db/models"
	"github.com/geocart/geocart-backend/pkg/enums"
	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
	"github.com/geocart/geocart-backend/pkg/logger"
)

const orderNumberPrefix = "GC-"

// SubmitRequest is the checkout payload.
type SubmitRequest struct {
	PaymentMethod string     `json:"paymentMethod" validate:"required,oneof=card upi cod"`
	Card          *CardInput `json:"card,omitempty"`
	UPI           *UPIInput  `json:"upi,omitempty"`
	// ClientTotal is the total the client rendered; when present it is
	// cross-checked against the recomputed cart total.
	ClientTotal *string `json:"clientTotal,omitempty"`
}

// SubmitResponse identifies the created order.
type SubmitResponse struct {
	OrderID     uuid.UUID `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
}

type cartAccess interface {
	Snapshot(ctx context.Context, userID string) (*cart.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type storeLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type orderWriter interface {
	WithTx(tx *gorm.DB) *orders.Repository
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service submits orders.
type Service interface {
	Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*SubmitResponse, error)
}

type service struct {
	carts  cartAccess
	stores storeLookup
	orders orderWriter
	tx     txRunner
	logg   *logger.Logger
	now    func() time.Time
}

// ServiceParams bundles the checkout service dependencies.
type ServiceParams struct {
	Carts     cartAccess
	Stores    storeLookup
	OrderRepo orderWriter
	Tx        txRunner
	Logger    *logger.Logger
}

// NewService constructs a checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, fmt.Errorf("cart access required")
	}
	if params.Stores == nil {
		return nil, fmt.Errorf("store lookup required")
	}
	if params.OrderRepo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		carts:  params.Carts,
		stores: params.Stores,
		orders: params.OrderRepo,
		tx:     params.Tx,
		logg:   params.Logger,
		now:    time.Now,
	}, nil
}

// Submit validates the payment and the cart, persists the order with
// its line items in one transaction, and clears the cart afterwards.
// On any failure before commit the cart is left untouched.
func (s *service) Submit(ctx context.Context, userID uuid.UUID, req SubmitRequest) (*SubmitResponse, error) {
	method, err := enums.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported payment method").
			WithDetails(map[string]any{"field": "paymentMethod"})
	}
	if err := ValidatePayment(PaymentDetails{Method: method, Card: req.Card, UPI: req.UPI}, s.now()); err != nil {
		return nil, err
	}

	snapshot, err := s.carts.Snapshot(ctx, userID.String())
	if err != nil {
		return nil, err
	}
	if snapshot.IsEmpty() {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "cart is empty")
	}
	if !snapshot.HasStore() {
		return nil, pkgerrors.New(pkgerrors.CodePrecondition, "no store selected")
	}

	store, err := s.stores.FindByID(ctx, *snapshot.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodePrecondition, "selected store no longer exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}

	total := snapshot.TotalPrice()
	if req.ClientTotal != nil {
		clientTotal, parseErr := decimal.NewFromString(*req.ClientTotal)
		if parseErr != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid total").
				WithDetails(map[string]any{"field": "clientTotal"})
		}
		if !clientTotal.Round(2).Equal(total.Round(2)) {
			return nil, pkgerrors.New(pkgerrors.CodePrecondition, "cart total changed, review before submitting").
				WithDetails(map[string]any{"expected": total.StringFixed(2)})
		}
	}

	orderNumber, err := newOrderNumber()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate order number")
	}

	order := &models.Order{
		OrderNumber:   orderNumber,
		UserID:        userID,
		StoreID:       store.ID,
		StoreName:     store.Name,
		Status:        enums.OrderStatusPlaced,
		PaymentMethod: method,
		Total:         total,
		Items:         make([]models.OrderItem, 0, len(snapshot.Items)),
	}
	for _, line := range snapshot.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			UnitPrice: line.Price,
			Quantity:  line.Quantity,
		})
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, createErr := s.orders.WithTx(tx).Create(ctx, order)
		return createErr
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	// The order is committed; a cart-clear failure only means the next
	// request sees a stale cart, so log and move on.
	if err := s.carts.Clear(ctx, userID.String()); err != nil && s.logg != nil {
		logCtx := s.logg.WithOrderID(ctx, order.ID.String())
		s.logg.Warn(logCtx, "checkout.cart_clear_failed")
	}

	return &SubmitResponse{OrderID: order.ID, OrderNumber: order.OrderNumber}, nil
}

// newOrderNumber builds the customer-facing token: GC- plus six random
// digits. Collisions are tolerable because the UUID stays authoritative.
func newOrderNumber() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", orderNumberPrefix, n.Int64()), nil
}
