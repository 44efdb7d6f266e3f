package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/minishoplabs/minishop-backend/internal/cart"
	"github.com/minishoplabs/minishop-backend/internal/catalog"
	"github.com/minishoplabs/minishop-backend/internal/payments"
	"github.com/minishoplabs/minishop-backend/pkg/db/models"
	"github.com/minishoplabs/minishop-backend/pkg/enums"
	pkgerrors "github.com/minishoplabs/minishop-backend/pkg/errors"
	"github.com/minishoplabs/minishop-backend/pkg/logger"
)

const defaultCurrency = "inr"

// Service defines the checkout and order history operations.
type Service interface {
	Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*OrderDTO, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error)
}

// CheckoutInput carries the delivery details captured at checkout.
type CheckoutInput struct {
	ShippingAddress string
	Phone           string
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	dbClient txRunner
	repo     *Repository
	cart     *cart.Repository
	products *catalog.Repository
	gateway  payments.Gateway
	currency string
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies required to build an orders service.
// Gateway may be nil, which selects the simulated payment path.
type ServiceParams struct {
	DB       txRunner
	Repo     *Repository
	Cart     *cart.Repository
	Products *catalog.Repository
	Gateway  payments.Gateway
	Currency string
	Logger   *logger.Logger
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Cart == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	currency := strings.TrimSpace(strings.ToLower(params.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	return &service{
		dbClient: params.DB,
		repo:     params.Repo,
		cart:     params.Cart,
		products: params.Products,
		gateway:  params.Gateway,
		currency: currency,
		logg:     params.Logger,
	}, nil
}

// Checkout converts the user's cart into an order inside one transaction.
// The payment call happens inside the transaction so a gateway failure, a
// timeout included, rolls everything back and leaves the cart untouched.
func (s *service) Checkout(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*OrderDTO, error) {
	address := strings.TrimSpace(input.ShippingAddress)
	if address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipping address is required")
	}
	phone := strings.TrimSpace(input.Phone)

	var created *models.Order
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cart.WithTx(tx)

		items, err := cartRepo.ListByUser(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list cart items")
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		lines, totalCents, err := s.snapshotLines(ctx, tx, items)
		if err != nil {
			return err
		}

		status := enums.OrderStatusPlaced
		var paymentIntentID *string
		if s.gateway != nil {
			intent, err := s.gateway.CreatePaymentIntent(ctx, totalCents, s.currency, map[string]string{
				"user_id": userID.String(),
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeGateway, err, "payment gateway failed")
			}
			status = enums.OrderStatusPending
			paymentIntentID = &intent.ID
		}

		order := &models.Order{
			UserID:          userID,
			Status:          status,
			Currency:        s.currency,
			TotalCents:      totalCents,
			PaymentIntentID: paymentIntentID,
			ShippingAddress: &address,
			Items:           lines,
		}
		if phone != "" {
			order.Phone = &phone
		}
		created, err = s.repo.WithTx(tx).Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order")
		}

		if err := cartRepo.DeleteAllByUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: clear cart")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.logg != nil {
		s.logg.Info(ctx, fmt.Sprintf("order %s placed for %d %s (%s)",
			created.ID, created.TotalCents, created.Currency, created.Status))
	}
	return NewOrderDTO(created), nil
}

// ListOrders returns the user's order history, newest first.
func (s *service) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	records, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	return NewOrderDTOs(records), nil
}

// snapshotLines copies name and live price from each cart row's product so
// the order stays accurate after catalog edits.
func (s *service) snapshotLines(ctx context.Context, tx *gorm.DB, items []models.CartItem) ([]models.OrderItem, int64, error) {
	ids := make([]uuid.UUID, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}
	products, err := s.products.WithTx(tx).FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart products")
	}
	byID := make(map[uuid.UUID]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]models.OrderItem, 0, len(items))
	var totalCents int64
	for i := range items {
		product, ok := byID[items[i].ProductID]
		if !ok {
			return nil, 0, pkgerrors.New(pkgerrors.CodeInconsistent, "cart references a product that no longer exists").
				WithDetails(map[string]any{"product_id": items[i].ProductID})
		}
		productID := product.ID
		lineTotal := product.PriceCents * int64(items[i].Quantity)
		lines = append(lines, models.OrderItem{
			ProductID:      &productID,
			ProductName:    product.Name,
			UnitPriceCents: product.PriceCents,
			Quantity:       items[i].Quantity,
			LineTotalCents: lineTotal,
		})
		totalCents += lineTotal
	}
	return lines, totalCents, nil
}
