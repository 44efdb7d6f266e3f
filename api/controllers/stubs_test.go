package controllers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/minishoplabs/minishop-backend/api/middleware"
	accountsvc "github.com/minishoplabs/minishop-backend/internal/accounts"
	cartsvc "github.com/minishoplabs/minishop-backend/internal/cart"
	catalogsvc "github.com/minishoplabs/minishop-backend/internal/catalog"
	ordersvc "github.com/minishoplabs/minishop-backend/internal/orders"
)

type stubAccountsService struct {
	result       *accountsvc.LoginResult
	err          error
	logoutIDs    []string
	lastRegister accountsvc.RegisterInput
	lastLogin    accountsvc.LoginInput
}

func (s *stubAccountsService) Register(ctx context.Context, input accountsvc.RegisterInput) (*accountsvc.LoginResult, error) {
	s.lastRegister = input
	return s.result, s.err
}

func (s *stubAccountsService) Login(ctx context.Context, input accountsvc.LoginInput) (*accountsvc.LoginResult, error) {
	s.lastLogin = input
	return s.result, s.err
}

func (s *stubAccountsService) Logout(ctx context.Context, accessID string) error {
	s.logoutIDs = append(s.logoutIDs, accessID)
	return s.err
}

type stubCatalogService struct {
	product   *catalogsvc.ProductDTO
	products  []catalogsvc.ProductDTO
	legacy    []catalogsvc.LegacyProductDTO
	err       error
	lastQuery string
	deleted   []uuid.UUID
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, input catalogsvc.CreateProductInput) (*catalogsvc.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) UpdateProduct(ctx context.Context, productID uuid.UUID, input catalogsvc.UpdateProductInput) (*catalogsvc.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	s.deleted = append(s.deleted, productID)
	return s.err
}

func (s *stubCatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*catalogsvc.ProductDTO, error) {
	return s.product, s.err
}

func (s *stubCatalogService) ListProducts(ctx context.Context) ([]catalogsvc.ProductDTO, error) {
	return s.products, s.err
}

func (s *stubCatalogService) ListProductsLegacy(ctx context.Context) ([]catalogsvc.LegacyProductDTO, error) {
	return s.legacy, s.err
}

func (s *stubCatalogService) SearchProducts(ctx context.Context, query string) ([]catalogsvc.ProductDTO, error) {
	s.lastQuery = query
	return s.products, s.err
}

type stubCartService struct {
	dto         *cartsvc.CartDTO
	err         error
	lastAdded   uuid.UUID
	lastRemoved uuid.UUID
}

func (s *stubCartService) AddItem(ctx context.Context, userID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	s.lastAdded = productID
	return s.dto, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	s.lastRemoved = productID
	return s.dto, s.err
}

func (s *stubCartService) GetCart(ctx context.Context, userID uuid.UUID) (*cartsvc.CartDTO, error) {
	return s.dto, s.err
}

type stubOrdersService struct {
	order     *ordersvc.OrderDTO
	orders    []ordersvc.OrderDTO
	err       error
	lastInput ordersvc.CheckoutInput
}

func (s *stubOrdersService) Checkout(ctx context.Context, userID uuid.UUID, input ordersvc.CheckoutInput) (*ordersvc.OrderDTO, error) {
	s.lastInput = input
	return s.order, s.err
}

func (s *stubOrdersService) ListOrders(ctx context.Context, userID uuid.UUID) ([]ordersvc.OrderDTO, error) {
	return s.orders, s.err
}

func withUser(r *http.Request, userID uuid.UUID) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID.String()))
}

func withAccessID(ctx context.Context, accessID string) context.Context {
	return middleware.WithAccessID(ctx, accessID)
}
