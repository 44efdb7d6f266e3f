package routes

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	accountsvc "github.com/minishoplabs/minishop-backend/internal/accounts"
	cartsvc "github.com/minishoplabs/minishop-backend/internal/cart"
	catalogsvc "github.com/minishoplabs/minishop-backend/internal/catalog"
	ordersvc "github.com/minishoplabs/minishop-backend/internal/orders"
	pkgAuth "github.com/minishoplabs/minishop-backend/pkg/auth"
	"github.com/minishoplabs/minishop-backend/pkg/config"
	"github.com/minishoplabs/minishop-backend/pkg/enums"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionChecker struct{}

func (stubSessionChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

type stubAccounts struct{}

func (stubAccounts) Register(ctx context.Context, input accountsvc.RegisterInput) (*accountsvc.LoginResult, error) {
	return &accountsvc.LoginResult{AccessToken: "token"}, nil
}

func (stubAccounts) Login(ctx context.Context, input accountsvc.LoginInput) (*accountsvc.LoginResult, error) {
	return nil, fmt.Errorf("not implemented")
}

func (stubAccounts) Logout(ctx context.Context, accessID string) error {
	return nil
}

type stubCatalog struct{}

func (stubCatalog) CreateProduct(ctx context.Context, input catalogsvc.CreateProductInput) (*catalogsvc.ProductDTO, error) {
	return &catalogsvc.ProductDTO{ID: uuid.New()}, nil
}

func (stubCatalog) UpdateProduct(ctx context.Context, productID uuid.UUID, input catalogsvc.UpdateProductInput) (*catalogsvc.ProductDTO, error) {
	return &catalogsvc.ProductDTO{ID: productID}, nil
}

func (stubCatalog) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	return nil
}

func (stubCatalog) GetProduct(ctx context.Context, productID uuid.UUID) (*catalogsvc.ProductDTO, error) {
	return &catalogsvc.ProductDTO{ID: productID}, nil
}

func (stubCatalog) ListProducts(ctx context.Context) ([]catalogsvc.ProductDTO, error) {
	return []catalogsvc.ProductDTO{}, nil
}

func (stubCatalog) ListProductsLegacy(ctx context.Context) ([]catalogsvc.LegacyProductDTO, error) {
	return []catalogsvc.LegacyProductDTO{}, nil
}

func (stubCatalog) SearchProducts(ctx context.Context, query string) ([]catalogsvc.ProductDTO, error) {
	return []catalogsvc.ProductDTO{}, nil
}

type stubCart struct{}

func (stubCart) AddItem(ctx context.Context, userID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{Items: []cartsvc.CartLine{}}, nil
}

func (stubCart) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{Items: []cartsvc.CartLine{}}, nil
}

func (stubCart) GetCart(ctx context.Context, userID uuid.UUID) (*cartsvc.CartDTO, error) {
	return &cartsvc.CartDTO{Items: []cartsvc.CartLine{}}, nil
}

type stubOrders struct{}

func (stubOrders) Checkout(ctx context.Context, userID uuid.UUID, input ordersvc.CheckoutInput) (*ordersvc.OrderDTO, error) {
	return &ordersvc.OrderDTO{ID: uuid.New(), Status: "placed"}, nil
}

func (stubOrders) ListOrders(ctx context.Context, userID uuid.UUID) ([]ordersvc.OrderDTO, error) {
	return []ordersvc.OrderDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "minishop-test", ExpirationMinutes: 60},
	}
}

func newTestRouter() http.Handler {
	return NewRouter(RouterParams{
		Config:   testConfig(),
		DBPinger: stubPinger{},
		Sessions: stubSessionChecker{},
		Accounts: stubAccounts{},
		Catalog:  stubCatalog{},
		Cart:     stubCart{},
		Orders:   stubOrders{},
	})
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if env := resp.Header().Get("X-MiniShop-Env"); env != "test" {
		t.Fatalf("unexpected env header: %q", env)
	}
}

func TestRouterPublicCatalog(t *testing.T) {
	router := newTestRouter()

	for _, target := range []string{"/api/v1/products/", "/api/v1/products/search?q=lamp", "/api/products"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", target, resp.Code)
		}
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterCartRequiresAuth(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterAdminRequiresAdminRole(t *testing.T) {
	router := newTestRouter()
	cfg := testConfig()

	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleCustomer,
		JTI:    "jti-router-test",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
}

func TestRouterAdminAllowsAdmin(t *testing.T) {
	router := newTestRouter()
	cfg := testConfig()

	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   enums.UserRoleAdmin,
		JTI:    "jti-router-admin",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/products/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
