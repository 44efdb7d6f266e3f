package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	ordersvc "github.com/minishoplabs/minishop-backend/internal/orders"
	pkgerrors "github.com/minishoplabs/minishop-backend/pkg/errors"
)

func TestCheckoutSuccess(t *testing.T) {
	svc := &stubOrdersService{order: &ordersvc.OrderDTO{
		ID:         uuid.New(),
		Status:     "placed",
		Currency:   "inr",
		Total:      "499.00",
		TotalCents: 49900,
	}}
	handler := Checkout(svc, nil)

	body := `{"shipping_address":"12 Hill Road, Bandra","phone":"9876543210"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if svc.lastInput.ShippingAddress != "12 Hill Road, Bandra" {
		t.Fatalf("unexpected address: %q", svc.lastInput.ShippingAddress)
	}

	var envelope struct {
		Data ordersvc.OrderDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != "placed" {
		t.Fatalf("unexpected status: %q", envelope.Data.Status)
	}
}

func TestCheckoutEmptyCartStatus(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")}
	handler := Checkout(svc, nil)

	body := `{"shipping_address":"12 Hill Road, Bandra"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestCheckoutGatewayFailureStatus(t *testing.T) {
	svc := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeGateway, "payment gateway failed")}
	handler := Checkout(svc, nil)

	body := `{"shipping_address":"12 Hill Road, Bandra"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 got %d", resp.Code)
	}
}

func TestCheckoutMissingAddress(t *testing.T) {
	handler := Checkout(&stubOrdersService{}, nil)

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{}`)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestListOrdersSuccess(t *testing.T) {
	svc := &stubOrdersService{orders: []ordersvc.OrderDTO{
		{ID: uuid.New(), Status: "pending", TotalCents: 49900},
	}}
	handler := ListOrders(svc, nil)

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []ordersvc.OrderDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Status != "pending" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestListOrdersMissingUser(t *testing.T) {
	handler := ListOrders(&stubOrdersService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}
