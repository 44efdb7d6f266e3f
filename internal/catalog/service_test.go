package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/minishoplabs/minishop-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestServiceCreateProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	image := "/static/img/chair.png"
	dto, err := svc.CreateProduct(ctx, CreateProductInput{
		Name:        "  Office Chair  ",
		Description: "Ergonomic",
		Price:       "149.50",
		ImageURL:    &image,
	})
	require.NoError(t, err)
	require.Equal(t, "Office Chair", dto.Name)
	require.Equal(t, int64(14950), dto.PriceCents)
	require.Equal(t, "149.50", dto.Price)
	require.NotNil(t, dto.ImageURL)

	free, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Sticker Pack", Price: "0.00"})
	require.NoError(t, err)
	require.Equal(t, int64(0), free.PriceCents)
	require.Equal(t, "0.00", free.Price)
}

func TestServiceCreateProductValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{name: "missing name", input: CreateProductInput{Price: "10"}},
		{name: "negative price", input: CreateProductInput{Name: "Thing", Price: "-4"}},
		{name: "fractional cents", input: CreateProductInput{Name: "Thing", Price: "1.999"}},
		{name: "not a number", input: CreateProductInput{Name: "Thing", Price: "free"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx, tc.input)
			require.Error(t, err)
			require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
		})
	}
}

func TestServiceUpdateProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Mug", Price: "8.99"})
	require.NoError(t, err)

	newPrice := "9.99"
	updated, err := svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)
	require.Equal(t, int64(999), updated.PriceCents)
	require.Equal(t, "Mug", updated.Name)

	blank := "   "
	_, err = svc.UpdateProduct(ctx, created.ID, UpdateProductInput{Name: &blank})
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())

	_, err = svc.UpdateProduct(ctx, uuid.New(), UpdateProductInput{Price: &newPrice})
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestServiceDeleteProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Clock", Price: "20"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = svc.GetProduct(ctx, created.ID)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())

	// removing an id that no longer exists is not an error
	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	require.NoError(t, svc.DeleteProduct(ctx, uuid.New()))
}

func TestServiceSearchProducts(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{Name: "Desk Lamp", Price: "25.99"})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, CreateProductInput{Name: "Floor Lamp", Price: "59.99"})
	require.NoError(t, err)

	matches, err := svc.SearchProducts(ctx, "lamp")
	require.NoError(t, err)
	require.Len(t, matches, 2)

	matches, err = svc.SearchProducts(ctx, "   ")
	require.NoError(t, err)
	require.Empty(t, matches)

	matches, err = svc.SearchProducts(ctx, "")
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestServiceGetProductNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.GetProduct(context.Background(), uuid.New())
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
