package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/minishoplabs/minishop-backend/internal/catalog"
	"github.com/minishoplabs/minishop-backend/pkg/db/models"
	pkgerrors "github.com/minishoplabs/minishop-backend/pkg/errors"
)

func setupCartService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := setupCartTestDB(t)
	svc, err := NewService(NewRepository(conn), catalog.NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func TestCartAddItemIncrementsExistingRow(t *testing.T) {
	svc, conn := setupCartService(t)
	ctx := context.Background()

	userID := uuid.New()
	lamp := mustInsertCartProduct(t, conn, "Desk Lamp", 2599)

	dto, err := svc.AddItem(ctx, userID, lamp.ID)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.Equal(t, 1, dto.Items[0].Quantity)
	require.Equal(t, int64(2599), dto.TotalCents)

	dto, err = svc.AddItem(ctx, userID, lamp.ID)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.Equal(t, 2, dto.Items[0].Quantity)
	require.Equal(t, 2, dto.ItemCount)
	require.Equal(t, int64(5198), dto.TotalCents)
	require.Equal(t, "51.98", dto.Total)
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	svc, _ := setupCartService(t)

	_, err := svc.AddItem(context.Background(), uuid.New(), uuid.New())
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestCartGetCartReadModel(t *testing.T) {
	svc, conn := setupCartService(t)
	ctx := context.Background()

	userID := uuid.New()
	lamp := mustInsertCartProduct(t, conn, "Desk Lamp", 2599)
	chair := mustInsertCartProduct(t, conn, "Office Chair", 14900)

	_, err := svc.AddItem(ctx, userID, lamp.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, lamp.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, chair.ID)
	require.NoError(t, err)

	dto, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, dto.Items, 2)
	require.Equal(t, 3, dto.ItemCount)
	require.Equal(t, int64(2599*2+14900), dto.TotalCents)

	byName := map[string]CartLine{}
	for _, line := range dto.Items {
		byName[line.Name] = line
	}
	require.Equal(t, 2, byName["Desk Lamp"].Quantity)
	require.Equal(t, "25.99", byName["Desk Lamp"].UnitPrice)
	require.Equal(t, int64(5198), byName["Desk Lamp"].LineTotalCents)
	require.Equal(t, "149.00", byName["Office Chair"].LineTotal)
}

func TestCartTotalFollowsCatalogPriceChanges(t *testing.T) {
	svc, conn := setupCartService(t)
	ctx := context.Background()

	userID := uuid.New()
	lamp := mustInsertCartProduct(t, conn, "Desk Lamp", 2599)

	_, err := svc.AddItem(ctx, userID, lamp.ID)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, lamp.ID)
	require.NoError(t, err)

	// a price edit between add and checkout shows up in the cart total
	err = conn.Model(&models.Product{}).Where("id = ?", lamp.ID).Update("price_cents", 1999).Error
	require.NoError(t, err)

	dto, err := svc.GetCart(ctx, userID)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	require.Equal(t, 2, dto.Items[0].Quantity)
	require.Equal(t, "19.99", dto.Items[0].UnitPrice)
	require.Equal(t, int64(3998), dto.TotalCents)
	require.Equal(t, "39.98", dto.Total)
}

func TestCartGetCartEmpty(t *testing.T) {
	svc, _ := setupCartService(t)

	dto, err := svc.GetCart(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotNil(t, dto.Items)
	require.Empty(t, dto.Items)
	require.Equal(t, 0, dto.ItemCount)
	require.Equal(t, "0.00", dto.Total)
}

func TestCartRemoveItem(t *testing.T) {
	svc, conn := setupCartService(t)
	ctx := context.Background()

	userID := uuid.New()
	lamp := mustInsertCartProduct(t, conn, "Desk Lamp", 2599)

	_, err := svc.AddItem(ctx, userID, lamp.ID)
	require.NoError(t, err)

	dto, err := svc.RemoveItem(ctx, userID, lamp.ID)
	require.NoError(t, err)
	require.Empty(t, dto.Items)

	// removing again is a no-op
	dto, err = svc.RemoveItem(ctx, userID, lamp.ID)
	require.NoError(t, err)
	require.Empty(t, dto.Items)
}

func TestCartGetCartVanishedProduct(t *testing.T) {
	svc, conn := setupCartService(t)
	ctx := context.Background()

	userID := uuid.New()
	lamp := mustInsertCartProduct(t, conn, "Desk Lamp", 2599)

	_, err := svc.AddItem(ctx, userID, lamp.ID)
	require.NoError(t, err)

	require.NoError(t, conn.Exec("DELETE FROM products WHERE id = ?", lamp.ID).Error)

	_, err = svc.GetCart(ctx, userID)
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeInconsistent, pkgerrors.As(err).Code())
}
