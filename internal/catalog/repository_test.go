package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/minishoplabs/minishop-backend/pkg/db/models"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  price_cents INTEGER NOT NULL,
  image_url TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(products).Error)
	return conn
}

func mustInsertProduct(t *testing.T, conn *gorm.DB, name string, priceCents int64) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		Name:       name,
		PriceCents: priceCents,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func TestRepositoryProductFlow(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	imageURL := "/static/img/lamp.png"
	created, err := repo.Create(ctx, &models.Product{
		ID:          uuid.New(),
		Name:        "Desk Lamp",
		Description: "Adjustable",
		PriceCents:  2599,
		ImageURL:    &imageURL,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "Desk Lamp", found.Name)

	found.PriceCents = 2999
	_, err = repo.Update(ctx, found)
	require.NoError(t, err)

	refreshed, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2999), refreshed.PriceCents)

	exists, err := repo.ExistsByImageURL(ctx, imageURL)
	require.NoError(t, err)
	require.True(t, exists)

	require.NoError(t, repo.Delete(ctx, created.ID))
	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySearch(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	mustInsertProduct(t, conn, "Blue Mug", 899)
	mustInsertProduct(t, conn, "Red Mug", 999)
	notebook := mustInsertProduct(t, conn, "Notebook", 499)
	require.NoError(t, conn.Model(notebook).Update("description", "a ruled mug-free journal").Error)

	matches, err := repo.Search(ctx, "MUG")
	require.NoError(t, err)
	require.Len(t, matches, 3)

	matches, err = repo.Search(ctx, "notebook")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "Notebook", matches[0].Name)

	matches, err = repo.Search(ctx, "widget")
	require.NoError(t, err)
	require.Empty(t, matches)
}

func TestRepositoryFindByIDs(t *testing.T) {
	conn := setupCatalogTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	first := mustInsertProduct(t, conn, "First", 100)
	second := mustInsertProduct(t, conn, "Second", 200)

	products, err := repo.FindByIDs(ctx, []uuid.UUID{first.ID, second.ID})
	require.NoError(t, err)
	require.Len(t, products, 2)

	products, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	require.Empty(t, products)
}
