package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/minishoplabs/minishop-backend/pkg/db/models"
	"github.com/minishoplabs/minishop-backend/pkg/logger"
)

// DefaultImageDir is where demo product images live relative to the app root.
const DefaultImageDir = "static/img"

const seedPriceCents = 49900

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

// Seeder creates a demo listing for every image found in the image directory.
// Runs are idempotent: an image that already backs a product is skipped.
type Seeder struct {
	repo     *Repository
	imageDir string
	logg     *logger.Logger
}

// NewSeeder builds a seeder over the provided repository.
func NewSeeder(repo *Repository, imageDir string, logg *logger.Logger) (*Seeder, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if imageDir == "" {
		imageDir = DefaultImageDir
	}
	return &Seeder{repo: repo, imageDir: imageDir, logg: logg}, nil
}

// Seed scans the image directory and inserts missing demo products. It
// returns the number of products created.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	entries, err := os.ReadDir(s.imageDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("read image dir %q: %w", s.imageDir, err)
	}

	titler := cases.Title(language.English)
	created := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if !imageExtensions[ext] {
			continue
		}

		imageURL := "/static/img/" + entry.Name()
		exists, err := s.repo.ExistsByImageURL(ctx, imageURL)
		if err != nil {
			return created, fmt.Errorf("check seed product %q: %w", imageURL, err)
		}
		if exists {
			continue
		}

		base := strings.TrimSuffix(entry.Name(), ext)
		name := titler.String(strings.ReplaceAll(base, "_", " "))

		product := &models.Product{
			Name:        name,
			Description: fmt.Sprintf("Demo product: %s", name),
			PriceCents:  seedPriceCents,
			ImageURL:    &imageURL,
		}
		if _, err := s.repo.Create(ctx, product); err != nil {
			return created, fmt.Errorf("insert seed product %q: %w", name, err)
		}
		created++
	}

	if s.logg != nil && created > 0 {
		s.logg.Info(ctx, fmt.Sprintf("seeded %d demo products", created))
	}
	return created, nil
}
