package catalog

import (
	"context"
	"testing"

	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/models"
)

// stubStorage records calls and serves canned catalog data
type stubStorage struct {
	menuItems   []models.MenuItem
	ingredients []models.Ingredient
	categories  []string
	tags        []string
	loads       int
}

func (s *stubStorage) LoadSnapshot(ctx context.Context) (*models.CatalogSnapshot, error) {
	s.loads++
	return models.NewCatalogSnapshot(s.menuItems, s.ingredients), nil
}

func (s *stubStorage) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.menuItems, nil
}

func (s *stubStorage) CreateMenuItem(ctx context.Context, item *models.MenuItem) (int64, error) {
	s.menuItems = append(s.menuItems, *item)
	return int64(len(s.menuItems)), nil
}

func (s *stubStorage) UpdateMenuItem(ctx context.Context, id int64, item *models.MenuItem) error {
	return nil
}

func (s *stubStorage) DeleteMenuItem(ctx context.Context, id int64) error { return nil }

func (s *stubStorage) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	return s.ingredients, nil
}

func (s *stubStorage) CreateIngredient(ctx context.Context, ing *models.Ingredient) (int64, error) {
	s.ingredients = append(s.ingredients, *ing)
	return int64(len(s.ingredients)), nil
}

func (s *stubStorage) DeleteIngredient(ctx context.Context, id int64) error { return nil }

func (s *stubStorage) ListCategories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}

func (s *stubStorage) CreateCategory(ctx context.Context, name string) (int64, error) {
	s.categories = append(s.categories, name)
	return int64(len(s.categories)), nil
}

func (s *stubStorage) DeleteCategory(ctx context.Context, id int64) error { return nil }

func (s *stubStorage) ListTags(ctx context.Context) ([]models.Tag, error) { return nil, nil }

func (s *stubStorage) CreateTag(ctx context.Context, name string) (int64, error) {
	s.tags = append(s.tags, name)
	return int64(len(s.tags)), nil
}

func (s *stubStorage) DeleteTag(ctx context.Context, id int64) error { return nil }

func newTestService(store *stubStorage) *Service {
	log := logger.New("test")
	cache := NewCache(store, nil, log)
	return NewService(store, cache, log)
}

func TestCreateMenuItem_Validation(t *testing.T) {
	tests := []struct {
		name    string
		item    models.MenuItem
		wantErr bool
	}{
		{
			name: "valid item",
			item: models.MenuItem{Name: "Beef Pizza", Category: "pizza", Price: 12.00},
		},
		{
			name:    "missing name",
			item:    models.MenuItem{Category: "pizza", Price: 12.00},
			wantErr: true,
		},
		{
			name:    "missing category",
			item:    models.MenuItem{Name: "Beef Pizza", Price: 12.00},
			wantErr: true,
		},
		{
			name:    "negative price",
			item:    models.MenuItem{Name: "Beef Pizza", Category: "pizza", Price: -1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newTestService(&stubStorage{})
			_, err := service.CreateMenuItem(context.Background(), &tt.item)
			if (err != nil) != tt.wantErr {
				t.Errorf("CreateMenuItem() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateIngredient_Validation(t *testing.T) {
	service := newTestService(&stubStorage{})

	_, err := service.CreateIngredient(context.Background(), &models.Ingredient{
		Name: "Pepperoni", Type: "rocks", Price: 1.50,
	})
	if err == nil {
		t.Error("expected error for unknown ingredient type")
	}

	_, err = service.CreateIngredient(context.Background(), &models.Ingredient{
		Name: "Pepperoni", Type: models.IngredientMeat, Price: 1.50,
	})
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCreateCategory_Lowercases(t *testing.T) {
	store := &stubStorage{}
	service := newTestService(store)

	if _, err := service.CreateCategory(context.Background(), "  Desserts "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.categories[0] != "desserts" {
		t.Errorf("stored category = %q, want %q", store.categories[0], "desserts")
	}

	if _, err := service.CreateCategory(context.Background(), "   "); err == nil {
		t.Error("expected error for blank category name")
	}
}

func TestSnapshot_WithoutRedisReadsFresh(t *testing.T) {
	store := &stubStorage{
		menuItems: []models.MenuItem{{ID: 1, Name: "Beef Pizza", Price: 12.00}},
	}
	service := newTestService(store)

	for i := 0; i < 3; i++ {
		snap, err := service.Snapshot(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := snap.MenuItemByID(1); !ok {
			t.Fatal("snapshot missing menu item 1")
		}
	}

	// Each checkout reads its own snapshot when no cache is configured
	if store.loads != 3 {
		t.Errorf("expected 3 snapshot loads, got %d", store.loads)
	}
}
