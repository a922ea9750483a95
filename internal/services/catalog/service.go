package catalog

import (
	"context"
	"fmt"
	"strings"

	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/models"
)

// Storage is the persistence surface the catalog service needs
type Storage interface {
	SnapshotLoader
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *models.MenuItem) (int64, error)
	UpdateMenuItem(ctx context.Context, id int64, item *models.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int64) error
	ListIngredients(ctx context.Context) ([]models.Ingredient, error)
	CreateIngredient(ctx context.Context, ing *models.Ingredient) (int64, error)
	DeleteIngredient(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, name string) (int64, error)
	DeleteCategory(ctx context.Context, id int64) error
	ListTags(ctx context.Context) ([]models.Tag, error)
	CreateTag(ctx context.Context, name string) (int64, error)
	DeleteTag(ctx context.Context, id int64) error
}

// Service handles catalog reads and admin mutations. Every mutation
// invalidates the snapshot cache so in-flight checkouts pick up the new
// prices on their next catalog read.
type Service struct {
	store  Storage
	cache  *Cache
	logger *logger.Logger
}

// NewService creates a catalog service
func NewService(store Storage, cache *Cache, log *logger.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: log,
	}
}

// Snapshot returns the current catalog snapshot for pricing
func (s *Service) Snapshot(ctx context.Context) (*models.CatalogSnapshot, error) {
	return s.cache.Snapshot(ctx)
}

// ListMenuItems returns the menu for the public page
func (s *Service) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	return s.store.ListMenuItems(ctx)
}

// ListIngredients returns the ingredients for the custom pizza builder
func (s *Service) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	return s.store.ListIngredients(ctx)
}

// CreateMenuItem validates and inserts a menu item
func (s *Service) CreateMenuItem(ctx context.Context, item *models.MenuItem) (int64, error) {
	if err := validateMenuItem(item); err != nil {
		return 0, err
	}

	id, err := s.store.CreateMenuItem(ctx, item)
	if err != nil {
		return 0, err
	}

	s.cache.Invalidate(ctx)
	return id, nil
}

// UpdateMenuItem validates and updates a menu item
func (s *Service) UpdateMenuItem(ctx context.Context, id int64, item *models.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}

	if err := s.store.UpdateMenuItem(ctx, id, item); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

// DeleteMenuItem removes a menu item
func (s *Service) DeleteMenuItem(ctx context.Context, id int64) error {
	if err := s.store.DeleteMenuItem(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

// CreateIngredient validates and inserts an ingredient
func (s *Service) CreateIngredient(ctx context.Context, ing *models.Ingredient) (int64, error) {
	if strings.TrimSpace(ing.Name) == "" {
		return 0, fmt.Errorf("ingredient name is required")
	}
	if !models.ValidIngredientType(string(ing.Type)) {
		return 0, fmt.Errorf("ingredient type must be one of: meat, vegetables, cheese, sauce, spice, dip")
	}
	if ing.Price < 0 {
		return 0, fmt.Errorf("ingredient price must not be negative")
	}

	id, err := s.store.CreateIngredient(ctx, ing)
	if err != nil {
		return 0, err
	}

	s.cache.Invalidate(ctx)
	return id, nil
}

// DeleteIngredient removes an ingredient
func (s *Service) DeleteIngredient(ctx context.Context, id int64) error {
	if err := s.store.DeleteIngredient(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

// ListCategories returns all categories in display order
func (s *Service) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.store.ListCategories(ctx)
}

// CreateCategory inserts a category. Names are stored lowercased.
func (s *Service) CreateCategory(ctx context.Context, name string) (int64, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, fmt.Errorf("category name is required")
	}
	return s.store.CreateCategory(ctx, name)
}

// DeleteCategory removes a category without touching menu items that
// reference its name
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	return s.store.DeleteCategory(ctx, id)
}

// ListTags returns all tags in display order
func (s *Service) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.store.ListTags(ctx)
}

// CreateTag inserts a tag. Names are stored lowercased.
func (s *Service) CreateTag(ctx context.Context, name string) (int64, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return 0, fmt.Errorf("tag name is required")
	}
	return s.store.CreateTag(ctx, name)
}

// DeleteTag removes a tag without touching menu items that reference its
// name
func (s *Service) DeleteTag(ctx context.Context, id int64) error {
	return s.store.DeleteTag(ctx, id)
}

// validateMenuItem checks admin input for menu item writes
func validateMenuItem(item *models.MenuItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("menu item name is required")
	}
	if strings.TrimSpace(item.Category) == "" {
		return fmt.Errorf("menu item category is required")
	}
	if item.Price < 0 {
		return fmt.Errorf("menu item price must not be negative")
	}
	return nil
}
