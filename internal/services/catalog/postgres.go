package catalog

import (
	"context"
	"fmt"

	"restaurant-storefront/internal/database"
	"restaurant-storefront/internal/models"
)

// Store provides CRUD access to the catalog tables. References between
// menu items and categories/tags are name-based and best-effort: deleting
// a category or tag does not cascade to menu items.
type Store struct {
	db *database.DB
}

// NewStore creates a catalog store over the given database
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// LoadSnapshot reads the full set of menu items and ingredients in one pass
func (s *Store) LoadSnapshot(ctx context.Context) (*models.CatalogSnapshot, error) {
	menuItems, err := s.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu items: %w", err)
	}

	ingredients, err := s.ListIngredients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredients: %w", err)
	}

	return models.NewCatalogSnapshot(menuItems, ingredients), nil
}

// ListMenuItems returns all menu items
func (s *Store) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, price, category, tags, image_url FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.MenuItem
	for rows.Next() {
		var item models.MenuItem
		var tags string
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Price,
			&item.Category, &tags, &item.ImageURL); err != nil {
			return nil, err
		}
		item.Tags = models.DecodeTags(tags)
		items = append(items, item)
	}

	return items, rows.Err()
}

// CreateMenuItem inserts a menu item and returns its id
func (s *Store) CreateMenuItem(ctx context.Context, item *models.MenuItem) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO menu_items (name, description, price, category, tags, image_url)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		item.Name, item.Description, item.Price, item.Category,
		models.EncodeTags(item.Tags), item.ImageURL).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateMenuItem updates an existing menu item
func (s *Store) UpdateMenuItem(ctx context.Context, id int64, item *models.MenuItem) error {
	return s.db.Exec(ctx,
		`UPDATE menu_items SET name = $1, description = $2, price = $3, category = $4,
		 tags = $5, image_url = $6 WHERE id = $7`,
		item.Name, item.Description, item.Price, item.Category,
		models.EncodeTags(item.Tags), item.ImageURL, id)
}

// DeleteMenuItem removes a menu item
func (s *Store) DeleteMenuItem(ctx context.Context, id int64) error {
	return s.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
}

// ListIngredients returns all ingredients
func (s *Store) ListIngredients(ctx context.Context) ([]models.Ingredient, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, type, price FROM ingredients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ingredients []models.Ingredient
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Type, &ing.Price); err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

// CreateIngredient inserts an ingredient and returns its id
func (s *Store) CreateIngredient(ctx context.Context, ing *models.Ingredient) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO ingredients (name, type, price) VALUES ($1, $2, $3) RETURNING id`,
		ing.Name, ing.Type, ing.Price).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteIngredient removes an ingredient
func (s *Store) DeleteIngredient(ctx context.Context, id int64) error {
	return s.db.Exec(ctx, `DELETE FROM ingredients WHERE id = $1`, id)
}

// ListCategories returns all categories ordered for display
func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, display_order FROM categories ORDER BY display_order ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.DisplayOrder); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// CreateCategory inserts a category at the end of the display order
func (s *Store) CreateCategory(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO categories (name, display_order)
		 VALUES ($1, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM categories))
		 RETURNING id`,
		name).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteCategory removes a category. Menu items referencing it by name
// keep their category string.
func (s *Store) DeleteCategory(ctx context.Context, id int64) error {
	return s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
}

// ListTags returns all tags ordered for display
func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, display_order FROM tags ORDER BY display_order ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.DisplayOrder); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

// CreateTag inserts a tag at the end of the display order
func (s *Store) CreateTag(ctx context.Context, name string) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx,
		`INSERT INTO tags (name, display_order)
		 VALUES ($1, (SELECT COALESCE(MAX(display_order), 0) + 1 FROM tags))
		 RETURNING id`,
		name).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeleteTag removes a tag. Menu items referencing it by name keep their
// tag string.
func (s *Store) DeleteTag(ctx context.Context, id int64) error {
	return s.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
}
