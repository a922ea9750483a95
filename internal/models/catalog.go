package models

import "strings"

// IngredientType classifies ingredients for the custom pizza builder
type IngredientType string

const (
	IngredientMeat       IngredientType = "meat"
	IngredientVegetables IngredientType = "vegetables"
	IngredientCheese     IngredientType = "cheese"
	IngredientSauce      IngredientType = "sauce"
	IngredientSpice      IngredientType = "spice"
	IngredientDip        IngredientType = "dip"
)

// ValidIngredientType reports whether t is a known ingredient type
func ValidIngredientType(t string) bool {
	switch IngredientType(t) {
	case IngredientMeat, IngredientVegetables, IngredientCheese,
		IngredientSauce, IngredientSpice, IngredientDip:
		return true
	}
	return false
}

// MenuItem represents a single item on the menu
type MenuItem struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	ImageURL    string   `json:"image_url"`
}

// Ingredient represents a priced component of a custom item
type Ingredient struct {
	ID    int64          `json:"id"`
	Name  string         `json:"name"`
	Type  IngredientType `json:"type"`
	Price float64        `json:"price"`
}

// Category orders menu sections on the public page
type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// Tag labels menu items for filtering (beef, vegan, spicy, ...)
type Tag struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	DisplayOrder int    `json:"display_order"`
}

// EncodeTags joins tag names into the comma-encoded storage form
func EncodeTags(tags []string) string {
	cleaned := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}

// DecodeTags splits the comma-encoded storage form into tag names
func DecodeTags(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// CatalogSnapshot is the full set of menu items and ingredients read at
// pricing time. Checkout prices against whichever snapshot it read; a
// concurrent admin price change simply wins on the next read.
type CatalogSnapshot struct {
	MenuItems   []MenuItem
	Ingredients []Ingredient

	menuByID         map[int64]*MenuItem
	ingredientByID   map[int64]*Ingredient
	ingredientByName map[string]*Ingredient
}

// NewCatalogSnapshot builds a snapshot with its lookup indexes
func NewCatalogSnapshot(menuItems []MenuItem, ingredients []Ingredient) *CatalogSnapshot {
	snap := &CatalogSnapshot{
		MenuItems:        menuItems,
		Ingredients:      ingredients,
		menuByID:         make(map[int64]*MenuItem, len(menuItems)),
		ingredientByID:   make(map[int64]*Ingredient, len(ingredients)),
		ingredientByName: make(map[string]*Ingredient, len(ingredients)),
	}
	for i := range snap.MenuItems {
		snap.menuByID[snap.MenuItems[i].ID] = &snap.MenuItems[i]
	}
	for i := range snap.Ingredients {
		ing := &snap.Ingredients[i]
		snap.ingredientByID[ing.ID] = ing
		snap.ingredientByName[ing.Name] = ing
	}
	return snap
}

// MenuItemByID looks up a menu item by id
func (s *CatalogSnapshot) MenuItemByID(id int64) (*MenuItem, bool) {
	item, ok := s.menuByID[id]
	return item, ok
}

// IngredientByID looks up an ingredient by id
func (s *CatalogSnapshot) IngredientByID(id int64) (*Ingredient, bool) {
	ing, ok := s.ingredientByID[id]
	return ing, ok
}

// IngredientByName looks up an ingredient by its exact name
func (s *CatalogSnapshot) IngredientByName(name string) (*Ingredient, bool) {
	ing, ok := s.ingredientByName[name]
	return ing, ok
}
