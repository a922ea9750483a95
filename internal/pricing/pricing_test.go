package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/models"
)

func testSnapshot() *models.CatalogSnapshot {
	menuItems := []models.MenuItem{
		{ID: 1, Name: "Beef Pizza", Price: 12.00, Category: "pizza"},
		{ID: 2, Name: "Greek Salad", Price: 8.00, Category: "salad"},
		{ID: 5, Name: "Cola", Price: 3.00, Category: "drinks"},
	}
	ingredients := []models.Ingredient{
		{ID: 10, Name: "Mozzarella", Type: models.IngredientCheese, Price: 1.00},
		{ID: 11, Name: "Pepperoni", Type: models.IngredientMeat, Price: 1.50},
		{ID: 12, Name: "Garlic Dip", Type: models.IngredientDip, Price: 1.00},
		{ID: 13, Name: "BBQ Sauce", Type: models.IngredientSauce, Price: 0.50},
	}
	return models.NewCatalogSnapshot(menuItems, ingredients)
}

func menuRef(id int64) models.LineItem {
	return models.LineItem{MenuItemID: &id}
}

func assertTotal(t *testing.T, result Result, want string) {
	t.Helper()
	if got := RoundTotal(result.Total); !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("total = %s, want %s", got, want)
	}
}

func TestComputeOrderTotal_CatalogItems(t *testing.T) {
	snap := testSnapshot()

	items := []models.LineItem{menuRef(1), menuRef(2)}
	result := ComputeOrderTotal(items, snap)

	assertTotal(t, result, "20")
	if len(result.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %v", result.Anomalies)
	}
}

func TestComputeOrderTotal_IgnoresClientPrice(t *testing.T) {
	snap := testSnapshot()

	// Client claims the pizza costs a cent
	item := menuRef(1)
	item.Price = 0.01
	result := ComputeOrderTotal([]models.LineItem{item}, snap)

	assertTotal(t, result, "12")
	if result.Items[0].Price != 12.00 {
		t.Errorf("normalized price = %v, want 12.00", result.Items[0].Price)
	}
}

func TestComputeOrderTotal_CustomPizzaScenario(t *testing.T) {
	snap := testSnapshot()

	// 12.00 menu item + small (8.00) + Mozzarella (1.00) + 2x Cola (6.00) = 27.00
	items := []models.LineItem{
		menuRef(1),
		{Customization: &models.Customization{
			Kind:     models.CustomPizzaKind,
			Size:     models.SizeSmall,
			Toppings: []string{"Mozzarella"},
			Drinks:   map[string]int{"5": 2},
		}},
	}
	result := ComputeOrderTotal(items, snap)

	assertTotal(t, result, "27")
	if len(result.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %v", result.Anomalies)
	}
	if result.Items[1].Price != 15.00 {
		t.Errorf("custom pizza line price = %v, want 15.00", result.Items[1].Price)
	}
}

func TestComputeOrderTotal_CustomPizzaAllSelections(t *testing.T) {
	snap := testSnapshot()

	items := []models.LineItem{
		{Customization: &models.Customization{
			Kind:     models.CustomPizzaKind,
			Size:     models.SizeLarge,
			Toppings: []string{"Mozzarella", "Pepperoni"},
			Drinks:   map[string]int{"5": 1},
			Dips:     map[string]int{"12": 2},
			Sauces:   map[string]int{"13": 1},
		}},
	}
	result := ComputeOrderTotal(items, snap)

	// 12.00 + 1.00 + 1.50 + 3.00 + 2.00 + 0.50
	assertTotal(t, result, "20")
}

func TestComputeOrderTotal_UnmatchedReferencesContributeZero(t *testing.T) {
	snap := testSnapshot()

	items := []models.LineItem{
		{Customization: &models.Customization{
			Kind:     models.CustomPizzaKind,
			Size:     models.SizeSmall,
			Toppings: []string{"Mozzarella", "Unicorn Dust"},
			Drinks:   map[string]int{"999": 3, "not-a-number": 1},
			Dips:     map[string]int{"999": 1},
		}},
	}
	result := ComputeOrderTotal(items, snap)

	// Only size + Mozzarella resolve
	assertTotal(t, result, "9")
	if len(result.Anomalies) != 4 {
		t.Errorf("expected 4 anomalies, got %d: %v", len(result.Anomalies), result.Anomalies)
	}
}

func TestComputeOrderTotal_NonPositiveQuantitiesClamp(t *testing.T) {
	snap := testSnapshot()

	items := []models.LineItem{
		{Customization: &models.Customization{
			Kind:   models.CustomPizzaKind,
			Size:   models.SizeSmall,
			Drinks: map[string]int{"5": -2},
		}},
	}
	result := ComputeOrderTotal(items, snap)

	assertTotal(t, result, "8")
	if len(result.Anomalies) != 0 {
		t.Errorf("clamped quantity must not produce an anomaly, got %v", result.Anomalies)
	}
}

func TestComputeOrderTotal_UnknownMenuItem(t *testing.T) {
	snap := testSnapshot()

	result := ComputeOrderTotal([]models.LineItem{menuRef(404)}, snap)

	assertTotal(t, result, "0")
	if len(result.Anomalies) != 1 || result.Anomalies[0].Kind != "menu_item" {
		t.Errorf("expected one menu_item anomaly, got %v", result.Anomalies)
	}
}

func TestComputeOrderTotal_BareLineItem(t *testing.T) {
	snap := testSnapshot()

	// Neither a menu item reference nor a customization
	result := ComputeOrderTotal([]models.LineItem{{Name: "Mystery Dish", Price: 99.00}}, snap)

	assertTotal(t, result, "0")
	if len(result.Anomalies) != 1 || result.Anomalies[0].Kind != "line_item" {
		t.Errorf("expected one line_item anomaly, got %v", result.Anomalies)
	}
	if result.Items[0].Price != 0 {
		t.Errorf("normalized price = %v, want 0", result.Items[0].Price)
	}
}

func TestComputeOrderTotal_UnnormalizedKind(t *testing.T) {
	snap := testSnapshot()

	// The legacy spelling prices the same as "custom_pizza"
	items := []models.LineItem{
		{Customization: &models.Customization{Kind: "Custom Pizza", Size: models.SizeSmall}},
	}
	result := ComputeOrderTotal(items, snap)

	assertTotal(t, result, "8")
	if len(result.Anomalies) != 0 {
		t.Errorf("expected no anomalies, got %v", result.Anomalies)
	}
}

func TestComputeOrderTotal_UnknownCustomizationKind(t *testing.T) {
	snap := testSnapshot()

	items := []models.LineItem{
		{Customization: &models.Customization{Kind: "custom_sandwich", Size: models.SizeSmall}},
	}
	result := ComputeOrderTotal(items, snap)

	assertTotal(t, result, "0")
	if len(result.Anomalies) != 1 || result.Anomalies[0].Kind != "customization" {
		t.Errorf("expected one customization anomaly, got %v", result.Anomalies)
	}
}

func TestComputeOrderTotal_EmptyCart(t *testing.T) {
	result := ComputeOrderTotal(nil, testSnapshot())

	assertTotal(t, result, "0")
	if len(result.Items) != 0 {
		t.Errorf("expected no normalized items, got %d", len(result.Items))
	}
}

func TestComputeOrderTotal_Idempotent(t *testing.T) {
	snap := testSnapshot()
	items := []models.LineItem{
		menuRef(1),
		{Customization: &models.Customization{
			Kind:     models.CustomPizzaKind,
			Size:     models.SizeMedium,
			Toppings: []string{"Pepperoni"},
		}},
	}

	first := ComputeOrderTotal(items, snap)
	second := ComputeOrderTotal(items, snap)

	if !first.Total.Equal(second.Total) {
		t.Errorf("totals differ across identical calls: %s vs %s", first.Total, second.Total)
	}
}

func TestComputeOrderTotal_PriceChangeWins(t *testing.T) {
	items := []models.LineItem{menuRef(1)}
	// The client built its cart against the 12.00 price
	items[0].Price = 12.00

	// Admin raised the price before checkout
	updated := models.NewCatalogSnapshot([]models.MenuItem{
		{ID: 1, Name: "Beef Pizza", Price: 15.00, Category: "pizza"},
	}, nil)

	result := ComputeOrderTotal(items, updated)
	assertTotal(t, result, "15")
}

func TestRoundTotal_HalfUp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"10.005", "10.01"},
		{"10.004", "10"},
		{"0", "0"},
		{"27.499999", "27.5"},
	}

	for _, tt := range tests {
		got := RoundTotal(decimal.RequireFromString(tt.in))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("RoundTotal(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestDecodeLineItems(t *testing.T) {
	one := int64(1)
	tests := []struct {
		name      string
		raw       string
		wantItems int
		wantErr   bool
	}{
		{
			name:      "plain array",
			raw:       `[{"id":1,"price":12.0}]`,
			wantItems: 1,
		},
		{
			name:      "string wrapped array",
			raw:       `"[{\"id\":1},{\"id\":2}]"`,
			wantItems: 2,
		},
		{
			name:      "empty array",
			raw:       `[]`,
			wantItems: 0,
		},
		{
			name:      "null",
			raw:       `null`,
			wantItems: 0,
		},
		{
			name:    "object instead of array",
			raw:     `{"id":1}`,
			wantErr: true,
		},
		{
			name:    "garbage string",
			raw:     `"not json at all"`,
			wantErr: true,
		},
		{
			name:    "number",
			raw:     `42`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := DecodeLineItems(json.RawMessage(tt.raw))
			if tt.wantErr {
				if err != ErrInvalidCartFormat {
					t.Fatalf("expected ErrInvalidCartFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(items) != tt.wantItems {
				t.Errorf("decoded %d items, want %d", len(items), tt.wantItems)
			}
		})
	}

	// legacy customization payloads resolve through the kind discriminator
	items, err := DecodeLineItems(json.RawMessage(`[{"id":1,"customization":{"type":"Custom Pizza","size":"small"}}]`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items[0].Customization == nil || items[0].Customization.Kind != "custom_pizza" {
		t.Errorf("legacy type key not normalized: %+v", items[0].Customization)
	}
	if *items[0].MenuItemID != one {
		t.Errorf("menu item id = %d, want 1", *items[0].MenuItemID)
	}
}
