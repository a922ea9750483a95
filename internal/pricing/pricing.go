// Package pricing recomputes order totals from the current catalog. It is
// the only place totals come from: any price a client attaches to a cart
// entry is ignored.
package pricing

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"restaurant-storefront/internal/models"
)

// ErrInvalidCartFormat indicates the submitted cart is not a sequence of
// line-item records. Callers degrade to an empty cart instead of failing
// the checkout.
var ErrInvalidCartFormat = errors.New("invalid cart format")

// sizeBasePrices are the base prices of a custom pizza by size
var sizeBasePrices = map[models.PizzaSize]decimal.Decimal{
	models.SizeSmall:  decimal.NewFromFloat(8.00),
	models.SizeMedium: decimal.NewFromFloat(10.00),
	models.SizeLarge:  decimal.NewFromFloat(12.00),
}

// Anomaly records a cart reference that did not resolve against the
// catalog and therefore contributed zero price. Anomalies never fail a
// checkout; they are logged as potential under-charging.
type Anomaly struct {
	ItemIndex int    `json:"item_index"`
	Kind      string `json:"kind"`
	Ref       string `json:"ref"`
}

func (a Anomaly) String() string {
	return fmt.Sprintf("items[%d]: unresolved %s %q", a.ItemIndex, a.Kind, a.Ref)
}

// Result carries the authoritative total alongside the normalized line
// items (client prices replaced with computed contributions) and any
// unresolved references encountered.
type Result struct {
	Total     decimal.Decimal
	Items     []models.LineItem
	Anomalies []Anomaly
}

// ComputeOrderTotal derives an order's true total from the catalog
// snapshot. Pure function: it touches no storage and ignores every
// client-supplied price. Contributions are summed in full precision;
// rounding happens once, in RoundTotal.
func ComputeOrderTotal(items []models.LineItem, snap *models.CatalogSnapshot) Result {
	result := Result{
		Total: decimal.Zero,
		Items: make([]models.LineItem, 0, len(items)),
	}

	for i, item := range items {
		contribution := decimal.Zero

		if item.MenuItemID != nil {
			if menuItem, ok := snap.MenuItemByID(*item.MenuItemID); ok {
				contribution = contribution.Add(decimal.NewFromFloat(menuItem.Price))
				item.Name = menuItem.Name
			} else {
				result.Anomalies = append(result.Anomalies, Anomaly{
					ItemIndex: i,
					Kind:      "menu_item",
					Ref:       strconv.FormatInt(*item.MenuItemID, 10),
				})
			}
		}

		if item.Customization != nil {
			custom, anomalies := priceCustomization(i, item.Customization, snap)
			contribution = contribution.Add(custom)
			result.Anomalies = append(result.Anomalies, anomalies...)
		}

		// A line item naming neither a menu item nor a customization is
		// effectively free.
		if item.MenuItemID == nil && item.Customization == nil {
			result.Anomalies = append(result.Anomalies, Anomaly{
				ItemIndex: i,
				Kind:      "line_item",
				Ref:       item.Name,
			})
		}

		// Normalize: the stored price is the computed contribution, never
		// the client's.
		item.Price = roundMoney(contribution)
		result.Items = append(result.Items, item)
		result.Total = result.Total.Add(contribution)
	}

	return result
}

// priceCustomization prices a single customization block. Unmatched
// toppings and selections contribute zero; non-positive quantities clamp
// to zero.
func priceCustomization(itemIndex int, c *models.Customization, snap *models.CatalogSnapshot) (decimal.Decimal, []Anomaly) {
	var anomalies []Anomaly

	if models.NormalizeKind(c.Kind) != models.CustomPizzaKind {
		anomalies = append(anomalies, Anomaly{ItemIndex: itemIndex, Kind: "customization", Ref: c.Kind})
		return decimal.Zero, anomalies
	}

	total := decimal.Zero

	if base, ok := sizeBasePrices[c.Size]; ok {
		total = total.Add(base)
	} else {
		anomalies = append(anomalies, Anomaly{ItemIndex: itemIndex, Kind: "size", Ref: string(c.Size)})
	}

	for _, name := range c.Toppings {
		if ing, ok := snap.IngredientByName(name); ok {
			total = total.Add(decimal.NewFromFloat(ing.Price))
		} else {
			anomalies = append(anomalies, Anomaly{ItemIndex: itemIndex, Kind: "topping", Ref: name})
		}
	}

	// Drinks resolve against the menu, dips and sauces against ingredients.
	drinks, drinkAnomalies := priceSelections(itemIndex, "drink", c.Drinks, func(id int64) (float64, bool) {
		item, ok := snap.MenuItemByID(id)
		if !ok {
			return 0, false
		}
		return item.Price, true
	})
	total = total.Add(drinks)
	anomalies = append(anomalies, drinkAnomalies...)

	ingredientPrice := func(id int64) (float64, bool) {
		ing, ok := snap.IngredientByID(id)
		if !ok {
			return 0, false
		}
		return ing.Price, true
	}

	dips, dipAnomalies := priceSelections(itemIndex, "dip", c.Dips, ingredientPrice)
	total = total.Add(dips)
	anomalies = append(anomalies, dipAnomalies...)

	sauces, sauceAnomalies := priceSelections(itemIndex, "sauce", c.Sauces, ingredientPrice)
	total = total.Add(sauces)
	anomalies = append(anomalies, sauceAnomalies...)

	return total, anomalies
}

// priceSelections sums price x quantity over an id -> quantity map
func priceSelections(itemIndex int, kind string, selections map[string]int, lookup func(int64) (float64, bool)) (decimal.Decimal, []Anomaly) {
	total := decimal.Zero
	var anomalies []Anomaly

	for rawID, qty := range selections {
		if qty <= 0 {
			continue
		}

		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			anomalies = append(anomalies, Anomaly{ItemIndex: itemIndex, Kind: kind, Ref: rawID})
			continue
		}

		price, ok := lookup(id)
		if !ok {
			anomalies = append(anomalies, Anomaly{ItemIndex: itemIndex, Kind: kind, Ref: rawID})
			continue
		}

		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(qty))))
	}

	return total, anomalies
}

// RoundTotal rounds a full-precision total to 2 decimal places, half-up.
// Called once at the persistence boundary.
func RoundTotal(total decimal.Decimal) decimal.Decimal {
	return total.Round(2)
}

// roundMoney is RoundTotal for a single line contribution, as float for
// the JSON document
func roundMoney(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// DecodeLineItems decodes the details field of a checkout submission.
// Clients send either a JSON array of line items or the same array wrapped
// in a JSON string; both are accepted. Anything else is
// ErrInvalidCartFormat, which the caller treats as an empty cart.
func DecodeLineItems(raw json.RawMessage) ([]models.LineItem, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return nil, ErrInvalidCartFormat
		}
		trimmed = bytes.TrimSpace([]byte(inner))
		if len(trimmed) == 0 {
			return nil, nil
		}
	}

	var items []models.LineItem
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, ErrInvalidCartFormat
	}

	return items, nil
}
