package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// OrderType represents how the customer receives the order
type OrderType string

const (
	Pickup   OrderType = "pickup"
	Delivery OrderType = "delivery"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
)

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusCompleted:
		return true
	}
	return false
}

// PizzaSize is the base size of a custom pizza
type PizzaSize string

const (
	SizeSmall  PizzaSize = "small"
	SizeMedium PizzaSize = "medium"
	SizeLarge  PizzaSize = "large"
)

// CustomPizzaKind is the discriminator for the custom pizza variant
const CustomPizzaKind = "custom_pizza"

// Customization describes a build-your-own item's selected options. The
// Kind discriminator allows future variants without touching existing
// pricing paths; unknown kinds price to zero.
type Customization struct {
	Kind     string         `json:"kind"`
	Size     PizzaSize      `json:"size,omitempty"`
	Toppings []string       `json:"toppings,omitempty"`
	Drinks   map[string]int `json:"drinks,omitempty"`
	Dips     map[string]int `json:"dips,omitempty"`
	Sauces   map[string]int `json:"sauces,omitempty"`
}

// UnmarshalJSON accepts both the current "kind" discriminator and the
// legacy "type" key older clients still send ("Custom Pizza").
func (c *Customization) UnmarshalJSON(data []byte) error {
	type alias Customization
	aux := struct {
		*alias
		LegacyType string `json:"type"`
	}{alias: (*alias)(c)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if c.Kind == "" && aux.LegacyType != "" {
		c.Kind = NormalizeKind(aux.LegacyType)
	}
	return nil
}

// NormalizeKind maps a free-form variant label to its discriminator form:
// "Custom Pizza" becomes "custom_pizza".
func NormalizeKind(kind string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(kind)), " ", "_")
}

// LineItem is one entry in a cart or order: either a direct catalog
// reference, a customized composite, or both. The Price field is whatever
// the client displayed; the pricing engine never trusts it.
type LineItem struct {
	MenuItemID    *int64         `json:"id,omitempty"`
	Name          string         `json:"name,omitempty"`
	Price         float64        `json:"price,omitempty"`
	Customization *Customization `json:"customization,omitempty"`
}

// orderDetailsVersion is the current schema version of the persisted
// line-item document
const orderDetailsVersion = 1

// OrderDetails is the versioned document stored in the orders.details
// column, replacing the untyped JSON blobs older revisions kept.
type OrderDetails struct {
	Version int        `json:"version"`
	Items   []LineItem `json:"items"`
}

// NewOrderDetails wraps normalized line items in the current document version
func NewOrderDetails(items []LineItem) OrderDetails {
	if items == nil {
		items = []LineItem{}
	}
	return OrderDetails{Version: orderDetailsVersion, Items: items}
}

// Customer holds contact details attached to an order
type Customer struct {
	Name    string    `json:"name"`
	Phone   string    `json:"phone"`
	Address string    `json:"address,omitempty"`
	Note    string    `json:"note,omitempty"`
	Type    OrderType `json:"type"`
}

// Order represents a persisted customer order
type Order struct {
	ID         int64       `json:"id"`
	Items      []LineItem  `json:"items"`
	TotalPrice float64     `json:"total_price"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	Customer   Customer    `json:"customer"`
}

// CreateOrderRequest is the checkout submission. Details is kept raw
// because clients send either a JSON array or a JSON-encoded string of one;
// the pricing package decodes it tolerantly.
type CreateOrderRequest struct {
	Details  json.RawMessage `json:"details"`
	Customer Customer        `json:"customer"`
}

// CreateOrderResponse is returned after a successful checkout
type CreateOrderResponse struct {
	Success bool    `json:"success"`
	OrderID int64   `json:"orderId"`
	Total   float64 `json:"total"`
}

// Validate checks the customer fields of a checkout submission. Cart
// contents are deliberately not validated here: malformed carts degrade to
// an empty order instead of failing the request.
func (req *CreateOrderRequest) Validate() error {
	if err := validateCustomerName(req.Customer.Name); err != nil {
		return err
	}
	if strings.TrimSpace(req.Customer.Phone) == "" {
		return fmt.Errorf("customer.phone is required")
	}

	switch req.Customer.Type {
	case Pickup:
		// address is ignored for pickup orders
	case Delivery:
		if strings.TrimSpace(req.Customer.Address) == "" {
			return fmt.Errorf("customer.address is required for delivery orders")
		}
	default:
		return fmt.Errorf("customer.type must be one of: pickup, delivery")
	}

	return nil
}

// validateCustomerName validates the customer name field
func validateCustomerName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("customer.name is required")
	}
	if len(name) > 100 {
		return fmt.Errorf("customer.name must not exceed 100 characters")
	}
	return nil
}
