package models

import (
	"encoding/json"
	"testing"
)

func TestCreateOrderRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		customer Customer
		wantErr  bool
	}{
		{
			name:     "valid pickup",
			customer: Customer{Name: "John Doe", Phone: "+3581234567", Type: Pickup},
			wantErr:  false,
		},
		{
			name:     "valid delivery",
			customer: Customer{Name: "John Doe", Phone: "+3581234567", Address: "123 Main St", Type: Delivery},
			wantErr:  false,
		},
		{
			name:     "missing name",
			customer: Customer{Phone: "+3581234567", Type: Pickup},
			wantErr:  true,
		},
		{
			name:     "missing phone",
			customer: Customer{Name: "John Doe", Type: Pickup},
			wantErr:  true,
		},
		{
			name:     "delivery without address",
			customer: Customer{Name: "John Doe", Phone: "+3581234567", Type: Delivery},
			wantErr:  true,
		},
		{
			name:     "pickup without address is fine",
			customer: Customer{Name: "John Doe", Phone: "+3581234567", Type: Pickup},
			wantErr:  false,
		},
		{
			name:     "unknown order type",
			customer: Customer{Name: "John Doe", Phone: "+3581234567", Type: "teleport"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &CreateOrderRequest{Customer: tt.customer}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCustomization_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantKind string
	}{
		{
			name:     "kind discriminator",
			payload:  `{"kind":"custom_pizza","size":"small"}`,
			wantKind: "custom_pizza",
		},
		{
			name:     "legacy type key",
			payload:  `{"type":"Custom Pizza","size":"large"}`,
			wantKind: "custom_pizza",
		},
		{
			name:     "kind wins over legacy type",
			payload:  `{"kind":"custom_pizza","type":"Something Else"}`,
			wantKind: "custom_pizza",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Customization
			if err := json.Unmarshal([]byte(tt.payload), &c); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if c.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", c.Kind, tt.wantKind)
			}
		})
	}
}

func TestNormalizeKind(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Custom Pizza", "custom_pizza"},
		{"custom_pizza", "custom_pizza"},
		{"  CUSTOM PIZZA  ", "custom_pizza"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeKind(tt.in); got != tt.want {
			t.Errorf("NormalizeKind(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEncodeDecodeTags(t *testing.T) {
	encoded := EncodeTags([]string{"beef", " spicy ", "", "halal"})
	if encoded != "beef,spicy,halal" {
		t.Errorf("EncodeTags = %q", encoded)
	}

	decoded := DecodeTags("beef, spicy,,halal")
	if len(decoded) != 3 || decoded[0] != "beef" || decoded[1] != "spicy" || decoded[2] != "halal" {
		t.Errorf("DecodeTags = %v", decoded)
	}

	if DecodeTags("") != nil {
		t.Error("DecodeTags(\"\") should be nil")
	}
}

func TestNewOrderDetails(t *testing.T) {
	details := NewOrderDetails(nil)
	if details.Version != 1 {
		t.Errorf("version = %d, want 1", details.Version)
	}
	if details.Items == nil {
		t.Error("items must serialize as an empty array, not null")
	}

	data, err := json.Marshal(details)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"version":1,"items":[]}` {
		t.Errorf("serialized form = %s", data)
	}
}

func TestOrderRoutingKey(t *testing.T) {
	if got := OrderRoutingKey(Delivery); got != "kitchen.delivery" {
		t.Errorf("OrderRoutingKey(delivery) = %q", got)
	}
	if got := OrderRoutingKey(Pickup); got != "kitchen.pickup" {
		t.Errorf("OrderRoutingKey(pickup) = %q", got)
	}
}
