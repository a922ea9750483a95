package order

import (
	"testing"
)

func TestDecodeStoredDetails(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantCount int
		wantNil   bool
	}{
		{
			name: "versioned document",
			data: `{"version":1,"items":[
				{"id":1,"name":"Beef Pizza","price":12.00},
				{"name":"Custom Pizza (small)","price":9.00,"customization":{"kind":"custom_pizza","size":"small"}}
			]}`,
			wantCount: 2,
		},
		{
			name:      "legacy bare array",
			data:      `[{"id":1,"name":"Beef Pizza","price":12.00}]`,
			wantCount: 1,
		},
		{
			name:      "versioned document with empty items",
			data:      `{"version":1,"items":[]}`,
			wantCount: 0,
		},
		{
			name:    "garbage",
			data:    `not json at all`,
			wantNil: true,
		},
		{
			name:    "object without version",
			data:    `{"foo":"bar"}`,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := decodeStoredDetails([]byte(tt.data))
			if tt.wantNil {
				if items != nil {
					t.Fatalf("expected nil, got %d items", len(items))
				}
				return
			}
			if items == nil {
				t.Fatal("expected items, got nil")
			}
			if len(items) != tt.wantCount {
				t.Fatalf("got %d items, want %d", len(items), tt.wantCount)
			}
		})
	}
}

func TestDecodeStoredDetails_FieldsSurvive(t *testing.T) {
	items := decodeStoredDetails([]byte(
		`{"version":1,"items":[{"id":5,"name":"Cola","price":3.00}]}`))
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	if items[0].MenuItemID == nil || *items[0].MenuItemID != 5 {
		t.Errorf("menu item id not preserved: %+v", items[0])
	}
	if items[0].Name != "Cola" || items[0].Price != 3.00 {
		t.Errorf("fields not preserved: %+v", items[0])
	}
}
