package models

import "testing"

func TestProductVariant_Validate(t *testing.T) {
	tests := []struct {
		name    string
		variant ProductVariant
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid variant",
			variant: ProductVariant{ProductID: 1, Name: "Large", Price: 1500, Stock: 20},
			wantErr: false,
		},
		{
			name:    "empty name",
			variant: ProductVariant{ProductID: 1, Name: "", Price: 1500, Stock: 20},
			wantErr: true,
			errMsg:  "variant name is required",
		},
		{
			name:    "whitespace name",
			variant: ProductVariant{ProductID: 1, Name: "   ", Price: 1500, Stock: 20},
			wantErr: true,
			errMsg:  "variant name cannot be only whitespace",
		},
		{
			name:    "negative price",
			variant: ProductVariant{ProductID: 1, Name: "Large", Price: -1, Stock: 20},
			wantErr: true,
			errMsg:  "variant price cannot be negative",
		},
		{
			name:    "price too high",
			variant: ProductVariant{ProductID: 1, Name: "Large", Price: 1000001, Stock: 20},
			wantErr: true,
			errMsg:  "variant price cannot exceed $10,000",
		},
		{
			name:    "negative stock",
			variant: ProductVariant{ProductID: 1, Name: "Large", Price: 1500, Stock: -1},
			wantErr: true,
			errMsg:  "variant stock cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.variant.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("ProductVariant.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("ProductVariant.Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestProductVariant_Availability(t *testing.T) {
	tests := []struct {
		name       string
		stock      int
		quantity   int
		available  bool
		soldOut    bool
		canReserve bool
	}{
		{name: "in stock", stock: 5, quantity: 3, available: true, soldOut: false, canReserve: true},
		{name: "exact stock", stock: 5, quantity: 5, available: true, soldOut: false, canReserve: true},
		{name: "over stock", stock: 5, quantity: 6, available: true, soldOut: false, canReserve: false},
		{name: "sold out", stock: 0, quantity: 1, available: false, soldOut: true, canReserve: false},
		{name: "zero quantity", stock: 5, quantity: 0, available: true, soldOut: false, canReserve: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			variant := ProductVariant{Stock: tt.stock}

			if got := variant.IsAvailable(); got != tt.available {
				t.Errorf("ProductVariant.IsAvailable() = %v, want %v", got, tt.available)
			}
			if got := variant.IsSoldOut(); got != tt.soldOut {
				t.Errorf("ProductVariant.IsSoldOut() = %v, want %v", got, tt.soldOut)
			}
			if got := variant.CanReserve(tt.quantity); got != tt.canReserve {
				t.Errorf("ProductVariant.CanReserve(%d) = %v, want %v", tt.quantity, got, tt.canReserve)
			}
		})
	}
}

func TestProduct_Validate(t *testing.T) {
	longDescription := make([]byte, 1001)
	for i := range longDescription {
		longDescription[i] = 'a'
	}

	tests := []struct {
		name    string
		product Product
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid product",
			product: Product{Name: "Sourdough Loaf", Description: "Naturally leavened"},
			wantErr: false,
		},
		{
			name:    "empty name",
			product: Product{Name: ""},
			wantErr: true,
			errMsg:  "product name is required",
		},
		{
			name:    "description too long",
			product: Product{Name: "Sourdough Loaf", Description: string(longDescription)},
			wantErr: true,
			errMsg:  "product description must be less than 1000 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Product.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("Product.Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}
