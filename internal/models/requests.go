package models

// ProductCreateRequest represents the data needed to create a product
type ProductCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
}

// ProductUpdateRequest represents the data that can be updated for a product
type ProductUpdateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	IsActive    *bool  `json:"is_active"`
}

// VariantCreateRequest represents the data needed to create a product variant
type VariantCreateRequest struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
	Stock int    `json:"stock"`
}

// VariantUpdateRequest represents the data that can be updated for a variant
type VariantUpdateRequest struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
	Stock int    `json:"stock"`
}

// AddToCartRequest represents a request to reserve stock into the cart
type AddToCartRequest struct {
	VariantID int `json:"variant_id"`
	Quantity  int `json:"quantity"`
}

// UpdateCartItemRequest represents a request to change a line item quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest represents a request to convert the cart into an order
type CheckoutRequest struct {
	BillingEmail string `json:"billing_email"`
	BillingName  string `json:"billing_name"`
}

// PaymentCallbackRequest represents the payment gateway's completion callback
type PaymentCallbackRequest struct {
	OrderNumber string `json:"order_number"`
	PaymentRef  string `json:"payment_ref"`
	Status      string `json:"status"`
}
