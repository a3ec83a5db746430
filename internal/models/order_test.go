package models

import (
	"testing"
	"time"
)

func TestOrder_Validate(t *testing.T) {
	deadline := time.Now().Add(20 * time.Minute)

	tests := []struct {
		name    string
		order   Order
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid order",
			order: Order{
				OrderNumber:     "ORD-20240101-123456",
				TotalAmount:     2500,
				Status:          OrderPendingPayment,
				BillingEmail:    "test@example.com",
				BillingName:     "John Doe",
				PaymentDeadline: deadline,
			},
			wantErr: false,
		},
		{
			name: "invalid order number - empty",
			order: Order{
				OrderNumber:  "",
				TotalAmount:  2500,
				Status:       OrderPendingPayment,
				BillingEmail: "test@example.com",
				BillingName:  "John Doe",
			},
			wantErr: true,
			errMsg:  "order number is required",
		},
		{
			name: "invalid order number - format",
			order: Order{
				OrderNumber:  "INVALID-123",
				TotalAmount:  2500,
				Status:       OrderPendingPayment,
				BillingEmail: "test@example.com",
				BillingName:  "John Doe",
			},
			wantErr: true,
			errMsg:  "order number format is invalid",
		},
		{
			name: "invalid total amount - zero",
			order: Order{
				OrderNumber:  "ORD-20240101-123456",
				TotalAmount:  0,
				Status:       OrderPendingPayment,
				BillingEmail: "test@example.com",
				BillingName:  "John Doe",
			},
			wantErr: true,
			errMsg:  "total amount must be greater than 0",
		},
		{
			name: "invalid status",
			order: Order{
				OrderNumber:  "ORD-20240101-123456",
				TotalAmount:  2500,
				Status:       "invalid",
				BillingEmail: "test@example.com",
				BillingName:  "John Doe",
			},
			wantErr: true,
			errMsg:  "invalid order status",
		},
		{
			name: "invalid billing email - empty",
			order: Order{
				OrderNumber:  "ORD-20240101-123456",
				TotalAmount:  2500,
				Status:       OrderPendingPayment,
				BillingEmail: "",
				BillingName:  "John Doe",
			},
			wantErr: true,
			errMsg:  "billing email is required",
		},
		{
			name: "invalid billing email - format",
			order: Order{
				OrderNumber:  "ORD-20240101-123456",
				TotalAmount:  2500,
				Status:       OrderPendingPayment,
				BillingEmail: "not-an-email",
				BillingName:  "John Doe",
			},
			wantErr: true,
			errMsg:  "billing email format is invalid",
		},
		{
			name: "invalid billing name - empty",
			order: Order{
				OrderNumber:  "ORD-20240101-123456",
				TotalAmount:  2500,
				Status:       OrderPendingPayment,
				BillingEmail: "test@example.com",
				BillingName:  "",
			},
			wantErr: true,
			errMsg:  "billing name is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Order.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("Order.Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestOrder_StatusChecks(t *testing.T) {
	tests := []struct {
		name   string
		status OrderStatus
		checks map[string]bool
	}{
		{
			name:   "pending payment order",
			status: OrderPendingPayment,
			checks: map[string]bool{
				"IsPendingPayment": true,
				"IsPaid":           false,
				"IsTerminal":       false,
				"CanBeCancelled":   true,
				"CanBePaid":        true,
			},
		},
		{
			name:   "paid order",
			status: OrderPaid,
			checks: map[string]bool{
				"IsPendingPayment": false,
				"IsPaid":           true,
				"IsTerminal":       true,
				"CanBeCancelled":   false,
				"CanBePaid":        false,
			},
		},
		{
			name:   "expired order",
			status: OrderExpired,
			checks: map[string]bool{
				"IsPendingPayment": false,
				"IsPaid":           false,
				"IsTerminal":       true,
				"CanBeCancelled":   false,
				"CanBePaid":        false,
			},
		},
		{
			name:   "cancelled order",
			status: OrderCancelled,
			checks: map[string]bool{
				"IsPendingPayment": false,
				"IsPaid":           false,
				"IsTerminal":       true,
				"CanBeCancelled":   false,
				"CanBePaid":        false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := Order{Status: tt.status}

			if got := order.IsPendingPayment(); got != tt.checks["IsPendingPayment"] {
				t.Errorf("Order.IsPendingPayment() = %v, want %v", got, tt.checks["IsPendingPayment"])
			}
			if got := order.IsPaid(); got != tt.checks["IsPaid"] {
				t.Errorf("Order.IsPaid() = %v, want %v", got, tt.checks["IsPaid"])
			}
			if got := order.IsTerminal(); got != tt.checks["IsTerminal"] {
				t.Errorf("Order.IsTerminal() = %v, want %v", got, tt.checks["IsTerminal"])
			}
			if got := order.CanBeCancelled(); got != tt.checks["CanBeCancelled"] {
				t.Errorf("Order.CanBeCancelled() = %v, want %v", got, tt.checks["CanBeCancelled"])
			}
			if got := order.CanBePaid(); got != tt.checks["CanBePaid"] {
				t.Errorf("Order.CanBePaid() = %v, want %v", got, tt.checks["CanBePaid"])
			}
		})
	}
}

func TestOrder_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{name: "pending to paid", from: OrderPendingPayment, to: OrderPaid, want: true},
		{name: "pending to expired", from: OrderPendingPayment, to: OrderExpired, want: true},
		{name: "pending to cancelled", from: OrderPendingPayment, to: OrderCancelled, want: true},
		{name: "pending to pending", from: OrderPendingPayment, to: OrderPendingPayment, want: false},
		{name: "paid is terminal", from: OrderPaid, to: OrderCancelled, want: false},
		{name: "expired is terminal", from: OrderExpired, to: OrderPaid, want: false},
		{name: "cancelled is terminal", from: OrderCancelled, to: OrderPaid, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := Order{Status: tt.from}
			if got := order.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("Order.CanTransitionTo(%s) from %s = %v, want %v", tt.to, tt.from, got, tt.want)
			}
		})
	}
}

func TestOrder_IsOverdue(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		order Order
		want  bool
	}{
		{
			name:  "pending past deadline",
			order: Order{Status: OrderPendingPayment, PaymentDeadline: now.Add(-5 * time.Minute)},
			want:  true,
		},
		{
			name:  "pending before deadline",
			order: Order{Status: OrderPendingPayment, PaymentDeadline: now.Add(15 * time.Minute)},
			want:  false,
		},
		{
			name:  "paid past deadline",
			order: Order{Status: OrderPaid, PaymentDeadline: now.Add(-5 * time.Minute)},
			want:  false,
		},
		{
			name:  "cancelled past deadline",
			order: Order{Status: OrderCancelled, PaymentDeadline: now.Add(-5 * time.Minute)},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.order.IsOverdue(now); got != tt.want {
				t.Errorf("Order.IsOverdue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber()

		if !orderNumberRegex.MatchString(number) {
			t.Errorf("GenerateOrderNumber() = %q, does not match expected format", number)
		}

		seen[number] = true
	}

	// 100 generations should produce a healthy spread of unique numbers
	if len(seen) < 90 {
		t.Errorf("GenerateOrderNumber() produced only %d unique numbers out of 100", len(seen))
	}
}
