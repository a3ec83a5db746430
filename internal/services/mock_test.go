package services

import (
	"time"

	"bakery-commerce-platform/internal/models"
	"bakery-commerce-platform/internal/repositories"
)

// mockCartRepo is an in-memory CartRepository for service tests
type mockCartRepo struct {
	carts       map[int]*models.Cart
	items       map[int]*models.CartItem
	reserveErr  error
	releaseErr  error
	purgeCount  int
	purgeErr    error
	clearedUser int
}

func newMockCartRepo() *mockCartRepo {
	return &mockCartRepo{
		carts: make(map[int]*models.Cart),
		items: make(map[int]*models.CartItem),
	}
}

func (m *mockCartRepo) addItem(item *models.CartItem) {
	m.items[item.ID] = item
	cart, ok := m.carts[item.UserID]
	if !ok {
		cart = &models.Cart{UserID: item.UserID}
		m.carts[item.UserID] = cart
	}
	cart.Items = append(cart.Items, item)
	cart.TotalAmount = cart.Total()
}

func (m *mockCartRepo) Reserve(userID, variantID, quantity int, ttl time.Duration) (*models.CartItem, error) {
	if m.reserveErr != nil {
		return nil, m.reserveErr
	}
	item := &models.CartItem{
		ID:        len(m.items) + 1,
		UserID:    userID,
		VariantID: variantID,
		Quantity:  quantity,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
	m.addItem(item)
	return item, nil
}

func (m *mockCartRepo) UpdateQuantity(itemID, quantity int, ttl time.Duration) (*models.CartItem, error) {
	item, ok := m.items[itemID]
	if !ok {
		return nil, models.ErrCartItemNotFound
	}
	item.Quantity = quantity
	item.ExpiresAt = time.Now().Add(ttl)
	return item, nil
}

func (m *mockCartRepo) Release(itemID int) error {
	if m.releaseErr != nil {
		return m.releaseErr
	}
	delete(m.items, itemID)
	return nil
}

func (m *mockCartRepo) GetItemByID(itemID int) (*models.CartItem, error) {
	item, ok := m.items[itemID]
	if !ok {
		return nil, models.ErrCartItemNotFound
	}
	return item, nil
}

func (m *mockCartRepo) GetCartByUser(userID int) (*models.Cart, error) {
	cart, ok := m.carts[userID]
	if !ok {
		return &models.Cart{UserID: userID}, nil
	}
	return cart, nil
}

func (m *mockCartRepo) Clear(userID int) error {
	m.clearedUser = userID
	delete(m.carts, userID)
	return nil
}

func (m *mockCartRepo) PurgeExpired(now time.Time) (int, error) {
	if m.purgeErr != nil {
		return 0, m.purgeErr
	}
	return m.purgeCount, nil
}

// mockOrderRepo is an in-memory OrderRepository for service tests
type mockOrderRepo struct {
	orders      map[int]*models.Order
	orderItems  map[int][]*models.OrderItem
	nextID      int
	createErr   error
	markPaidErr error
	expireCount int
	expireErr   error
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{
		orders:     make(map[int]*models.Order),
		orderItems: make(map[int][]*models.OrderItem),
		nextID:     1,
	}
}

func (m *mockOrderRepo) Create(req *models.OrderCreateRequest, cartItems []*models.CartItem) (*models.Order, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	if len(cartItems) == 0 {
		return nil, models.ErrEmptyCart
	}
	order := &models.Order{
		ID:              m.nextID,
		UserID:          req.UserID,
		OrderNumber:     models.GenerateOrderNumber(),
		TotalAmount:     req.TotalAmount,
		Status:          models.OrderPendingPayment,
		BillingEmail:    req.BillingEmail,
		BillingName:     req.BillingName,
		PaymentDeadline: req.PaymentDeadline,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	m.orders[order.ID] = order
	for _, item := range cartItems {
		m.orderItems[order.ID] = append(m.orderItems[order.ID], &models.OrderItem{
			OrderID:   order.ID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	m.nextID++
	return order, nil
}

func (m *mockOrderRepo) GetByID(id int) (*models.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	return order, nil
}

func (m *mockOrderRepo) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	for _, order := range m.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (m *mockOrderRepo) GetOrderItems(orderID int) ([]*models.OrderItem, error) {
	return m.orderItems[orderID], nil
}

func (m *mockOrderRepo) Search(filters repositories.OrderSearchFilters) ([]*models.Order, error) {
	var out []*models.Order
	for _, order := range m.orders {
		if filters.UserID > 0 && order.UserID != filters.UserID {
			continue
		}
		if filters.Status != "" && order.Status != filters.Status {
			continue
		}
		out = append(out, order)
	}
	return out, nil
}

func (m *mockOrderRepo) MarkPaid(orderID int, paymentRef string) error {
	if m.markPaidErr != nil {
		return m.markPaidErr
	}
	order, ok := m.orders[orderID]
	if !ok {
		return models.ErrOrderNotFound
	}
	if !order.IsPendingPayment() {
		return models.ErrInvalidInput
	}
	order.Status = models.OrderPaid
	order.PaymentRef = paymentRef
	return nil
}

func (m *mockOrderRepo) Cancel(orderID int) error {
	order, ok := m.orders[orderID]
	if !ok {
		return models.ErrOrderNotFound
	}
	if !order.CanBeCancelled() {
		return models.ErrInvalidInput
	}
	order.Status = models.OrderCancelled
	return nil
}

func (m *mockOrderRepo) ExpireOverdue(now time.Time) (int, error) {
	if m.expireErr != nil {
		return 0, m.expireErr
	}
	return m.expireCount, nil
}

func (m *mockOrderRepo) GetOrderCount() (int, error) {
	return len(m.orders), nil
}

func (m *mockOrderRepo) GetTotalRevenue() (int, error) {
	total := 0
	for _, order := range m.orders {
		if order.IsPaid() {
			total += order.TotalAmount
		}
	}
	return total, nil
}

func (m *mockOrderRepo) GetOrderStatistics() (map[string]int, error) {
	stats := make(map[string]int)
	for _, order := range m.orders {
		stats[string(order.Status)]++
	}
	return stats, nil
}

// mockProductRepo is an in-memory ProductRepository for service tests
type mockProductRepo struct {
	products map[int]*models.Product
	variants map[int]*models.ProductVariant
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		products: make(map[int]*models.Product),
		variants: make(map[int]*models.ProductVariant),
	}
}

func (m *mockProductRepo) Create(req *models.ProductCreateRequest) (*models.Product, error) {
	product := &models.Product{ID: len(m.products) + 1, Name: req.Name, Category: req.Category, IsActive: true}
	m.products[product.ID] = product
	return product, nil
}

func (m *mockProductRepo) GetByID(id int) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepo) Update(id int, req *models.ProductUpdateRequest) (*models.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	product.Name = req.Name
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	return product, nil
}

func (m *mockProductRepo) Delete(id int) error {
	if _, ok := m.products[id]; !ok {
		return models.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepo) Search(filters repositories.ProductSearchFilters) ([]*models.Product, int, error) {
	var out []*models.Product
	for _, product := range m.products {
		if filters.ActiveOnly && !product.IsActive {
			continue
		}
		out = append(out, product)
	}
	return out, len(out), nil
}

func (m *mockProductRepo) GetWithVariants(id int) (*repositories.ProductWithVariants, error) {
	product, err := m.GetByID(id)
	if err != nil {
		return nil, err
	}
	variants, _ := m.GetVariantsByProduct(id)
	return &repositories.ProductWithVariants{Product: product, Variants: variants}, nil
}

func (m *mockProductRepo) CreateVariant(productID int, req *models.VariantCreateRequest) (*models.ProductVariant, error) {
	if _, ok := m.products[productID]; !ok {
		return nil, models.ErrProductNotFound
	}
	variant := &models.ProductVariant{ID: len(m.variants) + 1, ProductID: productID, Name: req.Name, Price: req.Price, Stock: req.Stock}
	m.variants[variant.ID] = variant
	return variant, nil
}

func (m *mockProductRepo) GetVariantByID(id int) (*models.ProductVariant, error) {
	variant, ok := m.variants[id]
	if !ok {
		return nil, models.ErrVariantNotFound
	}
	return variant, nil
}

func (m *mockProductRepo) GetVariantsByProduct(productID int) ([]*models.ProductVariant, error) {
	var out []*models.ProductVariant
	for _, variant := range m.variants {
		if variant.ProductID == productID {
			out = append(out, variant)
		}
	}
	return out, nil
}

func (m *mockProductRepo) UpdateVariant(id int, req *models.VariantUpdateRequest) (*models.ProductVariant, error) {
	variant, ok := m.variants[id]
	if !ok {
		return nil, models.ErrVariantNotFound
	}
	variant.Name = req.Name
	variant.Price = req.Price
	variant.Stock = req.Stock
	return variant, nil
}

func (m *mockProductRepo) DeleteVariant(id int) error {
	if _, ok := m.variants[id]; !ok {
		return models.ErrVariantNotFound
	}
	delete(m.variants, id)
	return nil
}

func (m *mockProductRepo) GetProductCount() (int, error) {
	return len(m.products), nil
}

// mockPaymentService is a PaymentService double for service tests
type mockPaymentService struct {
	initiateErr error
	verifyOK    bool
	verifyErr   error
	initiated   []*models.Order
}

func (m *mockPaymentService) InitiatePayment(order *models.Order) (*PaymentIntent, error) {
	if m.initiateErr != nil {
		return nil, m.initiateErr
	}
	m.initiated = append(m.initiated, order)
	return &PaymentIntent{PaymentRef: "test_ref", RedirectURL: "https://pay.test/redirect", Amount: order.TotalAmount}, nil
}

func (m *mockPaymentService) VerifyPayment(paymentRef string) (bool, error) {
	if m.verifyErr != nil {
		return false, m.verifyErr
	}
	return m.verifyOK, nil
}

// mockEmailService records sent emails for service tests
type mockEmailService struct {
	confirmations []*models.Order
	expiries      []*models.Order
	sendErr       error
}

func (m *mockEmailService) SendOrderConfirmation(order *models.Order) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.confirmations = append(m.confirmations, order)
	return nil
}

func (m *mockEmailService) SendOrderExpiredNotice(order *models.Order) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.expiries = append(m.expiries, order)
	return nil
}
