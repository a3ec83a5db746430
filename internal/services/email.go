package services

import (
	"log"

	"bakery-commerce-platform/internal/models"
)

// EmailService defines the interface for transactional email
type EmailService interface {
	SendOrderConfirmation(order *models.Order) error
	SendOrderExpiredNotice(order *models.Order) error
}

// LogEmailService writes emails to the application log instead of sending
// them. Used in development and as the fallback when no SMTP credentials
// are configured.
type LogEmailService struct{}

// NewLogEmailService creates a new log-backed email service
func NewLogEmailService() *LogEmailService {
	log.Println("Email service: logging emails instead of sending (no SMTP credentials provided)")
	return &LogEmailService{}
}

// SendOrderConfirmation logs an order confirmation email
func (s *LogEmailService) SendOrderConfirmation(order *models.Order) error {
	log.Printf("EMAIL to %s: order %s confirmed, total %.2f", order.BillingEmail, order.OrderNumber, order.TotalAmountInCurrency())
	return nil
}

// SendOrderExpiredNotice logs an order expiry notice
func (s *LogEmailService) SendOrderExpiredNotice(order *models.Order) error {
	log.Printf("EMAIL to %s: order %s expired unpaid", order.BillingEmail, order.OrderNumber)
	return nil
}
