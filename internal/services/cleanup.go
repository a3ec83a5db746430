package services

import (
	"log"
	"time"

	"bakery-commerce-platform/internal/metrics"
)

// CleanupService reclaims stock from overdue orders and expired cart
// reservations. It is driven by an external scheduler hitting the cleanup
// endpoint; runs are idempotent so overlapping or repeated invocations are
// harmless.
type CleanupService struct {
	orderRepo OrderRepository
	cartRepo  CartRepository
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(orderRepo OrderRepository, cartRepo CartRepository) *CleanupService {
	return &CleanupService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

// CleanupResult reports what a sweep reclaimed
type CleanupResult struct {
	DeletedOrders       int       `json:"deletedOrders"`
	DeletedReservations int       `json:"deletedReservations"`
	Timestamp           time.Time `json:"timestamp"`
}

// Run expires overdue pending orders and purges lapsed cart reservations,
// restoring their stock. Partial progress survives a mid-run failure; the
// next run picks up whatever is left.
func (s *CleanupService) Run(now time.Time) (*CleanupResult, error) {
	expiredOrders, err := s.orderRepo.ExpireOverdue(now)
	if err != nil {
		return nil, err
	}

	purgedReservations, err := s.cartRepo.PurgeExpired(now)
	if err != nil {
		return nil, err
	}

	metrics.OrdersExpired.Add(float64(expiredOrders))
	metrics.ReservationsReclaimed.Add(float64(purgedReservations))

	if expiredOrders > 0 || purgedReservations > 0 {
		log.Printf("Cleanup run: expired %d orders, reclaimed %d reservations", expiredOrders, purgedReservations)
	}

	return &CleanupResult{
		DeletedOrders:       expiredOrders,
		DeletedReservations: purgedReservations,
		Timestamp:           now,
	}, nil
}
