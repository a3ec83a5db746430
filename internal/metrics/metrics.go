package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Stock lifecycle counters. Registered on the default registry and served
// by Handler.
var (
	OrdersExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakery_orders_expired_total",
		Help: "Total number of pending orders expired by the cleanup sweep",
	})

	ReservationsReclaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakery_reservations_reclaimed_total",
		Help: "Total number of expired cart reservations reclaimed by the cleanup sweep",
	})

	ReservationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bakery_reservation_conflicts_total",
		Help: "Total number of reservation attempts rejected for insufficient stock",
	})
)

// Handler serves the Prometheus scrape endpoint
func Handler() http.Handler {
	return promhttp.Handler()
}
