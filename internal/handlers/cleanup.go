package handlers

import (
	"crypto/subtle"
	"log"
	"net/http"
	"strings"
	"time"

	"bakery-commerce-platform/internal/services"
)

// CleanupRunner runs an expiry sweep
type CleanupRunner interface {
	Run(now time.Time) (*services.CleanupResult, error)
}

// CleanupHandler exposes the expiry sweep to an external scheduler. The
// endpoint is guarded by a shared secret, not a user session, so a plain
// cron job can drive it.
type CleanupHandler struct {
	cleanupService CleanupRunner
	secret         string
}

// NewCleanupHandler creates a new cleanup handler
func NewCleanupHandler(cleanupService CleanupRunner, secret string) *CleanupHandler {
	return &CleanupHandler{
		cleanupService: cleanupService,
		secret:         secret,
	}
}

// Run authorizes the caller and performs one sweep. The secret check
// happens before anything touches the database; an unauthorized call
// mutates nothing.
func (h *CleanupHandler) Run(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(r) {
		writeError(w, http.StatusUnauthorized, "invalid cleanup secret")
		return
	}

	result, err := h.cleanupService.Run(time.Now())
	if err != nil {
		log.Printf("Cleanup run failed: %v", err)
		writeError(w, http.StatusInternalServerError, "cleanup run failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":             true,
		"deletedOrders":       result.DeletedOrders,
		"deletedReservations": result.DeletedReservations,
		"timestamp":           result.Timestamp,
	})
}

// authorized accepts the shared secret as a bearer token only; query
// parameters would leak the secret into access logs
func (h *CleanupHandler) authorized(r *http.Request) bool {
	if h.secret == "" {
		return false
	}

	var provided string
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			provided = strings.TrimSpace(parts[1])
		}
	}

	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) == 1
}
