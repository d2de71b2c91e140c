// internal/handler/journey_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tshekom8206/staybotplatform-sub005/internal/model"
	"github.com/tshekom8206/staybotplatform-sub005/internal/service"
)

// JourneyHandler holds the dependencies for guest-journey HTTP handlers.
type JourneyHandler struct {
	Service *service.JourneyService
}

func NewJourneyHandler(svc *service.JourneyService) *JourneyHandler {
	return &JourneyHandler{Service: svc}
}

// tenantID reads the explicit tenant scope from the X-Tenant-ID header. There
// is no ambient tenant context anywhere in this service.
func tenantID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.Header.Get("X-Tenant-ID"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// GetSettingsHandler returns the tenant's settings, creating defaults on
// first access.
func (h *JourneyHandler) GetSettingsHandler(w http.ResponseWriter, r *http.Request) {
	tid, ok := tenantID(r)
	if !ok {
		http.Error(w, "missing or invalid X-Tenant-ID header", http.StatusBadRequest)
		return
	}

	settings, err := h.Service.GetSettings(r.Context(), tid)
	if err != nil {
		http.Error(w, "failed to load settings: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettingsHandler upserts the tenant's settings.
func (h *JourneyHandler) UpdateSettingsHandler(w http.ResponseWriter, r *http.Request) {
	tid, ok := tenantID(r)
	if !ok {
		http.Error(w, "missing or invalid X-Tenant-ID header", http.StatusBadRequest)
		return
	}

	var payload model.GuestJourneySettings
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	settings, err := h.Service.UpdateSettings(r.Context(), tid, &payload)
	if err != nil {
		http.Error(w, "failed to update settings: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, settings)
}

// PlaceholdersHandler lists the fixed template placeholder set.
func (h *JourneyHandler) PlaceholdersHandler(w http.ResponseWriter, r *http.Request) {
	type placeholder struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	out := make([]placeholder, 0, len(service.Placeholders))
	for _, p := range service.Placeholders {
		out = append(out, placeholder{Name: p.Name, Description: p.Description})
	}
	writeJSON(w, http.StatusOK, out)
}

// PreviewHandler renders a template against sample data.
func (h *JourneyHandler) PreviewHandler(w http.ResponseWriter, r *http.Request) {
	tid, ok := tenantID(r)
	if !ok {
		http.Error(w, "missing or invalid X-Tenant-ID header", http.StatusBadRequest)
		return
	}

	var payload struct {
		Template string `json:"template"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	preview, err := h.Service.PreviewTemplate(r.Context(), tid, payload.Template)
	if err != nil {
		http.Error(w, "failed to generate preview: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"preview": preview})
}

// ListScheduledMessagesHandler returns a filtered, paginated page of the
// tenant's scheduled messages.
func (h *JourneyHandler) ListScheduledMessagesHandler(w http.ResponseWriter, r *http.Request) {
	tid, ok := tenantID(r)
	if !ok {
		http.Error(w, "missing or invalid X-Tenant-ID header", http.StatusBadRequest)
		return
	}

	page := 1
	pageSize := 20
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil && ps > 0 {
		pageSize = ps
	}

	status := r.URL.Query().Get("status")
	msgType := r.URL.Query().Get("type")

	messages, pagination, err := h.Service.ListScheduledMessages(r.Context(), tid, status, msgType, page, pageSize)
	if err != nil {
		http.Error(w, "failed to fetch scheduled messages: "+err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":       messages,
		"pagination": pagination,
	})
}

// ScheduleForBookingHandler triggers the (idempotent) scheduling pass for one
// booking.
func (h *JourneyHandler) ScheduleForBookingHandler(w http.ResponseWriter, r *http.Request) {
	tid, ok := tenantID(r)
	if !ok {
		http.Error(w, "missing or invalid X-Tenant-ID header", http.StatusBadRequest)
		return
	}

	bookingID, err := strconv.Atoi(chi.URLParam(r, "bookingID"))
	if err != nil {
		http.Error(w, "invalid booking id", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.Bookings.GetByID(r.Context(), tid, bookingID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if err := h.Service.ScheduleMessagesForBooking(r.Context(), tid, booking); err != nil {
		http.Error(w, "failed to schedule messages: "+err.Error(), http.StatusInternalServerError)
		return
	}

	messages, _, err := h.Service.ListScheduledMessages(r.Context(), tid, "", "", 1, 100)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	scheduled := []model.ScheduledMessage{}
	for _, m := range messages {
		if m.BookingID == bookingID {
			scheduled = append(scheduled, m)
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"booking_id":         bookingID,
		"scheduled_messages": scheduled,
	})
}

// CheckinHandler records a guest as settled, scheduling the welcome-settled
// message exactly once per booking.
func (h *JourneyHandler) CheckinHandler(w http.ResponseWriter, r *http.Request) {
	tid, ok := tenantID(r)
	if !ok {
		http.Error(w, "missing or invalid X-Tenant-ID header", http.StatusBadRequest)
		return
	}

	bookingID, err := strconv.Atoi(chi.URLParam(r, "bookingID"))
	if err != nil {
		http.Error(w, "invalid booking id", http.StatusBadRequest)
		return
	}

	booking, err := h.Service.Bookings.GetByID(r.Context(), tid, bookingID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if err := h.Service.ScheduleWelcomeSettled(r.Context(), booking); err != nil {
		http.Error(w, "failed to schedule welcome message: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"booking_id": bookingID, "scheduled": true})
}

// CancelForBookingHandler flips the booking's pending messages to cancelled.
func (h *JourneyHandler) CancelForBookingHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := tenantID(r); !ok {
		http.Error(w, "missing or invalid X-Tenant-ID header", http.StatusBadRequest)
		return
	}

	bookingID, err := strconv.Atoi(chi.URLParam(r, "bookingID"))
	if err != nil {
		http.Error(w, "invalid booking id", http.StatusBadRequest)
		return
	}

	count, err := h.Service.CancelMessagesForBooking(r.Context(), bookingID)
	if err != nil {
		http.Error(w, "failed to cancel messages: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"booking_id": bookingID, "cancelled": count})
}

// ProcessHandler triggers one due-message processing pass. Safe to call
// repeatedly and concurrently; the claim discipline keeps sends at-most-once.
func (h *JourneyHandler) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.ProcessDueMessages(r.Context())
	if err != nil {
		http.Error(w, "failed to process messages: "+err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
