// internal/handler/broadcast_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/tshekom8206/staybotplatform-sub005/internal/errors"
	"github.com/tshekom8206/staybotplatform-sub005/internal/service"
)

type BroadcastHandler struct {
	Service *service.BroadcastService
}

func NewBroadcastHandler(svc *service.BroadcastService) *BroadcastHandler {
	return &BroadcastHandler{Service: svc}
}

// CreateBroadcastHandler fans an announcement out to the tenant's guests.
func (h *BroadcastHandler) CreateBroadcastHandler(w http.ResponseWriter, r *http.Request) {
	tid, ok := tenantID(r)
	if !ok {
		http.Error(w, "missing or invalid X-Tenant-ID header", http.StatusBadRequest)
		return
	}

	var payload struct {
		MessageType string `json:"message_type"`
		Content     string `json:"content"`
		Scope       string `json:"scope"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.Service.SendBroadcast(r.Context(), tid, payload.MessageType, payload.Content, payload.Scope)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusAccepted, result)
}

// GetBroadcastHandler returns a broadcast with its delivery counters.
func (h *BroadcastHandler) GetBroadcastHandler(w http.ResponseWriter, r *http.Request) {
	tid, ok := tenantID(r)
	if !ok {
		http.Error(w, "missing or invalid X-Tenant-ID header", http.StatusBadRequest)
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid broadcast id", http.StatusBadRequest)
		return
	}

	bc, err := h.Service.GetBroadcast(r.Context(), tid, id)
	if err != nil {
		if _, notFound := err.(*appErrors.ErrBroadcastNotFound); notFound {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch broadcast: "+err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, bc)
}
