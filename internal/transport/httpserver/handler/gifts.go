package handler

import (
	"errors"
	"net/http"
	"time"

	giftsdomain "secret-santa-go/internal/domain/gifts"
	participantdomain "secret-santa-go/internal/domain/participant"
	"github.com/go-chi/chi/v5"
)

type addGiftItemRequest struct {
	Name     string  `json:"name"`
	URL      *string `json:"url"`
	Notes    *string `json:"notes"`
	Priority int     `json:"priority"`
}

type updateGiftItemRequest struct {
	Name      *string `json:"name"`
	URL       *string `json:"url"`
	Notes     *string `json:"notes"`
	Priority  *int    `json:"priority"`
	Purchased *bool   `json:"purchased"`
}

type giftItemResponse struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	Name          string    `json:"name"`
	URL           *string   `json:"url,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Priority      int       `json:"priority"`
	Purchased     bool      `json:"purchased"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *Handlers) ListGiftItems(w http.ResponseWriter, r *http.Request) {
	participantID := chi.URLParam(r, "id")

	if _, err := h.Participants.Get(r.Context(), participantID); err != nil {
		if errors.Is(err, participantdomain.ErrParticipantNotFound) {
			h.log.BusinessError("gifts.list: participant not found", err, "participant_id", participantID)
			writeError(w, http.StatusNotFound, "participant_not_found", "participant not found")
			return
		}
		h.log.InternalError("gifts.list: get participant failed", err, "participant_id", participantID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	items, err := h.Gifts.ListForParticipant(r.Context(), participantID)
	if err != nil {
		h.log.InternalError("gifts.list: list failed", err, "participant_id", participantID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]giftItemResponse, 0, len(items))
	for i := range items {
		response = append(response, toGiftItemResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) AddGiftItem(w http.ResponseWriter, r *http.Request) {
	participantID := chi.URLParam(r, "id")

	var req addGiftItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	if _, err := h.Participants.Get(r.Context(), participantID); err != nil {
		if errors.Is(err, participantdomain.ErrParticipantNotFound) {
			h.log.BusinessError("gifts.add: participant not found", err, "participant_id", participantID)
			writeError(w, http.StatusNotFound, "participant_not_found", "participant not found")
			return
		}
		h.log.InternalError("gifts.add: get participant failed", err, "participant_id", participantID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	item, err := h.Gifts.AddItem(r.Context(), giftsdomain.AddItemInput{
		ParticipantID: participantID,
		Name:          req.Name,
		URL:           req.URL,
		Notes:         req.Notes,
		Priority:      req.Priority,
	})
	if err != nil {
		h.log.InternalError("gifts.add: create failed", err, "participant_id", participantID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, toGiftItemResponse(item))
}

func (h *Handlers) UpdateGiftItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	var req updateGiftItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	item, err := h.Gifts.UpdateItem(r.Context(), giftsdomain.UpdateItemInput{
		ItemID:    itemID,
		Name:      req.Name,
		URL:       req.URL,
		Notes:     req.Notes,
		Priority:  req.Priority,
		Purchased: req.Purchased,
	})
	if err != nil {
		switch {
		case errors.Is(err, giftsdomain.ErrGiftItemNotFound):
			h.log.BusinessError("gifts.update: item not found", err, "item_id", itemID)
			writeError(w, http.StatusNotFound, "gift_item_not_found", "gift item not found")
		default:
			h.log.InternalError("gifts.update: update failed", err, "item_id", itemID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toGiftItemResponse(item))
}

func (h *Handlers) DeleteGiftItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "item_id")

	if err := h.Gifts.DeleteItem(r.Context(), itemID); err != nil {
		switch {
		case errors.Is(err, giftsdomain.ErrGiftItemNotFound):
			h.log.BusinessError("gifts.delete: item not found", err, "item_id", itemID)
			writeError(w, http.StatusNotFound, "gift_item_not_found", "gift item not found")
		default:
			h.log.InternalError("gifts.delete: delete failed", err, "item_id", itemID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toGiftItemResponse(item *giftsdomain.GiftItem) giftItemResponse {
	return giftItemResponse{
		ID:            item.ID,
		ParticipantID: item.ParticipantID,
		Name:          item.Name,
		URL:           item.URL,
		Notes:         item.Notes,
		Priority:      item.Priority,
		Purchased:     item.Purchased,
		CreatedAt:     item.CreatedAt,
	}
}
