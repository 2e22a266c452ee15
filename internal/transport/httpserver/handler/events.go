package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	drawdomain "secret-santa-go/internal/domain/draw"
	eventdomain "secret-santa-go/internal/domain/event"
	"github.com/go-chi/chi/v5"
)

type createEventRequest struct {
	Name           string   `json:"name"`
	Location       string   `json:"location"`
	ParticipantIDs []string `json:"participant_ids"`
}

type eventResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type eventDetailResponse struct {
	eventResponse
	ParticipantIDs []string `json:"participant_ids"`
}

type historyEntryResponse struct {
	ID          string    `json:"id"`
	TicketCount int       `json:"ticket_count"`
	DrawnAt     time.Time `json:"drawn_at"`
}

func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}

	result, err := h.Events.CreateEvent(r.Context(), eventdomain.CreateEventInput{
		Name:           req.Name,
		Location:       strings.TrimSpace(req.Location),
		ParticipantIDs: req.ParticipantIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, eventdomain.ErrNotEnoughParticipants):
			h.log.BusinessError("events.create: not enough participants", err, "name", req.Name)
			writeError(w, http.StatusBadRequest, "not_enough_participants", "at least two verified participants required")
		case errors.Is(err, eventdomain.ErrParticipantUnknown):
			h.log.BusinessError("events.create: unknown participant", err, "name", req.Name)
			writeError(w, http.StatusNotFound, "participant_not_found", "participant not found")
		default:
			h.log.InternalError("events.create: create failed", err, "name", req.Name)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toEventResponse(result))
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Events.ListEvents(r.Context())
	if err != nil {
		h.log.InternalError("events.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]eventResponse, 0, len(events))
	for i := range events {
		response = append(response, toEventResponse(&events[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.Events.GetEvent(r.Context(), id)
	if err != nil {
		h.respondEventError(w, "events.get", id, err)
		return
	}

	participantIDs, err := h.Events.ParticipantIDs(r.Context(), id)
	if err != nil {
		h.log.InternalError("events.get: list roster failed", err, "event_id", id)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, eventDetailResponse{
		eventResponse:  toEventResponse(result),
		ParticipantIDs: participantIDs,
	})
}

func (h *Handlers) CancelEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.Events.CancelEvent(r.Context(), id)
	if err != nil {
		h.respondEventError(w, "events.cancel", id, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(result))
}

func (h *Handlers) DrawEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.Draw.Draw(r.Context(), id)
	if err != nil {
		h.respondEventError(w, "events.draw", id, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handlers) UndoDraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.Draw.UndoLastDraw(r.Context(), id)
	if err != nil {
		h.respondEventError(w, "events.undo_draw", id, err)
		return
	}

	writeJSON(w, http.StatusOK, toEventResponse(result))
}

func (h *Handlers) DrawHistory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	entries, err := h.Events.History(r.Context(), id)
	if err != nil {
		h.respondEventError(w, "events.history", id, err)
		return
	}

	response := make([]historyEntryResponse, 0, len(entries))
	for i := range entries {
		ids, err := entries[i].TicketIDList()
		if err != nil {
			h.log.InternalError("events.history: corrupt history entry", err, "event_id", id, "entry_id", entries[i].ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}
		response = append(response, historyEntryResponse{
			ID:          entries[i].ID,
			TicketCount: len(ids),
			DrawnAt:     entries[i].DrawnAt,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) IncludeParticipant(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	participantID := chi.URLParam(r, "participant_id")

	if err := h.Events.IncludeParticipant(r.Context(), eventID, participantID); err != nil {
		h.respondEventError(w, "events.include_participant", eventID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ExcludeParticipant(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	participantID := chi.URLParam(r, "participant_id")

	if err := h.Events.ExcludeParticipant(r.Context(), eventID, participantID); err != nil {
		h.respondEventError(w, "events.exclude_participant", eventID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// respondEventError maps the event and draw error families onto HTTP
// statuses. Lifecycle violations are conflicts, eligibility failures
// are bad requests.
func (h *Handlers) respondEventError(w http.ResponseWriter, op, eventID string, err error) {
	switch {
	case errors.Is(err, eventdomain.ErrEventNotFound):
		h.log.BusinessError(op+": event not found", err, "event_id", eventID)
		writeError(w, http.StatusNotFound, "event_not_found", "event not found")
	case errors.Is(err, eventdomain.ErrParticipantUnknown):
		h.log.BusinessError(op+": unknown participant", err, "event_id", eventID)
		writeError(w, http.StatusNotFound, "participant_not_found", "participant not found")
	case errors.Is(err, eventdomain.ErrNoDrawHistory):
		h.log.BusinessError(op+": no draw history", err, "event_id", eventID)
		writeError(w, http.StatusNotFound, "no_draw_history", "event has no draw to undo")
	case errors.Is(err, eventdomain.ErrNotEnoughParticipants),
		errors.Is(err, drawdomain.ErrTooFewParticipants):
		h.log.BusinessError(op+": not enough participants", err, "event_id", eventID)
		writeError(w, http.StatusBadRequest, "not_enough_participants", "at least two verified participants required")
	case errors.Is(err, drawdomain.ErrOddParticipants):
		h.log.BusinessError(op+": odd participant count", err, "event_id", eventID)
		writeError(w, http.StatusBadRequest, "odd_participants", "an even number of verified participants is required")
	case errors.Is(err, eventdomain.ErrEventCancelled):
		h.log.BusinessError(op+": event cancelled", err, "event_id", eventID)
		writeError(w, http.StatusConflict, "event_cancelled", "cancelled events cannot be drawn")
	case errors.Is(err, eventdomain.ErrAlreadyDrawn):
		h.log.BusinessError(op+": already drawn", err, "event_id", eventID)
		writeError(w, http.StatusConflict, "already_drawn", "already drawn, create a new event to redo")
	case errors.Is(err, eventdomain.ErrEventNotActive):
		h.log.BusinessError(op+": event not active", err, "event_id", eventID)
		writeError(w, http.StatusConflict, "event_not_active", "event is not active")
	case errors.Is(err, eventdomain.ErrStatusConflict):
		h.log.BusinessError(op+": concurrent status change", err, "event_id", eventID)
		writeError(w, http.StatusConflict, "status_conflict", "event status changed concurrently, retry")
	default:
		h.log.InternalError(op+": failed", err, "event_id", eventID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toEventResponse(e *eventdomain.Event) eventResponse {
	return eventResponse{
		ID:        e.ID,
		Name:      e.Name,
		Location:  e.Location,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}
