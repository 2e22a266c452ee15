package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	participantdomain "secret-santa-go/internal/domain/participant"
	"github.com/go-chi/chi/v5"
)

type registerParticipantRequest struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Email         string  `json:"email"`
	GuardianEmail *string `json:"guardian_email"`
}

type verifyParticipantRequest struct {
	Code string `json:"code"`
}

type pendingParticipantResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	GuardianEmail *string   `json:"guardian_email,omitempty"`
	CodeExpiresAt time.Time `json:"code_expires_at"`
}

type participantResponse struct {
	ID            string    `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Email         string    `json:"email"`
	GuardianEmail *string   `json:"guardian_email,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

func (h *Handlers) RegisterParticipant(w http.ResponseWriter, r *http.Request) {
	var req registerParticipantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.Email = strings.TrimSpace(req.Email)
	if req.FirstName == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "first_name and email are required")
		return
	}

	pending, err := h.Participants.Register(r.Context(), participantdomain.RegisterInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		GuardianEmail: req.GuardianEmail,
	})
	if err != nil {
		switch {
		case errors.Is(err, participantdomain.ErrEmailTaken):
			h.log.BusinessError("participants.register: email taken", err, "email", req.Email)
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
		default:
			h.log.InternalError("participants.register: register failed", err, "email", req.Email)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toPendingResponse(pending))
}

func (h *Handlers) VerifyParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req verifyParticipantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	req.Code = strings.TrimSpace(req.Code)
	if req.Code == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}

	verified, err := h.Participants.Verify(r.Context(), id, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, participantdomain.ErrPendingNotFound):
			h.log.BusinessError("participants.verify: pending registration not found", err, "participant_id", id)
			writeError(w, http.StatusNotFound, "registration_not_found", "pending registration not found")
		case errors.Is(err, participantdomain.ErrCodeMismatch):
			h.log.BusinessError("participants.verify: code mismatch", err, "participant_id", id)
			writeError(w, http.StatusBadRequest, "code_mismatch", "verification code does not match")
		case errors.Is(err, participantdomain.ErrCodeExpired):
			h.log.BusinessError("participants.verify: code expired", err, "participant_id", id)
			writeError(w, http.StatusBadRequest, "code_expired", "verification code expired, request a new one")
		default:
			h.log.InternalError("participants.verify: verify failed", err, "participant_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toParticipantResponse(verified))
}

func (h *Handlers) ResendCode(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Participants.ResendCode(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, participantdomain.ErrPendingNotFound):
			h.log.BusinessError("participants.resend_code: pending registration not found", err, "participant_id", id)
			writeError(w, http.StatusNotFound, "registration_not_found", "pending registration not found")
		default:
			h.log.InternalError("participants.resend_code: resend failed", err, "participant_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.Participants.List(r.Context())
	if err != nil {
		h.log.InternalError("participants.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]participantResponse, 0, len(participants))
	for i := range participants {
		response = append(response, toParticipantResponse(&participants[i]))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handlers) GetParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.Participants.Get(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, participantdomain.ErrParticipantNotFound):
			h.log.BusinessError("participants.get: participant not found", err, "participant_id", id)
			writeError(w, http.StatusNotFound, "participant_not_found", "participant not found")
		default:
			h.log.InternalError("participants.get: get failed", err, "participant_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, toParticipantResponse(result))
}

func (h *Handlers) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Participants.Remove(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, participantdomain.ErrParticipantNotFound):
			h.log.BusinessError("participants.remove: participant not found", err, "participant_id", id)
			writeError(w, http.StatusNotFound, "participant_not_found", "participant not found")
		default:
			h.log.InternalError("participants.remove: remove failed", err, "participant_id", id)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toPendingResponse(p *participantdomain.PendingParticipant) pendingParticipantResponse {
	return pendingParticipantResponse{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		GuardianEmail: p.GuardianEmail,
		CodeExpiresAt: p.CodeExpiresAt,
	}
}

func toParticipantResponse(p *participantdomain.Participant) participantResponse {
	return participantResponse{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Email:         p.Email,
		GuardianEmail: p.GuardianEmail,
		EmailVerified: p.EmailVerified,
		CreatedAt:     p.CreatedAt,
	}
}
