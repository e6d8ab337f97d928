package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/openhack/hackboard/internal/models"
)

// handleListInvitations returns a hackathon's invitations
func (h *Handlers) handleListInvitations(w http.ResponseWriter, r *http.Request) {
	invitations, err := h.Store.ListInvitations(r.Context(), chi.URLParam(r, "hackathonID"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, invitations)
}

// handleSendInvitation invites someone into a hackathon by email
func (h *Handlers) handleSendInvitation(w http.ResponseWriter, r *http.Request) {
	var req InvitationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	invitation, err := h.Invitations.Send(r.Context(), models.Invitation{
		HackathonID: chi.URLParam(r, "hackathonID"),
		Email:       req.Email,
		Role:        req.Role,
		Message:     req.Message,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondCreated(w, invitation)
}

// handleAcceptInvitation accepts an invitation and enrolls the invitee
func (h *Handlers) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	var req InvitationAcceptRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	participant, err := h.Invitations.Accept(r.Context(), chi.URLParam(r, "invitationID"), models.Participant{
		ID:           req.ParticipantID,
		Name:         req.Name,
		Email:        req.Email,
		Organization: req.Organization,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, participant)
}

// handleDeclineInvitation declines a pending invitation
func (h *Handlers) handleDeclineInvitation(w http.ResponseWriter, r *http.Request) {
	if err := h.Invitations.Decline(r.Context(), chi.URLParam(r, "invitationID")); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, map[string]string{"status": string(models.InvitationDeclined)})
}

// handleInvitationQR returns a QR code PNG for an invitation's accept link
func (h *Handlers) handleInvitationQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Invitations.GenerateQRImage(r.Context(), chi.URLParam(r, "invitationID"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}
