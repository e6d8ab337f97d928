package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/logger"
	"github.com/openhack/hackboard/internal/models"
	"github.com/openhack/hackboard/internal/store"
)

// InvitationService handles inviting judges, mentors, and sponsors into a
// hackathon and turning accepted invitations into enrollments.
type InvitationService struct {
	log     logger.Logger
	store   *store.Store
	baseURL string
}

// NewInvitationService creates a new InvitationService. baseURL is the
// public address accept links and QR codes point at.
func NewInvitationService(log logger.Logger, st *store.Store, baseURL string) *InvitationService {
	return &InvitationService{log: log, store: st, baseURL: baseURL}
}

// Send records a pending invitation
func (s *InvitationService) Send(ctx context.Context, inv models.Invitation) (models.Invitation, error) {
	created, err := s.store.CreateInvitation(ctx, inv)
	if err != nil {
		return models.Invitation{}, err
	}
	s.log.Info("Invitation sent",
		"invitation_id", created.ID, "hackathon_id", created.HackathonID, "role", created.Role)
	return created, nil
}

// Accept marks an invitation accepted and enrolls the invitee with the
// invited role. When the acceptor has no participant record yet, one is
// created from the name they supply and the invited email.
func (s *InvitationService) Accept(ctx context.Context, invitationID string, participant models.Participant) (models.Participant, error) {
	inv, err := s.store.GetInvitation(ctx, invitationID)
	if err != nil {
		return models.Participant{}, err
	}
	if inv.Status != models.InvitationPending {
		return models.Participant{}, apperrors.Conflict(fmt.Sprintf("invitation is already %s", inv.Status))
	}

	if participant.ID == "" {
		if participant.Email == "" {
			participant.Email = inv.Email
		}
		participant, err = s.store.CreateParticipant(ctx, participant)
		if err != nil {
			return models.Participant{}, err
		}
	}

	if err := s.store.Enroll(ctx, models.Enrollment{
		HackathonID:   inv.HackathonID,
		ParticipantID: participant.ID,
		Role:          inv.Role,
	}); err != nil {
		return models.Participant{}, err
	}

	if err := s.store.MarkInvitationAccepted(ctx, inv.HackathonID, inv.ID); err != nil {
		return models.Participant{}, err
	}

	s.log.Info("Invitation accepted",
		"invitation_id", inv.ID, "participant_id", participant.ID, "role", inv.Role)
	return participant, nil
}

// Decline marks a pending invitation declined
func (s *InvitationService) Decline(ctx context.Context, invitationID string) error {
	inv, err := s.store.GetInvitation(ctx, invitationID)
	if err != nil {
		return err
	}
	if inv.Status != models.InvitationPending {
		return apperrors.Conflict(fmt.Sprintf("invitation is already %s", inv.Status))
	}
	return s.store.MarkInvitationDeclined(ctx, inv.HackathonID, inv.ID)
}

// AcceptURL returns the public link an invitee follows to accept
func (s *InvitationService) AcceptURL(invitationID string) string {
	return fmt.Sprintf("%s/invitations/%s/accept", strings.TrimSuffix(s.baseURL, "/"), invitationID)
}

// GenerateQRImage generates a QR code PNG for an invitation's accept link
func (s *InvitationService) GenerateQRImage(ctx context.Context, invitationID string) ([]byte, error) {
	inv, err := s.store.GetInvitation(ctx, invitationID)
	if err != nil {
		return nil, err
	}
	if s.baseURL == "" {
		return nil, apperrors.Validation("base url is not configured")
	}
	return qrcode.Encode(s.AcceptURL(inv.ID), qrcode.Medium, 256)
}
