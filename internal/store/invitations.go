package store

import (
	"context"
	"strings"

	"github.com/openhack/hackboard/internal/cache"
	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/models"
	"github.com/openhack/hackboard/pkg/zerodb"
)

// ListInvitations returns a hackathon's invitations
func (s *Store) ListInvitations(ctx context.Context, hackathonID string) ([]models.Invitation, error) {
	return listCached[models.Invitation](ctx, s, cache.Invitations.All(hackathonID), zerodb.TableInvitations,
		zerodb.QueryOptions{Filter: map[string]any{"hackathon_id": hackathonID}})
}

// GetInvitation returns one invitation by id
func (s *Store) GetInvitation(ctx context.Context, id string) (models.Invitation, error) {
	return getCached[models.Invitation](ctx, s, cache.Invitations.Detail(id), zerodb.TableInvitations, id, "invitation")
}

// CreateInvitation records a pending invitation. The status is always
// PENDING at creation regardless of what the caller set.
func (s *Store) CreateInvitation(ctx context.Context, inv models.Invitation) (models.Invitation, error) {
	if strings.TrimSpace(inv.Email) == "" {
		return models.Invitation{}, apperrors.Validation("invitation email is required")
	}
	if inv.HackathonID == "" {
		return models.Invitation{}, apperrors.Validation("hackathon id is required")
	}
	if inv.Role == "" {
		inv.Role = models.RoleJudge
	}
	if inv.ID == "" {
		inv.ID = s.newID()
	}
	inv.Status = models.InvitationPending
	inv.CreatedAt = s.now().UTC()

	if err := s.insert(ctx, zerodb.TableInvitations, zerodb.RowOf(inv)); err != nil {
		return models.Invitation{}, err
	}
	cache.InvitationSent(s.cache, inv.HackathonID)
	return inv, nil
}

// MarkInvitationAccepted flips an invitation to ACCEPTED
func (s *Store) MarkInvitationAccepted(ctx context.Context, hackathonID, id string) error {
	if err := s.insert(ctx, zerodb.TableInvitations, zerodb.Row{
		"id":     id,
		"status": string(models.InvitationAccepted),
	}); err != nil {
		return err
	}
	cache.InvitationAccepted(s.cache, hackathonID, id)
	return nil
}

// MarkInvitationDeclined flips an invitation to DECLINED
func (s *Store) MarkInvitationDeclined(ctx context.Context, hackathonID, id string) error {
	if err := s.insert(ctx, zerodb.TableInvitations, zerodb.Row{
		"id":     id,
		"status": string(models.InvitationDeclined),
	}); err != nil {
		return err
	}
	cache.InvitationDeclined(s.cache, hackathonID, id)
	return nil
}
