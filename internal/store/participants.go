package store

import (
	"context"
	"strings"

	"github.com/openhack/hackboard/internal/cache"
	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/models"
	"github.com/openhack/hackboard/pkg/zerodb"
)

// GetParticipant returns one participant by id
func (s *Store) GetParticipant(ctx context.Context, id string) (models.Participant, error) {
	return getCached[models.Participant](ctx, s, cache.Participants.Detail(id), zerodb.TableParticipants, id, "participant")
}

// CreateParticipant registers a person on the platform. Creation alone does
// not enroll them anywhere, so no cached view changes.
func (s *Store) CreateParticipant(ctx context.Context, p models.Participant) (models.Participant, error) {
	if strings.TrimSpace(p.Email) == "" {
		return models.Participant{}, apperrors.Validation("participant email is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return models.Participant{}, apperrors.Validation("participant name is required")
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	if err := s.insert(ctx, zerodb.TableParticipants, zerodb.RowOf(p)); err != nil {
		return models.Participant{}, err
	}
	return p, nil
}

// Enroll ties a participant to a hackathon with a role
func (s *Store) Enroll(ctx context.Context, e models.Enrollment) error {
	if e.HackathonID == "" || e.ParticipantID == "" {
		return apperrors.Validation("hackathon id and participant id are required")
	}
	if e.Role == "" {
		e.Role = models.RoleBuilder
	}
	if err := s.insert(ctx, zerodb.TableEnrollments, zerodb.RowOf(e)); err != nil {
		return err
	}
	cache.ParticipantEnrolled(s.cache, e.HackathonID)
	return nil
}

// ListEnrollments returns a hackathon's enrollments
func (s *Store) ListEnrollments(ctx context.Context, hackathonID string) ([]models.Enrollment, error) {
	rows, _, err := s.client.QueryRows(ctx, zerodb.TableEnrollments, zerodb.QueryOptions{
		Filter: map[string]any{"hackathon_id": hackathonID},
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to query enrollments")
	}
	return zerodb.DecodeRows[models.Enrollment](rows)
}

// ListParticipants returns everyone enrolled in a hackathon, in enrollment
// order. The enrollment join runs one lookup per participant, which cached
// detail entries absorb across calls.
func (s *Store) ListParticipants(ctx context.Context, hackathonID string) ([]models.Participant, error) {
	key := cache.Participants.All(hackathonID)
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.([]models.Participant); ok {
			return typed, nil
		}
	}

	enrollments, err := s.ListEnrollments(ctx, hackathonID)
	if err != nil {
		return nil, err
	}

	participants := make([]models.Participant, 0, len(enrollments))
	for _, e := range enrollments {
		p, err := s.GetParticipant(ctx, e.ParticipantID)
		if err != nil {
			s.log.Warn("Enrollment references unknown participant",
				"hackathon_id", hackathonID, "participant_id", e.ParticipantID)
			continue
		}
		participants = append(participants, p)
	}

	s.cache.Set(key, participants)
	return participants, nil
}
