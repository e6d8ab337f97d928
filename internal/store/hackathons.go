package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/openhack/hackboard/internal/cache"
	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/models"
	"github.com/openhack/hackboard/pkg/zerodb"
)

// ListHackathons returns all hackathons, oldest first
func (s *Store) ListHackathons(ctx context.Context) ([]models.Hackathon, error) {
	return listCached[models.Hackathon](ctx, s, cache.Hackathons.All(), zerodb.TableHackathons,
		zerodb.QueryOptions{Sort: "start_at"})
}

// ListHackathonsByStatus returns hackathons in the given lifecycle state
func (s *Store) ListHackathonsByStatus(ctx context.Context, status models.HackathonStatus) ([]models.Hackathon, error) {
	return listCached[models.Hackathon](ctx, s, cache.Hackathons.ByStatus(string(status)), zerodb.TableHackathons,
		zerodb.QueryOptions{Filter: map[string]any{"status": string(status)}, Sort: "start_at"})
}

// GetHackathon returns one hackathon by id
func (s *Store) GetHackathon(ctx context.Context, id string) (models.Hackathon, error) {
	return getCached[models.Hackathon](ctx, s, cache.Hackathons.Detail(id), zerodb.TableHackathons, id, "hackathon")
}

// CreateHackathon creates a hackathon. New hackathons always start in DRAFT.
func (s *Store) CreateHackathon(ctx context.Context, h models.Hackathon) (models.Hackathon, error) {
	if strings.TrimSpace(h.Name) == "" {
		return models.Hackathon{}, apperrors.Validation("hackathon name is required")
	}
	if (!h.StartAt.IsZero() || !h.EndAt.IsZero()) && !h.StartAt.Before(h.EndAt) {
		return models.Hackathon{}, apperrors.Validation("hackathon must start before it ends")
	}
	if h.ID == "" {
		h.ID = s.newID()
	}
	h.Status = models.HackathonDraft
	h.CreatedAt = s.now().UTC()

	if err := s.insert(ctx, zerodb.TableHackathons, zerodb.RowOf(h)); err != nil {
		return models.Hackathon{}, err
	}
	cache.HackathonCreated(s.cache, string(h.Status))
	s.log.Info("Hackathon created", "hackathon_id", h.ID, "name", h.Name)
	return h, nil
}

// UpdateHackathon overwrites a hackathon's settable fields. Status changes
// go through UpdateHackathonStatus so transitions stay monotonic.
func (s *Store) UpdateHackathon(ctx context.Context, h models.Hackathon) error {
	if h.ID == "" {
		return apperrors.Validation("hackathon id is required")
	}
	if (!h.StartAt.IsZero() || !h.EndAt.IsZero()) && !h.StartAt.Before(h.EndAt) {
		return apperrors.Validation("hackathon must start before it ends")
	}
	current, err := s.GetHackathon(ctx, h.ID)
	if err != nil {
		return err
	}
	row := zerodb.RowOf(h)
	delete(row, "status")
	delete(row, "created_at")
	if err := s.insert(ctx, zerodb.TableHackathons, row); err != nil {
		return err
	}
	cache.HackathonUpdated(s.cache, h.ID, string(current.Status))
	return nil
}

// UpdateHackathonStatus moves a hackathon through its lifecycle. Only
// forward transitions are allowed; CLOSED is terminal.
func (s *Store) UpdateHackathonStatus(ctx context.Context, id string, target models.HackathonStatus) error {
	current, err := s.GetHackathon(ctx, id)
	if err != nil {
		return err
	}
	if !current.Status.CanTransition(target) {
		return apperrors.Conflict(fmt.Sprintf("cannot transition hackathon from %s to %s", current.Status, target))
	}
	if err := s.insert(ctx, zerodb.TableHackathons, zerodb.Row{"id": id, "status": string(target)}); err != nil {
		return err
	}
	cache.HackathonStatusChanged(s.cache, id, string(current.Status), string(target))
	s.log.Info("Hackathon status changed", "hackathon_id", id, "from", current.Status, "to", target)
	return nil
}

// DeleteHackathon soft-deletes a hackathon. The row keeps existing in the
// backend but disappears from all reads.
func (s *Store) DeleteHackathon(ctx context.Context, id string) error {
	current, err := s.GetHackathon(ctx, id)
	if err != nil {
		return err
	}
	if err := s.insert(ctx, zerodb.TableHackathons, zerodb.Row{"id": id, "deleted": true}); err != nil {
		return err
	}
	cache.HackathonDeleted(s.cache, id, string(current.Status))
	return nil
}

// ListTracks returns a hackathon's tracks
func (s *Store) ListTracks(ctx context.Context, hackathonID string) ([]models.Track, error) {
	return listCached[models.Track](ctx, s, cache.Tracks.All(hackathonID), zerodb.TableTracks,
		zerodb.QueryOptions{Filter: map[string]any{"hackathon_id": hackathonID}})
}

// GetTrack returns one track by id
func (s *Store) GetTrack(ctx context.Context, id string) (models.Track, error) {
	return getCached[models.Track](ctx, s, cache.Tracks.Detail(id), zerodb.TableTracks, id, "track")
}

// CreateTrack creates a track within a hackathon
func (s *Store) CreateTrack(ctx context.Context, t models.Track) (models.Track, error) {
	if strings.TrimSpace(t.Name) == "" {
		return models.Track{}, apperrors.Validation("track name is required")
	}
	if t.HackathonID == "" {
		return models.Track{}, apperrors.Validation("hackathon id is required")
	}
	if t.ID == "" {
		t.ID = s.newID()
	}
	if err := s.insert(ctx, zerodb.TableTracks, zerodb.RowOf(t)); err != nil {
		return models.Track{}, err
	}
	cache.TrackCreated(s.cache, t.HackathonID)
	return t, nil
}

// UpdateTrack overwrites a track's settable fields
func (s *Store) UpdateTrack(ctx context.Context, t models.Track) error {
	if t.ID == "" || t.HackathonID == "" {
		return apperrors.Validation("track id and hackathon id are required")
	}
	if err := s.insert(ctx, zerodb.TableTracks, zerodb.RowOf(t)); err != nil {
		return err
	}
	cache.TrackUpdated(s.cache, t.HackathonID, t.ID)
	return nil
}

// DeleteTrack soft-deletes a track
func (s *Store) DeleteTrack(ctx context.Context, hackathonID, id string) error {
	if err := s.insert(ctx, zerodb.TableTracks, zerodb.Row{"id": id, "deleted": true}); err != nil {
		return err
	}
	cache.TrackDeleted(s.cache, hackathonID, id)
	return nil
}
