package store_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/openhack/hackboard/internal/cache"
	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/logger"
	"github.com/openhack/hackboard/internal/models"
	"github.com/openhack/hackboard/internal/store"
	"github.com/openhack/hackboard/pkg/zerodb"
)

func newStore(t *testing.T, opts ...zerodb.MockOption) (*store.Store, *zerodb.MockClient) {
	t.Helper()
	mock := zerodb.NewMockClient(opts...)
	s := store.New(logger.Noop{}, mock, cache.NewStore())
	n := 0
	s.SetIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	s.SetClock(func() time.Time {
		return time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	})
	return s, mock
}

func TestListHackathonsServesFromCache(t *testing.T) {
	s, mock := newStore(t,
		zerodb.WithRows(zerodb.TableHackathons,
			zerodb.Row{"id": "hack-1", "name": "Spring Jam", "status": "LIVE"},
			zerodb.Row{"id": "hack-2", "name": "Fall Jam", "status": "DRAFT"},
		),
	)
	ctx := context.Background()

	first, err := s.ListHackathons(ctx)
	if err != nil {
		t.Fatalf("ListHackathons() error = %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("got %d hackathons, want 2", len(first))
	}

	// A row written behind the cache's back stays invisible until a
	// mutation invalidates the list.
	if _, err := mock.InsertRows(ctx, zerodb.TableHackathons, []zerodb.Row{
		{"id": "hack-3", "name": "Winter Jam", "status": "DRAFT"},
	}); err != nil {
		t.Fatal(err)
	}
	second, err := s.ListHackathons(ctx)
	if err != nil {
		t.Fatalf("ListHackathons() error = %v", err)
	}
	if len(second) != 2 {
		t.Errorf("cached list has %d hackathons, want 2", len(second))
	}

	if _, err := s.CreateHackathon(ctx, models.Hackathon{Name: "New Year Jam"}); err != nil {
		t.Fatalf("CreateHackathon() error = %v", err)
	}
	third, err := s.ListHackathons(ctx)
	if err != nil {
		t.Fatalf("ListHackathons() error = %v", err)
	}
	if len(third) != 4 {
		t.Errorf("refreshed list has %d hackathons, want 4", len(third))
	}
}

func TestGetHackathonNotFound(t *testing.T) {
	s, _ := newStore(t)

	_, err := s.GetHackathon(context.Background(), "nope")
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.ErrNotFound {
		t.Errorf("error = %v, want not-found kind", err)
	}
}

func TestCreateHackathonForcesDraft(t *testing.T) {
	s, _ := newStore(t)

	h, err := s.CreateHackathon(context.Background(), models.Hackathon{
		Name:   "Spring Jam",
		Status: models.HackathonLive,
	})
	if err != nil {
		t.Fatalf("CreateHackathon() error = %v", err)
	}
	if h.Status != models.HackathonDraft {
		t.Errorf("status = %q, want DRAFT", h.Status)
	}
	if h.ID != "id-1" {
		t.Errorf("id = %q, want generated id-1", h.ID)
	}
	if h.CreatedAt.IsZero() {
		t.Error("created_at should be set")
	}
}

func TestUpdateHackathonStatus(t *testing.T) {
	s, mock := newStore(t,
		zerodb.WithRows(zerodb.TableHackathons, zerodb.Row{"id": "hack-1", "name": "Jam", "status": "DRAFT"}),
	)
	ctx := context.Background()

	if err := s.UpdateHackathonStatus(ctx, "hack-1", models.HackathonLive); err != nil {
		t.Fatalf("UpdateHackathonStatus() error = %v", err)
	}
	if status, _ := mock.Table(zerodb.TableHackathons)[0]["status"].(string); status != "LIVE" {
		t.Errorf("status = %q, want LIVE", status)
	}
	if !s.Cache().IsStale(cache.Hackathons.Detail("hack-1")) {
		t.Error("detail key should be stale after a status change")
	}
}

func TestUpdateHackathonStatusRejectsBackwardTransition(t *testing.T) {
	s, mock := newStore(t,
		zerodb.WithRows(zerodb.TableHackathons, zerodb.Row{"id": "hack-1", "name": "Jam", "status": "CLOSED"}),
	)

	err := s.UpdateHackathonStatus(context.Background(), "hack-1", models.HackathonLive)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.ErrConflict {
		t.Fatalf("error = %v, want conflict kind", err)
	}
	if mock.InsertCalls(zerodb.TableHackathons) != 0 {
		t.Error("a rejected transition must not write")
	}
}

func TestStatusChangeRefreshesStatusLists(t *testing.T) {
	s, _ := newStore(t,
		zerodb.WithRows(zerodb.TableHackathons, zerodb.Row{"id": "hack-1", "name": "Jam", "status": "DRAFT"}),
	)
	ctx := context.Background()

	drafts, err := s.ListHackathonsByStatus(ctx, models.HackathonDraft)
	if err != nil {
		t.Fatalf("ListHackathonsByStatus() error = %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("got %d DRAFT hackathons, want 1", len(drafts))
	}

	if err := s.UpdateHackathonStatus(ctx, "hack-1", models.HackathonLive); err != nil {
		t.Fatalf("UpdateHackathonStatus() error = %v", err)
	}

	drafts, err = s.ListHackathonsByStatus(ctx, models.HackathonDraft)
	if err != nil {
		t.Fatalf("ListHackathonsByStatus() error = %v", err)
	}
	if len(drafts) != 0 {
		t.Errorf("DRAFT list has %d hackathons after DRAFT->LIVE, want 0", len(drafts))
	}
	live, err := s.ListHackathonsByStatus(ctx, models.HackathonLive)
	if err != nil {
		t.Fatalf("ListHackathonsByStatus() error = %v", err)
	}
	if len(live) != 1 {
		t.Errorf("LIVE list has %d hackathons after DRAFT->LIVE, want 1", len(live))
	}
}

func TestCreateHackathonRejectsInvertedWindow(t *testing.T) {
	s, mock := newStore(t)

	_, err := s.CreateHackathon(context.Background(), models.Hackathon{
		Name:    "Backwards Jam",
		StartAt: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.ErrValidation {
		t.Fatalf("error = %v, want validation kind", err)
	}
	if mock.InsertCalls(zerodb.TableHackathons) != 0 {
		t.Error("a rejected hackathon must not write")
	}
}

func TestUpdateHackathonRejectsInvertedWindow(t *testing.T) {
	s, mock := newStore(t,
		zerodb.WithRows(zerodb.TableHackathons, zerodb.Row{"id": "hack-1", "name": "Jam", "status": "DRAFT"}),
	)

	err := s.UpdateHackathon(context.Background(), models.Hackathon{
		ID:      "hack-1",
		Name:    "Jam",
		StartAt: time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC),
	})
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.ErrValidation {
		t.Fatalf("error = %v, want validation kind", err)
	}
	if mock.InsertCalls(zerodb.TableHackathons) != 0 {
		t.Error("a rejected update must not write")
	}
}

func TestUpdateProjectStatus(t *testing.T) {
	s, mock := newStore(t,
		zerodb.WithRows(zerodb.TableProjects, zerodb.Row{
			"id": "proj-1", "hackathon_id": "hack-1", "team_id": "team-1",
			"title": "Project Alpha", "status": "DRAFT",
		}),
	)
	ctx := context.Background()

	if _, err := s.ListProjects(ctx, "hack-1"); err != nil {
		t.Fatalf("ListProjects() error = %v", err)
	}
	if err := s.UpdateProjectStatus(ctx, "proj-1", models.ProjectBuilding); err != nil {
		t.Fatalf("UpdateProjectStatus() error = %v", err)
	}
	if status, _ := mock.Table(zerodb.TableProjects)[0]["status"].(string); status != "BUILDING" {
		t.Errorf("status = %q, want BUILDING", status)
	}
	if !s.Cache().IsStale(cache.Projects.All("hack-1")) {
		t.Error("project list should be stale after a status change")
	}
	if !s.Cache().IsStale(cache.Projects.Detail("proj-1")) {
		t.Error("project detail should be stale after a status change")
	}
}

func TestUpdateProjectStatusRejectsBackwardTransition(t *testing.T) {
	s, mock := newStore(t,
		zerodb.WithRows(zerodb.TableProjects, zerodb.Row{
			"id": "proj-1", "hackathon_id": "hack-1", "team_id": "team-1",
			"title": "Project Alpha", "status": "SUBMITTED",
		}),
	)

	err := s.UpdateProjectStatus(context.Background(), "proj-1", models.ProjectDraft)
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperrors.ErrConflict {
		t.Fatalf("error = %v, want conflict kind", err)
	}
	if mock.InsertCalls(zerodb.TableProjects) != 0 {
		t.Error("a rejected transition must not write")
	}
}

func TestDeleteHackathonHidesRow(t *testing.T) {
	s, _ := newStore(t,
		zerodb.WithRows(zerodb.TableHackathons, zerodb.Row{"id": "hack-1", "name": "Jam", "status": "DRAFT"}),
	)
	ctx := context.Background()

	if _, err := s.GetHackathon(ctx, "hack-1"); err != nil {
		t.Fatalf("GetHackathon() error = %v", err)
	}
	if err := s.DeleteHackathon(ctx, "hack-1"); err != nil {
		t.Fatalf("DeleteHackathon() error = %v", err)
	}

	if s.Cache().Contains(cache.Hackathons.Detail("hack-1")) {
		t.Error("detail key should be evicted, not just stale")
	}
	if _, err := s.GetHackathon(ctx, "hack-1"); err == nil {
		t.Error("a deleted hackathon should not be readable")
	}
	hs, err := s.ListHackathons(ctx)
	if err != nil {
		t.Fatalf("ListHackathons() error = %v", err)
	}
	if len(hs) != 0 {
		t.Errorf("list has %d hackathons, want 0 after delete", len(hs))
	}
}

func TestWriteFailureLeavesCacheFresh(t *testing.T) {
	s, _ := newStore(t, zerodb.WithInsertError(zerodb.TableTeams, errors.New("backend down")))

	key := cache.Teams.All("hack-1")
	s.Cache().Set(key, []models.Team{})

	_, err := s.CreateTeam(context.Background(), models.Team{HackathonID: "hack-1", Name: "Team Alpha"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if s.Cache().IsStale(key) {
		t.Error("a failed write must not invalidate anything")
	}
}

func TestListParticipantsJoinsEnrollments(t *testing.T) {
	s, _ := newStore(t,
		zerodb.WithRows(zerodb.TableParticipants,
			zerodb.Row{"id": "p-1", "name": "Ada", "email": "ada@example.com"},
			zerodb.Row{"id": "p-2", "name": "Grace", "email": "grace@example.com"},
		),
		zerodb.WithRows(zerodb.TableEnrollments,
			zerodb.Row{"hackathon_id": "hack-1", "participant_id": "p-2", "role": "JUDGE"},
			zerodb.Row{"hackathon_id": "hack-1", "participant_id": "p-1", "role": "BUILDER"},
			zerodb.Row{"hackathon_id": "hack-1", "participant_id": "p-missing", "role": "BUILDER"},
			zerodb.Row{"hackathon_id": "hack-2", "participant_id": "p-1", "role": "MENTOR"},
		),
	)

	participants, err := s.ListParticipants(context.Background(), "hack-1")
	if err != nil {
		t.Fatalf("ListParticipants() error = %v", err)
	}
	if len(participants) != 2 {
		t.Fatalf("got %d participants, want 2", len(participants))
	}
	// Enrollment order, and the dangling enrollment is skipped.
	if participants[0].ID != "p-2" || participants[1].ID != "p-1" {
		t.Errorf("participants = %v, want p-2 then p-1", participants)
	}
}

func TestListSubmissionsScopedToHackathon(t *testing.T) {
	s, _ := newStore(t,
		zerodb.WithRows(zerodb.TableProjects,
			zerodb.Row{"id": "proj-1", "hackathon_id": "hack-1", "team_id": "team-1", "title": "Alpha", "status": "DRAFT"},
			zerodb.Row{"id": "proj-2", "hackathon_id": "hack-2", "team_id": "team-2", "title": "Other", "status": "DRAFT"},
		),
		zerodb.WithRows(zerodb.TableSubmissions,
			zerodb.Row{"id": "sub-1", "project_id": "proj-1", "text": "ours"},
			zerodb.Row{"id": "sub-2", "project_id": "proj-2", "text": "theirs"},
		),
	)

	submissions, err := s.ListSubmissions(context.Background(), "hack-1")
	if err != nil {
		t.Fatalf("ListSubmissions() error = %v", err)
	}
	if len(submissions) != 1 || submissions[0].ID != "sub-1" {
		t.Errorf("submissions = %v, want just sub-1", submissions)
	}
}

func TestSubmitScoreInvalidatesLeaderboard(t *testing.T) {
	s, _ := newStore(t)

	key := cache.Leaderboard.All("hack-1")
	s.Cache().Set(key, "stale leaderboard")

	_, err := s.SubmitScore(context.Background(), "hack-1", models.Score{
		SubmissionID: "sub-1",
		JudgeID:      "judge-1",
		TotalScore:   88,
	})
	if err != nil {
		t.Fatalf("SubmitScore() error = %v", err)
	}
	if !s.Cache().IsStale(key) {
		t.Error("leaderboard key should be stale after a new score")
	}
}

func TestSubmitScoreInvalidatesJudgeList(t *testing.T) {
	s, _ := newStore(t)

	key := cache.Scores.ByJudge("judge-1")
	s.Cache().Set(key, []models.Score{})

	_, err := s.SubmitScore(context.Background(), "hack-1", models.Score{
		SubmissionID: "sub-1",
		JudgeID:      "judge-1",
		TotalScore:   91,
	})
	if err != nil {
		t.Fatalf("SubmitScore() error = %v", err)
	}
	if !s.Cache().IsStale(key) {
		t.Error("the judge's score list should be stale after a new score")
	}
}

func TestCreateInvitationForcesPending(t *testing.T) {
	s, _ := newStore(t)

	inv, err := s.CreateInvitation(context.Background(), models.Invitation{
		HackathonID: "hack-1",
		Email:       "judge@example.com",
		Status:      models.InvitationAccepted,
	})
	if err != nil {
		t.Fatalf("CreateInvitation() error = %v", err)
	}
	if inv.Status != models.InvitationPending {
		t.Errorf("status = %q, want PENDING", inv.Status)
	}
	if inv.Role != models.RoleJudge {
		t.Errorf("role = %q, want default JUDGE", inv.Role)
	}
}
