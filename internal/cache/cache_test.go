package cache_test

import (
	"testing"

	"github.com/openhack/hackboard/internal/cache"
)

func TestStore_GetSet(t *testing.T) {
	s := cache.NewStore()

	if _, ok := s.Get("hackathons"); ok {
		t.Fatal("expected miss on empty store")
	}

	s.Set("hackathons", []string{"hack-1"})
	v, ok := s.Get("hackathons")
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got := v.([]string); len(got) != 1 || got[0] != "hack-1" {
		t.Errorf("unexpected cached value: %v", got)
	}
}

func TestStore_InvalidateMarksStaleButKeepsEntry(t *testing.T) {
	s := cache.NewStore()
	s.Set("teams:hack-1", "cached")
	s.Invalidate("teams:hack-1")

	if _, ok := s.Get("teams:hack-1"); ok {
		t.Error("stale entry must not be returned by Get")
	}
	if !s.Contains("teams:hack-1") {
		t.Error("stale entry must still be present")
	}
	if !s.IsStale("teams:hack-1") {
		t.Error("entry must be marked stale")
	}
}

func TestStore_InvalidateUnknownKeyIsNoop(t *testing.T) {
	s := cache.NewStore()
	s.Invalidate("never-cached")

	if s.Contains("never-cached") {
		t.Error("invalidating an uncached key must not create an entry")
	}
}

func TestStore_RemoveEvicts(t *testing.T) {
	s := cache.NewStore()
	s.Set("tracks:detail:track-1", "cached")
	s.Remove("tracks:detail:track-1")

	if s.Contains("tracks:detail:track-1") {
		t.Error("removed entry must be gone entirely")
	}
}

func TestStore_SetRefreshesStaleEntry(t *testing.T) {
	s := cache.NewStore()
	s.Set("scores:hack-1", "old")
	s.Invalidate("scores:hack-1")
	s.Set("scores:hack-1", "new")

	v, ok := s.Get("scores:hack-1")
	if !ok {
		t.Fatal("expected hit after re-Set")
	}
	if v != "new" {
		t.Errorf("expected refreshed value, got %v", v)
	}
}

func TestKeys_Deterministic(t *testing.T) {
	if cache.Hackathons.Detail("hack-1") != cache.Hackathons.Detail("hack-1") {
		t.Error("key functions must be deterministic")
	}
	if cache.Leaderboard.ByTrack("hack-1", "track-1") != "leaderboard:hack-1:track:track-1" {
		t.Errorf("unexpected leaderboard track key: %s", cache.Leaderboard.ByTrack("hack-1", "track-1"))
	}
}

func TestKeys_NoCollisions(t *testing.T) {
	keys := []string{
		cache.Hackathons.All(),
		cache.Hackathons.Detail("x"),
		cache.Hackathons.ByStatus("LIVE"),
		cache.Tracks.All("x"),
		cache.Tracks.Detail("x"),
		cache.Participants.All("x"),
		cache.Participants.Detail("x"),
		cache.Teams.All("x"),
		cache.Teams.Detail("x"),
		cache.Teams.Members("x"),
		cache.Projects.All("x"),
		cache.Projects.Detail("x"),
		cache.Projects.ByTeam("x"),
		cache.Submissions.All("x"),
		cache.Submissions.Detail("x"),
		cache.Submissions.ByProject("x"),
		cache.Rubrics.All("x"),
		cache.Rubrics.Detail("x"),
		cache.Scores.All("x"),
		cache.Scores.Detail("x"),
		cache.Scores.BySubmission("x"),
		cache.Scores.ByJudge("x"),
		cache.Prizes.All("x"),
		cache.Prizes.Detail("x"),
		cache.Invitations.All("x"),
		cache.Invitations.Detail("x"),
		cache.Leaderboard.All("x"),
		cache.Leaderboard.ByTrack("x", "x"),
	}

	seen := make(map[string]bool)
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate cache key: %s", k)
		}
		seen[k] = true
	}
}
