package leaderboard_test

import (
	"encoding/csv"
	"math"
	"strings"
	"testing"

	"github.com/openhack/hackboard/internal/leaderboard"
	"github.com/openhack/hackboard/internal/models"
)

// fixtures returns three scored submissions:
//
//	sub-1 (Project Alpha, Team Alpha, track-2): 90, 85 -> avg 87.5
//	sub-2 (Project Beta, Team Beta, track-1):   95, 92 -> avg 93.5
//	sub-3 (Project Gamma, Team Gamma, no track): 75    -> avg 75
func fixtures() (scores []models.Score, submissions []models.Submission, projects []models.Project, teams []models.Team) {
	teams = []models.Team{
		{ID: "team-alpha", HackathonID: "hack-1", Name: "Team Alpha", TrackID: "track-2"},
		{ID: "team-beta", HackathonID: "hack-1", Name: "Team Beta", TrackID: "track-1"},
		{ID: "team-gamma", HackathonID: "hack-1", Name: "Team Gamma"},
	}
	projects = []models.Project{
		{ID: "proj-1", HackathonID: "hack-1", TeamID: "team-alpha", Title: "Project Alpha", Status: models.ProjectSubmitted},
		{ID: "proj-2", HackathonID: "hack-1", TeamID: "team-beta", Title: "Project Beta", Status: models.ProjectSubmitted},
		{ID: "proj-3", HackathonID: "hack-1", TeamID: "team-gamma", Title: "Project Gamma", Status: models.ProjectSubmitted},
	}
	submissions = []models.Submission{
		{ID: "sub-1", ProjectID: "proj-1", Text: "alpha submission"},
		{ID: "sub-2", ProjectID: "proj-2", Text: "beta submission"},
		{ID: "sub-3", ProjectID: "proj-3", Text: "gamma submission"},
	}
	scores = []models.Score{
		{ID: "score-1", SubmissionID: "sub-1", JudgeID: "judge-1", TotalScore: 90},
		{ID: "score-2", SubmissionID: "sub-1", JudgeID: "judge-2", TotalScore: 85},
		{ID: "score-3", SubmissionID: "sub-2", JudgeID: "judge-1", TotalScore: 95},
		{ID: "score-4", SubmissionID: "sub-2", JudgeID: "judge-2", TotalScore: 92},
		{ID: "score-5", SubmissionID: "sub-3", JudgeID: "judge-1", TotalScore: 75},
	}
	return scores, submissions, projects, teams
}

func TestGenerate_RanksByAverageScore(t *testing.T) {
	scores, submissions, projects, teams := fixtures()

	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{})
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	want := []struct {
		submissionID string
		rank         int
		avg          float64
	}{
		{"sub-2", 1, 93.5},
		{"sub-1", 2, 87.5},
		{"sub-3", 3, 75},
	}
	for i, w := range want {
		e := entries[i]
		if e.SubmissionID != w.submissionID {
			t.Errorf("position %d: expected %s, got %s", i, w.submissionID, e.SubmissionID)
		}
		if e.Rank != w.rank {
			t.Errorf("%s: expected rank %d, got %d", w.submissionID, w.rank, e.Rank)
		}
		if e.AverageScore != w.avg {
			t.Errorf("%s: expected average %.2f, got %.2f", w.submissionID, w.avg, e.AverageScore)
		}
	}
}

func TestGenerate_RanksAreDense(t *testing.T) {
	scores, submissions, projects, teams := fixtures()

	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{})
	for i, e := range entries {
		if e.Rank != i+1 {
			t.Errorf("entry %d: expected dense rank %d, got %d", i, i+1, e.Rank)
		}
		if i > 0 && entries[i-1].AverageScore < e.AverageScore {
			t.Errorf("entries not sorted: %.2f before %.2f", entries[i-1].AverageScore, e.AverageScore)
		}
	}
}

func TestGenerate_TiesKeepEncounterOrder(t *testing.T) {
	_, submissions, projects, teams := fixtures()
	scores := []models.Score{
		{ID: "score-1", SubmissionID: "sub-1", JudgeID: "judge-1", TotalScore: 80},
		{ID: "score-2", SubmissionID: "sub-2", JudgeID: "judge-1", TotalScore: 80},
		{ID: "score-3", SubmissionID: "sub-3", JudgeID: "judge-1", TotalScore: 80},
	}

	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{})
	got := []string{entries[0].SubmissionID, entries[1].SubmissionID, entries[2].SubmissionID}
	want := []string{"sub-1", "sub-2", "sub-3"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tied entries reordered: got %v, want %v", got, want)
		}
	}
}

func TestGenerate_MinJudgesFilter(t *testing.T) {
	scores, submissions, projects, teams := fixtures()

	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{MinJudges: 2})
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries with minJudges=2, got %d", len(entries))
	}
	for _, e := range entries {
		if e.JudgeCount < 2 {
			t.Errorf("%s: judge count %d below minimum", e.SubmissionID, e.JudgeCount)
		}
		if e.SubmissionID == "sub-3" {
			t.Error("sub-3 has one judge and must be excluded")
		}
	}
}

// Judge counts are per-score, not per-distinct-judge: two scores from the
// same judge count as two. This mirrors the observed behavior and is
// intentional, not a bug.
func TestGenerate_JudgeCountNotDeduplicated(t *testing.T) {
	_, submissions, projects, teams := fixtures()
	scores := []models.Score{
		{ID: "score-1", SubmissionID: "sub-1", JudgeID: "judge-1", TotalScore: 90},
		{ID: "score-2", SubmissionID: "sub-1", JudgeID: "judge-1", TotalScore: 80},
	}

	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{MinJudges: 2})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].JudgeCount != 2 {
		t.Errorf("expected judge count 2 (no dedup), got %d", entries[0].JudgeCount)
	}

	// ComputeStats, by contrast, does deduplicate judges
	stats := leaderboard.ComputeStats(entries)
	if stats.TotalJudges != 1 {
		t.Errorf("expected 1 distinct judge in stats, got %d", stats.TotalJudges)
	}
}

// Missing cross-references are tolerated silently: submissions pointing at
// unknown projects or teams are excluded, never an error.
func TestGenerate_SkipsMissingReferences(t *testing.T) {
	scores, submissions, projects, teams := fixtures()

	submissions = append(submissions, models.Submission{ID: "sub-orphan", ProjectID: "proj-missing"})
	scores = append(scores, models.Score{ID: "score-x", SubmissionID: "sub-orphan", JudgeID: "judge-1", TotalScore: 100})

	projects = append(projects, models.Project{ID: "proj-teamless", HackathonID: "hack-1", TeamID: "team-missing", Title: "Teamless"})
	submissions = append(submissions, models.Submission{ID: "sub-teamless", ProjectID: "proj-teamless"})
	scores = append(scores, models.Score{ID: "score-y", SubmissionID: "sub-teamless", JudgeID: "judge-1", TotalScore: 99})

	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{})
	if len(entries) != 3 {
		t.Fatalf("expected orphaned submissions to be skipped, got %d entries", len(entries))
	}
	for _, e := range entries {
		if e.SubmissionID == "sub-orphan" || e.SubmissionID == "sub-teamless" {
			t.Errorf("orphaned submission %s must not be ranked", e.SubmissionID)
		}
	}
}

func TestGenerate_TrackOption(t *testing.T) {
	scores, submissions, projects, teams := fixtures()

	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{TrackID: "track-1"})
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry on track-1, got %d", len(entries))
	}
	if entries[0].SubmissionID != "sub-2" || entries[0].Rank != 1 {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}

// Filtering a full board by track yields the same submissions as generating
// with the track option, modulo re-ranking.
func TestFilterByTrack_MatchesTrackOption(t *testing.T) {
	scores, submissions, projects, teams := fixtures()

	full := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{})
	filtered := leaderboard.FilterByTrack(full, "track-1")
	direct := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{TrackID: "track-1"})

	if len(filtered) != len(direct) {
		t.Fatalf("filter mismatch: %d vs %d entries", len(filtered), len(direct))
	}
	for i := range filtered {
		if filtered[i].SubmissionID != direct[i].SubmissionID {
			t.Errorf("entry %d: %s vs %s", i, filtered[i].SubmissionID, direct[i].SubmissionID)
		}
		if filtered[i].Rank != i+1 {
			t.Errorf("entry %d: rank not recomputed, got %d", i, filtered[i].Rank)
		}
	}
}

func TestFilterByTrack_EmptyTrackReturnsAll(t *testing.T) {
	scores, submissions, projects, teams := fixtures()

	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{})
	all := leaderboard.FilterByTrack(entries, "")
	if len(all) != len(entries) {
		t.Errorf("expected all %d entries, got %d", len(entries), len(all))
	}
}

func TestTopEntries(t *testing.T) {
	scores, submissions, projects, teams := fixtures()
	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{})

	if top := leaderboard.TopEntries(entries, 2); len(top) != 2 || top[0].SubmissionID != "sub-2" {
		t.Errorf("TopEntries(2) = %d entries, first %s", len(top), top[0].SubmissionID)
	}
	if top := leaderboard.TopEntries(entries, 10); len(top) != 3 {
		t.Errorf("TopEntries(10) should return all entries, got %d", len(top))
	}
	if top := leaderboard.TopEntries(entries, 0); len(top) != 0 {
		t.Errorf("TopEntries(0) should be empty, got %d", len(top))
	}
}

func TestComputeStats(t *testing.T) {
	scores, submissions, projects, teams := fixtures()
	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{})

	stats := leaderboard.ComputeStats(entries)
	if stats.TotalSubmissions != 3 {
		t.Errorf("TotalSubmissions = %d, want 3", stats.TotalSubmissions)
	}
	if stats.HighestScore != 93.5 {
		t.Errorf("HighestScore = %.2f, want 93.5", stats.HighestScore)
	}
	if stats.LowestScore != 75 {
		t.Errorf("LowestScore = %.2f, want 75", stats.LowestScore)
	}
	if stats.TotalJudges != 2 {
		t.Errorf("TotalJudges = %d, want 2 (judge-1 and judge-2)", stats.TotalJudges)
	}
	wantAvg := (93.5 + 87.5 + 75) / 3
	if math.Abs(stats.AverageScore-wantAvg) > 1e-9 {
		t.Errorf("AverageScore = %v, want %v", stats.AverageScore, wantAvg)
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := leaderboard.ComputeStats(nil)
	if stats != (leaderboard.Stats{}) {
		t.Errorf("expected all-zero stats for empty board, got %+v", stats)
	}
}

func TestExportCSV(t *testing.T) {
	scores, submissions, projects, teams := fixtures()
	entries := leaderboard.Generate(scores, submissions, projects, teams, leaderboard.Options{})

	out := leaderboard.ExportCSV(entries)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "Rank,Project,Team,Track,Score,Judges" {
		t.Errorf("unexpected header: %q", lines[0])
	}
	if lines[1] != "1,Project Beta,Team Beta,track-1,93.50,2" {
		t.Errorf("unexpected first row: %q", lines[1])
	}
	if !strings.Contains(lines[3], ",N/A,") {
		t.Errorf("trackless entry should render N/A: %q", lines[3])
	}
}

func TestExportCSV_EscapesDelimiters(t *testing.T) {
	title := `Smart, "Fast" App`
	entries := []leaderboard.Entry{
		{Rank: 1, ProjectTitle: title, TeamName: "Team One", TrackID: "track-1", AverageScore: 88, JudgeCount: 2},
	}

	out := leaderboard.ExportCSV(entries)
	if !strings.Contains(out, `"Smart, ""Fast"" App"`) {
		t.Fatalf("title not escaped per RFC 4180: %q", out)
	}

	// Parsing the CSV back recovers the original field
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("exported CSV is not parseable: %v", err)
	}
	if records[1][1] != title {
		t.Errorf("round-trip mismatch: got %q, want %q", records[1][1], title)
	}
}

func TestExportCSV_EmptyBoard(t *testing.T) {
	out := leaderboard.ExportCSV(nil)
	if out != "Rank,Project,Team,Track,Score,Judges" {
		t.Errorf("empty board should export header only, got %q", out)
	}
}
