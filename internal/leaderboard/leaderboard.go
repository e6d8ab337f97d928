// Package leaderboard ranks submissions from raw score, submission, project,
// and team snapshots. It is pure computation: no I/O, no errors. Rows with
// missing cross-references are silently excluded rather than surfaced.
package leaderboard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/openhack/hackboard/internal/models"
)

// Entry is one ranked submission on the leaderboard
type Entry struct {
	Rank         int            `json:"rank"`
	SubmissionID string         `json:"submission_id"`
	ProjectID    string         `json:"project_id"`
	ProjectTitle string         `json:"project_title"`
	TeamID       string         `json:"team_id"`
	TeamName     string         `json:"team_name"`
	TrackID      string         `json:"track_id,omitempty"`
	AverageScore float64        `json:"average_score"`
	JudgeCount   int            `json:"judge_count"`
	Scores       []models.Score `json:"scores"`
}

// Options narrows leaderboard generation
type Options struct {
	// TrackID limits the board to submissions whose team is on this track
	TrackID string
	// MinJudges is the minimum number of scores a submission needs to be
	// ranked. Values below 1 mean 1.
	MinJudges int
}

// Generate computes a ranked leaderboard from flat entity snapshots.
// Submissions whose project or team cannot be resolved are skipped silently.
// Entries are sorted by descending average score; ties keep encounter order.
// Ranks are dense and 1-based.
func Generate(scores []models.Score, submissions []models.Submission, projects []models.Project, teams []models.Team, opts Options) []Entry {
	minJudges := opts.MinJudges
	if minJudges < 1 {
		minJudges = 1
	}

	scoresBySubmission := make(map[string][]models.Score)
	for _, s := range scores {
		scoresBySubmission[s.SubmissionID] = append(scoresBySubmission[s.SubmissionID], s)
	}

	projectsByID := make(map[string]models.Project, len(projects))
	for _, p := range projects {
		projectsByID[p.ID] = p
	}
	teamsByID := make(map[string]models.Team, len(teams))
	for _, t := range teams {
		teamsByID[t.ID] = t
	}

	var entries []Entry
	for _, sub := range submissions {
		project, ok := projectsByID[sub.ProjectID]
		if !ok {
			continue
		}
		team, ok := teamsByID[project.TeamID]
		if !ok {
			continue
		}
		if opts.TrackID != "" && team.TrackID != opts.TrackID {
			continue
		}

		subScores := scoresBySubmission[sub.ID]
		// One score per judge is assumed here; judge ids are not deduplicated
		judgeCount := len(subScores)
		if judgeCount < minJudges {
			continue
		}

		var total float64
		for _, s := range subScores {
			total += s.TotalScore
		}

		entries = append(entries, Entry{
			SubmissionID: sub.ID,
			ProjectID:    project.ID,
			ProjectTitle: project.Title,
			TeamID:       team.ID,
			TeamName:     team.Name,
			TrackID:      team.TrackID,
			AverageScore: total / float64(judgeCount),
			JudgeCount:   judgeCount,
			Scores:       subScores,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AverageScore > entries[j].AverageScore
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// FilterByTrack returns the entries on the given track with ranks recomputed
// densely over the filtered subset. An empty trackID returns all entries.
func FilterByTrack(entries []Entry, trackID string) []Entry {
	if trackID == "" {
		return entries
	}

	var filtered []Entry
	for _, e := range entries {
		if e.TrackID == trackID {
			e.Rank = len(filtered) + 1
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// TopEntries returns the first count entries in existing order
func TopEntries(entries []Entry, count int) []Entry {
	if count <= 0 {
		return nil
	}
	if count >= len(entries) {
		return entries
	}
	return entries[:count]
}

// Stats summarizes a leaderboard
type Stats struct {
	TotalSubmissions int     `json:"total_submissions"`
	AverageScore     float64 `json:"average_score"`
	HighestScore     float64 `json:"highest_score"`
	LowestScore      float64 `json:"lowest_score"`
	TotalJudges      int     `json:"total_judges"`
}

// ComputeStats summarizes the entries. AverageScore is the mean of the
// entries' average scores (not re-weighted by judge count). TotalJudges
// counts distinct judge ids across all underlying scores. All fields are
// zero for an empty board.
func ComputeStats(entries []Entry) Stats {
	if len(entries) == 0 {
		return Stats{}
	}

	stats := Stats{
		TotalSubmissions: len(entries),
		HighestScore:     entries[0].AverageScore,
		LowestScore:      entries[0].AverageScore,
	}

	var total float64
	judges := make(map[string]bool)
	for _, e := range entries {
		total += e.AverageScore
		if e.AverageScore > stats.HighestScore {
			stats.HighestScore = e.AverageScore
		}
		if e.AverageScore < stats.LowestScore {
			stats.LowestScore = e.AverageScore
		}
		for _, s := range e.Scores {
			judges[s.JudgeID] = true
		}
	}

	stats.AverageScore = total / float64(len(entries))
	stats.TotalJudges = len(judges)
	return stats
}

// ExportCSV renders the entries as CSV with header
// Rank,Project,Team,Track,Score,Judges. Scores have exactly two decimal
// places; a missing track renders as N/A; fields are quoted per RFC 4180.
func ExportCSV(entries []Entry) string {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, "Rank,Project,Team,Track,Score,Judges")

	for _, e := range entries {
		track := e.TrackID
		if track == "" {
			track = "N/A"
		}
		fields := []string{
			fmt.Sprintf("%d", e.Rank),
			csvEscape(e.ProjectTitle),
			csvEscape(e.TeamName),
			csvEscape(track),
			fmt.Sprintf("%.2f", e.AverageScore),
			fmt.Sprintf("%d", e.JudgeCount),
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

// csvEscape wraps a field in double quotes when it contains a comma, quote,
// or newline, doubling any internal quotes
func csvEscape(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}
