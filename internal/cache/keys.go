package cache

// Cache keys are pure functions of their inputs: the same inputs always
// produce the same key, and keys for different entities never collide because
// each entity type owns a distinct prefix.

type hackathonKeys struct{}

// Hackathons is the key set for hackathon views
var Hackathons hackathonKeys

func (hackathonKeys) All() string              { return "hackathons" }
func (hackathonKeys) Detail(id string) string  { return "hackathons:detail:" + id }
func (hackathonKeys) ByStatus(s string) string { return "hackathons:status:" + s }

type trackKeys struct{}

// Tracks is the key set for track views, scoped to a hackathon
var Tracks trackKeys

func (trackKeys) All(hackathonID string) string { return "tracks:" + hackathonID }
func (trackKeys) Detail(id string) string       { return "tracks:detail:" + id }

type participantKeys struct{}

// Participants is the key set for enrollment-scoped participant views
var Participants participantKeys

func (participantKeys) All(hackathonID string) string { return "participants:" + hackathonID }
func (participantKeys) Detail(id string) string       { return "participants:detail:" + id }

type teamKeys struct{}

// Teams is the key set for team views
var Teams teamKeys

func (teamKeys) All(hackathonID string) string { return "teams:" + hackathonID }
func (teamKeys) Detail(id string) string       { return "teams:detail:" + id }
func (teamKeys) Members(teamID string) string  { return "teams:members:" + teamID }

type projectKeys struct{}

// Projects is the key set for project views
var Projects projectKeys

func (projectKeys) All(hackathonID string) string { return "projects:" + hackathonID }
func (projectKeys) Detail(id string) string       { return "projects:detail:" + id }
func (projectKeys) ByTeam(teamID string) string   { return "projects:team:" + teamID }

type submissionKeys struct{}

// Submissions is the key set for submission views
var Submissions submissionKeys

func (submissionKeys) All(hackathonID string) string     { return "submissions:" + hackathonID }
func (submissionKeys) Detail(id string) string           { return "submissions:detail:" + id }
func (submissionKeys) ByProject(projectID string) string { return "submissions:project:" + projectID }

type rubricKeys struct{}

// Rubrics is the key set for rubric views
var Rubrics rubricKeys

func (rubricKeys) All(hackathonID string) string { return "rubrics:" + hackathonID }
func (rubricKeys) Detail(id string) string       { return "rubrics:detail:" + id }

type scoreKeys struct{}

// Scores is the key set for score views
var Scores scoreKeys

func (scoreKeys) All(hackathonID string) string           { return "scores:" + hackathonID }
func (scoreKeys) Detail(id string) string                 { return "scores:detail:" + id }
func (scoreKeys) BySubmission(submissionID string) string { return "scores:submission:" + submissionID }
func (scoreKeys) ByJudge(judgeID string) string           { return "scores:judge:" + judgeID }

type prizeKeys struct{}

// Prizes is the key set for prize views
var Prizes prizeKeys

func (prizeKeys) All(hackathonID string) string { return "prizes:" + hackathonID }
func (prizeKeys) Detail(id string) string       { return "prizes:detail:" + id }

type invitationKeys struct{}

// Invitations is the key set for invitation views
var Invitations invitationKeys

func (invitationKeys) All(hackathonID string) string { return "invitations:" + hackathonID }
func (invitationKeys) Detail(id string) string       { return "invitations:detail:" + id }

type leaderboardKeys struct{}

// Leaderboard is the key set for computed leaderboard views
var Leaderboard leaderboardKeys

func (leaderboardKeys) All(hackathonID string) string { return "leaderboard:" + hackathonID }
func (leaderboardKeys) ByTrack(hackathonID, trackID string) string {
	return "leaderboard:" + hackathonID + ":track:" + trackID
}
