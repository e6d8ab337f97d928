package cache

// One function per domain mutation. Each must be called exactly once after
// the corresponding write succeeds, never before, and never on failure.
// Stale marking happens before eviction so a deleted entity's list view is
// already stale by the time its detail view disappears.

// HackathonCreated invalidates the hackathon list and the status bucket the
// new hackathon lands in
func HackathonCreated(c Invalidator, status string) {
	c.Invalidate(Hackathons.All(), Hackathons.ByStatus(status))
}

// HackathonUpdated invalidates the hackathon list, the detail view, and the
// hackathon's current status bucket
func HackathonUpdated(c Invalidator, id, status string) {
	c.Invalidate(Hackathons.All(), Hackathons.Detail(id), Hackathons.ByStatus(status))
}

// HackathonStatusChanged invalidates the hackathon list, the detail view, and
// both status buckets the hackathon moves between
func HackathonStatusChanged(c Invalidator, id, from, to string) {
	c.Invalidate(Hackathons.All(), Hackathons.Detail(id), Hackathons.ByStatus(from), Hackathons.ByStatus(to))
}

// HackathonDeleted invalidates the list and the hackathon's status bucket,
// and evicts the detail view
func HackathonDeleted(c Invalidator, id, status string) {
	c.Invalidate(Hackathons.All(), Hackathons.ByStatus(status))
	c.Remove(Hackathons.Detail(id))
}

// TrackCreated invalidates the hackathon's track list
func TrackCreated(c Invalidator, hackathonID string) {
	c.Invalidate(Tracks.All(hackathonID))
}

// TrackUpdated invalidates the track list and the track's detail view
func TrackUpdated(c Invalidator, hackathonID, trackID string) {
	c.Invalidate(Tracks.All(hackathonID), Tracks.Detail(trackID))
}

// TrackDeleted invalidates the track list and evicts the track's detail view
func TrackDeleted(c Invalidator, hackathonID, trackID string) {
	c.Invalidate(Tracks.All(hackathonID))
	c.Remove(Tracks.Detail(trackID))
}

// TeamCreated invalidates the hackathon's team list
func TeamCreated(c Invalidator, hackathonID string) {
	c.Invalidate(Teams.All(hackathonID))
}

// TeamUpdated invalidates the team list and the team's detail view
func TeamUpdated(c Invalidator, hackathonID, teamID string) {
	c.Invalidate(Teams.All(hackathonID), Teams.Detail(teamID))
}

// TeamMemberAdded invalidates the team list and the team's member view
func TeamMemberAdded(c Invalidator, hackathonID, teamID string) {
	c.Invalidate(Teams.All(hackathonID), Teams.Members(teamID))
}

// ProjectCreated invalidates the project list and the owning team's view
func ProjectCreated(c Invalidator, hackathonID, teamID string) {
	c.Invalidate(Projects.All(hackathonID), Projects.ByTeam(teamID))
}

// ProjectUpdated invalidates the project list, detail, and team views
func ProjectUpdated(c Invalidator, hackathonID, projectID, teamID string) {
	c.Invalidate(Projects.All(hackathonID), Projects.Detail(projectID), Projects.ByTeam(teamID))
}

// SubmissionCreated invalidates submission views plus the project detail,
// whose status may change as a result of submitting
func SubmissionCreated(c Invalidator, hackathonID, projectID string) {
	c.Invalidate(Submissions.All(hackathonID), Submissions.ByProject(projectID), Projects.Detail(projectID))
}

// ScoreSubmitted invalidates score views, the judge's score list, and the
// hackathon leaderboard
func ScoreSubmitted(c Invalidator, hackathonID, submissionID, judgeID string) {
	c.Invalidate(Scores.All(hackathonID), Scores.BySubmission(submissionID),
		Scores.ByJudge(judgeID), Leaderboard.All(hackathonID))
}

// RubricCreated invalidates the hackathon's rubric list
func RubricCreated(c Invalidator, hackathonID string) {
	c.Invalidate(Rubrics.All(hackathonID))
}

// RubricUpdated invalidates the rubric list and the rubric's detail view
func RubricUpdated(c Invalidator, hackathonID, rubricID string) {
	c.Invalidate(Rubrics.All(hackathonID), Rubrics.Detail(rubricID))
}

// PrizeCreated invalidates the hackathon's prize list
func PrizeCreated(c Invalidator, hackathonID string) {
	c.Invalidate(Prizes.All(hackathonID))
}

// PrizeUpdated invalidates the prize list and the prize's detail view
func PrizeUpdated(c Invalidator, hackathonID, prizeID string) {
	c.Invalidate(Prizes.All(hackathonID), Prizes.Detail(prizeID))
}

// ParticipantEnrolled invalidates the hackathon's participant list
func ParticipantEnrolled(c Invalidator, hackathonID string) {
	c.Invalidate(Participants.All(hackathonID))
}

// InvitationSent invalidates the hackathon's invitation list
func InvitationSent(c Invalidator, hackathonID string) {
	c.Invalidate(Invitations.All(hackathonID))
}

// InvitationAccepted invalidates invitation views plus the participant list,
// since acceptance enrolls the invitee
func InvitationAccepted(c Invalidator, hackathonID, invitationID string) {
	c.Invalidate(Invitations.All(hackathonID), Invitations.Detail(invitationID), Participants.All(hackathonID))
}

// InvitationDeclined invalidates invitation views only; declining does not
// enroll anyone
func InvitationDeclined(c Invalidator, hackathonID, invitationID string) {
	c.Invalidate(Invitations.All(hackathonID), Invitations.Detail(invitationID))
}

// LeaderboardRefreshed invalidates the hackathon leaderboard, and the
// per-track view when trackID is given
func LeaderboardRefreshed(c Invalidator, hackathonID, trackID string) {
	keys := []string{Leaderboard.All(hackathonID)}
	if trackID != "" {
		keys = append(keys, Leaderboard.ByTrack(hackathonID, trackID))
	}
	c.Invalidate(keys...)
}
