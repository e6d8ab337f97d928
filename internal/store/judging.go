package store

import (
	"context"
	"strings"

	"github.com/openhack/hackboard/internal/cache"
	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/models"
	"github.com/openhack/hackboard/pkg/zerodb"
)

// ListRubrics returns a hackathon's rubrics
func (s *Store) ListRubrics(ctx context.Context, hackathonID string) ([]models.Rubric, error) {
	return listCached[models.Rubric](ctx, s, cache.Rubrics.All(hackathonID), zerodb.TableRubrics,
		zerodb.QueryOptions{Filter: map[string]any{"hackathon_id": hackathonID}})
}

// GetRubric returns one rubric by id
func (s *Store) GetRubric(ctx context.Context, id string) (models.Rubric, error) {
	return getCached[models.Rubric](ctx, s, cache.Rubrics.Detail(id), zerodb.TableRubrics, id, "rubric")
}

// CreateRubric creates a judging rubric for a hackathon
func (s *Store) CreateRubric(ctx context.Context, r models.Rubric) (models.Rubric, error) {
	if strings.TrimSpace(r.Title) == "" {
		return models.Rubric{}, apperrors.Validation("rubric title is required")
	}
	if r.HackathonID == "" {
		return models.Rubric{}, apperrors.Validation("hackathon id is required")
	}
	if r.ID == "" {
		r.ID = s.newID()
	}
	if err := s.insert(ctx, zerodb.TableRubrics, zerodb.RowOf(r)); err != nil {
		return models.Rubric{}, err
	}
	cache.RubricCreated(s.cache, r.HackathonID)
	return r, nil
}

// UpdateRubric overwrites a rubric's settable fields
func (s *Store) UpdateRubric(ctx context.Context, r models.Rubric) error {
	if r.ID == "" || r.HackathonID == "" {
		return apperrors.Validation("rubric id and hackathon id are required")
	}
	if err := s.insert(ctx, zerodb.TableRubrics, zerodb.RowOf(r)); err != nil {
		return err
	}
	cache.RubricUpdated(s.cache, r.HackathonID, r.ID)
	return nil
}

// ListScoresBySubmission returns all scores for one submission
func (s *Store) ListScoresBySubmission(ctx context.Context, submissionID string) ([]models.Score, error) {
	return listCached[models.Score](ctx, s, cache.Scores.BySubmission(submissionID), zerodb.TableScores,
		zerodb.QueryOptions{Filter: map[string]any{"submission_id": submissionID}})
}

// ListScoresByJudge returns all scores one judge has submitted
func (s *Store) ListScoresByJudge(ctx context.Context, judgeID string) ([]models.Score, error) {
	return listCached[models.Score](ctx, s, cache.Scores.ByJudge(judgeID), zerodb.TableScores,
		zerodb.QueryOptions{Filter: map[string]any{"judge_id": judgeID}})
}

// ListScores returns every score belonging to a hackathon's submissions
func (s *Store) ListScores(ctx context.Context, hackathonID string) ([]models.Score, error) {
	key := cache.Scores.All(hackathonID)
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.([]models.Score); ok {
			return typed, nil
		}
	}

	submissions, err := s.ListSubmissions(ctx, hackathonID)
	if err != nil {
		return nil, err
	}
	submissionIDs := make(map[string]bool, len(submissions))
	for _, sub := range submissions {
		submissionIDs[sub.ID] = true
	}

	rows, _, err := s.client.QueryRows(ctx, zerodb.TableScores, zerodb.QueryOptions{})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to query scores")
	}
	all, err := zerodb.DecodeRows[models.Score](rows)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to decode score rows")
	}

	scores := make([]models.Score, 0, len(all))
	for _, score := range all {
		if submissionIDs[score.SubmissionID] {
			scores = append(scores, score)
		}
	}

	s.cache.Set(key, scores)
	return scores, nil
}

// SubmitScore records one judge's evaluation of a submission
func (s *Store) SubmitScore(ctx context.Context, hackathonID string, score models.Score) (models.Score, error) {
	if score.SubmissionID == "" || score.JudgeID == "" {
		return models.Score{}, apperrors.Validation("submission id and judge id are required")
	}
	if score.ID == "" {
		score.ID = s.newID()
	}
	if err := s.insert(ctx, zerodb.TableScores, zerodb.RowOf(score)); err != nil {
		return models.Score{}, err
	}
	cache.ScoreSubmitted(s.cache, hackathonID, score.SubmissionID, score.JudgeID)
	s.log.Debug("Score submitted",
		"hackathon_id", hackathonID, "submission_id", score.SubmissionID, "judge_id", score.JudgeID)
	return score, nil
}

// ListPrizes returns a hackathon's prizes, top rank first
func (s *Store) ListPrizes(ctx context.Context, hackathonID string) ([]models.Prize, error) {
	return listCached[models.Prize](ctx, s, cache.Prizes.All(hackathonID), zerodb.TablePrizes,
		zerodb.QueryOptions{Filter: map[string]any{"hackathon_id": hackathonID}, Sort: "rank"})
}

// GetPrize returns one prize by id
func (s *Store) GetPrize(ctx context.Context, id string) (models.Prize, error) {
	return getCached[models.Prize](ctx, s, cache.Prizes.Detail(id), zerodb.TablePrizes, id, "prize")
}

// CreatePrize creates a prize for a hackathon
func (s *Store) CreatePrize(ctx context.Context, p models.Prize) (models.Prize, error) {
	if strings.TrimSpace(p.Title) == "" {
		return models.Prize{}, apperrors.Validation("prize title is required")
	}
	if p.HackathonID == "" {
		return models.Prize{}, apperrors.Validation("hackathon id is required")
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	if err := s.insert(ctx, zerodb.TablePrizes, zerodb.RowOf(p)); err != nil {
		return models.Prize{}, err
	}
	cache.PrizeCreated(s.cache, p.HackathonID)
	return p, nil
}

// UpdatePrize overwrites a prize's settable fields
func (s *Store) UpdatePrize(ctx context.Context, p models.Prize) error {
	if p.ID == "" || p.HackathonID == "" {
		return apperrors.Validation("prize id and hackathon id are required")
	}
	if err := s.insert(ctx, zerodb.TablePrizes, zerodb.RowOf(p)); err != nil {
		return err
	}
	cache.PrizeUpdated(s.cache, p.HackathonID, p.ID)
	return nil
}
