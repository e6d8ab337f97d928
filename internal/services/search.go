package services

import (
	"context"
	"strings"

	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/logger"
	"github.com/openhack/hackboard/pkg/zerodb"
)

const defaultSearchLimit = 10

// SearchService runs semantic similarity search over a hackathon's
// submission embeddings.
type SearchService struct {
	log    logger.Logger
	client zerodb.Client
}

// NewSearchService creates a new SearchService
func NewSearchService(log logger.Logger, client zerodb.Client) *SearchService {
	return &SearchService{log: log, client: client}
}

// SearchOptions tune a submission search
type SearchOptions struct {
	Limit               int
	SimilarityThreshold float64
	TrackID             string
}

// SearchSubmissions finds submissions whose text is semantically close to
// the query, scoped to one hackathon's namespace.
func (s *SearchService) SearchSubmissions(ctx context.Context, hackathonID, query string, opts SearchOptions) ([]zerodb.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.Validation("search query is required")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	req := zerodb.SearchRequest{
		Query:               query,
		Namespace:           zerodb.SubmissionNamespace(hackathonID),
		Limit:               limit,
		SimilarityThreshold: opts.SimilarityThreshold,
	}
	if opts.TrackID != "" {
		req.Filter = map[string]string{"track_id": opts.TrackID}
	}

	results, err := s.client.Search(ctx, req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "submission search failed")
	}
	s.log.Debug("Submission search",
		"hackathon_id", hackathonID, "query", query, "results", len(results))
	return results, nil
}
