// Package zerodb provides a client for the ZeroDB backend-as-a-service,
// which exposes generic table storage plus vector embedding and search.
package zerodb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openhack/hackboard/internal/logger"
	"github.com/openhack/hackboard/internal/metrics"
)

// Table names owned by the hackathon application.
const (
	TableHackathons   = "hackathons"
	TableTracks       = "tracks"
	TableParticipants = "participants"
	TableEnrollments  = "hackathon_participants"
	TableTeams        = "teams"
	TableTeamMembers  = "team_members"
	TableProjects     = "projects"
	TableSubmissions  = "submissions"
	TableRubrics      = "rubrics"
	TableScores       = "scores"
	TablePrizes       = "prizes"
	TableInvitations  = "invitations"
)

// EmbeddingModel is the only embedding model the application is allowed to
// request. EmbedAndStore rejects any other value before issuing the call.
const EmbeddingModel = "bge-small-en-v1.5"

// Row is a generic table row as stored by ZeroDB
type Row map[string]any

// QueryOptions narrows a QueryRows call
type QueryOptions struct {
	Filter map[string]any `json:"filter,omitempty"`
	Limit  int            `json:"limit,omitempty"`
	Offset int            `json:"offset,omitempty"`
	Sort   string         `json:"sort,omitempty"`
}

// Document is one text payload to embed and store
type Document struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// EmbedRequest asks ZeroDB to embed and store documents in a namespace
type EmbedRequest struct {
	Documents []Document `json:"documents"`
	Namespace string     `json:"namespace"`
	Model     string     `json:"model,omitempty"`
}

// SearchRequest is a similarity search over a namespace
type SearchRequest struct {
	Query               string            `json:"query"`
	Namespace           string            `json:"namespace"`
	Limit               int               `json:"limit,omitempty"`
	SimilarityThreshold float64           `json:"similarity_threshold,omitempty"`
	Filter              map[string]string `json:"filter,omitempty"`
}

// SearchResult is one similarity-search hit
type SearchResult struct {
	ID       string            `json:"id"`
	Score    float64           `json:"score"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Client defines the interface for ZeroDB operations
type Client interface {
	// InsertRows writes rows into a table and returns the stored row ids.
	// A row carrying an existing id overwrites that row (id-keyed upsert).
	InsertRows(ctx context.Context, table string, rows []Row) ([]string, error)
	// QueryRows reads rows from a table and returns them with the total count
	QueryRows(ctx context.Context, table string, opts QueryOptions) ([]Row, int, error)
	// EmbedAndStore embeds documents and stores them in the vector index
	EmbedAndStore(ctx context.Context, req EmbedRequest) ([]string, error)
	// Search runs a similarity search over a namespace
	Search(ctx context.Context, req SearchRequest) ([]SearchResult, error)
}

// ValidNamespace reports whether ns has the required shape
// "hackathons/{hackathon-id}/submissions".
func ValidNamespace(ns string) bool {
	parts := strings.Split(ns, "/")
	return len(parts) == 3 && parts[0] == "hackathons" && parts[1] != "" && parts[2] == "submissions"
}

// SubmissionNamespace returns the vector namespace for a hackathon's submissions
func SubmissionNamespace(hackathonID string) string {
	return fmt.Sprintf("hackathons/%s/submissions", hackathonID)
}

// SubmissionDocID returns the vector document id for a submission
func SubmissionDocID(submissionID string) string {
	return fmt.Sprintf("submission:%s", submissionID)
}

// ProjectDocID returns the vector document id for a project
func ProjectDocID(projectID string) string {
	return fmt.Sprintf("project:%s", projectID)
}

// retryError marks a failure worth retrying (5xx or transport error)
type retryError struct {
	err error
}

func (e *retryError) Error() string { return e.err.Error() }
func (e *retryError) Unwrap() error { return e.err }

// HTTPClient is a real HTTP client for ZeroDB
type HTTPClient struct {
	baseURL    string
	apiKey     string
	projectID  string
	httpClient *http.Client
	log        logger.Logger

	maxAttempts int
	retryDelay  time.Duration
}

// NewHTTPClient creates a new ZeroDB HTTP client
func NewHTTPClient(baseURL, apiKey, projectID string, log logger.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		apiKey:      apiKey,
		projectID:   projectID,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		log:         log,
		maxAttempts: 3,
		retryDelay:  200 * time.Millisecond,
	}
}

// NewHTTPClientWithHTTPClient creates a ZeroDB client with a custom http.Client
func NewHTTPClientWithHTTPClient(baseURL, apiKey, projectID string, httpClient *http.Client, log logger.Logger) *HTTPClient {
	c := NewHTTPClient(baseURL, apiKey, projectID, log)
	c.httpClient = httpClient
	return c
}

// SetRetry overrides the retry policy (attempts includes the first try)
func (c *HTTPClient) SetRetry(attempts int, baseDelay time.Duration) {
	if attempts > 0 {
		c.maxAttempts = attempts
	}
	c.retryDelay = baseDelay
}

// doRequest executes an HTTP POST to a ZeroDB endpoint and decodes the JSON
// response. Transport errors and 5xx responses are retried with bounded
// exponential backoff; 4xx responses fail immediately.
func (c *HTTPClient) doRequest(ctx context.Context, path, op string, payload, response any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	apiURL := c.baseURL + path
	start := time.Now()

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			delay := c.retryDelay << (attempt - 2)
			c.log.Debug("ZeroDB retry", "op", op, "attempt", attempt, "delay", delay)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		err := c.attempt(ctx, apiURL, op, body, response)
		if err == nil {
			metrics.ObserveBackendCall(op, "ok", start)
			return nil
		}
		lastErr = err

		var re *retryError
		if !errors.As(err, &re) {
			metrics.ObserveBackendCall(op, "error", start)
			return err
		}
	}

	metrics.ObserveBackendCall(op, "error", start)
	return fmt.Errorf("ZeroDB %s failed after %d attempts: %w", op, c.maxAttempts, lastErr)
}

func (c *HTTPClient) attempt(ctx context.Context, apiURL, op string, body []byte, response any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.projectID != "" {
		req.Header.Set("X-Project-ID", c.projectID)
	}

	c.log.Debug("ZeroDB request", "op", op, "url", apiURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &retryError{err: fmt.Errorf("failed to connect to ZeroDB: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &retryError{err: fmt.Errorf("failed to read response: %w", err)}
	}

	c.log.Debug("ZeroDB response", "op", op, "status", resp.StatusCode)

	if resp.StatusCode >= 500 {
		return &retryError{err: fmt.Errorf("ZeroDB returned status %d: %s", resp.StatusCode, string(respBody))}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ZeroDB returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, response); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

type insertRequest struct {
	Table string `json:"table"`
	Rows  []Row  `json:"rows"`
}

type insertResponse struct {
	Success bool     `json:"success"`
	RowIDs  []string `json:"row_ids"`
	Error   string   `json:"error"`
}

// InsertRows writes rows into a table and returns the stored row ids
func (c *HTTPClient) InsertRows(ctx context.Context, table string, rows []Row) ([]string, error) {
	if table == "" {
		return nil, fmt.Errorf("table name is required")
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to insert")
	}

	var resp insertResponse
	if err := c.doRequest(ctx, "/v1/rows/insert", "insert_rows", insertRequest{Table: table, Rows: rows}, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("ZeroDB insert into %s failed: %s", table, resp.Error)
	}
	return resp.RowIDs, nil
}

type queryRequest struct {
	Table string `json:"table"`
	QueryOptions
}

type queryResponse struct {
	Success bool   `json:"success"`
	Rows    []Row  `json:"rows"`
	Total   int    `json:"total"`
	Error   string `json:"error"`
}

// QueryRows reads rows from a table
func (c *HTTPClient) QueryRows(ctx context.Context, table string, opts QueryOptions) ([]Row, int, error) {
	if table == "" {
		return nil, 0, fmt.Errorf("table name is required")
	}

	var resp queryResponse
	if err := c.doRequest(ctx, "/v1/rows/query", "query_rows", queryRequest{Table: table, QueryOptions: opts}, &resp); err != nil {
		return nil, 0, err
	}
	if !resp.Success {
		return nil, 0, fmt.Errorf("ZeroDB query on %s failed: %s", table, resp.Error)
	}
	return resp.Rows, resp.Total, nil
}

type embedResponse struct {
	Success      bool     `json:"success"`
	EmbeddingIDs []string `json:"embedding_ids"`
	Error        string   `json:"error"`
}

// EmbedAndStore embeds documents and stores them in the vector index.
// The model is pinned: requests for any other model fail before the call.
func (c *HTTPClient) EmbedAndStore(ctx context.Context, req EmbedRequest) ([]string, error) {
	if len(req.Documents) == 0 {
		return nil, fmt.Errorf("no documents to embed")
	}
	if !ValidNamespace(req.Namespace) {
		return nil, fmt.Errorf("invalid namespace %q", req.Namespace)
	}
	if req.Model == "" {
		req.Model = EmbeddingModel
	}
	if req.Model != EmbeddingModel {
		return nil, fmt.Errorf("unsupported embedding model %q (only %s is allowed)", req.Model, EmbeddingModel)
	}

	var resp embedResponse
	if err := c.doRequest(ctx, "/v1/embeddings/store", "embed_and_store", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("ZeroDB embedding into %s failed: %s", req.Namespace, resp.Error)
	}
	return resp.EmbeddingIDs, nil
}

type searchResponse struct {
	Success bool           `json:"success"`
	Results []SearchResult `json:"results"`
	Error   string         `json:"error"`
}

// Search runs a similarity search over a namespace
func (c *HTTPClient) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if !ValidNamespace(req.Namespace) {
		return nil, fmt.Errorf("invalid namespace %q", req.Namespace)
	}

	var resp searchResponse
	if err := c.doRequest(ctx, "/v1/embeddings/search", "search", req, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("ZeroDB search in %s failed: %s", req.Namespace, resp.Error)
	}
	return resp.Results, nil
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
