package zerodb

import (
	"context"
	"fmt"
)

// MockClient is an in-memory ZeroDB client for testing
type MockClient struct {
	tables map[string][]Row

	insertErrs      map[string]error
	insertFailAfter map[string]int
	insertCalls     map[string]int
	queryErrs       map[string]error
	embedErr        error
	searchErr       error
	searchResults   []SearchResult

	embedCalls []EmbedRequest
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithRows seeds a table with rows
func WithRows(table string, rows ...Row) MockOption {
	return func(m *MockClient) {
		m.tables[table] = append(m.tables[table], rows...)
	}
}

// WithInsertError makes every insert into table fail
func WithInsertError(table string, err error) MockOption {
	return func(m *MockClient) {
		m.insertErrs[table] = err
	}
}

// WithInsertErrorAfter makes inserts into table fail after n successful calls
func WithInsertErrorAfter(table string, n int, err error) MockOption {
	return func(m *MockClient) {
		m.insertErrs[table] = err
		m.insertFailAfter[table] = n
	}
}

// WithQueryError makes every query on table fail
func WithQueryError(table string, err error) MockOption {
	return func(m *MockClient) {
		m.queryErrs[table] = err
	}
}

// WithEmbedError makes EmbedAndStore fail
func WithEmbedError(err error) MockOption {
	return func(m *MockClient) {
		m.embedErr = err
	}
}

// WithSearchError makes Search fail
func WithSearchError(err error) MockOption {
	return func(m *MockClient) {
		m.searchErr = err
	}
}

// WithSearchResults sets the results Search returns
func WithSearchResults(results []SearchResult) MockOption {
	return func(m *MockClient) {
		m.searchResults = results
	}
}

// NewMockClient creates a new mock ZeroDB client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		tables:          make(map[string][]Row),
		insertErrs:      make(map[string]error),
		insertFailAfter: make(map[string]int),
		insertCalls:     make(map[string]int),
		queryErrs:       make(map[string]error),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// InsertRows stores rows in the in-memory table. A row whose "id" matches an
// existing row replaces it, mirroring ZeroDB's id-keyed upsert.
func (m *MockClient) InsertRows(ctx context.Context, table string, rows []Row) ([]string, error) {
	m.insertCalls[table]++
	if err, ok := m.insertErrs[table]; ok {
		after, gated := m.insertFailAfter[table]
		if !gated || m.insertCalls[table] > after {
			return nil, err
		}
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		id, _ := row["id"].(string)
		if id == "" {
			id = fmt.Sprintf("row-%d", len(m.tables[table])+1)
			row["id"] = id
		}
		m.tables[table] = upsertRow(m.tables[table], row, id)
		ids = append(ids, id)
	}
	return ids, nil
}

func upsertRow(rows []Row, row Row, id string) []Row {
	for i, existing := range rows {
		if existingID, _ := existing["id"].(string); existingID == id {
			merged := Row{}
			for k, v := range existing {
				merged[k] = v
			}
			for k, v := range row {
				merged[k] = v
			}
			rows[i] = merged
			return rows
		}
	}
	return append(rows, row)
}

// QueryRows returns rows from the in-memory table matching the filter
func (m *MockClient) QueryRows(ctx context.Context, table string, opts QueryOptions) ([]Row, int, error) {
	if err, ok := m.queryErrs[table]; ok {
		return nil, 0, err
	}

	var matched []Row
	for _, row := range m.tables[table] {
		if rowMatches(row, opts.Filter) {
			matched = append(matched, row)
		}
	}

	total := len(matched)
	if opts.Offset > 0 {
		if opts.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[opts.Offset:]
		}
	}
	if opts.Limit > 0 && opts.Limit < len(matched) {
		matched = matched[:opts.Limit]
	}
	return matched, total, nil
}

func rowMatches(row Row, filter map[string]any) bool {
	for k, want := range filter {
		if fmt.Sprint(row[k]) != fmt.Sprint(want) {
			return false
		}
	}
	return true
}

// EmbedAndStore records the request and returns one embedding id per document
func (m *MockClient) EmbedAndStore(ctx context.Context, req EmbedRequest) ([]string, error) {
	if !ValidNamespace(req.Namespace) {
		return nil, fmt.Errorf("invalid namespace %q", req.Namespace)
	}
	if req.Model == "" {
		req.Model = EmbeddingModel
	}
	if req.Model != EmbeddingModel {
		return nil, fmt.Errorf("unsupported embedding model %q (only %s is allowed)", req.Model, EmbeddingModel)
	}
	if m.embedErr != nil {
		return nil, m.embedErr
	}

	m.embedCalls = append(m.embedCalls, req)
	ids := make([]string, len(req.Documents))
	for i, doc := range req.Documents {
		ids[i] = "emb-" + doc.ID
	}
	return ids, nil
}

// Search returns the configured results
func (m *MockClient) Search(ctx context.Context, req SearchRequest) ([]SearchResult, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if !ValidNamespace(req.Namespace) {
		return nil, fmt.Errorf("invalid namespace %q", req.Namespace)
	}
	return m.searchResults, nil
}

// Table returns the current rows of a table (for testing)
func (m *MockClient) Table(name string) []Row {
	return m.tables[name]
}

// InsertCalls returns how many inserts were issued against a table (for testing)
func (m *MockClient) InsertCalls(table string) int {
	return m.insertCalls[table]
}

// EmbedCalls returns the recorded embedding requests (for testing)
func (m *MockClient) EmbedCalls() []EmbedRequest {
	return m.embedCalls
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)
