// Package store provides typed, cache-backed access to the ZeroDB tables.
// Reads consult the cache first and fill it on miss; writes go straight to
// the backend and fire the matching invalidation rule once the write has
// succeeded, never before and never on failure.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openhack/hackboard/internal/cache"
	apperrors "github.com/openhack/hackboard/internal/errors"
	"github.com/openhack/hackboard/internal/logger"
	"github.com/openhack/hackboard/pkg/zerodb"
)

// Store is the data-access layer shared by services and handlers
type Store struct {
	log    logger.Logger
	client zerodb.Client
	cache  *cache.Store

	newID func() string
	now   func() time.Time
}

// New creates a store backed by the given client and cache
func New(log logger.Logger, client zerodb.Client, c *cache.Store) *Store {
	return &Store{
		log:    log,
		client: client,
		cache:  c,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// SetIDGenerator overrides row id generation (for testing)
func (s *Store) SetIDGenerator(newID func() string) {
	s.newID = newID
}

// SetClock overrides timestamping (for testing)
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Cache exposes the underlying cache store
func (s *Store) Cache() *cache.Store {
	return s.cache
}

// Client exposes the underlying backend client
func (s *Store) Client() zerodb.Client {
	return s.client
}

// activeRows drops soft-deleted rows. ZeroDB has no delete operation, so
// deletion is an upsert of a deleted marker.
func activeRows(rows []zerodb.Row) []zerodb.Row {
	out := rows[:0]
	for _, row := range rows {
		if deleted, _ := row["deleted"].(bool); deleted {
			continue
		}
		out = append(out, row)
	}
	return out
}

// listCached returns the cached value under key, or queries the table,
// decodes the rows, and fills the cache.
func listCached[T any](ctx context.Context, s *Store, key, table string, opts zerodb.QueryOptions) ([]T, error) {
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.([]T); ok {
			return typed, nil
		}
	}
	rows, _, err := s.client.QueryRows(ctx, table, opts)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to query "+table)
	}
	items, err := zerodb.DecodeRows[T](activeRows(rows))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to decode "+table+" rows")
	}
	s.cache.Set(key, items)
	return items, nil
}

// getCached returns the cached entity under key, or looks it up by id and
// fills the cache. A missing or soft-deleted row is a not-found error.
func getCached[T any](ctx context.Context, s *Store, key, table, id, label string) (T, error) {
	var zero T
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	rows, _, err := s.client.QueryRows(ctx, table, zerodb.QueryOptions{
		Filter: map[string]any{"id": id},
		Limit:  1,
	})
	if err != nil {
		return zero, apperrors.Wrap(err, apperrors.ErrInternal, "failed to query "+table)
	}
	rows = activeRows(rows)
	if len(rows) == 0 {
		return zero, apperrors.NotFoundf("%s %s not found", label, id)
	}
	item, err := zerodb.DecodeRow[T](rows[0])
	if err != nil {
		return zero, apperrors.Wrap(err, apperrors.ErrInternal, "failed to decode "+table+" row")
	}
	s.cache.Set(key, item)
	return item, nil
}

// insert upserts a single row
func (s *Store) insert(ctx context.Context, table string, row zerodb.Row) error {
	if _, err := s.client.InsertRows(ctx, table, []zerodb.Row{row}); err != nil {
		return apperrors.Wrap(err, apperrors.ErrInternal, "failed to write "+table)
	}
	return nil
}
