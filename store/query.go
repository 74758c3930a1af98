package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/TamannaDash/queuectl/job"
)

// Get retrieves a job by id. It returns (nil, nil) if no job with that
// id exists.
func (s *Store) Get(ctx context.Context, id string) (*job.Job, error) {
	var model jobModel
	err := s.db.NewSelect().
		Model(&model).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return model.toJob(), nil
}

// List returns jobs matching state, newest-insertion-order last. If
// state is job.Unknown, no state filter is applied. If limit is zero
// or negative, no LIMIT clause is added.
func (s *Store) List(ctx context.Context, state job.State, limit int) ([]*job.Job, error) {
	query := s.db.NewSelect().Model((*jobModel)(nil)).Order("created_at ASC")
	if state != job.Unknown {
		query = query.Where("state = ?", state)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var models []*jobModel
	if err := query.Scan(ctx, &models); err != nil {
		return nil, err
	}
	ret := make([]*job.Job, len(models))
	for i, m := range models {
		ret[i] = m.toJob()
	}
	return ret, nil
}

// CountsByState returns the number of jobs in each state.
func (s *Store) CountsByState(ctx context.Context) (map[job.State]int64, error) {
	var rows []struct {
		State job.State `bun:"state"`
		Count int64     `bun:"count"`
	}
	err := s.db.NewSelect().
		Model((*jobModel)(nil)).
		ColumnExpr("state").
		ColumnExpr("count(*) AS count").
		Group("state").
		Scan(ctx, &rows)
	if err != nil {
		return nil, err
	}
	ret := make(map[job.State]int64, len(rows))
	for _, r := range rows {
		ret[r.State] = r.Count
	}
	return ret, nil
}

// ConfigGet returns the raw stored value for key, and whether it was
// set. Typed parsing is done by package config.
func (s *Store) ConfigGet(ctx context.Context, key string) (string, bool, error) {
	var model kvModel
	err := s.db.NewSelect().
		Model(&model).
		Where("key = ?", key).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return model.Value, true, nil
}

// ConfigSet stores value under key, creating or overwriting the row.
func (s *Store) ConfigSet(ctx context.Context, key, value string) error {
	_, err := s.db.NewInsert().
		Model(&kvModel{Key: key, Value: value}).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}
