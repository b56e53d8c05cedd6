// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sixs-engine/pkg/types"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "runs")
	s, err := Open(types.StoreConfig{Dir: dir, MaxResults: 2})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func record(id string, at time.Time, values ...types.RunValue) types.RunRecord {
	return types.RunRecord{
		ID:        id,
		Source:    id + ".out",
		CreatedAt: at,
		Values:    values,
		Fulltext:  "report for " + id,
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := testStore(t)
	_, err := os.Stat(filepath.Join(dir, dbFile))
	assert.NoError(t, err)
}

func TestSaveAndGet(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC)

	rec := record("run1", at,
		types.RunValue{Key: "aot550", Kind: types.KindFloat, Value: 0.5},
		types.RunValue{Key: "solar_z", Kind: types.KindInt, Value: 32},
	)
	require.NoError(t, s.Save(ctx, rec))

	got, err := s.Get(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, "run1", got.ID)
	assert.Equal(t, "run1.out", got.Source)
	assert.Equal(t, "report for run1", got.Fulltext)
	assert.True(t, at.Equal(got.CreatedAt), "created_at %v != %v", got.CreatedAt, at)
	assert.Equal(t, rec.Values, got.Values)

	v, ok := got.Lookup("solar_z")
	require.True(t, ok)
	assert.Equal(t, types.KindInt, v.Kind)
}

func TestSaveReplacesValues(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	at := time.Now().UTC()

	require.NoError(t, s.Save(ctx, record("run1", at,
		types.RunValue{Key: "aot550", Kind: types.KindFloat, Value: 0.5},
		types.RunValue{Key: "visibility", Kind: types.KindFloat, Value: 8.49},
	)))
	require.NoError(t, s.Save(ctx, record("run1", at,
		types.RunValue{Key: "aot550", Kind: types.KindFloat, Value: 0.25},
	)))

	got, err := s.Get(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, []types.RunValue{{Key: "aot550", Kind: types.KindFloat, Value: 0.25}}, got.Values)
}

func TestSaveEmptyID(t *testing.T) {
	s, _ := testStore(t)
	err := s.Save(context.Background(), types.RunRecord{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty id")
}

func TestGetNoValues(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, record("empty", time.Now().UTC())))

	got, err := s.Get(ctx, "empty")
	require.NoError(t, err)
	assert.NotNil(t, got.Values)
	assert.Empty(t, got.Values)
}

func TestGetNotFound(t *testing.T) {
	s, _ := testStore(t)
	_, err := s.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
	assert.Contains(t, err.Error(), "missing")
}

func TestList(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.Save(ctx, record("old", base,
		types.RunValue{Key: "aot550", Kind: types.KindFloat, Value: 0.5})))
	require.NoError(t, s.Save(ctx, record("mid", base.Add(time.Second))))
	require.NoError(t, s.Save(ctx, record("new", base.Add(2*time.Second+time.Millisecond),
		types.RunValue{Key: "aot550", Kind: types.KindFloat, Value: 0.5},
		types.RunValue{Key: "solar_z", Kind: types.KindInt, Value: 32})))

	t.Run("configured maximum", func(t *testing.T) {
		runs, err := s.List(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.Equal(t, "new", runs[0].ID)
		assert.Equal(t, 2, runs[0].ValueCount)
		assert.Equal(t, "mid", runs[1].ID)
		assert.Equal(t, 0, runs[1].ValueCount)
	})

	t.Run("explicit limit", func(t *testing.T) {
		runs, err := s.List(ctx, 10)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, "old", runs[2].ID)
		assert.Equal(t, "old.out", runs[2].Source)
		assert.True(t, base.Equal(runs[2].CreatedAt))
	})
}

func TestListEmpty(t *testing.T) {
	s, _ := testStore(t)
	runs, err := s.List(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestDelete(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, record("run1", time.Now().UTC(),
		types.RunValue{Key: "aot550", Kind: types.KindFloat, Value: 0.5})))

	require.NoError(t, s.Delete(ctx, "run1"))

	_, err := s.Get(ctx, "run1")
	assert.True(t, errors.Is(err, ErrRunNotFound))

	var n int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM run_values`).Scan(&n))
	assert.Zero(t, n, "values should cascade")

	err = s.Delete(ctx, "run1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestReopenKeepsRuns(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(types.StoreConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, record("run1", time.Now().UTC())))
	require.NoError(t, s.Close())

	s, err = Open(types.StoreConfig{Dir: dir})
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "run1")
	require.NoError(t, err)
	assert.Equal(t, "run1", got.ID)
}

func TestSaveNonFiniteValues(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, record("edge", time.Now().UTC(),
		types.RunValue{Key: "a", Kind: types.KindFloat, Value: math.NaN()},
		types.RunValue{Key: "b", Kind: types.KindFloat, Value: math.Inf(1)},
		types.RunValue{Key: "c", Kind: types.KindFloat, Value: math.Inf(-1)},
		types.RunValue{Key: "d", Kind: types.KindFloat, Value: 1.5},
	)))

	got, err := s.Get(ctx, "edge")
	require.NoError(t, err)
	require.Len(t, got.Values, 4)
	assert.True(t, math.IsNaN(got.Values[0].Value))
	assert.True(t, math.IsInf(got.Values[1].Value, 1))
	assert.True(t, math.IsInf(got.Values[2].Value, -1))
	assert.Equal(t, 1.5, got.Values[3].Value)
}
