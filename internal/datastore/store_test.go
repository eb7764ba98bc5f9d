package datastore

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"strompris/domain/pricing"
	apperrors "strompris/internal/errors"
	"strompris/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtureStore(t *testing.T) (*Store, string) {
	t.Helper()
	sheet := testkit.NewGridGenerator(testkit.GridConfig{
		MinYear: 2020, MaxYear: 2021, BasePrice: 90, Seed: 3,
	}).Generate()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, testkit.WriteCSV(sheet, path))
	return New(path, 2020, 2021), path
}

func TestLoadIdempotent(t *testing.T) {
	store, _ := fixtureStore(t)
	ctx := context.Background()

	first, err := store.Load(ctx)
	require.NoError(t, err)
	second, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second, "repeated loads should return the cached dataset")
	assert.True(t, first.Equal(second))
}

func TestDatasetBeforeLoad(t *testing.T) {
	store, _ := fixtureStore(t)

	_, err := store.Dataset()
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
}

func TestLoadMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "absent.xlsx"), 2014, 2024)

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeFileError, apperrors.GetCode(err))
}

func TestLoadBadCellFailsWholeLoad(t *testing.T) {
	sheet := testkit.NewGridGenerator(testkit.GridConfig{
		MinYear: 2020, MaxYear: 2020, BasePrice: 90, Seed: 3,
	}).Generate()
	sheet.Rows[6].Cells[pricing.RegionNO2] = "-4.2"
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, testkit.WriteCSV(sheet, path))

	store := New(path, 2020, 2020)
	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidationError, apperrors.GetCode(err))

	// No partial dataset may be published after a failed load.
	_, err = store.Dataset()
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))
}

func TestInvalidateForcesReread(t *testing.T) {
	store, _ := fixtureStore(t)
	ctx := context.Background()

	first, err := store.Load(ctx)
	require.NoError(t, err)

	store.Invalidate()
	_, err = store.Dataset()
	assert.Equal(t, apperrors.CodeNotFound, apperrors.GetCode(err))

	second, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, second, "post-invalidate load should re-read")
	assert.True(t, first.Equal(second), "unchanged file should load to identical contents")
}

func TestReloadKeepsPreviousOnFailure(t *testing.T) {
	store, path := fixtureStore(t)
	ctx := context.Background()

	published, err := store.Load(ctx)
	require.NoError(t, err)

	// Replace the file with a corrupt one; reload must fail and keep the
	// previous dataset published.
	broken := testkit.NewGridGenerator(testkit.GridConfig{
		MinYear: 2020, MaxYear: 2021, BasePrice: 90, Seed: 3,
	}).Generate()
	broken.Rows[0].Cells[pricing.RegionNO1] = "garbage"
	require.NoError(t, testkit.WriteCSV(broken, path))

	_, err = store.Reload(ctx)
	require.Error(t, err)

	current, err := store.Dataset()
	require.NoError(t, err)
	assert.Same(t, published, current)
}

func TestConcurrentColdLoadsShareOneDataset(t *testing.T) {
	store, _ := fixtureStore(t)
	ctx := context.Background()

	const callers = 16
	results := make([]*pricing.Dataset, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			ds, err := store.Load(ctx)
			if err != nil {
				t.Errorf("concurrent load %d failed: %v", idx, err)
				return
			}
			results[idx] = ds
		}(i)
	}
	wg.Wait()

	for i := 1; i < callers; i++ {
		assert.Same(t, results[0], results[i], "all concurrent loads should share one dataset")
	}
}

func TestLoadCanceledContext(t *testing.T) {
	store, _ := fixtureStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	require.Error(t, err)
}
