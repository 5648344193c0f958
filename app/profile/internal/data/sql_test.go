package data

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/customer_profile/app/profile/internal/domain"
)

func openTestStore(t *testing.T) *SQLStore {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "profile.db")
	store, err := OpenSQLStore(context.Background(), "sqlite", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLStore_SeedAndLoad(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	want := SampleDataset()

	require.NoError(t, store.Seed(ctx, want))
	got, err := store.LoadDataset(ctx)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, "database", store.Name())
}

func TestSQLStore_SeedReplaces(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	require.NoError(t, store.Seed(ctx, SampleDataset()))

	small := &domain.Dataset{
		Entities: []domain.Entity{{Name: "Solo", Revenue: 1}},
		Regions: []domain.RegionalIncomeRecord{
			{Entity: "Solo", Region: 1, Zone: domain.ZoneA, Income: 2, Type: domain.IncomeDedicated},
		},
	}
	require.NoError(t, store.Seed(ctx, small))

	got, err := store.LoadDataset(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Solo"}, got.EntityNames())
	assert.Len(t, got.Regions, 1)
	assert.Empty(t, got.Projects)
}

func TestSQLStore_SeedRejectsInvalid(t *testing.T) {
	store := openTestStore(t)

	err := store.Seed(context.Background(), &domain.Dataset{})

	assert.Error(t, err)
}

func TestOpenSQLStore_UnsupportedDriver(t *testing.T) {
	_, err := OpenSQLStore(context.Background(), "mysql", "")

	assert.ErrorContains(t, err, "unsupported")
}
