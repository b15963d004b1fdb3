package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scythe504/partyroom-backend/internal/storage/postgres"
	"github.com/scythe504/partyroom-backend/internal/testutil"
	"github.com/scythe504/partyroom-backend/internal/words"
)

func setupWordRepo(t *testing.T) *postgres.WordRepository {
	t.Helper()
	pc := testutil.NewPostgresContainer(t)
	repo := postgres.NewWordRepository(pc.Pool.DB())
	require.NoError(t, repo.EnsureSchema(context.Background()))
	return repo
}

func TestWordRepository_InsertAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := setupWordRepo(t)

	n, err := repo.Insert(ctx, "Animals", "cat", " dog ", "", "cat")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	bank, err := repo.LoadBank(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"animals"}, bank.Categories())
	assert.Equal(t, []string{"cat", "dog"}, bank.Words("animals"))
}

func TestWordRepository_SeedBuiltin(t *testing.T) {
	ctx := context.Background()
	repo := setupWordRepo(t)

	builtin := words.Builtin()
	n, err := repo.Seed(ctx, builtin)
	require.NoError(t, err)
	assert.Equal(t, builtin.Len(), n)

	again, err := repo.Seed(ctx, builtin)
	require.NoError(t, err)
	assert.Zero(t, again)

	bank, err := repo.LoadBank(ctx)
	require.NoError(t, err)
	assert.Equal(t, builtin.Categories(), bank.Categories())
	assert.ElementsMatch(t, builtin.Words("movies"), bank.Words("movies"))
}

func TestPool_Health(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	assert.NoError(t, pc.Pool.Health(context.Background(), 2*time.Second))
}
