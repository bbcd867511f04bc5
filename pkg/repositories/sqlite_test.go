package repositories

import (
	"context"
	"path/filepath"
	"testing"

	gametypes "github.com/cbodonnell/pixelquest/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) Repository {
	t.Helper()
	ctx := context.Background()
	repo, err := NewRepository(ctx, "sqlite://"+filepath.Join(t.TempDir(), "saves.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close(ctx) })
	return repo
}

func TestSQLiteSaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLite(t)

	level := 4
	state := gametypes.NewGameState().Apply(gametypes.StatePatch{Level: &level})
	require.NoError(t, repo.SaveGameState(ctx, "default", state))

	got, err := repo.LoadGameState(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, state, got)

	level = 5
	next := state.Apply(gametypes.StatePatch{Level: &level})
	require.NoError(t, repo.SaveGameState(ctx, "default", next))
	got, err = repo.LoadGameState(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Level)
	assert.Equal(t, uint64(2), got.Version)
}

func TestSQLiteLoadMissing(t *testing.T) {
	repo := newTestSQLite(t)
	_, err := repo.LoadGameState(context.Background(), "nope")
	assert.True(t, IsNotFound(err))
}

func TestSQLiteDeleteAndList(t *testing.T) {
	ctx := context.Background()
	repo := newTestSQLite(t)

	require.NoError(t, repo.SaveGameState(ctx, "b", gametypes.NewGameState()))
	require.NoError(t, repo.SaveGameState(ctx, "a", gametypes.NewGameState()))

	slots, err := repo.ListSlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "a", slots[0].Name)
	assert.Equal(t, "b", slots[1].Name)

	require.NoError(t, repo.DeleteGameState(ctx, "a"))
	assert.True(t, IsNotFound(repo.DeleteGameState(ctx, "a")))

	slots, err = repo.ListSlots(ctx)
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestNewRepositoryUnsupported(t *testing.T) {
	_, err := NewRepository(context.Background(), "mysql://localhost")
	assert.Error(t, err)
}
