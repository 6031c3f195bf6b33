package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/jiobot/internal/adapters/memory"
	"github.com/example/jiobot/internal/ports/secondary"
)

// createTestJio is a helper that creates a jio with a generated ID.
func createTestJio(t *testing.T, repo *memory.JioRepository, name string, creatorID int64, creatorName string) int64 {
	t.Helper()
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, &secondary.JioRecord{
		ID:           id,
		Name:         name,
		CreatorID:    creatorID,
		CreatorName:  creatorName,
		CreatedAt:    time.Date(2026, 1, 2, 22, 0, 0, 0, time.UTC),
		Participants: []string{creatorName},
	}))
	return id
}

func TestJioRepository_IDsAreNeverReused(t *testing.T) {
	repo := memory.NewJioRepository(nil)
	ctx := context.Background()

	first := createTestJio(t, repo, "Supper", 1, "Alice")
	second := createTestJio(t, repo, "Prata", 1, "Alice")
	require.NoError(t, repo.Delete(ctx, first))
	third := createTestJio(t, repo, "McDonald's", 2, "Bob")

	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)
	assert.Equal(t, int64(3), third)
}

func TestJioRepository_GetByID_NotFound(t *testing.T) {
	repo := memory.NewJioRepository(nil)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, secondary.ErrNotFound)
}

func TestJioRepository_AppendItem(t *testing.T) {
	repo := memory.NewJioRepository(nil)
	ctx := context.Background()
	id := createTestJio(t, repo, "Supper", 1, "Alice")

	for _, it := range []secondary.ItemRecord{
		{ContributorName: "Alice", Text: "Fries"},
		{ContributorName: "Bob", Text: "Noodles"},
		{ContributorName: "Alice", Text: "Milo"},
		{ContributorName: "Carol", Text: "Roti"},
	} {
		require.NoError(t, repo.AppendItem(ctx, id, &it))
	}

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	require.Len(t, got.Items, 4)
	assert.Equal(t, "Fries", got.Items[0].Text)
	assert.Equal(t, "Roti", got.Items[3].Text)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, got.Participants)

	err = repo.AppendItem(ctx, 42, &secondary.ItemRecord{ContributorName: "Bob", Text: "Kopi"})
	assert.ErrorIs(t, err, secondary.ErrNotFound)
}

func TestJioRepository_AddSurface_Deduplicates(t *testing.T) {
	repo := memory.NewJioRepository(nil)
	ctx := context.Background()
	id := createTestJio(t, repo, "Supper", 1, "Alice")

	inline := &secondary.SurfaceRecord{Kind: "inline", InlineMessageID: "AgAAA"}
	chat := &secondary.SurfaceRecord{Kind: "chat", ChatID: -100, MessageID: 5}

	added, err := repo.AddSurface(ctx, id, inline)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddSurface(ctx, id, &secondary.SurfaceRecord{Kind: "inline", InlineMessageID: "AgAAA"})
	require.NoError(t, err)
	assert.False(t, added)

	added, err = repo.AddSurface(ctx, id, chat)
	require.NoError(t, err)
	assert.True(t, added)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Len(t, got.Surfaces, 2)

	_, err = repo.AddSurface(ctx, 77, inline)
	assert.ErrorIs(t, err, secondary.ErrNotFound)
}

func TestJioRepository_ListFiltersByCreatorInCreationOrder(t *testing.T) {
	repo := memory.NewJioRepository(nil)
	ctx := context.Background()

	createTestJio(t, repo, "A1", 1, "Alice")
	createTestJio(t, repo, "B1", 2, "Bob")
	createTestJio(t, repo, "A2", 1, "Alice")

	mine, err := repo.List(ctx, secondary.JioFilters{CreatorID: 1})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "A1", mine[0].Name)
	assert.Equal(t, "A2", mine[1].Name)

	all, err := repo.List(ctx, secondary.JioFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestJioRepository_ReturnsCopies(t *testing.T) {
	repo := memory.NewJioRepository(nil)
	ctx := context.Background()
	id := createTestJio(t, repo, "Supper", 1, "Alice")

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	got.Participants[0] = "Mallory"
	got.Items = append(got.Items, secondary.ItemRecord{Text: "sneaky"})

	again, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, again.Participants)
	assert.Empty(t, again.Items)
}

func TestJioRepository_Delete(t *testing.T) {
	repo := memory.NewJioRepository(nil)
	ctx := context.Background()
	id := createTestJio(t, repo, "Supper", 1, "Alice")

	require.NoError(t, repo.Delete(ctx, id))
	_, err := repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, secondary.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, id), secondary.ErrNotFound)

	all, err := repo.List(ctx, secondary.JioFilters{})
	require.NoError(t, err)
	assert.Empty(t, all)
}
