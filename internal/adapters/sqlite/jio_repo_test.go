package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/jiobot/internal/adapters/sqlite"
	"github.com/example/jiobot/internal/ports/secondary"
)

type recordingLogWriter struct {
	creates []string
	updates []string
	deletes []string
}

func (w *recordingLogWriter) LogCreate(_ context.Context, entityType, entityID string) error {
	w.creates = append(w.creates, entityType+":"+entityID)
	return nil
}

func (w *recordingLogWriter) LogUpdate(_ context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	w.updates = append(w.updates, entityType+":"+entityID+":"+fieldName+":"+oldValue+"->"+newValue)
	return nil
}

func (w *recordingLogWriter) LogDelete(_ context.Context, entityType, entityID string) error {
	w.deletes = append(w.deletes, entityType+":"+entityID)
	return nil
}

func TestJioRepository_CreateAndGet(t *testing.T) {
	repo := sqlite.NewJioRepository(setupTestDB(t), nil)
	ctx := context.Background()

	id := seedJio(t, repo, "Supper", 42, "Alice")

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Supper" {
		t.Errorf("expected name 'Supper', got %q", got.Name)
	}
	if got.CreatorID != 42 || got.CreatorName != "Alice" {
		t.Errorf("unexpected creator %d/%q", got.CreatorID, got.CreatorName)
	}
	if !got.CreatedAt.Equal(time.Date(2024, 5, 1, 22, 30, 0, 0, time.UTC)) {
		t.Errorf("unexpected created_at %v", got.CreatedAt)
	}
	if len(got.Participants) != 1 || got.Participants[0] != "Alice" {
		t.Errorf("expected participants [Alice], got %v", got.Participants)
	}
	if len(got.Items) != 0 {
		t.Errorf("expected no items, got %d", len(got.Items))
	}
}

func TestJioRepository_GetNextIDNeverReuses(t *testing.T) {
	repo := sqlite.NewJioRepository(setupTestDB(t), nil)
	ctx := context.Background()

	first := seedJio(t, repo, "One", 1, "A")
	second := seedJio(t, repo, "Two", 1, "A")
	if first != 1 || second != 2 {
		t.Fatalf("expected IDs 1 and 2, got %d and %d", first, second)
	}

	if err := repo.Delete(ctx, second); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	next, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if next != 3 {
		t.Errorf("expected ID 3 after delete, got %d", next)
	}
}

func TestJioRepository_GetByID_NotFound(t *testing.T) {
	repo := sqlite.NewJioRepository(setupTestDB(t), nil)

	_, err := repo.GetByID(context.Background(), 99)
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJioRepository_AppendItem(t *testing.T) {
	repo := sqlite.NewJioRepository(setupTestDB(t), nil)
	ctx := context.Background()
	id := seedJio(t, repo, "Supper", 42, "Alice")

	items := []secondary.ItemRecord{
		{ContributorName: "Bob", Text: "Chicken rice", AddedAt: time.Now()},
		{ContributorName: "Alice", Text: "Milo peng", AddedAt: time.Now()},
		{ContributorName: "Bob", Text: "Roti prata", AddedAt: time.Now()},
	}
	for i := range items {
		if err := repo.AppendItem(ctx, id, &items[i]); err != nil {
			t.Fatalf("AppendItem failed: %v", err)
		}
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(got.Items))
	}
	for i, want := range []string{"Chicken rice", "Milo peng", "Roti prata"} {
		if got.Items[i].Text != want {
			t.Errorf("item %d: expected %q, got %q", i, want, got.Items[i].Text)
		}
	}
	if len(got.Participants) != 2 || got.Participants[0] != "Alice" || got.Participants[1] != "Bob" {
		t.Errorf("expected participants [Alice Bob], got %v", got.Participants)
	}
}

func TestJioRepository_AppendItem_NotFound(t *testing.T) {
	repo := sqlite.NewJioRepository(setupTestDB(t), nil)

	err := repo.AppendItem(context.Background(), 7, &secondary.ItemRecord{ContributorName: "Bob", Text: "Tea"})
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestJioRepository_AddSurface(t *testing.T) {
	repo := sqlite.NewJioRepository(setupTestDB(t), nil)
	ctx := context.Background()
	id := seedJio(t, repo, "Supper", 42, "Alice")

	inline := &secondary.SurfaceRecord{Kind: "inline", InlineMessageID: "AAQ-1"}
	chat := &secondary.SurfaceRecord{Kind: "chat", ChatID: -100, MessageID: 5}

	added, err := repo.AddSurface(ctx, id, inline)
	if err != nil || !added {
		t.Fatalf("expected first inline surface to be added, got %v/%v", added, err)
	}
	added, err = repo.AddSurface(ctx, id, inline)
	if err != nil || added {
		t.Errorf("expected duplicate inline surface to be ignored, got %v/%v", added, err)
	}
	added, err = repo.AddSurface(ctx, id, chat)
	if err != nil || !added {
		t.Errorf("expected chat surface to be added, got %v/%v", added, err)
	}

	got, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Surfaces) != 2 {
		t.Fatalf("expected 2 surfaces, got %d", len(got.Surfaces))
	}
	if got.Surfaces[0] != *inline || got.Surfaces[1] != *chat {
		t.Errorf("unexpected surfaces %+v", got.Surfaces)
	}

	if _, err := repo.AddSurface(ctx, 99, inline); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing jio, got %v", err)
	}
}

func TestJioRepository_List(t *testing.T) {
	repo := sqlite.NewJioRepository(setupTestDB(t), nil)
	ctx := context.Background()
	seedJio(t, repo, "One", 1, "A")
	seedJio(t, repo, "Two", 2, "B")
	seedJio(t, repo, "Three", 1, "A")

	all, err := repo.List(ctx, secondary.JioFilters{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 jios, got %d", len(all))
	}
	if all[0].Name != "One" || all[2].Name != "Three" {
		t.Errorf("expected creation order, got %q..%q", all[0].Name, all[2].Name)
	}

	mine, err := repo.List(ctx, secondary.JioFilters{CreatorID: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 jios for creator 1, got %d", len(mine))
	}
	for _, j := range mine {
		if len(j.Participants) != 1 {
			t.Errorf("expected children loaded for jio %d", j.ID)
		}
	}
}

func TestJioRepository_Delete(t *testing.T) {
	repo := sqlite.NewJioRepository(setupTestDB(t), nil)
	ctx := context.Background()
	id := seedJio(t, repo, "Supper", 42, "Alice")
	_ = repo.AppendItem(ctx, id, &secondary.ItemRecord{ContributorName: "Bob", Text: "Tea", AddedAt: time.Now()})

	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, id); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, id); !errors.Is(err, secondary.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestJioRepository_AuditLog(t *testing.T) {
	logs := &recordingLogWriter{}
	repo := sqlite.NewJioRepository(setupTestDB(t), logs)
	ctx := context.Background()

	id := seedJio(t, repo, "Supper", 42, "Alice")
	_ = repo.AppendItem(ctx, id, &secondary.ItemRecord{ContributorName: "Bob", Text: "Tea", AddedAt: time.Now()})
	_ = repo.Delete(ctx, id)

	if len(logs.creates) != 1 || logs.creates[0] != "jio:1" {
		t.Errorf("unexpected creates %v", logs.creates)
	}
	if len(logs.updates) != 1 || logs.updates[0] != "jio:1:items:0->1" {
		t.Errorf("unexpected updates %v", logs.updates)
	}
	if len(logs.deletes) != 1 || logs.deletes[0] != "jio:1" {
		t.Errorf("unexpected deletes %v", logs.deletes)
	}
}
