package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, gameID, player string, score int) {
	t.Helper()
	_, err := store.SaveScore(context.Background(), ScoreEntry{GameID: gameID, Player: player, Score: score, Info: "1.00s"})
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	mustSave(t, store, "stack-top", "alice", 10)
	mustSave(t, store, "stack-top", "bob", 5)
	mustSave(t, store, "stack-top", "carol", 20)
	mustSave(t, store, "other", "dave", 50)

	scores, err := store.TopScores(ctx, "stack-top", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []string{"carol", "alice", "bob"}
	for i, name := range want {
		if scores[i].Player != name {
			t.Errorf("scores[%d].Player = %q, expected %q", i, scores[i].Player, name)
		}
	}
	if scores[0].Score != 20 || scores[0].Info != "1.00s" {
		t.Errorf("top entry = %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreTiesKeepEarliestFirst(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, "g", "first", 7)
	mustSave(t, store, "g", "higher", 9)
	mustSave(t, store, "g", "second", 7)
	mustSave(t, store, "g", "third", 7)

	scores, err := store.TopScores(context.Background(), "g", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	want := []string{"higher", "first", "second", "third"}
	if len(scores) != len(want) {
		t.Fatalf("Expected %d scores, got %d", len(want), len(scores))
	}
	for i, name := range want {
		if scores[i].Player != name {
			t.Errorf("scores[%d].Player = %q, expected %q", i, scores[i].Player, name)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, "test", "p", (i+1)*100)
	}

	scores, err := store.TopScores(context.Background(), "test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreDefaultLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < DefaultLimit+5; i++ {
		mustSave(t, store, "test", "p", i)
	}

	scores, err := store.TopScores(context.Background(), "test", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != DefaultLimit {
		t.Errorf("Expected %d scores, got %d", DefaultLimit, len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	high, err := store.HighScore(ctx, "stack-top")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	mustSave(t, store, "stack-top", "a", 100)
	mustSave(t, store, "stack-top", "b", 300)
	mustSave(t, store, "stack-top", "c", 200)

	high, err = store.HighScore(ctx, "stack-top")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	mustSave(t, store, "stack-top", "a", 100)
	mustSave(t, store, "stack-top", "b", 200)
	mustSave(t, store, "other", "c", 300)

	if err := store.ClearScores(ctx, "stack-top"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	cleared, _ := store.TopScores(ctx, "stack-top", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(cleared))
	}

	others, _ := store.TopScores(ctx, "other", 10)
	if len(others) != 1 {
		t.Errorf("Other games should not be affected by clearing")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	empty, err := store.GetGameStats(ctx, "stack-top")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	mustSave(t, store, "stack-top", "a", 10)
	mustSave(t, store, "stack-top", "a", 20)
	mustSave(t, store, "stack-top", "b", 30)

	stats, err := store.GetGameStats(ctx, "stack-top")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.Players != 2 || stats.HighScore != 30 || stats.AvgScore != 20 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
