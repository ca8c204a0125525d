package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/stack-top/internal/storage"
)

func openLocalStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	for _, e := range []storage.ScoreEntry{
		{GameID: "stack", Player: "alice", Score: 12, Info: "4.00s"},
		{GameID: "stack", Player: "bob", Score: 30, Info: "9.10s"},
		{GameID: "other", Player: "carol", Score: 99, Info: "1.00s"},
	} {
		if _, err := store.SaveScore(context.Background(), e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	return store
}

func TestLocalScoresPrintsBoard(t *testing.T) {
	store := openLocalStore(t)

	var out bytes.Buffer
	if err := localScores(context.Background(), &out, store, "stack", 10, false); err != nil {
		t.Fatalf("localScores() failed: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Best: 30") {
		t.Errorf("output should show the high score:\n%s", text)
	}
	if strings.Index(text, "bob") > strings.Index(text, "alice") {
		t.Errorf("bob should be listed before alice:\n%s", text)
	}
	if strings.Contains(text, "carol") {
		t.Errorf("scores of other games must not be listed:\n%s", text)
	}
}

func TestLocalScoresClear(t *testing.T) {
	store := openLocalStore(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := localScores(ctx, &out, store, "stack", 10, true); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if !strings.Contains(out.String(), "Cleared all scores for stack.") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := localScores(ctx, &out, store, "stack", 10, false); err != nil {
		t.Fatalf("localScores() failed: %v", err)
	}
	if !strings.Contains(out.String(), "No scores recorded yet.") {
		t.Errorf("board should be empty after clearing:\n%s", out.String())
	}

	other, err := store.TopScores(ctx, "other", 10)
	if err != nil || len(other) != 1 {
		t.Errorf("other game should keep its scores, got %v (%v)", other, err)
	}
}
