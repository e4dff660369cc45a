package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-connect4/internal/games/connect4"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.connect4/history.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".connect4", "history.db")); err != nil {
		t.Errorf("Database not created under home: %v", err)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	results := []Result{
		{Player1: "Ann", Player2: "Computer", Winner: WinnerOne, Moves: 7},
		{Player1: "Computer", Player2: "Ann", Winner: WinnerOne, Moves: 12},
		{Player1: "Ann", Player2: "Bob", Winner: WinnerDraw, Moves: 42},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	recent, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(recent))
	}

	// Newest first
	if recent[0].Moves != 42 || recent[2].Moves != 7 {
		t.Errorf("Expected newest first, got moves %d..%d", recent[0].Moves, recent[2].Moves)
	}
	for _, r := range recent {
		if _, err := uuid.Parse(r.GameID); err != nil {
			t.Errorf("GameID %q is not a uuid: %v", r.GameID, err)
		}
		if r.CreatedAt.IsZero() {
			t.Errorf("CreatedAt not parsed for result %d", r.ID)
		}
	}

	limited, err := store.RecentResults(2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 results with limit, got %d", len(limited))
	}

	bob, err := store.PlayerResults("Bob", 10)
	if err != nil {
		t.Fatalf("PlayerResults() failed: %v", err)
	}
	if len(bob) != 1 || bob[0].WinnerName() != "draw" {
		t.Errorf("Unexpected results for Bob: %+v", bob)
	}
}

func TestStoreResultByGameID(t *testing.T) {
	store := openTestStore(t)

	gameID := uuid.NewString()
	if _, err := store.SaveResult(Result{GameID: gameID, Player1: "A", Player2: "B", Winner: WinnerTwo, Moves: 9}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	r, err := store.ResultByGameID(gameID)
	if err != nil {
		t.Fatalf("ResultByGameID() failed: %v", err)
	}
	if r == nil || r.WinnerName() != "B" {
		t.Fatalf("Unexpected result: %+v", r)
	}

	missing, err := store.ResultByGameID(uuid.NewString())
	if err != nil {
		t.Fatalf("ResultByGameID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown game, got %+v", missing)
	}

	// Game IDs are unique.
	if _, err := store.SaveResult(Result{GameID: gameID, Player1: "A", Player2: "B"}); err == nil {
		t.Error("Expected duplicate game ID to fail")
	}
}

func TestStoreRejectsInvalidWinner(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(Result{Player1: "A", Player2: "B", Winner: 3}); err == nil {
		t.Error("Expected invalid winner to fail")
	}
}

func TestStorePlayerStats(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []Result{
		{Player1: "Ann", Player2: "Computer", Winner: WinnerOne},
		{Player1: "Computer", Player2: "Ann", Winner: WinnerOne},
		{Player1: "Ann", Player2: "Bob", Winner: WinnerDraw},
		{Player1: "Bob", Player2: "Ann", Winner: WinnerTwo},
	} {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	ann, err := store.PlayerStats("Ann")
	if err != nil {
		t.Fatalf("PlayerStats() failed: %v", err)
	}
	if ann.Games != 4 || ann.Wins != 2 || ann.Losses != 1 || ann.Draws != 1 {
		t.Errorf("Ann stats = %+v, want 4 games, 2 wins, 1 loss, 1 draw", ann)
	}
	if ann.WinRate() != 0.5 {
		t.Errorf("WinRate() = %v, want 0.5", ann.WinRate())
	}
	if ann.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	nobody, err := store.PlayerStats("Nobody")
	if err != nil {
		t.Fatalf("PlayerStats() failed: %v", err)
	}
	if nobody.Games != 0 || nobody.WinRate() != 0 {
		t.Errorf("Expected empty stats, got %+v", nobody)
	}

	all, err := store.AllPlayerStats()
	if err != nil {
		t.Fatalf("AllPlayerStats() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 players, got %d", len(all))
	}
	if c := all["Computer"]; c.Wins != 1 || c.Losses != 1 {
		t.Errorf("Computer stats = %+v, want 1 win, 1 loss", c)
	}
	if b := all["Bob"]; b.Games != 2 || b.Losses != 1 || b.Draws != 1 {
		t.Errorf("Bob stats = %+v", b)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveResult(Result{Player1: "A", Player2: "B", Winner: WinnerOne}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if err := store.ClearResults(); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	recent, err := store.RecentResults(10)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 0 {
		t.Errorf("Expected no results after clear, got %d", len(recent))
	}
}

func TestResultFromGame(t *testing.T) {
	g := connect4.NewGame(connect4.Human("Ann"), connect4.Computer())
	if _, ok := ResultFromGame(g); ok {
		t.Error("Expected no result for a game in progress")
	}

	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		if err := g.Play(col); err != nil {
			t.Fatalf("Play(%d) failed: %v", col, err)
		}
	}

	r, ok := ResultFromGame(g)
	if !ok {
		t.Fatal("Expected a result for a finished game")
	}
	if r.Winner != WinnerOne || r.Player2 != connect4.ComputerName || r.Moves != 7 {
		t.Errorf("Unexpected result: %+v", r)
	}
}
