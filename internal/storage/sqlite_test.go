package storage

import (
	"fmt"
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

var runCounter int

func saveRun(t *testing.T, store *Store, bot string, score int) {
	t.Helper()
	runCounter++
	_, err := store.SaveRun(RunEntry{
		RunID: fmt.Sprintf("run-%d", runCounter),
		Bot:   bot,
		Seed:  int64(runCounter),
		Score: score,
		Turns: 900,
		Level: score / 1000,
		Lives: 1,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "sample", 100)
	saveRun(t, store, "sample", 50)
	saveRun(t, store, "sample", 200)
	saveRun(t, store, "human", 500)

	runs, err := store.TopRuns("sample", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
	if runs[0].Bot != "sample" || runs[0].Turns != 900 || runs[0].RunID == "" {
		t.Errorf("Run fields not stored: %+v", runs[0])
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 4 || all[0].Bot != "human" {
		t.Errorf("TopRuns(all) = %v, expected 4 runs led by human", all)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		saveRun(t, store, "test", (i+1)*100)
	}

	runs, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}

	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Should be 500, 400, 300 (top 3)
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)

	entry := RunEntry{RunID: "same", Bot: "idle", Score: 1}
	if _, err := store.SaveRun(entry); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(entry); err == nil {
		t.Error("SaveRun() should reject a duplicate run ID")
	}
}

func TestStoreRunByID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(RunEntry{RunID: "abc", Bot: "tracker", Seed: 42, Score: 75, Turns: 310, Level: 0, Lives: 0}); err != nil {
		t.Fatal(err)
	}

	got, err := store.RunByID("abc")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil || got.Seed != 42 || got.Score != 75 || got.Turns != 310 {
		t.Errorf("RunByID() = %+v", got)
	}

	missing, err := store.RunByID("nope")
	if err != nil || missing != nil {
		t.Errorf("RunByID(missing) = %v, %v, expected nil, nil", missing, err)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	high, err := store.HighScore("sample")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty bot, got %d", high)
	}

	saveRun(t, store, "sample", 100)
	saveRun(t, store, "sample", 300)
	saveRun(t, store, "sample", 200)
	saveRun(t, store, "tracker", 400)

	high, err = store.HighScore("sample")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	if high, _ := store.HighScore(""); high != 400 {
		t.Errorf("Expected overall high score of 400, got %d", high)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "sample", 100)
	saveRun(t, store, "sample", 200)
	saveRun(t, store, "human", 300)

	if err := store.ClearRuns("sample"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	if runs, _ := store.TopRuns("sample", 10); len(runs) != 0 {
		t.Errorf("Expected 0 sample runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns("human", 10); len(runs) != 1 {
		t.Errorf("Human runs should not be affected by clearing sample")
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(all) failed: %v", err)
	}
	if runs, _ := store.TopRuns("", 10); len(runs) != 0 {
		t.Errorf("Expected no runs after clearing all, got %d", len(runs))
	}
}

func TestStoreAllStats(t *testing.T) {
	store := openTestStore(t)

	saveRun(t, store, "sample", 100)
	saveRun(t, store, "sample", 300)
	saveRun(t, store, "idle", 0)

	stats, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}

	sample := stats["sample"]
	if sample == nil {
		t.Fatal("AllStats() missing sample")
	}
	if sample.Runs != 2 || sample.HighScore != 300 || sample.AvgScore != 200 {
		t.Errorf("sample stats = %+v", sample)
	}
	if stats["idle"] == nil || stats["idle"].Runs != 1 {
		t.Errorf("idle stats = %+v", stats["idle"])
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "sub", "scores.db")

	ok, err := Exists(dbPath)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if ok {
		t.Error("Exists() = true before Open")
	}
	if _, err := os.Stat(filepath.Dir(dbPath)); !os.IsNotExist(err) {
		t.Error("Exists() should not create directories")
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Close()

	if ok, err := Exists(dbPath); err != nil || !ok {
		t.Errorf("Exists() = %v, %v after Open, expected true, nil", ok, err)
	}
}
