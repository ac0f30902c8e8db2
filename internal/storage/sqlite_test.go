package storage

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
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

func TestStoreSaveAndRetrieveRun(t *testing.T) {
	store := openTestStore(t)

	run := RunRecord{
		ScenarioID: "corridor",
		Seed:       1,
		Ticks:      37,
		// Above MaxInt64 to check the signed round trip.
		FinalHash: 0xfedcba9876543210,
		Samples: []SyncSample{
			{Tick: 10, Hash: 1},
			{Tick: 20, Hash: 0x8000000000000000},
			{Tick: 30, Hash: 3},
		},
	}
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.ScenarioID != "corridor" || got.Seed != 1 || got.Ticks != 37 {
		t.Errorf("RunByID() = %+v", got)
	}
	if got.FinalHash != run.FinalHash {
		t.Errorf("FinalHash = %x, expected %x", got.FinalHash, run.FinalHash)
	}
	if !reflect.DeepEqual(got.Samples, run.Samples) {
		t.Errorf("Samples = %v, expected %v", got.Samples, run.Samples)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
}

func TestStoreRunsNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if _, err := store.SaveRun(RunRecord{ScenarioID: "crossing", Seed: int64(i), Ticks: i}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(RunRecord{ScenarioID: "detour", Seed: 9}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.Runs("crossing", 3)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Seed != 4 || runs[2].Seed != 2 {
		t.Errorf("Runs not newest first: %+v", runs)
	}

	all, err := store.Runs("", 0)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("Expected 6 runs across scenarios, got %d", len(all))
	}
	if all[0].ScenarioID != "detour" {
		t.Errorf("Expected newest run first, got %s", all[0].ScenarioID)
	}
}

func TestStoreLatestRun(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LatestRun("corridor", 1); !errors.Is(err, ErrNoRun) {
		t.Errorf("LatestRun() on empty store error = %v, expected ErrNoRun", err)
	}

	for _, hash := range []uint64{11, 22} {
		if _, err := store.SaveRun(RunRecord{ScenarioID: "corridor", Seed: 1, FinalHash: hash}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(RunRecord{ScenarioID: "corridor", Seed: 2, FinalHash: 33}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	run, err := store.LatestRun("corridor", 1)
	if err != nil {
		t.Fatalf("LatestRun() failed: %v", err)
	}
	if run.FinalHash != 22 {
		t.Errorf("FinalHash = %d, expected 22", run.FinalHash)
	}
}

func TestStoreRunByIDMissing(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.RunByID(42); !errors.Is(err, ErrNoRun) {
		t.Errorf("RunByID() error = %v, expected ErrNoRun", err)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(RunRecord{ScenarioID: "convoy", Samples: []SyncSample{{Tick: 1, Hash: 1}}})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(RunRecord{ScenarioID: "detour"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	if err := store.ClearRuns("convoy"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.Runs("convoy", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	samples, _ := store.Samples(id)
	if len(samples) != 0 {
		t.Errorf("Expected samples to be cleared, got %d", len(samples))
	}
	others, _ := store.Runs("detour", 10)
	if len(others) != 1 {
		t.Error("ClearRuns removed runs of another scenario")
	}
}

func TestStoreAllScenarioStats(t *testing.T) {
	store := openTestStore(t)

	for _, r := range []RunRecord{
		{ScenarioID: "crossing", Seed: 1, Ticks: 100},
		{ScenarioID: "crossing", Seed: 1, Ticks: 120},
		{ScenarioID: "crossing", Seed: 2, Ticks: 90},
		{ScenarioID: "corridor", Seed: 1, Ticks: 37},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.AllScenarioStats()
	if err != nil {
		t.Fatalf("AllScenarioStats() failed: %v", err)
	}
	c := stats["crossing"]
	if c == nil {
		t.Fatal("missing stats for crossing")
	}
	if c.Runs != 3 || c.Seeds != 2 || c.MaxTicks != 120 {
		t.Errorf("crossing stats = %+v", c)
	}
	if stats["corridor"] == nil || stats["corridor"].Runs != 1 {
		t.Errorf("corridor stats = %+v", stats["corridor"])
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
