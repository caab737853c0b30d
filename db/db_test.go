package db

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"RaidKeeper/roster"
)

func newRun(id uint64) *roster.Run {
	return roster.New(roster.Options{
		ID:       id,
		RosterID: id + 1,
		Host:     "host",
		HostID:   7,
		RunTime:  time.Date(2026, 10, 18, 20, 0, 0, 0, time.UTC),
	})
}

func TestStoreAddGetRemove(t *testing.T) {
	s := NewRunStore(filepath.Join(t.TempDir(), "runs.json"))
	r := newRun(10)
	if !s.Add(r) {
		t.Fatal("Add refused a new run")
	}
	if s.Add(newRun(10)) {
		t.Error("Add accepted a duplicate post")
	}
	if s.Get(10) != r || s.GetString("10") != r {
		t.Error("lookup mismatch")
	}
	if s.GetString("not a snowflake") != nil {
		t.Error("bad snowflake found a run")
	}
	if s.Remove(10) != r || s.Len() != 0 {
		t.Error("Remove did not drop the run")
	}
	if s.Remove(10) != nil {
		t.Error("second Remove returned a run")
	}
}

func TestStoreSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "runs.json")
	s := NewRunStore(path)
	for _, id := range []uint64{30, 10, 20} {
		r := newRun(id)
		if _, err := r.Join(0, roster.Member{Name: "tank", Role: roster.MainTank, ID: id + 100}); err != nil {
			t.Fatal(err)
		}
		s.Add(r)
	}
	if _, err := s.Get(20).ClaimLeader(120); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	loaded := NewRunStore(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 3 {
		t.Fatalf("loaded %v runs, want 3", loaded.Len())
	}
	all := loaded.All()
	for i, id := range []uint64{10, 20, 30} {
		if all[i].ID() != id {
			t.Errorf("All()[%v] = %v, want %v", i, all[i].ID(), id)
		}
		if !reflect.DeepEqual(all[i].ToRecord(), s.Get(id).ToRecord()) {
			t.Errorf("run %v changed across save/load", id)
		}
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	s := NewRunStore(filepath.Join(t.TempDir(), "none.json"))
	if err := s.Load(); err != nil {
		t.Errorf("missing file: %v", err)
	}
}

func TestStoreLoadSkipsBadRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	data := `{
		"1": {"id": 1, "roster_display_id": 2, "groups": null, "host": "h", "host_id": 3, "icon": "", "password": null, "run_time": "2022-10-10T23:16:42+00:00"},
		"5": {"id": 5, "roster_display_id": 6, "groups": [], "host": "h", "host_id": 3, "icon": "", "password": null, "run_time": "2022-10-10T23:16:42+00:00"},
		"8": {"id": 9, "roster_display_id": 6, "host": "h", "host_id": 3, "icon": "", "password": null, "run_time": "2022-10-10T23:16:42+00:00"}
	}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	s := NewRunStore(path)
	err := s.Load()
	if !errors.Is(err, roster.ErrBadRecord) {
		t.Errorf("Load err = %v, want ErrBadRecord", err)
	}
	if s.Len() != 1 || s.Get(1) == nil {
		t.Errorf("loaded %v runs, want only run 1", s.Len())
	}
}

func TestSaveLoopFinalSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	s := NewRunStore(path)
	s.Add(newRun(42))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.SaveLoop(ctx, time.Hour)
		close(done)
	}()
	cancel()
	<-done

	if _, err := os.Stat(path); err != nil {
		t.Errorf("no save on shutdown: %v", err)
	}
}

func TestConcurrentSaves(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.json")
	s := NewRunStore(path)
	s.Add(newRun(42))
	s.Add(newRun(43))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.SaveLoop(ctx, time.Hour)
		close(done)
	}()

	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() { errs <- s.Save() }()
	}
	cancel()
	for i := 0; i < 4; i++ {
		if err := <-errs; err != nil {
			t.Errorf("Save: %v", err)
		}
	}
	<-done

	loaded := NewRunStore(path)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}
	if loaded.Len() != 2 {
		t.Errorf("loaded %v runs, want 2", loaded.Len())
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind: %v", err)
	}
}
