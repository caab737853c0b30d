package db

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"RaidKeeper/cons"
	"RaidKeeper/cwlog"
	"RaidKeeper/metrics"
	"RaidKeeper/roster"

	"github.com/remeh/sizedwaitgroup"
	"github.com/sasha-s/go-deadlock"
)

// RunStore maps recruiting post IDs to their runs.
type RunStore struct {
	lock deadlock.RWMutex
	runs map[uint64]*roster.Run
	path string

	/* One writer on the temp file at a time */
	saveLock deadlock.Mutex
}

func NewRunStore(path string) *RunStore {
	return &RunStore{
		runs: make(map[uint64]*roster.Run),
		path: path,
	}
}

// Add registers a run. False if the post is already registered.
func (s *RunStore) Add(r *roster.Run) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, found := s.runs[r.ID()]; found {
		return false
	}
	s.runs[r.ID()] = r
	metrics.ActiveRuns.Set(float64(len(s.runs)))
	return true
}

func (s *RunStore) Get(id uint64) *roster.Run {
	s.lock.RLock()
	r := s.runs[id]
	s.lock.RUnlock()
	return r
}

func (s *RunStore) GetString(id string) *roster.Run {
	val, err := SnowflakeToInt(id)
	if err != nil {
		return nil
	}
	return s.Get(val)
}

// Remove drops the run for a post, returning it if present.
func (s *RunStore) Remove(id uint64) *roster.Run {
	s.lock.Lock()
	defer s.lock.Unlock()

	r := s.runs[id]
	if r != nil {
		delete(s.runs, id)
		metrics.ActiveRuns.Set(float64(len(s.runs)))
	}
	return r
}

// All returns the runs ordered by post ID.
func (s *RunStore) All() []*roster.Run {
	s.lock.RLock()
	out := make([]*roster.Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, r)
	}
	s.lock.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

func (s *RunStore) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return len(s.runs)
}

// Save writes every run as JSON, keyed by post ID, via a temp file.
func (s *RunStore) Save() error {
	s.saveLock.Lock()
	defer s.saveLock.Unlock()

	startTime := time.Now()

	toSave := make(map[string]roster.Record)
	for _, r := range s.All() {
		toSave[IntToSnowflake(r.ID())] = r.ToRecord()
	}

	outbuf := new(bytes.Buffer)
	enc := json.NewEncoder(outbuf)
	enc.SetIndent("", "\t")
	if err := enc.Encode(toSave); err != nil {
		return fmt.Errorf("encoding run map: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}
	tmpName := s.path + ".tmp"
	if err := os.WriteFile(tmpName, outbuf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing run map: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("renaming run map: %w", err)
	}

	metrics.StoreSaveSeconds.Observe(time.Since(startTime).Seconds())
	cwlog.DoLog(fmt.Sprintf("Saved %v runs, took: %v", len(toSave), time.Since(startTime).String()))
	return nil
}

// Load reads the run map. Runs whose records are malformed are left
// out and reported in the returned error; the rest are loaded.
func (s *RunStore) Load() error {
	startTime := time.Now()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		cwlog.DoLog("No run map found, starting empty.")
		return nil
	} else if err != nil {
		return fmt.Errorf("reading run map: %w", err)
	}

	records := make(map[string]roster.Record)
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing run map: %w", err)
	}

	type result struct {
		key string
		run *roster.Run
		err error
	}
	results := make(chan result, len(records))

	wg := sizedwaitgroup.New(cons.ThreadCount)
	for key, rec := range records {
		wg.Add()
		go func(key string, rec roster.Record) {
			defer wg.Done()
			r, err := roster.FromRecord(rec)
			if err == nil && IntToSnowflake(r.ID()) != key {
				err = fmt.Errorf("%w: key %v holds run %v", roster.ErrBadRecord, key, r.ID())
			}
			results <- result{key: key, run: r, err: err}
		}(key, rec)
	}
	wg.Wait()
	close(results)

	var errs []error
	loaded := 0
	for res := range results {
		if res.err != nil {
			errs = append(errs, fmt.Errorf("run %v: %w", res.key, res.err))
			continue
		}
		if s.Add(res.run) {
			loaded++
		}
	}

	cwlog.DoLog(fmt.Sprintf("Loaded %v runs, took: %v", loaded, time.Since(startTime).String()))
	return errors.Join(errs...)
}

// SaveLoop saves every interval until ctx ends, then saves once more.
func (s *RunStore) SaveLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Save(); err != nil {
				cwlog.DoLog("SaveLoop: " + err.Error())
			}
		case <-ctx.Done():
			if err := s.Save(); err != nil {
				cwlog.DoLog("SaveLoop: final save: " + err.Error())
			}
			return
		}
	}
}
