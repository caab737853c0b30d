package roster

import (
	"context"
	"fmt"
	"time"

	"RaidKeeper/cwlog"
)

// Announcer sends the reveal message to a run's members.
type Announcer interface {
	Announce(ctx context.Context, r *Run) error
}

var (
	revealRetry    = 5 * time.Second
	revealRetryMax = 5 * time.Minute
)

// RevealRunning reports whether a reveal wait is active.
func (r *Run) RevealRunning() bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.revealRunning
}

// StartReveal waits for the run time and then announces once. Only one
// wait runs per run; a second call while one is active returns false.
// Cancelling ctx ends the wait without announcing.
func (r *Run) StartReveal(ctx context.Context, a Announcer) bool {
	r.lock.Lock()
	if r.revealRunning {
		r.lock.Unlock()
		return false
	}
	r.revealRunning = true
	r.lock.Unlock()

	go r.reveal(ctx, a)
	return true
}

func (r *Run) reveal(ctx context.Context, a Announcer) {
	defer func() {
		r.lock.Lock()
		r.revealRunning = false
		r.lock.Unlock()
	}()

	for {
		wait := time.Until(r.RunTime())
		if wait <= 0 {
			break
		}
		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-r.rearm:
			timer.Stop()
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}

	delay := revealRetry
	for {
		err := a.Announce(ctx, r)
		if err == nil {
			cwlog.DoLog(fmt.Sprintf("Run %v: password reveal announced.", r.id))
			return
		}
		cwlog.DoLog(fmt.Sprintf("Run %v: reveal announcement failed, retrying in %v: %v", r.id, delay, err))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return
		}
		delay *= 2
		if delay > revealRetryMax {
			delay = revealRetryMax
		}
	}
}
