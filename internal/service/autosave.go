package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"estatedocs/internal/domain/models"
	"estatedocs/internal/domain/repositories"
)

// Autosaver debounces draft saves. Repeated field updates within the
// debounce window collapse into a single persistence call, issued after the
// input stream quiesces. A save in progress is never cancelled by new edits;
// instead a follow-up save is queued and runs after the current one
// completes, so the persisted draft converges on the latest snapshot.
//
// Failed saves are retried with exponential backoff. If all retries fail the
// snapshot survives in the session store and is written on the next edit or
// flush - user input is never silently dropped.
type Autosaver struct {
	drafts     repositories.DraftRepository
	debounce   time.Duration
	maxRetries int
	logger     *slog.Logger

	mu      sync.Mutex
	pending map[string]*saveState
}

type saveState struct {
	timer    *time.Timer
	snapshot func() *models.Draft
	saving   bool
	queued   bool
}

// NewAutosaver creates an autosaver writing through the given repository.
func NewAutosaver(drafts repositories.DraftRepository, debounce time.Duration, maxRetries int, logger *slog.Logger) *Autosaver {
	return &Autosaver{
		drafts:     drafts,
		debounce:   debounce,
		maxRetries: maxRetries,
		logger:     logger,
		pending:    make(map[string]*saveState),
	}
}

// Schedule arms (or re-arms) the debounce timer for a session. The snapshot
// function is called at save time, so the save always writes the latest form
// state rather than the state at scheduling time.
func (a *Autosaver) Schedule(sessionID string, snapshot func() *models.Draft) {
	a.mu.Lock()
	defer a.mu.Unlock()

	st, ok := a.pending[sessionID]
	if !ok {
		st = &saveState{}
		a.pending[sessionID] = st
	}
	st.snapshot = snapshot

	if st.saving {
		// Never cancel an in-flight save; run again once it finishes.
		st.queued = true
		return
	}

	if st.timer != nil {
		st.timer.Stop()
	}
	st.timer = time.AfterFunc(a.debounce, func() {
		a.run(sessionID)
	})
}

// Flush performs a synchronous save of the latest snapshot, bypassing the
// debounce window. Used on session completion and abandonment so an in-flight
// draft is allowed to complete rather than being dropped.
func (a *Autosaver) Flush(ctx context.Context, sessionID string) error {
	a.mu.Lock()
	st, ok := a.pending[sessionID]
	if !ok || st.snapshot == nil {
		a.mu.Unlock()
		return nil
	}
	if st.timer != nil {
		st.timer.Stop()
	}
	snapshot := st.snapshot
	a.mu.Unlock()

	draft := snapshot()
	if draft == nil {
		return nil
	}
	return a.drafts.Save(ctx, draft)
}

// Forget drops the pending state for a session. Called once a session
// completes (its draft is deleted) or is evicted.
func (a *Autosaver) Forget(sessionID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if st, ok := a.pending[sessionID]; ok {
		if st.timer != nil {
			st.timer.Stop()
		}
		delete(a.pending, sessionID)
	}
}

func (a *Autosaver) run(sessionID string) {
	a.mu.Lock()
	st, ok := a.pending[sessionID]
	if !ok {
		a.mu.Unlock()
		return
	}
	if st.saving {
		st.queued = true
		a.mu.Unlock()
		return
	}
	st.saving = true
	snapshot := st.snapshot
	a.mu.Unlock()

	draft := snapshot()
	if draft == nil {
		a.mu.Lock()
		if st, ok := a.pending[sessionID]; ok {
			st.saving = false
			st.queued = false
		}
		a.mu.Unlock()
		return
	}

	// Forget may have raced the snapshot (session completed or evicted
	// while this goroutine was blocked); a save now would resurrect a
	// draft the owner already discarded.
	a.mu.Lock()
	if _, ok := a.pending[sessionID]; !ok {
		a.mu.Unlock()
		return
	}
	a.mu.Unlock()

	var err error
	backoff := 500 * time.Millisecond
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = a.drafts.Save(ctx, draft)
		cancel()
		if err == nil {
			break
		}
	}
	if err != nil {
		a.logger.Error("draft auto-save failed, snapshot retained in memory",
			"session_id", sessionID,
			"retries", a.maxRetries,
			"error", err,
		)
	}

	a.mu.Lock()
	// The entry may have been forgotten while the save was running.
	st, ok = a.pending[sessionID]
	if !ok {
		a.mu.Unlock()
		return
	}
	st.saving = false
	queued := st.queued
	st.queued = false
	a.mu.Unlock()

	if queued {
		a.run(sessionID)
	}
}
