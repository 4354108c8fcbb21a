package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"estatedocs/internal/domain"
	"estatedocs/internal/domain/models"
)

// mockDraftRepository records Save calls and can be told to fail a number of
// times before succeeding.
type mockDraftRepository struct {
	mu        sync.Mutex
	saves     []*models.Draft
	failNext  int
	saveDelay time.Duration
	// draftByID, when set, is returned by GetBySessionID regardless of id.
	draftByID *models.Draft
}

func (m *mockDraftRepository) Save(ctx context.Context, draft *models.Draft) error {
	if m.saveDelay > 0 {
		time.Sleep(m.saveDelay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext > 0 {
		m.failNext--
		return errors.New("database unavailable")
	}
	m.saves = append(m.saves, draft)
	return nil
}

func (m *mockDraftRepository) GetBySessionID(ctx context.Context, sessionID string) (*models.Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draftByID != nil {
		return m.draftByID, nil
	}
	return nil, domain.ErrNotFound
}

func (m *mockDraftRepository) Delete(ctx context.Context, sessionID string) error {
	return nil
}

func (m *mockDraftRepository) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.saves)
}

func (m *mockDraftRepository) lastSave() *models.Draft {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saves) == 0 {
		return nil
	}
	return m.saves[len(m.saves)-1]
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testDraft(sessionID string, step int) *models.Draft {
	return &models.Draft{
		SessionID:        sessionID,
		DocumentType:     models.DocumentTypeWill,
		CurrentStepIndex: step,
		FormData:         models.NewFormData(),
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestAutosaverDebounceCollapsesBursts(t *testing.T) {
	repo := &mockDraftRepository{}
	a := NewAutosaver(repo, 30*time.Millisecond, 0, testLogger())

	// A burst of edits within the debounce window becomes one save, and the
	// save carries the latest snapshot.
	for step := 0; step < 5; step++ {
		step := step
		a.Schedule("s1", func() *models.Draft { return testDraft("s1", step) })
		time.Sleep(5 * time.Millisecond)
	}

	waitFor(t, time.Second, func() bool { return repo.saveCount() >= 1 })
	time.Sleep(50 * time.Millisecond)

	if got := repo.saveCount(); got != 1 {
		t.Errorf("save count = %d, want 1", got)
	}
	if last := repo.lastSave(); last == nil || last.CurrentStepIndex != 4 {
		t.Errorf("last save = %+v, want step 4", last)
	}
}

func TestAutosaverRetriesFailedSave(t *testing.T) {
	repo := &mockDraftRepository{failNext: 2}
	a := NewAutosaver(repo, 5*time.Millisecond, 3, testLogger())

	a.Schedule("s1", func() *models.Draft { return testDraft("s1", 1) })

	waitFor(t, 5*time.Second, func() bool { return repo.saveCount() == 1 })
}

func TestAutosaverScheduleDuringSaveQueuesFollowUp(t *testing.T) {
	repo := &mockDraftRepository{saveDelay: 50 * time.Millisecond}
	a := NewAutosaver(repo, 5*time.Millisecond, 0, testLogger())

	a.Schedule("s1", func() *models.Draft { return testDraft("s1", 1) })
	time.Sleep(20 * time.Millisecond) // first save is now in flight

	// An edit during the in-flight save must not cancel it; a follow-up save
	// runs afterwards with the newer snapshot.
	a.Schedule("s1", func() *models.Draft { return testDraft("s1", 2) })

	waitFor(t, 5*time.Second, func() bool { return repo.saveCount() == 2 })

	if last := repo.lastSave(); last.CurrentStepIndex != 2 {
		t.Errorf("last save step = %d, want 2", last.CurrentStepIndex)
	}
}

func TestAutosaverFlushBypassesDebounce(t *testing.T) {
	repo := &mockDraftRepository{}
	a := NewAutosaver(repo, time.Hour, 0, testLogger())

	a.Schedule("s1", func() *models.Draft { return testDraft("s1", 3) })

	if err := a.Flush(context.Background(), "s1"); err != nil {
		t.Fatalf("Flush error = %v", err)
	}
	if got := repo.saveCount(); got != 1 {
		t.Errorf("save count = %d after Flush, want 1", got)
	}
}

func TestAutosaverFlushWithoutPendingIsNoop(t *testing.T) {
	repo := &mockDraftRepository{}
	a := NewAutosaver(repo, time.Hour, 0, testLogger())

	if err := a.Flush(context.Background(), "unknown"); err != nil {
		t.Fatalf("Flush error = %v", err)
	}
	if got := repo.saveCount(); got != 0 {
		t.Errorf("save count = %d, want 0", got)
	}
}

func TestAutosaverForgetDuringSnapshotSkipsSave(t *testing.T) {
	repo := &mockDraftRepository{}
	a := NewAutosaver(repo, time.Millisecond, 0, testLogger())

	entered := make(chan struct{})
	release := make(chan struct{})
	a.Schedule("s1", func() *models.Draft {
		close(entered)
		<-release
		return testDraft("s1", 1)
	})

	// The timer has fired and the save goroutine is inside the snapshot when
	// the session is forgotten (completed or evicted). The stale snapshot
	// must not be written afterwards.
	<-entered
	a.Forget("s1")
	close(release)

	time.Sleep(50 * time.Millisecond)
	if got := repo.saveCount(); got != 0 {
		t.Errorf("save count = %d after Forget raced the snapshot, want 0", got)
	}
}

func TestAutosaverForgetStopsPendingSave(t *testing.T) {
	repo := &mockDraftRepository{}
	a := NewAutosaver(repo, 20*time.Millisecond, 0, testLogger())

	a.Schedule("s1", func() *models.Draft { return testDraft("s1", 1) })
	a.Forget("s1")

	time.Sleep(60 * time.Millisecond)
	if got := repo.saveCount(); got != 0 {
		t.Errorf("save count = %d after Forget, want 0", got)
	}
}
