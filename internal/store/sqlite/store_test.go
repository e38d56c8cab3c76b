package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DRMacIver/claude-reliability-sub001/internal/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateGetTaskRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateTask(ctx, "Fix the flaky test", "it flakes on CI", types.PriorityHigh)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if created.Status != types.StatusOpen {
		t.Fatalf("want status open, got %s", created.Status)
	}

	got, err := s.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != created.Title || got.Description != created.Description || got.Priority != created.Priority {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, created)
	}
}

func TestGetTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTask(context.Background(), "does-not-exist")
	if !IsNotFound(err) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUpdateTaskEnforcesSingleInProgress(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.CreateTask(ctx, "A", "", types.PriorityMedium)
	b, _ := s.CreateTask(ctx, "B", "", types.PriorityMedium)

	yes := true
	if err := s.UpdateTask(ctx, a.ID, types.WorkItemPatch{InProgress: &yes}); err != nil {
		t.Fatalf("update a: %v", err)
	}
	if err := s.UpdateTask(ctx, b.ID, types.WorkItemPatch{InProgress: &yes}); err != nil {
		t.Fatalf("update b: %v", err)
	}

	gotA, _ := s.GetTask(ctx, a.ID)
	gotB, _ := s.GetTask(ctx, b.ID)
	if gotA.InProgress {
		t.Fatal("want a no longer in progress after b was marked in progress")
	}
	if !gotB.InProgress {
		t.Fatal("want b in progress")
	}

	has, err := s.HasInProgressTask(ctx)
	if err != nil {
		t.Fatalf("has in progress: %v", err)
	}
	if !has {
		t.Fatal("want HasInProgressTask true")
	}
}

func TestDeleteTaskCascadesDependenciesAndNotes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a, _ := s.CreateTask(ctx, "A", "", types.PriorityMedium)
	b, _ := s.CreateTask(ctx, "B", "", types.PriorityMedium)
	if err := s.AddDependency(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	if _, err := s.AddNote(ctx, a.ID, "a note"); err != nil {
		t.Fatalf("add note: %v", err)
	}

	if err := s.DeleteTask(ctx, a.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}

	if _, err := s.GetTask(ctx, a.ID); !IsNotFound(err) {
		t.Fatalf("want ErrNotFound after delete, got %v", err)
	}

	deps, err := s.GetDependencies(ctx, a.ID)
	if err != nil {
		t.Fatalf("get dependencies: %v", err)
	}
	if len(deps) != 0 {
		t.Fatalf("want no dependency edges surviving delete, got %v", deps)
	}
}

func TestDeleteTaskNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.DeleteTask(context.Background(), "does-not-exist")
	if !IsNotFound(err) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAddDependencyRejectsDirectCycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a, _ := s.CreateTask(ctx, "A", "", types.PriorityMedium)

	err := s.AddDependency(ctx, a.ID, a.ID)
	if !IsCycle(err) {
		t.Fatalf("want ErrCycle for self-dependency, got %v", err)
	}
}

func TestAddDependencyRejectsTransitiveCycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	a, _ := s.CreateTask(ctx, "A", "", types.PriorityMedium)
	b, _ := s.CreateTask(ctx, "B", "", types.PriorityMedium)
	c, _ := s.CreateTask(ctx, "C", "", types.PriorityMedium)

	if err := s.AddDependency(ctx, a.ID, b.ID); err != nil {
		t.Fatalf("a -> b: %v", err)
	}
	if err := s.AddDependency(ctx, b.ID, c.ID); err != nil {
		t.Fatalf("b -> c: %v", err)
	}

	err := s.AddDependency(ctx, c.ID, a.ID)
	if !IsCycle(err) {
		t.Fatalf("want ErrCycle closing the loop c -> a, got %v", err)
	}
}

func TestGetReadyTasksExcludesBlockedByDependencyOrQuestion(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	free, _ := s.CreateTask(ctx, "Free", "", types.PriorityMedium)
	blockedByDep, _ := s.CreateTask(ctx, "Blocked by dep", "", types.PriorityMedium)
	dependency, _ := s.CreateTask(ctx, "Dependency", "", types.PriorityMedium)
	blockedByQuestion, _ := s.CreateTask(ctx, "Blocked by question", "", types.PriorityMedium)

	if err := s.AddDependency(ctx, blockedByDep.ID, dependency.ID); err != nil {
		t.Fatalf("add dependency: %v", err)
	}
	q, err := s.CreateQuestion(ctx, "What should this do?")
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	if err := s.LinkQuestion(ctx, blockedByQuestion.ID, q.ID); err != nil {
		t.Fatalf("link question: %v", err)
	}

	ready, err := s.GetReadyTasks(ctx)
	if err != nil {
		t.Fatalf("get ready tasks: %v", err)
	}

	readyIDs := map[string]bool{}
	for _, item := range ready {
		readyIDs[item.ID] = true
	}
	if !readyIDs[free.ID] {
		t.Fatal("want the free task to be ready")
	}
	if !readyIDs[dependency.ID] {
		t.Fatal("want the dependency task itself to be ready (nothing blocks it)")
	}
	if readyIDs[blockedByDep.ID] {
		t.Fatal("want the task blocked by an incomplete dependency to not be ready")
	}
	if readyIDs[blockedByQuestion.ID] {
		t.Fatal("want the task blocked by an unanswered question to not be ready")
	}

	if err := s.AnswerQuestion(ctx, q.ID, "Do the thing"); err != nil {
		t.Fatalf("answer question: %v", err)
	}
	readyAfterAnswer, err := s.GetReadyTasks(ctx)
	if err != nil {
		t.Fatalf("get ready tasks: %v", err)
	}
	found := false
	for _, item := range readyAfterAnswer {
		if item.ID == blockedByQuestion.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("want the task to become ready once its blocking question is answered")
	}
}

func TestPickTaskReturnsNilWhenNothingReady(t *testing.T) {
	s := newTestStore(t)
	item, err := s.PickTask(context.Background())
	if err != nil {
		t.Fatalf("pick task: %v", err)
	}
	if item != nil {
		t.Fatalf("want nil with no ready tasks, got %+v", item)
	}
}

func TestPickTaskOnlyChoosesAmongMinimumPriority(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _ = s.CreateTask(ctx, "Low priority", "", types.PriorityLow)
	high, _ := s.CreateTask(ctx, "High priority", "", types.PriorityHigh)

	for i := 0; i < 20; i++ {
		item, err := s.PickTask(ctx)
		if err != nil {
			t.Fatalf("pick task: %v", err)
		}
		if item.ID != high.ID {
			t.Fatalf("want only the high-priority task ever picked, got %s", item.ID)
		}
	}
}

func TestSearchTasksRanksMatches(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateTask(ctx, "Fix the flaky login test", "", types.PriorityMedium); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := s.CreateTask(ctx, "Unrelated task", "nothing to do with logins", types.PriorityMedium); err != nil {
		t.Fatalf("create task: %v", err)
	}

	results, err := s.SearchTasks(ctx, "login", 10)
	if err != nil {
		t.Fatalf("search tasks: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("want at least one match for 'login'")
	}
}

func TestBuiltinHowTosSyncIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	first, err := Open(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	firstHowTos, err := first.ListHowTos(context.Background())
	if err != nil {
		t.Fatalf("list how-tos: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := Open(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer func() { _ = second.Close() }()

	secondHowTos, err := second.ListHowTos(context.Background())
	if err != nil {
		t.Fatalf("list how-tos: %v", err)
	}

	if len(firstHowTos) == 0 {
		t.Fatal("want at least one built-in how-to seeded")
	}
	if len(secondHowTos) != len(firstHowTos) {
		t.Fatalf("want built-in how-to count stable across re-opens, got %d then %d", len(firstHowTos), len(secondHowTos))
	}
}

func TestAuditLogRecordsCreateAndUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	item, err := s.CreateTask(ctx, "Track me", "", types.PriorityMedium)
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	title := "Track me, renamed"
	if err := s.UpdateTask(ctx, item.ID, types.WorkItemPatch{Title: &title}); err != nil {
		t.Fatalf("update task: %v", err)
	}

	entries, err := s.AuditLog(ctx, item.ID, 0)
	if err != nil {
		t.Fatalf("audit log: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 audit entries (create, update), got %d", len(entries))
	}
}
