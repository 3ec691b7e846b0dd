package planner

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/julianstephens/norton/internal/models"
)

const today = "2024-05-10"

func setupTestStore(t *testing.T, seed []models.Task) (*Store, *[][]models.Task) {
	t.Helper()
	var saves [][]models.Task
	n := 0
	clock := time.Date(2024, time.May, 10, 8, 0, 0, 0, time.Local)

	s := New(seed,
		WithClock(func() time.Time { return clock }),
		WithIDs(func() string { n++; return fmt.Sprintf("t%d", n) }),
		WithOnChange(func(tasks []models.Task) error {
			saves = append(saves, tasks)
			return nil
		}),
	)
	return s, &saves
}

func TestAddTaskPrepends(t *testing.T) {
	s, saves := setupTestStore(t, nil)

	first, err := s.AddTask("write report", models.PriorityHigh, models.TaskCategoryWork, today)
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}
	second, err := s.AddTask("  buy milk  ", models.PriorityLow, "", today)
	if err != nil {
		t.Fatalf("AddTask failed: %v", err)
	}

	tasks := s.Tasks()
	if len(tasks) != 2 || tasks[0].ID != second.ID || tasks[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", tasks)
	}
	if second.Text != "buy milk" {
		t.Errorf("text not trimmed: %q", second.Text)
	}
	if second.Completed {
		t.Error("new task should not be completed")
	}
	if second.CreatedAt == 0 || second.Date != today {
		t.Errorf("unexpected stamps: %+v", second)
	}
	if len(*saves) != 2 {
		t.Errorf("expected 2 saves, got %d", len(*saves))
	}
}

func TestAddTaskRejectsBlankText(t *testing.T) {
	s, saves := setupTestStore(t, nil)

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := s.AddTask(text, models.PriorityMedium, "", today); !errors.Is(err, models.ErrEmptyText) {
			t.Errorf("AddTask(%q) error = %v, want ErrEmptyText", text, err)
		}
	}
	if len(s.Tasks()) != 0 || len(*saves) != 0 {
		t.Error("blank add must not change or persist state")
	}
}

func TestAddTaskRejectsBadInput(t *testing.T) {
	s, _ := setupTestStore(t, nil)

	if _, err := s.AddTask("x", models.Priority("urgent"), "", today); !errors.Is(err, models.ErrInvalidPriority) {
		t.Errorf("priority error = %v", err)
	}
	if _, err := s.AddTask("x", models.PriorityLow, models.TaskCategory("chores"), today); !errors.Is(err, models.ErrInvalidTaskCategory) {
		t.Errorf("category error = %v", err)
	}
	if _, err := s.AddTask("x", models.PriorityLow, "", "10/05/2024"); !errors.Is(err, models.ErrInvalidDate) {
		t.Errorf("date error = %v", err)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s, _ := setupTestStore(t, nil)
	task, _ := s.AddTask("stretch", models.PriorityMedium, models.TaskCategoryHealth, today)

	toggled, ok, err := s.ToggleTask(task.ID)
	if err != nil || !ok || !toggled.Completed {
		t.Fatalf("first toggle = %+v, %v, %v", toggled, ok, err)
	}
	toggled, _, _ = s.ToggleTask(task.ID)
	if toggled.Completed {
		t.Error("second toggle should restore incomplete")
	}

	if _, ok, _ := s.ToggleTask("missing"); ok {
		t.Error("toggle of unknown id should report ok=false")
	}
}

func TestEditTaskPreservesIdentity(t *testing.T) {
	s, _ := setupTestStore(t, nil)
	task, _ := s.AddTask("draft", models.PriorityLow, "", today)
	_, _, _ = s.ToggleTask(task.ID)

	edited, err := s.EditTask(task.ID, "final", models.PriorityHigh, models.TaskCategoryStudy)
	if err != nil {
		t.Fatalf("EditTask failed: %v", err)
	}
	if edited.ID != task.ID || edited.Date != task.Date || edited.CreatedAt != task.CreatedAt || !edited.Completed {
		t.Errorf("identity fields changed: %+v", edited)
	}
	if edited.Text != "final" || edited.Priority != models.PriorityHigh || edited.Category != models.TaskCategoryStudy {
		t.Errorf("mutable fields not replaced: %+v", edited)
	}

	if _, err := s.EditTask(task.ID, "  ", models.PriorityLow, ""); !errors.Is(err, models.ErrEmptyText) {
		t.Errorf("blank edit error = %v", err)
	}
	if got, _ := s.Get(task.ID); got.Text != "final" {
		t.Error("blank edit must not change the task")
	}
	if _, err := s.EditTask("missing", "x", models.PriorityLow, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown id error = %v", err)
	}
}

func TestDeleteCancelsEditSession(t *testing.T) {
	s, _ := setupTestStore(t, nil)
	a, _ := s.AddTask("a", models.PriorityLow, "", today)
	b, _ := s.AddTask("b", models.PriorityLow, "", today)

	if _, err := s.BeginEdit(a.ID); err != nil {
		t.Fatalf("BeginEdit failed: %v", err)
	}
	if ok, _ := s.DeleteTask(b.ID); !ok {
		t.Fatal("delete of b failed")
	}
	if id, ok := s.Editing(); !ok || id != a.ID {
		t.Error("deleting another task must not close the session")
	}

	if ok, _ := s.DeleteTask(a.ID); !ok {
		t.Fatal("delete of a failed")
	}
	if _, ok := s.Editing(); ok {
		t.Error("deleting the edited task must close the session")
	}
	if _, err := s.SaveEdit("x", models.PriorityLow, ""); !errors.Is(err, ErrNoSession) {
		t.Errorf("SaveEdit after delete error = %v", err)
	}
	if ok, _ := s.DeleteTask(a.ID); ok {
		t.Error("second delete should report false")
	}
}

func TestSaveEdit(t *testing.T) {
	s, _ := setupTestStore(t, nil)
	task, _ := s.AddTask("old", models.PriorityLow, "", today)
	_, _ = s.BeginEdit(task.ID)

	if _, err := s.SaveEdit(" ", models.PriorityLow, ""); !errors.Is(err, models.ErrEmptyText) {
		t.Fatalf("blank SaveEdit error = %v", err)
	}
	if _, ok := s.Editing(); !ok {
		t.Fatal("rejected edit should keep the session open")
	}

	edited, err := s.SaveEdit("new", models.PriorityMedium, models.TaskCategoryLife)
	if err != nil || edited.Text != "new" {
		t.Fatalf("SaveEdit = %+v, %v", edited, err)
	}
	if _, ok := s.Editing(); ok {
		t.Error("successful save should close the session")
	}

	s.CancelEdit()
	if _, err := s.BeginEdit("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("BeginEdit unknown id error = %v", err)
	}
}

func TestTasksForDateDisplayOrder(t *testing.T) {
	seed := []models.Task{
		{ID: "1", Text: "low open", Priority: models.PriorityLow, Date: today},
		{ID: "2", Text: "high done", Priority: models.PriorityHigh, Date: today, Completed: true},
		{ID: "3", Text: "high open", Priority: models.PriorityHigh, Date: today},
		{ID: "4", Text: "other day", Priority: models.PriorityHigh, Date: "2024-05-11"},
		{ID: "5", Text: "medium open", Priority: models.PriorityMedium, Date: today},
		{ID: "6", Text: "high open later", Priority: models.PriorityHigh, Date: today},
	}
	s, _ := setupTestStore(t, seed)

	got := s.TasksForDate(today)
	want := []string{"3", "6", "5", "1", "2"}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestSortForDisplayUnknownPriorityLast(t *testing.T) {
	tasks := []models.Task{
		{ID: "x", Priority: models.Priority("someday")},
		{ID: "l", Priority: models.PriorityLow},
	}
	SortForDisplay(tasks)
	if tasks[0].ID != "l" {
		t.Errorf("unknown priority should sort after low, got %s first", tasks[0].ID)
	}
}

func TestDatesWithPendingTasks(t *testing.T) {
	seed := []models.Task{
		{ID: "1", Date: "2024-05-01", Completed: true},
		{ID: "2", Date: "2024-05-02"},
		{ID: "3", Date: "2024-05-02", Completed: true},
		{ID: "4", Date: "2024-05-03"},
	}
	s, _ := setupTestStore(t, seed)

	dates := s.DatesWithPendingTasks()
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %v", dates)
	}
	for _, d := range []string{"2024-05-02", "2024-05-03"} {
		if _, ok := dates[d]; !ok {
			t.Errorf("missing %s", d)
		}
	}
}

func TestOnChangeErrorIsReturned(t *testing.T) {
	saveErr := errors.New("disk full")
	s := New(nil, WithOnChange(func([]models.Task) error { return saveErr }))

	if _, err := s.AddTask("x", models.PriorityLow, "", today); !errors.Is(err, saveErr) {
		t.Errorf("AddTask error = %v, want %v", err, saveErr)
	}
	if len(s.Tasks()) != 1 {
		t.Error("in-memory change should be kept when persisting fails")
	}
}

func TestReplace(t *testing.T) {
	s, saves := setupTestStore(t, []models.Task{{ID: "1", Date: today}})
	_, _ = s.BeginEdit("1")

	if err := s.Replace(nil); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if len(s.Tasks()) != 0 {
		t.Error("expected empty collection")
	}
	if _, ok := s.Editing(); ok {
		t.Error("Replace should close the edit session")
	}
	last := (*saves)[len(*saves)-1]
	if last == nil {
		t.Error("snapshot passed to hook should be non-nil")
	}
}
