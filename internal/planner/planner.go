package planner

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/norton/internal/models"
	"github.com/julianstephens/norton/internal/utils"
)

var (
	ErrNotFound  = errors.New("task not found")
	ErrNoSession = errors.New("no task is being edited")
)

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now for CreatedAt stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs replaces the UUID generator.
func WithIDs(next func() string) Option {
	return func(s *Store) { s.newID = next }
}

// WithOnChange registers a hook that receives a snapshot after every
// mutation. A hook error is returned from the mutating call; the in-memory
// change is kept.
func WithOnChange(fn func([]models.Task) error) Option {
	return func(s *Store) { s.onChange = fn }
}

// Store owns the task collection. New tasks are prepended, so the raw order
// is most recent first; display order comes from SortForDisplay.
type Store struct {
	mu       sync.Mutex
	tasks    []models.Task
	editing  string
	now      func() time.Time
	newID    func() string
	onChange func([]models.Task) error
}

func New(tasks []models.Task, opts ...Option) *Store {
	s := &Store{
		tasks: append([]models.Task{}, tasks...),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddTask creates a task on dateKey and prepends it. Blank text is rejected
// with models.ErrEmptyText and leaves the collection untouched.
func (s *Store) AddTask(text string, priority models.Priority, category models.TaskCategory, dateKey string) (models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, models.ErrEmptyText
	}
	if !priority.Valid() {
		return models.Task{}, models.ErrInvalidPriority
	}
	if category != "" && !category.Valid() {
		return models.Task{}, models.ErrInvalidTaskCategory
	}
	if !utils.ValidDateKey(dateKey) {
		return models.Task{}, models.ErrInvalidDate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := models.Task{
		ID:        s.newID(),
		Text:      text,
		Priority:  priority,
		Category:  category,
		Date:      dateKey,
		CreatedAt: s.now().UnixMilli(),
	}
	s.tasks = append([]models.Task{task}, s.tasks...)
	return task, s.changed()
}

// ToggleTask flips the completion flag. An unknown id is a no-op and
// returns ok=false.
func (s *Store) ToggleTask(id string) (models.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Task{}, false, nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return s.tasks[i], true, s.changed()
}

// EditTask replaces text, priority and category in place. ID, date,
// creation time and completion are preserved.
func (s *Store) EditTask(id, text string, priority models.Priority, category models.TaskCategory) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.edit(id, text, priority, category)
}

func (s *Store) edit(id, text string, priority models.Priority, category models.TaskCategory) (models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, models.ErrEmptyText
	}
	if !priority.Valid() {
		return models.Task{}, models.ErrInvalidPriority
	}
	if category != "" && !category.Valid() {
		return models.Task{}, models.ErrInvalidTaskCategory
	}

	i := s.index(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	s.tasks[i].Text = text
	s.tasks[i].Priority = priority
	s.tasks[i].Category = category
	return s.tasks[i], s.changed()
}

// DeleteTask removes a task. Deleting the task under edit closes the edit
// session.
func (s *Store) DeleteTask(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	if s.editing == id {
		s.editing = ""
	}
	return true, s.changed()
}

// BeginEdit opens an edit session on id, replacing any open session.
func (s *Store) BeginEdit(id string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}
	s.editing = id
	return s.tasks[i], nil
}

func (s *Store) CancelEdit() {
	s.mu.Lock()
	s.editing = ""
	s.mu.Unlock()
}

// Editing returns the id under edit, if any.
func (s *Store) Editing() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editing, s.editing != ""
}

// SaveEdit applies an edit to the task under edit and closes the session.
// A rejected edit keeps the session open.
func (s *Store) SaveEdit(text string, priority models.Priority, category models.TaskCategory) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.editing == "" {
		return models.Task{}, ErrNoSession
	}
	task, err := s.edit(s.editing, text, priority, category)
	if errors.Is(err, models.ErrEmptyText) || errors.Is(err, models.ErrInvalidPriority) || errors.Is(err, models.ErrInvalidTaskCategory) {
		return task, err
	}
	s.editing = ""
	return task, err
}

// Get returns the task with id.
func (s *Store) Get(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

// Tasks returns a copy of the collection in storage order.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task{}, s.tasks...)
}

// TasksForDate returns the tasks on dateKey in display order.
func (s *Store) TasksForDate(dateKey string) []models.Task {
	s.mu.Lock()
	var out []models.Task
	for _, t := range s.tasks {
		if t.Date == dateKey {
			out = append(out, t)
		}
	}
	s.mu.Unlock()

	SortForDisplay(out)
	return out
}

// DatesWithPendingTasks returns every date key that has at least one
// incomplete task.
func (s *Store) DatesWithPendingTasks() map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PendingDates(s.tasks)
}

// Replace swaps the whole collection and closes any edit session.
func (s *Store) Replace(tasks []models.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append([]models.Task{}, tasks...)
	s.editing = ""
	return s.changed()
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) changed() error {
	if s.onChange == nil {
		return nil
	}
	return s.onChange(append([]models.Task{}, s.tasks...))
}

// SortForDisplay orders tasks in place: incomplete before completed, then
// higher priority first. Ties keep their existing order.
func SortForDisplay(tasks []models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		if tasks[i].Completed != tasks[j].Completed {
			return !tasks[i].Completed
		}
		return tasks[i].Priority.Rank() > tasks[j].Priority.Rank()
	})
}

// PendingDates collects the date keys of incomplete tasks.
func PendingDates(tasks []models.Task) map[string]struct{} {
	dates := make(map[string]struct{})
	for _, t := range tasks {
		if !t.Completed {
			dates[t.Date] = struct{}{}
		}
	}
	return dates
}
