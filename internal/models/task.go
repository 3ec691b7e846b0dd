package models

import (
	"errors"
	"strings"

	"github.com/julianstephens/norton/internal/utils"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists the known priorities from most to least important.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Rank orders priorities for display. Unknown values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Valid() bool {
	return p.Rank() > 0
}

// ParsePriority accepts a priority key in any case. An empty string maps to medium.
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PriorityMedium, nil
	}
	p := Priority(s)
	if !p.Valid() {
		return "", ErrInvalidPriority
	}
	return p, nil
}

type TaskCategory string

const (
	TaskCategoryWork   TaskCategory = "work"
	TaskCategoryLife   TaskCategory = "life"
	TaskCategoryStudy  TaskCategory = "study"
	TaskCategoryHealth TaskCategory = "health"
	TaskCategoryOther  TaskCategory = "other"
)

var TaskCategories = []TaskCategory{
	TaskCategoryWork,
	TaskCategoryLife,
	TaskCategoryStudy,
	TaskCategoryHealth,
	TaskCategoryOther,
}

func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCategoryWork, TaskCategoryLife, TaskCategoryStudy, TaskCategoryHealth, TaskCategoryOther:
		return true
	}
	return false
}

// Effective returns the category used for display and aggregation.
// An unset category counts as other.
func (c TaskCategory) Effective() TaskCategory {
	if c == "" {
		return TaskCategoryOther
	}
	return c
}

// ParseTaskCategory accepts a category key in any case. An empty string
// leaves the category unset.
func ParseTaskCategory(s string) (TaskCategory, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	c := TaskCategory(s)
	if !c.Valid() {
		return "", ErrInvalidTaskCategory
	}
	return c, nil
}

var (
	ErrEmptyText           = errors.New("task text cannot be empty")
	ErrInvalidPriority     = errors.New("priority must be one of high, medium, low")
	ErrInvalidTaskCategory = errors.New("category must be one of work, life, study, health, other")
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
)

// Task is a to-do item scheduled on a calendar day. Date is a local
// calendar day key, never an instant.
type Task struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Completed bool         `json:"completed"`
	Priority  Priority     `json:"priority"`
	Category  TaskCategory `json:"category,omitempty"`
	Date      string       `json:"date"`      // YYYY-MM-DD
	CreatedAt int64        `json:"createdAt"` // epoch milliseconds
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.Text) == "" {
		return ErrEmptyText
	}
	if !t.Priority.Valid() {
		return ErrInvalidPriority
	}
	if t.Category != "" && !t.Category.Valid() {
		return ErrInvalidTaskCategory
	}
	if !utils.ValidDateKey(t.Date) {
		return ErrInvalidDate
	}
	return nil
}
