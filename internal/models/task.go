package models

import (
	"fmt"
	"time"
)

type TaskStatus int16

const (
	StatusUpcoming TaskStatus = iota
	StatusStarted
	StatusOngoing
	StatusCompleted
)

var statusNames = [...]string{"upcoming", "started", "ongoing", "completed"}

func (s TaskStatus) String() string {
	if s < StatusUpcoming || s > StatusCompleted {
		return fmt.Sprintf("status(%d)", int16(s))
	}
	return statusNames[s]
}

// Advance returns the next status. Completed is terminal and advances to itself.
func (s TaskStatus) Advance() TaskStatus {
	if s < StatusCompleted {
		return s + 1
	}
	return StatusCompleted
}

func (s TaskStatus) IsCompleted() bool {
	return s >= StatusCompleted
}

type Priority int16

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

var priorityNames = [...]string{"low", "medium", "high"}

func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func (p Priority) String() string {
	if !p.Valid() {
		return fmt.Sprintf("priority(%d)", int16(p))
	}
	return priorityNames[p]
}

type Task struct {
	ID          int64      `json:"id"`
	ListID      int64      `json:"list_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Persons     []User     `json:"persons,omitempty"`
}

// TaskPerson links a responsible user to a task.
type TaskPerson struct {
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
