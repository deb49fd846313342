package model

import "time"

// ScheduledTask is a dated, timed instance of a Task assigned to one child.
// At most one row may exist per (child_id, date, time).
type ScheduledTask struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	ChildID   int64     `json:"child_id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM, 24-hour
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusNeedHelp  = "need_help"
)

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusNeedHelp:
		return true
	}
	return false
}
