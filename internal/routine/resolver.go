package routine

import (
	"github.com/apper-canvas/kidroutine/internal/model"
)

// ScheduledTaskView is a scheduled task joined with its template, the shape
// the presentation layer renders directly.
type ScheduledTaskView struct {
	model.ScheduledTask
	Title        string `json:"title"`
	Category     string `json:"category"`
	Duration     int    `json:"duration"`
	Points       int    `json:"points"`
	Instructions string `json:"instructions"`
	Icon         string `json:"icon"`
}

// tasksForDay loads a child's scheduled tasks for one date, joined with their
// templates, ordered by time then id.
func (e *Engine) tasksForDay(childID int64, date string) ([]ScheduledTaskView, error) {
	list, err := e.scheduled.ListByChildAndDate(childID, date)
	if err != nil {
		return nil, err
	}

	cache := make(map[int64]*model.Task)
	views := make([]ScheduledTaskView, 0, len(list))
	for _, st := range list {
		task, ok := cache[st.TaskID]
		if !ok {
			task, err = e.tasks.GetByID(st.TaskID)
			if err != nil {
				return nil, err
			}
			cache[st.TaskID] = task
		}

		v := ScheduledTaskView{
			ScheduledTask: st,
			Duration:      DefaultTaskDuration,
			Points:        DefaultTaskPoints,
		}
		if task != nil {
			v.Title = task.Title
			v.Category = task.Category
			v.Instructions = task.Instructions
			v.Icon = task.Icon
			if task.Duration > 0 {
				v.Duration = task.Duration
			}
			if task.Points > 0 {
				v.Points = task.Points
			}
		}
		views = append(views, v)
	}
	return views, nil
}

// CurrentTask finds the pending task whose window [start, start+duration]
// contains nowMins, both ends inclusive. When windows overlap, the earliest
// start wins. Returns nil when nothing is due.
func (e *Engine) CurrentTask(childID int64, date string, nowMins int) (*ScheduledTaskView, error) {
	views, err := e.dayViews(childID, date)
	if err != nil {
		return nil, err
	}

	for i := range views {
		v := &views[i]
		if v.Status != model.StatusPending {
			continue
		}
		start, err := ParseClock(v.Time)
		if err != nil {
			continue
		}
		if nowMins >= start && nowMins <= start+v.Duration {
			return v, nil
		}
	}
	return nil, nil
}

// NextTask finds the pending task with the smallest start time strictly after
// nowMins; equal starts break by lowest id. Returns nil when the day has no
// more pending tasks.
func (e *Engine) NextTask(childID int64, date string, nowMins int) (*ScheduledTaskView, error) {
	views, err := e.dayViews(childID, date)
	if err != nil {
		return nil, err
	}

	for i := range views {
		v := &views[i]
		if v.Status != model.StatusPending {
			continue
		}
		start, err := ParseClock(v.Time)
		if err != nil {
			continue
		}
		if start > nowMins {
			return v, nil
		}
	}
	return nil, nil
}

// dayViews is tasksForDay behind a child-existence check. The views arrive
// sorted by time then id, which both resolvers rely on for tie-breaking.
func (e *Engine) dayViews(childID int64, date string) ([]ScheduledTaskView, error) {
	child, err := e.children.GetByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ChildNotFoundError{ChildID: childID}
	}
	return e.tasksForDay(childID, date)
}
