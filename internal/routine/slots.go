package routine

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/apper-canvas/kidroutine/internal/model"
	"github.com/apper-canvas/kidroutine/internal/store"
)

const (
	slotStartMinutes = 7 * 60  // 07:00
	slotEndMinutes   = 21 * 60 // 21:00, last schedulable slot
	slotStepMinutes  = 30

	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// TimeSlots returns every schedulable slot start, 07:00 through 21:00 in
// 30-minute steps.
func TimeSlots() []string {
	var slots []string
	for m := slotStartMinutes; m <= slotEndMinutes; m += slotStepMinutes {
		slots = append(slots, minutesToClock(m))
	}
	return slots
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseClock parses an HH:MM string into minutes of day.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// MinutesOfDay converts a wall-clock instant into minutes since midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

func validSlot(tm string) bool {
	m, err := ParseClock(tm)
	if err != nil {
		return false
	}
	return m >= slotStartMinutes && m <= slotEndMinutes && (m-slotStartMinutes)%slotStepMinutes == 0
}

// Slot pairs a grid time with its occupant, if any.
type Slot struct {
	Time string             `json:"time"`
	Task *ScheduledTaskView `json:"task,omitempty"`
}

// Schedule places a task on a child's day at the given slot. The slot must be
// on the grid and unoccupied; the new instance starts out pending.
func (e *Engine) Schedule(childID int64, date, tm string, taskID int64) (*model.ScheduledTask, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}
	if !validSlot(tm) {
		return nil, InvalidSlotError{Time: tm}
	}

	child, err := e.children.GetByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ChildNotFoundError{ChildID: childID}
	}

	task, err := e.tasks.GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, NotFoundError{Kind: "task", ID: taskID}
	}

	// The unique index arbitrates occupancy, so concurrent drops on the same
	// slot still resolve to exactly one winner.
	st, err := e.scheduled.Create(taskID, childID, date, tm)
	if errors.Is(err, store.ErrSlotTaken) {
		return nil, SlotOccupiedError{ChildID: childID, Date: date, Time: tm}
	}
	return st, err
}

// Unschedule removes a scheduled task. Removing it twice fails with
// NotFoundError; deletion is not idempotent.
func (e *Engine) Unschedule(id int64) error {
	err := e.scheduled.Delete(id)
	if errors.Is(err, sql.ErrNoRows) {
		return NotFoundError{Kind: "scheduled task", ID: id}
	}
	return err
}

// SlotsForDay returns the full slot grid for a child's day, each slot joined
// with its occupying task (template details included) or empty.
func (e *Engine) SlotsForDay(childID int64, date string) ([]Slot, error) {
	child, err := e.children.GetByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ChildNotFoundError{ChildID: childID}
	}

	views, err := e.tasksForDay(childID, date)
	if err != nil {
		return nil, err
	}

	byTime := make(map[string]*ScheduledTaskView, len(views))
	for i := range views {
		if _, ok := byTime[views[i].Time]; !ok {
			byTime[views[i].Time] = &views[i]
		}
	}

	var slots []Slot
	for _, tm := range TimeSlots() {
		slots = append(slots, Slot{Time: tm, Task: byTime[tm]})
	}
	return slots, nil
}
