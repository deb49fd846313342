package routine

import (
	"testing"

	"github.com/apper-canvas/kidroutine/internal/model"
)

// scheduleDay places count tasks on one date starting at 08:00 and marks the
// first done of them completed.
func scheduleDay(t *testing.T, e *Engine, childID, taskID int64, date string, count, done int) {
	t.Helper()
	slots := TimeSlots()
	for i := 0; i < count; i++ {
		st, err := e.Schedule(childID, date, slots[2+i], taskID)
		if err != nil {
			t.Fatalf("schedule %s %s: %v", date, slots[2+i], err)
		}
		if i < done {
			if _, err := e.SetStatus(st.ID, model.StatusCompleted); err != nil {
				t.Fatalf("complete: %v", err)
			}
		}
	}
}

func TestProgressEmptyChild(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Mia")

	daily, err := e.DailyBreakdown(child.ID, 7, "2026-08-29")
	if err != nil {
		t.Fatalf("daily breakdown: %v", err)
	}
	if len(daily) != 7 {
		t.Fatalf("expected 7 days, got %d", len(daily))
	}
	if daily[0].Date != "2026-08-23" || daily[6].Date != "2026-08-29" {
		t.Errorf("window = %s..%s, want 2026-08-23..2026-08-29", daily[0].Date, daily[6].Date)
	}
	for _, d := range daily {
		if d.Total != 0 || d.Completed != 0 || d.Rate != 0 {
			t.Errorf("day %s = %+v, want all zero", d.Date, d)
		}
	}

	overall, err := e.OverallRate(child.ID)
	if err != nil {
		t.Fatalf("overall rate: %v", err)
	}
	if overall != 0 {
		t.Errorf("overall = %d, want 0", overall)
	}

	streak, err := e.CurrentStreak(child.ID, 7, "2026-08-29")
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 0 {
		t.Errorf("streak = %d, want 0", streak)
	}
}

func TestDailyBreakdownRounding(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Leo")
	task := createTask(t, db, "Read", 30, 10)

	scheduleDay(t, e, child.ID, task.ID, "2026-08-28", 3, 1) // 33
	scheduleDay(t, e, child.ID, task.ID, "2026-08-29", 3, 2) // 67

	daily, err := e.DailyBreakdown(child.ID, 2, "2026-08-29")
	if err != nil {
		t.Fatalf("daily breakdown: %v", err)
	}
	if daily[0].Rate != 33 {
		t.Errorf("1/3 rate = %d, want 33", daily[0].Rate)
	}
	if daily[1].Rate != 67 {
		t.Errorf("2/3 rate = %d, want 67", daily[1].Rate)
	}
}

func TestDailyBreakdownValidation(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Ana")

	if _, err := e.DailyBreakdown(child.ID, 0, "2026-08-29"); err == nil {
		t.Error("expected error for zero-day window")
	}
	if _, err := e.DailyBreakdown(child.ID, 7, "not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestCurrentStreak(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Noa")
	task := createTask(t, db, "Read", 30, 10)

	// Three perfect days after a 50% day: streak is 3
	scheduleDay(t, e, child.ID, task.ID, "2026-08-26", 2, 1)
	scheduleDay(t, e, child.ID, task.ID, "2026-08-27", 1, 1)
	scheduleDay(t, e, child.ID, task.ID, "2026-08-28", 2, 2)
	scheduleDay(t, e, child.ID, task.ID, "2026-08-29", 1, 1)

	streak, err := e.CurrentStreak(child.ID, 7, "2026-08-29")
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 3 {
		t.Errorf("streak = %d, want 3", streak)
	}
}

func TestStreakBrokenByEmptyDay(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Eli")
	task := createTask(t, db, "Read", 30, 10)

	// Perfect two days ago, nothing yesterday, perfect today
	scheduleDay(t, e, child.ID, task.ID, "2026-08-27", 1, 1)
	scheduleDay(t, e, child.ID, task.ID, "2026-08-29", 1, 1)

	streak, err := e.CurrentStreak(child.ID, 7, "2026-08-29")
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 1 {
		t.Errorf("streak = %d, want 1", streak)
	}
}

func TestStreakAtThreshold(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Mia")
	task := createTask(t, db, "Read", 30, 10)

	// 4 of 5 is exactly 80, which keeps the streak alive
	scheduleDay(t, e, child.ID, task.ID, "2026-08-29", 5, 4)

	streak, err := e.CurrentStreak(child.ID, 7, "2026-08-29")
	if err != nil {
		t.Fatalf("streak: %v", err)
	}
	if streak != 1 {
		t.Errorf("streak = %d, want 1", streak)
	}
}

func TestChildProgressPayload(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Leo")
	task := createTask(t, db, "Read", 30, 10)

	scheduleDay(t, e, child.ID, task.ID, "2026-08-28", 2, 2)
	scheduleDay(t, e, child.ID, task.ID, "2026-08-29", 2, 1)

	progress, err := e.ChildProgress(child.ID, 7, "2026-08-29")
	if err != nil {
		t.Fatalf("progress: %v", err)
	}
	if len(progress.Daily) != 7 {
		t.Errorf("daily window = %d, want 7", len(progress.Daily))
	}
	if progress.TotalTasks != 4 || progress.TotalCompleted != 3 {
		t.Errorf("totals = %d/%d, want 4/3", progress.TotalTasks, progress.TotalCompleted)
	}
	if progress.Overall != 75 {
		t.Errorf("overall = %d, want 75", progress.Overall)
	}
	// Today is at 50%, so no streak
	if progress.Streak != 0 {
		t.Errorf("streak = %d, want 0", progress.Streak)
	}
}
