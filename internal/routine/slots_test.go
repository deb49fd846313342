package routine

import (
	"errors"
	"testing"
)

func TestTimeSlots(t *testing.T) {
	slots := TimeSlots()
	if len(slots) != 29 {
		t.Fatalf("expected 29 slots, got %d", len(slots))
	}
	if slots[0] != "07:00" {
		t.Errorf("first slot = %q, want 07:00", slots[0])
	}
	if slots[len(slots)-1] != "21:00" {
		t.Errorf("last slot = %q, want 21:00", slots[len(slots)-1])
	}
	if slots[13] != "13:30" {
		t.Errorf("slots[13] = %q, want 13:30", slots[13])
	}
}

func TestParseClock(t *testing.T) {
	m, err := ParseClock("08:30")
	if err != nil {
		t.Fatalf("parse 08:30: %v", err)
	}
	if m != 510 {
		t.Errorf("08:30 = %d minutes, want 510", m)
	}
	if _, err := ParseClock("25:00"); err == nil {
		t.Error("expected error for 25:00")
	}
	if _, err := ParseClock("nope"); err == nil {
		t.Error("expected error for garbage")
	}
}

func TestScheduleRejectsOffGridSlots(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Mia")
	task := createTask(t, db, "Read", 30, 10)

	for _, tm := range []string{"09:15", "06:30", "21:30", "junk"} {
		_, err := e.Schedule(child.ID, "2026-08-29", tm, task.ID)
		var is InvalidSlotError
		if !errors.As(err, &is) {
			t.Errorf("Schedule(%q): expected InvalidSlotError, got %v", tm, err)
		}
	}
}

func TestScheduleRejectsBadDate(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Leo")
	task := createTask(t, db, "Read", 30, 10)

	if _, err := e.Schedule(child.ID, "29-08-2026", "08:00", task.ID); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestScheduleUnknownChildAndTask(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Ana")
	task := createTask(t, db, "Read", 30, 10)

	_, err := e.Schedule(9999, "2026-08-29", "08:00", task.ID)
	var cnf ChildNotFoundError
	if !errors.As(err, &cnf) {
		t.Errorf("expected ChildNotFoundError, got %v", err)
	}

	_, err = e.Schedule(child.ID, "2026-08-29", "08:00", 9999)
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError for task, got %v", err)
	}
}

func TestScheduleOccupiedSlot(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Noa")
	task := createTask(t, db, "Read", 30, 10)
	other := createTask(t, db, "Draw", 30, 10)

	if _, err := e.Schedule(child.ID, "2026-08-29", "10:00", task.ID); err != nil {
		t.Fatalf("first schedule: %v", err)
	}

	_, err := e.Schedule(child.ID, "2026-08-29", "10:00", other.ID)
	var so SlotOccupiedError
	if !errors.As(err, &so) {
		t.Fatalf("expected SlotOccupiedError, got %v", err)
	}
	if so.Time != "10:00" || so.Date != "2026-08-29" {
		t.Errorf("error slot = %s %s, want 2026-08-29 10:00", so.Date, so.Time)
	}

	// Exactly one slot occupied on the grid
	slots, err := e.SlotsForDay(child.ID, "2026-08-29")
	if err != nil {
		t.Fatalf("slots for day: %v", err)
	}
	if len(slots) != 29 {
		t.Fatalf("expected 29 slots, got %d", len(slots))
	}
	occupied := 0
	for _, s := range slots {
		if s.Task != nil {
			occupied++
			if s.Time != "10:00" {
				t.Errorf("occupied slot at %q, want 10:00", s.Time)
			}
			if s.Task.Title != "Read" {
				t.Errorf("slot task title = %q, want Read", s.Task.Title)
			}
		}
	}
	if occupied != 1 {
		t.Errorf("occupied slots = %d, want 1", occupied)
	}
}

func TestUnschedule(t *testing.T) {
	e, db := newTestEngine(t)
	child := createChild(t, db, "Eli")
	task := createTask(t, db, "Read", 30, 10)

	st, _ := e.Schedule(child.ID, "2026-08-29", "11:00", task.ID)

	if err := e.Unschedule(st.ID); err != nil {
		t.Fatalf("unschedule: %v", err)
	}

	// The slot frees up immediately
	if _, err := e.Schedule(child.ID, "2026-08-29", "11:00", task.ID); err != nil {
		t.Errorf("reschedule freed slot: %v", err)
	}

	err := e.Unschedule(st.ID)
	var nf NotFoundError
	if !errors.As(err, &nf) {
		t.Errorf("expected NotFoundError on second unschedule, got %v", err)
	}
}

func TestSlotsForDayUnknownChild(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.SlotsForDay(9999, "2026-08-29")
	var cnf ChildNotFoundError
	if !errors.As(err, &cnf) {
		t.Errorf("expected ChildNotFoundError, got %v", err)
	}
}
