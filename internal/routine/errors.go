package routine

import "fmt"

// NotFoundError reports a missing entity by kind and id.
type NotFoundError struct {
	Kind string
	ID   int64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// ChildNotFoundError reports an operation addressed to an unknown child.
type ChildNotFoundError struct {
	ChildID int64
}

func (e ChildNotFoundError) Error() string {
	return fmt.Sprintf("child %d not found", e.ChildID)
}

// SlotOccupiedError reports an attempt to double-book a time slot.
type SlotOccupiedError struct {
	ChildID int64
	Date    string
	Time    string
}

func (e SlotOccupiedError) Error() string {
	return fmt.Sprintf("slot %s %s is already taken for child %d", e.Date, e.Time, e.ChildID)
}

// InvalidSlotError reports a time that is not on the slot grid.
type InvalidSlotError struct {
	Time string
}

func (e InvalidSlotError) Error() string {
	return fmt.Sprintf("%q is not a valid time slot", e.Time)
}

// InsufficientPointsError reports a redemption exceeding the child's balance.
type InsufficientPointsError struct {
	Balance int
	Cost    int
}

func (e InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: have %d, need %d", e.Balance, e.Cost)
}
