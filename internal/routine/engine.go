// Package routine implements the daily schedule and progress engine: slot
// allocation, current/next task resolution, status transitions with point
// awards, reward redemption, and completion statistics.
package routine

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/apper-canvas/kidroutine/internal/model"
	"github.com/apper-canvas/kidroutine/internal/store"
)

const (
	// DefaultTaskPoints is awarded when a scheduled task's template is gone
	// or carries no point value.
	DefaultTaskPoints = 10

	// DefaultTaskDuration (minutes) stands in for a missing template duration.
	DefaultTaskDuration = 30
)

type Engine struct {
	db        *sql.DB
	children  *store.ChildStore
	tasks     *store.TaskStore
	scheduled *store.ScheduledTaskStore
	rewards   *store.RewardStore
	logger    *slog.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New(db *sql.DB, logger *slog.Logger) *Engine {
	return &Engine{
		db:        db,
		children:  store.NewChildStore(db),
		tasks:     store.NewTaskStore(db),
		scheduled: store.NewScheduledTaskStore(db),
		rewards:   store.NewRewardStore(db),
		logger:    logger,
		locks:     make(map[int64]*sync.Mutex),
	}
}

// childLock returns the mutex serializing point-mutating operations for one
// child, so two sessions acting on the same child cannot interleave a
// read-modify-write.
func (e *Engine) childLock(childID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[childID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[childID] = l
	}
	return l
}

// SetStatus writes a new status to a scheduled task. On the transition into
// completed from any other status, the owning child is credited the task's
// points in the same transaction. Re-completing an already completed task
// changes nothing and awards nothing.
func (e *Engine) SetStatus(id int64, status string) (*model.ScheduledTask, error) {
	if !model.ValidStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}

	st, err := e.scheduled.GetByID(id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, NotFoundError{Kind: "scheduled task", ID: id}
	}

	lock := e.childLock(st.ChildID)
	lock.Lock()
	defer lock.Unlock()

	var updated *model.ScheduledTask
	err = store.WithTx(e.db, func(tx *sql.Tx) error {
		cur, err := e.scheduled.GetTx(tx, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return NotFoundError{Kind: "scheduled task", ID: id}
		}

		if err := e.scheduled.UpdateStatusTx(tx, id, status); err != nil {
			return err
		}

		if status == model.StatusCompleted && cur.Status != model.StatusCompleted {
			child, err := e.children.GetTx(tx, cur.ChildID)
			if err != nil {
				return err
			}
			if child == nil {
				return NotFoundError{Kind: "child", ID: cur.ChildID}
			}

			points := DefaultTaskPoints
			task, err := e.tasks.GetTx(tx, cur.TaskID)
			if err != nil {
				return err
			}
			if task != nil && task.Points > 0 {
				points = task.Points
			}

			if err := e.children.AddPointsTx(tx, child.ID, points); err != nil {
				return err
			}
			e.logger.Info("points awarded",
				"child_id", child.ID, "scheduled_task_id", id, "points", points)
		}

		cur.Status = status
		updated = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RedeemReward debits the reward's cost from the child's balance. The reward
// itself persists and can be redeemed again.
func (e *Engine) RedeemReward(childID, rewardID int64) (*model.Child, error) {
	lock := e.childLock(childID)
	lock.Lock()
	defer lock.Unlock()

	var updated *model.Child
	err := store.WithTx(e.db, func(tx *sql.Tx) error {
		child, err := e.children.GetTx(tx, childID)
		if err != nil {
			return err
		}
		if child == nil {
			return ChildNotFoundError{ChildID: childID}
		}

		reward, err := e.rewards.GetTx(tx, rewardID)
		if err != nil {
			return err
		}
		if reward == nil || reward.ChildID != childID {
			return NotFoundError{Kind: "reward", ID: rewardID}
		}

		if child.Points < reward.PointsCost {
			return InsufficientPointsError{Balance: child.Points, Cost: reward.PointsCost}
		}

		if err := e.children.AddPointsTx(tx, childID, -reward.PointsCost); err != nil {
			return err
		}
		e.logger.Info("reward redeemed",
			"child_id", childID, "reward_id", rewardID, "cost", reward.PointsCost)

		updated = child
		updated.Points -= reward.PointsCost
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ResetPoints zeroes the child's balance unconditionally.
func (e *Engine) ResetPoints(childID int64) (*model.Child, error) {
	lock := e.childLock(childID)
	lock.Lock()
	defer lock.Unlock()

	var updated *model.Child
	err := store.WithTx(e.db, func(tx *sql.Tx) error {
		child, err := e.children.GetTx(tx, childID)
		if err != nil {
			return err
		}
		if child == nil {
			return ChildNotFoundError{ChildID: childID}
		}
		if err := e.children.SetPointsTx(tx, childID, 0); err != nil {
			return err
		}
		child.Points = 0
		updated = child
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
