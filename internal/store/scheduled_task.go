package store

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/apper-canvas/kidroutine/internal/model"
)

// ErrSlotTaken reports an insert that collided with the (child_id, date, time)
// unique index. The index is the single arbiter of slot ownership, so even
// racing writers get this instead of a raw driver error.
var ErrSlotTaken = errors.New("slot already taken")

type ScheduledTaskStore struct {
	db *sql.DB
}

func NewScheduledTaskStore(db *sql.DB) *ScheduledTaskStore {
	return &ScheduledTaskStore{db: db}
}

func scanScheduledTask(scanner interface{ Scan(...any) error }) (*model.ScheduledTask, error) {
	var st model.ScheduledTask
	err := scanner.Scan(&st.ID, &st.TaskID, &st.ChildID, &st.Date, &st.Time, &st.Status, &st.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

const scheduledTaskCols = `id, task_id, child_id, date, time, status, created_at`

// Create inserts a pending scheduled task, returning ErrSlotTaken when the
// slot is already booked.
func (s *ScheduledTaskStore) Create(taskID, childID int64, date, tm string) (*model.ScheduledTask, error) {
	result, err := s.db.Exec(
		`INSERT INTO scheduled_tasks (task_id, child_id, date, time) VALUES (?, ?, ?, ?)`,
		taskID, childID, date, tm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("insert scheduled task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ScheduledTaskStore) GetByID(id int64) (*model.ScheduledTask, error) {
	row := s.db.QueryRow(`SELECT `+scheduledTaskCols+` FROM scheduled_tasks WHERE id = ?`, id)
	st, err := scanScheduledTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get scheduled task: %w", err)
	}
	return st, nil
}

// GetTx reads a scheduled task inside an engine transaction.
func (s *ScheduledTaskStore) GetTx(q querier, id int64) (*model.ScheduledTask, error) {
	row := q.QueryRow(`SELECT `+scheduledTaskCols+` FROM scheduled_tasks WHERE id = ?`, id)
	st, err := scanScheduledTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get scheduled task: %w", err)
	}
	return st, nil
}

func (s *ScheduledTaskStore) GetBySlot(childID int64, date, tm string) (*model.ScheduledTask, error) {
	row := s.db.QueryRow(
		`SELECT `+scheduledTaskCols+` FROM scheduled_tasks WHERE child_id = ? AND date = ? AND time = ?`,
		childID, date, tm,
	)
	st, err := scanScheduledTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get slot: %w", err)
	}
	return st, nil
}

func (s *ScheduledTaskStore) ListByChild(childID int64) ([]model.ScheduledTask, error) {
	rows, err := s.db.Query(
		`SELECT `+scheduledTaskCols+` FROM scheduled_tasks WHERE child_id = ? ORDER BY date ASC, time ASC, id ASC`,
		childID,
	)
	if err != nil {
		return nil, fmt.Errorf("list scheduled tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.ScheduledTask
	for rows.Next() {
		st, err := scanScheduledTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled task: %w", err)
		}
		tasks = append(tasks, *st)
	}
	return tasks, rows.Err()
}

func (s *ScheduledTaskStore) ListByChildAndDate(childID int64, date string) ([]model.ScheduledTask, error) {
	rows, err := s.db.Query(
		`SELECT `+scheduledTaskCols+` FROM scheduled_tasks WHERE child_id = ? AND date = ? ORDER BY time ASC, id ASC`,
		childID, date,
	)
	if err != nil {
		return nil, fmt.Errorf("list scheduled tasks by date: %w", err)
	}
	defer rows.Close()

	var tasks []model.ScheduledTask
	for rows.Next() {
		st, err := scanScheduledTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan scheduled task: %w", err)
		}
		tasks = append(tasks, *st)
	}
	return tasks, rows.Err()
}

func (s *ScheduledTaskStore) UpdateStatusTx(q querier, id int64, status string) error {
	_, err := q.Exec(`UPDATE scheduled_tasks SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

// Delete removes a scheduled task, returning sql.ErrNoRows when no row had
// that id.
func (s *ScheduledTaskStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM scheduled_tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete scheduled task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete scheduled task: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	return errors.As(err, &se) && se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}

// DayCounts returns the total and completed scheduled-task counts for one
// child on one calendar day.
func (s *ScheduledTaskStore) DayCounts(childID int64, date string) (total, completed int, err error) {
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0)
		 FROM scheduled_tasks WHERE child_id = ? AND date = ?`,
		childID, date,
	).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("day counts: %w", err)
	}
	return total, completed, nil
}

// TotalCounts returns all-time total and completed counts for one child.
func (s *ScheduledTaskStore) TotalCounts(childID int64) (total, completed int, err error) {
	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0)
		 FROM scheduled_tasks WHERE child_id = ?`,
		childID,
	).Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("total counts: %w", err)
	}
	return total, completed, nil
}
