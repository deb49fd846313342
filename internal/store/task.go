package store

import (
	"database/sql"
	"fmt"

	"github.com/apper-canvas/kidroutine/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	err := scanner.Scan(
		&t.ID, &t.Title, &t.Category, &t.Duration, &t.Points,
		&t.Instructions, &t.Icon, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

const taskCols = `id, title, category, duration, points, instructions, icon, created_at, updated_at`

func (s *TaskStore) Create(title, category string, duration, points int, instructions, icon string) (*model.Task, error) {
	result, err := s.db.Exec(
		`INSERT INTO tasks (title, category, duration, points, instructions, icon) VALUES (?, ?, ?, ?, ?, ?)`,
		title, category, duration, points, instructions, icon,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) GetByID(id int64) (*model.Task, error) {
	row := s.db.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// GetTx reads a task template inside an engine transaction.
func (s *TaskStore) GetTx(q querier, id int64) (*model.Task, error) {
	row := q.QueryRow(`SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (s *TaskStore) List() ([]model.Task, error) {
	rows, err := s.db.Query(`SELECT ` + taskCols + ` FROM tasks ORDER BY category ASC, title ASC`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) ListByCategory(category string) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks WHERE category = ? ORDER BY title ASC`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks by category: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (s *TaskStore) Update(id int64, title, category string, duration, points int, instructions, icon string) (*model.Task, error) {
	_, err := s.db.Exec(
		`UPDATE tasks SET title = ?, category = ?, duration = ?, points = ?, instructions = ?, icon = ?, updated_at = datetime('now') WHERE id = ?`,
		title, category, duration, points, instructions, icon, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetByID(id)
}

func (s *TaskStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
