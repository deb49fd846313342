package store

import (
	"database/sql"
	"fmt"

	"github.com/apper-canvas/kidroutine/internal/model"
)

type ChildStore struct {
	db *sql.DB
}

func NewChildStore(db *sql.DB) *ChildStore {
	return &ChildStore{db: db}
}

func scanChild(scanner interface{ Scan(...any) error }) (*model.Child, error) {
	var c model.Child
	err := scanner.Scan(&c.ID, &c.Name, &c.Age, &c.Avatar, &c.Points, &c.HasPIN, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const childCols = `id, name, age, avatar, points, pin IS NOT NULL, created_at, updated_at`

func (s *ChildStore) Create(name string, age int, avatar string) (*model.Child, error) {
	result, err := s.db.Exec(
		`INSERT INTO children (name, age, avatar) VALUES (?, ?, ?)`,
		name, age, avatar,
	)
	if err != nil {
		return nil, fmt.Errorf("insert child: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ChildStore) List() ([]model.Child, error) {
	rows, err := s.db.Query(`SELECT ` + childCols + ` FROM children ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var children []model.Child
	for rows.Next() {
		c, err := scanChild(rows)
		if err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, *c)
	}
	return children, rows.Err()
}

func (s *ChildStore) GetByID(id int64) (*model.Child, error) {
	row := s.db.QueryRow(`SELECT `+childCols+` FROM children WHERE id = ?`, id)
	c, err := scanChild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	return c, nil
}

// GetTx reads a child inside an engine transaction.
func (s *ChildStore) GetTx(q querier, id int64) (*model.Child, error) {
	row := q.QueryRow(`SELECT `+childCols+` FROM children WHERE id = ?`, id)
	c, err := scanChild(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get child: %w", err)
	}
	return c, nil
}

func (s *ChildStore) Update(id int64, name string, age int, avatar string) (*model.Child, error) {
	_, err := s.db.Exec(
		`UPDATE children SET name = ?, age = ?, avatar = ?, updated_at = datetime('now') WHERE id = ?`,
		name, age, avatar, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update child: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a child, returning sql.ErrNoRows when no row had that id.
// Scheduled tasks and rewards cascade in the schema.
func (s *ChildStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM children WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete child: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete child: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddPointsTx adjusts a child's point balance by delta. Negative deltas must
// be balance-checked by the caller before the write.
func (s *ChildStore) AddPointsTx(q querier, id int64, delta int) error {
	_, err := q.Exec(
		`UPDATE children SET points = points + ?, updated_at = datetime('now') WHERE id = ?`,
		delta, id,
	)
	if err != nil {
		return fmt.Errorf("adjust points: %w", err)
	}
	return nil
}

func (s *ChildStore) SetPointsTx(q querier, id int64, points int) error {
	_, err := q.Exec(
		`UPDATE children SET points = ?, updated_at = datetime('now') WHERE id = ?`,
		points, id,
	)
	if err != nil {
		return fmt.Errorf("set points: %w", err)
	}
	return nil
}

// --- PIN methods ---

func (s *ChildStore) SetPIN(id int64, hash string) error {
	_, err := s.db.Exec(`UPDATE children SET pin = ?, updated_at = datetime('now') WHERE id = ?`, hash, id)
	if err != nil {
		return fmt.Errorf("set pin: %w", err)
	}
	return nil
}

func (s *ChildStore) ClearPIN(id int64) error {
	_, err := s.db.Exec(`UPDATE children SET pin = NULL, updated_at = datetime('now') WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("clear pin: %w", err)
	}
	return nil
}

// GetPINHash returns the stored bcrypt hash, or "" when no PIN is set.
func (s *ChildStore) GetPINHash(id int64) (string, error) {
	var hash sql.NullString
	err := s.db.QueryRow(`SELECT pin FROM children WHERE id = ?`, id).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get pin: %w", err)
	}
	return hash.String, nil
}
