package store

import (
	"database/sql"
	"fmt"

	"github.com/apper-canvas/kidroutine/internal/model"
)

type RewardStore struct {
	db *sql.DB
}

func NewRewardStore(db *sql.DB) *RewardStore {
	return &RewardStore{db: db}
}

func scanReward(scanner interface{ Scan(...any) error }) (*model.Reward, error) {
	var r model.Reward
	err := scanner.Scan(&r.ID, &r.ChildID, &r.Title, &r.PointsCost, &r.Type, &r.Icon, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const rewardCols = `id, child_id, title, points_cost, type, icon, created_at`

func (s *RewardStore) Create(childID int64, title string, pointsCost int, rewardType, icon string) (*model.Reward, error) {
	result, err := s.db.Exec(
		`INSERT INTO rewards (child_id, title, points_cost, type, icon) VALUES (?, ?, ?, ?, ?)`,
		childID, title, pointsCost, rewardType, icon,
	)
	if err != nil {
		return nil, fmt.Errorf("insert reward: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *RewardStore) GetByID(id int64) (*model.Reward, error) {
	row := s.db.QueryRow(`SELECT `+rewardCols+` FROM rewards WHERE id = ?`, id)
	r, err := scanReward(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward: %w", err)
	}
	return r, nil
}

// GetTx reads a reward inside an engine transaction.
func (s *RewardStore) GetTx(q querier, id int64) (*model.Reward, error) {
	row := q.QueryRow(`SELECT `+rewardCols+` FROM rewards WHERE id = ?`, id)
	r, err := scanReward(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward: %w", err)
	}
	return r, nil
}

func (s *RewardStore) ListByChild(childID int64) ([]model.Reward, error) {
	rows, err := s.db.Query(
		`SELECT `+rewardCols+` FROM rewards WHERE child_id = ? ORDER BY points_cost ASC, title ASC`,
		childID,
	)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}
	defer rows.Close()

	var rewards []model.Reward
	for rows.Next() {
		r, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reward: %w", err)
		}
		rewards = append(rewards, *r)
	}
	return rewards, rows.Err()
}

func (s *RewardStore) Update(id int64, title string, pointsCost int, rewardType, icon string) (*model.Reward, error) {
	_, err := s.db.Exec(
		`UPDATE rewards SET title = ?, points_cost = ?, type = ?, icon = ? WHERE id = ?`,
		title, pointsCost, rewardType, icon, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update reward: %w", err)
	}
	return s.GetByID(id)
}

func (s *RewardStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM rewards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete reward: %w", err)
	}
	return nil
}
