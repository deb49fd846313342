package model

import "time"

// Task is a reusable template. Scheduled instances reference it by id.
type Task struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Duration     int       `json:"duration"` // minutes
	Points       int       `json:"points"`
	Instructions string    `json:"instructions"`
	Icon         string    `json:"icon"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const (
	CategoryHealth     = "Health"
	CategoryLearning   = "Learning"
	CategoryChores     = "Chores"
	CategoryCreativity = "Creativity"
	CategoryFreeTime   = "Free Time"
)

// Categories lists the valid task categories in display order.
var Categories = []string{
	CategoryHealth,
	CategoryLearning,
	CategoryChores,
	CategoryCreativity,
	CategoryFreeTime,
}

func ValidCategory(c string) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}
