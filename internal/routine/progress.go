package routine

import (
	"fmt"
	"math"
	"time"
)

// StreakThreshold is the daily completion rate (percent) that keeps a streak
// alive.
const StreakThreshold = 80

// DayStat is one day's completion summary.
type DayStat struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
	Rate      int    `json:"rate"`
}

// Progress bundles everything the progress view renders for one child.
type Progress struct {
	Daily          []DayStat `json:"daily"`
	Overall        int       `json:"overall"`
	Streak         int       `json:"streak"`
	TotalCompleted int       `json:"total_completed"`
	TotalTasks     int       `json:"total_tasks"`
}

// DailyBreakdown summarizes the last windowDays calendar days ending at asOf
// inclusive, oldest first. Days with no scheduled tasks report rate 0.
func (e *Engine) DailyBreakdown(childID int64, windowDays int, asOf string) ([]DayStat, error) {
	if windowDays < 1 {
		return nil, fmt.Errorf("window must be at least 1 day, got %d", windowDays)
	}
	end, err := time.Parse(dateLayout, asOf)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", asOf, err)
	}

	child, err := e.children.GetByID(childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ChildNotFoundError{ChildID: childID}
	}

	stats := make([]DayStat, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i).Format(dateLayout)
		total, completed, err := e.scheduled.DayCounts(childID, day)
		if err != nil {
			return nil, err
		}
		stats = append(stats, DayStat{
			Date:      day,
			Completed: completed,
			Total:     total,
			Rate:      completionRate(completed, total),
		})
	}
	return stats, nil
}

// OverallRate is the all-time completion percentage across every scheduled
// task the child has ever had, 0 when none exist.
func (e *Engine) OverallRate(childID int64) (int, error) {
	child, err := e.children.GetByID(childID)
	if err != nil {
		return 0, err
	}
	if child == nil {
		return 0, ChildNotFoundError{ChildID: childID}
	}

	total, completed, err := e.scheduled.TotalCounts(childID)
	if err != nil {
		return 0, err
	}
	return completionRate(completed, total), nil
}

// CurrentStreak counts consecutive days, walking backward from asOf, whose
// completion rate meets StreakThreshold. An empty day has rate 0 and breaks
// the streak.
func (e *Engine) CurrentStreak(childID int64, windowDays int, asOf string) (int, error) {
	stats, err := e.DailyBreakdown(childID, windowDays, asOf)
	if err != nil {
		return 0, err
	}

	streak := 0
	for i := len(stats) - 1; i >= 0; i-- {
		if stats[i].Rate < StreakThreshold {
			break
		}
		streak++
	}
	return streak, nil
}

// ChildProgress computes the full progress payload in one call.
func (e *Engine) ChildProgress(childID int64, windowDays int, asOf string) (*Progress, error) {
	daily, err := e.DailyBreakdown(childID, windowDays, asOf)
	if err != nil {
		return nil, err
	}
	total, completed, err := e.scheduled.TotalCounts(childID)
	if err != nil {
		return nil, err
	}

	streak := 0
	for i := len(daily) - 1; i >= 0; i-- {
		if daily[i].Rate < StreakThreshold {
			break
		}
		streak++
	}

	return &Progress{
		Daily:          daily,
		Overall:        completionRate(completed, total),
		Streak:         streak,
		TotalCompleted: completed,
		TotalTasks:     total,
	}, nil
}

func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
