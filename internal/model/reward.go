package model

import "time"

// Reward belongs to one child and survives redemption, so it can be
// redeemed repeatedly as long as the child has the points.
type Reward struct {
	ID         int64     `json:"id"`
	ChildID    int64     `json:"child_id"`
	Title      string    `json:"title"`
	PointsCost int       `json:"points_cost"`
	Type       string    `json:"type"`
	Icon       string    `json:"icon"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	RewardTypeActivity   = "Activity"
	RewardTypePrivilege  = "Privilege"
	RewardTypeToy        = "Toy"
	RewardTypeTreat      = "Treat"
	RewardTypeExperience = "Experience"
)

var RewardTypes = []string{
	RewardTypeActivity,
	RewardTypePrivilege,
	RewardTypeToy,
	RewardTypeTreat,
	RewardTypeExperience,
}

func ValidRewardType(t string) bool {
	for _, v := range RewardTypes {
		if t == v {
			return true
		}
	}
	return false
}

// PresetReward is a catalog entry parents can clone into a child's rewards.
type PresetReward struct {
	Title      string `json:"title"`
	PointsCost int    `json:"points_cost"`
	Type       string `json:"type"`
	Icon       string `json:"icon"`
}

var PresetRewards = []PresetReward{
	{Title: "30min Extra Screen Time", PointsCost: 30, Type: RewardTypePrivilege, Icon: "📱"},
	{Title: "Choose Tonight's Dinner", PointsCost: 50, Type: RewardTypePrivilege, Icon: "🍽️"},
	{Title: "Stay Up 30min Later", PointsCost: 40, Type: RewardTypePrivilege, Icon: "🌙"},
	{Title: "Park Visit", PointsCost: 60, Type: RewardTypeActivity, Icon: "🏞️"},
	{Title: "Ice Cream Treat", PointsCost: 35, Type: RewardTypeTreat, Icon: "🍦"},
	{Title: "Movie Night Choice", PointsCost: 45, Type: RewardTypeActivity, Icon: "🎬"},
	{Title: "Extra Bedtime Story", PointsCost: 25, Type: RewardTypeActivity, Icon: "📚"},
	{Title: "Small Toy ($10)", PointsCost: 100, Type: RewardTypeToy, Icon: "🧸"},
}
