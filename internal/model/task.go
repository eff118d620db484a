package model

import (
	"math"
	"time"
)

const (
	DefaultStartingValue = 0
	DefaultTargetValue   = 100
)

type Task struct {
	ID            int64     `db:"id"`
	GoalID        int64     `db:"goal_id"`
	Name          string    `db:"name"`
	StartingValue float64   `db:"starting_value"`
	TargetValue   float64   `db:"target_value"`
	CurrentValue  float64   `db:"current_value"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// Progress returns the fraction of the way from StartingValue to TargetValue,
// clamped to [0, 1]. A task whose target equals its start is either done or not.
// Operands are halved so differences of large finite values cannot overflow.
func (t *Task) Progress() float64 {
	span := t.TargetValue/2 - t.StartingValue/2
	if span == 0 {
		if t.CurrentValue >= t.TargetValue {
			return 1
		}
		return 0
	}
	return clamp((t.CurrentValue/2 - t.StartingValue/2) / span)
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
