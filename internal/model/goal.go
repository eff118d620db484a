package model

import (
	"time"
)

type Goal struct {
	ID        int64     `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// GoalFilter narrows goal listings. Zero value matches every goal.
type GoalFilter struct {
	NameContains string
}

// Progress is the mean completion of tasks, each weighted equally.
// A goal without tasks has no progress.
func Progress(tasks []*Task) float64 {
	if len(tasks) == 0 {
		return 0
	}

	var sum float64
	for _, t := range tasks {
		sum += t.Progress()
	}
	return sum / float64(len(tasks))
}
