package service

import (
	"context"
	"time"

	"github.com/templui/goalgraph/internal/model"
)

// GoalSnapshot is a goal with its tasks and progress as of one read.
type GoalSnapshot struct {
	ID        int64         `json:"id"`
	OwnerID   string        `json:"ownerId"`
	OwnerName string        `json:"ownerName"`
	Name      string        `json:"name"`
	Progress  float64       `json:"progress"`
	CreatedAt time.Time     `json:"createdAt"`
	Tasks     []TaskSummary `json:"tasks"`
}

type TaskSummary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	StartingValue float64 `json:"startingValue"`
	TargetValue   float64 `json:"targetValue"`
	CurrentValue  float64 `json:"currentValue"`
	Progress      float64 `json:"progress"`
}

// Snapshot reads every goal matching filter together with its tasks and the
// owner's full name.
func (s *GoalService) Snapshot(ctx context.Context, filter model.GoalFilter, owners *UserService) ([]GoalSnapshot, error) {
	goals, err := s.Goals(ctx, filter, 0, 0)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}
	tasksByGoal, err := s.TasksByGoal(ctx, ids)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string)
	snapshots := make([]GoalSnapshot, 0, len(goals))
	for _, g := range goals {
		name, ok := names[g.OwnerID]
		if !ok {
			owner, err := owners.ByID(ctx, g.OwnerID)
			if err != nil {
				return nil, err
			}
			name = owner.FullName()
			names[g.OwnerID] = name
		}

		tasks := tasksByGoal[g.ID]
		snap := GoalSnapshot{
			ID:        g.ID,
			OwnerID:   g.OwnerID,
			OwnerName: name,
			Name:      g.Name,
			Progress:  model.Progress(tasks),
			CreatedAt: g.CreatedAt.UTC(),
			Tasks:     make([]TaskSummary, 0, len(tasks)),
		}
		for _, t := range tasks {
			snap.Tasks = append(snap.Tasks, TaskSummary{
				ID:            t.ID,
				Name:          t.Name,
				StartingValue: t.StartingValue,
				TargetValue:   t.TargetValue,
				CurrentValue:  t.CurrentValue,
				Progress:      t.Progress(),
			})
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, nil
}
