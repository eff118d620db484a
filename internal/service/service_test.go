package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalgraph/internal/db/dbtest"
	"github.com/templui/goalgraph/internal/model"
	"github.com/templui/goalgraph/internal/repository"
)

type fixture struct {
	db    *sqlx.DB
	goals *GoalService
	tasks *TaskService
	users *UserService
	owner *model.User
}

func newFixture(t *testing.T, enforceOwnership bool) *fixture {
	t.Helper()

	database := dbtest.New(t)
	goalRepo := repository.NewGoalRepository(database)
	taskRepo := repository.NewTaskRepository(database)
	users := NewUserService(repository.NewUserRepository(database))

	owner, err := users.Create(context.Background(), "owner@example.com", "Olive", "Owner")
	if err != nil {
		t.Fatalf("failed to create owner: %v", err)
	}

	return &fixture{
		db:    database,
		goals: NewGoalService(database, goalRepo, taskRepo),
		tasks: NewTaskService(database, taskRepo, goalRepo, enforceOwnership),
		users: users,
		owner: owner,
	}
}

// goalProgress reloads a goal's tasks and returns its derived progress.
func (f *fixture) goalProgress(t *testing.T, goalID int64) float64 {
	t.Helper()

	tasks, err := f.goals.Tasks(context.Background(), goalID)
	if err != nil {
		t.Fatalf("Tasks failed: %v", err)
	}
	return model.Progress(tasks)
}

func ptr(v float64) *float64 { return &v }

// failingTaskRepo fails every Create after the first `allow` calls.
type failingTaskRepo struct {
	repository.TaskRepository
	allow   int
	created *int
}

func (r *failingTaskRepo) WithTx(tx *sqlx.Tx) repository.TaskRepository {
	return &failingTaskRepo{TaskRepository: r.TaskRepository.WithTx(tx), allow: r.allow, created: r.created}
}

func (r *failingTaskRepo) Create(ctx context.Context, task *model.Task) error {
	if *r.created >= r.allow {
		return errors.New("disk full")
	}
	*r.created++
	return r.TaskRepository.Create(ctx, task)
}

func TestCreateGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("task defaults", func(t *testing.T) {
		f := newFixture(t, false)

		goal, tasks, err := f.goals.Create(ctx, f.owner.ID, CreateGoalInput{
			Name:  "G1",
			Tasks: []TaskSpec{{Name: "T1"}},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if goal.ID == 0 || goal.OwnerID != f.owner.ID || goal.Name != "G1" {
			t.Errorf("unexpected goal: %+v", goal)
		}
		if len(tasks) != 1 {
			t.Fatalf("expected 1 task, got %d", len(tasks))
		}

		stored, err := f.goals.Tasks(ctx, goal.ID)
		if err != nil {
			t.Fatalf("Tasks failed: %v", err)
		}
		if len(stored) != 1 {
			t.Fatalf("expected 1 stored task, got %d", len(stored))
		}
		task := stored[0]
		if task.Name != "T1" || task.StartingValue != 0 || task.TargetValue != 100 || task.CurrentValue != 0 {
			t.Errorf("unexpected task defaults: %+v", task)
		}
	})

	t.Run("current value starts at starting value", func(t *testing.T) {
		f := newFixture(t, false)

		goal, _, err := f.goals.Create(ctx, f.owner.ID, CreateGoalInput{
			Name: "Lose weight",
			Tasks: []TaskSpec{
				{Name: "kg", StartingValue: ptr(90), TargetValue: ptr(80)},
				{Name: "runs", TargetValue: ptr(10)},
			},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		stored, err := f.goals.Tasks(ctx, goal.ID)
		if err != nil {
			t.Fatalf("Tasks failed: %v", err)
		}
		if stored[0].CurrentValue != 90 || stored[0].TargetValue != 80 {
			t.Errorf("unexpected first task: %+v", stored[0])
		}
		if stored[1].StartingValue != 0 || stored[1].CurrentValue != 0 || stored[1].TargetValue != 10 {
			t.Errorf("unexpected second task: %+v", stored[1])
		}

		if progress := f.goalProgress(t, goal.ID); progress != 0 {
			t.Errorf("new goal progress = %v, want 0", progress)
		}
	})

	t.Run("goal without tasks", func(t *testing.T) {
		f := newFixture(t, false)

		goal, tasks, err := f.goals.Create(ctx, f.owner.ID, CreateGoalInput{Name: "Someday"})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if len(tasks) != 0 {
			t.Errorf("expected no tasks, got %d", len(tasks))
		}
		if progress := f.goalProgress(t, goal.ID); progress != 0 {
			t.Errorf("goal progress = %v, want 0", progress)
		}
	})

	t.Run("validation errors write nothing", func(t *testing.T) {
		f := newFixture(t, false)

		inputs := []struct {
			name  string
			input CreateGoalInput
			field string
		}{
			{"empty name", CreateGoalInput{Name: "", Tasks: []TaskSpec{{Name: "T1"}}}, "name"},
			{"blank name", CreateGoalInput{Name: "   "}, "name"},
			{"task without name", CreateGoalInput{Name: "G", Tasks: []TaskSpec{{Name: "ok"}, {Name: ""}}}, "tasks[1].name"},
			{"non-finite target", CreateGoalInput{Name: "G", Tasks: []TaskSpec{{Name: "T", TargetValue: ptr(math.Inf(1))}}}, "tasks[0].targetValue"},
			{"non-finite start", CreateGoalInput{Name: "G", Tasks: []TaskSpec{{Name: "T", StartingValue: ptr(math.NaN())}}}, "tasks[0].startingValue"},
		}

		for _, tt := range inputs {
			t.Run(tt.name, func(t *testing.T) {
				_, _, err := f.goals.Create(ctx, f.owner.ID, tt.input)

				var validationErr *ValidationError
				if !errors.As(err, &validationErr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if validationErr.Field != tt.field {
					t.Errorf("Field = %q, want %q", validationErr.Field, tt.field)
				}
			})
		}

		if n := dbtest.Count(t, f.db, "goals"); n != 0 {
			t.Errorf("expected no goals, got %d", n)
		}
		if n := dbtest.Count(t, f.db, "tasks"); n != 0 {
			t.Errorf("expected no tasks, got %d", n)
		}
	})

	t.Run("requires owner", func(t *testing.T) {
		f := newFixture(t, false)

		_, _, err := f.goals.Create(ctx, "", CreateGoalInput{Name: "G"})
		if !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("expected ErrUnauthenticated, got %v", err)
		}
	})

	t.Run("task failure rolls back goal", func(t *testing.T) {
		f := newFixture(t, false)

		created := 0
		goals := NewGoalService(f.db,
			repository.NewGoalRepository(f.db),
			&failingTaskRepo{TaskRepository: repository.NewTaskRepository(f.db), allow: 1, created: &created},
		)

		_, _, err := goals.Create(ctx, f.owner.ID, CreateGoalInput{
			Name:  "Doomed",
			Tasks: []TaskSpec{{Name: "first"}, {Name: "second"}},
		})

		var storageErr *StorageError
		if !errors.As(err, &storageErr) {
			t.Fatalf("expected StorageError, got %v", err)
		}
		if created != 1 {
			t.Errorf("expected first task insert to run, created = %d", created)
		}
		if n := dbtest.Count(t, f.db, "goals"); n != 0 {
			t.Errorf("expected goal insert rolled back, got %d goals", n)
		}
		if n := dbtest.Count(t, f.db, "tasks"); n != 0 {
			t.Errorf("expected no orphan tasks, got %d", n)
		}
	})

	t.Run("unknown owner is a storage error", func(t *testing.T) {
		f := newFixture(t, false)

		_, _, err := f.goals.Create(ctx, "ghost", CreateGoalInput{Name: "G", Tasks: []TaskSpec{{Name: "T"}}})

		var storageErr *StorageError
		if !errors.As(err, &storageErr) {
			t.Fatalf("expected StorageError, got %v", err)
		}
		if n := dbtest.Count(t, f.db, "tasks"); n != 0 {
			t.Errorf("expected no tasks, got %d", n)
		}
	})
}

func TestUpdateTaskProgress(t *testing.T) {
	ctx := context.Background()

	t.Run("updates one task and returns parent goal", func(t *testing.T) {
		f := newFixture(t, false)

		goal, tasks, err := f.goals.Create(ctx, f.owner.ID, CreateGoalInput{
			Name:  "G1",
			Tasks: []TaskSpec{{Name: "T1"}, {Name: "T2"}},
		})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		before, err := f.goals.ByID(ctx, goal.ID)
		if err != nil {
			t.Fatalf("ByID failed: %v", err)
		}

		parent, err := f.tasks.UpdateProgress(ctx, f.owner.ID, tasks[0].ID, 50)
		if err != nil {
			t.Fatalf("UpdateProgress failed: %v", err)
		}
		if parent.ID != goal.ID {
			t.Errorf("returned goal %d, want %d", parent.ID, goal.ID)
		}

		t1, err := f.tasks.ByID(ctx, tasks[0].ID)
		if err != nil {
			t.Fatalf("ByID failed: %v", err)
		}
		if t1.CurrentValue != 50 || t1.Progress() != 0.5 {
			t.Errorf("task after update: %+v progress %v", t1, t1.Progress())
		}

		t2, err := f.tasks.ByID(ctx, tasks[1].ID)
		if err != nil {
			t.Fatalf("ByID failed: %v", err)
		}
		if t2.CurrentValue != 0 {
			t.Errorf("sibling task changed: %+v", t2)
		}

		after, err := f.goals.ByID(ctx, goal.ID)
		if err != nil {
			t.Fatalf("ByID failed: %v", err)
		}
		if !after.UpdatedAt.Equal(before.UpdatedAt) {
			t.Errorf("goal row was touched: %v -> %v", before.UpdatedAt, after.UpdatedAt)
		}

		if progress := f.goalProgress(t, goal.ID); progress != 0.25 {
			t.Errorf("goal progress = %v, want 0.25", progress)
		}
	})

	t.Run("values are stored unclamped", func(t *testing.T) {
		f := newFixture(t, false)

		_, tasks, err := f.goals.Create(ctx, f.owner.ID, CreateGoalInput{Name: "G", Tasks: []TaskSpec{{Name: "T"}}})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		_, err = f.tasks.UpdateProgress(ctx, f.owner.ID, tasks[0].ID, 250)
		if err != nil {
			t.Fatalf("UpdateProgress failed: %v", err)
		}
		task, err := f.tasks.ByID(ctx, tasks[0].ID)
		if err != nil {
			t.Fatalf("ByID failed: %v", err)
		}
		if task.CurrentValue != 250 || task.Progress() != 1 {
			t.Errorf("expected raw 250 with clamped progress 1, got %+v", task)
		}
	})

	t.Run("unknown task", func(t *testing.T) {
		f := newFixture(t, false)

		_, tasks, err := f.goals.Create(ctx, f.owner.ID, CreateGoalInput{Name: "G", Tasks: []TaskSpec{{Name: "T"}}})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		_, err = f.tasks.UpdateProgress(ctx, f.owner.ID, 9999, 10)

		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}
		if !errors.Is(err, repository.ErrTaskNotFound) {
			t.Errorf("expected NotFoundError to wrap ErrTaskNotFound")
		}

		task, err := f.tasks.ByID(ctx, tasks[0].ID)
		if err != nil {
			t.Fatalf("ByID failed: %v", err)
		}
		if task.CurrentValue != 0 {
			t.Errorf("existing task changed: %+v", task)
		}
	})

	t.Run("rejects non-finite value", func(t *testing.T) {
		f := newFixture(t, false)

		_, err := f.tasks.UpdateProgress(ctx, f.owner.ID, 1, math.NaN())

		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("non-owner allowed by default", func(t *testing.T) {
		f := newFixture(t, false)

		other, err := f.users.Create(ctx, "other@example.com", "Otto", "Other")
		if err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
		_, tasks, err := f.goals.Create(ctx, f.owner.ID, CreateGoalInput{Name: "G", Tasks: []TaskSpec{{Name: "T"}}})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		_, err = f.tasks.UpdateProgress(ctx, other.ID, tasks[0].ID, 10)
		if err != nil {
			t.Fatalf("expected update by non-owner to succeed, got %v", err)
		}
	})

	t.Run("non-owner rejected when enforced", func(t *testing.T) {
		f := newFixture(t, true)

		other, err := f.users.Create(ctx, "other@example.com", "Otto", "Other")
		if err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
		_, tasks, err := f.goals.Create(ctx, f.owner.ID, CreateGoalInput{Name: "G", Tasks: []TaskSpec{{Name: "T"}}})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		_, err = f.tasks.UpdateProgress(ctx, other.ID, tasks[0].ID, 10)
		var notFound *NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("expected NotFoundError, got %v", err)
		}

		task, err := f.tasks.ByID(ctx, tasks[0].ID)
		if err != nil {
			t.Fatalf("ByID failed: %v", err)
		}
		if task.CurrentValue != 0 {
			t.Errorf("foreign task changed: %+v", task)
		}

		_, err = f.tasks.UpdateProgress(ctx, f.owner.ID, tasks[0].ID, 10)
		if err != nil {
			t.Errorf("owner update failed: %v", err)
		}
	})
}

func TestListGoals(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	for _, name := range []string{"ABCdef", "xyz", "the abc book"} {
		_, _, err := f.goals.Create(ctx, f.owner.ID, CreateGoalInput{Name: name})
		if err != nil {
			t.Fatalf("Create %q failed: %v", name, err)
		}
	}

	goals, err := f.goals.Goals(ctx, model.GoalFilter{NameContains: "abc"}, 0, 0)
	if err != nil {
		t.Fatalf("Goals failed: %v", err)
	}
	if len(goals) != 2 || goals[0].Name != "ABCdef" || goals[1].Name != "the abc book" {
		t.Errorf("unexpected filtered goals: %+v", goals)
	}

	all, err := f.goals.Goals(ctx, model.GoalFilter{}, 0, 0)
	if err != nil {
		t.Fatalf("Goals failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 goals, got %d", len(all))
	}

	count, err := f.goals.CountGoals(ctx, model.GoalFilter{NameContains: "ABC"})
	if err != nil || count != 2 {
		t.Errorf("CountGoals = %d, %v; want 2", count, err)
	}

	byGoal, err := f.goals.TasksByGoal(ctx, []int64{all[0].ID, all[1].ID})
	if err != nil {
		t.Fatalf("TasksByGoal failed: %v", err)
	}
	if tasks, ok := byGoal[all[0].ID]; !ok || len(tasks) != 0 {
		t.Errorf("expected empty task slice for goal without tasks, got %v (present %v)", tasks, ok)
	}

	_, err = f.goals.ByID(ctx, 9999)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, err := f.users.Create(ctx, "OWNER@example.com ", "", "")
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists for normalized duplicate, got %v", err)
	}

	_, err = f.users.Create(ctx, "bad", "", "")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) || validationErr.Field != "email" {
		t.Errorf("expected email ValidationError, got %v", err)
	}

	got, err := f.users.ByID(ctx, f.owner.ID)
	if err != nil {
		t.Fatalf("ByID failed: %v", err)
	}
	if got.FullName() != "Olive Owner" {
		t.Errorf("FullName = %q", got.FullName())
	}

	byEmail, err := f.users.ByEmail(ctx, " Owner@Example.com")
	if err != nil || byEmail.ID != f.owner.ID {
		t.Errorf("ByEmail = %v, %v", byEmail, err)
	}

	_, err = f.users.ByEmail(ctx, "nobody@example.com")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	auth := NewAuthService(f.users, "test-secret-test-secret-test-secret", 0)

	t.Run("round trip", func(t *testing.T) {
		auth := NewAuthService(f.users, "test-secret-test-secret-test-secret", time.Hour)
		token, err := auth.GenerateJWT(f.owner)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}
		user, err := auth.Authenticate(ctx, token)
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if user.ID != f.owner.ID {
			t.Errorf("authenticated %q, want %q", user.ID, f.owner.ID)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := auth.GenerateJWT(f.owner)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}
		if _, err := auth.Authenticate(ctx, token); err == nil {
			t.Error("expected expired token to be rejected")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewAuthService(f.users, "another-secret-another-secret-xx", time.Hour)
		token, err := other.GenerateJWT(f.owner)
		if err != nil {
			t.Fatalf("GenerateJWT failed: %v", err)
		}
		if _, err := auth.VerifyJWT(token); err == nil {
			t.Error("expected signature mismatch")
		}
	})
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, tasks, err := f.goals.Create(ctx, f.owner.ID, CreateGoalInput{
		Name:  "Read",
		Tasks: []TaskSpec{{Name: "Book 1"}, {Name: "Book 2", TargetValue: ptr(10)}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, _, err = f.goals.Create(ctx, f.owner.ID, CreateGoalInput{Name: "Run"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err = f.tasks.UpdateProgress(ctx, f.owner.ID, tasks[1].ID, 10)
	if err != nil {
		t.Fatalf("UpdateProgress failed: %v", err)
	}

	snapshots, err := f.goals.Snapshot(ctx, model.GoalFilter{}, f.users)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(snapshots))
	}

	read := snapshots[0]
	if read.Name != "Read" || len(read.Tasks) != 2 || math.Abs(read.Progress-0.5) > 1e-9 {
		t.Errorf("unexpected snapshot: %+v", read)
	}
	if read.OwnerID != f.owner.ID || read.OwnerName != f.owner.FullName() {
		t.Errorf("unexpected owner in snapshot: %q %q", read.OwnerID, read.OwnerName)
	}
	if read.Tasks[1].Progress != 1 || read.Tasks[1].CurrentValue != 10 {
		t.Errorf("unexpected task summary: %+v", read.Tasks[1])
	}

	run := snapshots[1]
	if run.Progress != 0 || run.Tasks == nil || len(run.Tasks) != 0 {
		t.Errorf("goal without tasks should export an empty task list: %+v", run)
	}

	filtered, err := f.goals.Snapshot(ctx, model.GoalFilter{NameContains: "RU"}, f.users)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Name != "Run" {
		t.Errorf("unexpected filtered snapshot: %+v", filtered)
	}
}
