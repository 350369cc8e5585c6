package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pvmelo/focuserp/internal/model"
	"github.com/pvmelo/focuserp/internal/store"
)

func newTaskService(t *testing.T) *TaskService {
	t.Helper()
	return &TaskService{Store: store.New(filepath.Join(t.TempDir(), "data.json"))}
}

func TestAddCategoryRejectsDuplicateName(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t)
	_, err := svc.AddCategory("Estudos", "📚", "#112233")
	require.NoError(t, err)

	_, err = svc.AddCategory("  estudos ", "🎯", "#445566")
	require.ErrorIs(t, err, ErrNameTaken)

	_, err = svc.AddCategory("   ", "🎯", "#445566")
	require.ErrorIs(t, err, ErrEmptyField)
}

func TestEditCategoryCollisionLeavesStateAlone(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t)
	_, err := svc.AddCategory("Estudos", "📚", "#112233")
	require.NoError(t, err)
	saude, err := svc.AddCategory("Saúde", "💪", "#445566")
	require.NoError(t, err)

	_, err = svc.EditCategory(saude.ID, "ESTUDOS", "", "")
	require.ErrorIs(t, err, ErrNameTaken)

	data, err := svc.Store.Load()
	require.NoError(t, err)
	require.Equal(t, "Saúde", data.Categories[saude.ID].Name)

	// renaming to its own name is not a collision
	got, err := svc.EditCategory(saude.ID, "Saúde", "🧘", "")
	require.NoError(t, err)
	require.Equal(t, "🧘", got.Emoji)
	require.Equal(t, "#445566", got.Color)
}

func TestDeleteCategoryDropsItsTasks(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t)
	cat, err := svc.AddCategory("Estudos", "📚", "#112233")
	require.NoError(t, err)
	_, err = svc.AddTask(cat.ID, "Ler capítulo 1", nil)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(cat.ID))

	data, err := svc.Store.Load()
	require.NoError(t, err)
	require.Empty(t, data.Categories)
	require.Zero(t, data.TotalTasks())

	require.ErrorIs(t, svc.DeleteCategory(cat.ID), ErrNotFound)
}

func TestAddTaskPrependsToCategory(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t)
	cat, err := svc.AddCategory("Estudos", "📚", "#112233")
	require.NoError(t, err)

	_, err = svc.AddTask(cat.ID, "primeira", nil)
	require.NoError(t, err)
	_, err = svc.AddTask(cat.ID, "segunda", nil)
	require.NoError(t, err)

	data, err := svc.Store.Load()
	require.NoError(t, err)
	tasks := data.Tasks[cat.ID]
	require.Len(t, tasks, 2)
	require.Equal(t, "segunda", tasks[0].Text)
	require.Equal(t, "primeira", tasks[1].Text)

	_, err = svc.AddTask("no-such-category", "x", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEditTaskResetsAlarmNotified(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t)
	cat, err := svc.AddCategory("Estudos", "📚", "#112233")
	require.NoError(t, err)
	task, err := svc.AddTask(cat.ID, "Ler capítulo 1", nil)
	require.NoError(t, err)

	data, err := svc.Store.Load()
	require.NoError(t, err)
	data.Tasks[cat.ID][0].AlarmNotified = true
	require.NoError(t, svc.Store.Save(data))

	alarm := time.Date(2026, 9, 2, 8, 30, 0, 0, time.UTC)
	got, err := svc.EditTask(task.ID, "Ler capítulo 2", &alarm)
	require.NoError(t, err)
	require.Equal(t, "Ler capítulo 2", got.Text)
	require.False(t, got.AlarmNotified)
	require.NotNil(t, got.Alarm)
}

func TestCompleteTaskMovesToHistory(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t)
	cat, err := svc.AddCategory("Estudos", "📚", "#112233")
	require.NoError(t, err)
	task, err := svc.AddTask(cat.ID, "Ler capítulo 1", nil)
	require.NoError(t, err)
	_, err = svc.AddSubTask(task.ID, "resumo")
	require.NoError(t, err)
	sub, err := svc.AddSubTask(task.ID, "fichamento")
	require.NoError(t, err)
	_, err = svc.ToggleSubTask(task.ID, sub.ID)
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	done, err := svc.CompleteTask(task.ID, now)
	require.NoError(t, err)
	require.Equal(t, task.ID, done.ID)

	data, err := svc.Store.Load()
	require.NoError(t, err)
	require.Zero(t, data.TotalTasks())
	require.Len(t, data.Completed, 1)
	require.Equal(t, 1, data.Progress.TotalCompleted)
	require.Equal(t, 1, data.Progress.CompletedByCategory[cat.ID])
	require.Equal(t, 1, data.Progress.TotalSubTasksDone)

	_, err = svc.CompleteTask(task.ID, now)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStreakArithmetic(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t)
	cat, err := svc.AddCategory("Estudos", "📚", "#112233")
	require.NoError(t, err)

	complete := func(now time.Time) {
		t.Helper()
		task, err := svc.AddTask(cat.ID, "tarefa", nil)
		require.NoError(t, err)
		_, err = svc.CompleteTask(task.ID, now)
		require.NoError(t, err)
	}
	streak := func() (current, best int) {
		t.Helper()
		data, err := svc.Store.Load()
		require.NoError(t, err)
		return data.Progress.CurrentStreak, data.Progress.BestStreak
	}

	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	complete(day1)
	cur, best := streak()
	require.Equal(t, 1, cur)
	require.Equal(t, 1, best)

	// later the same day keeps the streak
	complete(day1.Add(8 * time.Hour))
	cur, _ = streak()
	require.Equal(t, 1, cur)

	// next civil day extends it
	complete(day1.AddDate(0, 0, 1))
	cur, best = streak()
	require.Equal(t, 2, cur)
	require.Equal(t, 2, best)

	complete(day1.AddDate(0, 0, 2))
	cur, best = streak()
	require.Equal(t, 3, cur)
	require.Equal(t, 3, best)

	// a gap resets to 1 but keeps the best
	complete(day1.AddDate(0, 0, 5))
	cur, best = streak()
	require.Equal(t, 1, cur)
	require.Equal(t, 3, best)
}

func TestSubTaskLifecycle(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t)
	cat, err := svc.AddCategory("Estudos", "📚", "#112233")
	require.NoError(t, err)
	task, err := svc.AddTask(cat.ID, "Ler capítulo 1", nil)
	require.NoError(t, err)

	sub, err := svc.AddSubTask(task.ID, "resumo")
	require.NoError(t, err)

	got, err := svc.ToggleSubTask(task.ID, sub.ID)
	require.NoError(t, err)
	require.True(t, got.Done)

	got, err = svc.ToggleSubTask(task.ID, sub.ID)
	require.NoError(t, err)
	require.False(t, got.Done)

	require.NoError(t, svc.DeleteSubTask(task.ID, sub.ID))
	require.ErrorIs(t, svc.DeleteSubTask(task.ID, sub.ID), ErrNotFound)
}

func TestUpdatePomodoroConfigClampsToOne(t *testing.T) {
	t.Parallel()

	svc := newTaskService(t)
	cfg, err := svc.UpdatePomodoroConfig(model.PomodoroConfig{
		FocusMinutes:      0,
		ShortBreakMinutes: -5,
		LongBreakMinutes:  10,
		CyclesToLongBreak: 0,
	})
	require.NoError(t, err)
	require.Equal(t, 1, cfg.FocusMinutes)
	require.Equal(t, 1, cfg.ShortBreakMinutes)
	require.Equal(t, 10, cfg.LongBreakMinutes)
	require.Equal(t, 1, cfg.CyclesToLongBreak)

	data, err := svc.Store.Load()
	require.NoError(t, err)
	require.Equal(t, cfg, data.Pomodoro)
}
