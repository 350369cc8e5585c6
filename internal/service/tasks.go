// Package service implements the application operations on top of the
// single-document store: task and category CRUD, completion with streak
// arithmetic, the finance ledger and the alarm sweep.
package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pvmelo/focuserp/internal/model"
	"github.com/pvmelo/focuserp/internal/store"
)

var (
	// ErrNotFound covers any missing category, task or sub-task id.
	ErrNotFound = errors.New("service: not found")
	// ErrNameTaken rejects a category name that collides with another
	// category, compared case-insensitively on the trimmed name.
	ErrNameTaken = errors.New("service: category name already in use")
	// ErrEmptyField rejects blank required text.
	ErrEmptyField = errors.New("service: required field is empty")
)

// TaskService owns task and category operations. Every operation is a
// full load-modify-save cycle on the document.
type TaskService struct {
	Store *store.Store
}

// AddCategory creates a category. The name must be non-empty and not
// collide (case-insensitively) with an existing category.
func (s *TaskService) AddCategory(name, emoji, color string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, fmt.Errorf("%w: category name", ErrEmptyField)
	}

	data, err := s.Store.Load()
	if err != nil {
		return model.Category{}, err
	}
	if nameInUse(data.Categories, name, "") {
		return model.Category{}, ErrNameTaken
	}

	cat := model.Category{ID: uuid.NewString(), Name: name, Emoji: emoji, Color: color}
	data.Categories[cat.ID] = cat
	if err := s.Store.Save(data); err != nil {
		return model.Category{}, err
	}
	return cat, nil
}

// EditCategory renames/restyles a category. A name collision with any
// other category is rejected without mutation.
func (s *TaskService) EditCategory(id, name, emoji, color string) (model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Category{}, fmt.Errorf("%w: category name", ErrEmptyField)
	}

	data, err := s.Store.Load()
	if err != nil {
		return model.Category{}, err
	}
	cat, ok := data.Categories[id]
	if !ok {
		return model.Category{}, fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	if nameInUse(data.Categories, name, id) {
		return model.Category{}, ErrNameTaken
	}

	cat.Name = name
	if emoji != "" {
		cat.Emoji = emoji
	}
	if color != "" {
		cat.Color = color
	}
	data.Categories[id] = cat
	if err := s.Store.Save(data); err != nil {
		return model.Category{}, err
	}
	return cat, nil
}

// DeleteCategory removes a category and every task under it.
func (s *TaskService) DeleteCategory(id string) error {
	data, err := s.Store.Load()
	if err != nil {
		return err
	}
	if _, ok := data.Categories[id]; !ok {
		return fmt.Errorf("%w: category %s", ErrNotFound, id)
	}
	delete(data.Categories, id)
	delete(data.Tasks, id)
	return s.Store.Save(data)
}

// AddTask creates a task at the head of its category's list, matching the
// most-recent-first ordering the merge engine uses.
func (s *TaskService) AddTask(categoryID, text string, alarm *time.Time) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, fmt.Errorf("%w: task text", ErrEmptyField)
	}

	data, err := s.Store.Load()
	if err != nil {
		return model.Task{}, err
	}
	if _, ok := data.Categories[categoryID]; !ok {
		return model.Task{}, fmt.Errorf("%w: category %s", ErrNotFound, categoryID)
	}

	task := model.Task{
		ID:         uuid.NewString(),
		Text:       text,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC(),
		Alarm:      alarm,
		SubTasks:   []model.SubTask{},
	}
	data.Tasks[categoryID] = append([]model.Task{task}, data.Tasks[categoryID]...)
	if err := s.Store.Save(data); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// EditTask updates a task's text and alarm in place.
func (s *TaskService) EditTask(taskID, text string, alarm *time.Time) (model.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, fmt.Errorf("%w: task text", ErrEmptyField)
	}

	data, err := s.Store.Load()
	if err != nil {
		return model.Task{}, err
	}
	catID, idx, ok := findTask(&data, taskID)
	if !ok {
		return model.Task{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}

	task := data.Tasks[catID][idx]
	task.Text = text
	task.Alarm = alarm
	task.AlarmNotified = false
	data.Tasks[catID][idx] = task
	if err := s.Store.Save(data); err != nil {
		return model.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task without recording a completion.
func (s *TaskService) DeleteTask(taskID string) error {
	data, err := s.Store.Load()
	if err != nil {
		return err
	}
	catID, idx, ok := findTask(&data, taskID)
	if !ok {
		return fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}
	data.Tasks[catID] = append(data.Tasks[catID][:idx], data.Tasks[catID][idx+1:]...)
	return s.Store.Save(data)
}

// CompleteTask moves a task into the completion history and advances the
// counters: totals, the per-category tally, and the daily streak (same
// day keeps it, the next day extends it, a gap resets it to 1).
func (s *TaskService) CompleteTask(taskID string, now time.Time) (model.CompletedTask, error) {
	data, err := s.Store.Load()
	if err != nil {
		return model.CompletedTask{}, err
	}
	catID, idx, ok := findTask(&data, taskID)
	if !ok {
		return model.CompletedTask{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}

	task := data.Tasks[catID][idx]
	data.Tasks[catID] = append(data.Tasks[catID][:idx], data.Tasks[catID][idx+1:]...)

	done := model.CompletedTask{
		ID:          task.ID,
		Text:        task.Text,
		CategoryID:  task.CategoryID,
		CompletedAt: now,
		Alarm:       task.Alarm,
		SubTasks:    task.SubTasks,
	}
	data.Completed = append(data.Completed, done)

	p := &data.Progress
	p.TotalCompleted++
	p.CompletedByCategory[catID]++
	for _, st := range task.SubTasks {
		if st.Done {
			p.TotalSubTasksDone++
		}
	}
	advanceStreak(p, now)

	if err := s.Store.Save(data); err != nil {
		return model.CompletedTask{}, err
	}
	return done, nil
}

// AddSubTask appends a checklist item to a task. Unlike the ingestion
// path, empty text is allowed here.
func (s *TaskService) AddSubTask(taskID, text string) (model.SubTask, error) {
	data, err := s.Store.Load()
	if err != nil {
		return model.SubTask{}, err
	}
	catID, idx, ok := findTask(&data, taskID)
	if !ok {
		return model.SubTask{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}

	st := model.SubTask{ID: uuid.NewString(), Text: strings.TrimSpace(text)}
	data.Tasks[catID][idx].SubTasks = append(data.Tasks[catID][idx].SubTasks, st)
	if err := s.Store.Save(data); err != nil {
		return model.SubTask{}, err
	}
	return st, nil
}

// ToggleSubTask flips a checklist item's done state.
func (s *TaskService) ToggleSubTask(taskID, subTaskID string) (model.SubTask, error) {
	data, err := s.Store.Load()
	if err != nil {
		return model.SubTask{}, err
	}
	catID, idx, ok := findTask(&data, taskID)
	if !ok {
		return model.SubTask{}, fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}
	for i, st := range data.Tasks[catID][idx].SubTasks {
		if st.ID == subTaskID {
			st.Done = !st.Done
			data.Tasks[catID][idx].SubTasks[i] = st
			return st, s.Store.Save(data)
		}
	}
	return model.SubTask{}, fmt.Errorf("%w: sub-task %s", ErrNotFound, subTaskID)
}

// DeleteSubTask removes a checklist item.
func (s *TaskService) DeleteSubTask(taskID, subTaskID string) error {
	data, err := s.Store.Load()
	if err != nil {
		return err
	}
	catID, idx, ok := findTask(&data, taskID)
	if !ok {
		return fmt.Errorf("%w: task %s", ErrNotFound, taskID)
	}
	subs := data.Tasks[catID][idx].SubTasks
	for i, st := range subs {
		if st.ID == subTaskID {
			data.Tasks[catID][idx].SubTasks = append(subs[:i], subs[i+1:]...)
			return s.Store.Save(data)
		}
	}
	return fmt.Errorf("%w: sub-task %s", ErrNotFound, subTaskID)
}

// UpdatePomodoroConfig stores new timer durations, clamping each to at
// least one minute/cycle.
func (s *TaskService) UpdatePomodoroConfig(cfg model.PomodoroConfig) (model.PomodoroConfig, error) {
	clamp := func(v int) int {
		if v < 1 {
			return 1
		}
		return v
	}
	cfg.FocusMinutes = clamp(cfg.FocusMinutes)
	cfg.ShortBreakMinutes = clamp(cfg.ShortBreakMinutes)
	cfg.LongBreakMinutes = clamp(cfg.LongBreakMinutes)
	cfg.CyclesToLongBreak = clamp(cfg.CyclesToLongBreak)

	data, err := s.Store.Load()
	if err != nil {
		return model.PomodoroConfig{}, err
	}
	data.Pomodoro = cfg
	return cfg, s.Store.Save(data)
}

// RecordFocusPomodoro bumps the completed-focus-cycle counter.
func (s *TaskService) RecordFocusPomodoro() error {
	data, err := s.Store.Load()
	if err != nil {
		return err
	}
	data.Progress.TotalFocusPomodoros++
	return s.Store.Save(data)
}

func nameInUse(cats map[string]model.Category, name, exceptID string) bool {
	key := strings.ToLower(strings.TrimSpace(name))
	for id, cat := range cats {
		if id == exceptID {
			continue
		}
		if strings.ToLower(strings.TrimSpace(cat.Name)) == key {
			return true
		}
	}
	return false
}

func findTask(data *model.AppData, taskID string) (categoryID string, index int, ok bool) {
	for catID, tasks := range data.Tasks {
		for i, t := range tasks {
			if t.ID == taskID {
				return catID, i, true
			}
		}
	}
	return "", 0, false
}

// advanceStreak applies the day arithmetic: completions on the same civil
// day keep the streak, a completion on the following day extends it, and
// anything later restarts at 1.
func advanceStreak(p *model.Progress, now time.Time) {
	defer func() {
		if p.CurrentStreak > p.BestStreak {
			p.BestStreak = p.CurrentStreak
		}
		t := now
		p.LastCompletedAt = &t
	}()

	if p.LastCompletedAt == nil {
		p.CurrentStreak = 1
		return
	}
	last := civilDay(*p.LastCompletedAt)
	today := civilDay(now)
	switch today.Sub(last) {
	case 0:
		if p.CurrentStreak == 0 {
			p.CurrentStreak = 1
		}
	case 24 * time.Hour:
		p.CurrentStreak++
	default:
		p.CurrentStreak = 1
	}
}

func civilDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
