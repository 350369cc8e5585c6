package service

import (
	"log/slog"
	"time"

	"github.com/pvmelo/focuserp/internal/model"
	"github.com/pvmelo/focuserp/internal/store"
)

// Notifier delivers a due-alarm notification. The default implementation
// only logs; native bridges live outside this module.
type Notifier interface {
	Notify(task model.Task, category model.Category)
}

// LogNotifier writes due alarms to the log.
type LogNotifier struct {
	Log *slog.Logger
}

func (n LogNotifier) Notify(task model.Task, category model.Category) {
	log := n.Log
	if log == nil {
		log = slog.Default()
	}
	log.Info("task alarm due",
		"task", task.Text,
		"category", category.Name,
		"alarm", task.Alarm,
	)
}

// ReminderService finds tasks whose alarm time has arrived and hands them
// to the notifier exactly once.
type ReminderService struct {
	Store    *store.Store
	Notifier Notifier
}

// Sweep notifies every task with a due, not-yet-notified alarm and marks
// it notified. It returns how many notifications fired.
func (s *ReminderService) Sweep(now time.Time) (int, error) {
	data, err := s.Store.Load()
	if err != nil {
		return 0, err
	}

	fired := 0
	for catID, tasks := range data.Tasks {
		for i, task := range tasks {
			if task.Alarm == nil || task.AlarmNotified || task.Alarm.After(now) {
				continue
			}
			s.Notifier.Notify(task, data.Categories[catID])
			tasks[i].AlarmNotified = true
			fired++
		}
		data.Tasks[catID] = tasks
	}

	if fired == 0 {
		return 0, nil
	}
	return fired, s.Store.Save(data)
}
