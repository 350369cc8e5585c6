package model

import "time"

// Category is a user-visible task grouping. Names are unique per document
// (case-insensitive) but only explicit edits enforce that; ids are the
// stable identity everywhere else.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Emoji string `json:"emoji"`
	Color string `json:"cor"`
}

// SubTask is a checklist item nested under a task.
type SubTask struct {
	ID   string `json:"id"`
	Text string `json:"texto"`
	Done bool   `json:"completada"`
}

// Task is a single actionable item belonging to exactly one category.
type Task struct {
	ID            string     `json:"id"`
	Text          string     `json:"texto"`
	CategoryID    string     `json:"categoriaId"`
	CreatedAt     time.Time  `json:"criadaEm"`
	Done          bool       `json:"completada"`
	Alarm         *time.Time `json:"alarme,omitempty"`
	AlarmNotified bool       `json:"alarmeNotificado,omitempty"`
	SubTasks      []SubTask  `json:"subTarefas"`
}

// CompletedTask is the history record kept after a task is completed.
type CompletedTask struct {
	ID          string     `json:"id"`
	Text        string     `json:"texto"`
	CategoryID  string     `json:"categoriaId"`
	CompletedAt time.Time  `json:"concluidaEm"`
	Alarm       *time.Time `json:"alarme,omitempty"`
	SubTasks    []SubTask  `json:"subTarefas,omitempty"`
}

// Progress accumulates completion counters and the daily streak.
type Progress struct {
	CurrentStreak       int            `json:"streakAtual"`
	BestStreak          int            `json:"maiorStreak"`
	TotalCompleted      int            `json:"totalTarefasConcluidas"`
	CompletedByCategory map[string]int `json:"tarefasConcluidasPorCategoria"`
	LastCompletedAt     *time.Time     `json:"ultimaTarefaConcluida,omitempty"`
	TotalFocusPomodoros int            `json:"totalPomodorosFocoCompletos,omitempty"`
	TotalSubTasksDone   int            `json:"totalSubTarefasConcluidas,omitempty"`
}

// PomodoroConfig holds timer durations in minutes.
type PomodoroConfig struct {
	FocusMinutes      int `json:"duracaoFocoMin"`
	ShortBreakMinutes int `json:"duracaoPausaCurtaMin"`
	LongBreakMinutes  int `json:"duracaoPausaLongaMin"`
	CyclesToLongBreak int `json:"ciclosAtePausaLonga"`
}

// AppData is the whole persisted document: categories keyed by id, active
// tasks keyed by category id, completion history and counters. It is read
// and written as one blob, never field by field.
type AppData struct {
	Tasks      map[string][]Task   `json:"tarefas"`
	Completed  []CompletedTask     `json:"tarefasConcluidas"`
	Progress   Progress            `json:"progresso"`
	Categories map[string]Category `json:"categorias"`
	Pomodoro   PomodoroConfig      `json:"configPomodoro"`
	Finance    *Finance            `json:"financas,omitempty"`
}

// NewAppData returns the initial document: no categories, no tasks,
// zeroed progress and default pomodoro durations.
func NewAppData() AppData {
	return AppData{
		Tasks:      map[string][]Task{},
		Completed:  []CompletedTask{},
		Categories: map[string]Category{},
		Progress: Progress{
			CompletedByCategory: map[string]int{},
		},
		Pomodoro: DefaultPomodoroConfig(),
	}
}

// DefaultPomodoroConfig is the classic 25/5/15 split.
func DefaultPomodoroConfig() PomodoroConfig {
	return PomodoroConfig{
		FocusMinutes:      25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		CyclesToLongBreak: 4,
	}
}

// Heal fills in structures that may be missing from older documents so
// callers never see nil maps or slices.
func (d *AppData) Heal() {
	if d.Tasks == nil {
		d.Tasks = map[string][]Task{}
	}
	if d.Categories == nil {
		d.Categories = map[string]Category{}
	}
	if d.Completed == nil {
		d.Completed = []CompletedTask{}
	}
	if d.Progress.CompletedByCategory == nil {
		d.Progress.CompletedByCategory = map[string]int{}
	}
	if d.Pomodoro == (PomodoroConfig{}) {
		d.Pomodoro = DefaultPomodoroConfig()
	}
	for catID, tasks := range d.Tasks {
		for i := range tasks {
			if tasks[i].SubTasks == nil {
				tasks[i].SubTasks = []SubTask{}
			}
		}
		d.Tasks[catID] = tasks
	}
}

// TotalTasks counts active tasks across all categories.
func (d *AppData) TotalTasks() int {
	total := 0
	for _, tasks := range d.Tasks {
		total += len(tasks)
	}
	return total
}
