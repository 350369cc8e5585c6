package api

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter wires every endpoint onto a chi router.
func NewRouter(s *Server) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)

	r.Post("/ingest", s.handleIngest)

	r.Get("/categorias", s.handleListCategories)
	r.Post("/categorias", s.handleAddCategory)
	r.Patch("/categorias/{id}", s.handleEditCategory)
	r.Delete("/categorias/{id}", s.handleDeleteCategory)

	r.Get("/tarefas", s.handleListTasks)
	r.Post("/tarefas", s.handleAddTask)
	r.Patch("/tarefas/{id}", s.handleEditTask)
	r.Delete("/tarefas/{id}", s.handleDeleteTask)
	r.Post("/tarefas/{id}/concluir", s.handleCompleteTask)
	r.Post("/tarefas/{id}/subtarefas", s.handleAddSubTask)
	r.Patch("/tarefas/{id}/subtarefas/{subId}", s.handleToggleSubTask)
	r.Delete("/tarefas/{id}/subtarefas/{subId}", s.handleDeleteSubTask)

	r.Get("/progresso", s.handleProgress)
	r.Put("/pomodoro/config", s.handlePomodoroConfig)

	r.Get("/financas", s.handleLedger)
	r.Get("/financas/resumo", s.handleFinanceSummary)
	r.Post("/financas/gastos", s.handleAddExpense)
	r.Delete("/financas/gastos/{id}", s.handleDeleteExpense)
	r.Post("/financas/receitas", s.handleAddIncome)
	r.Delete("/financas/receitas/{id}", s.handleDeleteIncome)
	r.Get("/financas/sugerir-categoria", s.handleSuggestCategory)

	r.Get("/feriados", s.handleHolidays)

	return r
}
