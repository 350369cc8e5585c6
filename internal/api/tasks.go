package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pvmelo/focuserp/internal/ingest"
	"github.com/pvmelo/focuserp/internal/model"
	"github.com/pvmelo/focuserp/internal/service"
)

type ingestPayload struct {
	Texto string `json:"texto"`
}

type ingestResponse struct {
	ingest.Counts
	Fallback bool `json:"fallbackLocal"`
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var p ingestPayload
	if !decodeBody(w, r, &p) {
		return
	}

	res, err := s.Ingestor.Ingest(r.Context(), p.Texto)
	switch {
	case errors.Is(err, ingest.ErrEmptyText):
		writeError(w, http.StatusBadRequest, "texto para processar é obrigatório")
		return
	case errors.Is(err, ingest.ErrNothingParsed):
		writeError(w, http.StatusUnprocessableEntity, "não foi possível extrair tarefas do texto")
		return
	case err != nil:
		s.logger().Error("ingest failed", "error", err)
		writeError(w, http.StatusInternalServerError, "ingestion failed")
		return
	}
	writeJSON(w, http.StatusOK, ingestResponse{Counts: res.Counts, Fallback: res.Fallback})
}

type categoryPayload struct {
	Name  string `json:"nome"`
	Emoji string `json:"emoji"`
	Color string `json:"cor"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	data, err := s.Store.Load()
	if err != nil {
		s.logger().Error("load state", "error", err)
		writeError(w, http.StatusInternalServerError, "unable to load state")
		return
	}
	out := make([]model.Category, 0, len(data.Categories))
	for _, cat := range data.Categories {
		out = append(out, cat)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAddCategory(w http.ResponseWriter, r *http.Request) {
	var p categoryPayload
	if !decodeBody(w, r, &p) {
		return
	}
	cat, err := s.Tasks.AddCategory(p.Name, p.Emoji, p.Color)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleEditCategory(w http.ResponseWriter, r *http.Request) {
	var p categoryPayload
	if !decodeBody(w, r, &p) {
		return
	}
	cat, err := s.Tasks.EditCategory(chi.URLParam(r, "id"), p.Name, p.Emoji, p.Color)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cat)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.Tasks.DeleteCategory(chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type taskPayload struct {
	CategoryID string     `json:"categoriaId"`
	Text       string     `json:"texto"`
	Alarm      *time.Time `json:"alarme"`
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	data, err := s.Store.Load()
	if err != nil {
		s.logger().Error("load state", "error", err)
		writeError(w, http.StatusInternalServerError, "unable to load state")
		return
	}
	writeJSON(w, http.StatusOK, data.Tasks)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var p taskPayload
	if !decodeBody(w, r, &p) {
		return
	}
	task, err := s.Tasks.AddTask(p.CategoryID, p.Text, p.Alarm)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleEditTask(w http.ResponseWriter, r *http.Request) {
	var p taskPayload
	if !decodeBody(w, r, &p) {
		return
	}
	task, err := s.Tasks.EditTask(chi.URLParam(r, "id"), p.Text, p.Alarm)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.Tasks.DeleteTask(chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	done, err := s.Tasks.CompleteTask(chi.URLParam(r, "id"), time.Now().UTC())
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, done)
}

type subTaskPayload struct {
	Text string `json:"texto"`
}

func (s *Server) handleAddSubTask(w http.ResponseWriter, r *http.Request) {
	var p subTaskPayload
	if !decodeBody(w, r, &p) {
		return
	}
	st, err := s.Tasks.AddSubTask(chi.URLParam(r, "id"), p.Text)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (s *Server) handleToggleSubTask(w http.ResponseWriter, r *http.Request) {
	st, err := s.Tasks.ToggleSubTask(chi.URLParam(r, "id"), chi.URLParam(r, "subId"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (s *Server) handleDeleteSubTask(w http.ResponseWriter, r *http.Request) {
	if err := s.Tasks.DeleteSubTask(chi.URLParam(r, "id"), chi.URLParam(r, "subId")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	data, err := s.Store.Load()
	if err != nil {
		s.logger().Error("load state", "error", err)
		writeError(w, http.StatusInternalServerError, "unable to load state")
		return
	}
	writeJSON(w, http.StatusOK, data.Progress)
}

func (s *Server) handlePomodoroConfig(w http.ResponseWriter, r *http.Request) {
	var cfg model.PomodoroConfig
	if !decodeBody(w, r, &cfg) {
		return
	}
	out, err := s.Tasks.UpdatePomodoroConfig(cfg)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrNameTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrEmptyField):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger().Error("service error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
