package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type entryPayload struct {
	Description string     `json:"descricao"`
	Amount      float64    `json:"valor"`
	Category    string     `json:"categoria"`
	Date        *time.Time `json:"data"`
	Notes       string     `json:"anotacoes"`
	Fixed       bool       `json:"fixo"`
}

func (p entryPayload) date() time.Time {
	if p.Date != nil {
		return *p.Date
	}
	return time.Now().UTC()
}

func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	fin, err := s.Finance.Ledger()
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fin)
}

func (s *Server) handleFinanceSummary(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("ano"))
	month, _ := strconv.Atoi(r.URL.Query().Get("mes"))
	sum, err := s.Finance.Summarize(year, time.Month(month))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var p entryPayload
	if !decodeBody(w, r, &p) {
		return
	}
	exp, err := s.Finance.AddExpense(p.Description, p.Amount, p.Category, p.date(), p.Notes, p.Fixed)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exp)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.Finance.DeleteExpense(chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddIncome(w http.ResponseWriter, r *http.Request) {
	var p entryPayload
	if !decodeBody(w, r, &p) {
		return
	}
	inc, err := s.Finance.AddIncome(p.Description, p.Amount, p.Category, p.date(), p.Notes)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, inc)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.Finance.DeleteIncome(chi.URLParam(r, "id")); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name, err := s.Finance.SuggestCategory(q.Get("descricao"), q.Get("tipo"))
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"categoria": name})
}

func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("ano"))
	if year == 0 {
		year = time.Now().Year()
	}
	hs, err := s.Holidays.Fetch(r.Context(), year, q.Get("pais"), q.Get("uf"))
	if err != nil {
		s.logger().Warn("holiday lookup failed", "error", err)
		writeError(w, http.StatusBadGateway, "holiday service unavailable")
		return
	}
	writeJSON(w, http.StatusOK, hs)
}
