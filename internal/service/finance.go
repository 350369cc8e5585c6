package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/pvmelo/focuserp/internal/model"
	"github.com/pvmelo/focuserp/internal/store"
)

// categoryMatchThreshold is the minimum similarity SuggestCategory
// accepts before giving up and answering "".
const categoryMatchThreshold = 0.5

// FinanceService owns the expense/income ledger kept inside the same
// document as the task state.
type FinanceService struct {
	Store *store.Store
}

// Summary is the aggregate view of the ledger for one period.
type Summary struct {
	TotalExpenses float64            `json:"totalGastos"`
	TotalIncome   float64            `json:"totalReceitas"`
	Balance       float64            `json:"saldo"`
	ByCategory    map[string]float64 `json:"porCategoria"`
}

// DefaultExpenseCategories seeds the ledger taxonomy on first use.
func DefaultExpenseCategories() []model.ExpenseCategory {
	mk := func(name, emoji, color, kind string) model.ExpenseCategory {
		return model.ExpenseCategory{ID: uuid.NewString(), Name: name, Emoji: emoji, Color: color, Kind: kind}
	}
	return []model.ExpenseCategory{
		mk("Alimentação", "🍎", "#e74c3c", "gasto"),
		mk("Transporte", "🚗", "#3498db", "gasto"),
		mk("Moradia", "🏠", "#9b59b6", "gasto"),
		mk("Lazer", "🎵", "#f1c40f", "gasto"),
		mk("Saúde", "💊", "#2ecc71", "gasto"),
		mk("Outros", "📦", "#95a5a6", "gasto"),
		mk("Salário", "💼", "#27ae60", "receita"),
		mk("Extras", "🌟", "#16a085", "receita"),
	}
}

// AddExpense appends a ledger entry. When category is blank the
// heuristic categorizer picks one from the description.
func (s *FinanceService) AddExpense(description string, amount float64, category string, date time.Time, notes string, fixed bool) (model.Expense, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return model.Expense{}, fmt.Errorf("%w: expense description", ErrEmptyField)
	}
	if amount <= 0 {
		return model.Expense{}, fmt.Errorf("service: expense amount must be positive")
	}

	data, err := s.Store.Load()
	if err != nil {
		return model.Expense{}, err
	}
	fin := ensureFinance(&data)

	if strings.TrimSpace(category) == "" {
		category = suggestCategory(description, fin.Categories, "gasto")
		if category == "" {
			category = "Outros"
		}
	}

	exp := model.Expense{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date.UTC(),
		Notes:       strings.TrimSpace(notes),
		Fixed:       fixed,
	}
	fin.Expenses = append(fin.Expenses, exp)
	if err := s.Store.Save(data); err != nil {
		return model.Expense{}, err
	}
	return exp, nil
}

// AddIncome appends an earning-side entry.
func (s *FinanceService) AddIncome(description string, amount float64, category string, date time.Time, notes string) (model.Income, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return model.Income{}, fmt.Errorf("%w: income description", ErrEmptyField)
	}
	if amount <= 0 {
		return model.Income{}, fmt.Errorf("service: income amount must be positive")
	}

	data, err := s.Store.Load()
	if err != nil {
		return model.Income{}, err
	}
	fin := ensureFinance(&data)

	if strings.TrimSpace(category) == "" {
		category = suggestCategory(description, fin.Categories, "receita")
		if category == "" {
			category = "Extras"
		}
	}

	inc := model.Income{
		ID:          uuid.NewString(),
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date.UTC(),
		Notes:       strings.TrimSpace(notes),
	}
	fin.Incomes = append(fin.Incomes, inc)
	if err := s.Store.Save(data); err != nil {
		return model.Income{}, err
	}
	return inc, nil
}

// DeleteExpense removes one entry by id.
func (s *FinanceService) DeleteExpense(id string) error {
	data, err := s.Store.Load()
	if err != nil {
		return err
	}
	fin := ensureFinance(&data)
	for i, e := range fin.Expenses {
		if e.ID == id {
			fin.Expenses = append(fin.Expenses[:i], fin.Expenses[i+1:]...)
			return s.Store.Save(data)
		}
	}
	return fmt.Errorf("%w: expense %s", ErrNotFound, id)
}

// DeleteIncome removes one entry by id.
func (s *FinanceService) DeleteIncome(id string) error {
	data, err := s.Store.Load()
	if err != nil {
		return err
	}
	fin := ensureFinance(&data)
	for i, e := range fin.Incomes {
		if e.ID == id {
			fin.Incomes = append(fin.Incomes[:i], fin.Incomes[i+1:]...)
			return s.Store.Save(data)
		}
	}
	return fmt.Errorf("%w: income %s", ErrNotFound, id)
}

// Ledger returns the whole finance sub-document.
func (s *FinanceService) Ledger() (model.Finance, error) {
	data, err := s.Store.Load()
	if err != nil {
		return model.Finance{}, err
	}
	return *ensureFinance(&data), nil
}

// Summarize aggregates the ledger. A zero year means all time; with a
// year and month only that month counts.
func (s *FinanceService) Summarize(year int, month time.Month) (Summary, error) {
	data, err := s.Store.Load()
	if err != nil {
		return Summary{}, err
	}
	fin := ensureFinance(&data)

	inPeriod := func(t time.Time) bool {
		if year == 0 {
			return true
		}
		if t.UTC().Year() != year {
			return false
		}
		return month == 0 || t.UTC().Month() == month
	}

	sum := Summary{ByCategory: map[string]float64{}}
	for _, e := range fin.Expenses {
		if !inPeriod(e.Date) {
			continue
		}
		sum.TotalExpenses += e.Amount
		sum.ByCategory[e.Category] += e.Amount
	}
	for _, in := range fin.Incomes {
		if !inPeriod(in.Date) {
			continue
		}
		sum.TotalIncome += in.Amount
	}
	sum.Balance = sum.TotalIncome - sum.TotalExpenses
	return sum, nil
}

// SuggestCategory exposes the heuristic matcher for the API layer.
func (s *FinanceService) SuggestCategory(description, kind string) (string, error) {
	data, err := s.Store.Load()
	if err != nil {
		return "", err
	}
	fin := ensureFinance(&data)
	return suggestCategory(description, fin.Categories, kind), nil
}

// ensureFinance materializes (and seeds) the finance sub-document.
func ensureFinance(data *model.AppData) *model.Finance {
	if data.Finance == nil {
		data.Finance = &model.Finance{
			Expenses:   []model.Expense{},
			Incomes:    []model.Income{},
			Categories: DefaultExpenseCategories(),
		}
	}
	if data.Finance.Categories == nil {
		data.Finance.Categories = DefaultExpenseCategories()
	}
	return data.Finance
}

// suggestCategory picks the best category for a description: direct name
// containment wins, otherwise the smallest levenshtein distance between
// the description's tokens and the category name, as a similarity in
// [0,1]. Below the threshold nothing is suggested.
func suggestCategory(description string, cats []model.ExpenseCategory, kind string) string {
	desc := strings.ToLower(strings.TrimSpace(description))
	if desc == "" {
		return ""
	}

	best, bestScore := "", 0.0
	for _, cat := range cats {
		if kind != "" && cat.Kind != kind {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(cat.Name))
		if name == "" {
			continue
		}

		score := 0.0
		if strings.Contains(desc, name) {
			score = 0.9
		} else {
			for _, token := range strings.Fields(desc) {
				if sim := similarity(token, name); sim > score {
					score = sim
				}
			}
		}
		if score > bestScore {
			best, bestScore = cat.Name, score
		}
	}
	if bestScore < categoryMatchThreshold {
		return ""
	}
	return best
}

func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	return 1 - float64(dist)/float64(maxLen)
}
