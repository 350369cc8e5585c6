package model

import "time"

// Expense is a single ledger entry on the spending side.
type Expense struct {
	ID          string    `json:"id"`
	Description string    `json:"descricao"`
	Amount      float64   `json:"valor"`
	Category    string    `json:"categoria"`
	Date        time.Time `json:"data"`
	Notes       string    `json:"anotacoes,omitempty"`
	Fixed       bool      `json:"fixo,omitempty"`
}

// Income is a single ledger entry on the earning side.
type Income struct {
	ID          string    `json:"id"`
	Description string    `json:"descricao"`
	Amount      float64   `json:"valor"`
	Category    string    `json:"categoria"`
	Date        time.Time `json:"data"`
	Notes       string    `json:"anotacoes,omitempty"`
}

// ExpenseCategory labels ledger entries. Kind is "gasto" or "receita".
type ExpenseCategory struct {
	ID    string `json:"id"`
	Name  string `json:"nome"`
	Emoji string `json:"emoji"`
	Color string `json:"cor"`
	Kind  string `json:"tipo"`
}

// Finance is the optional ledger sub-document.
type Finance struct {
	Expenses   []Expense         `json:"gastos"`
	Incomes    []Income          `json:"receitas"`
	Categories []ExpenseCategory `json:"categoriasGastos"`
}
