package ingest

// ParsedCategory is the transient tree produced by both the local text
// parser and the response normalizer, and consumed by Merge. It is never
// persisted directly.
type ParsedCategory struct {
	Name  string       `json:"nomeCategoria"`
	Tasks []ParsedTask `json:"tarefas"`
}

// ParsedTask carries the cleaned task text, an optional start date/time
// string and the sub-task texts. SubTasks is never nil after parsing.
type ParsedTask struct {
	Text     string   `json:"textoTarefa"`
	When     string   `json:"dataHora,omitempty"`
	SubTasks []string `json:"subTarefas"`
}

// Counts reports what one merge call actually created. Categories counts
// only newly created categories, never reused ones.
type Counts struct {
	Categories int `json:"categorias"`
	Tasks      int `json:"tarefas"`
	SubTasks   int `json:"subtarefas"`
}
