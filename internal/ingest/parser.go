package ingest

import "strings"

// Fallback names used when the pasted text opens with a task or sub-task
// line before naming anything.
const (
	implicitCategoryName = "Geral"
	implicitTaskText     = "Tarefa"
)

// ParseText converts pasted free text into a category/task/sub-task tree
// using the colon-prefix grammar: "Categoria:", "Tarefa:",
// "Sub-tarefa:"/"Subtarefa:" and "Objetivo:". Prefix matching is
// case-insensitive; anything else is ignored. The parser is total: any
// input yields a (possibly empty) result and never fails.
//
// Every emitted category has at least one task, every task has non-empty
// trimmed text, and SubTasks is always non-nil.
func ParseText(raw string) []ParsedCategory {
	var (
		out     []ParsedCategory
		current *ParsedCategory
		pending *ParsedTask
	)

	flushTask := func() {
		if pending == nil {
			return
		}
		if strings.TrimSpace(pending.Text) != "" {
			if current == nil {
				current = &ParsedCategory{Name: implicitCategoryName, Tasks: []ParsedTask{}}
			}
			current.Tasks = append(current.Tasks, *pending)
		}
		pending = nil
	}

	flushCategory := func() {
		if current != nil && len(current.Tasks) > 0 {
			out = append(out, *current)
		}
		current = nil
	}

	for _, lineRaw := range strings.Split(raw, "\n") {
		line := strings.TrimSpace(lineRaw)
		if line == "" {
			continue
		}

		switch {
		case hasPrefixFold(line, "categoria:"):
			flushTask()
			flushCategory()
			current = &ParsedCategory{Name: afterColon(line), Tasks: []ParsedTask{}}

		case hasPrefixFold(line, "tarefa:"):
			flushTask()
			if current == nil {
				current = &ParsedCategory{Name: implicitCategoryName, Tasks: []ParsedTask{}}
			}
			pending = &ParsedTask{Text: afterColon(line), SubTasks: []string{}}

		case hasPrefixFold(line, "sub-tarefa:") || hasPrefixFold(line, "subtarefa:"):
			ensurePending(&current, &pending)
			pending.SubTasks = append(pending.SubTasks, afterColon(line))

		case hasPrefixFold(line, "objetivo:"):
			ensurePending(&current, &pending)
			pending.SubTasks = append(pending.SubTasks, "Objetivo: "+afterColon(line))
		}
	}

	flushTask()
	flushCategory()
	return out
}

// ensurePending opens an implicit category and a placeholder task when a
// sub-task line arrives before any task line.
func ensurePending(current **ParsedCategory, pending **ParsedTask) {
	if *pending != nil {
		return
	}
	if *current == nil {
		*current = &ParsedCategory{Name: implicitCategoryName, Tasks: []ParsedTask{}}
	}
	*pending = &ParsedTask{Text: implicitTaskText, SubTasks: []string{}}
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

// afterColon strips everything through the first colon and trims the rest.
func afterColon(s string) string {
	if i := strings.Index(s, ":"); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(s)
}
