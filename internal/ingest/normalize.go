package ingest

import (
	"fmt"
	"sort"
)

// maxKeyScan bounds how many object keys Normalize inspects when looking
// for an array-valued property.
const maxKeyScan = 10

// Normalize locates the category array inside an arbitrary decoded JSON
// response and validates its shape. The extraction attempts run in order,
// first match wins:
//
//  1. the response itself is an array
//  2. the "categorias" property is an array
//  3. the "data" property is an array
//  4. the first array-valued property among the first maxKeyScan keys
//     (keys are visited in sorted order so the scan is deterministic)
//
// A recognized array whose elements fail validation rejects the whole
// response; nothing is partially accepted. When no attempt matches, or the
// chosen array is invalid, an error is returned and the caller falls back
// to the local text parser.
func Normalize(response any) ([]ParsedCategory, error) {
	if arr, ok := response.([]any); ok {
		return asParsedCategories(arr)
	}

	obj, ok := response.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("normalize: response is %T, not an array or object", response)
	}

	for _, key := range []string{"categorias", "data"} {
		if arr, ok := obj[key].([]any); ok {
			return asParsedCategories(arr)
		}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxKeyScan {
		keys = keys[:maxKeyScan]
	}
	for _, k := range keys {
		if arr, ok := obj[k].([]any); ok {
			return asParsedCategories(arr)
		}
	}

	return nil, fmt.Errorf("normalize: no category array found in response")
}

func asParsedCategories(arr []any) ([]ParsedCategory, error) {
	out := make([]ParsedCategory, 0, len(arr))
	for i, el := range arr {
		cat, err := asParsedCategory(el)
		if err != nil {
			return nil, fmt.Errorf("normalize: element %d: %w", i, err)
		}
		out = append(out, cat)
	}
	return out, nil
}

func asParsedCategory(el any) (ParsedCategory, error) {
	obj, ok := el.(map[string]any)
	if !ok {
		return ParsedCategory{}, fmt.Errorf("category is %T, not an object", el)
	}
	name, ok := obj["nomeCategoria"].(string)
	if !ok {
		return ParsedCategory{}, fmt.Errorf("nomeCategoria is not a string")
	}
	rawTasks, ok := obj["tarefas"].([]any)
	if !ok {
		return ParsedCategory{}, fmt.Errorf("tarefas is not an array")
	}

	cat := ParsedCategory{Name: name, Tasks: make([]ParsedTask, 0, len(rawTasks))}
	for i, rt := range rawTasks {
		task, err := asParsedTask(rt)
		if err != nil {
			return ParsedCategory{}, fmt.Errorf("tarefa %d: %w", i, err)
		}
		cat.Tasks = append(cat.Tasks, task)
	}
	return cat, nil
}

func asParsedTask(el any) (ParsedTask, error) {
	obj, ok := el.(map[string]any)
	if !ok {
		return ParsedTask{}, fmt.Errorf("task is %T, not an object", el)
	}
	text, ok := obj["textoTarefa"].(string)
	if !ok {
		return ParsedTask{}, fmt.Errorf("textoTarefa is not a string")
	}
	task := ParsedTask{Text: text, SubTasks: []string{}}

	// dataHora may be absent or null; if present it must be a string.
	// Whether it parses as a date is decided at merge time.
	if v, present := obj["dataHora"]; present && v != nil {
		s, ok := v.(string)
		if !ok {
			return ParsedTask{}, fmt.Errorf("dataHora is %T, not a string", v)
		}
		task.When = s
	}

	if v, present := obj["subTarefas"]; present && v != nil {
		arr, ok := v.([]any)
		if !ok {
			return ParsedTask{}, fmt.Errorf("subTarefas is %T, not an array", v)
		}
		for i, sv := range arr {
			s, ok := sv.(string)
			if !ok {
				return ParsedTask{}, fmt.Errorf("subTarefas[%d] is %T, not a string", i, sv)
			}
			task.SubTasks = append(task.SubTasks, s)
		}
	}
	return task, nil
}
