package ingest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestNormalizeBareArray(t *testing.T) {
	t.Parallel()

	raw := `[{"nomeCategoria":"Estudos","tarefas":[{"textoTarefa":"Ler docs","dataHora":"2025-05-28T09:00:00.000Z","subTarefas":["Capítulo 1"]}]}]`
	cats, err := Normalize(decode(t, raw))
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.Equal(t, "Estudos", cats[0].Name)
	require.Equal(t, "Ler docs", cats[0].Tasks[0].Text)
	require.Equal(t, "2025-05-28T09:00:00.000Z", cats[0].Tasks[0].When)
	require.Equal(t, []string{"Capítulo 1"}, cats[0].Tasks[0].SubTasks)
}

func TestNormalizeCategoriasProperty(t *testing.T) {
	t.Parallel()

	raw := `{"categorias":[{"nomeCategoria":"Casa","tarefas":[{"textoTarefa":"Limpar"}]}],"apiUsed":"Gemini"}`
	cats, err := Normalize(decode(t, raw))
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.Equal(t, "Casa", cats[0].Name)
}

func TestNormalizeDataProperty(t *testing.T) {
	t.Parallel()

	raw := `{"data":[{"nomeCategoria":"Casa","tarefas":[]}]}`
	cats, err := Normalize(decode(t, raw))
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.Empty(t, cats[0].Tasks)
}

func TestNormalizeScansKeysForFirstArray(t *testing.T) {
	t.Parallel()

	raw := `{"apiUsed":"OpenAI","resultado":[{"nomeCategoria":"Geral","tarefas":[{"textoTarefa":"Algo"}]}]}`
	cats, err := Normalize(decode(t, raw))
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.Equal(t, "Geral", cats[0].Name)
}

func TestNormalizeRejectsWholeResponseOnBadElement(t *testing.T) {
	t.Parallel()

	// second element has a numeric textoTarefa; nothing is accepted
	raw := `[
	  {"nomeCategoria":"Ok","tarefas":[{"textoTarefa":"boa"}]},
	  {"nomeCategoria":"Ruim","tarefas":[{"textoTarefa":42}]}
	]`
	cats, err := Normalize(decode(t, raw))
	require.Error(t, err)
	require.Empty(t, cats)
}

func TestNormalizeRejectsNonStringSubTasks(t *testing.T) {
	t.Parallel()

	raw := `[{"nomeCategoria":"X","tarefas":[{"textoTarefa":"t","subTarefas":[1,2]}]}]`
	_, err := Normalize(decode(t, raw))
	require.Error(t, err)
}

func TestNormalizeRejectsNonStringDataHora(t *testing.T) {
	t.Parallel()

	raw := `[{"nomeCategoria":"X","tarefas":[{"textoTarefa":"t","dataHora":123}]}]`
	_, err := Normalize(decode(t, raw))
	require.Error(t, err)
}

func TestNormalizeAllowsNullDataHora(t *testing.T) {
	t.Parallel()

	raw := `[{"nomeCategoria":"X","tarefas":[{"textoTarefa":"t","dataHora":null,"subTarefas":null}]}]`
	cats, err := Normalize(decode(t, raw))
	require.NoError(t, err)
	require.Empty(t, cats[0].Tasks[0].When)
	require.NotNil(t, cats[0].Tasks[0].SubTasks)
}

func TestNormalizeErrorShapedResponse(t *testing.T) {
	t.Parallel()

	_, err := Normalize(decode(t, `{"error":"quota exceeded"}`))
	require.Error(t, err)
}

func TestNormalizeScalarResponse(t *testing.T) {
	t.Parallel()

	_, err := Normalize(decode(t, `"just a string"`))
	require.Error(t, err)
}

func TestNormalizeEmptyArrayIsValid(t *testing.T) {
	t.Parallel()

	cats, err := Normalize(decode(t, `[]`))
	require.NoError(t, err)
	require.Empty(t, cats)
}
