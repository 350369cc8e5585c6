package llm

import (
	"fmt"
	"time"
)

const systemPrompt = "Você é um assistente especialista em organizar textos em planos de ação estruturados em JSON."

// extractionPrompt asks the model for a bare JSON array of categories in
// the exact transient shape the normalizer accepts. The reference date
// lets the model resolve weekday mentions like "[QUARTA 08:30]".
func extractionPrompt(text string, ref time.Time) string {
	refISO := ref.UTC().Format(time.RFC3339)
	return fmt.Sprintf(`Você é um assistente especialista em organizar textos em planos de ação estruturados em JSON. A data de referência para cálculo de dias da semana é %s.
Analise o texto abaixo e extraia:
1. Categorias principais (linhas que começam com "Categoria:" ou títulos de seção).
2. Tarefas principais dentro de cada categoria (linhas que começam com "Tarefa:").
3. Sub-tarefas de cada tarefa (linhas iniciadas com hífen "-", asterisco "*" ou "Sub-tarefa:").
4. Data e hora de início da tarefa, se indicada no texto, geralmente entre colchetes como "[QUARTA 08:30]" ou "[15/07 10:00]". O texto da tarefa deve ficar limpo, sem a informação de data/hora extraída.

Retorne EXCLUSIVAMENTE um array JSON de objetos de categoria. Cada objeto tem:
- "nomeCategoria": string
- "tarefas": array de objetos com:
    - "textoTarefa": string (texto limpo da tarefa)
    - "dataHora": string ISO 8601 "YYYY-MM-DDTHH:mm:ss.sssZ" (opcional, somente se houver data válida)
    - "subTarefas": array de strings (vazio se não houver)

Se não houver categorias explícitas mas houver tarefas, use uma categoria "Geral". Se a data/hora não puder ser interpretada, omita "dataHora" ou use null. A saída deve ser JSON válido e nada mais, sem explicações e sem blocos de markdown.

Exemplo de saída:
[{"nomeCategoria": "Estudos", "tarefas": [{"textoTarefa": "Aprender React", "dataHora": "2025-05-28T09:00:00.000Z", "subTarefas": ["Ler docs"]}]}]

Texto para análise:
---
%s
---`, refISO, text)
}
