package rag

import "strings"

// RefusalAnswer é a frase fixa de recusa. Precisa ser idêntica byte a byte
// em todas as recusas para que quem chama consiga compará-la.
const RefusalAnswer = "Não tenho informações necessárias para responder sua pergunta."

// promptTemplate nunca é alterado em runtime; {context} e {query} são os
// únicos pontos de substituição.
const promptTemplate = `CONTEXTO:
{context}

REGRAS:
- Responda somente com base no CONTEXTO.
- Se a informação não estiver explicitamente no CONTEXTO, responda:
  "` + RefusalAnswer + `"
- Nunca invente ou use conhecimento externo.
- Nunca produza opiniões ou interpretações além do que está escrito.

EXEMPLOS DE PERGUNTAS FORA DO CONTEXTO:
Pergunta: "Qual é a capital da França?"
Resposta: "` + RefusalAnswer + `"

Pergunta: "Quantos clientes temos em 2024?"
Resposta: "` + RefusalAnswer + `"

Pergunta: "Você acha isso bom ou ruim?"
Resposta: "` + RefusalAnswer + `"

PERGUNTA DO USUÁRIO:
{query}

RESPONDA A "PERGUNTA DO USUÁRIO"
`

// RenderPrompt substitui contexto e pergunta no template fixo. Função pura:
// mesma entrada, mesma saída. O texto inserido não é reprocessado, então
// um "{query}" dentro do contexto fica literal.
func RenderPrompt(context, question string) Prompt {
	r := strings.NewReplacer("{context}", context, "{query}", question)
	return Prompt(r.Replace(promptTemplate))
}
