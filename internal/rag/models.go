package rag

// DefaultTopK é o único default de quantidade de trechos usado em todas as camadas.
const DefaultTopK = 3

// DocChunk
// Um trecho de documento já ingerido, devolvido por uma busca vetorial.
// Score é a distância de cosseno até a pergunta: quanto MENOR, mais próximo (0..2).
type DocChunk struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Score    float64        `json:"score"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// Source devolve o identificador de origem gravado na ingestão, se houver.
func (c DocChunk) Source() string {
	if s, ok := c.Metadata["source"].(string); ok {
		return s
	}
	return ""
}

// RetrievalResult
// Trechos em ordem de ranking (melhor primeiro), a pergunta original e o
// contexto já montado a partir deles.
type RetrievalResult struct {
	Query   string     `json:"query"`
	Chunks  []DocChunk `json:"chunks"`
	Context string     `json:"context"`
}

// Prompt é o texto final enviado ao modelo.
type Prompt string

// AskRequest
// Payload da API /ask.
type AskRequest struct {
	Question string `json:"question"`
	TopK     int    `json:"topK,omitempty"` // opcional; se vazio, usa o default configurado
}

// AskResponse
// Resposta da API: texto do modelo + os trechos crus usados como contexto.
type AskResponse struct {
	Answer   string   `json:"answer"`
	Passages []string `json:"passages"`
}
