package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/josinaldojr/docs-chat-rag/internal/rag"
)

const askTimeout = 60 * time.Second

// Asker é o ponto de entrada do pipeline consumido pela API.
type Asker interface {
	Ask(ctx context.Context, req rag.AskRequest) (*rag.AskResponse, error)
}

type Handler struct {
	ragService Asker
}

func NewHandler(ragService Asker) *Handler {
	return &Handler{ragService: ragService}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	var req rag.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), askTimeout)
	defer cancel()

	resp, err := h.ragService.Ask(ctx, req)
	if err != nil {
		status := statusFor(err)
		if status < http.StatusInternalServerError {
			http.Error(w, err.Error(), status)
			return
		}
		// detalhe do banco/SDK fica só no log
		slog.Error("ask failed", "status", status, "err", err)
		http.Error(w, publicMessage(err), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, rag.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, rag.ErrConnection):
		return http.StatusServiceUnavailable
	case errors.Is(err, rag.ErrAuthentication), errors.Is(err, rag.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, rag.ErrConnection):
		return "vector store unavailable"
	case errors.Is(err, rag.ErrAuthentication):
		return "upstream credentials rejected"
	case errors.Is(err, rag.ErrGeneration):
		return "answer generation failed"
	default:
		return "internal error"
	}
}
