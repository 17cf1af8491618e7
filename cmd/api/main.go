package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/josinaldojr/docs-chat-rag/internal/app"
	"github.com/josinaldojr/docs-chat-rag/internal/config"
	apphttp "github.com/josinaldojr/docs-chat-rag/internal/http"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	slog.SetDefault(cfg.Logger())

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to init pipeline: %v", err)
	}
	defer a.Close()

	h := apphttp.NewHandler(a.Service)
	router := apphttp.NewRouter(h)

	addr := ":" + cfg.Port
	log.Printf("API listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, router))
}
