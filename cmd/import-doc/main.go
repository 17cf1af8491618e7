package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/josinaldojr/docs-chat-rag/internal/config"
	"github.com/josinaldojr/docs-chat-rag/internal/db"
	"github.com/josinaldojr/docs-chat-rag/internal/ingest"
	"github.com/josinaldojr/docs-chat-rag/internal/llm"
)

func main() {
	configFlag := flag.String("config", "", "arquivo YAML de configuração (opcional)")
	pathFlag := flag.String("path", "", "diretório base para arquivos locais (.pdf/.md/.txt/.html)")
	includeFlag := flag.String("include", ingest.DefaultInclude, "padrões doublestar separados por vírgula, relativos a --path")
	baseURLFlag := flag.String("base-url", "", "URL base para crawl HTTP (opcional)")
	maxPagesFlag := flag.Int("max-pages", 50, "limite de páginas para crawl HTTP")
	chunkSize := flag.Int("chunk-size", ingest.DefaultChunkSize, "tamanho máximo do trecho, em caracteres")
	chunkOverlap := flag.Int("chunk-overlap", ingest.DefaultChunkOverlap, "sobreposição entre trechos, em caracteres")
	reset := flag.Bool("reset", false, "apaga os trechos da coleção antes de importar")
	flag.Parse()

	if *pathFlag == "" && *baseURLFlag == "" {
		log.Fatal("use pelo menos uma origem: --path ou --base-url")
	}

	ctx := context.Background()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("configuração inválida: %v", err)
	}
	slog.SetDefault(cfg.Logger())

	repo, err := db.OpenRepository(ctx, cfg.DatabaseURL, cfg.CollectionName)
	if err != nil {
		log.Fatalf("erro ao abrir o banco vetorial: %v", err)
	}
	defer repo.Close()

	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("erro ao iniciar o cliente de embeddings: %v", err)
	}

	var docs []ingest.Document

	if *pathFlag != "" {
		files, err := ingest.Collect(*pathFlag, strings.Split(*includeFlag, ","))
		if err != nil {
			log.Fatalf("erro listando arquivos: %v", err)
		}
		log.Printf("📂 %d arquivos encontrados em %s", len(files), *pathFlag)

		loaded, err := ingest.LoadFiles(files)
		if err != nil {
			log.Fatalf("erro lendo arquivos: %v", err)
		}
		docs = append(docs, loaded...)
	}

	if *baseURLFlag != "" {
		log.Printf("🌐 Crawl HTTP: base=%s maxPages=%d", *baseURLFlag, *maxPagesFlag)
		pages, err := ingest.Crawl(ctx, &http.Client{Timeout: 30 * time.Second}, *baseURLFlag, *maxPagesFlag)
		if err != nil {
			log.Fatalf("erro no crawl HTTP: %v", err)
		}
		docs = append(docs, pages...)
	}

	importer := ingest.NewImporter(repo, client, ingest.NewSplitter(*chunkSize, *chunkOverlap))
	importer.ShowProgress = true

	stats, err := importer.Import(ctx, docs, *reset)
	if err != nil {
		log.Fatalf("erro importando: %v", err)
	}

	log.Printf("✅ Importação concluída: %d documentos, %d trechos na coleção %s.", stats.Documents, stats.Chunks, cfg.CollectionName)
}
