package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/josinaldojr/docs-chat-rag/internal/rag"
	"github.com/schollz/progressbar/v3"
)

// DefaultInclude casa todos os formatos suportados em qualquer subdiretório.
const DefaultInclude = "**/*.{pdf,md,txt,html,htm}"

// Importer lê arquivos, quebra em trechos, embeda e grava no repositório.
// É o colaborador que popula o índice consultado pelo pipeline.
type Importer struct {
	repo       rag.Repository
	embeddings rag.EmbeddingsClient
	splitter   *Splitter

	// ShowProgress liga a barra de progresso no terminal.
	ShowProgress bool
}

type Stats struct {
	Documents int // documentos com pelo menos um trecho
	Chunks    int
}

type pendingChunk struct {
	source string
	index  int
	text   string
}

func NewImporter(repo rag.Repository, embeddings rag.EmbeddingsClient, splitter *Splitter) *Importer {
	if splitter == nil {
		splitter = NewSplitter(DefaultChunkSize, DefaultChunkOverlap)
	}
	return &Importer{repo: repo, embeddings: embeddings, splitter: splitter}
}

// Collect devolve, ordenados, os caminhos sob root que casam algum dos
// padrões doublestar e têm extensão suportada.
func Collect(root string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultInclude}
	}

	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(os.DirFS(root), pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			path := filepath.Join(root, filepath.FromSlash(m))
			if seen[path] || !IsSupported(path) {
				continue
			}
			seen[path] = true
			files = append(files, path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// Document é um texto já extraído e a sua origem (caminho ou URL).
type Document struct {
	Source string
	Text   string
}

// LoadFiles extrai o texto de cada arquivo; arquivos sem texto são ignorados.
func LoadFiles(files []string) ([]Document, error) {
	docs := make([]Document, 0, len(files))
	for _, path := range files {
		content, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		if content == "" {
			slog.Warn("no text extracted, skipping", "file", path)
			continue
		}
		docs = append(docs, Document{Source: path, Text: content})
	}
	return docs, nil
}

// Import garante a coleção, opcionalmente zera o conteúdo e grava os documentos.
func (im *Importer) Import(ctx context.Context, docs []Document, reset bool) (Stats, error) {
	var stats Stats

	if err := im.repo.EnsureCollection(ctx); err != nil {
		return stats, fmt.Errorf("ensure collection: %w", err)
	}
	if reset {
		if err := im.repo.DeleteCollection(ctx); err != nil {
			return stats, fmt.Errorf("reset collection: %w", err)
		}
		slog.Info("collection reset")
	}

	var pending []pendingChunk
	for _, d := range docs {
		chunks := im.splitter.Split(d.Text)
		if len(chunks) == 0 {
			continue
		}
		stats.Documents++
		for i, text := range chunks {
			pending = append(pending, pendingChunk{source: d.Source, index: i, text: text})
		}
	}

	var bar *progressbar.ProgressBar
	if im.ShowProgress {
		bar = progressbar.Default(int64(len(pending)), "embedding")
	} else {
		bar = progressbar.DefaultSilent(int64(len(pending)))
	}

	for _, p := range pending {
		vec, err := im.embeddings.Embed(ctx, p.text)
		if err != nil {
			return stats, fmt.Errorf("embed %s chunk %d: %w", p.source, p.index, err)
		}

		metadata := map[string]any{
			"source": p.source,
			"chunk":  p.index,
		}
		if lang := DetectLang(p.text); lang != "" {
			metadata["lang"] = lang
		}

		id, err := im.repo.InsertChunk(ctx, &rag.DocChunk{Content: p.text, Metadata: metadata}, vec)
		if err != nil {
			return stats, fmt.Errorf("insert %s chunk %d: %w", p.source, p.index, err)
		}
		stats.Chunks++
		_ = bar.Add(1)

		slog.Debug("chunk imported", "id", id, "source", p.source, "chunk", p.index, "len", len(p.text))
	}

	return stats, nil
}
