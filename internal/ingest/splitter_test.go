package ingest

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitter_ShortTextSingleChunk(t *testing.T) {
	s := NewSplitter(100, 10)

	chunks := s.Split("  Receita de 2023 foi de $5M.  ")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "Receita de 2023 foi de $5M." {
		t.Errorf("unexpected chunk %q", chunks[0])
	}
}

func TestSplitter_EmptyInput(t *testing.T) {
	if chunks := NewSplitter(100, 10).Split(" \n\n "); len(chunks) != 0 {
		t.Fatalf("expected no chunks, got %d", len(chunks))
	}
}

func TestSplitter_PrefersParagraphs(t *testing.T) {
	s := NewSplitter(30, 0)
	text := "Primeiro parágrafo curto.\n\nSegundo parágrafo curto.\n\nTerceiro."

	chunks := s.Split(text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %q", len(chunks), chunks)
	}
	if chunks[0] != "Primeiro parágrafo curto." {
		t.Errorf("unexpected first chunk %q", chunks[0])
	}
}

func TestSplitter_RespectsSizeWithOverlap(t *testing.T) {
	s := NewSplitter(50, 15)
	words := make([]string, 0, 60)
	for i := 0; i < 60; i++ {
		words = append(words, fmt.Sprintf("palavra%02d", i))
	}
	text := strings.Join(words, " ")

	chunks := s.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected several chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > 50 {
			t.Errorf("chunk %d has %d runes, above the limit", i, n)
		}
	}

	// com sobreposição, o fim de um chunk reaparece no começo do próximo
	last := chunks[0][strings.LastIndex(chunks[0], " ")+1:]
	if !strings.HasPrefix(chunks[1], last) {
		t.Errorf("expected overlap between chunks, got %q and %q", chunks[0], chunks[1])
	}
}

func TestSplitter_LongWordFallsBackToRunes(t *testing.T) {
	s := NewSplitter(10, 0)

	chunks := s.Split(strings.Repeat("ã", 25))
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %q", len(chunks), chunks)
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > 10 {
			t.Errorf("chunk %d has %d runes", i, n)
		}
	}
}
