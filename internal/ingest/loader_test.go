package ingest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_HTMLSkipsScripts(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "page.html", `<html><head><style>body{}</style><script>var x = 1;</script></head>
<body><h1>Relatório</h1><p>Receita de 2023 foi de $5M.</p><noscript>ative o js</noscript></body></html>`)

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Relatório\nReceita de 2023 foi de $5M." {
		t.Errorf("unexpected text %q", got)
	}
}

func TestLoadFile_TextIsTrimmedAndSanitized(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "notes.txt", "  linha válida\xff\n")

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "linha válida" {
		t.Errorf("unexpected text %q", got)
	}
}

func TestLoadFile_Unsupported(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "main.go", "package main")

	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected error for unsupported file")
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# a")
	writeFile(t, dir, "sub/b.txt", "b")
	writeFile(t, dir, "sub/deep/c.HTML", "<p>c</p>")
	writeFile(t, dir, "main.go", "package main")

	files, err := Collect(dir, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "sub", "b.txt"),
	}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], files[i])
		}
	}
}

func TestCollect_CustomPatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "docs/a.md", "a")
	writeFile(t, dir, "other/b.md", "b")

	files, err := Collect(dir, []string{"docs/**/*.md", "docs/*.md"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join(dir, "docs", "a.md") {
		t.Fatalf("expected only docs/a.md once, got %v", files)
	}
}
