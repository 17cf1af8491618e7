package ingest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	wl "github.com/abadojack/whatlanggo"
	pdf "github.com/dslipak/pdf"
	"golang.org/x/net/html"
)

// SupportedExt lista as extensões que LoadFile sabe ler.
var SupportedExt = []string{".pdf", ".md", ".txt", ".html", ".htm"}

func IsSupported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range SupportedExt {
		if ext == e {
			return true
		}
	}
	return false
}

// LoadFile devolve o texto puro do arquivo, já limpo de bytes UTF-8 inválidos.
func LoadFile(path string) (string, error) {
	var content string

	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err := extractTextFromPDF(path)
		if err != nil {
			return "", fmt.Errorf("read pdf %s: %w", path, err)
		}
		content = text

	case ".html", ".htm":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		content = extractMainText(string(data))

	case ".md", ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		content = string(data)

	default:
		return "", fmt.Errorf("unsupported file type: %s", path)
	}

	return sanitizeUTF8(strings.TrimSpace(content)), nil
}

// DetectLang devolve o código de idioma (ex: "por", "eng") ou "" quando não dá pra saber.
func DetectLang(s string) string {
	info := wl.Detect(s)
	if !info.IsReliable() {
		return ""
	}
	return strings.ToLower(wl.LangToString(info.Lang))
}

func extractMainText(htmlStr string) string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return ""
	}

	var b strings.Builder
	var walk func(*html.Node, bool)

	walk = func(n *html.Node, skip bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				skip = true
			}
		}

		if n.Type == html.TextNode && !skip {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				b.WriteString(t)
				b.WriteString("\n")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, skip)
		}
	}
	walk(doc, false)

	var filtered []string
	for _, l := range strings.Split(b.String(), "\n") {
		l = strings.TrimSpace(l)
		if l != "" && len(l) > 1 {
			filtered = append(filtered, l)
		}
	}
	return strings.Join(filtered, "\n")
}

func extractTextFromPDF(path string) (string, error) {
	r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}

	reader, err := r.GetPlainText()
	if err != nil {
		return "", err
	}

	buf := bytes.NewBuffer(nil)
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// remove bytes inválidos para UTF-8 (evita erro 22021 no Postgres)
func sanitizeUTF8(s string) string {
	if s == "" || utf8.ValidString(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		b.WriteRune(r)
		s = s[size:]
	}
	return b.String()
}
