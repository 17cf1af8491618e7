package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Crawl baixa páginas HTML a partir de baseURL (BFS, mesmo host) até maxPages
// e devolve o texto principal de cada uma. Falhas por página são logadas e puladas.
func Crawl(ctx context.Context, client *http.Client, baseURL string, maxPages int) ([]Document, error) {
	if client == nil {
		client = http.DefaultClient
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	visited := make(map[string]bool)
	queue := []string{base.String()}
	var docs []Document

	for len(queue) > 0 && len(visited) < maxPages {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		body, err := fetch(ctx, client, current)
		if err != nil {
			slog.Warn("crawl fetch failed", "url", current, "err", err)
			continue
		}

		if text := sanitizeUTF8(strings.TrimSpace(extractMainText(body))); text != "" {
			docs = append(docs, Document{Source: current, Text: text})
		}

		for _, link := range extractLinks(body, base) {
			if !visited[link] {
				queue = append(queue, link)
			}
		}
	}

	return docs, nil
}

func fetch(ctx context.Context, client *http.Client, target string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func extractLinks(htmlStr string, base *url.URL) []string {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var links []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, a := range n.Attr {
				if a.Key != "href" {
					continue
				}
				h := strings.TrimSpace(a.Val)
				if h == "" || strings.HasPrefix(h, "#") {
					continue
				}
				u, err := url.Parse(h)
				if err != nil {
					continue
				}
				u = base.ResolveReference(u)
				if u.Host != base.Host || isAsset(u.Path) {
					continue
				}

				link := u.Scheme + "://" + u.Host + u.Path
				if !seen[link] {
					seen[link] = true
					links = append(links, link)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links
}

func isAsset(path string) bool {
	for _, ext := range []string{".css", ".js", ".png", ".jpg", ".svg"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
