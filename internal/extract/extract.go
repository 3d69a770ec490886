// Package extract pulls readable article text out of HTML news pages so
// that arbitrary web articles can be classified with a trained model.
package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Text extracts the main article content from HTML and returns it as plain
// text, title first. Readability strips navigation, boilerplate, and
// markup, leaving the news copy the classifier should see.
//
// baseURL gives readability context for resolving relative links and may
// be nil. If the input does not look like HTML at all, it is returned
// verbatim so that plain-text files and stdin piping keep working.
func Text(content io.Reader, baseURL *url.URL) (string, error) {
	raw, err := io.ReadAll(content)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}

	text := string(raw)
	if !looksLikeHTML(text) {
		return strings.TrimSpace(text), nil
	}

	if baseURL == nil {
		baseURL = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(text), baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to extract article content: %w", err)
	}

	extracted := strings.TrimSpace(article.Title + "\n" + article.TextContent)
	if extracted == "" {
		return "", fmt.Errorf("no article content extracted")
	}

	return extracted, nil
}

// looksLikeHTML is a cheap heuristic: readability only makes sense when
// the content carries markup.
func looksLikeHTML(text string) bool {
	head := text
	if len(head) > 1024 {
		head = head[:1024]
	}
	head = strings.ToLower(head)

	return strings.Contains(head, "<html") ||
		strings.Contains(head, "<!doctype html") ||
		strings.Contains(head, "<body") ||
		strings.Contains(head, "<p>") ||
		strings.Contains(head, "<div")
}
