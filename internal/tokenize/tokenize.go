// Package tokenize implements the lexical normalization pipeline that turns
// raw news text into a bag of normalized terms.
//
// Normalization applies, in order: whitespace tokenization, punctuation
// removal, case folding, stopword filtering, and snowball stemming. A token
// that survives the pipeline is called a term. The Tokenizer also gathers
// corpus-wide frequency statistics to support top-term reporting; these are
// telemetry only and have no effect on classification.
package tokenize

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"

	"github.com/chriscorrea/topical/internal/sample"
)

// Token pairs a raw token with its position index in the source document.
type Token struct {
	Text string
	Pos  int
}

// Tokenizer normalizes raw documents into terms. The stopword set is
// provided at construction and is immutable afterward; a single Tokenizer
// accumulates frequency statistics across every document it processes.
type Tokenizer struct {
	stopwords []string // sorted for binary search

	unnormalized map[string]int
	normalized   map[string]int

	totalRawTokens  int
	totalTermTokens int
}

// NewTokenizer creates a Tokenizer with the given stopword list.
// The list is copied and sorted; the caller's slice is not retained.
func NewTokenizer(stopwords []string) *Tokenizer {
	sorted := make([]string, len(stopwords))
	copy(sorted, stopwords)
	sort.Strings(sorted)

	return &Tokenizer{
		stopwords:    sorted,
		unnormalized: make(map[string]int),
		normalized:   make(map[string]int),
	}
}

// LoadStopwords reads a whitespace-separated stopword list from path.
// The normalizer cannot operate without its stopword list, so any read
// failure or an empty list is an error.
func LoadStopwords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open stopword list: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stopword list: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("stopword list %q is empty", path)
	}

	slog.Debug("Loaded stopword list", "path", path, "count", len(words))
	return words, nil
}

// isDelimiter reports whether r is one of the whitespace characters that
// separate tokens: space, tab, newline, carriage return, vertical tab,
// and form feed.
func isDelimiter(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

// Tokenize splits text on whitespace into tokens paired with their position
// index. Runs of consecutive delimiters collapse, so no empty tokens are
// produced.
func (t *Tokenizer) Tokenize(text string) []Token {
	fields := strings.FieldsFunc(text, isDelimiter)

	tokens := make([]Token, len(fields))
	for i, field := range fields {
		tokens[i] = Token{Text: field, Pos: i}
	}
	t.totalRawTokens += len(tokens)

	return tokens
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// RemovePunctuation strips punctuation from a token: the characters
// " , < > and ' are removed from anywhere in the token, and any run of
// non-alphanumeric characters is trimmed from both ends. A token made
// entirely of punctuation becomes the empty string.
func RemovePunctuation(token string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '"', ',', '<', '>', '\'':
			return -1
		}
		return r
	}, token)

	return strings.TrimFunc(cleaned, func(r rune) bool {
		return !isAlnum(r)
	})
}

// IsStopword reports whether word is in the stopword list. Lookup is a
// binary search over the sorted list.
func (t *Tokenizer) IsStopword(word string) bool {
	i := sort.SearchStrings(t.stopwords, word)
	return i < len(t.stopwords) && t.stopwords[i] == word
}

// Normalize applies the full pipeline to a single token: punctuation
// removal, lowercasing, stopword filtering, and stemming. Stopwords and
// tokens consisting entirely of punctuation normalize to the empty string,
// which callers must drop.
func (t *Tokenizer) Normalize(token string) string {
	word := strings.ToLower(RemovePunctuation(token))
	if word == "" || t.IsStopword(word) {
		return ""
	}

	stemmed, err := snowball.Stem(word, "english", false)
	if err != nil {
		// if stemming fails, keep the unstemmed word
		return word
	}
	return stemmed
}

// NormalizeAll normalizes every token and drops the empty results,
// preserving the surviving tokens' original order and positions.
func (t *Tokenizer) NormalizeAll(tokens []Token) []Token {
	terms := tokens[:0:0]
	for _, tok := range tokens {
		term := t.Normalize(tok.Text)
		if term == "" {
			continue
		}
		terms = append(terms, Token{Text: term, Pos: tok.Pos})
	}
	return terms
}

// DocTerms tokenizes and normalizes a raw document and folds the surviving
// terms into a Sample. Frequency statistics are updated as a side effect.
func (t *Tokenizer) DocTerms(raw string) sample.Sample {
	tokens := t.Tokenize(raw)
	for _, tok := range tokens {
		t.unnormalized[tok.Text]++
	}

	terms := t.NormalizeAll(tokens)
	for _, term := range terms {
		t.normalized[term.Text]++
	}
	t.totalTermTokens += len(terms)

	smp := make(sample.Sample, len(terms))
	for _, term := range terms {
		smp[term.Text]++
	}

	slog.Debug("Normalized document", "rawTokens", len(tokens), "terms", len(terms), "distinctTerms", len(smp))
	return smp
}
