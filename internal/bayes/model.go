package bayes

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chriscorrea/topical/internal/sample"
)

// The persisted model is a flat text format: one `<class> <prior>` line per
// class, a blank line, then one `<term> <class> <likelihood>` line per
// (term, class) pair observed during training. Probabilities are written
// with shortest-round-trip formatting so that a written model reads back
// bit-identically and reproduces predictions exactly.

// WriteModel serializes a fitted classifier to w. Output ordering is
// deterministic: classes by ordinal, terms lexicographically.
func (c *Classifier) WriteModel(w io.Writer) error {
	if len(c.prior) == 0 {
		return fmt.Errorf("classifier is not fitted")
	}

	bw := bufio.NewWriter(w)

	for _, label := range sample.Labels() {
		prior, ok := c.prior[label]
		if !ok {
			continue
		}
		fmt.Fprintf(bw, "%s %s\n", label, formatProb(prior))
	}
	fmt.Fprintln(bw)

	terms := make([]string, 0, len(c.likelihood))
	for term := range c.likelihood {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	for _, term := range terms {
		classProbs := c.likelihood[term]
		for _, label := range sample.Labels() {
			p, ok := classProbs[label]
			if !ok {
				continue
			}
			fmt.Fprintf(bw, "%s %s %s\n", term, label, formatProb(p))
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write model: %w", err)
	}
	return nil
}

// ReadModel deserializes a classifier previously written with WriteModel.
// The vocabulary is reconstructed as the set of distinct terms carrying a
// likelihood entry, which equals the training vocabulary since every
// training term occurs in at least one class mega-document.
func ReadModel(r io.Reader) (*Classifier, error) {
	c := New()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	// prior block, terminated by a blank line
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed prior line %q", line)
		}
		label, err := sample.ParseKnownLabel(fields[0])
		if err != nil {
			return nil, fmt.Errorf("malformed prior line %q: %w", line, err)
		}
		prior, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed prior line %q: %w", line, err)
		}
		c.prior[label] = prior
	}

	// likelihood block, one (term, class) pair per line
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed likelihood line %q", line)
		}
		label, err := sample.ParseKnownLabel(fields[1])
		if err != nil {
			return nil, fmt.Errorf("malformed likelihood line %q: %w", line, err)
		}
		p, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("malformed likelihood line %q: %w", line, err)
		}

		term := fields[0]
		classProbs, ok := c.likelihood[term]
		if !ok {
			classProbs = make(map[sample.Label]float64)
			c.likelihood[term] = classProbs
		}
		classProbs[label] = p
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	if len(c.prior) == 0 {
		return nil, fmt.Errorf("model contains no classes")
	}

	c.vocabSize = len(c.likelihood)
	return c, nil
}

// formatProb renders a probability with the fewest digits that still parse
// back to the identical float64.
func formatProb(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}
