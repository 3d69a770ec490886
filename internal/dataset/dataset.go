// Package dataset reads and writes the flat-text dataset format shared by
// the build, fit, and predict stages.
//
// Each document is stored as a header line `<id> <class>` followed by one
// `<term> <count>` line per term; a blank line separates documents. Writer
// and reader are exact inverses.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/chriscorrea/topical/internal/sample"
)

// Record is one serialized document: its corpus ID, gold class, and
// bag-of-terms representation.
type Record struct {
	ID    int
	Class sample.Label
	Terms sample.Sample
}

// Write serializes records to w. Records are written in ascending ID order
// with terms sorted lexicographically so output is deterministic.
func Write(w io.Writer, records []Record) error {
	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	bw := bufio.NewWriter(w)
	for i, rec := range sorted {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "%d %s\n", rec.ID, rec.Class)

		terms := make([]string, 0, len(rec.Terms))
		for term := range rec.Terms {
			terms = append(terms, term)
		}
		sort.Strings(terms)
		for _, term := range terms {
			fmt.Fprintf(bw, "%s %d\n", term, rec.Terms[term])
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return nil
}

// Read parses a dataset previously written with Write.
func Read(r io.Reader) ([]Record, error) {
	var records []Record
	var current *Record

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current != nil {
				records = append(records, *current)
				current = nil
			}
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed dataset line %q", line)
		}

		if current == nil {
			// header line: <id> <class>
			id, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, fmt.Errorf("malformed document header %q: %w", line, err)
			}
			class, err := sample.ParseKnownLabel(fields[1])
			if err != nil {
				return nil, fmt.Errorf("malformed document header %q: %w", line, err)
			}
			current = &Record{ID: id, Class: class, Terms: make(sample.Sample)}
			continue
		}

		// term line: <term> <count>
		count, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("malformed term line %q: %w", line, err)
		}
		if count < 1 {
			return nil, fmt.Errorf("non-positive term count in line %q", line)
		}
		current.Terms[fields[0]] = count
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	if current != nil {
		records = append(records, *current)
	}

	return records, nil
}
