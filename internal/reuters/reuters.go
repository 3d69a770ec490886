// Package reuters reads the Reuters-21578 corpus distribution.
//
// The corpus ships as .sgm files, each holding roughly a thousand news
// documents wrapped in SGML markup. The markup is close enough to HTML
// that goquery's lenient parser handles it directly, decoding character
// entities along the way, so no separate entity preprocessor is needed.
package reuters

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/chriscorrea/topical/internal/sample"
)

// Split is a document's corpus split as assigned by the LEWISSPLIT
// attribute.
type Split int

const (
	// Train documents form the training set.
	Train Split = iota
	// Test documents form the evaluation set.
	Test
	// Unused documents belong to neither split.
	Unused
)

// String returns the string representation of the split.
func (s Split) String() string {
	switch s {
	case Train:
		return "train"
	case Test:
		return "test"
	default:
		return "unused"
	}
}

// Document is one Reuters news item: its corpus ID, split assignment, the
// topic labels attached to it, and its raw title+body text.
type Document struct {
	ID     int
	Split  Split
	Topics []sample.Label
	Text   string
}

// ListDataFiles returns the sorted paths of all .sgm files in dir.
func ListDataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset directory %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sgm") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no .sgm files found in %q", dir)
	}

	sort.Strings(files)
	return files, nil
}

// ParseFile extracts every document from one .sgm file.
func ParseFile(r io.Reader) ([]Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sgm markup: %w", err)
	}

	var docs []Document
	var parseErr error
	doc.Find("reuters").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		d, err := parseDocument(sel)
		if err != nil {
			parseErr = fmt.Errorf("document %d: %w", i, err)
			return false
		}
		docs = append(docs, d)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return docs, nil
}

// parseDocument converts one <REUTERS> element into a Document.
func parseDocument(sel *goquery.Selection) (Document, error) {
	idAttr, ok := sel.Attr("newid")
	if !ok {
		return Document{}, fmt.Errorf("missing NEWID attribute")
	}
	id, err := strconv.Atoi(idAttr)
	if err != nil {
		return Document{}, fmt.Errorf("malformed NEWID %q: %w", idAttr, err)
	}

	split := Unused
	switch sel.AttrOr("lewissplit", "") {
	case "TRAIN":
		split = Train
	case "TEST":
		split = Test
	}

	var topics []sample.Label
	sel.Find("topics d").Each(func(_ int, topic *goquery.Selection) {
		topics = append(topics, sample.ParseLabel(topic.Text()))
	})

	textSel := sel.Find("text").First()
	title := textSel.Find("title").First().Text()
	body := bodyText(textSel)

	return Document{
		ID:     id,
		Split:  split,
		Topics: topics,
		Text:   title + "\n" + body,
	}, nil
}

// bodyText extracts the news body from a <TEXT> element. HTML parsers
// ignore a nested <BODY> start tag, which flattens the body copy into the
// <TEXT> element itself, so when no body element survives we take the
// <TEXT> content with the title, dateline, and author fields removed.
func bodyText(textSel *goquery.Selection) string {
	if body := textSel.Find("body").First(); body.Length() > 0 {
		return body.Text()
	}

	clone := textSel.Clone()
	clone.Find("title, dateline, author").Remove()
	return strings.TrimSpace(clone.Text())
}

// TargetTopic returns the document's single topic among the five target
// classes, if it has exactly one. Documents with zero or multiple target
// topics are excluded from training and evaluation.
func (d Document) TargetTopic() (sample.Label, bool) {
	found := sample.Other
	count := 0
	for _, topic := range d.Topics {
		if topic == sample.Other {
			continue
		}
		found = topic
		count++
	}
	if count != 1 {
		return sample.Other, false
	}
	return found, true
}
