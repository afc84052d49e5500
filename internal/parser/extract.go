package parser

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"

	"fmgimport/internal/domain"
)

// lineBreaks splits on any run of CR/LF characters.
var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// Header field positions of the canvas size on the first, pipe-delimited line.
const (
	headerWidthField  = 4
	headerHeightField = 5
)

// Stats counts what happened to each line during extraction.
type Stats struct {
	Lines                int
	ParseFailures        int
	ClassificationMisses int
	Classified           int
	// Overwritten counts batches replaced by a later line of the same category.
	Overwritten int
}

// RawBatches holds the record batches found in one map export, keyed by category,
// plus the canvas size from the header line. It is not modified after Extract returns.
type RawBatches struct {
	Width   string
	Height  string
	Stats   Stats
	batches map[domain.Category]json.RawMessage
}

// Extract splits a map export into lines, reads the canvas size from the header
// and keeps every line that classifies as a record batch. Lines that are not JSON
// or match no category are dropped; when a category appears more than once the
// last line wins.
func Extract(text string) *RawBatches {
	lines := lineBreaks.Split(text, -1)
	raw := &RawBatches{
		batches: make(map[domain.Category]json.RawMessage),
	}
	raw.Stats.Lines = len(lines)

	header := strings.Split(lines[0], "|")
	if len(header) > headerWidthField {
		raw.Width = header[headerWidthField]
	}
	if len(header) > headerHeightField {
		raw.Height = header[headerHeightField]
	}

	for _, line := range lines {
		category, parsed := classify(line)
		switch {
		case !parsed:
			raw.Stats.ParseFailures++
		case category == domain.CategoryNone:
			raw.Stats.ClassificationMisses++
		default:
			raw.Stats.Classified++
			if _, seen := raw.batches[category]; seen {
				raw.Stats.Overwritten++
			}
			raw.batches[category] = json.RawMessage(line)
		}
	}
	return raw
}

// Batch returns the raw JSON array stored for a category.
func (b *RawBatches) Batch(category domain.Category) (json.RawMessage, bool) {
	batch, ok := b.batches[category]
	return batch, ok
}

// Has reports whether a batch of the given category was found.
func (b *RawBatches) Has(category domain.Category) bool {
	_, ok := b.batches[category]
	return ok
}

// Categories lists the categories present, in category order.
func (b *RawBatches) Categories() []domain.Category {
	out := make([]domain.Category, 0, len(b.batches))
	for c := range b.batches {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Require returns a *domain.MissingBatchError for the first listed category that
// was not found.
func (b *RawBatches) Require(categories ...domain.Category) error {
	for _, c := range categories {
		if !b.Has(c) {
			return &domain.MissingBatchError{Category: c}
		}
	}
	return nil
}
