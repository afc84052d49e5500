// Package entity turns the raw record batches of a map export into typed
// entity tables and resolves the index references between them.
package entity

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"fmgimport/internal/domain"
	"fmgimport/internal/parser"
)

// BuildStats counts elements that were kept as placeholders for reasons other
// than being a reserved slot.
type BuildStats struct {
	Malformed       int
	Removed         int
	Unnamed         int
	IndexMismatches int
}

// Model holds one import's entity tables. Every table keeps its sentinel and
// placeholder slots so that index lookups line up with the raw batch; the
// accessors without the All prefix return only the real entities.
type Model struct {
	Width  string
	Height string
	Stats  BuildStats

	cultures  []domain.Culture
	countries []domain.Country
	provinces []domain.Province
	burgs     []domain.Burg
	religions []domain.Religion
	rivers    []domain.River
}

// Build decodes the batches of raw into a Model. It fails with a
// *domain.MissingBatchError when one of the required categories is absent.
func Build(raw *parser.RawBatches) (*Model, error) {
	if err := raw.Require(domain.RequiredCategories...); err != nil {
		return nil, err
	}

	m := &Model{Width: raw.Width, Height: raw.Height}
	var err error

	m.cultures, err = decodeBatch(raw, domain.CategoryCulture, func(c *domain.Culture, el element) {
		c.I, c.SourceI = el.pos, el.sourceI
		c.Placeholder = m.reserved(el, c.Removed, c.Name)
	})
	if err != nil {
		return nil, err
	}

	m.countries, err = decodeBatch(raw, domain.CategoryCountry, func(c *domain.Country, el element) {
		c.I, c.SourceI = el.pos, el.sourceI
		c.Placeholder = m.reserved(el, c.Removed, c.Name)
	})
	if err != nil {
		return nil, err
	}

	m.burgs, err = decodeBatch(raw, domain.CategoryBurg, func(b *domain.Burg, el element) {
		b.I, b.SourceI = el.pos, el.sourceI
		b.Placeholder = m.reserved(el, b.Removed, b.Name)
	})
	if err != nil {
		return nil, err
	}

	m.provinces, err = decodeBatch(raw, domain.CategoryProvince, func(p *domain.Province, el element) {
		p.I, p.SourceI = el.pos, el.sourceI
		p.Placeholder = m.reserved(el, p.Removed, p.Name)
	})
	if err != nil {
		return nil, err
	}

	if raw.Has(domain.CategoryReligion) {
		m.religions, err = decodeBatch(raw, domain.CategoryReligion, func(r *domain.Religion, el element) {
			r.I, r.SourceI = el.pos, el.sourceI
			r.Placeholder = m.reserved(el, r.Removed, r.Name)
		})
		if err != nil {
			return nil, err
		}
	}

	if raw.Has(domain.CategoryRiver) {
		m.rivers, err = decodeBatch(raw, domain.CategoryRiver, func(r *domain.River, el element) {
			r.I, r.SourceI = el.pos, el.sourceI
			r.Placeholder = el.empty || el.malformed
			if el.malformed {
				m.Stats.Malformed++
			}
		})
		if err != nil {
			return nil, err
		}
	}

	return m, nil
}

// element describes one raw batch element before it is typed.
type element struct {
	pos       int
	sourceI   int
	empty     bool
	malformed bool
}

// reserved reports whether an element is a placeholder slot: position 0, an
// empty or non-object filler, a malformed record, a removed record or a record
// without a name. Non-reserved records whose embedded i disagrees with their
// position are counted.
func (m *Model) reserved(el element, removed bool, name string) bool {
	switch {
	case el.pos == 0, el.empty:
		return true
	case el.malformed:
		m.Stats.Malformed++
		return true
	case removed:
		m.Stats.Removed++
		return true
	case name == "":
		m.Stats.Unnamed++
		return true
	}
	if el.sourceI != el.pos {
		m.Stats.IndexMismatches++
	}
	return false
}

// decodeBatch decodes every element of a category's batch into T, calling finish
// with the element's position and shape. The returned slice always has one
// entry per raw element.
func decodeBatch[T any](raw *parser.RawBatches, category domain.Category, finish func(*T, element)) ([]T, error) {
	batch, _ := raw.Batch(category)
	var elems []json.RawMessage
	if err := json.Unmarshal(batch, &elems); err != nil {
		return nil, fmt.Errorf("entity.Build: decoding %s batch: %w", category, err)
	}

	out := make([]T, len(elems))
	for pos, data := range elems {
		el := inspect(pos, data)
		if !el.empty {
			if err := json.Unmarshal(data, &out[pos]); err != nil {
				var zero T
				out[pos] = zero
				el.malformed = true
			}
		}
		finish(&out[pos], el)
	}
	return out, nil
}

// inspect reads an element's embedded i and whether it carries any fields. An
// element without an embedded i takes its position.
func inspect(pos int, data json.RawMessage) element {
	el := element{pos: pos, sourceI: pos}
	v := gjson.ParseBytes(data)
	if !v.IsObject() {
		el.empty = true
		return el
	}
	el.empty = true
	v.ForEach(func(_, _ gjson.Result) bool {
		el.empty = false
		return false
	})
	if i := v.Get("i"); i.Type == gjson.Number {
		el.sourceI = int(i.Int())
	}
	return el
}

// AllCultures returns the full culture table, sentinel included.
func (m *Model) AllCultures() []domain.Culture { return m.cultures }

// AllCountries returns the full country table, sentinel included.
func (m *Model) AllCountries() []domain.Country { return m.countries }

// AllBurgs returns the full burg table, filler included.
func (m *Model) AllBurgs() []domain.Burg { return m.burgs }

// AllProvinces returns the full province table, filler included.
func (m *Model) AllProvinces() []domain.Province { return m.provinces }

// Cultures returns the non-placeholder cultures in index order.
func (m *Model) Cultures() []domain.Culture {
	return visible(m.cultures, func(c domain.Culture) bool { return c.Placeholder })
}

// Countries returns the non-placeholder countries in index order.
func (m *Model) Countries() []domain.Country {
	return visible(m.countries, func(c domain.Country) bool { return c.Placeholder })
}

// Burgs returns the non-placeholder burgs in index order.
func (m *Model) Burgs() []domain.Burg {
	return visible(m.burgs, func(b domain.Burg) bool { return b.Placeholder })
}

// Provinces returns the non-placeholder provinces in index order.
func (m *Model) Provinces() []domain.Province {
	return visible(m.provinces, func(p domain.Province) bool { return p.Placeholder })
}

// Religions returns the non-placeholder religions. Empty when the export had no
// religion batch.
func (m *Model) Religions() []domain.Religion {
	return visible(m.religions, func(r domain.Religion) bool { return r.Placeholder })
}

// Rivers returns the rivers. Empty when the export had no river batch.
func (m *Model) Rivers() []domain.River {
	return visible(m.rivers, func(r domain.River) bool { return r.Placeholder })
}

func visible[T any](all []T, placeholder func(T) bool) []T {
	out := make([]T, 0, len(all))
	for _, e := range all {
		if !placeholder(e) {
			out = append(out, e)
		}
	}
	return out
}
