package entity

import (
	"errors"

	"go.uber.org/zap"

	"fmgimport/internal/domain"
)

// LinkedCountry is a country with its culture resolved.
type LinkedCountry struct {
	Country domain.Country
	Culture domain.Culture
}

// LinkedBurg is a burg with its culture and owning country resolved.
type LinkedBurg struct {
	Burg    domain.Burg
	Culture domain.Culture
	State   domain.Country
}

// LinkedProvince is a province with its anchor burg, if any. Anchor is nil when
// the province names no burg or the burg cannot be found.
type LinkedProvince struct {
	Province domain.Province
	Anchor   *domain.Burg
}

// LinkedModel is the resolved form of a Model. Records whose references could
// not be resolved are left out and listed in Dangling.
type LinkedModel struct {
	Width     string
	Height    string
	Cultures  []domain.Culture
	Countries []LinkedCountry
	Burgs     []LinkedBurg
	Provinces []LinkedProvince
	Religions []domain.Religion
	Rivers    []domain.River
	Dangling  []*domain.DanglingReferenceError
}

// Lookup resolves canonical indices against a Model's full tables.
type Lookup struct {
	cultures  []domain.Culture
	countries []domain.Country
	burgs     map[int]domain.Burg
}

// NewLookup indexes m. Cultures and countries are looked up by position, burgs
// by their embedded i.
func NewLookup(m *Model) *Lookup {
	l := &Lookup{
		cultures:  m.cultures,
		countries: m.countries,
		burgs:     make(map[int]domain.Burg, len(m.burgs)),
	}
	for _, b := range m.burgs {
		if b.Placeholder {
			continue
		}
		if _, dup := l.burgs[b.SourceI]; !dup {
			l.burgs[b.SourceI] = b
		}
	}
	return l
}

// Culture returns the culture at index, sentinel included.
func (l *Lookup) Culture(index int, source string) (domain.Culture, error) {
	if index < 0 || index >= len(l.cultures) {
		return domain.Culture{}, &domain.DanglingReferenceError{Kind: domain.RefCulture, Index: index, Source: source}
	}
	return l.cultures[index], nil
}

// Country returns the country at index, sentinel included.
func (l *Lookup) Country(index int, source string) (domain.Country, error) {
	if index < 0 || index >= len(l.countries) {
		return domain.Country{}, &domain.DanglingReferenceError{Kind: domain.RefCountry, Index: index, Source: source}
	}
	return l.countries[index], nil
}

// Burg returns the first real burg whose embedded i equals index.
func (l *Lookup) Burg(index int, source string) (domain.Burg, error) {
	b, ok := l.burgs[index]
	if !ok {
		return domain.Burg{}, &domain.DanglingReferenceError{Kind: domain.RefBurg, Index: index, Source: source}
	}
	return b, nil
}

// Resolver links the entities of a Model.
type Resolver struct {
	logger *zap.Logger
}

// NewResolver returns a Resolver that logs skipped records to logger.
func NewResolver(logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{logger: logger.Named("resolver")}
}

// Resolve links every real country, burg and province of m. A country or burg
// with a dangling reference is omitted. A province whose anchor burg is missing
// is kept without an anchor. Either way the reference is recorded and logged.
func (r *Resolver) Resolve(m *Model) *LinkedModel {
	lookup := NewLookup(m)
	out := &LinkedModel{
		Width:     m.Width,
		Height:    m.Height,
		Cultures:  m.Cultures(),
		Religions: m.Religions(),
		Rivers:    m.Rivers(),
	}

	for _, c := range m.Countries() {
		culture, err := lookup.Culture(c.Culture, "country "+c.Name)
		if err != nil {
			r.dangling(out, err)
			continue
		}
		out.Countries = append(out.Countries, LinkedCountry{Country: c, Culture: culture})
	}

	for _, b := range m.Burgs() {
		culture, err := lookup.Culture(b.Culture, "burg "+b.Name)
		if err != nil {
			r.dangling(out, err)
			continue
		}
		state, err := lookup.Country(b.State, "burg "+b.Name)
		if err != nil {
			r.dangling(out, err)
			continue
		}
		out.Burgs = append(out.Burgs, LinkedBurg{Burg: b, Culture: culture, State: state})
	}

	for _, p := range m.Provinces() {
		lp := LinkedProvince{Province: p}
		if p.Burg != 0 {
			anchor, err := lookup.Burg(p.Burg, "province "+p.Name)
			if err != nil {
				r.dangling(out, err)
			} else {
				lp.Anchor = &anchor
			}
		}
		out.Provinces = append(out.Provinces, lp)
	}

	return out
}

func (r *Resolver) dangling(out *LinkedModel, err error) {
	var ref *domain.DanglingReferenceError
	if !errors.As(err, &ref) {
		return
	}
	out.Dangling = append(out.Dangling, ref)
	r.logger.Warn("skipping dangling reference",
		zap.String("kind", ref.Kind),
		zap.Int("index", ref.Index),
		zap.String("source", ref.Source),
	)
}
