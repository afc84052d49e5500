// Package export projects a resolved map model onto host documents and scene
// annotations.
package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"fmgimport/internal/domain"
	"fmgimport/internal/entity"
)

// CrossReference names a document another document links to.
type CrossReference struct {
	TargetCollection string
	TargetTitle      string
}

// Document is a host document ready to be created. Links to other documents
// appear in HTMLBody as @Ref markers until ResolveLinks rewrites them.
type Document struct {
	Collection      string
	Title           string
	HTMLBody        string
	CrossReferences []CrossReference
}

// LinkedDocument identifies the document an annotation opens.
type LinkedDocument struct {
	Collection string
	Title      string
}

// AnnotationDraft is a scene annotation before its linked document exists.
type AnnotationDraft struct {
	X              float64
	Y              float64
	IconKind       domain.IconKind
	Text           string
	Tint           string
	LinkedDocument LinkedDocument
}

// Projection is everything an import creates on the host, in creation order.
type Projection struct {
	Documents   []Document
	Annotations []AnnotationDraft
}

// DocumentsIn returns the documents of one collection, in index order.
func (p *Projection) DocumentsIn(collection string) []Document {
	var out []Document
	for _, d := range p.Documents {
		if d.Collection == collection {
			out = append(out, d)
		}
	}
	return out
}

// burgTint is the marker colour of every burg annotation.
const burgTint = "#00FF00"

var bodies = template.Must(template.New("bodies").Funcs(template.FuncMap{
	"text":      escapeText,
	"num":       formatNumber,
	"yesNo":     formatFlag,
	"ref":       refMarker,
	"provinces": formatProvinces,
}).Parse(`
{{- define "culture" -}}
<div>
<h3>{{text .Name}}</h3>
<h4>Type: {{text .Type}}</h4>
<h4>Expansionism: {{num .Expansionism}}</h4>
<h4>Color: {{text .Color}}</h4>
<h4>Code: {{text .Code}}</h4>
</div>
{{- end -}}

{{- define "country" -}}
<div>
<h3>{{text .Country.FullName}}</h3>
<h4>Type: {{text .Country.Type}}</h4>
<h4>Expansionism: {{num .Country.Expansionism}}</h4>
<h4>Color: {{text .Country.Color}}</h4>
<h4>Culture: {{ref .CultureRef .Culture.Name}}</h4>
<h4>Urban: {{num .Country.Urban}}</h4>
<h4>Rural: {{num .Country.Rural}}</h4>
<h4># of Burgs: {{.Country.Burgs}}</h4>
<h4>Area: {{num .Country.Area}}</h4>
<h4>Form: {{text .Country.Form}}</h4>
<h4>Government: {{text .Country.FormName}}</h4>
<h4>Provinces: {{provinces .Country.Provinces}}</h4>
</div>
{{- end -}}

{{- define "burg" -}}
<div>
<h3>{{text .Burg.Name}}</h3>
<h4>State: {{ref .StateRef .State.Name}}</h4>
<h4>Culture: {{ref .CultureRef .Culture.Name}}</h4>
<h4>Population: {{num .Burg.Population}}</h4>
<h4>Citadel: {{yesNo .Burg.Citadel}}</h4>
<h4>Capital: {{yesNo .Burg.Capital}}</h4>
<h4>Port: {{yesNo .Burg.Port}}</h4>
<h4>Plaza: {{yesNo .Burg.Plaza}}</h4>
<h4>Walls: {{yesNo .Burg.Walls}}</h4>
<h4>Shanty: {{yesNo .Burg.Shanty}}</h4>
<h4>Temple: {{yesNo .Burg.Temple}}</h4>
<h4>Feature: {{.Burg.Feature}}</h4>
</div>
{{- end -}}

{{- define "province" -}}
<div>
<h3>{{text .Province.Name}}</h3>
<h4>Type: {{text .Province.FormName}}</h4>
<h4>Full Name: {{text .Province.FullName}}</h4>
<h4>Color: {{text .Province.Color}}</h4>
</div>
{{- end -}}
`))

type countryView struct {
	entity.LinkedCountry
	CultureRef *CrossReference
}

type burgView struct {
	entity.LinkedBurg
	StateRef   *CrossReference
	CultureRef *CrossReference
}

// targets holds the titles of the documents a projection creates, per collection.
type targets map[string]map[string]bool

func (t targets) add(collection, title string) {
	if t[collection] == nil {
		t[collection] = make(map[string]bool)
	}
	t[collection][title] = true
}

// ref returns a cross-reference to title, or nil when the target is a sentinel
// or no document is projected for it.
func (t targets) ref(collection, title string, placeholder bool) *CrossReference {
	if placeholder || !t[collection][title] {
		return nil
	}
	return &CrossReference{TargetCollection: collection, TargetTitle: title}
}

// Project renders one document per culture, country, burg and province of m and
// one annotation draft per country with a pole, province with an anchor and burg.
func Project(m *entity.LinkedModel) (*Projection, error) {
	p := &Projection{}

	projected := targets{}
	for _, c := range m.Cultures {
		projected.add(domain.CollectionCultures, c.Name)
	}
	for _, c := range m.Countries {
		projected.add(domain.CollectionCountries, c.Country.Name)
	}

	for _, c := range m.Cultures {
		body, err := render("culture", c)
		if err != nil {
			return nil, err
		}
		p.Documents = append(p.Documents, Document{
			Collection: domain.CollectionCultures,
			Title:      c.Name,
			HTMLBody:   body,
		})
	}

	for _, c := range m.Countries {
		view := countryView{
			LinkedCountry: c,
			CultureRef:    projected.ref(domain.CollectionCultures, c.Culture.Name, c.Culture.Placeholder),
		}
		body, err := render("country", view)
		if err != nil {
			return nil, err
		}
		p.Documents = append(p.Documents, Document{
			Collection:      domain.CollectionCountries,
			Title:           c.Country.Name,
			HTMLBody:        body,
			CrossReferences: crossRefs(view.CultureRef),
		})
	}

	for _, b := range m.Burgs {
		view := burgView{
			LinkedBurg: b,
			StateRef:   projected.ref(domain.CollectionCountries, b.State.Name, b.State.Placeholder),
			CultureRef: projected.ref(domain.CollectionCultures, b.Culture.Name, b.Culture.Placeholder),
		}
		body, err := render("burg", view)
		if err != nil {
			return nil, err
		}
		p.Documents = append(p.Documents, Document{
			Collection:      domain.CollectionBurgs,
			Title:           b.Burg.Name,
			HTMLBody:        body,
			CrossReferences: crossRefs(view.StateRef, view.CultureRef),
		})
	}

	for _, pr := range m.Provinces {
		body, err := render("province", pr)
		if err != nil {
			return nil, err
		}
		p.Documents = append(p.Documents, Document{
			Collection: domain.CollectionProvinces,
			Title:      pr.Province.Name,
			HTMLBody:   body,
		})
	}

	for _, c := range m.Countries {
		if c.Country.Pole == nil {
			continue
		}
		p.Annotations = append(p.Annotations, AnnotationDraft{
			X:              c.Country.Pole.X,
			Y:              c.Country.Pole.Y,
			IconKind:       domain.IconCountry,
			Text:           c.Country.Name,
			Tint:           c.Country.Color,
			LinkedDocument: LinkedDocument{Collection: domain.CollectionCountries, Title: c.Country.Name},
		})
	}
	for _, pr := range m.Provinces {
		if pr.Anchor == nil {
			continue
		}
		p.Annotations = append(p.Annotations, AnnotationDraft{
			X:              pr.Anchor.X,
			Y:              pr.Anchor.Y,
			IconKind:       domain.IconProvince,
			Text:           pr.Province.Name,
			Tint:           pr.Province.Color,
			LinkedDocument: LinkedDocument{Collection: domain.CollectionProvinces, Title: pr.Province.Name},
		})
	}
	for _, b := range m.Burgs {
		p.Annotations = append(p.Annotations, AnnotationDraft{
			X:              b.Burg.X,
			Y:              b.Burg.Y,
			IconKind:       domain.IconBurg,
			Text:           b.Burg.Name,
			Tint:           burgTint,
			LinkedDocument: LinkedDocument{Collection: domain.CollectionBurgs, Title: b.Burg.Name},
		})
	}

	return p, nil
}

func render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := bodies.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("export.Project: rendering %s: %w", name, err)
	}
	return buf.String(), nil
}

func crossRefs(refs ...*CrossReference) []CrossReference {
	var out []CrossReference
	for _, r := range refs {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out
}

// markup encodes the characters a reference marker is built from, so that
// rendered text never reads as a marker.
var markup = strings.NewReplacer(
	"@", "&#64;",
	"[", "&#91;",
	"]", "&#93;",
	"{", "&#123;",
	"}", "&#125;",
)

// escapeText escapes s for an HTML body. Besides the usual HTML escaping it encodes
// the marker characters @ [ ] { }.
func escapeText(s string) template.HTML {
	return template.HTML(markup.Replace(template.HTMLEscapeString(s)))
}

// refMarker renders a link to another document, or the plain title when r is nil.
func refMarker(r *CrossReference, title string) template.HTML {
	if r == nil {
		return escapeText(title)
	}
	return template.HTML("@Ref["+r.TargetCollection+"]{") + escapeText(r.TargetTitle) + "}"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFlag(v domain.Flag) string {
	if v {
		return "Yes"
	}
	return "No"
}

func formatProvinces(p domain.ProvinceRefs) string {
	if !p.IsList {
		return strconv.Itoa(p.Count)
	}
	ids := make([]string, len(p.IDs))
	for i, id := range p.IDs {
		ids[i] = strconv.Itoa(id)
	}
	return strings.Join(ids, ", ")
}
