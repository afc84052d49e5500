package csvexport

import (
	"strconv"
	"strings"

	"fmgimport/internal/domain"
	"fmgimport/internal/entity"
)

// Table is one entity table of a parsed map, ready to be written as rows.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Tables returns the entity tables of m in export order: Cultures, Countries,
// Provinces, Burgs, Religions, Rivers. Sentinel and placeholder entries are
// left out; references to them are written by name.
func Tables(m *entity.Model) []Table {
	lookup := entity.NewLookup(m)
	return []Table{
		culturesTable(m),
		countriesTable(m, lookup),
		provincesTable(m, lookup),
		burgsTable(m, lookup),
		religionsTable(m, lookup),
		riversTable(m),
	}
}

func culturesTable(m *entity.Model) Table {
	t := Table{
		Name:    "Cultures",
		Columns: []string{"Index", "Name", "Type", "Expansionism", "Color", "Code"},
	}
	for _, c := range m.Cultures() {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(c.I), c.Name, c.Type, formatNumber(c.Expansionism), c.Color, c.Code,
		})
	}
	return t
}

func countriesTable(m *entity.Model, lookup *entity.Lookup) Table {
	t := Table{
		Name: "Countries",
		Columns: []string{
			"Index", "Name", "Full Name", "Type", "Expansionism", "Color", "Culture",
			"Urban", "Rural", "Burgs", "Area", "Form", "Government", "Provinces", "Pole X", "Pole Y",
		},
	}
	for _, c := range m.Countries() {
		row := []string{
			strconv.Itoa(c.I), c.Name, c.FullName, c.Type, formatNumber(c.Expansionism), c.Color,
			cultureName(lookup, c.Culture),
			formatNumber(c.Urban), formatNumber(c.Rural), strconv.Itoa(c.Burgs), formatNumber(c.Area),
			c.Form, c.FormName, formatProvinces(c.Provinces), "", "",
		}
		if c.Pole != nil {
			row[14] = formatNumber(c.Pole.X)
			row[15] = formatNumber(c.Pole.Y)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func provincesTable(m *entity.Model, lookup *entity.Lookup) Table {
	t := Table{
		Name:    "Provinces",
		Columns: []string{"Index", "Name", "Type", "Full Name", "Color", "State", "Burg"},
	}
	for _, p := range m.Provinces() {
		burg := ""
		if p.Burg != 0 {
			if b, err := lookup.Burg(p.Burg, ""); err == nil {
				burg = b.Name
			}
		}
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(p.I), p.Name, p.FormName, p.FullName, p.Color, countryName(lookup, p.State), burg,
		})
	}
	return t
}

func burgsTable(m *entity.Model, lookup *entity.Lookup) Table {
	t := Table{
		Name: "Burgs",
		Columns: []string{
			"Index", "Name", "State", "Culture", "Population",
			"Citadel", "Capital", "Port", "Plaza", "Walls", "Shanty", "Temple",
			"Feature", "X", "Y",
		},
	}
	for _, b := range m.Burgs() {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(b.I), b.Name, countryName(lookup, b.State), cultureName(lookup, b.Culture),
			formatNumber(b.Population),
			formatBool(bool(b.Citadel)), formatBool(bool(b.Capital)), formatBool(bool(b.Port)),
			formatBool(bool(b.Plaza)), formatBool(bool(b.Walls)), formatBool(bool(b.Shanty)),
			formatBool(bool(b.Temple)),
			strconv.Itoa(b.Feature), formatNumber(b.X), formatNumber(b.Y),
		})
	}
	return t
}

func religionsTable(m *entity.Model, lookup *entity.Lookup) Table {
	t := Table{
		Name:    "Religions",
		Columns: []string{"Index", "Name", "Type", "Form", "Deity", "Culture", "Color", "Code"},
	}
	for _, r := range m.Religions() {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.I), r.Name, r.Type, r.Form, r.Deity, cultureName(lookup, r.Culture), r.Color, r.Code,
		})
	}
	return t
}

func riversTable(m *entity.Model) Table {
	t := Table{
		Name:    "Rivers",
		Columns: []string{"Index", "Name", "Type", "Source", "Mouth", "Length", "Basin"},
	}
	for _, r := range m.Rivers() {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(r.SourceI), r.Name, r.Type, strconv.Itoa(r.Source), strconv.Itoa(r.Mouth),
			formatNumber(r.Length), strconv.Itoa(r.Basin),
		})
	}
	return t
}

func cultureName(lookup *entity.Lookup, index int) string {
	c, err := lookup.Culture(index, "")
	if err != nil {
		return ""
	}
	return c.Name
}

func countryName(lookup *entity.Lookup, index int) string {
	c, err := lookup.Country(index, "")
	if err != nil {
		return ""
	}
	return c.Name
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
