package parser

import (
	"github.com/tidwall/gjson"

	"fmgimport/internal/domain"
)

// fingerprint matches a batch category by the shape of its leading elements.
type fingerprint struct {
	category domain.Category
	// needsFirst marks rules that inspect the first element. A batch whose first
	// element is not an object never matches these, nor any rule after them.
	needsFirst bool
	match      func(first, second gjson.Result) bool
}

// fingerprints is evaluated in order and the first match wins. The shapes overlap
// (burgs carry a state, features carry neither state nor population), so the order
// is part of the format and must not be changed.
var fingerprints = []fingerprint{
	{
		category: domain.CategoryProvince,
		match: func(_, second gjson.Result) bool {
			return has(second, "state") && !has(second, "cell")
		},
	},
	{
		category:   domain.CategoryCountry,
		needsFirst: true,
		match: func(first, _ gjson.Result) bool {
			return has(first, "diplomacy")
		},
	},
	{
		category:   domain.CategoryReligion,
		needsFirst: true,
		match: func(first, _ gjson.Result) bool {
			return nameIs(first, "No religion")
		},
	},
	{
		category:   domain.CategoryCulture,
		needsFirst: true,
		match: func(first, _ gjson.Result) bool {
			return nameIs(first, "Wildlands")
		},
	},
	{
		category:   domain.CategoryBurg,
		needsFirst: true,
		match: func(_, second gjson.Result) bool {
			return has(second, "population") && has(second, "citadel")
		},
	},
	{
		category:   domain.CategoryRiver,
		needsFirst: true,
		match: func(first, _ gjson.Result) bool {
			return has(first, "mouth")
		},
	},
}

// Classify reports which record batch a line holds. Lines that are not JSON, are
// not arrays of at least two elements, or match no fingerprint yield CategoryNone.
// Classify keeps no state between calls.
func Classify(line string) domain.Category {
	category, _ := classify(line)
	return category
}

func classify(line string) (domain.Category, bool) {
	if !gjson.Valid(line) {
		return domain.CategoryNone, false
	}
	value := gjson.Parse(line)
	if !value.IsArray() {
		return domain.CategoryNone, true
	}
	elems := value.Array()
	if len(elems) < 2 || !isContainer(elems[1]) {
		return domain.CategoryNone, true
	}
	first, second := elems[0], elems[1]

	for _, fp := range fingerprints {
		if fp.needsFirst && !isContainer(first) {
			return domain.CategoryNone, true
		}
		if fp.match(first, second) {
			return fp.category, true
		}
	}
	return domain.CategoryNone, true
}

func isContainer(v gjson.Result) bool {
	return v.IsObject() || v.IsArray()
}

func has(v gjson.Result, field string) bool {
	if !v.IsObject() {
		return false
	}
	return v.Get(field).Exists()
}

func nameIs(v gjson.Result, name string) bool {
	if !v.IsObject() {
		return false
	}
	n := v.Get("name")
	return n.Type == gjson.String && n.Str == name
}
