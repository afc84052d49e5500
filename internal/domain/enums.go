package domain

// Category identifies which kind of record batch a line of a map export holds.
type Category int

const (
	CategoryNone Category = iota
	CategoryProvince
	CategoryCountry
	CategoryReligion
	CategoryCulture
	CategoryBurg
	CategoryRiver
)

var categoryNames = map[Category]string{
	CategoryNone:     "none",
	CategoryProvince: "province",
	CategoryCountry:  "country",
	CategoryReligion: "religion",
	CategoryCulture:  "culture",
	CategoryBurg:     "burg",
	CategoryRiver:    "river",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// RequiredCategories must all be present in a map export before an import may start.
var RequiredCategories = []Category{
	CategoryCulture,
	CategoryCountry,
	CategoryBurg,
	CategoryProvince,
}

// Host collection names, in creation order. Later collections link to earlier ones.
const (
	CollectionCultures  = "Cultures"
	CollectionCountries = "Countries"
	CollectionBurgs     = "Burgs"
	CollectionProvinces = "Provinces"
)

// CollectionOrder is the order in which document collections are created on the host.
var CollectionOrder = []string{
	CollectionCultures,
	CollectionCountries,
	CollectionBurgs,
	CollectionProvinces,
}

// IconKind is the kind of marker an annotation draws on the scene.
type IconKind string

const (
	IconCountry  IconKind = "country"
	IconProvince IconKind = "province"
	IconBurg     IconKind = "burg"
)

// ExportFormat is a tabular export format.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps an ExportFormat to its MIME content type.
var ExportContentTypes = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}
