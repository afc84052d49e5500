package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Reference kinds reported by DanglingReferenceError.
const (
	RefCulture = "culture"
	RefCountry = "country"
	RefBurg    = "burg"
)

// Point is a map coordinate in scene pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UnmarshalJSON decodes the generator's [x, y] pair form.
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) >= 2 {
		p.X, p.Y = pair[0], pair[1]
	}
	return nil
}

// Flag is a generator attribute stored as 0/1 or as a boolean.
type Flag bool

// UnmarshalJSON accepts booleans, numbers (non-zero is set) and null.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case bool:
		*f = Flag(t)
	case float64:
		*f = t != 0
	default:
		*f = false
	}
	return nil
}

// ProvinceRefs holds a country's provinces, which exports store either as a
// count or as a list of province indices.
type ProvinceRefs struct {
	Count  int
	IDs    []int
	IsList bool
}

// UnmarshalJSON accepts a number or an array of numbers.
func (p *ProvinceRefs) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var ids []int
	if err := json.Unmarshal(data, &ids); err == nil {
		p.IDs = ids
		p.Count = len(ids)
		p.IsList = true
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	p.Count = int(n)
	return nil
}

// Culture is a culture record. Index 0 is the "Wildlands" sentinel.
type Culture struct {
	I            int     `json:"-"`
	SourceI      int     `json:"-"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Expansionism float64 `json:"expansionism"`
	Color        string  `json:"color"`
	Code         string  `json:"code"`
	Removed      bool    `json:"removed"`
	Placeholder  bool    `json:"-"`
}

// Country is a state record. Index 0 is the "Neutrals" sentinel.
type Country struct {
	I            int          `json:"-"`
	SourceI      int          `json:"-"`
	Name         string       `json:"name"`
	FullName     string       `json:"fullName"`
	Type         string       `json:"type"`
	Expansionism float64      `json:"expansionism"`
	Color        string       `json:"color"`
	Culture      int          `json:"culture"`
	Urban        float64      `json:"urban"`
	Rural        float64      `json:"rural"`
	Burgs        int          `json:"burgs"`
	Area         float64      `json:"area"`
	Form         string       `json:"form"`
	FormName     string       `json:"formName"`
	Provinces    ProvinceRefs `json:"provinces"`
	Pole         *Point       `json:"pole"`
	Removed      bool         `json:"removed"`
	Placeholder  bool         `json:"-"`
}

// Province is a province record. The raw batch starts with a numeric 0 filler.
type Province struct {
	I           int    `json:"-"`
	SourceI     int    `json:"-"`
	Name        string `json:"name"`
	FormName    string `json:"formName"`
	FullName    string `json:"fullName"`
	Color       string `json:"color"`
	State       int    `json:"state"`
	Burg        int    `json:"burg"`
	Removed     bool   `json:"removed"`
	Placeholder bool   `json:"-"`
}

// Burg is a settlement record. Slot 0 is an empty-object filler.
type Burg struct {
	I           int     `json:"-"`
	SourceI     int     `json:"-"`
	Name        string  `json:"name"`
	Population  float64 `json:"population"`
	Citadel     Flag    `json:"citadel"`
	Capital     Flag    `json:"capital"`
	Port        Flag    `json:"port"`
	Plaza       Flag    `json:"plaza"`
	Walls       Flag    `json:"walls"`
	Shanty      Flag    `json:"shanty"`
	Temple      Flag    `json:"temple"`
	Feature     int     `json:"feature"`
	Culture     int     `json:"culture"`
	State       int     `json:"state"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Removed     bool    `json:"removed"`
	Placeholder bool    `json:"-"`
}

// River is a pass-through river record.
type River struct {
	I           int     `json:"-"`
	SourceI     int     `json:"-"`
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Source      int     `json:"source"`
	Mouth       int     `json:"mouth"`
	Length      float64 `json:"length"`
	Basin       int     `json:"basin"`
	Placeholder bool    `json:"-"`
}

// Religion is a pass-through religion record. Index 0 is the "No religion" sentinel.
type Religion struct {
	I           int    `json:"-"`
	SourceI     int    `json:"-"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Form        string `json:"form"`
	Deity       string `json:"deity"`
	Culture     int    `json:"culture"`
	Color       string `json:"color"`
	Code        string `json:"code"`
	Removed     bool   `json:"removed"`
	Placeholder bool   `json:"-"`
}

// Collection is a host document collection created by an import.
type Collection struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Label     string    `db:"label" json:"label"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// DocumentInput is a document to create inside a collection.
type DocumentInput struct {
	Title           string
	HTMLBody        string
	PermissionLevel int
}

// Document is a host document.
type Document struct {
	ID              uuid.UUID `db:"id" json:"id"`
	CollectionID    uuid.UUID `db:"collection_id" json:"collection_id"`
	Title           string    `db:"title" json:"title"`
	HTMLBody        string    `db:"html_body" json:"html_body"`
	PermissionLevel int       `db:"permission_level" json:"permission_level"`
	Position        int       `db:"position" json:"position"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// SceneInput carries the parameters of a new scene.
type SceneInput struct {
	Name            string
	Width           string
	Height          string
	BackgroundImage string
	Padding         float64
}

// Scene is a host canvas the annotations are placed on.
type Scene struct {
	ID              uuid.UUID `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Width           string    `db:"width" json:"width"`
	Height          string    `db:"height" json:"height"`
	BackgroundImage string    `db:"background_image" json:"background_image"`
	Padding         float64   `db:"padding" json:"padding"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// Annotation is a map note placed on a scene, linked to a document.
type Annotation struct {
	ID               uuid.UUID     `db:"id" json:"id"`
	SceneID          uuid.UUID     `db:"scene_id" json:"scene_id"`
	X                float64       `db:"x" json:"x"`
	Y                float64       `db:"y" json:"y"`
	IconKind         IconKind      `db:"icon_kind" json:"icon_kind"`
	Icon             string        `db:"icon" json:"icon"`
	IconSize         int           `db:"icon_size" json:"icon_size"`
	Tint             string        `db:"tint" json:"tint"`
	Text             string        `db:"text" json:"text"`
	FontSize         int           `db:"font_size" json:"font_size"`
	TextColor        string        `db:"text_color" json:"text_color"`
	TextAnchor       string        `db:"text_anchor" json:"text_anchor"`
	MinZoom          float64       `db:"min_zoom" json:"min_zoom"`
	MaxZoom          float64       `db:"max_zoom" json:"max_zoom"`
	LinkedCollection string        `db:"linked_collection" json:"linked_collection"`
	LinkedDocumentID uuid.NullUUID `db:"linked_document_id" json:"linked_document_id"`
	Position         int           `db:"position" json:"position"`
	CreatedAt        time.Time     `db:"created_at" json:"created_at"`
}
