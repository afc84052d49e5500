package export

import (
	"github.com/google/uuid"

	"fmgimport/internal/domain"
)

// noteStyle is the fixed presentation of one kind of annotation.
type noteStyle struct {
	icon    string
	minZoom float64
	maxZoom float64
}

const (
	noteIconSize   = 32
	noteFontSize   = 24
	noteTextColor  = "#00FFFF"
	noteTextAnchor = "center"
)

var noteStyles = map[domain.IconKind]noteStyle{
	domain.IconCountry:  {icon: "icons/svg/castle.svg", minZoom: 0.1, maxZoom: 2},
	domain.IconProvince: {icon: "icons/svg/tower.svg", minZoom: 1, maxZoom: 2},
	domain.IconBurg:     {icon: "icons/svg/village.svg", minZoom: 2, maxZoom: 3},
}

// Annotation builds the host annotation for d, linked to the created document
// docID in the collection named prefix.Collection.
func (d AnnotationDraft) Annotation(prefix string, docID uuid.UUID) domain.Annotation {
	style := noteStyles[d.IconKind]
	a := domain.Annotation{
		X:          d.X,
		Y:          d.Y,
		IconKind:   d.IconKind,
		Icon:       style.icon,
		IconSize:   noteIconSize,
		Tint:       d.Tint,
		Text:       d.Text,
		FontSize:   noteFontSize,
		TextColor:  noteTextColor,
		TextAnchor: noteTextAnchor,
		MinZoom:    style.minZoom,
		MaxZoom:    style.maxZoom,
	}
	if d.LinkedDocument.Collection != "" {
		a.LinkedCollection = prefix + "." + d.LinkedDocument.Collection
	}
	if docID != uuid.Nil {
		a.LinkedDocumentID = uuid.NullUUID{UUID: docID, Valid: true}
	}
	return a
}
