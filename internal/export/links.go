package export

import (
	"html"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var refPattern = regexp.MustCompile(`@Ref\[([A-Za-z]+)\]\{([^}]*)\}`)

// FindDocument looks up a created document by collection and title. It returns
// false when no such document exists.
type FindDocument func(collection, title string) (uuid.UUID, bool, error)

// CompendiumLink formats a host link to a document in a collection.
func CompendiumLink(prefix, collection string, id uuid.UUID, text string) string {
	return "@Compendium[" + prefix + "." + collection + "." + id.String() + "]{" + text + "}"
}

// ResolveLinks rewrites every @Ref marker in body to a compendium link. Marker
// titles are HTML-encoded and are decoded for the lookup. Targets that cannot be
// found are left as their plain title.
func ResolveLinks(body, prefix string, find FindDocument) (string, error) {
	matches := refPattern.FindAllStringSubmatchIndex(body, -1)
	if len(matches) == 0 {
		return body, nil
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		collection := body[m[2]:m[3]]
		text := body[m[4]:m[5]]

		id, ok, err := find(collection, html.UnescapeString(text))
		if err != nil {
			return "", err
		}

		b.WriteString(body[last:m[0]])
		if ok {
			b.WriteString(CompendiumLink(prefix, collection, id, text))
		} else {
			b.WriteString(text)
		}
		last = m[1]
	}
	b.WriteString(body[last:])
	return b.String(), nil
}
