package models

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

// GenreList is the multi-valued genre field of venues and artists. It is stored as a JSON array inside a single
// text column.
type GenreList []string

// NewGenreList builds a genre list from the given values. Repeated genres are kept only once, at the position they
// first appear.
func NewGenreList(genres []string) GenreList {
	seen := make(map[string]bool, len(genres))
	ret := make(GenreList, 0, len(genres))
	for _, genre := range genres {
		if seen[genre] {
			continue
		}
		seen[genre] = true
		ret = append(ret, genre)
	}
	return ret
}

// Value implements driver.Valuer
func (g GenreList) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]string(g)); err != nil {
		return nil, errors.Wrap(err, "GenreList: failed to encode genres")
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Scan implements sql.Scanner
func (g *GenreList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = GenreList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("GenreList: cannot scan value of type %T", src)
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return errors.Wrap(err, "GenreList: failed to decode genres")
	}
	if list == nil {
		list = []string{}
	}
	*g = GenreList(list)
	return nil
}
