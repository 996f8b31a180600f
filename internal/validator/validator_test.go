package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var colours = map[string]bool{"red": true, "green": true, "blue": true}

func TestValidator_AccumulatesErrors(t *testing.T) {
	v := New()
	v.Required("name", "  ")
	v.In("colour", "purple", colours)
	v.URL("link", "not a link")
	require.False(t, v.Valid())

	errs := v.Errors()
	require.Len(t, errs, 3)
	assert.Equal(t, FieldError{Field: "name", Kind: MissingField}, errs[0])
	assert.Equal(t, FieldError{Field: "colour", Kind: InvalidEnumValue, Values: []string{"purple"}}, errs[1])
	assert.Equal(t, FieldError{Field: "link", Kind: InvalidFormat}, errs[2])
}

func TestValidator_FirstErrorPerFieldWins(t *testing.T) {
	v := New()
	v.Required("state", "")
	v.In("state", "", colours)
	errs := v.Errors()
	require.Len(t, errs, 1)
	assert.True(t, errs.Has("state", MissingField))
	assert.False(t, errs.Has("state", InvalidEnumValue))
}

func TestValidator_Valid(t *testing.T) {
	v := New()
	assert.True(t, v.Required("name", "The Hall"))
	assert.True(t, v.RequiredList("genres", []string{"red"}))
	assert.True(t, v.RequiredID("venue_id", 3))
	assert.True(t, v.In("colour", "red", colours))
	assert.True(t, v.Subset("colours", []string{"red", "blue"}, colours))
	assert.True(t, v.URL("link", ""))
	assert.True(t, v.URL("link", "https://www.facebook.com/thehall"))
	assert.True(t, v.Valid())
	assert.Nil(t, v.Errors())
}

func TestValidator_SubsetReportsAllOffendingValues(t *testing.T) {
	v := New()
	assert.False(t, v.Subset("colours", []string{"red", "pink", "black", "pink"}, colours))
	errs := v.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, []string{"black", "pink"}, errs[0].Values)
}

func TestValidator_RequiredVariants(t *testing.T) {
	v := New()
	assert.False(t, v.RequiredList("genres", nil))
	assert.False(t, v.RequiredID("artist_id", 0))
	assert.True(t, v.Errors().Has("genres", MissingField))
	assert.True(t, v.Errors().Has("artist_id", MissingField))
}

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("https://www.facebook.com/thehall"))
	assert.True(t, IsURL("http://example.com"))
	assert.False(t, IsURL("www.facebook.com/thehall"))
	assert.False(t, IsURL("facebook"))
	assert.False(t, IsURL("not a url"))
}

func TestErrors_Error(t *testing.T) {
	errs := Errors{
		{Field: "name", Kind: MissingField},
		{Field: "state", Kind: InvalidEnumValue, Values: []string{"ZZ"}},
	}
	assert.Equal(t, "validation failed: name: MISSING_FIELD; state: INVALID_ENUM_VALUE (ZZ)", errs.Error())
}
