package listparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Encodings(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{"brace list", "{lunes,martes}", []string{"lunes", "martes"}},
		{"brace list with quotes", `{"lunes","martes"}`, []string{"lunes", "martes"}},
		{"brace list quoted comma", `{"parque, norte",sports}`, []string{"parque, norte", "sports"}},
		{"brace list escaped quote", `{"dice \"hola\"",sports}`, []string{`dice "hola"`, "sports"}},
		{"json array", `["lunes","martes"]`, []string{"lunes", "martes"}},
		{"json array with spaces", `[ "lunes" , "martes" ]`, []string{"lunes", "martes"}},
		{"comma separated", "lunes,martes", []string{"lunes", "martes"}},
		{"comma separated with spaces", " lunes , martes ", []string{"lunes", "martes"}},
		{"bare token", "lunes", []string{"lunes"}},
		{"empty string", "", []string{}},
		{"only whitespace", "   ", []string{}},
		{"empty braces", "{}", []string{}},
		{"empty json array", "[]", []string{}},
		{"duplicates collapse", "lunes,lunes,martes", []string{"lunes", "martes"}},
		{"trailing comma", "lunes,", []string{"lunes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, set.Sorted())
		})
	}
}

func TestParse_EncodingsAgree(t *testing.T) {
	encodings := []string{
		"{lunes,martes}",
		`["lunes","martes"]`,
		"lunes,martes",
		"martes,lunes",
	}

	first, err := Parse(encodings[0])
	require.NoError(t, err)

	for _, raw := range encodings[1:] {
		set, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, first, set, "encoding %q", raw)
	}
}

func TestParse_SingleTokenMatchesSingletonEncodings(t *testing.T) {
	for _, raw := range []string{"lunes", "{lunes}", `["lunes"]`} {
		set, err := Parse(raw)
		require.NoError(t, err)
		assert.True(t, set.Contains("lunes"), "encoding %q", raw)
		assert.Len(t, set, 1)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	set, err := Parse(`["lunes",]`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedList))
	assert.NotNil(t, set)
	assert.Empty(t, set)
}

func TestParse_UnterminatedBraceQuote(t *testing.T) {
	set, err := Parse(`{"parque, norte}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedList)
	assert.Empty(t, set)
}

func TestParse_NonStringJSONEntries(t *testing.T) {
	set, err := Parse(`[1, 2]`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedList)
	assert.Empty(t, set)
}

func TestParseLower(t *testing.T) {
	set, err := ParseLower("{Lunes,MARTES}")
	require.NoError(t, err)
	assert.Equal(t, []string{"lunes", "martes"}, set.Sorted())
}
