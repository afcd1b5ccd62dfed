package normalize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decode parses a JSON literal the same way the webhook client does
func decode(t *testing.T, s string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	require.NoError(t, dec.Decode(&v))
	return v
}

func TestNormalizeList_FalsyInputs(t *testing.T) {
	assert.Empty(t, NormalizeList(nil))
	assert.Empty(t, NormalizeList(false))
	assert.Empty(t, NormalizeList(""))
	assert.Empty(t, NormalizeList(decode(t, `0`)))
	assert.Empty(t, NormalizeList(decode(t, `[]`)))
	assert.NotNil(t, NormalizeList(nil))
}

func TestNormalizeList_UnwrapsJSONEnvelope(t *testing.T) {
	raw := decode(t, `[{"json":{"a":1}},{"a":2}]`)

	records := NormalizeList(raw)

	require.Len(t, records, 2)
	assert.Equal(t, json.Number("1"), records[0]["a"])
	assert.Equal(t, json.Number("2"), records[1]["a"])
}

func TestNormalizeList_EnvelopeKeyPrecedence(t *testing.T) {
	raw := decode(t, `{"rows":[{"from":"rows"}],"data":[{"from":"data"}]}`)

	records := NormalizeList(raw)

	require.Len(t, records, 1)
	assert.Equal(t, "data", records[0]["from"])
}

func TestNormalizeList_SkipsNonArrayEnvelopeValues(t *testing.T) {
	raw := decode(t, `{"data":"nope","items":[{"id":"x"}]}`)

	records := NormalizeList(raw)

	require.Len(t, records, 1)
	assert.Equal(t, "x", records[0]["id"])
}

func TestNormalizeList_EachEnvelopeKey(t *testing.T) {
	for _, key := range envelopeKeys {
		t.Run(key, func(t *testing.T) {
			raw := decode(t, `{"`+key+`":[{"json":{"id":"a"}},{"id":"b"}]}`)
			records := NormalizeList(raw)
			require.Len(t, records, 2)
			assert.Equal(t, "a", records[0]["id"])
			assert.Equal(t, "b", records[1]["id"])
		})
	}
}

func TestNormalizeList_SingleObject(t *testing.T) {
	raw := decode(t, `{"id":"u1","email":"a@b.c"}`)

	records := NormalizeList(raw)

	require.Len(t, records, 1)
	assert.Equal(t, "u1", records[0]["id"])
}

func TestNormalizeList_ErrorAndStatusObjects(t *testing.T) {
	assert.Empty(t, NormalizeList(decode(t, `{"error":true,"message":"bad"}`)))
	assert.Empty(t, NormalizeList(decode(t, `{"status":"error"}`)))
	// falsy markers do not disqualify the object
	assert.Len(t, NormalizeList(decode(t, `{"error":false,"status":"","id":"x"}`)), 1)
}

func TestNormalizeList_DropsNonObjects(t *testing.T) {
	raw := decode(t, `[1,"two",null,{"id":"three"},{"json":"four"}]`)

	records := NormalizeList(raw)

	require.Len(t, records, 1)
	assert.Equal(t, "three", records[0]["id"])
}

func TestFirst(t *testing.T) {
	assert.Nil(t, First(nil))
	rec := First(decode(t, `{"data":[{"id":"a"},{"id":"b"}]}`))
	require.NotNil(t, rec)
	assert.Equal(t, "a", rec["id"])
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"empty string", "", false},
		{"zero string", "0", true},
		{"zero number", json.Number("0"), false},
		{"zero float", json.Number("0.0"), false},
		{"number", json.Number("3"), true},
		{"empty object", map[string]any{}, true},
		{"empty array", []any{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTruthy(tt.in))
		})
	}
}

func TestParseCoord(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want *float64
	}{
		{"nil", nil, nil},
		{"empty", "", nil},
		{"null literal", "null", nil},
		{"padded", " 12.5 ", ptr(12.5)},
		{"negative", "-73.98", ptr(-73.98)},
		{"number", json.Number("40.71"), ptr(40.71)},
		{"non-numeric", "abc", nil},
		{"numeric prefix", "12.5abc", ptr(12.5)},
		{"zero", json.Number("0"), ptr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCoord(tt.in)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func ptr(f float64) *float64 { return &f }
