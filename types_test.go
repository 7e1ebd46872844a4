package vitrin

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// QueryPayload wire format
// =============================================================================

func TestQueryPayload_MarshalFlattensFields(t *testing.T) {
	city := "Istanbul"
	price := 1000.0
	payload := &QueryPayload{
		ListingType:   "VEHICLE",
		Type:          "VEHICLE",
		Status:        "ACTIVE",
		Page:          0,
		Size:          20,
		SortBy:        "createdAt",
		SortDirection: SortDesc,
		City:          &city,
		MinPrice:      &price,
		Fields: map[string]any{
			"brand":   []string{"bmw"},
			"minYear": 2010.0,
			"color":   nil,
		},
	}

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))

	// fixed keys
	assert.Equal(t, "VEHICLE", flat["type"])
	assert.Equal(t, "ACTIVE", flat["status"])
	assert.Equal(t, "Istanbul", flat["city"])
	assert.Equal(t, 1000.0, flat["minPrice"])
	// nulls are emitted, not omitted
	assert.Contains(t, flat, "district")
	assert.Nil(t, flat["district"])
	// category fields land at the top level
	assert.Equal(t, []any{"bmw"}, flat["brand"])
	assert.Equal(t, 2010.0, flat["minYear"])
	assert.Contains(t, flat, "color")
	assert.Nil(t, flat["color"])
	// no nested bag
	assert.NotContains(t, flat, "fields")
}

func TestQueryPayload_UnmarshalRoundTrip(t *testing.T) {
	city := "Ankara"
	in := &QueryPayload{
		ListingType:   "BOOKS",
		Type:          "BOOKS",
		Status:        "ACTIVE",
		Page:          2,
		Size:          50,
		SortBy:        "price",
		SortDirection: SortAsc,
		City:          &city,
		Fields: map[string]any{
			"genre":  []string{"novel", "poetry"},
			"author": "Oguz Atay",
		},
	}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	var out QueryPayload
	require.NoError(t, json.Unmarshal(raw, &out))

	assert.Equal(t, "BOOKS", out.Type)
	assert.Equal(t, 2, out.Page)
	assert.Equal(t, 50, out.Size)
	assert.Equal(t, SortAsc, out.SortDirection)
	require.NotNil(t, out.City)
	assert.Equal(t, "Ankara", *out.City)
	assert.Nil(t, out.District)
	assert.Equal(t, []string{"novel", "poetry"}, out.Fields["genre"])
	assert.Equal(t, "Oguz Atay", out.Fields["author"])
}

func TestQueryPayload_UnmarshalBadValue(t *testing.T) {
	var out QueryPayload
	err := json.Unmarshal([]byte(`{"page":"not-a-number"}`), &out)
	require.Error(t, err)
}

// =============================================================================
// ErrorMap
// =============================================================================

func TestErrorMap_Merge(t *testing.T) {
	m := ErrorMap{"title": "Title is required", "price": "base"}
	m.Merge(ErrorMap{"price": "override", "city": "City is required"})

	assert.Equal(t, "Title is required", m["title"])
	assert.Equal(t, "override", m["price"])
	assert.Equal(t, "City is required", m["city"])
	assert.Len(t, m, 3)
}
