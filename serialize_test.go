package vitrin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Fixed keys
// =============================================================================

func TestSerialize_Defaults(t *testing.T) {
	cfg := testConfig()
	payload := Serialize(NewFilterState(cfg, nil), cfg)

	assert.Equal(t, "GADGETS", payload.Type)
	assert.Equal(t, "GADGETS", payload.ListingType)
	assert.Equal(t, DefaultStatus, payload.Status)
	assert.Equal(t, 0, payload.Page)
	assert.Equal(t, DefaultPageSize, payload.Size)
	assert.Equal(t, DefaultSortBy, payload.SortBy)
	assert.Equal(t, DefaultSortDirection, payload.SortDirection)
	assert.Nil(t, payload.City)
	assert.Nil(t, payload.MinPrice)
	assert.Nil(t, payload.MaxPrice)

	// every declared filter key is present, unset ones as nil
	for _, key := range []string{"brand", "minYear", "maxYear", "condition", "minListedDate", "maxListedDate", "seller"} {
		v, ok := payload.Fields[key]
		require.True(t, ok, key)
		assert.Nil(t, v, key)
	}
}

func TestSerialize_FixedKeys(t *testing.T) {
	cfg := testConfig()
	state := NewFilterState(cfg, map[string]any{
		"city":          "Istanbul",
		"district":      "  Kadikoy ",
		"minPrice":      "100",
		"maxPrice":      2500.0,
		"currency":      "TRY",
		"sortBy":        "price",
		"sortDirection": "ASC",
		"size":          50,
	})
	state.SetPage(2)

	payload := Serialize(state, cfg)
	require.NotNil(t, payload.City)
	assert.Equal(t, "Istanbul", *payload.City)
	assert.Equal(t, "Kadikoy", *payload.District)
	assert.Equal(t, 100.0, *payload.MinPrice)
	assert.Equal(t, 2500.0, *payload.MaxPrice)
	assert.Equal(t, "TRY", *payload.Currency)
	assert.Equal(t, "price", payload.SortBy)
	assert.Equal(t, SortAsc, payload.SortDirection)
	assert.Equal(t, 2, payload.Page)
	assert.Equal(t, 50, payload.Size)
}

func TestSerialize_ZeroPriceBoundAbsent(t *testing.T) {
	cfg := testConfig()
	state := NewFilterState(cfg, map[string]any{"minPrice": 0.0, "maxPrice": "0"})
	require.Zero(t, state.ActiveCount())

	payload := Serialize(state, cfg)
	assert.Nil(t, payload.MinPrice)
	assert.Nil(t, payload.MaxPrice)
}

// =============================================================================
// Declared filter fields
// =============================================================================

func TestSerialize_EnumFields(t *testing.T) {
	cfg := testConfig()
	state := NewFilterState(cfg, nil)
	state.ToggleArray("brand", "apple")
	state.ToggleArray("brand", "fairphone")
	state.Set("condition", []string{"used", "new"})

	payload := Serialize(state, cfg)
	assert.Equal(t, []string{"apple", "fairphone"}, payload.Fields["brand"])
	// single-select enums collapse to their first element
	assert.Equal(t, "used", payload.Fields["condition"])
}

func TestSerialize_NumericRange(t *testing.T) {
	cfg := testConfig()
	state := NewFilterState(cfg, map[string]any{"minYear": "2015", "maxYear": 2020.0})

	payload := Serialize(state, cfg)
	assert.Equal(t, 2015.0, payload.Fields["minYear"])
	assert.Equal(t, 2020.0, payload.Fields["maxYear"])
}

// zero bounds travel as null, matching the endpoint's absent semantics
func TestSerialize_ZeroBoundAbsent(t *testing.T) {
	cfg := testConfig()
	state := NewFilterState(cfg, map[string]any{"minYear": 0.0, "maxYear": "0"})

	payload := Serialize(state, cfg)
	assert.Nil(t, payload.Fields["minYear"])
	assert.Nil(t, payload.Fields["maxYear"])
}

func TestSerialize_DateRangeAndText(t *testing.T) {
	cfg := testConfig()
	state := NewFilterState(cfg, map[string]any{
		"minListedDate": " 2025-06-01 ",
		"seller":        "  ada ",
	})

	payload := Serialize(state, cfg)
	assert.Equal(t, "2025-06-01", payload.Fields["minListedDate"])
	assert.Nil(t, payload.Fields["maxListedDate"])
	assert.Equal(t, "ada", payload.Fields["seller"])
}

// =============================================================================
// Endpoint-specific field shapes
// =============================================================================

func specialRangeConfig() *CategoryConfig {
	return &CategoryConfig{
		ID:    "wheels",
		Label: "Wheels",
		FilterFields: func() []FilterField {
			return []FilterField{
				{Key: "mileage", Type: FilterNumericRange, Label: "Mileage"},
				{Key: "floor", Type: FilterNumericRange, Label: "Floor"},
			}
		},
	}
}

func TestSerialize_MileageOnlyUpperBound(t *testing.T) {
	cfg := specialRangeConfig()
	state := NewFilterState(cfg, map[string]any{"minMileage": 10000.0, "maxMileage": 90000.0})

	payload := Serialize(state, cfg)
	assert.Equal(t, 90000.0, payload.Fields["maxMileage"])
	_, hasMin := payload.Fields["minMileage"]
	assert.False(t, hasMin)
}

func TestSerialize_FloorFallsBackToLowerBound(t *testing.T) {
	cfg := specialRangeConfig()

	state := NewFilterState(cfg, map[string]any{"minFloor": 2.0, "maxFloor": 5.0})
	payload := Serialize(state, cfg)
	assert.Equal(t, 5.0, payload.Fields["floor"])

	state = NewFilterState(cfg, map[string]any{"minFloor": 2.0})
	payload = Serialize(state, cfg)
	assert.Equal(t, 2.0, payload.Fields["floor"])

	state = NewFilterState(cfg, nil)
	payload = Serialize(state, cfg)
	assert.Nil(t, payload.Fields["floor"])
	_, hasMin := payload.Fields["minFloor"]
	assert.False(t, hasMin)
}
