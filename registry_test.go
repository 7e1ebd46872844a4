package vitrin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

// testConfig builds a small but representative category schema: a three
// step wizard with conditional fields, a derived field and a filter
// schema covering every filter type.
func testConfig() *CategoryConfig {
	return &CategoryConfig{
		ID:    "gadgets",
		Label: "Gadgets",
		Steps: []Step{
			{ID: 1, Kind: StepBasics, Title: "Basics"},
			{ID: 2, Kind: StepDetails, Title: "Details", Sections: []Section{
				{
					Title: "Device",
					Fields: []Field{
						{Name: "brand", Type: FieldEnum, Label: "Brand", Required: true, EnumKey: "gadget.brands"},
						{Name: "model", Type: FieldSearchable, Label: "Model",
							RequiredWhen: func(ctx *Context) bool { return ctx.String("brand") != "" },
							DisabledWhen: func(ctx *Context) bool { return ctx.String("brand") == "" },
						},
						{Name: "year", Type: FieldNumber, Label: "Year", Min: f64(2000), Max: f64(2030)},
						{Name: "damaged", Type: FieldToggle, Label: "Damaged"},
						{Name: "damageNote", Type: FieldTextarea, Label: "Damage note",
							VisibleWhen:  func(ctx *Context) bool { return ctx.Bool("damaged") },
							RequiredWhen: func(ctx *Context) bool { return ctx.Bool("damaged") },
						},
					},
				},
			}},
			{ID: 3, Kind: StepMediaLocation, Title: "Location"},
		},
		DerivedFields: []DerivedField{
			{Source: "brand", EnumKey: "gadget.brands", Target: "brandLabel", Uppercase: true},
		},
		FilterFields: func() []FilterField {
			return []FilterField{
				{Key: "brand", Type: FilterEnum, Label: "Brand", EnumKey: "gadget.brands", Multiple: true},
				{Key: "year", Type: FilterNumericRange, Label: "Year"},
				{Key: "condition", Type: FilterEnum, Label: "Condition", EnumKey: "conditions"},
				{Key: "listedDate", Type: FilterDateRange, Label: "Listed"},
				{Key: "seller", Type: FilterText, Label: "Seller"},
			}
		},
	}
}

// testLegacyConfig is a schema-less category on the legacy validator
// path.
func testLegacyConfig() *CategoryConfig {
	return &CategoryConfig{
		ID:    "antiques",
		Label: "Antiques",
		LegacyValidator: func(step int, data map[string]any) ErrorMap {
			errs := ErrorMap{}
			if step == 1 || step == StepAll {
				if strings.TrimSpace(asString(data["title"])) == "" {
					errs["title"] = "Title is required"
				}
			}
			if step == 2 || step == StepAll {
				if strings.TrimSpace(asString(data["era"])) == "" {
					errs["era"] = "Era is required"
				}
			}
			return errs
		},
		FilterFields: func() []FilterField {
			return []FilterField{
				{Key: "era", Type: FilterEnum, Label: "Era", EnumKey: "eras", Multiple: true},
			}
		},
	}
}

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := NewRegistry(testConfig(), testLegacyConfig())
	require.NoError(t, err)
	return r
}

// =============================================================================
// Registry construction
// =============================================================================

func TestNewRegistry(t *testing.T) {
	r := testRegistry(t)

	assert.True(t, r.IsValid("gadgets"))
	assert.True(t, r.IsValid("antiques"))
	assert.False(t, r.IsValid("furniture"))
	assert.Equal(t, []CategoryID{"gadgets", "antiques"}, r.CategoryIDs())
	require.NotNil(t, r.Config("gadgets"))
	assert.Nil(t, r.Config("furniture"))
}

func TestNewRegistry_DuplicateCategory(t *testing.T) {
	_, err := NewRegistry(testConfig(), testConfig())
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
	assert.Contains(t, err.Error(), "DUPLICATE_CATEGORY")
}

func TestNewRegistry_DuplicateFieldName(t *testing.T) {
	cfg := testConfig()
	sec := &cfg.Steps[1].Sections[0]
	sec.Fields = append(sec.Fields, Field{Name: "brand", Type: FieldText, Label: "Brand again"})

	_, err := NewRegistry(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DUPLICATE_FIELD")
}

func TestNewRegistry_NonContiguousSteps(t *testing.T) {
	cfg := testConfig()
	cfg.Steps[2].ID = 5

	_, err := NewRegistry(cfg)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestNewRegistry_RangeKeyCollision(t *testing.T) {
	cfg := testConfig()
	base := cfg.FilterFields
	cfg.FilterFields = func() []FilterField {
		// "minYear" collides with the derived lower bound of "year"
		return append(base(), FilterField{Key: "minYear", Type: FilterText, Label: "Min year"})
	}

	_, err := NewRegistry(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RANGE_KEY_COLLISION")
}

func TestMustNewRegistry_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustNewRegistry(testConfig(), testConfig())
	})
}

// =============================================================================
// JSON Schema export
// =============================================================================

func TestExportJSONSchema(t *testing.T) {
	r := testRegistry(t)

	resolved, err := r.ExportJSONSchema("gadgets")
	require.NoError(t, err)
	require.NotNil(t, resolved)

	// statically valid payload passes
	valid := map[string]any{
		"title":       "Fairphone 5",
		"description": "lightly used",
		"price":       12000.0,
		"currency":    "TRY",
		"brand":       "fairphone",
		"year":        2023.0,
	}
	assert.NoError(t, resolved.Validate(valid))

	// missing statically required field fails
	invalid := map[string]any{
		"title":       "Fairphone 5",
		"description": "lightly used",
		"price":       12000.0,
		"currency":    "TRY",
		"year":        2023.0,
	}
	assert.Error(t, resolved.Validate(invalid))

	// numeric bound violations fail
	outOfRange := map[string]any{
		"title":       "Fairphone 5",
		"description": "lightly used",
		"price":       12000.0,
		"currency":    "TRY",
		"brand":       "fairphone",
		"year":        1980.0,
	}
	assert.Error(t, resolved.Validate(outOfRange))
}

func TestExportJSONSchema_UnknownCategory(t *testing.T) {
	r := testRegistry(t)

	_, err := r.ExportJSONSchema("furniture")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestTotalSteps(t *testing.T) {
	cfg := testConfig()
	// declared steps plus the implicit summary step
	assert.Equal(t, 4, cfg.TotalSteps())
	assert.Equal(t, 1, testLegacyConfig().TotalSteps())
}

func TestFieldByName(t *testing.T) {
	cfg := testConfig()
	f := cfg.FieldByName("damageNote")
	require.NotNil(t, f)
	assert.Equal(t, FieldTextarea, f.Type)
	assert.Nil(t, cfg.FieldByName("nope"))
}
