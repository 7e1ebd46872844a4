package categories

import (
	"github.com/lychee-technology/vitrin"
)

// RealEstate builds the real estate category configuration. Its floor
// filter uses the endpoint's single-floor convention (see the filter
// serializer); land listings hide the building section entirely.
func RealEstate(svc vitrin.Service) *vitrin.CategoryConfig {
	return &vitrin.CategoryConfig{
		ID:          vitrin.CategoryRealEstate,
		Label:       "Real Estate",
		Icon:        "home",
		Description: "Apartments, houses and land",
		Service:     svc,
		Steps: []vitrin.Step{
			{ID: 1, Kind: vitrin.StepBasics, Title: "Listing details"},
			{ID: 2, Kind: vitrin.StepDetails, Title: "Property details", Sections: []vitrin.Section{
				{
					Title: "Property",
					Fields: []vitrin.Field{
						{
							Name:     "propertyType",
							Type:     vitrin.FieldEnum,
							Label:    "Property type",
							EnumKey:  "realestate.types",
							Required: true,
						},
						{
							Name:     "squareMeters",
							Type:     vitrin.FieldNumber,
							Label:    "Square meters",
							Required: true,
							Min:      fptr(1),
						},
					},
				},
				{
					Title: "Building",
					VisibleWhen: func(ctx *vitrin.Context) bool {
						return ctx.String("propertyType") != "land"
					},
					Fields: []vitrin.Field{
						{
							Name:    "rooms",
							Type:    vitrin.FieldEnum,
							Label:   "Rooms",
							EnumKey: "rooms",
							RequiredWhen: func(ctx *vitrin.Context) bool {
								return ctx.String("propertyType") == "apartment"
							},
						},
						{
							Name:  "floor",
							Type:  vitrin.FieldNumber,
							Label: "Floor",
						},
						{
							Name:  "totalFloors",
							Type:  vitrin.FieldNumber,
							Label: "Total floors",
							Min:   fptr(1),
							Validate: func(value any, ctx *vitrin.Context) string {
								total, ok := ctx.Number("totalFloors")
								floor, floorOK := ctx.Number("floor")
								if ok && floorOK && floor > total {
									return "Floor cannot exceed total floors"
								}
								return ""
							},
						},
						{
							Name:    "heating",
							Type:    vitrin.FieldEnum,
							Label:   "Heating",
							EnumKey: "heating_types",
						},
						{
							Name:  "furnished",
							Type:  vitrin.FieldToggle,
							Label: "Furnished",
						},
						{
							Name:  "buildingAge",
							Type:  vitrin.FieldNumber,
							Label: "Building age",
							Min:   fptr(0),
						},
					},
				},
			}},
			{ID: 3, Kind: vitrin.StepMediaLocation, Title: "Photos and location"},
		},
		FilterFields: func() []vitrin.FilterField {
			return []vitrin.FilterField{
				{Key: "propertyType", Type: vitrin.FilterEnum, Label: "Property type", EnumKey: "realestate.types", Multiple: true},
				{Key: "rooms", Type: vitrin.FilterEnum, Label: "Rooms", EnumKey: "rooms", Multiple: true},
				{Key: "squareMeters", Type: vitrin.FilterNumericRange, Label: "Square meters"},
				{Key: "floor", Type: vitrin.FilterNumericRange, Label: "Floor"},
				{Key: "buildingAge", Type: vitrin.FilterNumericRange, Label: "Building age"},
				{Key: "heating", Type: vitrin.FilterEnum, Label: "Heating", EnumKey: "heating_types", Multiple: true},
				{Key: "furnished", Type: vitrin.FilterEnum, Label: "Furnished", EnumKey: "yes_no"},
				{Key: "listedDate", Type: vitrin.FilterDateRange, Label: "Listed date"},
			}
		},
	}
}
