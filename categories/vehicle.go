package categories

import (
	"fmt"
	"time"

	"github.com/lychee-technology/vitrin"
)

// Vehicle builds the vehicle category configuration.
func Vehicle(svc vitrin.Service) *vitrin.CategoryConfig {
	return &vitrin.CategoryConfig{
		ID:          vitrin.CategoryVehicle,
		Label:       "Vehicles",
		Icon:        "car",
		Description: "Cars, motorcycles and commercial vehicles",
		Service:     svc,
		Steps: []vitrin.Step{
			{ID: 1, Kind: vitrin.StepBasics, Title: "Listing details"},
			{ID: 2, Kind: vitrin.StepDetails, Title: "Vehicle details", Sections: []vitrin.Section{
				{
					Title: "Vehicle",
					Fields: []vitrin.Field{
						{
							Name:     "brand",
							Type:     vitrin.FieldEnum,
							Label:    "Brand",
							EnumKey:  "vehicle.brands",
							Required: true,
						},
						{
							Name:  "model",
							Type:  vitrin.FieldSearchable,
							Label: "Model",
							Options: func(ctx *vitrin.Context) []vitrin.Option {
								brand := ctx.String("brand")
								if brand == "" {
									return nil
								}
								return ctx.Enum("vehicle.models." + brand)
							},
							RequiredWhen: func(ctx *vitrin.Context) bool {
								return ctx.String("brand") != ""
							},
							DisabledWhen: func(ctx *vitrin.Context) bool {
								return ctx.String("brand") == ""
							},
						},
						{
							Name:     "year",
							Type:     vitrin.FieldNumber,
							Label:    "Year",
							Required: true,
							Min:      fptr(1950),
							Max:      fptr(float64(time.Now().Year() + 1)),
						},
						{
							Name:  "mileage",
							Type:  vitrin.FieldNumber,
							Label: "Mileage",
							Min:   fptr(0),
						},
						{
							Name:    "fuelType",
							Type:    vitrin.FieldEnum,
							Label:   "Fuel type",
							EnumKey: "fuel_types",
						},
						{
							Name:    "transmission",
							Type:    vitrin.FieldEnum,
							Label:   "Transmission",
							EnumKey: "transmissions",
						},
						{
							Name:    "color",
							Type:    vitrin.FieldEnum,
							Label:   "Color",
							EnumKey: "colors",
						},
					},
				},
				{
					Title: "Condition",
					Fields: []vitrin.Field{
						{
							Name:  "damageRecord",
							Type:  vitrin.FieldToggle,
							Label: "Damage record",
						},
						{
							Name:  "damageDescription",
							Type:  vitrin.FieldTextarea,
							Label: "Damage description",
							VisibleWhen: func(ctx *vitrin.Context) bool {
								return ctx.Bool("damageRecord")
							},
							RequiredWhen: func(ctx *vitrin.Context) bool {
								return ctx.Bool("damageRecord")
							},
						},
					},
				},
			}},
			{ID: 3, Kind: vitrin.StepMediaLocation, Title: "Photos and location"},
		},
		DerivedFields: []vitrin.DerivedField{
			// Keeps the uppercase brand display name in sync with the
			// selected brand option.
			{Source: "brand", EnumKey: "vehicle.brands", Target: "brandLabel", Uppercase: true},
		},
		Effects: []vitrin.Effect{
			// A brand change invalidates the dependent model selection.
			func(ctx *vitrin.Context) {
				if ctx.String("brand") == "" && ctx.String("model") != "" {
					ctx.Delete("model")
				}
			},
		},
		CustomValidators: []vitrin.CustomValidator{
			{
				When: func(step int, _ *vitrin.Context) bool {
					return step == 2 || step == vitrin.StepAll
				},
				Validate: func(_ int, ctx *vitrin.Context) vitrin.ErrorMap {
					errs := vitrin.ErrorMap{}
					year, yearOK := ctx.Number("year")
					mileage, mileageOK := ctx.Number("mileage")
					if yearOK && mileageOK && year >= float64(time.Now().Year()) && mileage > 5000 {
						errs["mileage"] = fmt.Sprintf("Mileage %v is implausible for a %v model", mileage, year)
					}
					return errs
				},
			},
		},
		CreateFlow: &vitrin.CreateFlow{
			Selectors: []vitrin.FlowSelector{
				{Key: "subtype", Label: "Vehicle type", EnumKey: "vehicle.subtypes", InitialDataKey: "subtype"},
				{
					Key:            "brand",
					Label:          "Brand",
					EnumKey:        "vehicle.brands",
					InitialDataKey: "brand",
					DependsOn:      []string{"subtype"},
				},
				{
					Key:            "model",
					Label:          "Model",
					InitialDataKey: "model",
					DependsOn:      []string{"subtype", "brand"},
					Options: func(selection map[string]string, ctx *vitrin.Context) []vitrin.Option {
						return ctx.Enum("vehicle.models." + selection["brand"])
					},
				},
			},
		},
		FilterFields: func() []vitrin.FilterField {
			return []vitrin.FilterField{
				{Key: "brand", Type: vitrin.FilterEnum, Label: "Brand", EnumKey: "vehicle.brands", Multiple: true},
				{Key: "year", Type: vitrin.FilterNumericRange, Label: "Year", Min: fptr(1950)},
				{Key: "mileage", Type: vitrin.FilterNumericRange, Label: "Mileage", Min: fptr(0)},
				{Key: "fuelType", Type: vitrin.FilterEnum, Label: "Fuel type", EnumKey: "fuel_types", Multiple: true},
				{Key: "transmission", Type: vitrin.FilterEnum, Label: "Transmission", EnumKey: "transmissions"},
				{Key: "color", Type: vitrin.FilterEnum, Label: "Color", EnumKey: "colors", Multiple: true},
			}
		},
	}
}
