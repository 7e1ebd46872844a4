package categories

import (
	"github.com/lychee-technology/vitrin"
)

// Clothing builds the clothing category configuration.
func Clothing(svc vitrin.Service) *vitrin.CategoryConfig {
	return &vitrin.CategoryConfig{
		ID:          vitrin.CategoryClothing,
		Label:       "Clothing",
		Icon:        "shirt",
		Description: "Clothing, shoes and accessories",
		Service:     svc,
		Steps: []vitrin.Step{
			{ID: 1, Kind: vitrin.StepBasics, Title: "Listing details"},
			{ID: 2, Kind: vitrin.StepDetails, Title: "Item details", Sections: []vitrin.Section{
				{
					Title: "Item",
					Fields: []vitrin.Field{
						{
							Name:     "clothingType",
							Type:     vitrin.FieldEnum,
							Label:    "Type",
							EnumKey:  "clothing.types",
							Required: true,
						},
						{
							Name:     "size",
							Type:     vitrin.FieldEnum,
							Label:    "Size",
							EnumKey:  "sizes",
							Required: true,
						},
						{
							Name:    "color",
							Type:    vitrin.FieldEnum,
							Label:   "Color",
							EnumKey: "colors",
						},
						{
							Name:    "brand",
							Type:    vitrin.FieldEnum,
							Label:   "Brand",
							EnumKey: "clothing.brands",
						},
						{
							Name:    "gender",
							Type:    vitrin.FieldEnum,
							Label:   "Gender",
							EnumKey: "genders",
						},
						{
							Name:     "condition",
							Type:     vitrin.FieldEnum,
							Label:    "Condition",
							EnumKey:  "conditions",
							Required: true,
						},
					},
				},
			}},
			{ID: 3, Kind: vitrin.StepMediaLocation, Title: "Photos and location"},
		},
		FilterFields: func() []vitrin.FilterField {
			return []vitrin.FilterField{
				{Key: "clothingType", Type: vitrin.FilterEnum, Label: "Type", EnumKey: "clothing.types", Multiple: true},
				{Key: "size", Type: vitrin.FilterEnum, Label: "Size", EnumKey: "sizes", Multiple: true},
				{Key: "color", Type: vitrin.FilterEnum, Label: "Color", EnumKey: "colors", Multiple: true},
				{Key: "brand", Type: vitrin.FilterEnum, Label: "Brand", EnumKey: "clothing.brands", Multiple: true},
				{Key: "gender", Type: vitrin.FilterEnum, Label: "Gender", EnumKey: "genders"},
				{Key: "condition", Type: vitrin.FilterEnum, Label: "Condition", EnumKey: "conditions", Multiple: true},
			}
		},
	}
}
