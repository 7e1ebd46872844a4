package categories

import (
	"github.com/lychee-technology/vitrin"
)

// Sporting builds the sporting goods category configuration.
func Sporting(svc vitrin.Service) *vitrin.CategoryConfig {
	return &vitrin.CategoryConfig{
		ID:          vitrin.CategorySporting,
		Label:       "Sporting Goods",
		Icon:        "dumbbell",
		Description: "Sports and outdoor equipment",
		Service:     svc,
		Steps: []vitrin.Step{
			{ID: 1, Kind: vitrin.StepBasics, Title: "Listing details"},
			{ID: 2, Kind: vitrin.StepDetails, Title: "Equipment details", Sections: []vitrin.Section{
				{
					Title: "Equipment",
					Fields: []vitrin.Field{
						{
							Name:     "sportType",
							Type:     vitrin.FieldEnum,
							Label:    "Sport",
							EnumKey:  "sport.types",
							Required: true,
						},
						{
							Name:    "brand",
							Type:    vitrin.FieldEnum,
							Label:   "Brand",
							EnumKey: "sport.brands",
						},
						{
							Name:     "condition",
							Type:     vitrin.FieldEnum,
							Label:    "Condition",
							EnumKey:  "conditions",
							Required: true,
						},
						{
							Name:    "ageRange",
							Type:    vitrin.FieldEnum,
							Label:   "Age range",
							EnumKey: "age_ranges",
						},
					},
				},
			}},
			{ID: 3, Kind: vitrin.StepMediaLocation, Title: "Photos and location"},
		},
		FilterFields: func() []vitrin.FilterField {
			return []vitrin.FilterField{
				{Key: "sportType", Type: vitrin.FilterEnum, Label: "Sport", EnumKey: "sport.types", Multiple: true},
				{Key: "brand", Type: vitrin.FilterEnum, Label: "Brand", EnumKey: "sport.brands", Multiple: true},
				{Key: "condition", Type: vitrin.FilterEnum, Label: "Condition", EnumKey: "conditions", Multiple: true},
			}
		},
	}
}
