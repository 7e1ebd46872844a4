package categories

import (
	"github.com/lychee-technology/vitrin"
)

func isLaptop(ctx *vitrin.Context) bool { return ctx.Bool("isLaptop") }

// Electronics builds the electronics category configuration. The laptop
// toggle gates requiredness of ram, storage, storageType and screenSize;
// toggling it off removes those requirements without touching values
// already entered.
func Electronics(svc vitrin.Service) *vitrin.CategoryConfig {
	return &vitrin.CategoryConfig{
		ID:          vitrin.CategoryElectronics,
		Label:       "Electronics",
		Icon:        "devices",
		Description: "Computers, phones and consumer electronics",
		Service:     svc,
		Steps: []vitrin.Step{
			{ID: 1, Kind: vitrin.StepBasics, Title: "Listing details"},
			{ID: 2, Kind: vitrin.StepDetails, Title: "Product details", Sections: []vitrin.Section{
				{
					Title: "Product",
					Fields: []vitrin.Field{
						{
							Name:     "subCategory",
							Type:     vitrin.FieldEnum,
							Label:    "Category",
							EnumKey:  "electronics.subcategories",
							Required: true,
						},
						{
							Name:    "brand",
							Type:    vitrin.FieldEnum,
							Label:   "Brand",
							EnumKey: "electronics.brands",
						},
						{
							Name:     "condition",
							Type:     vitrin.FieldEnum,
							Label:    "Condition",
							EnumKey:  "conditions",
							Required: true,
						},
						{
							Name:  "warranty",
							Type:  vitrin.FieldToggle,
							Label: "Under warranty",
						},
					},
				},
				{
					Title: "Laptop specs",
					Fields: []vitrin.Field{
						{
							Name:  "isLaptop",
							Type:  vitrin.FieldToggle,
							Label: "This is a laptop",
						},
						{
							Name:         "ram",
							Type:         vitrin.FieldEnum,
							Label:        "RAM",
							EnumKey:      "ram_options",
							VisibleWhen:  isLaptop,
							RequiredWhen: isLaptop,
						},
						{
							Name:         "storage",
							Type:         vitrin.FieldEnum,
							Label:        "Storage",
							EnumKey:      "storage_options",
							VisibleWhen:  isLaptop,
							RequiredWhen: isLaptop,
						},
						{
							Name:         "storageType",
							Type:         vitrin.FieldEnum,
							Label:        "Storage type",
							EnumKey:      "storage_types",
							VisibleWhen:  isLaptop,
							RequiredWhen: isLaptop,
						},
						{
							Name:         "screenSize",
							Type:         vitrin.FieldNumber,
							Label:        "Screen size",
							Min:          fptr(7),
							Max:          fptr(21),
							VisibleWhen:  isLaptop,
							RequiredWhen: isLaptop,
						},
					},
				},
			}},
			{ID: 3, Kind: vitrin.StepMediaLocation, Title: "Photos and location"},
		},
		FilterFields: func() []vitrin.FilterField {
			return []vitrin.FilterField{
				{Key: "subCategory", Type: vitrin.FilterEnum, Label: "Category", EnumKey: "electronics.subcategories", Multiple: true},
				{Key: "brand", Type: vitrin.FilterEnum, Label: "Brand", EnumKey: "electronics.brands", Multiple: true},
				{Key: "condition", Type: vitrin.FilterEnum, Label: "Condition", EnumKey: "conditions", Multiple: true},
				{Key: "warranty", Type: vitrin.FilterEnum, Label: "Warranty", EnumKey: "yes_no"},
				{Key: "screenSize", Type: vitrin.FilterNumericRange, Label: "Screen size"},
			}
		},
	}
}
