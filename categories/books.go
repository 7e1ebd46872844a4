package categories

import (
	"strings"

	"github.com/lychee-technology/vitrin"
)

// Books builds the books category configuration. Books is the one
// category still on the legacy free-function validation path: it
// declares no step schema, and its validator implements the
// (step, data) -> errors contract directly. The path is supported
// indefinitely, not as a migration step.
func Books(svc vitrin.Service) *vitrin.CategoryConfig {
	return &vitrin.CategoryConfig{
		ID:          vitrin.CategoryBooks,
		Label:       "Books",
		Icon:        "book",
		Description: "Books, magazines and comics",
		Service:     svc,
		InitialData: map[string]any{
			"language": "tr",
		},
		LegacyValidator: validateBooks,
		FilterFields: func() []vitrin.FilterField {
			return []vitrin.FilterField{
				{Key: "genre", Type: vitrin.FilterEnum, Label: "Genre", EnumKey: "book.genres", Multiple: true},
				{Key: "author", Type: vitrin.FilterText, Label: "Author"},
				{Key: "publishYear", Type: vitrin.FilterNumericRange, Label: "Publish year"},
				{Key: "language", Type: vitrin.FilterEnum, Label: "Language", EnumKey: "languages"},
			}
		},
	}
}

func validateBooks(step int, data map[string]any) vitrin.ErrorMap {
	errs := vitrin.ErrorMap{}

	checkBasics := step == 1 || step == vitrin.StepAll
	checkDetails := step == 2 || step == vitrin.StepAll
	checkLocation := step == 3 || step == vitrin.StepAll

	if checkBasics {
		if strings.TrimSpace(str(data["title"])) == "" {
			errs["title"] = "Title is required"
		}
		if strings.TrimSpace(str(data["description"])) == "" {
			errs["description"] = "Description is required"
		}
		if price, ok := num(data["price"]); !ok || price <= 0 {
			errs["price"] = "Price must be a positive number"
		}
		if strings.TrimSpace(str(data["currency"])) == "" {
			errs["currency"] = "Currency is required"
		}
	}
	if checkDetails {
		if strings.TrimSpace(str(data["author"])) == "" {
			errs["author"] = "Author is required"
		}
		if genre := str(data["genre"]); genre == "" {
			errs["genre"] = "Genre is required"
		}
		if year, ok := num(data["publishYear"]); ok && (year < 1400 || year > 2100) {
			errs["publishYear"] = "Publish year looks invalid"
		}
	}
	if checkLocation {
		if strings.TrimSpace(str(data["city"])) == "" {
			errs["city"] = "City is required"
		}
		if strings.TrimSpace(str(data["district"])) == "" {
			errs["district"] = "District is required"
		}
	}
	return errs
}
