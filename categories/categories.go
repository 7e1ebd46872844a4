// Package categories declares the built-in marketplace category
// configurations and assembles the default registry. Every
// category-specific behavior lives here as data: field lists, filter
// schemas and predicates, never as branches in shared engine code.
package categories

import (
	"strconv"
	"strings"

	"github.com/lychee-technology/vitrin"
)

// Services binds one listing CRUD service per category. Categories
// without an entry get a nil service; sessions over them can validate
// but not submit.
type Services map[vitrin.CategoryID]vitrin.Service

// Registry assembles the default category registry. It panics on
// configuration integrity violations, which is the intended startup
// behavior.
func Registry(services Services) *vitrin.Registry {
	return vitrin.MustNewRegistry(
		Vehicle(services[vitrin.CategoryVehicle]),
		Electronics(services[vitrin.CategoryElectronics]),
		RealEstate(services[vitrin.CategoryRealEstate]),
		Clothing(services[vitrin.CategoryClothing]),
		Books(services[vitrin.CategoryBooks]),
		Sporting(services[vitrin.CategorySporting]),
	)
}

// Default returns the registry without bound services, for validation
// and filter serialization use.
func Default() *vitrin.Registry {
	return Registry(nil)
}

func fptr(v float64) *float64 { return &v }

// Scalar coercion helpers for the legacy validator path, which works on
// the raw form bag without a predicate context.
func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		if n == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
