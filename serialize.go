package vitrin

import (
	"strings"
)

// Serialize converts a generic filter bag into the typed payload of the
// category search endpoint. The mapping is deterministic: fixed keys are
// always emitted (with defaults), and every declared filter field of the
// category contributes its keys with null-equivalent values when unset.
//
// Callers must not invoke Serialize for an unknown category; the search
// controller short-circuits those before reaching this layer.
func Serialize(state *FilterState, cfg *CategoryConfig) *QueryPayload {
	values := state.Values()

	payload := &QueryPayload{
		ListingType:   strings.ToUpper(string(cfg.ID)),
		Type:          strings.ToUpper(string(cfg.ID)),
		Status:        DefaultStatus,
		Page:          0,
		Size:          DefaultPageSize,
		SortBy:        DefaultSortBy,
		SortDirection: DefaultSortDirection,
		City:          trimOrNil(values["city"]),
		District:      trimOrNil(values["district"]),
		MinPrice:      rangeBound(values["minPrice"]),
		MaxPrice:      rangeBound(values["maxPrice"]),
		Currency:      trimOrNil(values["currency"]),
		Fields:        map[string]any{},
	}

	if status := trimOrNil(values["status"]); status != nil {
		payload.Status = *status
	}
	if page, ok := asNumber(values["page"]); ok && page > 0 {
		payload.Page = int(page)
	}
	if size, ok := asNumber(values["size"]); ok && size > 0 {
		payload.Size = int(size)
	}
	if sortBy := trimOrNil(values["sortBy"]); sortBy != nil {
		payload.SortBy = *sortBy
	}
	if dir := trimOrNil(values["sortDirection"]); dir != nil {
		payload.SortDirection = SortDirection(*dir)
	}

	if cfg.FilterFields == nil {
		return payload
	}
	for _, ff := range cfg.FilterFields() {
		serializeField(&ff, values, payload.Fields)
	}
	return payload
}

// putFloat and putString store a dereferenced bound or an untyped nil so
// the Fields bag compares and marshals cleanly.
func putFloat(out map[string]any, key string, v *float64) {
	if v == nil {
		out[key] = nil
		return
	}
	out[key] = *v
}

func putString(out map[string]any, key string, v *string) {
	if v == nil {
		out[key] = nil
		return
	}
	out[key] = *v
}

func serializeField(ff *FilterField, values map[string]any, out map[string]any) {
	switch ff.Type {
	case FilterEnum:
		list := toStringSlice(values[ff.Key])
		if !ff.Multiple {
			// Single-select enums travel as the first element or null.
			if len(list) > 0 {
				out[ff.Key] = list[0]
			} else {
				out[ff.Key] = nil
			}
			return
		}
		if len(list) > 0 {
			out[ff.Key] = list
		} else {
			out[ff.Key] = nil
		}

	case FilterNumericRange:
		minKey, maxKey := ff.RangeKeys()
		// Numeric bounds use zero-means-absent coercion: 0, "0", "" and
		// nil all emit null. Preserved for endpoint compatibility even
		// though it discards a legitimate bound of exactly zero.
		switch ff.Key {
		case "mileage":
			// The endpoint only understands an upper mileage bound.
			putFloat(out, maxKey, rangeBound(values[maxKey]))
		case "floor":
			// The endpoint takes a single floor, sourced from the upper
			// bound falling back to the lower one.
			floor := rangeBound(values[maxKey])
			if floor == nil {
				floor = rangeBound(values[minKey])
			}
			putFloat(out, "floor", floor)
		default:
			putFloat(out, minKey, rangeBound(values[minKey]))
			putFloat(out, maxKey, rangeBound(values[maxKey]))
		}

	case FilterDateRange:
		// No date parsing at this layer; bounds travel as trimmed
		// strings or null.
		minKey, maxKey := ff.RangeKeys()
		putString(out, minKey, trimOrNil(values[minKey]))
		putString(out, maxKey, trimOrNil(values[maxKey]))

	case FilterText:
		putString(out, ff.Key, trimOrNil(values[ff.Key]))
	}
}
