package vitrin

// Generic filter defaults shared by every category.
const (
	DefaultPageSize      = 20
	DefaultSortBy        = "createdAt"
	DefaultSortDirection = SortDesc
	DefaultStatus        = string(StatusActive)
)

// FilterState holds the generic filter bag of one listing screen: price
// range, location, sort, pagination, plus the category-specific fields as
// a sparse bag. It is owned by one screen instance and mutated only
// through its operations; every mutation except SetPage resets the page
// to 0.
type FilterState struct {
	config *CategoryConfig
	values map[string]any
}

// NewFilterState seeds filter state for a category by merging, in order:
// generic defaults, defaults derived from the declared filter fields, the
// category's sparse DefaultFilters, and caller-supplied initial filters.
func NewFilterState(cfg *CategoryConfig, initial map[string]any) *FilterState {
	s := &FilterState{config: cfg}
	s.values = s.defaults()
	for k, v := range initial {
		s.values[k] = v
	}
	s.syncType(initial)
	return s
}

func (s *FilterState) defaults() map[string]any {
	values := map[string]any{
		"type":          string(s.config.ID),
		"listingType":   string(s.config.ID),
		"status":        DefaultStatus,
		"city":          "",
		"district":      "",
		"minPrice":      "",
		"maxPrice":      "",
		"currency":      "",
		"sortBy":        DefaultSortBy,
		"sortDirection": string(DefaultSortDirection),
		"page":          0,
		"size":          DefaultPageSize,
	}
	if s.config.FilterFields != nil {
		for _, ff := range s.config.FilterFields() {
			switch ff.Type {
			case FilterEnum:
				values[ff.Key] = []string{}
			case FilterNumericRange, FilterDateRange:
				minKey, maxKey := ff.RangeKeys()
				values[minKey] = ""
				values[maxKey] = ""
			case FilterText:
				values[ff.Key] = ""
			}
		}
	}
	for k, v := range s.config.DefaultFilters {
		values[k] = v
	}
	return values
}

// type and listingType are kept in sync; callers may set either. changed
// holds the keys the caller actually touched: a mutation that sets only
// listingType must win over the seeded type default, every other case is
// driven by type.
func (s *FilterState) syncType(changed map[string]any) {
	_, typeSet := changed["type"]
	_, listingTypeSet := changed["listingType"]
	if listingTypeSet && !typeSet {
		if lt := asString(s.values["listingType"]); lt != "" {
			s.values["type"] = lt
			return
		}
	}
	if t := asString(s.values["type"]); t != "" {
		s.values["listingType"] = t
	} else if lt := asString(s.values["listingType"]); lt != "" {
		s.values["type"] = lt
	}
}

// Value returns the raw filter value for key.
func (s *FilterState) Value(key string) any { return s.values[key] }

// Values returns a copy of the whole filter bag.
func (s *FilterState) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Page returns the current page index.
func (s *FilterState) Page() int {
	p, _ := asNumber(s.values["page"])
	return int(p)
}

// Size returns the current page size.
func (s *FilterState) Size() int {
	n, ok := asNumber(s.values["size"])
	if !ok || n <= 0 {
		return DefaultPageSize
	}
	return int(n)
}

// Update shallow-merges patch into the state and resets the page.
func (s *FilterState) Update(patch map[string]any) {
	for k, v := range patch {
		s.values[k] = v
	}
	s.values["page"] = 0
	s.syncType(patch)
}

// SetPage changes only the page index.
func (s *FilterState) SetPage(n int) {
	s.values["page"] = n
}

// Set updates a single filter key and resets the page.
func (s *FilterState) Set(key string, value any) {
	s.Update(map[string]any{key: value})
}

// ToggleArray toggles membership of value in the array filter at key and
// resets the page.
func (s *FilterState) ToggleArray(key string, value string) {
	current := toStringSlice(s.values[key])
	next := make([]string, 0, len(current)+1)
	found := false
	for _, v := range current {
		if v == value {
			found = true
			continue
		}
		next = append(next, v)
	}
	if !found {
		next = append(next, value)
	}
	s.values[key] = next
	s.values["page"] = 0
}

// Reset recomputes the full default state for the current category.
func (s *FilterState) Reset() {
	s.values = s.defaults()
	s.syncType(nil)
}

// activeChecks walks every generic and declared filter with a predicate
// per active criterion. Adding a FilterField to a category config makes
// it participate here without further code.
func (s *FilterState) activeChecks() []bool {
	checks := []bool{
		rangeBound(s.values["minPrice"]) != nil,
		rangeBound(s.values["maxPrice"]) != nil,
		trimOrNil(s.values["city"]) != nil,
		trimOrNil(s.values["district"]) != nil,
	}
	if s.config.FilterFields == nil {
		return checks
	}
	for _, ff := range s.config.FilterFields() {
		switch ff.Type {
		case FilterEnum:
			checks = append(checks, len(toStringSlice(s.values[ff.Key])) > 0)
		case FilterNumericRange:
			minKey, maxKey := ff.RangeKeys()
			checks = append(checks, rangeBound(s.values[minKey]) != nil || rangeBound(s.values[maxKey]) != nil)
		case FilterDateRange:
			minKey, maxKey := ff.RangeKeys()
			checks = append(checks, trimOrNil(s.values[minKey]) != nil || trimOrNil(s.values[maxKey]) != nil)
		case FilterText:
			checks = append(checks, trimOrNil(s.values[ff.Key]) != nil)
		}
	}
	return checks
}

// HasActive reports whether any filter deviates from its inactive state.
func (s *FilterState) HasActive() bool {
	for _, active := range s.activeChecks() {
		if active {
			return true
		}
	}
	return false
}

// ActiveCount counts the active filter criteria.
func (s *FilterState) ActiveCount() int {
	count := 0
	for _, active := range s.activeChecks() {
		if active {
			count++
		}
	}
	return count
}
