package vitrin

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// CategoryID identifies a listing category. The set of valid IDs is closed
// at registry construction time.
type CategoryID string

// Built-in category identifiers.
const (
	CategoryVehicle     CategoryID = "vehicle"
	CategoryElectronics CategoryID = "electronics"
	CategoryRealEstate  CategoryID = "realestate"
	CategoryClothing    CategoryID = "clothing"
	CategoryBooks       CategoryID = "books"
	CategorySporting    CategoryID = "sporting"
)

// ListingStatus represents the lifecycle state of a listing.
type ListingStatus string

const (
	StatusActive   ListingStatus = "ACTIVE"
	StatusPassive  ListingStatus = "PASSIVE"
	StatusSold     ListingStatus = "SOLD"
	StatusInReview ListingStatus = "IN_REVIEW"
)

// SortDirection defines sort direction for paged queries.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// Option is a single entry of a reference lookup list (brands, colors,
// fuel types and so on).
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Listing is the marketplace listing entity. Category-specific attributes
// live in the Attributes bag keyed by field name.
type Listing struct {
	ID          string         `json:"id"`
	ListingNo   string         `json:"listingNo"`
	CategoryID  CategoryID     `json:"categoryId"`
	UserID      string         `json:"userId,omitempty"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Currency    string         `json:"currency"`
	Status      ListingStatus  `json:"status"`
	City        string         `json:"city"`
	District    string         `json:"district"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// PageResult represents one page of listing query results, in the paged
// shape the search endpoint returns.
type PageResult struct {
	Content       []*Listing `json:"content"`
	TotalPages    int        `json:"totalPages"`
	TotalElements int        `json:"totalElements"`
	Number        int        `json:"number"`
}

// QueryPayload is the typed search payload produced by the filter
// serializer. Fixed keys are always present; category-specific keys are
// carried in Fields and flattened into the JSON object on marshal.
type QueryPayload struct {
	ListingType   string         `json:"listingType"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	Page          int            `json:"page"`
	Size          int            `json:"size"`
	SortBy        string         `json:"sortBy"`
	SortDirection SortDirection  `json:"sortDirection"`
	City          *string        `json:"city"`
	District      *string        `json:"district"`
	MinPrice      *float64       `json:"minPrice"`
	MaxPrice      *float64       `json:"maxPrice"`
	Currency      *string        `json:"currency"`
	Fields        map[string]any `json:"-"`
}

// MarshalJSON flattens Fields into the top-level object so the payload
// arrives at the search endpoint as one flat JSON document.
func (p *QueryPayload) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"listingType":   p.ListingType,
		"type":          p.Type,
		"status":        p.Status,
		"page":          p.Page,
		"size":          p.Size,
		"sortBy":        p.SortBy,
		"sortDirection": p.SortDirection,
		"city":          p.City,
		"district":      p.District,
		"minPrice":      p.MinPrice,
		"maxPrice":      p.MaxPrice,
		"currency":      p.Currency,
	}
	for k, v := range p.Fields {
		out[k] = v
	}
	return json.Marshal(out)
}

// UnmarshalJSON is the inverse of MarshalJSON: fixed keys populate the
// struct fields, everything else lands in Fields.
func (p *QueryPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	fixed := map[string]any{
		"listingType":   &p.ListingType,
		"type":          &p.Type,
		"status":        &p.Status,
		"page":          &p.Page,
		"size":          &p.Size,
		"sortBy":        &p.SortBy,
		"sortDirection": &p.SortDirection,
		"city":          &p.City,
		"district":      &p.District,
		"minPrice":      &p.MinPrice,
		"maxPrice":      &p.MaxPrice,
		"currency":      &p.Currency,
	}
	p.Fields = make(map[string]any)
	for key, msg := range raw {
		if dst, ok := fixed[key]; ok {
			if err := json.Unmarshal(msg, dst); err != nil {
				return fmt.Errorf("payload key %s: %w", key, err)
			}
			continue
		}
		var v any
		if err := json.Unmarshal(msg, &v); err != nil {
			return fmt.Errorf("payload key %s: %w", key, err)
		}
		// JSON arrays arrive as []any; filter values are string lists
		if list, ok := v.([]any); ok {
			strs := make([]string, 0, len(list))
			for _, item := range list {
				if s, ok := item.(string); ok {
					strs = append(strs, s)
				}
			}
			p.Fields[key] = strs
			continue
		}
		p.Fields[key] = v
	}
	return nil
}

// ErrorMap holds per-field validation messages keyed by field name.
// An empty map means the validated data passed.
type ErrorMap map[string]string

// Merge copies all entries of other over m, overriding on key collision.
func (m ErrorMap) Merge(other ErrorMap) {
	for k, v := range other {
		m[k] = v
	}
}

// QueryService is the paged listing query surface the search controller
// consumes. Implementations are expected to be idempotent reads.
type QueryService interface {
	FilterListings(ctx context.Context, payload *QueryPayload) (*PageResult, error)
	ListingByNo(ctx context.Context, listingNo string) (*Listing, error)
	MyListings(ctx context.Context, page, size int, categoryID CategoryID) (*PageResult, error)
}

// Service binds the CRUD operations of one category's listing entity.
type Service interface {
	GetByID(ctx context.Context, id string) (*Listing, error)
	Create(ctx context.Context, data map[string]any) (*Listing, error)
	Update(ctx context.Context, id string, data map[string]any) (*Listing, error)
}
