// Package store is the Postgres reference implementation of the listing
// query and category services. It keeps listings in one table with the
// fixed columns inline and category-specific attributes in a JSONB bag,
// so every category shares one storage path.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/lychee-technology/vitrin"
)

// DB is the pgx pool surface the store needs; *pgxpool.Pool and
// pgxmock pools both satisfy it.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ListingStore implements vitrin.QueryService plus the per-category CRUD
// contract over a Postgres listings table.
type ListingStore struct {
	db     DB
	table  string
	logger *zap.SugaredLogger
}

// NewListingStore creates a store over the given table. logger may be
// nil, in which case the global zap sugar is used.
func NewListingStore(db DB, table string, logger *zap.SugaredLogger) *ListingStore {
	if table == "" {
		table = "listings"
	}
	if logger == nil {
		logger = zap.S()
	}
	return &ListingStore{db: db, table: table, logger: logger}
}

const listingColumns = "id, listing_no, category_id, user_id, title, description, price, currency, status, city, district, attributes, created_at, updated_at"

func (s *ListingStore) scanListing(row pgx.Row) (*vitrin.Listing, error) {
	var (
		l         vitrin.Listing
		id        uuid.UUID
		attrBytes []byte
	)
	err := row.Scan(&id, &l.ListingNo, &l.CategoryID, &l.UserID, &l.Title, &l.Description,
		&l.Price, &l.Currency, &l.Status, &l.City, &l.District, &attrBytes, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.ID = id.String()
	if len(attrBytes) > 0 {
		if err := json.Unmarshal(attrBytes, &l.Attributes); err != nil {
			return nil, fmt.Errorf("decode listing attributes: %w", err)
		}
	}
	return &l, nil
}

// FilterListings executes the typed query payload built by the filter
// serializer and returns one page of results.
func (s *ListingStore) FilterListings(ctx context.Context, payload *vitrin.QueryPayload) (*vitrin.PageResult, error) {
	where, args := buildWhere(payload)

	countSQL := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", s.table, where)
	var total int
	if err := s.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, vitrin.NewServiceError("count listings", 0, err)
	}

	size := payload.Size
	if size <= 0 {
		size = vitrin.DefaultPageSize
	}
	page := payload.Page
	if page < 0 {
		page = 0
	}

	querySQL := fmt.Sprintf(
		"SELECT %s FROM %s WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d",
		listingColumns, s.table, where, sortColumn(payload.SortBy), sortDirection(payload.SortDirection),
		size, page*size,
	)
	rows, err := s.db.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, vitrin.NewServiceError("query listings", 0, err)
	}
	defer rows.Close()

	content := []*vitrin.Listing{}
	for rows.Next() {
		l, err := s.scanListing(rows)
		if err != nil {
			return nil, vitrin.NewServiceError("scan listing", 0, err)
		}
		content = append(content, l)
	}
	if err := rows.Err(); err != nil {
		return nil, vitrin.NewServiceError("iterate listings", 0, err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + size - 1) / size
	}
	return &vitrin.PageResult{
		Content:       content,
		TotalPages:    totalPages,
		TotalElements: total,
		Number:        page,
	}, nil
}

// ListingByNo looks a listing up by its public code. A miss maps to the
// distinct not-found error the search bar renders as "no listing found".
func (s *ListingStore) ListingByNo(ctx context.Context, listingNo string) (*vitrin.Listing, error) {
	querySQL := fmt.Sprintf("SELECT %s FROM %s WHERE listing_no = $1", listingColumns, s.table)
	l, err := s.scanListing(s.db.QueryRow(ctx, querySQL, listingNo))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, vitrin.NewListingNotFoundError(listingNo)
	}
	if err != nil {
		return nil, vitrin.NewServiceError("lookup listing by code", 0, err)
	}
	return l, nil
}

// MyListings returns one page of the caller's listings, optionally
// narrowed to one category.
func (s *ListingStore) MyListings(ctx context.Context, page, size int, categoryID vitrin.CategoryID) (*vitrin.PageResult, error) {
	payload := &vitrin.QueryPayload{
		Status:        "",
		Page:          page,
		Size:          size,
		SortBy:        vitrin.DefaultSortBy,
		SortDirection: vitrin.DefaultSortDirection,
		Fields:        map[string]any{},
	}
	if categoryID != "" {
		payload.Type = strings.ToUpper(string(categoryID))
	}
	return s.FilterListings(ctx, payload)
}

// CategoryService binds the store to one category, satisfying the
// vitrin.Service contract a category config carries.
type CategoryService struct {
	store    *ListingStore
	category vitrin.CategoryID
}

// ServiceFor returns the CRUD service for one category.
func (s *ListingStore) ServiceFor(category vitrin.CategoryID) *CategoryService {
	return &CategoryService{store: s, category: category}
}

// fixedFormKeys are the form-state keys stored inline; everything else
// lands in the attributes bag.
var fixedFormKeys = map[string]struct{}{
	"id": {}, "title": {}, "description": {}, "price": {}, "currency": {},
	"city": {}, "district": {}, "status": {}, "userId": {},
}

func splitFormState(data map[string]any) (l vitrin.Listing, attrs map[string]any) {
	attrs = make(map[string]any)
	for k, v := range data {
		if _, fixed := fixedFormKeys[k]; !fixed {
			attrs[k] = v
			continue
		}
	}
	l.Title, _ = data["title"].(string)
	l.Description, _ = data["description"].(string)
	if price, ok := data["price"].(float64); ok {
		l.Price = price
	} else if priceStr, ok := data["price"].(string); ok {
		fmt.Sscanf(priceStr, "%f", &l.Price)
	}
	l.Currency, _ = data["currency"].(string)
	l.City, _ = data["city"].(string)
	l.District, _ = data["district"].(string)
	l.UserID, _ = data["userId"].(string)
	return l, attrs
}

// GetByID fetches one listing by its internal ID.
func (c *CategoryService) GetByID(ctx context.Context, id string) (*vitrin.Listing, error) {
	querySQL := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1 AND category_id = $2", listingColumns, c.store.table)
	l, err := c.store.scanListing(c.store.db.QueryRow(ctx, querySQL, id, string(c.category)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, vitrin.NewListingNotFoundError(id)
	}
	if err != nil {
		return nil, vitrin.NewServiceError("get listing", 0, err)
	}
	return l, nil
}

// Create persists a validated form state as a new active listing.
func (c *CategoryService) Create(ctx context.Context, data map[string]any) (*vitrin.Listing, error) {
	l, attrs := splitFormState(data)
	attrBytes, err := json.Marshal(attrs)
	if err != nil {
		return nil, vitrin.NewInternalError("encode listing attributes", err)
	}

	id := uuid.New()
	now := time.Now().UTC()
	l.ID = id.String()
	l.ListingNo = NewListingNo(id)
	l.CategoryID = c.category
	l.Status = vitrin.StatusActive
	l.Attributes = attrs
	l.CreatedAt = now
	l.UpdatedAt = now

	insertSQL := fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`, c.store.table, listingColumns)
	_, err = c.store.db.Exec(ctx, insertSQL,
		id, l.ListingNo, string(c.category), l.UserID, l.Title, l.Description,
		l.Price, l.Currency, string(l.Status), l.City, l.District, attrBytes, now, now)
	if err != nil {
		return nil, vitrin.NewServiceError("create listing", 0, err)
	}
	c.store.logger.Infow("listing created", "category", c.category, "listingNo", l.ListingNo)
	return &l, nil
}

// Update persists a validated form state over an existing listing.
func (c *CategoryService) Update(ctx context.Context, id string, data map[string]any) (*vitrin.Listing, error) {
	l, attrs := splitFormState(data)
	attrBytes, err := json.Marshal(attrs)
	if err != nil {
		return nil, vitrin.NewInternalError("encode listing attributes", err)
	}

	now := time.Now().UTC()
	updateSQL := fmt.Sprintf(`UPDATE %s SET title = $1, description = $2, price = $3, currency = $4,
		city = $5, district = $6, attributes = $7, updated_at = $8
		WHERE id = $9 AND category_id = $10`, c.store.table)
	tag, err := c.store.db.Exec(ctx, updateSQL,
		l.Title, l.Description, l.Price, l.Currency, l.City, l.District, attrBytes, now,
		id, string(c.category))
	if err != nil {
		return nil, vitrin.NewServiceError("update listing", 0, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, vitrin.NewListingNotFoundError(id)
	}
	return c.GetByID(ctx, id)
}
