package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/lychee-technology/vitrin"
)

// handleFilter handles POST /api/v1/listings/filter.
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var payload vitrin.QueryPayload
	if err := readJSONBody(r, &payload); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid json body: %v", err))
		return
	}
	clampPaging(&payload)

	page, err := s.query.FilterListings(r.Context(), &payload)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, page)
}

// handleListingByNo handles GET /api/v1/listings/{listingNo}.
func (s *Server) handleListingByNo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	listingNo := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/listings/"), "/")
	if listingNo == "" || strings.Contains(listingNo, "/") {
		writeError(w, http.StatusBadRequest, "listing code is required")
		return
	}

	l, err := s.query.ListingByNo(r.Context(), strings.ToUpper(listingNo))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, l)
}

// handleMyListings handles GET /api/v1/my-listings.
func (s *Server) handleMyListings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	page, size := parsePagination(r.URL.Query())
	category := vitrin.CategoryID(r.URL.Query().Get("category"))
	if category != "" && !s.registry.IsValid(category) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category: %s", category))
		return
	}

	result, err := s.query.MyListings(r.Context(), page, size, category)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, result)
}

// handleCategories handles GET /api/v1/categories.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"categories": s.registry.CategoryIDs()})
}

// handleCategorySchema handles GET /api/v1/categories/{id}/schema.
func (s *Server) handleCategorySchema(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/v1/categories/"), "/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[1] != "schema" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	resolved, err := s.registry.ExportJSONSchema(vitrin.CategoryID(parts[0]))
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, resolved.Schema())
}

// handleListings dispatches /api/v1/{category}/listings[/{id}] to the
// per-category CRUD handlers.
func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	category, id, err := parseListingPath(r.URL.Path)
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if !s.registry.IsValid(category) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown category: %s", category))
		return
	}

	switch {
	case r.Method == http.MethodPost && id == "":
		s.createListing(w, r, category)
	case r.Method == http.MethodGet && id != "":
		s.getListing(w, r, category, id)
	case r.Method == http.MethodPut && id != "":
		s.updateListing(w, r, category, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *Server) createListing(w http.ResponseWriter, r *http.Request, category vitrin.CategoryID) {
	data, ok := s.validatedBody(w, r, category)
	if !ok {
		return
	}
	svc := s.services[category]
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "category service unavailable")
		return
	}
	l, err := svc.Create(r.Context(), data)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, l)
}

func (s *Server) getListing(w http.ResponseWriter, r *http.Request, category vitrin.CategoryID, id string) {
	svc := s.services[category]
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "category service unavailable")
		return
	}
	l, err := svc.GetByID(r.Context(), id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, l)
}

func (s *Server) updateListing(w http.ResponseWriter, r *http.Request, category vitrin.CategoryID, id string) {
	data, ok := s.validatedBody(w, r, category)
	if !ok {
		return
	}
	svc := s.services[category]
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "category service unavailable")
		return
	}
	l, err := svc.Update(r.Context(), id, data)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, l)
}

// validatedBody decodes the request body, checks it against the exported
// category schema and then runs the full dynamic validation over it. The
// schema gate rejects malformed shapes with a 400 before the engine sees
// them; engine failures write the per-field error map. Returns ok=false
// on any rejection.
func (s *Server) validatedBody(w http.ResponseWriter, r *http.Request, category vitrin.CategoryID) (map[string]any, bool) {
	var data map[string]any
	if err := readJSONBody(r, &data); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid json body: %v", err))
		return nil, false
	}

	if resolved := s.schemas[category]; resolved != nil {
		if err := resolved.Validate(data); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("schema validation failed: %v", err))
			return nil, false
		}
	}

	errs, err := s.engine.AllErrors(category, data)
	if err != nil {
		writeEngineError(w, err)
		return nil, false
	}
	if len(errs) > 0 {
		writeJSON(w, http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Error:   "validation failed",
			Fields:  errs,
		})
		return nil, false
	}
	return data, true
}

// writeEngineError maps engine errors onto HTTP status codes.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case vitrin.IsNotFoundError(err):
		writeError(w, http.StatusNotFound, err.Error())
	case vitrin.IsConfigError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case vitrin.IsValidationError(err):
		writeJSON(w, http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Error:   err.Error(),
			Fields:  vitrin.ValidationFields(err),
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
