package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lychee-technology/vitrin"
)

// parseListingPath parses /api/v1/{category}/listings or
// /api/v1/{category}/listings/{id}.
func parseListingPath(path string) (category vitrin.CategoryID, id string, err error) {
	path = strings.TrimPrefix(path, "/api/v1/")
	path = strings.Trim(path, "/")
	if path == "" {
		return "", "", fmt.Errorf("invalid path: empty category")
	}

	parts := strings.Split(path, "/")
	switch {
	case len(parts) == 2 && parts[1] == "listings":
		return vitrin.CategoryID(parts[0]), "", nil
	case len(parts) == 3 && parts[1] == "listings":
		return vitrin.CategoryID(parts[0]), parts[2], nil
	default:
		return "", "", fmt.Errorf("invalid path format")
	}
}

// parsePagination extracts page and size from query parameters. Pages
// are zero-based on the wire.
func parsePagination(queryParams url.Values) (int, int) {
	page := 0
	size := vitrin.DefaultPageSize

	if p := queryParams.Get("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed >= 0 {
			page = parsed
		}
	}
	if s := queryParams.Get("size"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			if parsed > 100 {
				parsed = 100
			}
			size = parsed
		}
	}
	return page, size
}

// clampPaging normalizes payload paging to sane bounds.
func clampPaging(payload *vitrin.QueryPayload) {
	if payload.Page < 0 {
		payload.Page = 0
	}
	if payload.Size <= 0 {
		payload.Size = vitrin.DefaultPageSize
	}
	if payload.Size > 100 {
		payload.Size = 100
	}
}

// APIResponse is the standard response format.
type APIResponse struct {
	Success bool            `json:"success"`
	Data    interface{}     `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Fields  vitrin.ErrorMap `json:"fields,omitempty"`
}

// writeJSON writes JSON response to http.ResponseWriter.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) error {
	return writeJSON(w, statusCode, APIResponse{
		Success: false,
		Error:   message,
	})
}

// writeSuccess writes a success response.
func writeSuccess(w http.ResponseWriter, statusCode int, data interface{}) error {
	return writeJSON(w, statusCode, data)
}

// readJSONBody reads and decodes JSON from request body.
func readJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
