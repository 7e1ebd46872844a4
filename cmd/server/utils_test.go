package main

import (
	"net/url"
	"testing"

	"github.com/lychee-technology/vitrin"
)

func TestParseListingPath(t *testing.T) {
	tests := []struct {
		path     string
		category vitrin.CategoryID
		id       string
		wantErr  bool
	}{
		{"/api/v1/vehicle/listings", "vehicle", "", false},
		{"/api/v1/vehicle/listings/abc-123", "vehicle", "abc-123", false},
		{"/api/v1/books/listings/", "books", "", false},
		{"/api/v1/", "", "", true},
		{"/api/v1/vehicle", "", "", true},
		{"/api/v1/vehicle/other", "", "", true},
		{"/api/v1/vehicle/listings/a/b", "", "", true},
	}
	for _, tt := range tests {
		category, id, err := parseListingPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseListingPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if category != tt.category || id != tt.id {
			t.Errorf("parseListingPath(%q) = (%q, %q), want (%q, %q)",
				tt.path, category, id, tt.category, tt.id)
		}
	}
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query    string
		wantPage int
		wantSize int
	}{
		{"", 0, vitrin.DefaultPageSize},
		{"page=3&size=50", 3, 50},
		{"page=-1&size=0", 0, vitrin.DefaultPageSize},
		{"size=500", 0, 100},
		{"page=abc", 0, vitrin.DefaultPageSize},
	}
	for _, tt := range tests {
		values, err := url.ParseQuery(tt.query)
		if err != nil {
			t.Fatalf("parse query %q: %v", tt.query, err)
		}
		page, size := parsePagination(values)
		if page != tt.wantPage || size != tt.wantSize {
			t.Errorf("parsePagination(%q) = (%d, %d), want (%d, %d)",
				tt.query, page, size, tt.wantPage, tt.wantSize)
		}
	}
}

func TestClampPaging(t *testing.T) {
	payload := &vitrin.QueryPayload{Page: -2, Size: 0}
	clampPaging(payload)
	if payload.Page != 0 || payload.Size != vitrin.DefaultPageSize {
		t.Errorf("clampPaging = (%d, %d)", payload.Page, payload.Size)
	}

	payload = &vitrin.QueryPayload{Page: 1, Size: 9999}
	clampPaging(payload)
	if payload.Size != 100 {
		t.Errorf("size not clamped: %d", payload.Size)
	}
}
