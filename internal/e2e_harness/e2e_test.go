package e2e_harness

import (
	"context"
	"testing"

	"github.com/lychee-technology/vitrin"
	"github.com/lychee-technology/vitrin/internal/enumsource"
	"github.com/lychee-technology/vitrin/internal/store"
)

func TestE2EHarnessMinimal(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E harness in -short mode")
	}
	ctx := context.Background()
	h := &TestHarness{}

	if _, err := h.StartPostgres(ctx); err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	defer h.StopPostgres(ctx)

	codes, err := SeedListings(ctx, h.Pool, DefaultSeed())
	if err != nil {
		t.Fatalf("seed listings: %v", err)
	}

	listings := store.NewListingStore(h.Pool, "listings", nil)

	// lookup by code
	l, err := listings.ListingByNo(ctx, codes[0])
	if err != nil {
		t.Fatalf("listing by code: %v", err)
	}
	if l.Title != "2015 BMW 320i" {
		t.Fatalf("unexpected listing: %+v", l)
	}
	if _, err := listings.ListingByNo(ctx, "ZZZZ9999"); !vitrin.IsNotFoundError(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	// filtered query over JSONB attributes
	page, err := listings.FilterListings(ctx, &vitrin.QueryPayload{
		Type:          "VEHICLE",
		Status:        "ACTIVE",
		Size:          20,
		SortBy:        "createdAt",
		SortDirection: vitrin.SortDesc,
		Fields: map[string]any{
			"brand":   []string{"bmw"},
			"minYear": float64(2010),
		},
	})
	if err != nil {
		t.Fatalf("filter listings: %v", err)
	}
	if page.TotalElements != 1 || len(page.Content) != 1 {
		t.Fatalf("expected exactly one BMW, got %+v", page)
	}
	if page.Content[0].Attributes["brand"] != "bmw" {
		t.Fatalf("unexpected attributes: %+v", page.Content[0].Attributes)
	}

	// enum catalog through S3
	if _, err := h.StartS3(ctx); err != nil {
		t.Fatalf("start s3: %v", err)
	}
	defer h.StopS3(ctx)

	client, err := NewS3Client(ctx, h.S3Endpoint, "minio", "minio")
	if err != nil {
		t.Fatalf("s3 client: %v", err)
	}
	catalog := map[string][]vitrin.Option{
		"vehicle.brands": {{Value: "bmw", Label: "BMW"}, {Value: "renault", Label: "Renault"}},
	}
	if err := UploadEnumCatalog(ctx, client, "catalog", "enums/", catalog); err != nil {
		t.Fatalf("upload enum catalog: %v", err)
	}

	src := enumsource.NewS3Source(client, "catalog", "enums/")
	provider := vitrin.NewEnumProvider(src, 16, nil)
	provider.Load(ctx, "vehicle.brands")
	opts, ok := provider.Enum("vehicle.brands")
	if !ok || len(opts) != 2 {
		t.Fatalf("expected 2 brand options, got %v (ok=%v)", opts, ok)
	}
}
