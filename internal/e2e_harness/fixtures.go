package e2e_harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lychee-technology/vitrin"
	"github.com/lychee-technology/vitrin/internal/store"
)

// SeedListing describes one row the Postgres seeder inserts.
type SeedListing struct {
	Category   vitrin.CategoryID
	Title      string
	Price      float64
	City       string
	District   string
	Attributes map[string]any
}

// DefaultSeed covers a couple of categories with attribute values the
// filter queries can hit.
func DefaultSeed() []SeedListing {
	return []SeedListing{
		{
			Category: vitrin.CategoryVehicle,
			Title:    "2015 BMW 320i", Price: 850000, City: "Istanbul", District: "Kadikoy",
			Attributes: map[string]any{"brand": "bmw", "year": 2015, "mileage": 120000, "fuelType": "gasoline"},
		},
		{
			Category: vitrin.CategoryVehicle,
			Title:    "2020 Renault Clio", Price: 650000, City: "Ankara", District: "Cankaya",
			Attributes: map[string]any{"brand": "renault", "year": 2020, "mileage": 45000, "fuelType": "diesel"},
		},
		{
			Category: vitrin.CategoryElectronics,
			Title:    "ThinkPad X1 Carbon", Price: 42000, City: "Istanbul", District: "Besiktas",
			Attributes: map[string]any{"subCategory": "laptop", "brand": "lenovo", "condition": "used", "ram": "16"},
		},
		{
			Category: vitrin.CategoryBooks,
			Title:    "Tutunamayanlar", Price: 150, City: "Izmir", District: "Konak",
			Attributes: map[string]any{"author": "Oguz Atay", "genre": "novel", "language": "tr"},
		},
	}
}

// SeedListings inserts the given rows directly, bypassing validation.
// It returns the generated listing codes in insertion order.
func SeedListings(ctx context.Context, pool *pgxpool.Pool, seed []SeedListing) ([]string, error) {
	codes := make([]string, 0, len(seed))
	for i, s := range seed {
		id := uuid.New()
		code := store.NewListingNo(id)
		attrs, err := json.Marshal(s.Attributes)
		if err != nil {
			return nil, fmt.Errorf("encode seed attributes: %w", err)
		}
		// stagger created_at so createdAt DESC ordering is deterministic
		created := time.Now().UTC().Add(-time.Duration(i) * time.Minute)
		_, err = pool.Exec(ctx, `
INSERT INTO listings (id, listing_no, category_id, user_id, title, description, price, currency, status, city, district, attributes, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
`, id, code, string(s.Category), "seed-user", s.Title, "", s.Price, "TRY", "ACTIVE", s.City, s.District, attrs, created, created)
		if err != nil {
			return nil, fmt.Errorf("insert seed listing: %w", err)
		}
		codes = append(codes, code)
	}
	return codes, nil
}

// NewS3Client builds an S3 client against a custom endpoint with static
// credentials, path style addressing for MinIO-compatible servers.
func NewS3Client(ctx context.Context, endpoint, accessKey, secretKey string) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	}
	if endpoint != "" {
		loadOpts = append(loadOpts, config.WithBaseEndpoint(endpoint))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	}), nil
}

// UploadEnumCatalog marshals the given option lists and uploads them as
// one JSON object per enum key under the given prefix.
func UploadEnumCatalog(ctx context.Context, client *s3.Client, bucket, prefix string, catalog map[string][]vitrin.Option) error {
	if _, err := client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(bucket)}); err != nil {
		if _, cerr := client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(bucket)}); cerr != nil {
			var apiErr smithy.APIError
			if errors.As(cerr, &apiErr) {
				code := apiErr.ErrorCode()
				if code != "BucketAlreadyOwnedByYou" && code != "BucketAlreadyExists" {
					return fmt.Errorf("create bucket: %w", cerr)
				}
			} else {
				return fmt.Errorf("create bucket: %w", cerr)
			}
		}
	}

	uploader := manager.NewUploader(client)
	for key, options := range catalog {
		body, err := json.Marshal(options)
		if err != nil {
			return fmt.Errorf("encode enum %s: %w", key, err)
		}
		_, err = uploader.Upload(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(bucket),
			Key:         aws.String(prefix + key + ".json"),
			Body:        bytes.NewReader(body),
			ContentType: aws.String("application/json"),
		})
		if err != nil {
			return fmt.Errorf("upload enum %s: %w", key, err)
		}
	}
	return nil
}
