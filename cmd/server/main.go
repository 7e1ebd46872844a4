package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lychee-technology/vitrin"
	"github.com/lychee-technology/vitrin/categories"
	"github.com/lychee-technology/vitrin/internal/enumsource"
	"github.com/lychee-technology/vitrin/internal/store"
)

// Server is the HTTP surface over the listing engine: filtered search,
// code lookup, per-category schema export and validated CRUD.
type Server struct {
	registry *vitrin.Registry
	engine   *vitrin.Engine
	enums    *vitrin.EnumProvider
	query    vitrin.QueryService
	services categories.Services
	schemas  map[vitrin.CategoryID]*jsonschema.Resolved
	mux      *http.ServeMux
}

// NewServer wires the engine components onto a mux. Per-category schemas
// are resolved once here and reused as the body gate of every write.
func NewServer(registry *vitrin.Registry, enums *vitrin.EnumProvider, query vitrin.QueryService, services categories.Services) *Server {
	s := &Server{
		registry: registry,
		engine:   vitrin.NewEngine(registry, enums.Lookup),
		enums:    enums,
		query:    query,
		services: services,
		schemas:  map[vitrin.CategoryID]*jsonschema.Resolved{},
		mux:      http.NewServeMux(),
	}
	for _, id := range registry.CategoryIDs() {
		resolved, err := registry.ExportJSONSchema(id)
		if err != nil {
			zap.S().Warnw("schema export failed", "category", id, "error", err)
			continue
		}
		s.schemas[id] = resolved
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/v1/listings/filter", s.handleFilter)
	s.mux.HandleFunc("/api/v1/listings/", s.handleListingByNo)
	s.mux.HandleFunc("/api/v1/my-listings", s.handleMyListings)
	s.mux.HandleFunc("/api/v1/categories", s.handleCategories)
	s.mux.HandleFunc("/api/v1/categories/", s.handleCategorySchema)
	s.mux.HandleFunc("/api/v1/", s.handleListings)
}

// Start starts the HTTP server on the given port.
func (s *Server) Start(port string) error {
	zap.S().Infow("starting server", "port", port)
	return http.ListenAndServe(":"+port, s.mux)
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		sugar.Warnf("loading .env: %v", err)
	}

	cfg := configFromEnv()
	if err := cfg.Validate(); err != nil {
		sugar.Fatalf("invalid configuration: %v", err)
	}

	pool, err := createDatabasePool(cfg.Database)
	if err != nil {
		sugar.Fatalf("failed to create database pool: %v", err)
	}
	defer pool.Close()

	listings := store.NewListingStore(pool, cfg.Database.ListingsTable, sugar)
	services := categories.Services{}
	for _, id := range []vitrin.CategoryID{
		vitrin.CategoryVehicle, vitrin.CategoryElectronics, vitrin.CategoryRealEstate,
		vitrin.CategoryClothing, vitrin.CategoryBooks, vitrin.CategorySporting,
	} {
		services[id] = listings.ServiceFor(id)
	}
	registry := categories.Registry(services)

	source, err := newEnumSource(cfg.Enum)
	if err != nil {
		sugar.Fatalf("failed to create enum source: %v", err)
	}
	enums := vitrin.NewEnumProvider(source, cfg.Enum.CacheSize, sugar)

	server := NewServer(registry, enums, listings, services)

	port := getEnv("PORT", "8080")
	if err := server.Start(port); err != nil {
		sugar.Fatalf("server error: %v", err)
	}
}

// configFromEnv overlays environment variables onto the defaults.
func configFromEnv() *vitrin.Config {
	cfg := vitrin.DefaultConfig()
	cfg.Database.Host = getEnv("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvInt("DB_PORT", cfg.Database.Port)
	cfg.Database.Database = getEnv("DB_NAME", "vitrin")
	cfg.Database.Username = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.SSLMode = getEnv("DB_SSL_MODE", cfg.Database.SSLMode)
	cfg.Database.MaxConnections = getEnvInt("DB_MAX_CONNECTIONS", cfg.Database.MaxConnections)
	cfg.Database.MaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", cfg.Database.MaxIdleConns)
	cfg.Database.ListingsTable = getEnv("LISTINGS_TABLE", cfg.Database.ListingsTable)
	cfg.Enum.Source = getEnv("ENUM_SOURCE", cfg.Enum.Source)
	cfg.Enum.Directory = getEnv("ENUM_DIR", cfg.Enum.Directory)
	cfg.Enum.S3Bucket = getEnv("ENUM_S3_BUCKET", cfg.Enum.S3Bucket)
	cfg.Enum.S3Prefix = getEnv("ENUM_S3_PREFIX", cfg.Enum.S3Prefix)
	cfg.Enum.CacheSize = getEnvInt("ENUM_CACHE_SIZE", cfg.Enum.CacheSize)
	return cfg
}

// newEnumSource picks the lookup catalog backend from config.
func newEnumSource(cfg vitrin.EnumConfig) (vitrin.EnumSource, error) {
	switch cfg.Source {
	case "s3":
		awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}
		return enumsource.NewS3Source(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix), nil
	default:
		return enumsource.NewFileSource(cfg.Directory), nil
	}
}

// createDatabasePool creates a PostgreSQL connection pool from config.
func createDatabasePool(config vitrin.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.Database,
		config.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(config.MaxConnections)
	poolConfig.MinConns = int32(config.MaxIdleConns)
	poolConfig.MaxConnLifetime = config.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = config.ConnMaxIdleTime
	poolConfig.ConnConfig.ConnectTimeout = config.Timeout

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
