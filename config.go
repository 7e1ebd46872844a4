package vitrin

import (
	"time"
)

// Config consolidates engine and backend settings.
type Config struct {
	Database DatabaseConfig `json:"database"`
	Query    QueryConfig    `json:"query"`
	Enum     EnumConfig     `json:"enum"`
	API      APIConfig      `json:"api"`
	Search   SearchConfig   `json:"search"`
	Logging  LoggingConfig  `json:"logging"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Database        string        `json:"database"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	SSLMode         string        `json:"sslMode"`
	MaxConnections  int           `json:"maxConnections"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
	ConnMaxIdleTime time.Duration `json:"connMaxIdleTime"`
	Timeout         time.Duration `json:"timeout"`
	ListingsTable   string        `json:"listingsTable"`
}

// QueryConfig contains listing query settings.
type QueryConfig struct {
	DefaultTimeout  time.Duration `json:"defaultTimeout"`
	DefaultPageSize int           `json:"defaultPageSize"`
	MaxPageSize     int           `json:"maxPageSize"`
	MaxLoadAllPages int           `json:"maxLoadAllPages"`
}

// EnumConfig contains lookup catalog settings.
type EnumConfig struct {
	CacheSize int    `json:"cacheSize"`
	Source    string `json:"source"` // file, s3
	Directory string `json:"directory"`
	S3Bucket  string `json:"s3Bucket"`
	S3Prefix  string `json:"s3Prefix"`
}

// APIConfig contains remote listing service client settings.
type APIConfig struct {
	BaseURL    string        `json:"baseUrl"`
	Timeout    time.Duration `json:"timeout"`
	RetryCount int           `json:"retryCount"`
}

// SearchConfig contains search controller settings.
type SearchConfig struct {
	LookupCacheSize int `json:"lookupCacheSize"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level            string `json:"level"`
	Format           string `json:"format"`
	EnableStructured bool   `json:"enableStructured"`
	LogQueries       bool   `json:"logQueries"`
	LogErrors        bool   `json:"logErrors"`
}

// DefaultConfig returns a default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxConnections:  25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
			Timeout:         30 * time.Second,
			ListingsTable:   "listings",
		},
		Query: QueryConfig{
			DefaultTimeout:  DefaultQueryTimeout,
			DefaultPageSize: DefaultPageSize,
			MaxPageSize:     100,
			MaxLoadAllPages: DefaultMaxLoadAllPages,
		},
		Enum: EnumConfig{
			CacheSize: 256,
			Source:    "file",
			Directory: "enums",
		},
		API: APIConfig{
			Timeout:    10 * time.Second,
			RetryCount: 3,
		},
		Search: SearchConfig{
			LookupCacheSize: DefaultLookupCacheSize,
		},
		Logging: LoggingConfig{
			Level:            "info",
			Format:           "json",
			EnableStructured: true,
			LogErrors:        true,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Database.MaxConnections <= 0 {
		return &ConfigError{Field: "database.maxConnections", Message: "must be greater than 0"}
	}
	if c.Query.DefaultPageSize <= 0 {
		return &ConfigError{Field: "query.defaultPageSize", Message: "must be greater than 0"}
	}
	if c.Query.MaxPageSize < c.Query.DefaultPageSize {
		return &ConfigError{Field: "query.maxPageSize", Message: "must be greater than or equal to defaultPageSize"}
	}
	if c.Enum.CacheSize <= 0 {
		return &ConfigError{Field: "enum.cacheSize", Message: "must be greater than 0"}
	}
	switch c.Enum.Source {
	case "file", "s3":
	default:
		return &ConfigError{Field: "enum.source", Message: "must be one of: file, s3"}
	}
	if c.Enum.Source == "s3" && c.Enum.S3Bucket == "" {
		return &ConfigError{Field: "enum.s3Bucket", Message: "required when enum.source is s3"}
	}
	if c.Search.LookupCacheSize <= 0 {
		return &ConfigError{Field: "search.lookupCacheSize", Message: "must be greater than 0"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ConfigError) Error() string {
	return "config validation error for field '" + e.Field + "': " + e.Message
}
