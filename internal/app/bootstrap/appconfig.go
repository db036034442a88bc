// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like ports, TLS,
// logging, request body limits and the environment name ("dev"/"prod").
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Maximum connections in pool (default: 100)
	MongoMinPoolSize uint64 // Minimum connections to keep warm (default: 10)

	// MongoRequired aborts startup when MongoDB cannot be reached. When
	// false the service starts anyway and project reads serve sample data
	// until the store comes up.
	MongoRequired bool

	// Store health checks
	StorePingTimeout time.Duration // Bound on a single ping (default: 2s)
	StoreHealthTTL   time.Duration // How long a ping result is reused (default: 5s)

	// Per-operation store deadlines
	ReadTimeout   time.Duration // Single store read (default: 5s)
	WriteTimeout  time.Duration // Store write (default: 10s)
	UploadTimeout time.Duration // Image upload including the store write (default: 30s)

	// API key for write endpoints (Bearer token). Empty leaves writes open.
	APIKey string

	// CORSAllowedOrigins lists the origins allowed to call /api. Empty allows any.
	CORSAllowedOrigins []string

	// Write rate limiting, per client IP
	WriteRateLimit int // Requests per minute; 0 disables
	WriteRateBurst int // Burst size

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/uploads")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string // AWS region
	StorageS3Bucket    string // S3 bucket name
	StorageS3Prefix    string // Key prefix (e.g., "uploads/")
	StorageCFURL       string // CloudFront distribution URL
	StorageCFKeyPairID string // CloudFront key pair ID
	StorageCFKeyPath   string // Path to CloudFront private key file

	// MaxUploadSize bounds a project image upload in bytes.
	MaxUploadSize int64

	// SeedSampleProjects inserts the sample projects into an empty store.
	SeedSampleProjects bool
}
