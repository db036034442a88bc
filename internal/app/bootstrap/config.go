// internal/app/bootstrap/config.go
package bootstrap

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/stratafolio/internal/app/system/normalize"
	"github.com/dalemusser/stratafolio/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
const EnvVarPrefix = "STRATAFOLIO"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, api_key, etc.
//   - Environment variables: STRATAFOLIO_MONGO_URI, STRATAFOLIO_API_KEY, etc.
//   - Command-line flags: --mongo_uri, --api_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "stratafolio", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},
	{Name: "mongo_required", Default: false, Desc: "Abort startup when MongoDB is unreachable (false serves sample data instead)"},

	// Store health
	{Name: "store_ping_timeout", Default: "2s", Desc: "Timeout for a single MongoDB ping"},
	{Name: "store_health_ttl", Default: "5s", Desc: "How long a ping result is reused (0 pings on every check)"},

	// Per-operation store deadlines
	{Name: "timeout_read", Default: "5s", Desc: "Deadline for a single store read"},
	{Name: "timeout_write", Default: "10s", Desc: "Deadline for a store write"},
	{Name: "timeout_upload", Default: "30s", Desc: "Deadline for storing an uploaded image"},

	// API access
	{Name: "api_key", Default: "", Desc: "Bearer key required for write endpoints (leave empty to leave writes open)"},
	{Name: "cors_allowed_origins", Default: "", Desc: "Comma-separated origins allowed to call /api (empty allows any)"},
	{Name: "write_rate_limit", Default: 30, Desc: "Write requests per minute per client IP (0 disables)"},
	{Name: "write_rate_burst", Default: 10, Desc: "Write request burst per client IP"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads", Desc: "Local storage path for uploaded files"},
	{Name: "storage_local_url", Default: "/uploads", Desc: "URL prefix for serving local files"},

	// S3/CloudFront configuration
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},
	{Name: "storage_s3_prefix", Default: "uploads/", Desc: "S3 key prefix"},
	{Name: "storage_cf_url", Default: "", Desc: "CloudFront distribution URL"},
	{Name: "storage_cf_keypair_id", Default: "", Desc: "CloudFront key pair ID"},
	{Name: "storage_cf_key_path", Default: "", Desc: "Path to CloudFront private key file"},

	{Name: "max_upload_size", Default: 10 << 20, Desc: "Maximum project image upload size in bytes"},
	{Name: "seed_sample_projects", Default: false, Desc: "Insert the sample projects when the projects collection is empty"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, STRATAFOLIO_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),
		MongoRequired:    appValues.Bool("mongo_required"),

		StorePingTimeout: appValues.Duration("store_ping_timeout", 2*time.Second),
		StoreHealthTTL:   appValues.Duration("store_health_ttl", 5*time.Second),

		ReadTimeout:   appValues.Duration("timeout_read", timeouts.DefaultRead),
		WriteTimeout:  appValues.Duration("timeout_write", timeouts.DefaultWrite),
		UploadTimeout: appValues.Duration("timeout_upload", timeouts.DefaultUpload),

		APIKey:             appValues.String("api_key"),
		CORSAllowedOrigins: splitList(appValues.String("cors_allowed_origins")),
		WriteRateLimit:     appValues.Int("write_rate_limit"),
		WriteRateBurst:     appValues.Int("write_rate_burst"),

		// File storage
		StorageType:      strings.ToLower(appValues.String("storage_type")),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  strings.TrimRight(appValues.String("storage_local_url"), "/"),

		// S3/CloudFront
		StorageS3Region:    appValues.String("storage_s3_region"),
		StorageS3Bucket:    appValues.String("storage_s3_bucket"),
		StorageS3Prefix:    appValues.String("storage_s3_prefix"),
		StorageCFURL:       appValues.String("storage_cf_url"),
		StorageCFKeyPairID: appValues.String("storage_cf_keypair_id"),
		StorageCFKeyPath:   appValues.String("storage_cf_key_path"),

		MaxUploadSize:      int64(appValues.Int("max_upload_size")),
		SeedSampleProjects: appValues.Bool("seed_sample_projects"),
	}

	return coreCfg, appCfg, nil
}

// splitList parses a comma-separated config value.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return normalize.List(strings.Split(s, ","))
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return errors.New("mongo_database must not be empty")
	}

	switch appCfg.StorageType {
	case "local", "":
		if appCfg.StorageLocalPath == "" {
			return errors.New("storage_local_path is required for local storage")
		}
	case "s3":
		if appCfg.StorageS3Bucket == "" || appCfg.StorageS3Region == "" {
			return errors.New("storage_s3_bucket and storage_s3_region are required for s3 storage")
		}
	default:
		return fmt.Errorf("unknown storage type: %s", appCfg.StorageType)
	}

	if appCfg.WriteRateLimit < 0 || appCfg.WriteRateBurst < 0 {
		return errors.New("write_rate_limit and write_rate_burst must not be negative")
	}

	if appCfg.APIKey == "" && coreCfg.Env == "prod" {
		logger.Warn("api_key is empty; write endpoints are open to anyone")
	}

	return nil
}
