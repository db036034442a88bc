// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/stratafolio/internal/app/system/indexes"
	"github.com/dalemusser/stratafolio/internal/app/system/seeding"
	"github.com/dalemusser/stratafolio/internal/app/system/storehealth"
	"github.com/dalemusser/stratafolio/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ConnectDB connects to MongoDB and initializes file storage.
//
// WAFFLE calls this after configuration is loaded but before EnsureSchema and
// Startup. With mongo_required=false an unreachable MongoDB is not fatal: a
// client is created without contacting the server, the driver keeps trying
// in the background, and the health checker reports the store as down until
// it answers.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	// Configure MongoDB connection pool
	poolCfg := wafflemongo.DefaultPoolConfig()
	if appCfg.MongoMaxPoolSize > 0 {
		poolCfg.MaxPoolSize = appCfg.MongoMaxPoolSize
	}
	if appCfg.MongoMinPoolSize > 0 {
		poolCfg.MinPoolSize = appCfg.MongoMinPoolSize
	}

	client, err := wafflemongo.ConnectWithPool(ctx, appCfg.MongoURI, appCfg.MongoDatabase, poolCfg)
	switch {
	case err == nil:
		logger.Info("connected to MongoDB",
			zap.String("database", appCfg.MongoDatabase),
			zap.Uint64("max_pool_size", poolCfg.MaxPoolSize),
			zap.Uint64("min_pool_size", poolCfg.MinPoolSize),
		)
	case appCfg.MongoRequired:
		return DBDeps{}, err
	default:
		logger.Warn("MongoDB unreachable; project reads will serve sample data until it answers",
			zap.String("database", appCfg.MongoDatabase),
			zap.Error(err),
		)
		client, err = lazyClient(appCfg, poolCfg.MaxPoolSize, poolCfg.MinPoolSize)
		if err != nil {
			return DBDeps{}, fmt.Errorf("failed to create MongoDB client: %w", err)
		}
	}

	db := client.Database(appCfg.MongoDatabase)
	health := storehealth.NewCached(
		storehealth.NewMongo(client, appCfg.StorePingTimeout),
		appCfg.StoreHealthTTL,
	)

	store, err := newFileStorage(ctx, appCfg, logger)
	if err != nil {
		return DBDeps{}, err
	}

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: db,
		Health:        health,
		FileStorage:   store,
	}, nil
}

// lazyClient builds a client without waiting for a server. mongo.Connect
// only validates options; connections are opened on first use.
func lazyClient(appCfg AppConfig, maxPool, minPool uint64) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(maxPool).
		SetMinPoolSize(minPool).
		SetServerSelectionTimeout(appCfg.StorePingTimeout)
	return mongo.Connect(context.Background(), opts)
}

// newFileStorage initializes the configured storage backend.
func newFileStorage(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (storage.Store, error) {
	switch appCfg.StorageType {
	case "s3":
		store, err := storage.NewS3(ctx, storage.S3Config{
			Region:                   appCfg.StorageS3Region,
			Bucket:                   appCfg.StorageS3Bucket,
			Prefix:                   appCfg.StorageS3Prefix,
			CloudFrontURL:            appCfg.StorageCFURL,
			CloudFrontKeyPairID:      appCfg.StorageCFKeyPairID,
			CloudFrontPrivateKeyPath: appCfg.StorageCFKeyPath,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		logger.Info("initialized S3/CloudFront file storage",
			zap.String("bucket", appCfg.StorageS3Bucket),
			zap.String("prefix", appCfg.StorageS3Prefix),
		)
		return store, nil
	case "local", "":
		store, err := storage.NewLocal(storage.LocalConfig{
			BasePath: appCfg.StorageLocalPath,
			BaseURL:  appCfg.StorageLocalURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize local storage: %w", err)
		}
		logger.Info("initialized local file storage",
			zap.String("path", appCfg.StorageLocalPath),
			zap.String("url", appCfg.StorageLocalURL),
		)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage type: %s", appCfg.StorageType)
	}
}

// errStoreDown aborts EnsureSchema when MongoDB is required but not answering.
var errStoreDown = errors.New("MongoDB is not reachable")

// EnsureSchema sets up collections, validators, indexes and seed data.
//
// This runs after ConnectDB succeeds but before Startup and before the HTTP
// handler is built. The context has a timeout based on
// coreCfg.IndexBootTimeout. When MongoDB is down and not required the whole
// step is skipped; it runs again on the next start.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := deps.Health.Ping(ctx); err != nil {
		if appCfg.MongoRequired {
			logger.Error("cannot ensure schema", zap.Error(err))
			return fmt.Errorf("%w: %v", errStoreDown, err)
		}
		logger.Warn("skipping schema setup; MongoDB is not reachable", zap.Error(err))
		return nil
	}

	db := deps.MongoDatabase

	// Ensure collections exist and attach JSON-Schema validators.
	// This runs first so indexes can be created on existing collections.
	logger.Info("ensuring collections and validators")
	if err := validators.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure validators", zap.Error(err))
		return err
	}

	logger.Info("ensuring database indexes")
	if err := indexes.EnsureAll(ctx, db); err != nil {
		logger.Error("failed to ensure indexes", zap.Error(err))
		return err
	}

	if err := seeding.SeedAll(ctx, db, logger, seeding.Options{SampleProjects: appCfg.SeedSampleProjects}); err != nil {
		logger.Error("failed to seed default data", zap.Error(err))
		return err
	}

	logger.Info("database schema ensured successfully")
	return nil
}
