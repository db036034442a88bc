// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"

	"github.com/dalemusser/stratafolio/internal/app/resources"
	projectstore "github.com/dalemusser/stratafolio/internal/app/store/projects"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Options selects what SeedAll writes.
type Options struct {
	// SampleProjects inserts the embedded sample projects into an empty
	// projects collection.
	SampleProjects bool
}

// SeedAll seeds default data if not already present.
func SeedAll(ctx context.Context, db *mongo.Database, logger *zap.Logger, opts Options) error {
	if opts.SampleProjects {
		if err := seedProjects(ctx, db, logger); err != nil {
			return err
		}
	}
	return nil
}

// seedProjects inserts the sample projects when the collection is empty.
// A non-empty collection is never touched.
func seedProjects(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	store := projectstore.New(db)

	n, err := store.Count(ctx)
	if err != nil {
		logger.Error("failed to count projects", zap.Error(err))
		return err
	}
	if n > 0 {
		logger.Debug("projects present; sample seed skipped", zap.Int64("count", n))
		return nil
	}

	samples, err := resources.SampleProjects()
	if err != nil {
		return err
	}
	if err := store.InsertMany(ctx, samples); err != nil {
		logger.Error("failed to seed sample projects", zap.Error(err))
		return err
	}
	logger.Info("seeded sample projects", zap.Int("count", len(samples)))
	return nil
}
