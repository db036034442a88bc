// internal/app/store/about/aboutstore.go
package aboutstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/stratafolio/internal/app/store/storeutil"
	"github.com/dalemusser/stratafolio/internal/app/system/txn"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ErrNotFound is returned when there is no active profile.
var ErrNotFound = storeutil.ErrNotFound

// Store provides access to the abouts collection.
type Store struct {
	db     *mongo.Database
	c      *mongo.Collection
	logger *zap.Logger
}

// New creates a new about store. logger may be nil.
func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{db: db, c: db.Collection("abouts"), logger: logger}
}

// GetActive returns the active profile.
func (s *Store) GetActive(ctx context.Context) (models.About, error) {
	var a models.About
	opts := options.FindOne().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	if err := s.c.FindOne(ctx, bson.M{"is_active": true}, opts).Decode(&a); err != nil {
		return models.About{}, storeutil.NotFound(err)
	}
	return a, nil
}

// Create makes a the only active profile. Every existing profile is
// deactivated and a is inserted active, inside one transaction where the
// deployment supports it.
func (s *Store) Create(ctx context.Context, a models.About) (models.About, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	a.ID = primitive.NewObjectID()
	a.IsActive = true
	a.CreatedAt = now
	a.UpdatedAt = now
	a.ApplyDefaults()

	err := txn.Run(ctx, s.db, s.logger, func(ctx context.Context) error {
		off := bson.M{"$set": bson.M{"is_active": false, "updated_at": now}}
		if _, err := s.c.UpdateMany(ctx, bson.M{"is_active": true}, off); err != nil {
			return fmt.Errorf("deactivate profiles: %w", err)
		}
		if _, err := s.c.InsertOne(ctx, a); err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.About{}, err
	}
	return a, nil
}

// ReplaceActive writes every editable field of a over the active profile
// with id a.ID. The active flag and createdAt are left alone.
func (s *Store) ReplaceActive(ctx context.Context, a models.About) (models.About, error) {
	a.ApplyDefaults()

	set := bson.M{
		"name":         a.Name,
		"title":        a.Title,
		"bio":          a.Bio,
		"skills":       a.Skills,
		"contact":      a.Contact,
		"social_links": a.SocialLinks,
		"experience":   a.Experience,
		"education":    a.Education,
		"updated_at":   time.Now().UTC().Truncate(time.Millisecond),
	}
	update := bson.M{"$set": set}
	if a.ProfileImage != nil {
		set["profile_image"] = a.ProfileImage
	} else {
		update["$unset"] = bson.M{"profile_image": ""}
	}

	filter := bson.M{"_id": a.ID, "is_active": true}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.About
	if err := s.c.FindOneAndUpdate(ctx, filter, update, opts).Decode(&out); err != nil {
		return models.About{}, storeutil.NotFound(err)
	}
	return out, nil
}

// CountActive returns how many profiles are flagged active.
func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"is_active": true})
}
