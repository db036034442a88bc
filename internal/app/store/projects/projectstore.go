// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/stratafolio/internal/app/store/storeutil"
	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no project matches.
var ErrNotFound = storeutil.ErrNotFound

// ListingSort is the fixed listing order: featured first, manual order
// ascending, newest first.
var ListingSort = bson.D{
	{Key: "featured", Value: -1},
	{Key: "order", Value: 1},
	{Key: "created_at", Value: -1},
}

// FeaturedSort orders the featured shortcut.
var FeaturedSort = bson.D{
	{Key: "order", Value: 1},
	{Key: "created_at", Value: -1},
}

// Filter narrows a listing. Zero values mean "any".
type Filter struct {
	Status   string
	Featured *bool
}

// Matches reports whether p passes the filter. It mirrors the Mongo query
// built by bson().
func (f Filter) Matches(p models.Project) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	return true
}

func (f Filter) bson() bson.M {
	q := bson.M{}
	if f.Status != "" {
		q["status"] = f.Status
	}
	if f.Featured != nil {
		q["featured"] = *f.Featured
	}
	return q
}

// Store provides access to the projects collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new project store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// List returns one page of projects matching f in listing order, plus the
// total number of matches.
func (s *Store) List(ctx context.Context, f Filter, page, limit int) ([]models.Project, int64, error) {
	q := f.bson()

	total, err := s.c.CountDocuments(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	opts := storeutil.Paginate(int64(limit), int64(page)).SetSort(ListingSort)
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find projects: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.Project{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, 0, fmt.Errorf("decode projects: %w", err)
	}
	return out, total, nil
}

// Featured returns up to models.FeaturedLimit completed, featured projects.
func (s *Store) Featured(ctx context.Context) ([]models.Project, error) {
	q := bson.M{"featured": true, "status": models.ProjectStatusCompleted}
	opts := options.Find().SetSort(FeaturedSort).SetLimit(models.FeaturedLimit)

	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("find featured projects: %w", err)
	}
	defer cur.Close(ctx)

	out := []models.Project{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode featured projects: %w", err)
	}
	return out, nil
}

// GetByID returns a project by its hex id.
func (s *Store) GetByID(ctx context.Context, id string) (models.Project, error) {
	oid, err := storeutil.ParseID(id)
	if err != nil {
		return models.Project{}, err
	}
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		return models.Project{}, storeutil.NotFound(err)
	}
	return p, nil
}

// Create inserts p with a new id and server timestamps.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	p.ApplyDefaults()

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

// Replace overwrites every editable field of the project with those of p.
// The id and createdAt of the stored document are kept.
func (s *Store) Replace(ctx context.Context, id string, p models.Project) (models.Project, error) {
	oid, err := storeutil.ParseID(id)
	if err != nil {
		return models.Project{}, err
	}
	p.ApplyDefaults()

	set := bson.M{
		"title":        p.Title,
		"description":  p.Description,
		"technologies": p.Technologies,
		"images":       p.Images,
		"status":       p.Status,
		"featured":     p.Featured,
		"order":        p.Order,
		"tags":         p.Tags,
		"updated_at":   time.Now().UTC().Truncate(time.Millisecond),
	}
	// Optional fields are removed rather than stored empty; the collection
	// validator rejects an empty URL.
	unset := bson.M{}
	for field, v := range map[string]string{
		"long_description": p.LongDescription,
		"demo_url":         p.DemoURL,
		"github_url":       p.GithubURL,
	} {
		if v == "" {
			unset[field] = ""
		} else {
			set[field] = v
		}
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Project
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&out); err != nil {
		return models.Project{}, storeutil.NotFound(err)
	}
	return out, nil
}

// Delete removes a project. There is no cascade and no soft delete.
func (s *Store) Delete(ctx context.Context, id string) error {
	oid, err := storeutil.ParseID(id)
	if err != nil {
		return err
	}
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AddImage appends img to the project's images. When img.IsMain is set,
// every existing image loses its main flag first.
func (s *Store) AddImage(ctx context.Context, id string, img models.ProjectImage) (models.Project, error) {
	oid, err := storeutil.ParseID(id)
	if err != nil {
		return models.Project{}, err
	}

	if img.IsMain {
		unset := bson.M{"$set": bson.M{"images.$[].is_main": false}}
		if _, err := s.c.UpdateOne(ctx, bson.M{"_id": oid, "images.0": bson.M{"$exists": true}}, unset); err != nil {
			return models.Project{}, fmt.Errorf("clear main image: %w", err)
		}
	}

	update := bson.M{
		"$push": bson.M{"images": img},
		"$set":  bson.M{"updated_at": time.Now().UTC().Truncate(time.Millisecond)},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var out models.Project
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&out); err != nil {
		return models.Project{}, storeutil.NotFound(err)
	}
	return out, nil
}

// Count returns the number of stored projects.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// InsertMany stores ps as given, keeping their ids and timestamps.
func (s *Store) InsertMany(ctx context.Context, ps []models.Project) error {
	if len(ps) == 0 {
		return nil
	}
	docs := make([]interface{}, len(ps))
	for i := range ps {
		ps[i].ApplyDefaults()
		docs[i] = ps[i]
	}
	if _, err := s.c.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert projects: %w", err)
	}
	return nil
}
