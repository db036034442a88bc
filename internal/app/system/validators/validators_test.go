package validators

import (
	"errors"
	"testing"

	"github.com/dalemusser/stratafolio/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll() error = %v", err)
	}
	if err := EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll() error = %v", err)
	}

	for _, coll := range []string{"abouts", "projects"} {
		exists, err := collectionExists(ctx, db, coll)
		if err != nil {
			t.Errorf("collectionExists(%s) error = %v", coll, err)
			continue
		}
		if !exists {
			t.Errorf("collection %s should exist after EnsureAll", coll)
		}
	}
}

func TestProjectsSchema_Enforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll() error = %v", err)
	}
	coll := db.Collection("projects")

	good := bson.M{"title": "Site", "description": "A site", "status": "completed"}
	if _, err := coll.InsertOne(ctx, good); err != nil {
		t.Fatalf("valid insert error = %v", err)
	}

	bad := bson.M{"title": "Site", "description": "A site", "status": "paused"}
	if _, err := coll.InsertOne(ctx, bad); err == nil {
		t.Error("insert with unknown status should be rejected")
	}

	blank := bson.M{"title": "   ", "description": "A site", "status": "completed"}
	if _, err := coll.InsertOne(ctx, blank); err == nil {
		t.Error("insert with blank title should be rejected")
	}
}

func TestAboutsSchema_Enforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll() error = %v", err)
	}
	coll := db.Collection("abouts")

	bad := bson.M{
		"name": "Ada", "title": "Engineer", "bio": "Hi", "is_active": true,
		"skills": bson.A{bson.M{"name": "Go", "level": 150, "category": "backend"}},
	}
	if _, err := coll.InsertOne(ctx, bad); err == nil {
		t.Error("skill level above 100 should be rejected")
	}
}

func TestEnsureCollection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := ensureCollection(ctx, db, "new_collection")
	if err != nil {
		t.Fatalf("first ensureCollection() error = %v", err)
	}
	if !created {
		t.Error("first ensureCollection() should return created=true")
	}

	created, err = ensureCollection(ctx, db, "new_collection")
	if err != nil {
		t.Fatalf("second ensureCollection() error = %v", err)
	}
	if created {
		t.Error("second ensureCollection() should return created=false")
	}
}

func TestErrorClassifiers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(error) bool
		err  error
		want bool
	}{
		{"namespace nil", isNamespaceExistsErr, nil, false},
		{"namespace code 48", isNamespaceExistsErr, mongo.CommandError{Code: 48, Message: "exists"}, true},
		{"namespace message", isNamespaceExistsErr, errors.New("collection already exists"), true},
		{"no such command code 59", isNoSuchCommand, mongo.CommandError{Code: 59}, true},
		{"no such command message", isNoSuchCommand, errors.New("NO SUCH COMMAND"), true},
		{"no such command generic", isNoSuchCommand, errors.New("boom"), false},
		{"not implemented code 115", isNotImplemented, mongo.CommandError{Code: 115}, true},
		{"not supported message", isNotImplemented, errors.New("collMod not supported"), true},
		{"not implemented generic", isNotImplemented, errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.err); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSchemas_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		schema bson.M
		want   []string
	}{
		{"abouts", aboutsSchema(), []string{"name", "title", "bio", "is_active"}},
		{"projects", projectsSchema(), []string{"title", "description", "status"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner, ok := tt.schema["$jsonSchema"].(bson.M)
			if !ok {
				t.Fatalf("$jsonSchema should be a bson.M, got %T", tt.schema["$jsonSchema"])
			}
			required, ok := inner["required"].(bson.A)
			if !ok {
				t.Fatalf("required should be a bson.A, got %T", inner["required"])
			}
			if len(required) != len(tt.want) {
				t.Fatalf("required = %v, want %v", required, tt.want)
			}
			for i, f := range tt.want {
				if required[i] != f {
					t.Errorf("required[%d] = %v, want %s", i, required[i], f)
				}
			}
		})
	}
}
