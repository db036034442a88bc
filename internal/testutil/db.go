// Package testutil provides test helpers: a per-test MongoDB database,
// fixtures, and JSON request/envelope helpers for handlers.
package testutil

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/stratafolio/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	// DefaultTestDBURI is used unless STRATAFOLIO_TEST_MONGO_URI is set.
	DefaultTestDBURI = "mongodb://localhost:27017"
	// TestDBName prefixes every per-test database.
	TestDBName = "stratafolio_test"

	// maxDBName is MongoDB's limit on database name length.
	maxDBName = 63
)

var (
	clientOnce sync.Once
	client     *mongo.Client
	clientErr  error
)

// TestDBURI returns the MongoDB URI tests connect to.
func TestDBURI() string {
	if uri := os.Getenv("STRATAFOLIO_TEST_MONGO_URI"); uri != "" {
		return uri
	}
	return DefaultTestDBURI
}

// getClient returns a shared MongoDB client for all tests in a package.
func getClient() (*mongo.Client, error) {
	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		clientOpts := options.Client().
			ApplyURI(TestDBURI()).
			SetMaxPoolSize(50).
			SetMaxConnIdleTime(30 * time.Second).
			SetConnectTimeout(5 * time.Second).
			SetServerSelectionTimeout(5 * time.Second)

		client, clientErr = mongo.Connect(ctx, clientOpts)
		if clientErr != nil {
			return
		}
		clientErr = client.Ping(ctx, nil)
	})
	return client, clientErr
}

// SchemaFunc prepares collections, as validators.EnsureAll and
// indexes.EnsureAll do at startup.
type SchemaFunc func(ctx context.Context, db *mongo.Database) error

// SetupTestDB returns a fresh database named after the test and applies
// schema in order. It is dropped on cleanup.
//
// Store tests need a running MongoDB; without one the test is skipped when
// -short is set and fails otherwise.
func SetupTestDB(t *testing.T, schema ...SchemaFunc) *mongo.Database {
	t.Helper()

	client, err := getClient()
	if err != nil {
		if testing.Short() {
			t.Skipf("MongoDB unavailable at %s: %v", TestDBURI(), err)
		}
		t.Fatalf("failed to connect to test MongoDB at %s: %v", TestDBURI(), err)
	}

	db := client.Database(dbName(t.Name()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Drop(ctx); err != nil {
		t.Fatalf("failed to drop test database: %v", err)
	}
	for _, fn := range schema {
		if err := fn(ctx, db); err != nil {
			t.Fatalf("failed to prepare test schema: %v", err)
		}
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("warning: failed to drop test database on cleanup: %v", err)
		}
	})

	return db
}

// InsertProjects writes ps directly into the projects collection, keeping
// the ids, timestamps and order the test chose.
func InsertProjects(t *testing.T, db *mongo.Database, ps ...models.Project) {
	t.Helper()
	if len(ps) == 0 {
		return
	}

	docs := make([]any, len(ps))
	for i := range ps {
		ps[i].ApplyDefaults()
		docs[i] = ps[i]
	}

	ctx, cancel := TestContext()
	defer cancel()
	if _, err := db.Collection("projects").InsertMany(ctx, docs); err != nil {
		t.Fatalf("insert projects: %v", err)
	}
}

// dbName builds "<TestDBName>_<sanitized test name>" within MongoDB's
// length limit.
func dbName(testName string) string {
	suffix := make([]byte, 0, len(testName))
	for i := 0; i < len(testName); i++ {
		c := testName[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' {
			suffix = append(suffix, c)
		} else {
			suffix = append(suffix, '_')
		}
	}

	name := fmt.Sprintf("%s_%s", TestDBName, suffix)
	if len(name) > maxDBName {
		name = name[:maxDBName]
	}
	return name
}

// TestContext returns a context with a reasonable timeout for test operations.
func TestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}
