// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/stratafolio/internal/app/system/storehealth"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database and backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: EnsureSchema, Startup, BuildHandler, and Shutdown.
//
// The Shutdown hook is responsible for closing these connections gracefully
// when the application terminates.
type DBDeps struct {
	// MongoDB client and database. The client may not be connected yet
	// when mongo_required is false; Health tells.
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Health reports whether MongoDB currently answers.
	Health storehealth.Checker

	// FileStorage for project images.
	FileStorage storage.Store
}
