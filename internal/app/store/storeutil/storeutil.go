// internal/app/store/storeutil/storeutil.go
package storeutil

import (
	"errors"
	"math"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned by stores when no document matches. Malformed ids
// are reported as ErrNotFound too: no document can have them.
var ErrNotFound = errors.New("not found")

// Paginate returns *options.FindOptions with skip/limit given a 1-based page.
// A skip that would overflow int64 saturates at math.MaxInt64.
func Paginate(limit, page int64) *options.FindOptions {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	sk := int64(math.MaxInt64)
	if page-1 <= math.MaxInt64/limit {
		sk = (page - 1) * limit
	}
	return options.Find().SetLimit(limit).SetSkip(sk)
}

// ParseID converts a hex id into an ObjectID, mapping bad input to ErrNotFound.
func ParseID(hex string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, ErrNotFound
	}
	return oid, nil
}

// NotFound translates mongo.ErrNoDocuments into ErrNotFound.
func NotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
