// Package txn runs multi-document writes inside a MongoDB transaction when
// the deployment supports one, and sequentially when it does not (standalone
// servers, DocumentDB without transactions).
//
//	err := txn.Run(ctx, db, log, func(ctx context.Context) error {
//	    if _, err := abouts.UpdateMany(ctx, bson.M{"is_active": true}, off); err != nil {
//	        return err
//	    }
//	    _, err := abouts.InsertOne(ctx, doc)
//	    return err
//	})
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Func is the unit of work. ctx is a session context inside a transaction
// and the caller's context otherwise; use it for every database call.
type Func func(ctx context.Context) error

// Run executes fn in a transaction, falling back to a plain call when
// transactions are unavailable. log may be nil.
func Run(ctx context.Context, db *mongo.Database, log *zap.Logger, fn Func) error {
	session, err := db.Client().StartSession()
	if err != nil {
		warn(log, "could not start session; running without transaction", err)
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err == nil {
		return nil
	}
	if IsNotSupported(err) {
		warn(log, "transactions not supported; running without transaction", err)
		return fn(ctx)
	}
	return err
}

func warn(log *zap.Logger, msg string, err error) {
	if log != nil {
		log.Warn(msg, zap.Error(err))
	}
}

// IsNotSupported reports whether err means the deployment cannot run
// multi-document transactions.
//
// Known codes: 20 (transaction numbers need a replica set or mongos),
// 51 (IllegalOperation), 263 (operation not allowed in a transaction).
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Code {
		case 20, 51, 263:
			return true
		}
	}

	// Driver and DocumentDB wording varies; two keyword hits avoids
	// matching unrelated errors that merely mention "session".
	msg := strings.ToLower(err.Error())
	hits := 0
	for _, kw := range []string{"transaction", "replica set", "session", "not supported", "illegal operation"} {
		if strings.Contains(msg, kw) {
			hits++
		}
	}
	return hits >= 2
}
