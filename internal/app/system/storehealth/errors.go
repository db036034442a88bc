package storehealth

import "errors"

var (
	// ErrNoClient is returned when no Mongo client was configured.
	ErrNoClient = errors.New("storehealth: no mongo client")

	// ErrUnavailable is a convenience value for Static in tests.
	ErrUnavailable = errors.New("storehealth: store unavailable")
)
