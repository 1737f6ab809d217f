package usecase

import "errors"

// Sentinel errors services classify failures with. The HTTP layer maps
// them onto status codes; anything unclassified surfaces as a 500.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrNoMappableFixtures means the two requested seasons share no
	// team mapping, so no comparison table can be built from them.
	ErrNoMappableFixtures = errors.New("no mappable fixtures between seasons")
)
