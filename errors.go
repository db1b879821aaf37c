package storytime

// Error types attached to errors returned by this package. Classify with
// errors.Type or errors.IsType from github.com/aukilabs/go-tooling/pkg/errors.
const (
	ErrTypeInvalidBounds = "invalid-bounds"
	ErrTypeInvalidActor  = "invalid-actor"
	ErrTypeInvalidScript = "invalid-script"
)
