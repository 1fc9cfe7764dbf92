package services

import "errors"

// Sentinel errors shared across the service layer. Handlers map these onto
// HTTP status codes with errors.Is; services wrap them with %w to add detail.
var (
	// ErrNotFound means a referenced project or task id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrUserNotFound means the acting user no longer exists, typically a
	// stale token subject. Kept distinct from a plain permission denial.
	ErrUserNotFound = errors.New("user not found")

	// ErrPermissionDenied means the actor's role or ownership does not allow
	// the requested operation.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrDuplicateUser means the username is already taken.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrValidation means a required field is missing or malformed.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthenticated means the supplied credentials did not verify.
	ErrUnauthenticated = errors.New("invalid credentials")

	// ErrExternalService means the story-generation call failed or is not
	// configured.
	ErrExternalService = errors.New("external service error")
)
