package drive

import "errors"

// Common errors that can be returned by Gateway implementations
var (
	// ErrNotFound is returned when an item does not exist in the store
	ErrNotFound = errors.New("item not found")

	// ErrNotContainer is returned when a listing is attempted on a non-folder item
	ErrNotContainer = errors.New("item is not a folder")

	// ErrPermissionDenied is returned when the backend refuses an operation
	ErrPermissionDenied = errors.New("permission denied")
)

// GatewayError wraps an error with the operation and item it concerns
type GatewayError struct {
	// Op is the operation that failed (e.g., "metadata", "list", "delete")
	Op string

	// ID is the item the operation was applied to
	ID string

	// Err is the underlying error
	Err error
}

func (e *GatewayError) Error() string {
	if e.ID == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.ID + ": " + e.Err.Error()
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NewGatewayError creates a new GatewayError
func NewGatewayError(op, id string, err error) error {
	return &GatewayError{
		Op:  op,
		ID:  id,
		Err: err,
	}
}

// IsNotFound returns true if the error is ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsPermissionDenied returns true if the error is ErrPermissionDenied
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}
