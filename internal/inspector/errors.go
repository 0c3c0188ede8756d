package inspector

import "github.com/pkg/errors"

var (
	// ErrNilObject is returned when Inspect is given nothing to inspect.
	ErrNilObject = errors.New("cannot inspect a nil object")
	// ErrAccessDenied is returned when an unexported field is read without force access.
	ErrAccessDenied = errors.New("access denied")
	// ErrUnsupported is returned when reflection rejects an introspection request.
	ErrUnsupported = errors.New("unsupported introspection operation")
)
