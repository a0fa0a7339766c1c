package service

import "fmt"

// ErrorKind classifies why a query failed.
type ErrorKind int

const (
	// InvalidInput: empty, non-Hangul, or unmapped city name.
	InvalidInput ErrorKind = iota + 1
	// NetworkFailure: the weather request failed.
	NetworkFailure
	// GeolocationUnavailable: the host cannot report a position.
	GeolocationUnavailable
	// GeolocationDenied: permission refused or positioning failed.
	GeolocationDenied
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case NetworkFailure:
		return "NetworkFailure"
	case GeolocationUnavailable:
		return "GeolocationUnavailable"
	case GeolocationDenied:
		return "GeolocationDenied"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// QueryError is the single failure value a query can end with.
type QueryError struct {
	Kind ErrorKind
	Err  error
}

// Sentinels for errors.Is. They match any QueryError of the same kind.
var (
	ErrInvalidInput           = &QueryError{Kind: InvalidInput}
	ErrNetworkFailure         = &QueryError{Kind: NetworkFailure}
	ErrGeolocationUnavailable = &QueryError{Kind: GeolocationUnavailable}
	ErrGeolocationDenied      = &QueryError{Kind: GeolocationDenied}
)

func newQueryError(kind ErrorKind, err error) *QueryError {
	return &QueryError{Kind: kind, Err: err}
}

func (e *QueryError) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error { return e.Err }

func (e *QueryError) Is(target error) bool {
	t, ok := target.(*QueryError)
	return ok && t.Err == nil && t.Kind == e.Kind
}
