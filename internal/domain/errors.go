package domain

import "fmt"

// NotFoundError represents a missing resource.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// InvalidArgumentError is returned for caller mistakes such as a non-positive page size.
type InvalidArgumentError struct {
	Argument string
	Reason   string
}

func (e InvalidArgumentError) Error() string {
	if e.Argument == "" {
		return "invalid argument"
	}
	return fmt.Sprintf("invalid %s: %s", e.Argument, e.Reason)
}

func (e InvalidArgumentError) Is(target error) bool {
	_, ok := target.(InvalidArgumentError)
	if ok {
		return true
	}
	_, ok = target.(*InvalidArgumentError)
	return ok
}

var ErrInvalidArgument = InvalidArgumentError{}

// RemoteFetchError means the source collection could not be retrieved.
type RemoteFetchError struct {
	URI    string
	Status int
	Err    error
}

func (e RemoteFetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code: %d", e.URI, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URI, e.Err)
	}
	return fmt.Sprintf("fetch %s failed", e.URI)
}

func (e RemoteFetchError) Unwrap() error {
	return e.Err
}

func (e RemoteFetchError) Is(target error) bool {
	_, ok := target.(RemoteFetchError)
	if ok {
		return true
	}
	_, ok = target.(*RemoteFetchError)
	return ok
}

var ErrRemoteFetch = RemoteFetchError{}

// RemoteDereferenceError is the per-member failure to resolve a Last-Modified time.
// It never escapes the memoizer.
type RemoteDereferenceError struct {
	URI    string
	Reason string
}

func (e RemoteDereferenceError) Error() string {
	return fmt.Sprintf("dereference %s: %s", e.URI, e.Reason)
}

func (e RemoteDereferenceError) Is(target error) bool {
	_, ok := target.(RemoteDereferenceError)
	if ok {
		return true
	}
	_, ok = target.(*RemoteDereferenceError)
	return ok
}

var ErrRemoteDereference = RemoteDereferenceError{}

// StoreUnavailableError wraps a backend failure of the event store.
type StoreUnavailableError struct {
	Key string
	Err error
}

func (e StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable (key %s): %v", e.Key, e.Err)
}

func (e StoreUnavailableError) Unwrap() error {
	return e.Err
}

func (e StoreUnavailableError) Is(target error) bool {
	_, ok := target.(StoreUnavailableError)
	if ok {
		return true
	}
	_, ok = target.(*StoreUnavailableError)
	return ok
}

var ErrStoreUnavailable = StoreUnavailableError{}
