package storage

//go:generate mockgen -source=storage.go -package=storage -destination=storage_mock.go

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnavailable means the provider could not be constructed.
	// It points at deployment or credentials problems, not at a request.
	ErrUnavailable = errors.New("storage provider unavailable")

	// ErrNotFound means the object key does not exist.
	ErrNotFound = errors.New("object not found")
)

// Verb is the single HTTP method a signed URL grants.
type Verb string

const (
	// VerbPut grants a write.
	VerbPut Verb = "PUT"
	// VerbGet grants a read.
	VerbGet Verb = "GET"
)

// Permission is the access level given to an object written through a
// signed URL.
type Permission string

const (
	// PermissionNone leaves the bucket default in place.
	PermissionNone Permission = ""
	// PermissionPublicReadWrite makes the written object world read/writable.
	PermissionPublicReadWrite Permission = "public-read-write"
)

// SignRequest describes the URL to sign.
type SignRequest struct {
	Key        string
	Verb       Verb
	Permission Permission
	Expiry     time.Duration
}

// Provider is the object storage capability the gateway needs.
type Provider interface {
	// SignURL returns a time limited URL granting req.Verb on req.Key.
	SignURL(ctx context.Context, req SignRequest) (string, error)
	// CheckExists returns nil when key exists, ErrNotFound when it does
	// not, and an *Error for anything else.
	CheckExists(ctx context.Context, key string) error
}

// Error is a provider failure other than a missing key.
type Error struct {
	Op  string
	Key string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Key, e.Err)
}

// Unwrap returns the underlying provider error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the object is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable reports whether err is a provider construction failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// UnavailableError wraps the reason a provider could not be built.
type UnavailableError struct {
	Reason error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("%v: %v", ErrUnavailable, e.Reason)
}

// Is makes errors.Is(err, ErrUnavailable) hold.
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// Unwrap returns the reason.
func (e *UnavailableError) Unwrap() error {
	return e.Reason
}
