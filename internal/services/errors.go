package services

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrStorageWrite    = errors.New("storage write failed")
)

// Reasons a share fails validation. These travel to the caller as data, not
// as errors: an inactive share is an expected answer on the public paths.
const (
	ReasonExpired      = "expired"
	ReasonLimitReached = "limit-reached"
	ReasonNotFound     = "not-found"
)
