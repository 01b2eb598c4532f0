package repository

import "errors"

// ErrServiceUnavailable is returned when the backing service of a repository is not configured.
var ErrServiceUnavailable = errors.New("service unavailable")
