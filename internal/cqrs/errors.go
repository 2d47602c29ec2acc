package cqrs

import "errors"

// ErrInvalidCredentials is returned for any failed password or token check so
// callers cannot tell which part was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")
