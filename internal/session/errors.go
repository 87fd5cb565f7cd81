package session

import "errors"

// ErrNotFound indicates no saved session state exists yet.
var ErrNotFound = errors.New("no saved session found, run the login command first")
