package apperr

import "errors"

// Invalid is returned when the input fails domain validation.
var Invalid = errors.New("invalid input")

// Unauthorized indicates a missing or rejected credential; the caller
// should send the user back through the sign-in flow.
var Unauthorized = errors.New("unauthorized")

// RequestFailed indicates a non-success response from the backend.
var RequestFailed = errors.New("request failed")

// NotFound indicates that the requested resource does not exist.
var NotFound = errors.New("not found")
