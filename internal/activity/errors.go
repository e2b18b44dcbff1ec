// Package activity turns raw activity submissions into emission records and
// keeps them in an append-only, persisted activity log.
package activity

import "errors"

// Activity errors.
var (
	// ErrNoActivities indicates a form had no section with a positive amount.
	ErrNoActivities = errors.New("please enter valid activity data")

	// ErrDuplicateID indicates an appended record reuses an existing ID.
	ErrDuplicateID = errors.New("duplicate activity id")

	// ErrInvalidRecord indicates a record with an unknown category or negative CO2e.
	ErrInvalidRecord = errors.New("invalid activity record")

	// ErrMalformedLog indicates the persisted log could not be decoded.
	ErrMalformedLog = errors.New("malformed activity log")
)
