package sentinel

import "errors"

// Sentinel errors for infrastructure facts. The registry client and cache
// return these (optionally wrapped) so services can translate them into domain
// errors without depending on transport details.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: the registry has no record for the identifier
// - ErrUnavailable: the registry answered with a non-success status or the
//   transport failed
// - ErrNotConfigured: the registry credential is missing, so no call was made
//
// For validation errors (bad input, missing fields), use pkg/domain-errors.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnavailable   = errors.New("unavailable")
	ErrNotConfigured = errors.New("not configured")
)
