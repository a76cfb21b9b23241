package threat

import "errors"

// Sentinel errors for the ingestion pipeline. Every fatal error returned by
// Pipeline.Run wraps one of these.
var (
	ErrMalformedEvent = errors.New("malformed trigger event")
	ErrFetch          = errors.New("fetch object")
	ErrDecode         = errors.New("decode object")
	ErrPersist        = errors.New("persist indicator")
	ErrPublish        = errors.New("publish summary")
)
