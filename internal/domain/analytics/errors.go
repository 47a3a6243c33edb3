package analytics

import "errors"

var (
	ErrPersistence  = errors.New("visitor store failure")
	ErrLookupFailed = errors.New("ip location lookup failed")
)
