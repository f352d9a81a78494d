package lvrfetcher

import (
	"errors"
	"fmt"
)

// ErrorKind is the normalized failure taxonomy for one region's pipeline leg.
type ErrorKind string

const (
	// KindNetwork indicates a transport-level failure (DNS, connect, reset).
	KindNetwork ErrorKind = "network"

	// KindTimeout indicates the upstream took longer than the request budget.
	KindTimeout ErrorKind = "timeout"

	// KindHTTPStatus indicates a non-2xx final response.
	KindHTTPStatus ErrorKind = "http_status"

	// KindDecode indicates the payload text could not be recovered.
	KindDecode ErrorKind = "decode"

	// KindParse indicates the tabular structure was beyond repair.
	KindParse ErrorKind = "parse"
)

// FetchError wraps one region's retrieval failure with its category. The
// orchestrator logs it and moves on; nothing retries at this layer.
type FetchError struct {
	Kind   ErrorKind
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Kind == KindHTTPStatus {
		return fmt.Sprintf("lvrfetcher [%s]: %s returned status %d", e.Kind, e.URL, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("lvrfetcher [%s]: %s: %v", e.Kind, e.URL, e.Err)
	}
	return fmt.Sprintf("lvrfetcher [%s]: %s", e.Kind, e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf extracts the category from an error, or "" when the error did not
// come out of this package.
func KindOf(err error) ErrorKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
