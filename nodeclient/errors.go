package nodeclient

import (
	"fmt"

	"decred.org/dcrwallet/v2/errors"
)

// ErrNotFound is returned by FetchProtocolParameters/SubmitBlock when the
// node answers 404, kind-tagged the same way lnwallet/dcrwallet/signer.go
// tags a missing key.
var ErrNotFound = errors.E(errors.NotExist, "node: resource not found")

// ErrUnreachable is returned when the node can't be dialed at all, as
// opposed to answering with an error status.
var ErrUnreachable = errors.E(errors.IO, "node: unreachable")

// HttpStatusError is returned for any non-2xx, non-404 response, carrying
// enough detail to diagnose without retrying blindly.
type HttpStatusError struct {
	StatusCode int
	Body       string
}

func (e *HttpStatusError) Error() string {
	return fmt.Sprintf("node: unexpected status %d: %s", e.StatusCode, e.Body)
}
