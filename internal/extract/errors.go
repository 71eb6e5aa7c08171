package extract

import "errors"

// ErrMalformedPayload is returned when the embedded settings assignment
// cannot be located or its remainder is not valid JSON. A run cannot
// proceed without station data, so callers treat this as fatal for the
// run (a scheduler may retry later).
//
// Design decision: We use a package-level sentinel error so callers can
// use errors.Is() for programmatic handling while wrapped messages still
// carry the specific parse failure.
var ErrMalformedPayload = errors.New("malformed settings payload")
