package workout

import "errors"

// ErrNoData indicates that a stats query matched no persisted entries.
// It is an informational condition for the user, not a failure.
var ErrNoData = errors.New("workout: no matching entries")
