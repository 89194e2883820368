package drill

import (
	"errors"
	"fmt"
	"strings"
)

// These error types are returned by the client calls. Drill reports most
// failures inside an otherwise successful HTTP response, so the message from
// the server is wrapped around one of these sentinels, allowing usage like:
//
//   _, err := cl.ListObjects(ctx, "ora.NOSUCH")
//   if errors.Is(err, drill.ErrNotFound) {
//     // schema doesn't exist, err.Error() has the server message
//   }
var (
	// ErrAuthFailed is returned for bad credentials or an unreachable host.
	ErrAuthFailed = errors.New("drill: authentication failed")
	// ErrNotFound is returned when a referenced schema, object, storage
	// plugin or profile does not exist.
	ErrNotFound = errors.New("drill: not found")
	// ErrQueryFailed wraps the server error message of a failed query.
	ErrQueryFailed = errors.New("drill: query failed")
	// ErrQueryUnknownState is returned when the server response carries
	// neither rows nor a terminal query state.
	ErrQueryUnknownState = errors.New("drill: query unknown state")
)

// errorResponse is the body Drill sends when a REST call fails outright.
type errorResponse struct {
	ErrorMessage string `json:"errorMessage"`
}

// classifyQueryError maps a Drill errorMessage onto the sentinel errors.
// Validation errors for missing schemas/tables look like
// "VALIDATION ERROR: Schema [[ora.NOSUCH]] is not valid ..." or
// "... Object 'FOO' not found".
func classifyQueryError(msg string) error {
	if isNotFoundMessage(msg) {
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return fmt.Errorf("%w: %s", ErrQueryFailed, msg)
}

func isNotFoundMessage(msg string) bool {
	if !strings.Contains(msg, "VALIDATION ERROR") {
		return false
	}

	return strings.Contains(msg, "not valid") ||
		strings.Contains(msg, "not found") ||
		strings.Contains(msg, "Unknown")
}
