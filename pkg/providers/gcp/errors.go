package gcp

import (
	"errors"
	"fmt"
	"strings"
)

var ErrClusterAlreadyExists = errors.New("cluster already exists")

// alreadyExistsMarkers are matched case-insensitively against gcloud's
// output. gcloud reports the API status (ALREADY_EXISTS) or the HTTP 409
// message ("Already exists: Failed to create cluster").
var alreadyExistsMarkers = []string{
	"already_exists",
	"already exists",
}

// IsAlreadyExistsOutput reports whether output is gcloud's answer to a
// create request for a cluster name that is taken.
func IsAlreadyExistsOutput(output string) bool {
	lower := strings.ToLower(output)
	for _, marker := range alreadyExistsMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// CreateError is returned when gcloud fails for any reason other than the
// cluster already existing.
type CreateError struct {
	Cluster  string
	ExitCode int
	Output   string
	Err      error
}

func (e *CreateError) Error() string {
	msg := fmt.Sprintf("failed to create cluster %s", e.Cluster)
	if e.ExitCode >= 0 {
		msg = fmt.Sprintf("%s: gcloud exited with status %d", msg, e.ExitCode)
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Output != "" {
		msg = fmt.Sprintf("%s\n%s", msg, e.Output)
	}
	return msg
}

func (e *CreateError) Unwrap() error {
	return e.Err
}
