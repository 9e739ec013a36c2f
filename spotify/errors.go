package spotify

import "fmt"

// UpstreamError reports a failed call to the accounts service: either a
// transport error (StatusCode zero) or a non-2xx response. Stage names the
// grant type that failed.
type UpstreamError struct {
	Stage      string
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("spotify %s request failed: %s", e.Stage, e.Detail)
	}
	return fmt.Sprintf("spotify %s request returned %d: %s", e.Stage, e.StatusCode, e.Detail)
}
