package api

import (
	"fmt"
	"io"
	"net/http"
)

const maxErrorBody = 64 << 10

// RemoteError is returned for any non-success HTTP status. Body holds the
// response text when it could be read.
type RemoteError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote call to %s failed with status %d: %s", e.URL, e.StatusCode, e.Body)
}

// newRemoteError captures the status and, best effort, the response body.
// Reading the body must never fail the error path itself.
func newRemoteError(resp *http.Response) *RemoteError {
	body := "<unknown>"
	if data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); err == nil {
		body = string(data)
	}
	return &RemoteError{
		StatusCode: resp.StatusCode,
		URL:        resp.Request.URL.String(),
		Body:       body,
	}
}
